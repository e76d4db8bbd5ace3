package abstraction

import (
	"fmt"

	"github.com/gauleng/musolver-go/pkg/mus"
)

// HandConfiguration describes how many of the four dealt hands qualify for
// the lance being bet (only meaningful for Pares/Juego; Grande/Chica/Punto
// are always CuatroManos) and in what seat arrangement, so the CFR solver
// can fold symmetric deals onto a single information-set shape.
type HandConfiguration int

const (
	CuatroManos HandConfiguration = iota
	TresManos1vs2
	TresManos1vs2Intermedio
	TresManos2vs1
	DosManos
)

func (c HandConfiguration) String() string {
	switch c {
	case CuatroManos:
		return "CuatroManos"
	case TresManos1vs2:
		return "TresManos1vs2"
	case TresManos1vs2Intermedio:
		return "TresManos1vs2Intermedio"
	case TresManos2vs1:
		return "TresManos2vs1"
	case DosManos:
		return "DosManos"
	default:
		return "?"
	}
}

func califica(l mus.Lance, m mus.Mano) bool {
	switch l {
	case mus.Pares:
		return m.Pares().Categoria != mus.ParesNinguno
	case mus.Juego:
		return m.Juego().Categoria != mus.JuegoNinguno
	default:
		return true
	}
}

// NormalizarMano classifies a deal's HandConfiguration for lance l and
// returns the two per-partnership hand renderings, partnership 0 (seats 0
// and 2) first, partnership 1 (seats 1 and 3) second.
//
// Grande/Chica/Punto are unconditionally CuatroManos: every hand qualifies,
// so no symmetry reduction applies.
//
// For Pares/Juego, only hands that qualify (have a scoring combination) carry
// strategic weight; a partnership where just one of its two hands qualifies
// reduces to that single hand for the purposes of comparing information
// sets. The resulting per-partnership qualifying counts {n0, n1} pick one of
// the five configurations:
//
//	2-2 -> CuatroManos           (neither side reduces)
//	1-1 -> DosManos               (both sides reduce to one hand each)
//	2-1 -> TresManos2vs1          (partnership 0 is the "2" side)
//	1-2 -> TresManos1vs2          (partnership 1 is the "2" side)
//
// TresManos1vs2Intermedio replaces TresManos1vs2 when the "1" side's single
// qualifying hand sits at an inner seat (global seat 1 or 2) rather than an
// outer one (seat 0 or 3): an inner qualifier is table-adjacent to both of
// the "2" side's hands, while an outer one is adjacent to only one, which
// changes how the lone hand's turn order interacts with the other side's
// pair. This Intermedio split is this implementation's resolution of an
// open question in the originating specification; see DESIGN.md.
func NormalizarMano(manos [4]mus.Mano, l mus.Lance) (HandConfiguration, [2]string) {
	return normalizarMano(manos, l, func(m mus.Mano) string { return m.String() })
}

// NormalizarManoAbstracta is NormalizarMano's counterpart for abstract-game
// training: each seat's hand is rendered through Bucket(l, hand) instead of
// its literal card string, so deals that differ only within a bucket
// collapse onto the same information set.
func NormalizarManoAbstracta(manos [4]mus.Mano, l mus.Lance) (HandConfiguration, [2]string) {
	return normalizarMano(manos, l, func(m mus.Mano) string { return Bucket(l, m) })
}

func normalizarMano(manos [4]mus.Mano, l mus.Lance, renderMano func(mus.Mano) string) (HandConfiguration, [2]string) {
	renderFull := func(seats [2]int) string {
		return fmt.Sprintf("%s,%s", renderMano(manos[seats[0]]), renderMano(manos[seats[1]]))
	}
	// renderQualifying keeps only the seats that quali marks true, in seat
	// order, so a side that reduces to one hand is rendered as that one
	// hand alone rather than "hand,hand".
	renderQualifying := func(seats [2]int, quali [2]bool) string {
		var kept []string
		for i, ok := range quali {
			if ok {
				kept = append(kept, renderMano(manos[seats[i]]))
			}
		}
		if len(kept) == 0 {
			return renderFull(seats)
		}
		out := kept[0]
		for _, s := range kept[1:] {
			out += "," + s
		}
		return out
	}

	if l != mus.Pares && l != mus.Juego {
		return CuatroManos, [2]string{renderFull([2]int{0, 2}), renderFull([2]int{1, 3})}
	}

	q := [4]bool{califica(l, manos[0]), califica(l, manos[1]), califica(l, manos[2]), califica(l, manos[3])}

	p0Seats := [2]int{0, 2}
	p1Seats := [2]int{1, 3}
	p0Quali := [2]bool{q[0], q[2]}
	p1Quali := [2]bool{q[1], q[3]}

	n0 := countTrue(p0Quali)
	n1 := countTrue(p1Quali)

	var config HandConfiguration
	switch {
	case n0 == 2 && n1 == 2:
		config = CuatroManos
	case n0 == 1 && n1 == 1:
		config = DosManos
	case n0 == 2 && n1 == 1:
		config = TresManos2vs1
	case n0 == 1 && n1 == 2:
		config = intermedioSplit(p0Seats, p0Quali)
	default:
		// n0 == 0 or n1 == 0: one whole partnership has no qualifying hand.
		// mus.Lance.SeJuega gates every caller that reaches here (LanceGame's
		// deal construction, through withDeal) so this lance is
		// never actually bet on for such a deal and this branch should be
		// unreachable in practice. HandConfiguration has no dedicated value
		// for a zero-qualifier side, so fall back to the unreduced rendering.
		config = CuatroManos
	}

	return config, [2]string{
		renderQualifying(p0Seats, p0Quali),
		renderQualifying(p1Seats, p1Quali),
	}
}

// intermedioSplit decides between TresManos1vs2 and TresManos1vs2Intermedio
// for a "1" side whose single qualifying seat is seats[i]: an inner global
// seat (1 or 2) yields Intermedio, an outer one (0 or 3) yields the base
// configuration.
func intermedioSplit(seats [2]int, quali [2]bool) HandConfiguration {
	for i, ok := range quali {
		if ok && (seats[i] == 1 || seats[i] == 2) {
			return TresManos1vs2Intermedio
		}
	}
	return TresManos1vs2
}

func countTrue(b [2]bool) int {
	n := 0
	if b[0] {
		n++
	}
	if b[1] {
		n++
	}
	return n
}
