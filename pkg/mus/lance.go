package mus

// ValorGrande packs the hand's four card values into a 32-bit key, most
// significant card first, so that integer comparison orders hands exactly
// as Grande does: highest first card wins, ties broken by the second card,
// and so on.
func (m Mano) ValorGrande() uint32 {
	c := m.cartas
	return uint32(c[0].Valor())<<24 | uint32(c[1].Valor())<<16 | uint32(c[2].Valor())<<8 | uint32(c[3].Valor())
}

// ValorChica packs the same four card values with the opposite
// significance order: the lowest card (last after the descending sort) is
// most significant, so that comparing for "lowest hand wins, ties broken
// by the next-lowest card" reduces to a plain integer comparison.
func (m Mano) ValorChica() uint32 {
	c := m.cartas
	return uint32(c[3].Valor())<<24 | uint32(c[2].Valor())<<16 | uint32(c[1].Valor())<<8 | uint32(c[0].Valor())
}

// ValorPuntos sums the hand for Punto/Juego purposes: face cards (Sota,
// Caballo, Rey) and Tres count as 10; every other card counts at Valor.
func (m Mano) ValorPuntos() uint8 {
	var total uint8
	for _, c := range m.cartas {
		v := c.Valor()
		if v >= 10 {
			total += 10
		} else {
			total += v
		}
	}
	return total
}

// ParesCategoria classifies a Pares jugada.
type ParesCategoria int

const (
	ParesNinguno ParesCategoria = iota
	ParesPareja
	ParesMedias
	ParesDuples
)

// ParesJugada is the outcome of Mano.Pares: a category plus the bitmask of
// card values (bit i set means a card of Valor i participates) backing the
// jugada, used both to compare two Pares of the same category and to
// recover the participating ranks for display/abstraction.
type ParesJugada struct {
	Categoria ParesCategoria
	Mascara   uint16
}

// Compare returns -1, 0 or 1 as p ranks below, equal to, or above other.
// Category dominates; within the same category the higher mask wins,
// since higher card values occupy higher bits.
func (p ParesJugada) Compare(other ParesJugada) int {
	if p.Categoria != other.Categoria {
		if p.Categoria < other.Categoria {
			return -1
		}
		return 1
	}
	switch {
	case p.Mascara < other.Mascara:
		return -1
	case p.Mascara > other.Mascara:
		return 1
	default:
		return 0
	}
}

// Pares computes the Pares jugada for the hand: groups cards by rank value,
// then classifies by which multiplicities occur. Four of a kind is treated
// as Duples, shifted up one bit from the raw rank-group mask so it never
// collides with (and always compares above) a two-pair of lower ranks at
// the same bit position.
func (m Mano) Pares() ParesJugada {
	var porValor [13]int
	for _, c := range m.cartas {
		porValor[c.Valor()]++
	}

	var grupos [5]uint16 // grupos[n] = bitmask of valores with exactly n cards
	for v, n := range porValor {
		if n > 0 {
			grupos[n] |= 1 << uint(v)
		}
	}

	switch {
	case grupos[4] != 0:
		return ParesJugada{Categoria: ParesDuples, Mascara: grupos[4] << 1}
	case grupos[3] != 0:
		return ParesJugada{Categoria: ParesMedias, Mascara: grupos[3]}
	case grupos[2] != 0:
		if bitsSet(grupos[2]) == 2 {
			return ParesJugada{Categoria: ParesDuples, Mascara: grupos[2]}
		}
		return ParesJugada{Categoria: ParesPareja, Mascara: grupos[2]}
	default:
		return ParesJugada{Categoria: ParesNinguno}
	}
}

func bitsSet(v uint16) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

// JuegoCategoria classifies a Juego jugada.
type JuegoCategoria int

const (
	JuegoNinguno JuegoCategoria = iota
	JuegoResto
	JuegoTreintaydos
	JuegoTreintayuna
)

// JuegoJugada is the outcome of Mano.Juego.
type JuegoJugada struct {
	Categoria JuegoCategoria
	Resto     uint8 // only meaningful when Categoria == JuegoResto, in [33,40]
}

// Compare returns -1, 0 or 1 as j ranks below, equal to, or above other.
// Treintayuna beats Treintaydos beats every Resto; among Resto hands the
// lower total wins (33 beats 40).
func (j JuegoJugada) Compare(other JuegoJugada) int {
	rj, ro := j.rank(), other.rank()
	switch {
	case rj < ro:
		return -1
	case rj > ro:
		return 1
	default:
		return 0
	}
}

// rank maps a Juego outcome onto a single total-order integer: higher is
// better. Treintayuna > Treintaydos > Resto(33) > ... > Resto(40).
func (j JuegoJugada) rank() int {
	switch j.Categoria {
	case JuegoTreintayuna:
		return 1000
	case JuegoTreintaydos:
		return 999
	case JuegoResto:
		return -int(j.Resto)
	default:
		return -1 << 30
	}
}

// Juego computes the Juego jugada for the hand: present only when
// ValorPuntos is at least 31.
func (m Mano) Juego() JuegoJugada {
	p := m.ValorPuntos()
	switch {
	case p < 31:
		return JuegoJugada{Categoria: JuegoNinguno}
	case p == 31:
		return JuegoJugada{Categoria: JuegoTreintayuna}
	case p == 32:
		return JuegoJugada{Categoria: JuegoTreintaydos}
	default:
		return JuegoJugada{Categoria: JuegoResto, Resto: p}
	}
}

// Lance is one of the four betting phases of a Mus hand.
type Lance int

const (
	Grande Lance = iota
	Chica
	Pares
	Juego
	Punto
)

func (l Lance) String() string {
	switch l {
	case Grande:
		return "Grande"
	case Chica:
		return "Chica"
	case Pares:
		return "Pares"
	case Juego:
		return "Juego"
	case Punto:
		return "Punto"
	default:
		return "Desconocido"
	}
}

// ApuestaMinima is the forced minimum bet: 1 for Grande/Chica, 0 otherwise.
func (l Lance) ApuestaMinima() uint8 {
	if l == Grande || l == Chica {
		return 1
	}
	return 0
}

// Bonus is the extra tanto awarded to Punto's winner on top of the bet.
func (l Lance) Bonus() uint8 {
	if l == Punto {
		return 1
	}
	return 0
}

// HayLance reports whether anyone at the table has a jugada for this
// lance — the weaker of the two qualification predicates, used only to
// decide which lances are listed at all: Grande and Chica are always
// listed; Pares is listed if any hand has a Pares jugada; Juego is listed
// (displacing Punto, which is listed otherwise) if any hand has a Juego
// jugada. This is deliberately distinct from SeJuega: a lance can be
// listed here (someone has a jugada) while still auto-resolving with no
// betting at all, because only one partnership holds it.
func (l Lance) HayLance(manos [4]Mano) bool {
	switch l {
	case Grande, Chica:
		return true
	case Pares:
		return hayJugada(manos, Pares)
	case Juego:
		return hayJugada(manos, Juego)
	case Punto:
		return !hayJugada(manos, Juego)
	default:
		return false
	}
}

// SeJuega reports whether this lance is actually bet on. Grande and Chica
// always are. Pares and Juego require BOTH partnerships — seats 0 and 2,
// and seats 1 and 3 — to hold at least one qualifying hand; when only one
// side qualifies, that side is awarded the jugada outright with no
// betting round at all, so crearEstadoLance must auto-resolve instead of
// opening a turn. Punto uses the same no-betting gate as HayLance: it is
// only ever listed when nobody has Juego, and that same condition governs
// whether it opens a turn.
func (l Lance) SeJuega(manos [4]Mano) bool {
	switch l {
	case Grande, Chica:
		return true
	case Pares:
		return seJuegaJugadas(manos, Pares)
	case Juego:
		return seJuegaJugadas(manos, Juego)
	case Punto:
		return !hayJugada(manos, Juego)
	default:
		return false
	}
}

// hayJugada reports whether any of the four dealt hands has a jugada for
// l (Pares or Juego only).
func hayJugada(manos [4]Mano, l Lance) bool {
	for _, m := range manos {
		if califica(m, l) {
			return true
		}
	}
	return false
}

// seJuegaJugadas reports whether BOTH partnerships — seats 0/2 against
// seats 1/3 — have at least one hand qualifying for l (Pares or Juego
// only): the gate that decides whether the lance is actually bet on.
func seJuegaJugadas(manos [4]Mano, l Lance) bool {
	lado0 := califica(manos[0], l) || califica(manos[2], l)
	lado1 := califica(manos[1], l) || califica(manos[3], l)
	return lado0 && lado1
}

// califica reports per-hand qualification for Pares/Juego, used by
// hayJugada/seJuegaJugadas above and by turnoInicialJugadas below.
func califica(m Mano, l Lance) bool {
	switch l {
	case Pares:
		return m.Pares().Categoria != ParesNinguno
	case Juego:
		return m.Juego().Categoria != JuegoNinguno
	default:
		return true
	}
}

// CompararManos orders a and b according to this lance's comparator:
// returns -1, 0 or 1 as a ranks below, equal to, or above b.
func (l Lance) CompararManos(a, b Mano) int {
	switch l {
	case Grande:
		return compareUint32(a.ValorGrande(), b.ValorGrande())
	case Chica:
		return compareUint32(b.ValorChica(), a.ValorChica())
	case Pares:
		return a.Pares().Compare(b.Pares())
	case Juego:
		return a.Juego().Compare(b.Juego())
	case Punto:
		return compareUint8(a.ValorPuntos(), b.ValorPuntos())
	default:
		return 0
	}
}

func compareUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint8(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MejorMano returns the index (0-3) of the best hand among manos, in
// mano-to-postre seat order, according to this lance's comparator. Ties are
// broken in favor of the earlier seat: the algorithm stable-sorts the
// reversed seat indices and returns the last one, so among equal hands the
// lowest original index survives.
func (l Lance) MejorMano(manos [4]Mano) int {
	indices := []int{3, 2, 1, 0}
	stableSortIndices(indices, func(i, j int) int {
		return l.CompararManos(manos[i], manos[j])
	})
	return indices[len(indices)-1]
}

// stableSortIndices performs a stable insertion sort of idx (small, fixed
// size: always 4 elements in this package) ascending by cmp.
func stableSortIndices(idx []int, cmp func(i, j int) int) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && cmp(idx[j-1], idx[j]) > 0; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
}

// TantosMano returns the bonus tantos a hand earns from its jugada alone,
// awarded even when the lance was never bet on: Pares pays 1/2/3 for
// Pareja/Medias/Duples; Juego pays 2 for Treintaydos or any Resto, 3 for
// Treintayuna; Grande/Chica/Punto pay nothing this way.
func (l Lance) TantosMano(m Mano) uint8 {
	switch l {
	case Pares:
		switch m.Pares().Categoria {
		case ParesPareja:
			return 1
		case ParesMedias:
			return 2
		case ParesDuples:
			return 3
		default:
			return 0
		}
	case Juego:
		switch m.Juego().Categoria {
		case JuegoTreintayuna:
			return 3
		case JuegoTreintaydos, JuegoResto:
			return 2
		default:
			return 0
		}
	default:
		return 0
	}
}

// turnoInicialJugadas decides the initial-to-act seat for Pares/Juego.
// Ordinarily the mano (seat 0) acts first; but when exactly the middle two
// seats (1 and 2) qualify and seats 0 and 3 do not, the first qualifying
// seat is seat 1, and the turn starts there.
func turnoInicialJugadas(manos [4]Mano, l Lance) int {
	qualifies := func(i int) bool { return califica(manos[i], l) }
	if !qualifies(0) && qualifies(1) && qualifies(2) && !qualifies(3) {
		return 1
	}
	return 0
}

// TurnoInicial returns the seat (0-3) that acts first in this lance.
func (l Lance) TurnoInicial(manos [4]Mano) int {
	switch l {
	case Pares, Juego:
		return turnoInicialJugadas(manos, l)
	default:
		return 0
	}
}
