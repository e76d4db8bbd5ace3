// Package abstraction collapses a Mano's full detail down to the small
// number of buckets that actually matter for a given lance's betting
// strategy, so the CFR node store only has to learn one strategy per
// bucket rather than one per exact hand.
package abstraction

import (
	"fmt"

	"github.com/gauleng/musolver-go/pkg/mus"
)

// cerdos counts the "pig" cards in a hand: As and Rey, the two extremes
// Grande actually cares about (everything between them only matters by
// relative order, which the raw comparator already handles; what the
// abstraction needs is how many of the best cards a hand holds).
func cerdos(m mus.Mano) int {
	n := 0
	for _, c := range m.Cartas() {
		if c.Valor() == mus.As.Valor() || c.Valor() == mus.Rey.Valor() {
			n++
		}
	}
	return n
}

// pitos counts the low cards a Chica hand holds: As, Cuatro and Cinco, the
// cards that actually win Chica pots.
func pitos(m mus.Mano) int {
	n := 0
	for _, c := range m.Cartas() {
		v := c.Valor()
		if v == mus.As.Valor() || v == mus.Cuatro.Valor() || v == mus.Cinco.Valor() {
			n++
		}
	}
	return n
}

// AbstractGrande buckets a hand by how many pig cards (As/Rey) it holds:
// 0, 1, 2, or 3-or-more.
type AbstractGrande int

const (
	NoCerdos AbstractGrande = iota
	UnCerdo
	DosCerdos
	TresCerdos
)

func (a AbstractGrande) String() string {
	switch a {
	case NoCerdos:
		return "NoCerdos"
	case UnCerdo:
		return "UnCerdo"
	case DosCerdos:
		return "DosCerdos"
	case TresCerdos:
		return "TresCerdos"
	default:
		return "?"
	}
}

// BucketGrande computes the AbstractGrande bucket for m.
func BucketGrande(m mus.Mano) AbstractGrande {
	n := cerdos(m)
	if n > 3 {
		n = 3
	}
	return AbstractGrande(n)
}

// AbstractChica buckets a hand by how many low cards (As/Cuatro/Cinco) it
// holds: 0, 1, 2, or 3-or-more.
type AbstractChica int

const (
	NoPitos AbstractChica = iota
	UnPito
	DosPitos
	TresPitos
)

func (a AbstractChica) String() string {
	switch a {
	case NoPitos:
		return "NoPitos"
	case UnPito:
		return "UnPito"
	case DosPitos:
		return "DosPitos"
	case TresPitos:
		return "TresPitos"
	default:
		return "?"
	}
}

// BucketChica computes the AbstractChica bucket for m.
func BucketChica(m mus.Mano) AbstractChica {
	n := pitos(m)
	if n > 3 {
		n = 3
	}
	return AbstractChica(n)
}

// AbstractPares buckets a hand by its Pares category plus the rank of the
// card that makes the pair/trio/duples: the strategic difference between
// "Pareja de Ases" and "Pareja de Doses" matters a great deal in real play,
// which the raw ParesJugada mask captures but does not name compactly.
type AbstractPares struct {
	Categoria mus.ParesCategoria
	Rango     uint8 // highest-valor rank backing the jugada; 0 for ParesNinguno
}

func (a AbstractPares) String() string {
	if a.Categoria == mus.ParesNinguno {
		return "Ninguno"
	}
	return fmt.Sprintf("%d:%d", a.Categoria, a.Rango)
}

// BucketPares computes the AbstractPares bucket for m.
func BucketPares(m mus.Mano) AbstractPares {
	p := m.Pares()
	if p.Categoria == mus.ParesNinguno {
		return AbstractPares{Categoria: mus.ParesNinguno}
	}
	mascara := p.Mascara
	if p.Categoria == mus.ParesDuples && mascara&(mascara-1) == 0 {
		// Four of a kind: Pares stores its rank one bit up.
		mascara >>= 1
	}
	rango := uint8(0)
	for v := uint8(12); ; v-- {
		if mascara&(1<<v) != 0 {
			rango = v
			break
		}
		if v == 0 {
			break
		}
	}
	return AbstractPares{Categoria: p.Categoria, Rango: rango}
}

// AbstractJuego buckets a hand by its Juego category, splitting Resto by
// its exact point total (33 through 40): eleven buckets in total, since
// every point total between the forced extremes changes whether a later
// envite is worth calling.
type AbstractJuego int

const (
	JuegoBucketNinguno AbstractJuego = iota
	JuegoBucketTreintayuna
	JuegoBucketTreintaydos
	JuegoBucketResto33
	JuegoBucketResto34
	JuegoBucketResto35
	JuegoBucketResto36
	JuegoBucketResto37
	JuegoBucketResto38
	JuegoBucketResto39
	JuegoBucketResto40
)

// NumJuegoBuckets is the total number of distinct AbstractJuego buckets.
const NumJuegoBuckets = int(JuegoBucketResto40) + 1

// BucketJuego computes the AbstractJuego bucket for m.
func BucketJuego(m mus.Mano) AbstractJuego {
	j := m.Juego()
	switch j.Categoria {
	case mus.JuegoNinguno:
		return JuegoBucketNinguno
	case mus.JuegoTreintayuna:
		return JuegoBucketTreintayuna
	case mus.JuegoTreintaydos:
		return JuegoBucketTreintaydos
	default:
		return JuegoBucketResto33 + AbstractJuego(j.Resto-33)
	}
}

// BucketPunto is the identity abstraction: Punto's winner is decided by the
// raw point total, so there is nothing to collapse.
func BucketPunto(m mus.Mano) uint8 {
	return m.ValorPuntos()
}

// Bucket dispatches to the right per-lance bucket function and renders it
// as a compact string suitable for embedding in an info-set key.
func Bucket(l mus.Lance, m mus.Mano) string {
	switch l {
	case mus.Grande:
		return BucketGrande(m).String()
	case mus.Chica:
		return BucketChica(m).String()
	case mus.Pares:
		return BucketPares(m).String()
	case mus.Juego:
		return fmt.Sprintf("%d", BucketJuego(m))
	case mus.Punto:
		return fmt.Sprintf("%d", BucketPunto(m))
	default:
		return "?"
	}
}
