package mus

import "math/rand"

// FrecBarajaMus gives each of the eight distinct Mus faces its count in the
// 40-card Spanish deck used to play: As and Rey each absorb their collapsed
// partner's four cards (Dos into As, Tres into Rey), so each carries eight
// physical cards; the rest carry four each.
var FrecBarajaMus = map[Carta]int{
	As:      8,
	Cuatro:  4,
	Cinco:   4,
	Seis:    4,
	Siete:   4,
	Sota:    4,
	Caballo: 4,
	Rey:     8,
}

// Baraja is the 40-card Mus deck: a fixed multiset of the eight distinct
// faces, dealt and reshuffled as a unit.
type Baraja struct {
	cartas []Carta
}

// NewBaraja builds a full, unshuffled 40-card deck, faces grouped in
// CartasMus order.
func NewBaraja() *Baraja {
	b := &Baraja{cartas: make([]Carta, 0, 40)}
	for _, c := range CartasMus {
		for i := 0; i < FrecBarajaMus[c]; i++ {
			b.cartas = append(b.cartas, c)
		}
	}
	return b
}

// Barajar shuffles the deck in place using rng (Fisher-Yates).
func (b *Baraja) Barajar(rng *rand.Rand) {
	rng.Shuffle(len(b.cartas), func(i, j int) {
		b.cartas[i], b.cartas[j] = b.cartas[j], b.cartas[i]
	})
}

// PrimerasNCartas returns a copy of the first n cards of the deck in its
// current order, without consuming them.
func (b *Baraja) PrimerasNCartas(n int) []Carta {
	out := make([]Carta, n)
	copy(out, b.cartas[:n])
	return out
}

// Cartas returns the deck's cards in current order.
func (b *Baraja) Cartas() []Carta {
	return b.cartas
}

// RepartirManos deals four four-card hands off the top of the deck, in seat
// order 0..3, each seat receiving one card per round (the traditional Mus
// deal order), and returns the cards remaining (the resto, available for
// descartes).
func RepartirManos(rng *rand.Rand) ([4]Mano, []Carta) {
	b := NewBaraja()
	b.Barajar(rng)

	var crudas [4][4]Carta
	pos := 0
	for ronda := 0; ronda < 4; ronda++ {
		for asiento := 0; asiento < 4; asiento++ {
			crudas[asiento][ronda] = b.cartas[pos]
			pos++
		}
	}

	var manos [4]Mano
	for i := range manos {
		manos[i] = NewMano(crudas[i])
	}

	resto := make([]Carta, len(b.cartas)-pos)
	copy(resto, b.cartas[pos:])
	return manos, resto
}

// Repartir deals a single fresh set of four hands from rng: RepartirManos
// without the leftover cards.
func Repartir(rng *rand.Rand) [4]Mano {
	manos, _ := RepartirManos(rng)
	return manos
}
