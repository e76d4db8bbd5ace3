package mus

import "strings"

// Mano is a Mus hand: exactly four cards, always kept sorted descending by
// Valor. The sort is stable: cards of equal value keep their relative
// insertion order, which only matters for display, never for ranking.
type Mano struct {
	cartas [4]Carta
}

// NewMano builds a Mano from exactly four cards, sorting them descending by
// Valor.
func NewMano(cartas [4]Carta) Mano {
	m := Mano{cartas: cartas}
	m.ordenar()
	return m
}

func (m *Mano) ordenar() {
	// Insertion sort: four elements, stable, descending by Valor.
	for i := 1; i < len(m.cartas); i++ {
		for j := i; j > 0 && m.cartas[j-1].Valor() < m.cartas[j].Valor(); j-- {
			m.cartas[j-1], m.cartas[j] = m.cartas[j], m.cartas[j-1]
		}
	}
}

// Cartas returns the four cards in descending order.
func (m Mano) Cartas() [4]Carta {
	return m.cartas
}

// Carta returns the card at position i (0 = highest).
func (m Mano) Carta(i int) Carta {
	return m.cartas[i]
}

// ParseMano parses a four-character hand string, one card per rune.
func ParseMano(s string) (Mano, error) {
	runes := []rune(s)
	if len(runes) != 4 {
		return Mano{}, &AccionNoValidaError{Reason: "una mano debe tener exactamente cuatro cartas"}
	}
	var cartas [4]Carta
	for i, r := range runes {
		c, err := ParseCarta(r)
		if err != nil {
			return Mano{}, err
		}
		cartas[i] = c
	}
	return NewMano(cartas), nil
}

// String renders the hand using each card's own identity, in sorted order.
func (m Mano) String() string {
	var sb strings.Builder
	for _, c := range m.cartas {
		sb.WriteString(c.String())
	}
	return sb.String()
}
