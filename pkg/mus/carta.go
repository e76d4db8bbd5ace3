package mus

// Carta is one of the ten card identities a Mus hand string can name. Dos
// and Tres are accepted on parse (players commonly write a full Spanish
// deck's 2s and 3s when recording hands) but collapse onto As and Rey
// respectively for every ranking purpose: Valor, Equal and Compare never
// distinguish Dos from As, or Tres from Rey.
type Carta uint8

const (
	As Carta = iota
	Dos
	Cuatro
	Cinco
	Seis
	Siete
	Sota
	Caballo
	Rey
	Tres
)

// CartasMus is the eight distinct card faces present in a physical Mus deck.
var CartasMus = [8]Carta{As, Cuatro, Cinco, Seis, Siete, Sota, Caballo, Rey}

// Valor returns the ranking value of the card: {1,4,5,6,7,10,11,12}. Dos
// reports the same value as As; Tres reports the same value as Rey.
func (c Carta) Valor() uint8 {
	switch c {
	case As, Dos:
		return 1
	case Cuatro:
		return 4
	case Cinco:
		return 5
	case Seis:
		return 6
	case Siete:
		return 7
	case Sota:
		return 10
	case Caballo:
		return 11
	case Rey, Tres:
		return 12
	default:
		return 0
	}
}

// Equal reports whether two cards rank identically (by Valor, not by
// identity: As.Equal(Dos) is true).
func (c Carta) Equal(other Carta) bool {
	return c.Valor() == other.Valor()
}

// Compare returns -1, 0 or 1 as c ranks below, equal to, or above other.
func (c Carta) Compare(other Carta) int {
	switch {
	case c.Valor() < other.Valor():
		return -1
	case c.Valor() > other.Valor():
		return 1
	default:
		return 0
	}
}

// ParseCarta maps a single rune onto a Carta, accepting both the canonical
// Mus alphabet (A,4,5,6,7,S,C,R) and the literal Spanish-deck digits a
// recorded hand might use (1,2,3).
func ParseCarta(r rune) (Carta, error) {
	switch r {
	case 'A', '1':
		return As, nil
	case '2':
		return Dos, nil
	case '4':
		return Cuatro, nil
	case '5':
		return Cinco, nil
	case '6':
		return Seis, nil
	case '7':
		return Siete, nil
	case 'S':
		return Sota, nil
	case 'C':
		return Caballo, nil
	case 'R':
		return Rey, nil
	case '3':
		return Tres, nil
	default:
		return 0, &CaracterNoValidoError{Caracter: r}
	}
}

// CartaFromValor maps a raw ranking value back onto its canonical (Mus
// deck) card identity. Dos and Tres are never returned, since they are
// parse-only aliases for As and Rey.
func CartaFromValor(v uint8) (Carta, error) {
	switch v {
	case 1:
		return As, nil
	case 4:
		return Cuatro, nil
	case 5:
		return Cinco, nil
	case 6:
		return Seis, nil
	case 7:
		return Siete, nil
	case 10:
		return Sota, nil
	case 11:
		return Caballo, nil
	case 12:
		return Rey, nil
	default:
		return 0, &ValorNoValidoError{Valor: v}
	}
}

// String renders the card's own identity (not its collapsed ranking value):
// Dos renders as '2' and Tres as '3', distinct from As/Rey.
func (c Carta) String() string {
	switch c {
	case As:
		return "A"
	case Dos:
		return "2"
	case Cuatro:
		return "4"
	case Cinco:
		return "5"
	case Seis:
		return "6"
	case Siete:
		return "7"
	case Sota:
		return "S"
	case Caballo:
		return "C"
	case Rey:
		return "R"
	case Tres:
		return "3"
	default:
		return "?"
	}
}
