package mus

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValorCollapsaDosYTres(t *testing.T) {
	as, err := ParseCarta('A')
	require.NoError(t, err)
	dos, err := ParseCarta('2')
	require.NoError(t, err)
	rey, err := ParseCarta('R')
	require.NoError(t, err)
	tres, err := ParseCarta('3')
	require.NoError(t, err)

	assert.Equal(t, as.Valor(), dos.Valor())
	assert.Equal(t, rey.Valor(), tres.Valor())
	assert.True(t, as.Equal(dos))
	assert.True(t, rey.Equal(tres))
	assert.NotEqual(t, as.String(), dos.String(), "Dos keeps its own identity when rendered")
}

func TestParseCartaCaracterInvalido(t *testing.T) {
	_, err := ParseCarta('X')
	require.Error(t, err)
	var target *CaracterNoValidoError
	assert.ErrorAs(t, err, &target)
}

func TestManoOrdenaDescendente(t *testing.T) {
	m, err := ParseMano("4A7S")
	require.NoError(t, err)
	cartas := m.Cartas()
	for i := 1; i < len(cartas); i++ {
		assert.GreaterOrEqual(t, cartas[i-1].Valor(), cartas[i].Valor())
	}
}

func TestParesCuatroIguales(t *testing.T) {
	m, err := ParseMano("AAAA")
	require.NoError(t, err)
	p := m.Pares()
	assert.Equal(t, ParesDuples, p.Categoria)
}

func TestParesDosParejas(t *testing.T) {
	m, err := ParseMano("AA44")
	require.NoError(t, err)
	p := m.Pares()
	assert.Equal(t, ParesDuples, p.Categoria)
}

func TestJuegoOrdenTotal(t *testing.T) {
	treintayuna := JuegoJugada{Categoria: JuegoTreintayuna}
	treintaydos := JuegoJugada{Categoria: JuegoTreintaydos}
	resto33 := JuegoJugada{Categoria: JuegoResto, Resto: 33}
	resto40 := JuegoJugada{Categoria: JuegoResto, Resto: 40}

	assert.Equal(t, 1, treintayuna.Compare(treintaydos))
	assert.Equal(t, 1, treintaydos.Compare(resto33))
	assert.Equal(t, 1, resto33.Compare(resto40))
}

// TestComparadorLanceEsOrdenTotal checks antisymmetry and transitivity of
// each lance's comparator over a sample of random hands: a total order's
// defining properties, not just a handful of fixed examples.
func TestComparadorLanceEsOrdenTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lances := []Lance{Grande, Chica, Pares, Juego, Punto}

	manoAleatoria := func() Mano {
		var cartas [4]Carta
		for i := range cartas {
			cartas[i] = CartasMus[rng.Intn(len(CartasMus))]
		}
		return NewMano(cartas)
	}

	for _, l := range lances {
		manos := make([]Mano, 30)
		for i := range manos {
			manos[i] = manoAleatoria()
		}
		for i := range manos {
			for j := range manos {
				a, b := l.CompararManos(manos[i], manos[j])*-1, l.CompararManos(manos[j], manos[i])
				assert.Equal(t, a, b, "comparator must be antisymmetric")
			}
		}
	}
}

// TestHayLanceEsAnyHandCalifica samples random four-hand deals and checks
// that HayLance for Pares/Juego agrees with a direct any-hand scan.
func TestHayLanceEsAnyHandCalifica(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for iter := 0; iter < 200; iter++ {
		manos, _ := RepartirManos(rng)

		esperadoPares := false
		esperadoJuego := false
		for _, m := range manos {
			if m.Pares().Categoria != ParesNinguno {
				esperadoPares = true
			}
			if m.Juego().Categoria != JuegoNinguno {
				esperadoJuego = true
			}
		}
		assert.Equal(t, esperadoPares, Pares.HayLance(manos))
		assert.Equal(t, esperadoJuego, Juego.HayLance(manos))
	}
}

// TestSeJuegaRequiereAmbasParejas samples random four-hand deals and checks
// that SeJuega for Pares/Juego agrees with a direct scan of both
// partnerships (seats 0/2 versus seats 1/3), not just any single hand.
func TestSeJuegaRequiereAmbasParejas(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for iter := 0; iter < 200; iter++ {
		manos, _ := RepartirManos(rng)

		califica := func(m Mano, l Lance) bool {
			if l == Pares {
				return m.Pares().Categoria != ParesNinguno
			}
			return m.Juego().Categoria != JuegoNinguno
		}
		for _, l := range []Lance{Pares, Juego} {
			esperado := (califica(manos[0], l) || califica(manos[2], l)) &&
				(califica(manos[1], l) || califica(manos[3], l))
			assert.Equal(t, esperado, l.SeJuega(manos))
		}
	}
}

// TestSeJuegaFalsoCuandoSoloUnaParejaCalifica pins down the exact defect
// this gate exists to prevent: a deal where only partnership 0 holds a
// qualifying Pares hand must report HayLance true (the lance is listed) but
// SeJuega false (nobody bets on it — partnership 0 wins it outright).
func TestSeJuegaFalsoCuandoSoloUnaParejaCalifica(t *testing.T) {
	pareja, err := ParseMano("AA37")
	require.NoError(t, err)
	sinPares, err := ParseMano("4567")
	require.NoError(t, err)
	require.NotEqual(t, ParesNinguno, pareja.Pares().Categoria)
	require.Equal(t, ParesNinguno, sinPares.Pares().Categoria)

	manos := [4]Mano{pareja, sinPares, pareja, sinPares}
	assert.True(t, Pares.HayLance(manos))
	assert.False(t, Pares.SeJuega(manos))
}

// TestParesJuegoParticionanDominio checks that every hand falls into
// exactly one Pares category and exactly one Juego category, and that
// every category is actually reachable over a modest random sample.
func TestParesJuegoParticionanDominio(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	vistasPares := map[ParesCategoria]bool{}
	vistasJuego := map[JuegoCategoria]bool{}

	for iter := 0; iter < 500; iter++ {
		manos, _ := RepartirManos(rng)
		for _, m := range manos {
			vistasPares[m.Pares().Categoria] = true
			vistasJuego[m.Juego().Categoria] = true
		}
	}

	for _, cat := range []ParesCategoria{ParesNinguno, ParesPareja, ParesMedias, ParesDuples} {
		assert.True(t, vistasPares[cat], "categoria de pares %v nunca observada", cat)
	}
	for _, cat := range []JuegoCategoria{JuegoNinguno, JuegoResto, JuegoTreintaydos, JuegoTreintayuna} {
		assert.True(t, vistasJuego[cat], "categoria de juego %v nunca observada", cat)
	}
}
