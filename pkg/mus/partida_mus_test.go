package mus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func escenario1Manos(t *testing.T) [4]Mano {
	t.Helper()
	cadenas := []string{"1234", "57SS", "3334", "257C"}
	var manos [4]Mano
	for i, s := range cadenas {
		m, err := ParseMano(s)
		require.NoError(t, err)
		manos[i] = m
	}
	return manos
}

// TestPasePaseTodosLosLances reproduces the fixture where every partnership
// passes on every lance: the final score is driven entirely by the forced
// minimums and the per-hand jugada bonuses.
func TestPasePaseTodosLosLances(t *testing.T) {
	manos := escenario1Manos(t)
	p := New(manos, [2]uint8{0, 0})

	for !p.Terminada() {
		require.NoError(t, p.Actuar(Paso))
	}

	assert.Equal(t, [2]uint8{5, 2}, p.Tantos())
}

// TestEnviteAceptadoSubeLaApuesta checks that an accepted raise sequence on
// Grande stakes the fully raised amount (not the forced minimum) to the
// hand-comparison winner.
func TestEnviteAceptadoSubeLaApuesta(t *testing.T) {
	manos := escenario1Manos(t)
	p := New(manos, [2]uint8{0, 0})

	require.NoError(t, p.Actuar(Envido(2)))
	require.NoError(t, p.Actuar(Envido(2)))
	require.NoError(t, p.Actuar(Quiero))

	ganadorGrande := Grande.MejorMano(manos) % 2
	assert.Equal(t, uint8(4), p.Tantos()[ganadorGrande])
}

// TestTopeCuarentaPuntos checks that reaching 40 ends the game immediately
// and zeros the opponent, regardless of any lances left unplayed.
func TestTopeCuarentaPuntos(t *testing.T) {
	manos := escenario1Manos(t)
	p := New(manos, [2]uint8{29, 32})

	// Grande and Chica both go pass-pass (forced minimum of 1 each, to
	// partnership 0). Pares also goes pass-pass (no stake, since Pares
	// carries no forced minimum). Juego is raised twice and accepted; the
	// accepted stake alone pushes the hand-comparison winner (partnership
	// 1) past 40, capping the score and zeroing partnership 0 outright.
	require.NoError(t, p.Actuar(Paso)) // Grande
	require.NoError(t, p.Actuar(Paso))
	require.NoError(t, p.Actuar(Paso)) // Chica
	require.NoError(t, p.Actuar(Paso))
	require.NoError(t, p.Actuar(Paso)) // Pares
	require.NoError(t, p.Actuar(Paso))
	require.NoError(t, p.Actuar(Envido(5))) // Juego
	require.NoError(t, p.Actuar(Envido(4)))
	require.NoError(t, p.Actuar(Quiero))

	assert.True(t, p.Terminada())
	assert.Equal(t, [2]uint8{0, 40}, p.Tantos())
}

// TestOrdagoAceptadoPrimerLance checks that an accepted Ordago ends the game
// at 40:0 outright, awarding the partnership that holds the winning Grande
// hand for this deal.
func TestOrdagoAceptadoPrimerLance(t *testing.T) {
	manos := escenario1Manos(t)
	p := New(manos, [2]uint8{0, 0})

	require.NoError(t, p.Actuar(OrdagoAccion))
	require.NoError(t, p.Actuar(Quiero))

	assert.True(t, p.Terminada())
	ganadorGrande := Grande.MejorMano(manos) % 2
	tantos := p.Tantos()
	assert.Equal(t, MaxTantos, tantos[ganadorGrande])
	assert.Equal(t, uint8(0), tantos[1-ganadorGrande])
}

// TestParesCanonicalizacionTresManos1vs2 checks that when seats 1 and 2
// qualify for Pares and seat 3 does not, the initial turn breaks the
// symmetry by starting at seat 1 (the "1 vs 2" canonical split), not seat 0.
func TestParesCanonicalizacionTresManos1vs2(t *testing.T) {
	sinPares, err := ParseMano("1457")
	require.NoError(t, err)
	conPares1, err := ParseMano("1145")
	require.NoError(t, err)
	conPares2, err := ParseMano("4467")
	require.NoError(t, err)

	manos := [4]Mano{sinPares, conPares1, conPares2, sinPares}

	assert.Equal(t, ParesNinguno, manos[0].Pares().Categoria)
	assert.NotEqual(t, ParesNinguno, manos[1].Pares().Categoria)
	assert.NotEqual(t, ParesNinguno, manos[2].Pares().Categoria)
	assert.Equal(t, ParesNinguno, manos[3].Pares().Categoria)

	assert.Equal(t, 1, Pares.TurnoInicial(manos))
}

func TestNewPartidaLanceNilCuandoNoSeJuega(t *testing.T) {
	todasSinPares, err := ParseMano("1457")
	require.NoError(t, err)
	manos := [4]Mano{todasSinPares, todasSinPares, todasSinPares, todasSinPares}

	p := NewPartidaLance(Pares, manos, [2]uint8{0, 0})
	assert.Nil(t, p)
}

// TestParesSeResuelveSinEnviteCuandoSoloUnaParejaCalifica reproduces the
// core case this fix exists for: partnership 0 (seats 0 and 2) holds a
// Pares jugada, partnership 1 (seats 1 and 3) holds none. Pares must still
// appear in the lance list (HayLance — someone has a jugada) but must
// auto-resolve with no betting round at all: after Grande and Chica are
// passed through, play must skip straight to Punto, and the final score
// must reflect only partnership 0's Pares bonus, never a contested stake.
func TestParesSeResuelveSinEnviteCuandoSoloUnaParejaCalifica(t *testing.T) {
	conPares, err := ParseMano("1145")
	require.NoError(t, err)
	sinPares, err := ParseMano("1457")
	require.NoError(t, err)
	require.NotEqual(t, ParesNinguno, conPares.Pares().Categoria)
	require.Equal(t, ParesNinguno, sinPares.Pares().Categoria)
	require.Equal(t, JuegoNinguno, conPares.Juego().Categoria)
	require.Equal(t, JuegoNinguno, sinPares.Juego().Categoria)

	manos := [4]Mano{conPares, sinPares, conPares, sinPares}
	p := New(manos, [2]uint8{0, 0})

	lances := p.Lances()
	assert.Contains(t, lances, Pares)
	assert.NotContains(t, lances, Juego)
	assert.Contains(t, lances, Punto)

	require.NoError(t, p.Actuar(Paso)) // Grande
	require.NoError(t, p.Actuar(Paso))
	require.NoError(t, p.Actuar(Paso)) // Chica
	require.NoError(t, p.Actuar(Paso))

	// Pares must already be settled with no turn open: play lands directly
	// on Punto, the next lance in the list.
	lanceActual, ok := p.LanceActual()
	require.True(t, ok)
	assert.Equal(t, Punto, lanceActual)

	require.NoError(t, p.Actuar(Paso)) // Punto
	require.NoError(t, p.Actuar(Paso))

	// Only partnership 0's Pares bonus (1 tanto for a Pareja) plus the
	// forced Grande/Chica minimums and Punto's bonus should have been
	// awarded; no envite was ever raised or accepted.
	tantos := p.Tantos()
	assert.Greater(t, tantos[0], tantos[1])
}

func TestPartidaMusLancesPuntoCuandoNoHayJuego(t *testing.T) {
	bajas, err := ParseMano("1457")
	require.NoError(t, err)
	manos := [4]Mano{bajas, bajas, bajas, bajas}

	p := New(manos, [2]uint8{0, 0})
	lances := p.Lances()
	assert.Contains(t, lances, Punto)
	assert.NotContains(t, lances, Juego)
}
