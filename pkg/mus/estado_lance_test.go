package mus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstadoLanceEnvidoSubeElBote(t *testing.T) {
	e := NewEstadoLance(1, 40, 0)
	_, err := e.Actuar(Envido(2))
	require.NoError(t, err)
	bote := e.Bote()
	assert.Equal(t, uint8(2), bote[1].Tantos)
	require.NotNil(t, e.Turno())
	assert.Equal(t, 1, *e.Turno())
}

func TestEstadoLanceEnvidoSeClampaAlTope(t *testing.T) {
	e := NewEstadoLance(1, 5, 0)
	_, err := e.Actuar(Envido(20))
	require.NoError(t, err)
	assert.Equal(t, uint8(5), e.Bote()[1].Tantos)
}

func TestEstadoLanceOrdagoDominaCualquierEnvido(t *testing.T) {
	e := NewEstadoLance(1, 40, 0)
	_, err := e.Actuar(Envido(10))
	require.NoError(t, err)
	_, err = e.Actuar(OrdagoAccion)
	require.NoError(t, err)
	assert.Equal(t, ApuestaOrdago, e.Bote()[1].Tipo)
}

func TestEstadoLanceNoSePuedeSubirUnOrdago(t *testing.T) {
	e := NewEstadoLance(1, 40, 0)
	_, err := e.Actuar(OrdagoAccion)
	require.NoError(t, err)
	_, err = e.Actuar(Envido(2))
	require.Error(t, err)
}

func TestEstadoLancePasoPasoCierraSinApuesta(t *testing.T) {
	e := NewEstadoLance(1, 40, 0)
	_, err := e.Actuar(Paso)
	require.NoError(t, err)
	require.NotNil(t, e.Turno(), "un unico paso sin apuesta debe ceder el turno, no cerrar el lance")

	_, err = e.Actuar(Paso)
	require.NoError(t, err)
	assert.Nil(t, e.Turno())
	assert.True(t, e.Activos()[0])
	assert.True(t, e.Activos()[1])
}

func TestEstadoLancePasoTrasEnvidoEsRetirada(t *testing.T) {
	e := NewEstadoLance(1, 40, 0)
	_, err := e.Actuar(Envido(2))
	require.NoError(t, err)
	_, err = e.Actuar(Paso)
	require.NoError(t, err)

	assert.Nil(t, e.Turno())
	assert.False(t, e.Activos()[1])
	require.NotNil(t, e.Ganador())
	assert.Equal(t, 0, *e.Ganador())
}

func TestEstadoLanceQuieroSinEnviteEsError(t *testing.T) {
	e := NewEstadoLance(1, 40, 0)
	_, err := e.Actuar(Quiero)
	require.Error(t, err)
}

// TestResolverLanceCierraElTurnoAunqueEstuvieraAbierto checks that
// ResolverLance force-closes an EstadoLance that NewEstadoLance always
// seeds with a live turn — the mechanism crearEstadoLance relies on to
// auto-settle a Pares/Juego lance that only one partnership qualifies for,
// with no betting round ever opened.
func TestResolverLanceCierraElTurnoAunqueEstuvieraAbierto(t *testing.T) {
	e := NewEstadoLance(0, 40, 0)
	require.NotNil(t, e.Turno(), "NewEstadoLance siempre arranca con un turno abierto")

	manos := [4]Mano{}
	e.ResolverLance(manos, Grande)

	assert.Nil(t, e.Turno())
	require.NotNil(t, e.Ganador())
	assert.True(t, e.SeQuieren(), "sin envite, ambas parejas siguen activas")
}
