package mus

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarajaTieneCuarentaCartas(t *testing.T) {
	b := NewBaraja()
	assert.Len(t, b.Cartas(), 40)

	conteo := map[Carta]int{}
	for _, c := range b.Cartas() {
		conteo[c]++
	}
	for carta, frec := range FrecBarajaMus {
		assert.Equal(t, frec, conteo[carta])
	}
}

func TestRepartirManosReparteDieciseisCartasUnicas(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	manos, resto := RepartirManos(rng)

	require.Len(t, resto, 40-16)

	vistos := 0
	for _, m := range manos {
		vistos += len(m.Cartas())
	}
	assert.Equal(t, 16, vistos)
}

func TestBarajarEsDeterministaPorSemilla(t *testing.T) {
	r1 := rand.New(rand.NewSource(99))
	r2 := rand.New(rand.NewSource(99))

	m1, _ := RepartirManos(r1)
	m2, _ := RepartirManos(r2)

	assert.Equal(t, m1, m2)
}
