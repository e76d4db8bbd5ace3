package arena

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomArena(rng *rand.Rand, out *bytes.Buffer) *MusArena {
	agents := [4]Agent{
		NewRandomAgent("seat0", rng),
		NewRandomAgent("seat1", rng),
		NewRandomAgent("seat2", rng),
		NewRandomAgent("seat3", rng),
	}
	cfg := MusArenaConfig{
		TantosIniciales: [2]uint8{0, 0},
		RaiseSizes:      tree.DefaultRaiseSizes,
		AbstractGame:    false,
	}
	return NewMusArena(cfg, agents, NewConsoleKibitzer(out), rng)
}

// TestPlayDealCompletesAndRespectsFortyPointCap runs several deals between
// four random agents and checks the invariant from spec §8: both scores
// stay within [0,40] and never both exceed 0 once one side reaches 40.
func TestPlayDealCompletesAndRespectsFortyPointCap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var out bytes.Buffer
	a := randomArena(rng, &out)

	for i := 0; i < 20; i++ {
		tantos, err := a.PlayDeal(context.Background())
		require.NoError(t, err)
		assert.LessOrEqual(t, tantos[0], uint8(40))
		assert.LessOrEqual(t, tantos[1], uint8(40))
		if tantos[0] == 40 {
			assert.Equal(t, uint8(0), tantos[1])
		}
		if tantos[1] == 40 {
			assert.Equal(t, uint8(0), tantos[0])
		}
		assert.NotEmpty(t, out.String())
	}
}

// TestPlayDealRespectsContextCancellation checks that a cancelled context
// stops the deal instead of playing it to completion.
func TestPlayDealRespectsContextCancellation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var out bytes.Buffer
	a := randomArena(rng, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.PlayDeal(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// observingAgent records every Observation it is handed, then delegates to
// a RandomAgent for the actual choice, so a test can inspect what the arena
// exposed to an agent across a full deal.
type observingAgent struct {
	inner *RandomAgent
	seen  []Observation
}

func (o *observingAgent) Name() string { return o.inner.Name() }

func (o *observingAgent) ChooseAction(obs Observation) (mus.Accion, error) {
	o.seen = append(o.seen, obs)
	return o.inner.ChooseAction(obs)
}

// TestDecideOffersOnlyLegalActionsAndAPopulatedInfoSet checks that every
// Observation an agent sees carries a non-empty legal-action set and a
// non-empty information-set key (Grande and Chica always qualify for every
// deal, so the lookup into a LanceGame-derived InfoSetStr never falls back
// to the empty-string default).
func TestDecideOffersOnlyLegalActionsAndAPopulatedInfoSet(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seat0 := &observingAgent{inner: NewRandomAgent("seat0", rng)}
	agents := [4]Agent{
		seat0,
		NewRandomAgent("seat1", rng),
		NewRandomAgent("seat2", rng),
		NewRandomAgent("seat3", rng),
	}
	cfg := MusArenaConfig{RaiseSizes: tree.DefaultRaiseSizes}
	a := NewMusArena(cfg, agents, nil, rng)

	_, err := a.PlayDeal(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, seat0.seen)
	for _, obs := range seat0.seen {
		assert.NotEmpty(t, obs.LegalActions)
		assert.NotEmpty(t, obs.InfoSet)
	}
}
