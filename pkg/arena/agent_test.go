package arena

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalObs(actions ...mus.Accion) Observation {
	return Observation{LegalActions: actions}
}

func TestRandomAgentOnlyReturnsLegalActions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	agent := NewRandomAgent("bot", rng)
	obs := legalObs(mus.Paso, mus.Envido(2), mus.OrdagoAccion)

	for i := 0; i < 50; i++ {
		action, err := agent.ChooseAction(obs)
		require.NoError(t, err)
		assert.Contains(t, obs.LegalActions, action)
	}
}

func TestRandomAgentRejectsEmptyLegalActions(t *testing.T) {
	agent := NewRandomAgent("bot", rand.New(rand.NewSource(1)))
	_, err := agent.ChooseAction(Observation{})
	assert.Error(t, err)
}

func TestMusolverAgentFallsBackToUniformWhenInfoSetUnseen(t *testing.T) {
	profile := solver.NewStrategyProfile()
	agent := NewMusolverAgent("musolver", profile, rand.New(rand.NewSource(1)))

	obs := legalObs(mus.Paso, mus.Quiero)
	action, err := agent.ChooseAction(obs)
	require.NoError(t, err)
	assert.Contains(t, obs.LegalActions, action)
}

func TestMusolverAgentPlaysTrainedStrategyDeterministically(t *testing.T) {
	profile := solver.NewStrategyProfile()
	strat := profile.GetOrCreate("test-infoset", []mus.Accion{mus.Paso, mus.Quiero})
	strat.StrategySum[0] = 1
	strat.StrategySum[1] = 0

	agent := NewMusolverAgent("musolver", profile, rand.New(rand.NewSource(1)))
	obs := Observation{InfoSet: "test-infoset", LegalActions: strat.Actions}

	for i := 0; i < 10; i++ {
		action, err := agent.ChooseAction(obs)
		require.NoError(t, err)
		assert.Equal(t, mus.Paso, action)
	}
}

func TestCLIAgentParsesRecognizedActionsAndRejectsIllegalOnes(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("ordago\nquiero\n"))
	var outBuf bytes.Buffer
	out := bufio.NewWriter(&outBuf)
	agent := NewCLIAgent("human", in, out)

	obs := legalObs(mus.Paso, mus.Quiero)
	action, err := agent.ChooseAction(obs)
	require.NoError(t, err)
	assert.Equal(t, mus.Quiero, action)
	assert.Contains(t, outBuf.String(), "not legal")
}

func TestParseAccionRecognizesEnvidoStake(t *testing.T) {
	action, err := parseAccion("envido 5\n")
	require.NoError(t, err)
	assert.Equal(t, mus.Envido(5), action)
}

func TestParseAccionRejectsUnknownWord(t *testing.T) {
	_, err := parseAccion("fold\n")
	assert.Error(t, err)
}
