package solver

import (
	"math/rand"

	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/tree"
)

// Game is the surface CFR needs from a dealt game instance: the terminal
// payoff for a finished history, and the information-set key a history maps
// to for a given acting player. A game.LanceGame, already bound to one deal
// via NewRandom or NewIter, satisfies this.
type Game interface {
	Utility(player int, history []mus.Accion) float64
	InfoSetStr(player int, history []mus.Accion) string
}

// CFR runs Counterfactual Regret Minimization traversals over an action
// tree, accumulating regrets and average strategy into a StrategyProfile.
// A single CFR value is reused across many dealt games (one game per
// traversal); the profile it owns is the node store, the only state that
// survives between iterations.
type CFR struct {
	profile *StrategyProfile
	rng     *rand.Rand
}

// NewCFR creates a solver with an empty node store. rng is only consulted
// by ExternalCFR, to sample the non-traversing player's actions.
func NewCFR(rng *rand.Rand) *CFR {
	return &CFR{profile: NewStrategyProfile(), rng: rng}
}

// Profile returns the node store accumulated so far.
func (c *CFR) Profile() *StrategyProfile {
	return c.profile
}

// ChanceCFR runs one full chance-sampled traversal of root for player,
// against game's single dealt chance outcome, starting with both players'
// reach probabilities at 1. It explores every action at every node (only
// the card deal itself is sampled, by the caller choosing which Game to
// pass in), updating player's regrets and average strategy in post-order.
func (c *CFR) ChanceCFR(game Game, root *tree.ActionNode, player int) float64 {
	return c.chanceCFR(game, root, player, nil, 1, 1)
}

// ChanceCFRWeighted is ChanceCFR for a chance outcome that itself carries a
// known probability mass smaller than 1 (the weighted-exhaustive dealing
// mode, spec §4.6's NewIter): the deal's probability seeds the opponent's
// initial reach weight po, so the resulting regret accumulation is exactly
// what summing ChanceCFR over every possible deal, each scaled by its own
// probability, would produce.
func (c *CFR) ChanceCFRWeighted(game Game, root *tree.ActionNode, player int, dealProb float64) float64 {
	return c.chanceCFR(game, root, player, nil, 1, dealProb)
}

func (c *CFR) chanceCFR(game Game, node *tree.ActionNode, player int, history []mus.Accion, pi, po float64) float64 {
	if node.IsTerminal() {
		return game.Utility(player, history)
	}

	p := node.Player()
	actions := node.Actions()
	infoSet := game.InfoSetStr(p, history)
	strategy := c.profile.GetOrCreate(infoSet, actions)
	sigma := strategy.GetStrategy()

	util := make([]float64, len(actions))
	nodeUtil := 0.0
	for i, a := range actions {
		child := node.Child(a)
		childHistory := appendHistory(history, a)

		var cv float64
		if p == player {
			cv = c.chanceCFR(game, child, player, childHistory, pi*sigma[i], po)
		} else {
			cv = c.chanceCFR(game, child, player, childHistory, pi, po*sigma[i])
		}
		util[i] = cv
		nodeUtil += sigma[i] * cv
	}

	if p == player {
		regrets := make([]float64, len(actions))
		for i := range actions {
			regrets[i] = po * (util[i] - nodeUtil)
		}
		strategy.UpdateRegrets(regrets)
		strategy.UpdateStrategy(sigma, pi)
	}

	return nodeUtil
}

// ExternalCFR runs one External-Sampling traversal of root for player: every
// action is explored at player's own nodes (regrets accrued unweighted,
// since only one chance outcome and one opponent path are ever sampled per
// call), but only a single action, sampled from the current strategy, is
// followed at the opponent's nodes.
func (c *CFR) ExternalCFR(game Game, root *tree.ActionNode, player int) float64 {
	return c.externalCFR(game, root, player, nil)
}

func (c *CFR) externalCFR(game Game, node *tree.ActionNode, player int, history []mus.Accion) float64 {
	if node.IsTerminal() {
		return game.Utility(player, history)
	}

	p := node.Player()
	actions := node.Actions()
	infoSet := game.InfoSetStr(p, history)
	strategy := c.profile.GetOrCreate(infoSet, actions)
	sigma := strategy.GetStrategy()

	if p == player {
		util := make([]float64, len(actions))
		nodeUtil := 0.0
		for i, a := range actions {
			child := node.Child(a)
			util[i] = c.externalCFR(game, child, player, appendHistory(history, a))
			nodeUtil += sigma[i] * util[i]
		}

		regrets := make([]float64, len(actions))
		for i := range actions {
			regrets[i] = util[i] - nodeUtil
		}
		strategy.UpdateRegrets(regrets)
		strategy.UpdateStrategy(sigma, 1)
		return nodeUtil
	}

	i := sampleIndex(sigma, c.rng)
	child := node.Child(actions[i])
	return c.externalCFR(game, child, player, appendHistory(history, actions[i]))
}

// sampleIndex draws an index from a probability distribution that sums to
// (approximately) 1, falling back to the last index on floating-point
// rounding that leaves r short of exhausting the mass.
func sampleIndex(dist []float64, rng *rand.Rand) int {
	r := rng.Float64()
	for i, p := range dist {
		r -= p
		if r <= 0 {
			return i
		}
	}
	return len(dist) - 1
}

// appendHistory grows a fresh slice rather than reusing history's backing
// array, so sibling branches explored from the same node never alias each
// other's action sequence.
func appendHistory(history []mus.Accion, a mus.Accion) []mus.Accion {
	out := make([]mus.Accion, len(history)+1)
	copy(out, history)
	out[len(history)] = a
	return out
}
