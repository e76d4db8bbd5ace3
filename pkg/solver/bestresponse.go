package solver

import (
	"github.com/gauleng/musolver-go/pkg/game"
	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/tree"
)

// OpponentHand is one candidate pair of hands for the opponent partnership,
// together with its probability mass. BestResponseValue folds a slice of
// these into the posterior-weighted terminal payoff, reweighting the
// distribution at every opponent decision node along the way.
type OpponentHand struct {
	Hand1 mus.Mano
	Hand2 mus.Mano
	Prob  float64
}

// BestResponseValue computes player's expected value from playing a perfect
// best response against sp's stored average strategy, holding player's own
// two hands fixed (hand1 at partnership 0's mano seat, hand2 at its partner
// seat) and folding over opponentHands as the posterior over the other
// partnership's hands. dealTemplate supplies the lance/tantos/abstract
// settings every candidate deal is built with via NewDeal.
//
// At a terminal node, the value is the posterior-weighted Utility across
// opponentHands. At a node belonging to the opponent, each candidate hand's
// weight is multiplied by the opponent's average-strategy probability for
// the action taken, and the branch values are combined by the renormalized
// weights. At a node belonging to player, the value is the maximum over
// actions (the best response itself). The result minus the training-time
// utility bounds the trained strategy's exploitability.
func (sp *StrategyProfile) BestResponseValue(
	dealTemplate *game.LanceGame,
	hand1, hand2 mus.Mano,
	node *tree.ActionNode,
	history []mus.Accion,
	player int,
	opponentHands []OpponentHand,
) float64 {
	if node.IsTerminal() {
		total := 0.0
		for _, oh := range opponentHands {
			total += oh.Prob
		}
		if total == 0 {
			return 0
		}
		payoff := 0.0
		for _, oh := range opponentHands {
			manos := [4]mus.Mano{hand1, oh.Hand1, hand2, oh.Hand2}
			dealt, ok := dealTemplate.NewDeal(manos)
			if !ok {
				continue
			}
			payoff += (oh.Prob / total) * dealt.Utility(player, history)
		}
		return payoff
	}

	actingPlayer := node.Player()
	actions := node.Actions()
	newOpponentHands := append([]OpponentHand(nil), opponentHands...)
	weights := make([]float64, len(actions))
	util := make([]float64, len(actions))
	maxUtil := 0.0

	for i, a := range actions {
		if player != actingPlayer {
			for j, oh := range opponentHands {
				manos := [4]mus.Mano{hand1, oh.Hand1, hand2, oh.Hand2}
				dealt, ok := dealTemplate.NewDeal(manos)
				if !ok {
					continue
				}
				infoSet := dealt.InfoSetStr(actingPlayer, history)
				strat, found := sp.Get(infoSet)
				if !found {
					continue
				}
				avg := strat.GetAverageStrategy()
				newOpponentHands[j].Prob = oh.Prob * avg[i]
				weights[i] += newOpponentHands[j].Prob
			}
		}

		child := node.Child(a)
		util[i] = sp.BestResponseValue(dealTemplate, hand1, hand2, child, appendHistory(history, a), player, newOpponentHands)
		if player == actingPlayer && (i == 0 || util[i] > maxUtil) {
			maxUtil = util[i]
		}
	}

	if player != actingPlayer {
		sumWeights := 0.0
		for _, w := range weights {
			sumWeights += w
		}
		if sumWeights == 0 {
			return 0
		}
		value := 0.0
		for i := range actions {
			value += util[i] * (weights[i] / sumWeights)
		}
		return value
	}
	return maxUtil
}

// Exploitability averages BestResponseValue over ownHands (the candidate
// hand pairs player itself might hold) against opponentHands, for both
// players, giving each a best-response value against sp's trained average
// strategy. A larger value means the trained strategy leaves more value on
// the table against a perfect counter-strategy. Callers choose the
// granularity of both hand distributions: a handful of representative hands
// for a quick regression check, or the full 330-shape enumeration from
// game.HandShapes for a slow, exhaustive evaluation.
func Exploitability(
	sp *StrategyProfile,
	dealTemplate *game.LanceGame,
	root *tree.ActionNode,
	ownHands []OpponentHand,
	opponentHands []OpponentHand,
) [2]float64 {
	var result [2]float64
	for player := 0; player < 2; player++ {
		total, weight := 0.0, 0.0
		for _, own := range ownHands {
			v := sp.BestResponseValue(dealTemplate, own.Hand1, own.Hand2, root, nil, player, opponentHands)
			total += own.Prob * v
			weight += own.Prob
		}
		if weight > 0 {
			result[player] = total / weight
		}
	}
	return result
}
