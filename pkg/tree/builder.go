package tree

import "github.com/gauleng/musolver-go/pkg/mus"

// BuildLanceTree constructs the canonical action tree for one lance's
// betting round: repeated Envido raises up to apuestaMaxima, each answerable
// with Quiero/Paso/a further Envido/Ordago, plus the no-bet Paso/Paso close
// and the Ordago branch at every decision point below the cap. apuestaMaxima
// is the lance's current cap (EstadoLance.apuestaMaxima): once a standing bet
// reaches it, no further Envido or Ordago is offered, only Quiero/Paso.
//
// Mirrors original_source/src/game/action_tree.rs's doc-illustrated
// add_terminal_action/add_non_terminal_action builder pair (ported here as
// ActionNode.AddTerminal/AddNonTerminal), but generates the tree
// programmatically instead of by hand since the cap varies per training
// run.
func BuildLanceTree(apuestaMaxima uint8, raiseSizes []uint8) *ActionNode {
	root := NewNonTerminal(0)
	buildOpening(root, 0, apuestaMaxima, raiseSizes)
	return root
}

// buildOpening attaches the two opening actions (Paso, Envido-or-Ordago)
// available to the first player to act in a fresh betting round.
func buildOpening(n *ActionNode, stake uint8, cap uint8, raiseSizes []uint8) {
	// Paso: the other side gets one chance to open a bet instead of the
	// round closing outright (EstadoLance's "pasoPrevio" rule).
	otherGetsLastWord := n.AddNonTerminal(mus.Paso, 1)
	otherGetsLastWord.AddTerminal(mus.Paso)
	buildRaiseBranch(otherGetsLastWord, stake, cap, raiseSizes, 0)

	buildRaiseBranch(n, stake, cap, raiseSizes, 1)
}

// buildRaiseBranch attaches every Envido size (plus Ordago, when the stake
// has not already reached cap) as an opening or re-raise action from n,
// each leading to the responder's Quiero/Paso/re-raise choice.
func buildRaiseBranch(n *ActionNode, stake uint8, cap uint8, raiseSizes []uint8, responder int) {
	if stake >= cap {
		return
	}
	for _, size := range raiseSizes {
		nuevo := nextStake(stake, size, cap)
		respond := n.AddNonTerminal(mus.Envido(size), responder)
		respond.AddTerminal(mus.Paso)
		respond.AddTerminal(mus.Quiero)
		buildRaiseBranch(respond, nuevo, cap, raiseSizes, 1-responder)
	}
	ordago := n.AddNonTerminal(mus.OrdagoAccion, responder)
	ordago.AddTerminal(mus.Paso)
	ordago.AddTerminal(mus.Quiero)
}

func nextStake(stake, size, cap uint8) uint8 {
	incremento := size
	if incremento < 2 {
		incremento = 2
	}
	nuevo := stake + incremento
	if nuevo > cap {
		nuevo = cap
	}
	return nuevo
}

// DefaultRaiseSizes is the canonical set of envido sizes offered at every
// decision point: a minimum raise (2) and a pot-sized shove-adjacent raise
// (5), matching the sizes used in spec.md's scenario fixtures (`E2`).
// Keeping the raise abstraction to two sizes bounds tree depth; richer
// abstractions can widen this list per lance.
var DefaultRaiseSizes = []uint8{2, 5}
