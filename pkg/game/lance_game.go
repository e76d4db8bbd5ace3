// Package game bridges the Mus engine to the CFR solver: it turns a single
// lance's betting round into the two-player zero-sum sampler the solver's
// traversal needs (a precomputed information-set prefix per player, a
// dealing distribution, and a utility function over finished histories).
package game

import (
	"fmt"
	"math/rand"

	"github.com/gauleng/musolver-go/pkg/abstraction"
	"github.com/gauleng/musolver-go/pkg/mus"
)

// LanceGame adapts one lance of Mus to the solver's player-0/player-1
// convention. The engine numbers seats 0..3 and partnerships by seat parity;
// LanceGame additionally remaps partnership id to "game player" id so that
// game player 0 is always whichever partnership acts first in this
// particular deal (the engine's own turn order occasionally hands first
// action to partnership 1, in the Pares/Juego symmetry-break case), keeping
// the action tree's "player 0 acts first at the root" assumption valid
// regardless of the deal.
type LanceGame struct {
	lance    mus.Lance
	tantos   [2]uint8
	abstract bool

	dealt    bool
	manos    [4]mus.Mano
	swapped  bool
	prefijos [2]string
}

// New constructs a game template for lance, with tantos as the score each
// partnership carries into the lance (affects 40-point capping inside
// Utility) and abstract selecting whether information sets are rendered
// through the coarse per-lance bucket abstraction or the literal hand
// strings. The template holds no deal; draw one via NewRandom or NewIter
// before calling Utility or InfoSetStr.
func New(lance mus.Lance, tantos [2]uint8, abstract bool) *LanceGame {
	return &LanceGame{lance: lance, tantos: tantos, abstract: abstract}
}

// NewRandom shuffles a Mus deck and redeals until the lance qualifies
// (Pares and Juego do not occur on every deal), returning a fresh
// deal-bound game derived from g's lance/tantos/abstract settings.
func (g *LanceGame) NewRandom(rng *rand.Rand) *LanceGame {
	ng := &LanceGame{lance: g.lance, tantos: g.tantos, abstract: g.abstract}
	for {
		manos := mus.Repartir(rng)
		if g.lance.SeJuega(manos) {
			ng.withDeal(manos)
			return ng
		}
	}
}

// NewDeal binds manos directly (seats 0/2 partnership 0, seats 1/3
// partnership 1) rather than drawing them, returning ok=false if the lance
// does not qualify for this particular deal. Used by offline evaluation
// (best-response value), which needs to probe specific candidate hands
// rather than sample from a distribution.
func (g *LanceGame) NewDeal(manos [4]mus.Mano) (deal *LanceGame, ok bool) {
	if !g.lance.SeJuega(manos) {
		return nil, false
	}
	ng := &LanceGame{lance: g.lance, tantos: g.tantos, abstract: g.abstract}
	ng.withDeal(manos)
	return ng, true
}

// HandShape is one of the 330 distinct four-card multisets over the eight
// Mus faces, alongside the marginal probability of drawing exactly that
// multiset as one hand from the full 40-card deck.
type HandShape struct {
	Mano mus.Mano
	Prob float64
}

var cachedHandShapes []HandShape

// HandShapes enumerates every one of the 330 canonical four-card hand
// shapes with its marginal draw probability. Callers of pkg/solver's
// Exploitability can pass this as the candidate-hand distribution for an
// exhaustive, if slow, best-response computation.
func HandShapes() []HandShape {
	if cachedHandShapes != nil {
		return cachedHandShapes
	}
	faces := mus.CartasMus
	deckSize := 0
	for _, c := range faces {
		deckSize += mus.FrecBarajaMus[c]
	}
	totalWays := binomial(deckSize, 4)

	var shapes []HandShape
	var counts [8]int
	var rec func(idx, remaining int)
	rec = func(idx, remaining int) {
		if idx == len(faces)-1 {
			counts[idx] = remaining
			shapes = append(shapes, buildHandShape(faces, counts, totalWays))
			return
		}
		maxForFace := mus.FrecBarajaMus[faces[idx]]
		if maxForFace > remaining {
			maxForFace = remaining
		}
		for c := 0; c <= maxForFace; c++ {
			counts[idx] = c
			rec(idx+1, remaining-c)
		}
	}
	rec(0, 4)
	cachedHandShapes = shapes
	return shapes
}

func buildHandShape(faces [8]mus.Carta, counts [8]int, totalWays float64) HandShape {
	var cartas [4]mus.Carta
	pos := 0
	ways := 1.0
	for i, c := range counts {
		for j := 0; j < c; j++ {
			cartas[pos] = faces[i]
			pos++
		}
		ways *= binomial(mus.FrecBarajaMus[faces[i]], c)
	}
	return HandShape{Mano: mus.NewMano(cartas), Prob: ways / totalWays}
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	return result
}

// NewIter enumerates deals by pairing every one of the 330 canonical
// four-card hand shapes for partnership 0 with every shape for partnership
// 1 (each shape dealt identically to both of its partnership's seats),
// weighting each pair by the product of the two shapes' independent
// hypergeometric draw probabilities, and calls f once per pair that
// qualifies for g's lance with that joint weight.
//
// This is a deliberate simplification of a fully exact four-seat exhaustive
// dealer (which would have to track residual per-face frequencies jointly
// across all four hands): treating the two partnership hands as
// independently drawn slightly overstates deals that share scarce faces
// between partnerships. It never produces a HandConfiguration other than
// CuatroManos or DosManos, since both seats of a partnership always hold
// the same shape and so always agree on qualification. See DESIGN.md.
func (g *LanceGame) NewIter(f func(game *LanceGame, prob float64)) {
	shapes := HandShapes()
	for _, a := range shapes {
		for _, b := range shapes {
			manos := [4]mus.Mano{a.Mano, b.Mano, a.Mano, b.Mano}
			if !g.lance.SeJuega(manos) {
				continue
			}
			ng := &LanceGame{lance: g.lance, tantos: g.tantos, abstract: g.abstract}
			ng.withDeal(manos)
			f(ng, a.Prob*b.Prob)
		}
	}
}

func (g *LanceGame) withDeal(manos [4]mus.Mano) {
	g.manos = manos
	g.dealt = true
	g.swapped = g.lance.TurnoInicial(manos)%2 == 1

	var config abstraction.HandConfiguration
	var rendered [2]string
	if g.abstract {
		config, rendered = abstraction.NormalizarManoAbstracta(manos, g.lance)
	} else {
		config, rendered = abstraction.NormalizarMano(manos, g.lance)
	}
	if g.swapped {
		rendered[0], rendered[1] = rendered[1], rendered[0]
	}
	tantos := g.tantos
	if g.swapped {
		tantos[0], tantos[1] = tantos[1], tantos[0]
	}
	g.prefijos = [2]string{
		fmt.Sprintf("%d:%d|%s|%s|%s", tantos[0], tantos[1], g.lance, config, rendered[0]),
		fmt.Sprintf("%d:%d|%s|%s|%s", tantos[1], tantos[0], g.lance, config, rendered[1]),
	}
}

// partida replays history on a fresh deal-bound PartidaMus and returns it,
// already at the post-history state.
func (g *LanceGame) partida() (*mus.PartidaMus, error) {
	p := mus.NewPartidaLance(g.lance, g.manos, g.tantos)
	if p == nil {
		return nil, fmt.Errorf("game: lance %s does not qualify for this deal", g.lance)
	}
	return p, nil
}

// Utility plays history (a sequence of actions from the root of the lance's
// action tree) against g's deal and returns player's margin of final
// tantos: realTantos[player] - realTantos[1-player]. "Real" partnership ids
// are remapped from game-player ids through g.swapped, so that the history
// (recorded assuming game player 0 acted first) replays onto whichever
// partnership actually held the first turn for this deal.
func (g *LanceGame) Utility(player int, history []mus.Accion) float64 {
	p, err := g.partida()
	if err != nil {
		return 0
	}
	for _, a := range history {
		if p.Terminada() {
			break
		}
		if err := p.Actuar(a); err != nil {
			break
		}
	}
	tantos := p.Tantos()
	real := func(gamePlayer int) uint8 {
		if g.swapped {
			return tantos[1-gamePlayer]
		}
		return tantos[gamePlayer]
	}
	return float64(real(player)) - float64(real(1-player))
}

// InfoSetStr concatenates the deal's precomputed per-player prefix with the
// compact history rendering (Accion.String() per action), producing the
// key the solver's node store uses for this player's information set.
func (g *LanceGame) InfoSetStr(player int, history []mus.Accion) string {
	s := g.prefijos[player]
	for _, a := range history {
		s += a.String()
	}
	return s
}

// GamePlayerForPartnership maps an engine partnership id (0 or 1, stable
// across the whole PartidaMus) onto this deal's game-player id (which one
// acts first in the action tree, per g.swapped). An arena driving a real
// PartidaMus alongside a LanceGame-based lookup needs this to know which
// InfoSetStr/Utility player argument corresponds to the partnership whose
// turn the engine reports.
func (g *LanceGame) GamePlayerForPartnership(partnership int) int {
	if g.swapped {
		return 1 - partnership
	}
	return partnership
}
