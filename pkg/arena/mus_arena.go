package arena

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gauleng/musolver-go/pkg/game"
	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/solver"
	"github.com/gauleng/musolver-go/pkg/tree"
)

// MusArenaConfig is the fixed setup for one or more played-out deals: the
// starting score and the raise-size abstraction the action tree (and so
// the legal-action set offered to every agent) is built with. AbstractGame
// must match whatever a loaded MusolverAgent's strategy was trained with,
// or every lookup in it will miss and fall back to uniform play.
type MusArenaConfig struct {
	TantosIniciales [2]uint8
	RaiseSizes      []uint8
	AbstractGame    bool
}

// MusArena plays a full PartidaMus (every lance of one deal, starting each
// deal from cfg.TantosIniciales) between four seated Agents. Betting is
// per-partnership in this engine (EstadoLance.Turno reports 0 or 1, not a
// seat), so by convention the lower-numbered seat of the acting
// partnership — seat 0 for partnership 0, seat 1 for partnership 1 — is the
// one consulted for every envite decision; seats 2 and 3 hold cards and are
// narrated but never asked to act, matching the real game's rule that only
// one player per partnership speaks for bets.
type MusArena struct {
	cfg      MusArenaConfig
	agents   [4]Agent
	kibitzer Kibitzer
	rng      *rand.Rand
}

// NewMusArena builds an arena seating agents (indexed by seat 0..3),
// narrating to kibitzer (NullKibitzer{} to stay silent), dealing with rng.
func NewMusArena(cfg MusArenaConfig, agents [4]Agent, kibitzer Kibitzer, rng *rand.Rand) *MusArena {
	if kibitzer == nil {
		kibitzer = NullKibitzer{}
	}
	return &MusArena{cfg: cfg, agents: agents, kibitzer: kibitzer, rng: rng}
}

// speakingSeat is the convention described on MusArena: partnership p is
// represented by seat p for betting purposes.
func speakingSeat(partnership int) int {
	return partnership
}

// PlayDeal deals one fresh hand and plays it to completion (every one of
// its lances), returning the running score it leaves the game at. ctx is
// checked between actions, never mid-action.
func (a *MusArena) PlayDeal(ctx context.Context) ([2]uint8, error) {
	manos := mus.Repartir(a.rng)
	partida := mus.New(manos, a.cfg.TantosIniciales)
	a.kibitzer.OnDeal(manos, partida.Tantos())

	var (
		lanceActual     mus.Lance
		haveLanceActual bool
		history         []mus.Accion
	)

	for !partida.Terminada() {
		if err := ctx.Err(); err != nil {
			return partida.Tantos(), err
		}

		lance, ok := partida.LanceActual()
		if !ok {
			break
		}
		if !haveLanceActual || lance != lanceActual {
			lanceActual = lance
			haveLanceActual = true
			history = nil
			a.kibitzer.OnLanceStart(lance)
		}

		turno := partida.Turno()
		if turno == nil {
			break
		}
		partnership := *turno
		seat := speakingSeat(partnership)

		action, err := a.decide(partida, lance, partnership, seat, history)
		if err != nil {
			return partida.Tantos(), err
		}

		// Capture the betting round's state before acting: if this action
		// closes it, this same object (EstadoLance.Actuar mutates its
		// receiver in place) still answers Turno/Ganador/Tantos correctly
		// even after PartidaMus has already moved p.estadoLance on to the
		// next lance.
		estadoAntes := partida.EstadoLanceActual()
		manosDeal := partida.Manos()

		if err := partida.Actuar(action); err != nil {
			return partida.Tantos(), fmt.Errorf("arena: seat %d played illegal action %s: %w", seat, action, err)
		}
		a.kibitzer.OnAction(seat, lance, history, action)
		history = append(history, action)

		if estadoAntes.Turno() == nil {
			if _, closed := estadoAntes.Tantos(manosDeal, lance); closed {
				resultado := mus.ResultadoLance{Ganador: *estadoAntes.Ganador(), Tantos: estadoAntes.TantosApostados()}
				a.kibitzer.OnLanceEnd(lance, resultado, partida.Tantos())
			}
		}
	}

	tantos := partida.Tantos()
	ganador := 0
	if tantos[1] > tantos[0] {
		ganador = 1
	}
	a.kibitzer.OnGameEnd(tantos, ganador)
	return tantos, nil
}

// decide builds the Observation for the acting seat and asks its Agent for
// an action: the legal-action set comes from the action tree built with
// this arena's raise abstraction and the same apuesta cap PartidaMus itself
// would use; the information-set key comes from a LanceGame bound to this
// exact deal, so a MusolverAgent's lookup matches what training produced.
func (a *MusArena) decide(
	partida *mus.PartidaMus,
	lance mus.Lance,
	partnership, seat int,
	history []mus.Accion,
) (mus.Accion, error) {
	apuestaMaxima := solver.MaxApuestaFor(lance, partida.Tantos())
	root := tree.BuildLanceTree(apuestaMaxima, a.cfg.RaiseSizes)
	node := tree.SearchActionNode(root, history)
	legalActions := node.Actions()

	manos := partida.Manos()
	template := game.New(lance, partida.Tantos(), a.cfg.AbstractGame)
	deal, ok := template.NewDeal(manos)
	infoSet := ""
	if ok {
		player := deal.GamePlayerForPartnership(partnership)
		infoSet = deal.InfoSetStr(player, history)
	}

	obs := Observation{
		Seat:         seat,
		Partnership:  partnership,
		Mano:         manos[seat],
		Lance:        lance,
		Tantos:       partida.Tantos(),
		History:      history,
		InfoSet:      infoSet,
		LegalActions: legalActions,
	}
	return a.agents[seat].ChooseAction(obs)
}
