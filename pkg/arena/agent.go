// Package arena plays a full PartidaMus to completion between four seats,
// each driven by an Agent, narrating the hand through a Kibitzer. Mirrors
// lox-pokerforbots/sdk's Agent.MakeDecision(tableState, validActions)
// shape, adapted to Mus's partnership (not per-seat) betting.
package arena

import (
	"bufio"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/solver"
)

// Observation is everything an Agent is given to decide on one action: its
// own seat and hand, the lance and running score, the betting history so
// far this lance, the precomputed information-set key (what a musolver
// strategy file indexes by), and the actions legal right now. MusArena
// builds and passes a fresh Observation at every decision point rather than
// handing agents a live handle into its own state, per the explicit
// history-threading design (see kibitzer.go's doc comment).
type Observation struct {
	Seat         int
	Partnership  int
	Mano         mus.Mano
	Lance        mus.Lance
	Tantos       [2]uint8
	History      []mus.Accion
	InfoSet      string
	LegalActions []mus.Accion
}

// Agent chooses an action given an Observation. Implementations must only
// return actions present in obs.LegalActions.
type Agent interface {
	Name() string
	ChooseAction(obs Observation) (mus.Accion, error)
}

// RandomAgent picks uniformly among the legal actions, useful as an
// opponent baseline and for exercising the arena loop without a trained
// strategy.
type RandomAgent struct {
	AgentName string
	rng       *rand.Rand
}

// NewRandomAgent builds a RandomAgent drawing from rng.
func NewRandomAgent(name string, rng *rand.Rand) *RandomAgent {
	return &RandomAgent{AgentName: name, rng: rng}
}

func (a *RandomAgent) Name() string { return a.AgentName }

func (a *RandomAgent) ChooseAction(obs Observation) (mus.Accion, error) {
	if len(obs.LegalActions) == 0 {
		return mus.Accion{}, fmt.Errorf("arena: no legal actions offered to %s", a.AgentName)
	}
	return obs.LegalActions[a.rng.Intn(len(obs.LegalActions))], nil
}

// MusolverAgent plays the average strategy a solver.StrategyProfile
// converged to, falling back to uniform play over the legal actions when an
// information set was never visited during training (an untrained corner of
// the abstraction, or a deal the trained lances/tantos configuration never
// covered).
type MusolverAgent struct {
	AgentName string
	Profile   *solver.StrategyProfile
	rng       *rand.Rand
}

// NewMusolverAgent builds a MusolverAgent over profile, sampling its mixed
// strategies from rng.
func NewMusolverAgent(name string, profile *solver.StrategyProfile, rng *rand.Rand) *MusolverAgent {
	return &MusolverAgent{AgentName: name, Profile: profile, rng: rng}
}

func (a *MusolverAgent) Name() string { return a.AgentName }

func (a *MusolverAgent) ChooseAction(obs Observation) (mus.Accion, error) {
	if len(obs.LegalActions) == 0 {
		return mus.Accion{}, fmt.Errorf("arena: no legal actions offered to %s", a.AgentName)
	}
	strat, ok := a.Profile.Get(obs.InfoSet)
	if !ok {
		return obs.LegalActions[a.rng.Intn(len(obs.LegalActions))], nil
	}
	probs := strat.GetAverageStrategy()
	r := a.rng.Float64()
	for i, p := range probs {
		r -= p
		if r <= 0 {
			return strat.Actions[i], nil
		}
	}
	return strat.Actions[len(strat.Actions)-1], nil
}

// CLIAgent prompts a human at in/out for each decision, retrying on
// unparseable or illegal input. The action alphabet accepted is a loose
// superset of Accion.String()'s compact rendering: paso/p, quiero/q,
// ordago/o, and envido/e N for a raise of N (at least 2).
type CLIAgent struct {
	AgentName string
	in        *bufio.Reader
	out       *bufio.Writer
}

// NewCLIAgent wraps in/out (typically os.Stdin/os.Stdout) as a human-driven
// agent named name.
func NewCLIAgent(name string, in *bufio.Reader, out *bufio.Writer) *CLIAgent {
	return &CLIAgent{AgentName: name, in: in, out: out}
}

func (a *CLIAgent) Name() string { return a.AgentName }

func (a *CLIAgent) ChooseAction(obs Observation) (mus.Accion, error) {
	if len(obs.LegalActions) == 0 {
		return mus.Accion{}, fmt.Errorf("arena: no legal actions offered to %s", a.AgentName)
	}
	for {
		fmt.Fprintf(a.out, "%s, your hand is %s (%s). Legal actions: %s\n> ",
			a.AgentName, obs.Mano, obs.Lance, formatActions(obs.LegalActions))
		a.out.Flush()

		line, err := a.in.ReadString('\n')
		if err != nil {
			return mus.Accion{}, fmt.Errorf("arena: reading input for %s: %w", a.AgentName, err)
		}
		action, err := parseAccion(line)
		if err != nil {
			fmt.Fprintf(a.out, "  %v\n", err)
			continue
		}
		if !containsAccion(obs.LegalActions, action) {
			fmt.Fprintf(a.out, "  %s is not legal here\n", action.String())
			continue
		}
		return action, nil
	}
}

func formatActions(actions []mus.Accion) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func containsAccion(actions []mus.Accion, a mus.Accion) bool {
	for _, candidate := range actions {
		if candidate == a {
			return true
		}
	}
	return false
}

// parseAccion recognizes the loose human-typed alphabet described on
// CLIAgent.
func parseAccion(line string) (mus.Accion, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return mus.Accion{}, fmt.Errorf("empty input")
	}
	switch fields[0] {
	case "paso", "p":
		return mus.Paso, nil
	case "quiero", "q":
		return mus.Quiero, nil
	case "ordago", "o":
		return mus.OrdagoAccion, nil
	case "envido", "e":
		if len(fields) < 2 {
			return mus.Accion{}, fmt.Errorf("envido requires a stake, e.g. \"envido 2\"")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 || n > 255 {
			return mus.Accion{}, fmt.Errorf("invalid envido stake %q", fields[1])
		}
		return mus.Envido(uint8(n)), nil
	default:
		return mus.Accion{}, fmt.Errorf("unrecognized action %q (try paso, quiero, ordago, envido N)", fields[0])
	}
}
