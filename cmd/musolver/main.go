// Command musolver trains CFR strategies for Mus lances and plays them out
// against seated agents. Its two subcommands mirror
// lox-pokerforbots/cmd/solver/main.go's kong-based train/eval split, adapted
// to this game: `train` runs a Trainer to convergence and writes a strategy
// file; `arena` seats four agents (human, random, or a loaded strategy) and
// plays deals to completion, narrating them to stdout.
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/gauleng/musolver-go/pkg/arena"
	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/solver"
	"github.com/gauleng/musolver-go/pkg/tree"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Train TrainCmd `cmd:"" help:"run CFR training and write a strategy file"`
	Arena ArenaCmd `cmd:"" help:"play deals between seated agents"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("musolver"),
		kong.Description("Mus equilibrium solver and arena"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "train":
		err = cli.Train.Run(context.Background())
	case "arena <seat0> <seat1> <seat2> <seat3>":
		err = cli.Arena.Run(context.Background())
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogger(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// TrainCmd runs Trainer.Run over one or every lance and writes the resulting
// StrategyProfile to <output>/strategy.json, along with the StrategyConfig
// metadata needed to reproduce the run.
type TrainCmd struct {
	Iterations      int    `help:"CFR iterations per lance" required:""`
	Lance           string `help:"single lance to train; omitted trains every lance in turn" enum:"grande,chica,pares,juego,punto," default:""`
	Tantos          string `help:"initial score, as N:M" default:"0:0"`
	ActionTree      string `help:"path to persist the generated action tree" default:"config/action_tree.json"`
	Method          string `help:"CFR traversal method" enum:"chance-sampling,external-sampling" default:"chance-sampling"`
	Output          string `help:"directory for the strategy file and checkpoints (default output/<timestamp>)"`
	AbstractGame    bool   `help:"bucket hands through the abstraction layer instead of exact ranks"`
	Seed            int64  `help:"random seed; 0 derives one from the current time"`
	CheckpointEvery int    `help:"write a resumable checkpoint every N iterations (0 disables)" default:"0"`
}

func (cmd *TrainCmd) Run(ctx context.Context) error {
	lances, err := parseLances(cmd.Lance)
	if err != nil {
		return err
	}
	tantos, err := parseTantos(cmd.Tantos)
	if err != nil {
		return err
	}

	outDir := cmd.Output
	if outDir == "" {
		outDir = filepath.Join("output", time.Now().Format("2006-01-02 15:04"))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	method := solver.CfrMethod(cmd.Method)
	cfg := solver.TrainingConfig{
		Lances:          lances,
		TantosIniciales: tantos,
		Method:          method,
		Iterations:      cmd.Iterations,
		DealMode:        solver.DealRandom,
		AbstractGame:    cmd.AbstractGame,
		RaiseSizes:      tree.DefaultRaiseSizes,
		Seed:            cmd.Seed,
	}

	trainer, err := solver.NewTrainer(cfg)
	if err != nil {
		return err
	}

	if cmd.ActionTree != "" {
		root := tree.BuildLanceTree(solver.MaxApuestaFor(lances[0], tantos), cfg.RaiseSizes)
		if err := writeActionTree(cmd.ActionTree, root); err != nil {
			log.Warn("failed to persist action tree", "path", cmd.ActionTree, "err", err)
		}
	}

	if cmd.CheckpointEvery > 0 {
		trainer.EnableCheckpoints(filepath.Join(outDir, "checkpoint.json"), cmd.CheckpointEvery)
	}

	bar := solver.NewProgressBar(cfg)
	if err := trainer.Run(ctx, bar); err != nil {
		return fmt.Errorf("training: %w", err)
	}

	strategyConfig := solver.StrategyConfig{
		TrainerConfig: solver.TrainerConfig{Method: method, Iterations: cmd.Iterations},
		GameConfig: solver.GameConfig{
			Lance:        singleLancePtr(lances),
			AbstractGame: cmd.AbstractGame,
		},
	}
	strategyPath := filepath.Join(outDir, "strategy.json")
	if err := trainer.Profile().SaveToFile(strategyPath, strategyConfig); err != nil {
		return fmt.Errorf("save strategy: %w", err)
	}

	log.Info("training complete", "info_sets", trainer.Profile().NumInfoSets(), "strategy", strategyPath)
	return nil
}

// ArenaCmd seats four agents — one per positional role argument — and plays
// Deals hands between them, narrating each to stdout.
type ArenaCmd struct {
	Seat0    string `arg:"" name:"seat0" help:"agent for seat 0" enum:"cli,random,musolver"`
	Seat1    string `arg:"" name:"seat1" help:"agent for seat 1" enum:"cli,random,musolver"`
	Seat2    string `arg:"" name:"seat2" help:"agent for seat 2" enum:"cli,random,musolver"`
	Seat3    string `arg:"" name:"seat3" help:"agent for seat 3" enum:"cli,random,musolver"`
	Strategy string `help:"strategy file path; required if any seat is musolver"`
	Deals    int    `help:"number of deals to play" default:"1"`
	Seed     int64  `help:"random seed; 0 derives one from the current time"`
}

func (cmd *ArenaCmd) Run(ctx context.Context) error {
	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	roles := [4]string{cmd.Seat0, cmd.Seat1, cmd.Seat2, cmd.Seat3}

	var profile *solver.StrategyProfile
	var gameCfg solver.GameConfig
	for _, role := range roles {
		if role == "musolver" {
			if cmd.Strategy == "" {
				return fmt.Errorf("arena: a musolver seat requires --strategy")
			}
			loaded, loadedCfg, err := solver.LoadFromFile(cmd.Strategy)
			if err != nil {
				return fmt.Errorf("arena: %w", err)
			}
			profile, gameCfg = loaded, loadedCfg.GameConfig
			break
		}
	}

	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	var agents [4]arena.Agent
	for seat, role := range roles {
		name := fmt.Sprintf("seat%d", seat)
		switch role {
		case "cli":
			agents[seat] = arena.NewCLIAgent(name, in, out)
		case "random":
			agents[seat] = arena.NewRandomAgent(name, rng)
		case "musolver":
			agents[seat] = arena.NewMusolverAgent(name, profile, rng)
		default:
			return fmt.Errorf("arena: unknown agent role %q", role)
		}
	}

	arenaCfg := arena.MusArenaConfig{
		TantosIniciales: [2]uint8{0, 0},
		RaiseSizes:      tree.DefaultRaiseSizes,
		AbstractGame:    gameCfg.AbstractGame,
	}
	a := arena.NewMusArena(arenaCfg, agents, arena.NewConsoleKibitzer(os.Stdout), rng)

	deals := cmd.Deals
	if deals <= 0 {
		deals = 1
	}
	for d := 0; d < deals; d++ {
		if _, err := a.PlayDeal(ctx); err != nil {
			return fmt.Errorf("arena: deal %d: %w", d, err)
		}
	}
	return out.Flush()
}

func parseLances(s string) ([]mus.Lance, error) {
	if s == "" {
		return []mus.Lance{mus.Grande, mus.Chica, mus.Pares, mus.Juego, mus.Punto}, nil
	}
	switch strings.ToLower(s) {
	case "grande":
		return []mus.Lance{mus.Grande}, nil
	case "chica":
		return []mus.Lance{mus.Chica}, nil
	case "pares":
		return []mus.Lance{mus.Pares}, nil
	case "juego":
		return []mus.Lance{mus.Juego}, nil
	case "punto":
		return []mus.Lance{mus.Punto}, nil
	default:
		return nil, fmt.Errorf("unknown lance %q", s)
	}
}

func singleLancePtr(lances []mus.Lance) *mus.Lance {
	if len(lances) != 1 {
		return nil
	}
	l := lances[0]
	return &l
}

func parseTantos(s string) ([2]uint8, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return [2]uint8{}, fmt.Errorf("tantos %q must be of the form N:M", s)
	}
	var tantos [2]uint8
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > int(mus.MaxTantos) {
			return [2]uint8{}, fmt.Errorf("tantos %q: invalid score %q", s, part)
		}
		tantos[i] = uint8(n)
	}
	return tantos, nil
}

func writeActionTree(path string, root *tree.ActionNode) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := root.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
