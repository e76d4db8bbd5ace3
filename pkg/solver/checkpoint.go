package solver

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gauleng/musolver-go/pkg/mus"
)

const checkpointFileVersion = 1

// checkpointSnapshot is the on-disk shape of a Trainer in progress: enough
// to rebuild an identical CFR node store (full regret sums, not just the
// strategy-file's average average) and the seed from which the dealing RNG
// is replayed on load (spec §5's "expose a seed" / "checkpoint... and
// permit resuming"). The replay redraws one deal per completed iteration;
// see LoadTrainerFromCheckpoint for when that matches an uninterrupted run.
type checkpointSnapshot struct {
	Version         int                       `json:"version"`
	Config          TrainingConfig            `json:"config"`
	LanceActual     int                       `json:"lance_actual"`
	IteracionActual int                       `json:"iteracion_actual"`
	RNGSeed         int64                     `json:"rng_seed"`
	Nodes           map[string]nodeCheckpoint `json:"nodes"`
}

type nodeCheckpoint struct {
	Actions     []mus.Accion `json:"actions"`
	RegretSum   []float64    `json:"regret_sum"`
	StrategySum []float64    `json:"strategy_sum"`
}

// SaveCheckpoint atomically writes t's full resumable state to path:
// encode to a temp file in the destination directory, then rename over the
// target, so a crash mid-write never leaves a truncated checkpoint in place.
func (t *Trainer) SaveCheckpoint(path string) error {
	snap := t.buildCheckpoint()

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return invalidStrategyPath(path, fmt.Errorf("create checkpoint dir: %w", err))
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return invalidStrategyPath(path, fmt.Errorf("create checkpoint temp: %w", err))
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return invalidStrategyPath(path, fmt.Errorf("encode checkpoint: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return invalidStrategyPath(path, fmt.Errorf("close checkpoint temp: %w", err))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return invalidStrategyPath(path, fmt.Errorf("persist checkpoint: %w", err))
	}
	return nil
}

func (t *Trainer) buildCheckpoint() checkpointSnapshot {
	profile := t.Profile()
	nodes := make(map[string]nodeCheckpoint, profile.NumInfoSets())
	for infoSet, strat := range profile.strategies {
		nodes[infoSet] = nodeCheckpoint{
			Actions:     strat.Actions,
			RegretSum:   strat.RegretSum,
			StrategySum: strat.StrategySum,
		}
	}
	return checkpointSnapshot{
		Version:         checkpointFileVersion,
		Config:          t.cfg,
		LanceActual:     t.lanceActual,
		IteracionActual: t.iteracionActual,
		RNGSeed:         t.seed,
		Nodes:           nodes,
	}
}

// LoadTrainerFromCheckpoint rebuilds a Trainer from a checkpoint file
// written by SaveCheckpoint: the node store (regrets and strategy sums, not
// just the average), the lance/iteration cursor, and the dealing RNG
// replayed forward by redrawing (and discarding) one deal per completed
// iteration. That equals the draws training consumed only when every
// iteration's first deal was used, as for Grande and Chica; when NewRandom
// had to redraw a deal that did not qualify for the lance, the resumed deal
// sequence differs from a continuous run's. The external-sampling action
// RNG is not replayed either: it starts afresh from the configured seed.
func LoadTrainerFromCheckpoint(path string) (*Trainer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalidStrategyPath(path, err)
	}
	var snap checkpointSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, parseStrategyJSONError(err)
	}
	if snap.Version != checkpointFileVersion {
		return nil, parseStrategyJSONError(fmt.Errorf("unsupported checkpoint version %d", snap.Version))
	}
	if err := snap.Config.Validate(); err != nil {
		return nil, parseStrategyJSONError(fmt.Errorf("checkpoint config invalid: %w", err))
	}

	t, err := NewTrainer(snap.Config)
	if err != nil {
		return nil, err
	}
	t.lanceActual = snap.LanceActual
	t.iteracionActual = snap.IteracionActual
	t.seed = snap.RNGSeed
	t.rng = rand.New(rand.NewSource(snap.RNGSeed))

	if snap.Config.DealMode == DealRandom {
		drawsSoFar := snap.LanceActual*snap.Config.Iterations + snap.IteracionActual
		for i := 0; i < drawsSoFar; i++ {
			mus.Repartir(t.rng)
		}
	}

	profile := NewStrategyProfile()
	for infoSet, node := range snap.Nodes {
		strat := NewStrategy(infoSet, node.Actions)
		copy(strat.RegretSum, node.RegretSum)
		copy(strat.StrategySum, node.StrategySum)
		profile.strategies[infoSet] = strat
	}
	t.cfr = &CFR{profile: profile, rng: t.cfr.rng}

	return t, nil
}
