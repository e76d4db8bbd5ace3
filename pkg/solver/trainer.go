package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/gauleng/musolver-go/pkg/game"
	"github.com/gauleng/musolver-go/pkg/mus"
	"github.com/gauleng/musolver-go/pkg/tree"
)

// DealMode selects how Trainer draws the deal fed to each CFR traversal.
type DealMode int

const (
	// DealRandom draws one fresh deal per iteration (chance sampling proper).
	DealRandom DealMode = iota
	// DealExhaustive sweeps game.LanceGame.NewIter's full weighted
	// enumeration every iteration instead of sampling one deal; only
	// ChanceSampling tolerates this, since ExternalSampling relies on a
	// single chance outcome per traversal to keep its unweighted regret
	// accumulation unbiased.
	DealExhaustive
)

// TrainingConfig is the training-time configuration a Trainer runs with, and
// the half of a persisted strategy's metadata that records how training was
// invoked (spec's TrainerConfig, widened with the settings this
// implementation actually needs to reproduce a run).
type TrainingConfig struct {
	Lances          []mus.Lance
	TantosIniciales [2]uint8
	Method          CfrMethod
	Iterations      int
	DealMode        DealMode
	AbstractGame    bool
	RaiseSizes      []uint8
	Seed            int64
}

// Validate rejects configurations the trainer cannot run.
func (c TrainingConfig) Validate() error {
	if len(c.Lances) == 0 {
		return errors.New("solver: training config requires at least one lance")
	}
	if c.Iterations <= 0 {
		return errors.New("solver: iterations must be > 0")
	}
	if c.Method != ChanceSampling && c.Method != ExternalSampling {
		return fmt.Errorf("solver: unsupported cfr method %q", c.Method)
	}
	if c.DealMode == DealExhaustive && c.Method != ChanceSampling {
		return errors.New("solver: exhaustive dealing is only supported with chance-sampling")
	}
	if len(c.RaiseSizes) == 0 {
		return errors.New("solver: training config requires at least one raise size")
	}
	return nil
}

// DefaultTrainingConfig returns a conservative single-lance configuration
// suitable for a smoke run: Grande, starting 0:0, chance-sampling, the
// default raise abstraction.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Lances:          []mus.Lance{mus.Grande},
		TantosIniciales: [2]uint8{0, 0},
		Method:          ChanceSampling,
		Iterations:      10000,
		DealMode:        DealRandom,
		RaiseSizes:      []uint8{2, 5},
	}
}

// ProgressReporter receives one Add(n) call after every completed training
// iteration; schollz/progressbar/v3's *progressbar.ProgressBar satisfies
// this, as does a no-op stub in tests.
type ProgressReporter interface {
	Add(n int) error
}

// NewProgressBar builds a schollz/progressbar/v3 bar sized to the trainer's
// total iteration count across every lance it will run, matching the
// original Rust trainer's indicatif::ProgressBar (spec §9's design note).
func NewProgressBar(cfg TrainingConfig) *progressbar.ProgressBar {
	total := int64(cfg.Iterations) * int64(len(cfg.Lances))
	return progressbar.Default(total, "training")
}

// Trainer runs CFR over TrainingConfig.Lances in turn, accumulating every
// lance's information sets into a single shared StrategyProfile (each
// lance's info-set strings already carry the lance name in their prefix, so
// merging never collides). A Trainer for more than one lance is this
// module's "full mus" training mode: spec §9's open question on composing a
// dedicated multi-lance CFR target is left unresolved upstream, so this
// module trains each lance independently and lets the shared node store
// stand in for the composed strategy (see DESIGN.md).
type Trainer struct {
	cfg  TrainingConfig
	cfr  *CFR
	rng  *rand.Rand
	seed int64

	iteracionActual int
	lanceActual     int

	checkpointPath  string
	checkpointEvery int

	logger *log.Logger
}

// NewTrainer validates cfg and builds a Trainer with a fresh node store.
func NewTrainer(cfg TrainingConfig) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Trainer{
		cfg:    cfg,
		cfr:    NewCFR(rand.New(rand.NewSource(seed))),
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		logger: log.Default(),
	}, nil
}

// Profile returns the node store accumulated so far.
func (t *Trainer) Profile() *StrategyProfile {
	return t.cfr.Profile()
}

// EnableCheckpoints configures the trainer to write a checkpoint file every
// n completed iterations (counted across the whole run, not per lance).
func (t *Trainer) EnableCheckpoints(path string, every int) {
	t.checkpointPath = path
	t.checkpointEvery = every
}

// Run trains Iterations CFR traversals per configured lance, in order,
// reporting progress after every iteration if progress is non-nil and
// checking ctx for cancellation between iterations (never mid-traversal:
// spec §5 allows no suspension point inside a single traversal). Returns the
// context's error if cancelled before completion.
func (t *Trainer) Run(ctx context.Context, progress ProgressReporter) error {
	for ; t.lanceActual < len(t.cfg.Lances); t.lanceActual++ {
		lance := t.cfg.Lances[t.lanceActual]
		root := tree.BuildLanceTree(MaxApuestaFor(lance, t.cfg.TantosIniciales), t.cfg.RaiseSizes)
		template := game.New(lance, t.cfg.TantosIniciales, t.cfg.AbstractGame)

		for ; t.iteracionActual < t.cfg.Iterations; t.iteracionActual++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			t.runIteration(template, root)

			if progress != nil {
				if err := progress.Add(1); err != nil {
					t.logger.Warn("progress reporter failed", "err", err)
				}
			}
			done := t.lanceActual*t.cfg.Iterations + t.iteracionActual + 1
			if t.checkpointPath != "" && t.checkpointEvery > 0 && done%t.checkpointEvery == 0 {
				// The saved cursor names the next iteration to run.
				t.iteracionActual++
				err := t.SaveCheckpoint(t.checkpointPath)
				t.iteracionActual--
				if err != nil {
					t.logger.Error("checkpoint failed", "path", t.checkpointPath, "err", err)
				} else {
					t.logger.Debug("checkpoint written", "path", t.checkpointPath, "iteration", done)
				}
			}
		}
		t.iteracionActual = 0
		t.logger.Info("lance trained", "lance", lance, "info_sets", t.Profile().NumInfoSets())
	}
	return nil
}

func (t *Trainer) runIteration(template *game.LanceGame, root *tree.ActionNode) {
	switch t.cfg.DealMode {
	case DealExhaustive:
		template.NewIter(func(g *game.LanceGame, prob float64) {
			for player := 0; player < 2; player++ {
				t.cfr.ChanceCFRWeighted(g, root, player, prob)
			}
		})
	default:
		deal := template.NewRandom(t.rng)
		for player := 0; player < 2; player++ {
			switch t.cfg.Method {
			case ExternalSampling:
				t.cfr.ExternalCFR(deal, root, player)
			default:
				t.cfr.ChanceCFR(deal, root, player)
			}
		}
	}
}

// MaxApuestaFor is the cap NewEstadoLance would be seeded with for lance at
// tantosIniciales: the larger of the two partnerships' remaining distance to
// MaxTantos, matching PartidaMus.crearEstadoLance's own computation, so a
// training-time action tree offers exactly the raises the real engine would
// accept.
func MaxApuestaFor(lance mus.Lance, tantosIniciales [2]uint8) uint8 {
	r0 := mus.MaxTantos - tantosIniciales[0]
	r1 := mus.MaxTantos - tantosIniciales[1]
	if r1 > r0 {
		return r1
	}
	return r0
}
