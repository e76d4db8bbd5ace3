package solver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gauleng/musolver-go/pkg/mus"
)

// CfrMethod selects which CFR traversal Trainer.Run runs. The source
// this trainer is modeled on also carries Cfr and CfrPlus variants, both
// left as todo!() there; this implementation only ever produces these two.
type CfrMethod string

const (
	ChanceSampling   CfrMethod = "chance-sampling"
	ExternalSampling CfrMethod = "external-sampling"
)

// TrainerConfig is the training-time configuration persisted alongside a
// Strategy, so a strategy file is self-describing about how it was
// produced.
type TrainerConfig struct {
	Method     CfrMethod `json:"method"`
	Iterations int       `json:"iterations"`
}

// GameConfig is the game-shape half of a persisted strategy: which lance it
// was trained for (nil for a full-mus strategy, which the train command
// writes when it trains more than one lance) and whether information sets
// were rendered through the bucket abstraction.
type GameConfig struct {
	Lance        *mus.Lance `json:"lance,omitempty"`
	AbstractGame bool       `json:"abstract_game"`
}

// StrategyConfig bundles both halves of a persisted strategy's metadata.
type StrategyConfig struct {
	TrainerConfig TrainerConfig `json:"trainer_config"`
	GameConfig    GameConfig    `json:"game_config"`
}

// SolverError is the solver-side error taxonomy, returned by strategy-file
// loading and saving and by checkpoint saving and loading.
type SolverError struct {
	Op   string
	Path string
	Err  error
}

func (e *SolverError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("solver: %s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("solver: %s: %v", e.Op, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }

func invalidStrategyPath(path string, err error) error {
	return &SolverError{Op: "invalid strategy path", Path: path, Err: err}
}

func parseStrategyJSONError(err error) error {
	return &SolverError{Op: "parse strategy json", Err: err}
}

// jsonStrategyFile is the serialized form of a StrategyProfile: the config that
// produced it, plus every information set's action list and average
// strategy, encoded as the `[[action,...],[prob,...]]` pair shape.
type jsonStrategyFile struct {
	StrategyConfig StrategyConfig             `json:"strategy_config"`
	Nodes          map[string]jsonStrategyNode `json:"nodes"`
}

// jsonStrategyNode is ([]action, []prob): parallel arrays rather than a
// list of (action, prob) pairs, matching the wire format the training
// pipeline this is modeled on actually writes.
type jsonStrategyNode [2]json.RawMessage

// ToJSON serializes sp, together with the config that produced it, to the
// canonical strategy-file shape.
func (sp *StrategyProfile) ToJSON(config StrategyConfig) ([]byte, error) {
	file := jsonStrategyFile{
		StrategyConfig: config,
		Nodes:          make(map[string]jsonStrategyNode, len(sp.strategies)),
	}

	for infoSet, strat := range sp.strategies {
		actionsJSON, err := json.Marshal(strat.Actions)
		if err != nil {
			return nil, err
		}
		probsJSON, err := json.Marshal(strat.GetAverageStrategy())
		if err != nil {
			return nil, err
		}
		file.Nodes[infoSet] = jsonStrategyNode{actionsJSON, probsJSON}
	}

	return json.MarshalIndent(file, "", "  ")
}

// FromJSON parses a strategy file's bytes, rehydrating each information
// set's average strategy into a StrategyProfile's strategy sum (regret sums
// are not part of the wire format: a loaded strategy is ready for
// evaluation and best-response computation, but not for resuming training —
// see checkpoint files for that).
func FromJSON(data []byte) (*StrategyProfile, StrategyConfig, error) {
	var file jsonStrategyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, StrategyConfig{}, parseStrategyJSONError(err)
	}

	sp := NewStrategyProfile()
	for infoSet, node := range file.Nodes {
		var actions []mus.Accion
		if err := json.Unmarshal(node[0], &actions); err != nil {
			return nil, StrategyConfig{}, parseStrategyJSONError(err)
		}
		var probs []float64
		if err := json.Unmarshal(node[1], &probs); err != nil {
			return nil, StrategyConfig{}, parseStrategyJSONError(err)
		}

		strat := NewStrategy(infoSet, actions)
		for i, p := range probs {
			strat.StrategySum[i] = p
		}
		sp.strategies[infoSet] = strat
	}

	return sp, file.StrategyConfig, nil
}

// SaveToFile writes sp's strategy file to path.
func (sp *StrategyProfile) SaveToFile(path string, config StrategyConfig) error {
	data, err := sp.ToJSON(config)
	if err != nil {
		return parseStrategyJSONError(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return invalidStrategyPath(path, err)
	}
	return nil
}

// LoadFromFile reads and parses a strategy file from path.
func LoadFromFile(path string) (*StrategyProfile, StrategyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, StrategyConfig{}, invalidStrategyPath(path, err)
	}
	return FromJSON(data)
}
