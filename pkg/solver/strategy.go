package solver

import (
	"fmt"

	"github.com/gauleng/musolver-go/pkg/mus"
)

// Strategy stores the regret-matching state for a single information set:
// one cumulative regret and one cumulative (reach-weighted) strategy entry
// per legal action, in the order the action tree offers them.
type Strategy struct {
	InfoSet string
	Actions []mus.Accion

	RegretSum   []float64
	StrategySum []float64
}

// NewStrategy creates a zeroed strategy for infoSet over actions.
func NewStrategy(infoSet string, actions []mus.Accion) *Strategy {
	n := len(actions)
	return &Strategy{
		InfoSet:     infoSet,
		Actions:     actions,
		RegretSum:   make([]float64, n),
		StrategySum: make([]float64, n),
	}
}

// GetStrategy computes the current strategy by regret matching: the
// distribution proportional to positive regrets, or uniform when no action
// has positive regret.
func (s *Strategy) GetStrategy() []float64 {
	return regretMatch(s.RegretSum)
}

func regretMatch(regretSum []float64) []float64 {
	n := len(regretSum)
	strategy := make([]float64, n)

	normalizingSum := 0.0
	for i := 0; i < n; i++ {
		if regretSum[i] > 0 {
			strategy[i] = regretSum[i]
			normalizingSum += regretSum[i]
		}
	}

	if normalizingSum > 0 {
		for i := 0; i < n; i++ {
			strategy[i] /= normalizingSum
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			strategy[i] = uniform
		}
	}
	return strategy
}

// GetAverageStrategy returns the strategy averaged over every iteration that
// visited this information set, which is what converges to equilibrium.
func (s *Strategy) GetAverageStrategy() []float64 {
	n := len(s.Actions)
	avg := make([]float64, n)

	normalizingSum := 0.0
	for i := 0; i < n; i++ {
		normalizingSum += s.StrategySum[i]
	}

	if normalizingSum > 0 {
		for i := 0; i < n; i++ {
			avg[i] = s.StrategySum[i] / normalizingSum
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			avg[i] = uniform
		}
	}
	return avg
}

// UpdateRegrets adds regrets (already weighted by the opponent's reach
// probability) to the running regret sum.
func (s *Strategy) UpdateRegrets(regrets []float64) {
	for i := range s.Actions {
		s.RegretSum[i] += regrets[i]
	}
}

// UpdateStrategy adds strategy, weighted by reachProb (this player's own
// reach probability), to the running strategy sum.
func (s *Strategy) UpdateStrategy(strategy []float64, reachProb float64) {
	for i := range s.Actions {
		s.StrategySum[i] += reachProb * strategy[i]
	}
}

func (s *Strategy) String() string {
	avg := s.GetAverageStrategy()
	result := fmt.Sprintf("InfoSet: %s\n", s.InfoSet)
	for i, action := range s.Actions {
		result += fmt.Sprintf("  %s: %.1f%% (regret: %.2f)\n",
			action.String(), avg[i]*100, s.RegretSum[i])
	}
	return result
}

// StrategyProfile is the CFR node store: a hash map from information-set
// string to the Strategy accumulated there. It is the only mutable state a
// traversal touches.
type StrategyProfile struct {
	strategies map[string]*Strategy
}

// NewStrategyProfile creates an empty node store.
func NewStrategyProfile() *StrategyProfile {
	return &StrategyProfile{strategies: make(map[string]*Strategy)}
}

// GetOrCreate fetches the strategy for infoSet, inserting a fresh one bound
// to actions on first visit.
func (sp *StrategyProfile) GetOrCreate(infoSet string, actions []mus.Accion) *Strategy {
	if s, ok := sp.strategies[infoSet]; ok {
		return s
	}
	s := NewStrategy(infoSet, actions)
	sp.strategies[infoSet] = s
	return s
}

// Get retrieves a strategy by its information-set key.
func (sp *StrategyProfile) Get(infoSet string) (*Strategy, bool) {
	s, ok := sp.strategies[infoSet]
	return s, ok
}

// All returns the full node store.
func (sp *StrategyProfile) All() map[string]*Strategy {
	return sp.strategies
}

// NumInfoSets reports how many distinct information sets were visited.
func (sp *StrategyProfile) NumInfoSets() int {
	return len(sp.strategies)
}

// GetAverageStrategies returns every information set's average strategy,
// keyed the same way as the node store.
func (sp *StrategyProfile) GetAverageStrategies() map[string][]float64 {
	result := make(map[string][]float64, len(sp.strategies))
	for infoSet, strat := range sp.strategies {
		result[infoSet] = strat.GetAverageStrategy()
	}
	return result
}
