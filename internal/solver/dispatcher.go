package solver

import (
	"fmt"

	"gusto/internal/logging"
)

// Strategy attempts to answer a problem. Returning false means "not mine, try the next one".
type Strategy interface {
	Name() string
	Attempt(problem string) (Solution, bool)
}

// Mode selects which entry point Dispatch routes to.
type Mode string

const (
	ModeSolve  Mode = "solve"
	ModePrompt Mode = "prompt"
	ModePack   Mode = "pack"
)

// Request is one dispatch call. Medium is only read in ModePrompt.
type Request struct {
	Mode   Mode
	Text   string
	Medium string
}

// Dispatcher tries its strategies in order and falls back to Brainstorm.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	strategies []Strategy
}

// DefaultStrategies returns the fixed chain: math before anagram.
func DefaultStrategies() []Strategy {
	return []Strategy{MathStrategy{}, AnagramStrategy{}}
}

// NewDispatcher builds a dispatcher over the given strategies, in order.
// With no strategies it uses DefaultStrategies.
func NewDispatcher(strategies ...Strategy) *Dispatcher {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	chain := make([]Strategy, len(strategies))
	copy(chain, strategies)
	return &Dispatcher{strategies: chain}
}

// Solve returns the first strategy's answer, or the brainstorm fallback.
func (d *Dispatcher) Solve(problem string) Solution {
	for _, s := range d.strategies {
		if sol, ok := s.Attempt(problem); ok {
			logging.DispatchDebug("strategy=%s matched", s.Name())
			return sol
		}
		logging.DispatchDebug("strategy=%s declined", s.Name())
	}
	logging.DispatchDebug("no strategy matched, brainstorming")
	return Brainstorm(problem)
}

// Dispatch routes a request by mode. Only the prompt modes can fail, with ErrEmptySeed.
func (d *Dispatcher) Dispatch(req Request) (Solution, error) {
	switch req.Mode {
	case ModeSolve, "":
		return d.Solve(req.Text), nil
	case ModePrompt:
		return BuildPrompt(req.Text, req.Medium)
	case ModePack:
		return BuildPromptPack(req.Text)
	default:
		return Solution{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
}

var defaultDispatcher = NewDispatcher()

// Solve runs the default strategy chain.
func Solve(problem string) Solution {
	return defaultDispatcher.Solve(problem)
}

// Dispatch routes a request through the default dispatcher.
func Dispatch(req Request) (Solution, error) {
	return defaultDispatcher.Dispatch(req)
}
