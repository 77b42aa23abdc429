package fsa

import "github.com/pkg/errors"

var (
	// ErrNoStartState is returned when an operation needs at least one start state.
	ErrNoStartState = errors.New("automaton has no start state")

	// ErrNotDeterministic is returned when a DFA-only invariant does not hold.
	ErrNotDeterministic = errors.New("automaton is not deterministic")

	ErrInvalidAlphabet  = errors.New("invalid alphabet")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDuplicateLabel   = errors.New("duplicate state label")
	ErrUnknownState     = errors.New("unknown state")

	// ErrTooComplexToDeterminize is returned when subset construction discovers
	// more subsets than the configured work limit.
	ErrTooComplexToDeterminize = errors.New("automaton too complex to determinize")
)
