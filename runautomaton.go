package fsa

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// RunAutomaton Table-driven matcher compiled from a deterministic automaton. Lookups are a single slice index
// per symbol instead of an edge scan.
type RunAutomaton struct {
	alphabet *Alphabet
	labels   []string
	initial  int
	accept   *bitset.BitSet

	// transitions[state*alphabet.Len()+symbol] is the destination, or -1.
	transitions []int
}

// Compile builds a RunAutomaton for dfa over alphabet. dfa must have exactly one start state; missing
// transitions are allowed and make Step return -1.
func Compile(dfa *Automaton, alphabet *Alphabet) (*RunAutomaton, error) {
	starts := dfa.StartNodes()
	if len(starts) != 1 {
		return nil, errors.Wrapf(ErrNotDeterministic, "compile: %d start states", len(starts))
	}
	initial, _ := dfa.Lookup(starts[0].Label)

	numStates := dfa.NumStates()
	r := &RunAutomaton{
		alphabet:    alphabet,
		labels:      make([]string, numStates),
		initial:     int(initial),
		accept:      bitset.New(uint(numStates)),
		transitions: make([]int, numStates*alphabet.Len()),
	}

	for s, n := range dfa.nodes {
		r.labels[s] = n.Label
		r.accept.SetTo(uint(s), n.IsEnd)
		for i, v := range alphabet.values {
			dest, ok := dfa.Step(NodeID(s), v)
			if !ok {
				dest = -1
			}
			r.transitions[s*alphabet.Len()+i] = int(dest)
		}
	}
	return r, nil
}

// GetInitialState Returns the start state.
func (r *RunAutomaton) GetInitialState() int {
	return r.initial
}

// GetSize Returns the number of states.
func (r *RunAutomaton) GetSize() int {
	return len(r.labels)
}

// Label returns the label state had in the compiled automaton.
func (r *RunAutomaton) Label(state int) string {
	return r.labels[state]
}

// IsAccept Returns true if state is an accepting state.
func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept.Test(uint(state))
}

// Step Returns the state reached from state on the symbol with edge value value, or -1.
func (r *RunAutomaton) Step(state, value int) int {
	i := r.alphabet.Index(value)
	if i < 0 {
		return -1
	}
	return r.transitions[state*r.alphabet.Len()+i]
}

// Run Returns true if word, read from the initial state, ends in an accepting state.
func (r *RunAutomaton) Run(word string) bool {
	p := r.initial
	for _, c := range word {
		p = r.Step(p, symbolValue(c))
		if p == -1 {
			return false
		}
	}
	return r.IsAccept(p)
}
