package fsa

import (
	"github.com/pkg/errors"
)

// SimulateFrom
// Runs the deterministic step function from the state labeled startLabel over word, one symbol per
// character, following the first edge whose value matches. Returns the label of the state reached, or false
// if startLabel is unknown or some step has no matching edge.
func SimulateFrom(dfa *Automaton, startLabel string, word string) (string, bool) {
	state, ok := dfa.Lookup(startLabel)
	if !ok {
		return "", false
	}
	for _, r := range word {
		state, ok = dfa.Step(state, symbolValue(r))
		if !ok {
			return "", false
		}
	}
	return dfa.nodes[state].Label, true
}

// IsWordAccepted
// Returns true if some run over word from the start states ends in an accepting state. The set of
// possible current states is tracked as in the subset construction, so this works for NFAs as well.
// Epsilon edges are ignored unless WithEpsilonClosure is given.
func IsWordAccepted(a *Automaton, word string, opts ...Option) (bool, error) {
	o := newOptions(opts...)

	current := startSet(a)
	if current.Size() == 0 {
		return false, errors.Wrap(ErrNoStartState, "simulate word")
	}
	if o.epsilonClosure {
		current.closeEpsilon()
	}

	for _, r := range word {
		current = current.step(symbolValue(r))
		if o.epsilonClosure {
			current.closeEpsilon()
		}
		if current.Size() == 0 {
			return false, nil
		}
	}
	return current.HasAccept(), nil
}

// WordsEquivalent
// Returns true if u and v lead from the state labeled stateLabel to the same state. On a minimal DFA this
// decides whether u and v are equivalent under the Myhill-Nerode relation of that state's language.
func WordsEquivalent(dfa *Automaton, stateLabel, u, v string) bool {
	su, okU := SimulateFrom(dfa, stateLabel, u)
	sv, okV := SimulateFrom(dfa, stateLabel, v)
	return okU == okV && su == sv
}

// Equivalent
// Compares the languages of a and b on every word of length at most maxLen over alphabet. Returns the first
// word (shortest, then in alphabet order) on which they disagree, if any. Words are built by concatenating
// symbols, so every symbol should be a single character.
func Equivalent(a, b *Automaton, alphabet *Alphabet, maxLen int, opts ...Option) (bool, string, error) {
	words := []string{""}
	for length := 0; length <= maxLen; length++ {
		next := make([]string, 0, len(words)*alphabet.Len())
		for _, w := range words {
			inA, err := IsWordAccepted(a, w, opts...)
			if err != nil {
				return false, "", err
			}
			inB, err := IsWordAccepted(b, w, opts...)
			if err != nil {
				return false, "", err
			}
			if inA != inB {
				return false, w, nil
			}
			for _, s := range alphabet.symbols {
				next = append(next, w+s)
			}
		}
		words = next
	}
	return true, "", nil
}
