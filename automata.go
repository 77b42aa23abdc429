package fsa

import (
	"github.com/pkg/errors"
)

// Automata builds small fixed-shape DFAs that are total over an alphabet.
type Automata struct {
	alphabet *Alphabet
}

func NewAutomata(alphabet *Alphabet) *Automata {
	return &Automata{alphabet: alphabet}
}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language: a single dead start state.
func (m *Automata) MakeEmpty() (*Automaton, error) {
	return m.makeLoop(false)
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings.
func (m *Automata) MakeAnyString() (*Automaton, error) {
	return m.makeLoop(true)
}

func (m *Automata) makeLoop(accept bool) (*Automaton, error) {
	b := NewBuilder()
	s := b.CreateState()
	b.SetStart(s, true)
	b.SetAccept(s, accept)
	if err := m.loop(b, s); err != nil {
		return nil, err
	}
	return b.Finish(true)
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (m *Automata) MakeEmptyString() (*Automaton, error) {
	return m.MakeString("")
}

// MakeString
// Returns a new (deterministic) automaton that accepts exactly word. Every character of word must be a
// symbol of the alphabet.
func (m *Automata) MakeString(word string) (*Automaton, error) {
	b := NewBuilder()
	s := b.CreateState()
	b.SetStart(s, true)

	path := []NodeID{s}
	values := make([]int, 0, len(word))
	for _, r := range word {
		v := symbolValue(r)
		if m.alphabet.Index(v) < 0 {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "character %q of %q is not in the alphabet", r, word)
		}
		values = append(values, v)
		path = append(path, b.CreateState())
	}
	b.SetAccept(path[len(path)-1], true)

	dead := b.CreateState()
	if err := m.loop(b, dead); err != nil {
		return nil, err
	}

	for i, s := range path {
		for _, v := range m.alphabet.values {
			dest := dead
			if i < len(values) && values[i] == v {
				dest = path[i+1]
			}
			if err := b.AddTransition(s, dest, v); err != nil {
				return nil, err
			}
		}
	}
	return b.Finish(true)
}

func (m *Automata) loop(b *Builder, s NodeID) error {
	for _, v := range m.alphabet.values {
		if err := b.AddTransition(s, s, v); err != nil {
			return err
		}
	}
	return nil
}
