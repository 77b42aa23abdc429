package fsa

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// StateSet is a set of states of one automaton. It is the unit of work of subset construction and of
// set-based simulation.
type StateSet struct {
	a    *Automaton
	bits *bitset.BitSet
}

func newStateSet(a *Automaton) *StateSet {
	return &StateSet{
		a:    a,
		bits: bitset.New(uint(a.NumStates())),
	}
}

// startSet Returns the set of start states of a.
func startSet(a *Automaton) *StateSet {
	s := newStateSet(a)
	for i, n := range a.nodes {
		if n.IsStart {
			s.Add(NodeID(i))
		}
	}
	return s
}

func (s *StateSet) Add(id NodeID) {
	s.bits.Set(uint(id))
}

func (s *StateSet) Contains(id NodeID) bool {
	return s.bits.Test(uint(id))
}

func (s *StateSet) Size() int {
	return int(s.bits.Count())
}

// GetArray Returns the members in ascending id order.
func (s *StateSet) GetArray() []NodeID {
	out := make([]NodeID, 0, s.Size())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, NodeID(i))
	}
	return out
}

// Labels Returns the member labels, sorted.
func (s *StateSet) Labels() []string {
	ids := s.GetArray()
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = s.a.nodes[id].Label
	}
	slices.Sort(labels)
	return labels
}

// Key Returns the sorted, comma-joined member labels. Equal sets have equal keys; the empty set has the
// empty key.
func (s *StateSet) Key() string {
	return strings.Join(s.Labels(), ",")
}

// HasAccept Returns true if any member is an accepting state.
func (s *StateSet) HasAccept() bool {
	for _, id := range s.GetArray() {
		if s.a.nodes[id].IsEnd {
			return true
		}
	}
	return false
}

// step Returns the union, over all members, of the targets of edges whose value equals value.
func (s *StateSet) step(value int) *StateSet {
	next := newStateSet(s.a)
	for _, id := range s.GetArray() {
		for _, e := range s.a.edges[id] {
			if e.Value == value {
				next.Add(e.Target)
			}
		}
	}
	return next
}

// closeEpsilon Adds every state reachable from a member through epsilon edges only.
func (s *StateSet) closeEpsilon() {
	stack := s.GetArray()
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range s.a.edges[id] {
			if e.IsEpsilon() && !s.Contains(e.Target) {
				s.Add(e.Target)
				stack = append(stack, e.Target)
			}
		}
	}
}
