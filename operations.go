package fsa

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// PruneUnreachableStates
// Returns a copy of a holding only the states reachable from some start state. Surviving states keep their
// relative order and are relabeled q_0, q_1, ...; edge values play no part in reachability.
func PruneUnreachableStates(a *Automaton, opts ...Option) (*Automaton, error) {
	o := newOptions(opts...)

	live := getLiveStatesFromInitial(a)

	b := NewBuilderV1(int(live.Count()))
	mp := make(map[string]NodeID, live.Count())
	for i, n := range a.nodes {
		if !live.Test(uint(i)) {
			continue
		}
		id := b.CreateState()
		b.SetStart(id, n.IsStart)
		b.SetAccept(id, n.IsEnd)
		b.SetCoords(id, n.Coords)
		mp[n.Label] = id
	}

	for i, n := range a.nodes {
		if !live.Test(uint(i)) {
			continue
		}
		for _, e := range a.OutgoingEdges(n) {
			target, ok := mp[a.nodes[e.Target].Label]
			if !ok {
				continue
			}
			if err := b.AddTransition(mp[n.Label], target, e.Value); err != nil {
				return nil, err
			}
		}
	}

	result, err := b.Finish(a.isDFA)
	if err != nil {
		return nil, errors.Wrap(err, "prune unreachable states")
	}

	o.logger.Debug("pruned unreachable states",
		zap.Int("before", a.NumStates()),
		zap.Int("after", result.NumStates()))
	return result, nil
}

// getLiveStatesFromInitial Returns the states reachable from any start state, following every edge.
func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	live := bitset.New(uint(a.NumStates()))
	workList := make([]Node, 0)
	for i, n := range a.nodes {
		if n.IsStart {
			live.Set(uint(i))
			workList = append(workList, n)
		}
	}

	for len(workList) > 0 {
		n := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		for _, e := range a.OutgoingEdges(n) {
			if !live.Test(uint(e.Target)) {
				live.Set(uint(e.Target))
				workList = append(workList, a.nodes[e.Target])
			}
		}
	}
	return live
}

// ConvertNFAtoDFA Determinizes the given automaton with the subset construction.
// Only subsets reachable from the set of start states are materialized. The empty subset is a real (dead)
// state that loops to itself, so the result is always total over alphabet. DFA states are labeled q_<n> in
// discovery order; q_0 is the start subset.
//
// Epsilon edges are ignored unless WithEpsilonClosure is given.
// Worst case complexity: exponential in number of states; WithWorkLimit bounds the number of subsets, and
// exceeding it returns ErrTooComplexToDeterminize.
func ConvertNFAtoDFA(nfa *Automaton, alphabet *Alphabet, opts ...Option) (*Automaton, error) {
	o := newOptions(opts...)

	initial := startSet(nfa)
	if o.epsilonClosure {
		initial.closeEpsilon()
	}

	b := NewBuilder()
	subsets := orderedmap.New[string, NodeID]()
	workList := make([]*StateSet, 0)

	addSubset := func(s *StateSet) (NodeID, error) {
		key := s.Key()
		if id, ok := subsets.Get(key); ok {
			return id, nil
		}
		if o.workLimit > 0 && subsets.Len() >= o.workLimit {
			return -1, errors.Wrapf(ErrTooComplexToDeterminize, "more than %d subsets", o.workLimit)
		}
		id := b.CreateState()
		b.SetAccept(id, s.HasAccept())
		subsets.Set(key, id)
		workList = append(workList, s)
		return id, nil
	}

	start, err := addSubset(initial)
	if err != nil {
		return nil, err
	}
	b.SetStart(start, true)

	for upto := 0; upto < len(workList); upto++ {
		current := workList[upto]
		for _, v := range alphabet.values {
			next := current.step(v)
			if o.epsilonClosure {
				next.closeEpsilon()
			}
			dest, err := addSubset(next)
			if err != nil {
				return nil, err
			}
			if err := b.AddTransition(NodeID(upto), dest, v); err != nil {
				return nil, err
			}
		}
	}

	if o.logger.Core().Enabled(zap.DebugLevel) {
		for pair := subsets.Oldest(); pair != nil; pair = pair.Next() {
			o.logger.Debug("subset", zap.Int("state", int(pair.Value)), zap.String("members", "{"+pair.Key+"}"))
		}
	}
	o.logger.Debug("determinized automaton",
		zap.Int("nfaStates", nfa.NumStates()),
		zap.Int("dfaStates", b.GetNumStates()),
		zap.Bool("epsilonClosure", o.epsilonClosure))

	return b.Finish(true)
}
