package fsa

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// noBlock is the signature component of a missing transition.
const noBlock = -1

// MinimizeDFA
// Minimizes the given deterministic automaton with Moore's partition refinement.
// The initial partition separates accepting from non-accepting states; each pass splits every block by the
// signature of its members (the block reached on each alphabet symbol, in alphabet order) until a pass
// splits nothing. The result has one state per block, labeled q_0.. in block order.
//
// The input must be deterministic (one start state, no epsilon edges, at most one edge per value leaving a
// state), otherwise ErrNotDeterministic is returned. It should also be total, but a missing transition is
// not an error: it contributes noBlock to the signature, so states missing the same transitions stay
// together.
func MinimizeDFA(dfa *Automaton, alphabet *Alphabet, opts ...Option) (*Automaton, error) {
	o := newOptions(opts...)

	starts := dfa.StartNodes()
	if len(starts) == 0 {
		return nil, errors.Wrap(ErrNoStartState, "minimize")
	}
	if err := checkDeterministic(dfa.nodes, dfa.edges); err != nil {
		return nil, errors.Wrap(err, "minimize")
	}
	startID, _ := dfa.Lookup(starts[0].Label)

	partition := initialPartition(dfa)
	blockOf := make([]int, dfa.NumStates())

	passes := 0
	for {
		passes++
		assignBlocks(partition, blockOf)

		next := make([][]NodeID, 0, len(partition))
		changed := false
		for _, block := range partition {
			groups := orderedmap.New[string, []NodeID]()
			for _, s := range block {
				key := signature(dfa, s, alphabet, blockOf)
				members, _ := groups.Get(key)
				groups.Set(key, append(members, s))
			}
			if groups.Len() > 1 {
				changed = true
			}
			for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
				next = append(next, pair.Value)
			}
		}
		partition = next

		if !changed {
			break
		}
	}
	assignBlocks(partition, blockOf)

	b := NewBuilderV1(len(partition))
	for _, block := range partition {
		id := b.CreateState()
		accept := false
		for _, s := range block {
			if s == startID {
				b.SetStart(id, true)
			}
			if dfa.nodes[s].IsEnd {
				accept = true
			}
		}
		b.SetAccept(id, accept)
	}

	for i, block := range partition {
		rep := block[0]
		for _, v := range alphabet.values {
			target, ok := dfa.Step(rep, v)
			if !ok {
				continue
			}
			if err := b.AddTransition(NodeID(i), NodeID(blockOf[target]), v); err != nil {
				return nil, err
			}
		}
	}

	o.logger.Debug("minimized automaton",
		zap.Int("states", dfa.NumStates()),
		zap.Int("blocks", len(partition)),
		zap.Int("passes", passes))

	return b.Finish(true)
}

func initialPartition(dfa *Automaton) [][]NodeID {
	accept := make([]NodeID, 0)
	reject := make([]NodeID, 0)
	for i, n := range dfa.nodes {
		if n.IsEnd {
			accept = append(accept, NodeID(i))
		} else {
			reject = append(reject, NodeID(i))
		}
	}

	partition := make([][]NodeID, 0, 2)
	if len(accept) > 0 {
		partition = append(partition, accept)
	}
	if len(reject) > 0 {
		partition = append(partition, reject)
	}
	return partition
}

func assignBlocks(partition [][]NodeID, blockOf []int) {
	for i, block := range partition {
		for _, s := range block {
			blockOf[s] = i
		}
	}
}

func signature(dfa *Automaton, s NodeID, alphabet *Alphabet, blockOf []int) string {
	var sb strings.Builder
	for i, v := range alphabet.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		block := noBlock
		if target, ok := dfa.Step(s, v); ok {
			block = blockOf[target]
		}
		sb.WriteString(strconv.Itoa(block))
	}
	return sb.String()
}
