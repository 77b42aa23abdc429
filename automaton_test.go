package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binary = MustParseAlphabet("0", "1")

// scenarioNFA: q0 start, q2 accepting, δ(q0,0)={q0,q1}, δ(q1,1)={q2}.
func scenarioNFA(t *testing.T) *Automaton {
	t.Helper()
	b := NewBuilder()
	q0, err := b.CreateLabeledState("q0")
	require.NoError(t, err)
	q1, err := b.CreateLabeledState("q1")
	require.NoError(t, err)
	q2, err := b.CreateLabeledState("q2")
	require.NoError(t, err)
	b.SetStart(q0, true)
	b.SetAccept(q2, true)
	require.NoError(t, b.AddTransition(q0, q0, 0))
	require.NoError(t, b.AddTransition(q0, q1, 0))
	require.NoError(t, b.AddTransition(q1, q2, 1))
	a, err := b.Finish(false)
	require.NoError(t, err)
	return a
}

// buildDFA builds a DFA over binary from a table: delta[i] = {target on 0, target on 1}.
func buildDFA(t *testing.T, delta [][2]int, start int, accept ...int) *Automaton {
	t.Helper()
	b := NewBuilder()
	for range delta {
		b.CreateState()
	}
	b.SetStart(NodeID(start), true)
	for _, s := range accept {
		b.SetAccept(NodeID(s), true)
	}
	for i, row := range delta {
		require.NoError(t, b.AddTransition(NodeID(i), NodeID(row[0]), 0))
		require.NoError(t, b.AddTransition(NodeID(i), NodeID(row[1]), 1))
	}
	a, err := b.Finish(true)
	require.NoError(t, err)
	return a
}

// allWords returns every word over alphabet of length 0..maxLen.
func allWords(alphabet *Alphabet, maxLen int) []string {
	words := []string{""}
	layer := []string{""}
	for l := 0; l < maxLen; l++ {
		next := make([]string, 0, len(layer)*alphabet.Len())
		for _, w := range layer {
			for _, s := range alphabet.Symbols() {
				next = append(next, w+s)
			}
		}
		words = append(words, next...)
		layer = next
	}
	return words
}

func labels(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func TestAutomatonQueries(t *testing.T) {
	a := scenarioNFA(t)

	t.Run("start and end nodes", func(t *testing.T) {
		assert.Equal(t, []string{"q0"}, labels(a.StartNodes()))
		assert.Equal(t, []string{"q2"}, labels(a.EndNodes()))
	})

	t.Run("outgoing edges by label", func(t *testing.T) {
		edges := a.OutgoingEdges(Node{Label: "q0"})
		assert.Len(t, edges, 2)
		for _, e := range edges {
			assert.Equal(t, NodeID(0), e.Source)
			assert.Equal(t, 0, e.Value)
		}
	})

	t.Run("unknown label resolves to no edges", func(t *testing.T) {
		missing := a.OutgoingEdges(Node{Label: "nope"})
		assert.NotNil(t, missing)
		assert.Empty(t, missing)
		assert.Empty(t, a.OutgoingEdges(Node{Label: "q2"}))
	})

	t.Run("edges live in the row of their source", func(t *testing.T) {
		for i := 0; i < a.NumStates(); i++ {
			for _, e := range a.Edges(NodeID(i)) {
				assert.Equal(t, NodeID(i), e.Source)
			}
		}
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		nodes := a.Nodes()
		nodes[0].Label = "changed"
		edges := a.Edges(0)
		edges[0].Target = 2
		assert.Equal(t, "q0", a.Node(0).Label)
		assert.Equal(t, NodeID(0), a.Edges(0)[0].Target)
	})

	t.Run("lookup", func(t *testing.T) {
		id, ok := a.Lookup("q1")
		assert.True(t, ok)
		assert.Equal(t, NodeID(1), id)
		_, ok = a.Lookup("q_1")
		assert.False(t, ok)
	})

	t.Run("ids must be in range", func(t *testing.T) {
		assert.NotPanics(t, func() { a.Node(NodeID(a.NumStates() - 1)) })
		assert.Panics(t, func() { a.Node(NodeID(a.NumStates())) })
		assert.Panics(t, func() { a.Edges(-1) })
	})

	assert.False(t, a.IsDFA())
	assert.True(t, a.Directed())
	assert.True(t, a.Weighted())
	assert.Equal(t, 3, a.NumTransitions())
	assert.False(t, a.IsTotal(binary))
}

func TestBuilder(t *testing.T) {
	t.Run("duplicate label", func(t *testing.T) {
		b := NewBuilder()
		_, err := b.CreateLabeledState("x")
		require.NoError(t, err)
		_, err = b.CreateLabeledState("x")
		assert.ErrorIs(t, err, ErrDuplicateLabel)
	})

	t.Run("generated label skips taken ones", func(t *testing.T) {
		b := NewBuilder()
		_, err := b.CreateLabeledState("q_1")
		require.NoError(t, err)
		id := b.CreateState()
		b.SetStart(0, true)
		a, err := b.Finish(false)
		require.NoError(t, err)
		assert.Equal(t, "q_2", a.Node(id).Label)
	})

	t.Run("unknown state", func(t *testing.T) {
		b := NewBuilder()
		s := b.CreateState()
		assert.ErrorIs(t, b.AddTransition(s, 5, 0), ErrUnknownState)
		assert.ErrorIs(t, b.AddTransition(-1, s, 0), ErrUnknownState)
		assert.ErrorIs(t, b.AddTransition(s, s, -7), ErrInvalidParameter)
	})

	t.Run("set transition replaces", func(t *testing.T) {
		b := NewBuilder()
		s0, s1 := b.CreateState(), b.CreateState()
		b.SetStart(s0, true)
		require.NoError(t, b.AddTransition(s0, s1, 0))
		require.NoError(t, b.AddTransition(s0, s1, 1))
		require.NoError(t, b.SetTransition(s0, s0, 0))
		a, err := b.Finish(true)
		require.NoError(t, err)
		target, ok := a.Step(s0, 0)
		assert.True(t, ok)
		assert.Equal(t, s0, target)
		assert.Len(t, a.Edges(s0), 2)
	})

	deterministicCases := []struct {
		name  string
		build func(b *Builder)
	}{
		{"no start", func(b *Builder) {
			b.CreateState()
		}},
		{"two starts", func(b *Builder) {
			b.SetStart(b.CreateState(), true)
			b.SetStart(b.CreateState(), true)
		}},
		{"epsilon edge", func(b *Builder) {
			s := b.CreateState()
			b.SetStart(s, true)
			_ = b.AddEpsilon(s, s)
		}},
		{"two edges on one symbol", func(b *Builder) {
			s, d := b.CreateState(), b.CreateState()
			b.SetStart(s, true)
			_ = b.AddTransition(s, s, 1)
			_ = b.AddTransition(s, d, 1)
		}},
	}
	for _, tt := range deterministicCases {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			_, err := b.Finish(true)
			assert.ErrorIs(t, err, ErrNotDeterministic)
			_, err = b.Finish(false)
			assert.NoError(t, err)
		})
	}
}

func TestBuilderFinishIsolation(t *testing.T) {
	b := NewBuilder()
	s := b.CreateState()
	b.SetStart(s, true)
	a, err := b.Finish(false)
	require.NoError(t, err)

	require.NoError(t, b.AddTransition(s, s, 0))
	b.SetAccept(s, true)
	assert.Empty(t, a.Edges(s))
	assert.False(t, a.Node(s).IsEnd)
}

func TestParseAlphabet(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		wantErr bool
	}{
		{"binary", []string{"0", "1"}, false},
		{"unordered", []string{"2", "0", "7"}, false},
		{"empty", nil, true},
		{"letters", []string{"a", "b"}, true},
		{"negative", []string{"-1"}, true},
		{"duplicate", []string{"1", "1"}, true},
		{"multi digit", []string{"0", "10"}, true},
		{"leading zero", []string{"01"}, true},
		{"sign", []string{"+1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAlphabet(tt.symbols...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAlphabet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.symbols, a.Symbols())
			assert.Equal(t, len(tt.symbols), a.Len())
		})
	}

	a := MustParseAlphabet("2", "0", "7")
	assert.Equal(t, []int{2, 0, 7}, a.Values())
	assert.Equal(t, 2, a.Index(7))
	assert.Equal(t, -1, a.Index(3))
	assert.Panics(t, func() { MustParseAlphabet("x") })
}
