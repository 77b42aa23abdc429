package fsa

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// Epsilon is the edge value of an epsilon transition.
	Epsilon = -1

	// Value no edge ever carries; used for characters outside the alphabet.
	noSymbol = -2
)

// NodeID is the index of a node inside the automaton that issued it.
type NodeID int

// Coords is presentation-only layout data; the engine never reads it.
type Coords struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is one state of an automaton.
type Node struct {
	Label   string `json:"label" yaml:"label"`
	Coords  Coords `json:"coords" yaml:"coords"`
	IsStart bool   `json:"isStart" yaml:"start"`
	IsEnd   bool   `json:"isEnd" yaml:"accept"`
}

// Edge is a transition from Source to Target on Value. Value is Epsilon for an
// epsilon transition.
type Edge struct {
	Source NodeID `json:"source" yaml:"source"`
	Target NodeID `json:"target" yaml:"target"`
	Value  int    `json:"value" yaml:"value"`
}

// IsEpsilon Returns true if this edge consumes no input.
func (e Edge) IsEpsilon() bool {
	return e.Value == Epsilon
}

// Automaton Represents a finite automaton: nodes and, in parallel, the outgoing edges of each node.
// An Automaton is immutable once built; every operation in this package returns a new one.
type Automaton struct {
	nodes []Node

	// edges[i] holds exactly the outgoing edges of nodes[i].
	edges [][]Edge

	// label -> index, rebuilt whenever an automaton is created.
	index map[string]NodeID

	isDFA bool
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.nodes)
}

// NumTransitions How many edges this automaton has.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, row := range a.edges {
		n += len(row)
	}
	return n
}

// IsDFA Returns true if this automaton was built as a DFA.
func (a *Automaton) IsDFA() bool {
	return a.isDFA
}

// Directed is always true.
func (a *Automaton) Directed() bool { return true }

// Weighted is always true; edge values are the weights.
func (a *Automaton) Weighted() bool { return true }

// Nodes Returns a copy of all nodes in index order.
func (a *Automaton) Nodes() []Node {
	out := make([]Node, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// Node Returns the node with the given id.
// id must be in [0, NumStates()); use Lookup to resolve a label safely.
func (a *Automaton) Node(id NodeID) Node {
	return a.nodes[id]
}

// Lookup resolves a label to the node id that currently carries it.
func (a *Automaton) Lookup(label string) (NodeID, bool) {
	id, ok := a.index[label]
	return id, ok
}

// StartNodes Returns all nodes flagged as start states.
func (a *Automaton) StartNodes() []Node {
	out := make([]Node, 0, 1)
	for _, n := range a.nodes {
		if n.IsStart {
			out = append(out, n)
		}
	}
	return out
}

// EndNodes Returns all nodes flagged as accepting.
func (a *Automaton) EndNodes() []Node {
	out := make([]Node, 0)
	for _, n := range a.nodes {
		if n.IsEnd {
			out = append(out, n)
		}
	}
	return out
}

// OutgoingEdges Returns the edges leaving the node carrying n's label. The node is re-resolved by label, so a
// node value taken from another automaton in the same transformation chain still resolves against this one.
// An unknown label yields an empty list.
func (a *Automaton) OutgoingEdges(n Node) []Edge {
	id, ok := a.index[n.Label]
	if !ok {
		return []Edge{}
	}
	return a.Edges(id)
}

// Edges Returns a copy of the edges leaving id.
// id must be in [0, NumStates()), as for Node.
func (a *Automaton) Edges(id NodeID) []Edge {
	row := a.edges[id]
	out := make([]Edge, len(row))
	copy(out, row)
	return out
}

// Step Performs lookup of the first edge leaving state on value.
// Returns: destination state, false if no matching outgoing edge
func (a *Automaton) Step(state NodeID, value int) (NodeID, bool) {
	for _, e := range a.edges[state] {
		if e.Value == value {
			return e.Target, true
		}
	}
	return -1, false
}

// IsTotal Returns true if every state has exactly one edge per alphabet symbol and no other edges.
func (a *Automaton) IsTotal(alphabet *Alphabet) bool {
	for _, row := range a.edges {
		if len(row) != alphabet.Len() {
			return false
		}
		for _, v := range alphabet.values {
			count := 0
			for _, e := range row {
				if e.Value == v {
					count++
				}
			}
			if count != 1 {
				return false
			}
		}
	}
	return true
}

func (a *Automaton) String() string {
	kind := "NFA"
	if a.isDFA {
		kind = "DFA"
	}
	return fmt.Sprintf("%s{states: %d, transitions: %d}", kind, a.NumStates(), a.NumTransitions())
}

func stateLabel(i int) string {
	return "q_" + strconv.Itoa(i)
}

// Builder Assembles an Automaton state by state. States are created with CreateState or
// CreateLabeledState; transitions may be added in any order. Finish validates and freezes the result.
type Builder struct {
	nodes []Node
	edges [][]Edge
	index map[string]NodeID
}

func NewBuilder() *Builder {
	return NewBuilderV1(2)
}

func NewBuilderV1(numStates int) *Builder {
	return &Builder{
		nodes: make([]Node, 0, numStates),
		edges: make([][]Edge, 0, numStates),
		index: make(map[string]NodeID, numStates),
	}
}

// CreateState Create a new state labeled q_<index>.
func (b *Builder) CreateState() NodeID {
	id, err := b.CreateLabeledState(stateLabel(len(b.nodes)))
	if err != nil {
		// q_<n> was taken by an explicit label; fall back to the next free one.
		for i := len(b.nodes) + 1; ; i++ {
			if id, err = b.CreateLabeledState(stateLabel(i)); err == nil {
				return id
			}
		}
	}
	return id
}

// CreateLabeledState Create a new state with an explicit label, which must be unique.
func (b *Builder) CreateLabeledState(label string) (NodeID, error) {
	if _, ok := b.index[label]; ok {
		return -1, errors.Wrapf(ErrDuplicateLabel, "label %q", label)
	}
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{Label: label})
	b.edges = append(b.edges, nil)
	b.index[label] = id
	return id, nil
}

// GetNumStates How many states have been created so far.
func (b *Builder) GetNumStates() int {
	return len(b.nodes)
}

func (b *Builder) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(b.nodes)
}

// SetStart Set or clear this state as a start state.
func (b *Builder) SetStart(id NodeID, start bool) {
	b.nodes[id].IsStart = start
}

// SetAccept Set or clear this state as an accept state.
func (b *Builder) SetAccept(id NodeID, accept bool) {
	b.nodes[id].IsEnd = accept
}

func (b *Builder) SetCoords(id NodeID, c Coords) {
	b.nodes[id].Coords = c
}

// AddTransition Add a new transition from source to dest on value.
func (b *Builder) AddTransition(source, dest NodeID, value int) error {
	if !b.valid(source) {
		return errors.Wrapf(ErrUnknownState, "source %d", source)
	}
	if !b.valid(dest) {
		return errors.Wrapf(ErrUnknownState, "dest %d", dest)
	}
	if value < 0 && value != Epsilon {
		return errors.Wrapf(ErrInvalidParameter, "edge value %d", value)
	}
	b.edges[source] = append(b.edges[source], Edge{Source: source, Target: dest, Value: value})
	return nil
}

// AddEpsilon Add an epsilon transition between source and dest.
func (b *Builder) AddEpsilon(source, dest NodeID) error {
	return b.AddTransition(source, dest, Epsilon)
}

// SetTransition replaces every edge leaving source on value with a single edge to dest.
func (b *Builder) SetTransition(source, dest NodeID, value int) error {
	if !b.valid(source) {
		return errors.Wrapf(ErrUnknownState, "source %d", source)
	}
	row := b.edges[source][:0]
	for _, e := range b.edges[source] {
		if e.Value != value {
			row = append(row, e)
		}
	}
	b.edges[source] = row
	return b.AddTransition(source, dest, value)
}

// Finish Freezes the builder into an Automaton. When isDFA is set the result must have exactly one start
// state, no epsilon edges and at most one edge per value per state; totality over an alphabet is checked
// separately with Automaton.IsTotal.
func (b *Builder) Finish(isDFA bool) (*Automaton, error) {
	if isDFA {
		if err := checkDeterministic(b.nodes, b.edges); err != nil {
			return nil, err
		}
	}

	a := &Automaton{
		nodes: make([]Node, len(b.nodes)),
		edges: make([][]Edge, len(b.edges)),
		index: make(map[string]NodeID, len(b.nodes)),
		isDFA: isDFA,
	}
	copy(a.nodes, b.nodes)
	for i, row := range b.edges {
		a.edges[i] = make([]Edge, len(row))
		copy(a.edges[i], row)
	}
	for label, id := range b.index {
		a.index[label] = id
	}
	return a, nil
}

// checkDeterministic reports whether nodes and edges form a DFA: exactly one
// start state, no epsilon edges and at most one edge per value leaving a state.
func checkDeterministic(nodes []Node, edges [][]Edge) error {
	starts := 0
	for _, n := range nodes {
		if n.IsStart {
			starts++
		}
	}
	if starts != 1 {
		return errors.Wrapf(ErrNotDeterministic, "%d start states", starts)
	}

	for i, row := range edges {
		seen := make(map[int]struct{}, len(row))
		for _, e := range row {
			if e.IsEpsilon() {
				return errors.Wrapf(ErrNotDeterministic, "epsilon edge leaving %s", nodes[i].Label)
			}
			if _, ok := seen[e.Value]; ok {
				return errors.Wrapf(ErrNotDeterministic, "%s has two edges on %d", nodes[i].Label, e.Value)
			}
			seen[e.Value] = struct{}{}
		}
	}
	return nil
}
