package fsa

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GeneratorParams describes a random automaton.
type GeneratorParams struct {
	Size     int      `yaml:"size" json:"size"`
	Alphabet []string `yaml:"alphabet" json:"alphabet"`
	IsDFA    bool     `yaml:"dfa" json:"dfa"`

	// NFA only: probability of an edge between each ordered pair of distinct states.
	EdgeChance float64 `yaml:"edge_chance" json:"edgeChance"`

	// Probability of a self-loop per state. In DFA mode the loop replaces the transition on one symbol.
	SelfLoopChance float64 `yaml:"self_loop_chance" json:"selfLoopChance"`

	// NFA only: probability of one epsilon edge per state.
	EpsilonChance float64 `yaml:"epsilon_chance" json:"epsilonChance"`

	// NFA only: probability that a state other than q_0 is also a start state.
	MultiStartChance float64 `yaml:"multi_start_chance" json:"multiStartChance"`

	PruneUnreachable bool `yaml:"prune_unreachable" json:"pruneUnreachable"`
}

// Validate checks the parameters and parses the alphabet.
func (p GeneratorParams) Validate() (*Alphabet, error) {
	if p.Size < 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "size must be positive, got %d", p.Size)
	}
	chances := []struct {
		name  string
		value float64
	}{
		{"edge_chance", p.EdgeChance},
		{"self_loop_chance", p.SelfLoopChance},
		{"epsilon_chance", p.EpsilonChance},
		{"multi_start_chance", p.MultiStartChance},
	}
	for _, c := range chances {
		if c.value < 0 || c.value > 1 {
			return nil, errors.Wrapf(ErrInvalidParameter, "%s must be in [0, 1], got %v", c.name, c.value)
		}
	}
	return ParseAlphabet(p.Alphabet...)
}

// GenerateFiniteAutomaton
// Builds a random automaton with states q_0..q_{size-1}. q_0 is always a start state; in NFA mode every other
// state is also a start state with probability MultiStartChance. Between 1 and 3 distinct states accept.
//
// In DFA mode every state gets exactly one transition per symbol, drawn without replacement from the other
// states (falling back to itself when they run out). In NFA mode each ordered pair of distinct states gets
// an edge on a random symbol with probability EdgeChance, and each state one epsilon edge with probability
// EpsilonChance.
func GenerateFiniteAutomaton(rnd Random, p GeneratorParams, opts ...Option) (*Automaton, error) {
	o := newOptions(opts...)

	alphabet, err := p.Validate()
	if err != nil {
		return nil, err
	}
	values := alphabet.Values()

	chance := func(probability float64) bool {
		return rnd.Float(0, 1) < probability
	}

	b := NewBuilderV1(p.Size)
	for i := 0; i < p.Size; i++ {
		b.CreateState()
	}

	b.SetStart(0, true)
	if !p.IsDFA {
		for i := 1; i < p.Size; i++ {
			if chance(p.MultiStartChance) {
				b.SetStart(NodeID(i), true)
			}
		}
	}

	states := make([]NodeID, p.Size)
	for i := range states {
		states[i] = NodeID(i)
	}
	ShuffleSlice(rnd, states)
	numAccept := rnd.Int(1, min(3, p.Size))
	for _, s := range states[:numAccept] {
		b.SetAccept(s, true)
	}

	for i := 0; i < p.Size; i++ {
		source := NodeID(i)
		if p.IsDFA {
			err = addDeterministicTransitions(b, rnd, source, p.Size, values, chance(p.SelfLoopChance))
		} else {
			err = addNondeterministicTransitions(b, rnd, source, p, values, chance)
		}
		if err != nil {
			return nil, err
		}
	}

	a, err := b.Finish(p.IsDFA)
	if err != nil {
		return nil, errors.Wrap(err, "generate automaton")
	}

	o.logger.Debug("generated automaton",
		zap.Bool("dfa", p.IsDFA),
		zap.Int("states", a.NumStates()),
		zap.Int("transitions", a.NumTransitions()))

	if p.PruneUnreachable {
		return PruneUnreachableStates(a, opts...)
	}
	return a, nil
}

func addDeterministicTransitions(b *Builder, rnd Random, source NodeID, size int, values []int, selfLoop bool) error {
	others := make([]NodeID, 0, size-1)
	for j := 0; j < size; j++ {
		if NodeID(j) != source {
			others = append(others, NodeID(j))
		}
	}
	ShuffleSlice(rnd, others)

	for _, v := range values {
		dest := source
		if len(others) > 0 {
			dest = others[len(others)-1]
			others = others[:len(others)-1]
		}
		if err := b.AddTransition(source, dest, v); err != nil {
			return err
		}
	}

	if selfLoop {
		return b.SetTransition(source, source, Choice(rnd, values))
	}
	return nil
}

func addNondeterministicTransitions(b *Builder, rnd Random, source NodeID, p GeneratorParams, values []int, chance func(float64) bool) error {
	for j := 0; j < p.Size; j++ {
		if NodeID(j) == source || !chance(p.EdgeChance) {
			continue
		}
		if err := b.AddTransition(source, NodeID(j), Choice(rnd, values)); err != nil {
			return err
		}
	}

	if chance(p.EpsilonChance) {
		if err := b.AddEpsilon(source, NodeID(rnd.Int(0, p.Size-1))); err != nil {
			return err
		}
	}

	if chance(p.SelfLoopChance) {
		return b.AddTransition(source, source, Choice(rnd, values))
	}
	return nil
}

// GenerateDFA Builds a random total DFA; see GenerateFiniteAutomaton.
func GenerateDFA(rnd Random, size int, alphabet []string, selfLoopChance float64, pruneUnreachable bool, opts ...Option) (*Automaton, error) {
	return GenerateFiniteAutomaton(rnd, GeneratorParams{
		Size:             size,
		Alphabet:         alphabet,
		IsDFA:            true,
		SelfLoopChance:   selfLoopChance,
		PruneUnreachable: pruneUnreachable,
	}, opts...)
}

// GenerateNFA Builds a random NFA; see GenerateFiniteAutomaton.
func GenerateNFA(rnd Random, size int, alphabet []string, edgeChance, selfLoopChance, epsilonChance, multiStartChance float64, pruneUnreachable bool, opts ...Option) (*Automaton, error) {
	return GenerateFiniteAutomaton(rnd, GeneratorParams{
		Size:             size,
		Alphabet:         alphabet,
		EdgeChance:       edgeChance,
		SelfLoopChance:   selfLoopChance,
		EpsilonChance:    epsilonChance,
		MultiStartChance: multiStartChance,
		PruneUnreachable: pruneUnreachable,
	}, opts...)
}
