package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/geange/fsa"
)

// Definition is a hand-written automaton.
//
//	alphabet: ["0", "1"]
//	states:
//	  - {label: q0, start: true}
//	  - {label: q1, accept: true}
//	transitions:
//	  - {from: q0, to: q1, symbol: "1"}
//	  - {from: q1, to: q0}          # no symbol: epsilon
type Definition struct {
	Alphabet    []string        `yaml:"alphabet"`
	DFA         bool            `yaml:"dfa"`
	States      []StateDef      `yaml:"states"`
	Transitions []TransitionDef `yaml:"transitions"`
}

type StateDef struct {
	Label  string  `yaml:"label"`
	Start  bool    `yaml:"start"`
	Accept bool    `yaml:"accept"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

type TransitionDef struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Symbol string `yaml:"symbol"`
}

// LoadDefinition reads and builds a definition file.
func LoadDefinition(path string) (*fsa.Automaton, *fsa.Alphabet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read definition %s", path)
	}
	a, alphabet, err := ParseDefinition(data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "definition %s", path)
	}
	return a, alphabet, nil
}

func ParseDefinition(data []byte) (*fsa.Automaton, *fsa.Alphabet, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, nil, errors.Wrap(err, "parse definition")
	}
	return d.Build()
}

// Build validates the definition and assembles the automaton.
func (d *Definition) Build() (*fsa.Automaton, *fsa.Alphabet, error) {
	alphabet, err := fsa.ParseAlphabet(d.Alphabet...)
	if err != nil {
		return nil, nil, err
	}

	b := fsa.NewBuilderV1(len(d.States))
	ids := make(map[string]fsa.NodeID, len(d.States))
	for _, s := range d.States {
		id, err := b.CreateLabeledState(s.Label)
		if err != nil {
			return nil, nil, err
		}
		b.SetStart(id, s.Start)
		b.SetAccept(id, s.Accept)
		b.SetCoords(id, fsa.Coords{X: s.X, Y: s.Y})
		ids[s.Label] = id
	}

	for _, t := range d.Transitions {
		from, ok := ids[t.From]
		if !ok {
			return nil, nil, errors.Wrapf(fsa.ErrUnknownState, "transition from %q", t.From)
		}
		to, ok := ids[t.To]
		if !ok {
			return nil, nil, errors.Wrapf(fsa.ErrUnknownState, "transition to %q", t.To)
		}

		value := fsa.Epsilon
		if t.Symbol != "" {
			found := false
			for i, s := range alphabet.Symbols() {
				if s == t.Symbol {
					value, found = alphabet.Value(i), true
				}
			}
			if !found {
				return nil, nil, errors.Wrapf(fsa.ErrInvalidAlphabet, "symbol %q not in alphabet", t.Symbol)
			}
		}
		if err := b.AddTransition(from, to, value); err != nil {
			return nil, nil, err
		}
	}

	a, err := b.Finish(d.DFA)
	if err != nil {
		return nil, nil, err
	}
	return a, alphabet, nil
}
