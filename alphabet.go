package fsa

import (
	"strconv"

	"github.com/pkg/errors"
)

// Alphabet is an ordered set of input symbols. Symbols are single digit strings
// externally and the integers 0-9 on edges.
type Alphabet struct {
	symbols []string
	values  []int
}

// ParseAlphabet builds an alphabet from symbol strings, each of which must be a
// single decimal digit, since words are read one character per symbol. Order is kept.
func ParseAlphabet(symbols ...string) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, errors.Wrap(ErrInvalidAlphabet, "alphabet is empty")
	}

	a := &Alphabet{
		symbols: make([]string, 0, len(symbols)),
		values:  make([]int, 0, len(symbols)),
	}
	seen := make(map[int]struct{}, len(symbols))
	for _, s := range symbols {
		if len(s) != 1 || s[0] < '0' || s[0] > '9' {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "symbol %q is not a single digit", s)
		}
		v := int(s[0] - '0')
		if _, ok := seen[v]; ok {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "duplicate symbol %q", s)
		}
		seen[v] = struct{}{}
		a.symbols = append(a.symbols, s)
		a.values = append(a.values, v)
	}
	return a, nil
}

// MustParseAlphabet is like ParseAlphabet but panics on error.
func MustParseAlphabet(symbols ...string) *Alphabet {
	a, err := ParseAlphabet(symbols...)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.values)
}

// Symbol returns the i'th symbol string.
func (a *Alphabet) Symbol(i int) string {
	return a.symbols[i]
}

// Value returns the edge value of the i'th symbol.
func (a *Alphabet) Value(i int) int {
	return a.values[i]
}

func (a *Alphabet) Symbols() []string {
	out := make([]string, len(a.symbols))
	copy(out, a.symbols)
	return out
}

func (a *Alphabet) Values() []int {
	out := make([]int, len(a.values))
	copy(out, a.values)
	return out
}

// Index returns the position of the symbol with the given edge value, or -1.
func (a *Alphabet) Index(value int) int {
	for i, v := range a.values {
		if v == value {
			return i
		}
	}
	return -1
}

// symbolValue converts one character of a word into an edge value. Characters
// that are not digits never match any edge.
func symbolValue(r rune) int {
	v, err := strconv.Atoi(string(r))
	if err != nil {
		return noSymbol
	}
	return v
}
