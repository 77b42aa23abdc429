package output

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"github.com/geange/fsa"
)

// AutomatonView is the JSON shape of an automaton.
type AutomatonView struct {
	IsDFA    bool         `json:"isDFA"`
	Directed bool         `json:"directed"`
	Weighted bool         `json:"weighted"`
	Alphabet []string     `json:"alphabet"`
	Nodes    []fsa.Node   `json:"nodes"`
	Edges    [][]fsa.Edge `json:"edges"`
}

func NewAutomatonView(a *fsa.Automaton, alphabet *fsa.Alphabet) AutomatonView {
	v := AutomatonView{
		IsDFA:    a.IsDFA(),
		Directed: a.Directed(),
		Weighted: a.Weighted(),
		Alphabet: alphabet.Symbols(),
		Nodes:    a.Nodes(),
		Edges:    make([][]fsa.Edge, a.NumStates()),
	}
	for i := range v.Edges {
		v.Edges[i] = a.Edges(fsa.NodeID(i))
	}
	return v
}

// PrintJSON writes data as indented JSON.
func PrintJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Success prints a success message.
func Success(w io.Writer, format string, args ...interface{}) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(w, format+"\n", args...)
}

// Failure prints a negative result.
func Failure(w io.Writer, format string, args ...interface{}) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, format+"\n", args...)
}

// Info prints an informational message.
func Info(w io.Writer, format string, args ...interface{}) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(w, format+"\n", args...)
}
