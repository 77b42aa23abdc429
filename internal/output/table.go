package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/geange/fsa"
)

// Table is a plain column-aligned table.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		widths:  widths,
	}
}

// AddRow appends a row, widening columns as needed.
func (t *Table) AddRow(row []string) {
	for i, cell := range row {
		if i < len(t.widths) && len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) {
	headerColor := color.New(color.FgCyan, color.Bold)
	for i, h := range t.headers {
		headerColor.Fprintf(w, "%-*s  ", t.widths[i], h)
	}
	fmt.Fprintln(w)

	for i := range t.headers {
		fmt.Fprint(w, strings.Repeat("-", t.widths[i]))
		fmt.Fprint(w, "  ")
	}
	fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(t.widths) {
				fmt.Fprintf(w, "%-*s  ", t.widths[i], cell)
			}
		}
		fmt.Fprintln(w)
	}
}

// TransitionTable lays out a as one row per state and one column per symbol,
// plus an ε column when a has epsilon edges. Start states are marked "->",
// accepting states "*".
func TransitionTable(a *fsa.Automaton, alphabet *fsa.Alphabet) *Table {
	hasEpsilon := false
	for _, n := range a.Nodes() {
		for _, e := range a.OutgoingEdges(n) {
			if e.IsEpsilon() {
				hasEpsilon = true
			}
		}
	}

	headers := []string{"", "STATE"}
	headers = append(headers, alphabet.Symbols()...)
	if hasEpsilon {
		headers = append(headers, "ε")
	}
	t := NewTable(headers)

	for _, n := range a.Nodes() {
		marker := ""
		if n.IsStart {
			marker += "->"
		}
		if n.IsEnd {
			marker += "*"
		}
		row := []string{marker, n.Label}

		edges := a.OutgoingEdges(n)
		targets := func(value int) string {
			labels := make([]string, 0)
			for _, e := range edges {
				if e.Value == value {
					labels = append(labels, a.Node(e.Target).Label)
				}
			}
			if len(labels) == 0 {
				return "-"
			}
			return strings.Join(labels, ",")
		}
		for _, v := range alphabet.Values() {
			row = append(row, targets(v))
		}
		if hasEpsilon {
			row = append(row, targets(fsa.Epsilon))
		}
		t.AddRow(row)
	}
	return t
}
