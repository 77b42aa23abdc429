package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/fsa"
	"github.com/geange/fsa/internal/output"
)

const scenarioDefinition = `
alphabet: ["0", "1"]
states:
  - {label: q0, start: true}
  - {label: q1}
  - {label: q2, accept: true}
transitions:
  - {from: q0, to: q0, symbol: "0"}
  - {from: q0, to: q1, symbol: "0"}
  - {from: q1, to: q2, symbol: "1"}
`

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func definitionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioDefinition), 0o644))
	return path
}

func TestGenerateCommand(t *testing.T) {
	out, err := run(t, "generate", "--seed", "7", "--size", "6", "--json")
	require.NoError(t, err)

	var view output.AutomatonView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.True(t, view.IsDFA)
	assert.Len(t, view.Nodes, 6)
	assert.Equal(t, []string{"0", "1"}, view.Alphabet)

	again, err := run(t, "generate", "--seed", "7", "--size", "6", "--json")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerateNFACommand(t *testing.T) {
	out, err := run(t, "generate", "--seed", "3", "--nfa", "--json")
	require.NoError(t, err)

	var view output.AutomatonView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.False(t, view.IsDFA)
	assert.True(t, view.Nodes[0].IsStart)
}

func TestDeterminizeCommand(t *testing.T) {
	out, err := run(t, "determinize", "--definition", definitionFile(t), "--json")
	require.NoError(t, err)

	var view output.AutomatonView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.True(t, view.IsDFA)
	assert.Len(t, view.Nodes, 4)
}

func TestMinimizeCommand(t *testing.T) {
	out, err := run(t, "minimize", "--definition", definitionFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "STATE")
	assert.Contains(t, out, "DFA{states: 4, transitions: 8}")
}

func TestPruneCommand(t *testing.T) {
	out, err := run(t, "prune", "--definition", definitionFile(t), "--json")
	require.NoError(t, err)

	var view output.AutomatonView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Len(t, view.Nodes, 3)
	assert.Equal(t, "q_0", view.Nodes[0].Label)
}

func TestAcceptCommand(t *testing.T) {
	path := definitionFile(t)

	out, err := run(t, "accept", "--definition", path, "01", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"01" accepted`)
	assert.Contains(t, out, `"1" rejected`)

	out, err = run(t, "accept", "--definition", path, "--json", "001", "10")
	require.NoError(t, err)
	var results map[string]bool
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, map[string]bool{"001": true, "10": false}, results)

	_, err = run(t, "accept", "--definition", path)
	assert.Error(t, err)
}

func TestEquivalentCommand(t *testing.T) {
	path := definitionFile(t)

	out, err := run(t, "equivalent", "--definition", path, "--json", "0", "00")
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["equivalent"])

	out, err = run(t, "equivalent", "--definition", path, "", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "distinguishable")

	out, err = run(t, "equivalent", "--definition", path, "--from", "q_1", "--json", "0", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "q_1", result["from"])

	_, err = run(t, "equivalent", "--definition", path, "--from", "nosuch", "0", "1")
	assert.ErrorIs(t, err, fsa.ErrUnknownState)
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "generate", "--size", "0")
	assert.Error(t, err)

	_, err = run(t, "generate", "--definition", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
