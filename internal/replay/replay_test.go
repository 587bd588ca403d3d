package replay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/recorder"
)

const scenarios = `
name: display customization
steps:
  - mode: row
  - kind: will-display-cell
    row: 1
    expect: forwarded
    target: 1
  - kind: will-display-cell
    row: 99
    expect: dropped-out-of-range
  - kind: will-display-header
    section: 1
    expect: dropped-mode-mismatch
  - mode: section
    kind: will-display-header
    section: 1
    expect: forwarded
  - kind: will_display_cell
    row: 0
    section: 0
    expect: dropped-unsupported
    target: 0
`

func newParent(t *testing.T) (*cascade.Propagator, *recorder.Bare, *recorder.Complete) {
	t.Helper()
	bare := recorder.NewBare(0)
	complete := recorder.NewComplete(1)
	p, err := cascade.New(0, []cascade.Delegate{bare, complete})
	require.NoError(t, err)
	return p, bare, complete
}

func TestRunScenarios(t *testing.T) {
	s, err := Parse(strings.NewReader(scenarios))
	require.NoError(t, err)
	require.Len(t, s.Steps, 5)

	p, bare, complete := newParent(t)
	report := NewRunner(nil).Run(p, s)

	assert.True(t, report.Passed(), "failures: %v", report.Failures)
	assert.NotEqual(t, uuid.Nil, report.RunID)
	assert.Equal(t, "display customization", report.Script)
	assert.Len(t, report.Outcomes, 5)
	assert.Equal(t, 2, report.Count(cascade.Forwarded))

	assert.Empty(t, bare.Calls())
	calls := complete.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, cascade.KindWillDisplayCell, calls[0].Kind)
	assert.Equal(t, cascade.KindWillDisplayHeader, calls[1].Kind)
	assert.Equal(t, 1, calls[1].Section)

	table, ok := calls[0].Table.(*Table)
	require.True(t, ok, "table payload is %T", calls[0].Table)
	assert.Equal(t, report.RunID, table.RunID)
	assert.Equal(t, "display customization", table.Script)
	assert.Same(t, table, calls[1].Table)

	// mode is restored after the run
	assert.Equal(t, cascade.ModeRow, p.Mode())
}

func TestRunReportsFailures(t *testing.T) {
	s, err := Parse(strings.NewReader(`
steps:
  - kind: will-display-cell
    row: 0
    expect: forwarded
  - kind: will-display-cell
    row: 1
    target: 0
`))
	require.NoError(t, err)

	p, _, _ := newParent(t)
	report := NewRunner(nil).Run(p, s)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, 0, report.Failures[0].Step)
	assert.Contains(t, report.Failures[0].String(), "expected forwarded, got dropped-unsupported")
	assert.Contains(t, report.Failures[1].Reason, "expected target 0, got 1")
}

func TestRunKeepsExistingObserver(t *testing.T) {
	var seen int
	p, _, _ := newParent(t)
	obs := cascade.ObserverFunc(func(cascade.Outcome) { seen++ })
	p.SetObserver(obs)

	s := &Script{Steps: []Step{{Kind: kindPtr(cascade.KindWillDisplayFooter)}}}
	NewRunner(nil).Run(p, s)

	assert.Equal(t, 1, seen)
	require.NotNil(t, p.Observer())
	p.Observer().Observe(cascade.Outcome{})
	assert.Equal(t, 2, seen)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown kind":  "steps:\n  - kind: will-select-row\n",
		"unknown mode":  "steps:\n  - mode: diagonal\n",
		"empty step":    "steps:\n  - row: 1\n",
		"unknown field": "steps:\n  - kind: will-display-cell\n    colour: red\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - mode: section\n"), 0o644))

	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)
	require.NotNil(t, s.Steps[0].Mode)
	assert.Equal(t, cascade.ModeSection, *s.Steps[0].Mode)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func kindPtr(k cascade.Kind) *cascade.Kind { return &k }
