package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/config"
	"github.com/dshills/cascade/internal/logging"
	"github.com/dshills/cascade/internal/recorder"
)

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg, Options{Logger: logging.NullLogger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewFromDefaults(t *testing.T) {
	a := newApp(t, config.Default())

	require.Len(t, a.Stubs(), 2)
	assert.Equal(t, cascade.ModeRow, a.Root().Mode())

	a.Table().Reload()

	// Row mode: headers and footers are dropped, cells route by row.
	assert.Empty(t, a.Stubs()[0].Calls())
	calls := a.Stubs()[1].Calls()
	require.NotEmpty(t, calls)
	for _, c := range calls {
		assert.Equal(t, 1, c.Path.Row)
	}
	assert.Positive(t, a.Activity().Total(cascade.DroppedModeMismatch))
}

func TestToggleMode(t *testing.T) {
	a := newApp(t, config.Default())

	assert.Equal(t, cascade.ModeSection, a.ToggleMode())
	a.Table().Reload()

	for _, c := range a.Stubs()[1].Calls() {
		assert.Equal(t, 1, c.Section)
	}
	assert.Equal(t, cascade.ModeRow, a.ToggleMode())
}

func TestApplyModeOnly(t *testing.T) {
	a := newApp(t, config.Default())
	a.Table().Reload()
	table := a.Table()

	next := config.Default()
	next.Propagation.Mode = cascade.ModeSection
	require.NoError(t, a.Apply(next))

	assert.Equal(t, cascade.ModeSection, a.Root().Mode())
	assert.Same(t, table, a.Table(), "mode change should not rebuild the table")
}

func TestApplyChildren(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "child.lua"), []byte(`
count = 0
function will_display_cell(t, c, r, s) count = count + 1 end
`), 0o644))
	cfgPath := filepath.Join(dir, "cascade.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[[children]]
index = 0
type = "lua"
script = "child.lua"

[[children]]
index = 1
type = "complete"
`), 0o644))

	a := newApp(t, config.Default())
	a.Table().Reload()
	old := a.Stubs()[1]
	before := len(old.Calls())

	next, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.NoError(t, a.Apply(next))

	// old children saw the visible items end
	var ended int
	for _, c := range old.Calls()[before:] {
		if c.Kind == cascade.KindDidEndDisplayingCell {
			ended++
		}
	}
	assert.Positive(t, ended)

	require.Len(t, a.Stubs(), 1)
	assert.NotEmpty(t, a.Stubs()[0].Calls())
	assert.Equal(t, next, a.Config())
}

func TestApplyBadChildrenKeepsOld(t *testing.T) {
	a := newApp(t, config.Default())

	next := config.Default()
	next.Children = []config.ChildConfig{{Index: 0, Type: config.ChildLua, Script: "/does/not/exist.lua"}}

	require.Error(t, a.Apply(next))
	assert.Len(t, a.Root().Children(), 2)
	assert.Len(t, a.Stubs(), 2)
}

func TestApplyRejectedChangesNothing(t *testing.T) {
	a := newApp(t, config.Default())
	prev := a.Config()

	next := config.Default()
	next.Propagation.Mode = cascade.ModeSection
	next.Children = []config.ChildConfig{{Index: 0, Type: config.ChildLua, Script: "/does/not/exist.lua"}}

	require.Error(t, a.Apply(next))
	assert.Equal(t, cascade.ModeRow, a.Root().Mode())
	assert.Same(t, prev, a.Config())
}

// endsMatchDisplays fails the test for any did-end call without an
// earlier will-display of the same item on the same child.
func endsMatchDisplays(t *testing.T, s recorder.Stub) {
	t.Helper()

	started := map[cascade.Kind]cascade.Kind{
		cascade.KindDidEndDisplayingCell:   cascade.KindWillDisplayCell,
		cascade.KindDidEndDisplayingHeader: cascade.KindWillDisplayHeader,
		cascade.KindDidEndDisplayingFooter: cascade.KindWillDisplayFooter,
	}
	type item struct {
		kind    cascade.Kind
		path    cascade.IndexPath
		section int
	}
	shown := make(map[item]int)
	for _, c := range s.Calls() {
		if will, ok := started[c.Kind]; ok {
			key := item{will, c.Path, c.Section}
			if shown[key] == 0 {
				t.Errorf("child %d got %s %s (section %d) it never displayed", s.Index(), c.Kind, c.Path, c.Section)
				continue
			}
			shown[key]--
			continue
		}
		shown[item{c.Kind, c.Path, c.Section}]++
	}
}

func TestApplyModeAndChildrenEndsUnderOldMode(t *testing.T) {
	a := newApp(t, config.Default())
	a.Table().Reload()
	old := a.Stubs()

	next := config.Default()
	next.Propagation.Mode = cascade.ModeSection
	next.Children = []config.ChildConfig{
		{Index: 0, Type: config.ChildComplete},
		{Index: 1, Type: config.ChildComplete},
		{Index: 2, Type: config.ChildComplete},
	}
	require.NoError(t, a.Apply(next))

	for _, s := range old {
		endsMatchDisplays(t, s)
	}
	// everything row 1 displayed under row mode has ended
	var ends int
	for _, c := range old[1].Calls() {
		if c.Kind == cascade.KindDidEndDisplayingCell {
			ends++
		}
	}
	assert.Equal(t, 2, ends)

	assert.Equal(t, cascade.ModeSection, a.Root().Mode())
	require.Len(t, a.Stubs(), 3)
	assert.NotEmpty(t, a.Stubs()[0].Calls())
	assert.NotEmpty(t, a.Stubs()[1].Calls())
}

func TestLimitTableHeight(t *testing.T) {
	a := newApp(t, config.Default())
	a.Table().Reload()
	complete := a.Stubs()[1]

	a.LimitTableHeight(3)
	assert.Equal(t, 3, a.Table().Height())

	complete.Reset()
	next := config.Default()
	next.Table.Height = 12
	require.NoError(t, a.Apply(next))
	assert.Equal(t, 3, a.Table().Height())

	// header, row 0 and row 1 of section 0 are the only lines displayed
	var shown []cascade.IndexPath
	for _, c := range complete.Calls() {
		if c.Kind == cascade.KindWillDisplayCell {
			shown = append(shown, c.Path)
		}
	}
	assert.Equal(t, []cascade.IndexPath{cascade.NewIndexPath(1, 0)}, shown)

	a.LimitTableHeight(-1)
	assert.Equal(t, 12, a.Table().Height())
}

func TestNestedPropagatorChild(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[propagation]
mode = "section"

[[children]]
index = 0
type = "propagator"
mode = "row"

  [[children.children]]
  index = 0
  type = "complete"

[[table.sections]]
rows = 3
header = true
`))
	require.NoError(t, err)

	a := newApp(t, cfg)
	a.Table().Reload()

	require.Len(t, a.Stubs(), 1)
	calls := a.Stubs()[0].Calls()
	require.Len(t, calls, 1, "only row 0 of section 0 reaches the nested child")
	assert.Equal(t, cascade.NewIndexPath(0, 0), calls[0].Path)
}

func TestActivity(t *testing.T) {
	act := NewActivity(2)
	for i := 0; i < 3; i++ {
		act.Observe(cascade.Outcome{Path: cascade.NewIndexPath(i, 0), Result: cascade.Forwarded, Target: i})
	}

	recent := act.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, 1, recent[0].Path.Row)
	assert.Equal(t, 2, recent[1].Path.Row)
	assert.Equal(t, 3, act.Total(cascade.Forwarded))

	assert.Contains(t, Describe(recent[1]), "forwarded")
	assert.Contains(t, Describe(cascade.Outcome{Target: -1}), "-> -")
}
