package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/config"
	"github.com/dshills/cascade/internal/logging"
	"github.com/dshills/cascade/internal/replay"
)

func TestExampleConfig(t *testing.T) {
	cfg, err := config.Load("../../examples/cascade.toml")
	require.NoError(t, err)

	a := newApp(t, cfg)
	table := a.Table()
	table.Reload()
	for table.Scroll(1) {
	}

	require.Len(t, a.Root().Children(), 3)
	// complete, bare and selective stubs, depth first
	require.Len(t, a.Stubs(), 4)
	assert.Positive(t, a.Activity().Total(cascade.Forwarded))

	for _, c := range a.Stubs()[3].Calls() {
		assert.Equal(t, cascade.KindWillDisplayHeader, c.Kind)
		assert.Equal(t, 2, c.Section)
	}
}

func TestExampleScenario(t *testing.T) {
	script, err := replay.ParseFile("../../examples/scenarios/basic.yaml")
	require.NoError(t, err)

	a := newApp(t, config.Default())
	report := replay.NewRunner(logging.NullLogger).Run(a.Root(), script)

	assert.True(t, report.Passed(), "failures: %v", report.Failures)
	assert.Equal(t, cascade.ModeRow, a.Root().Mode(), "runner restores the mode")
}
