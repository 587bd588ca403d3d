package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cascade/internal/cascade"
)

func TestCapabilities(t *testing.T) {
	assert.Empty(t, cascade.Capabilities(NewBare(0)))
	assert.Equal(t, cascade.Kinds(), cascade.Capabilities(NewComplete(1)))

	sel := NewSelective(2, cascade.KindWillDisplayFooter, cascade.KindWillDisplayCell)
	assert.Equal(t, []cascade.Kind{cascade.KindWillDisplayCell, cascade.KindWillDisplayFooter}, cascade.Capabilities(sel))
}

func TestCompleteRecords(t *testing.T) {
	c := NewComplete(3)
	assert.Equal(t, 3, c.Index())

	_, ok := c.Latest()
	assert.False(t, ok)

	cell := &struct{}{}
	c.WillDisplayCell("table", cell, cascade.NewIndexPath(2, 5))
	c.DidEndDisplayingFooter("table", "footer", 4)

	calls := c.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, cascade.KindWillDisplayCell, calls[0].Kind)
	assert.Same(t, cell, calls[0].Cell)
	assert.Equal(t, 5, calls[0].Section)

	last, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, cascade.KindDidEndDisplayingFooter, last.Kind)
	assert.Equal(t, "footer", last.View)
	assert.Equal(t, 4, last.Section)

	c.Reset()
	assert.Empty(t, c.Calls())
}

func TestHook(t *testing.T) {
	s := NewSelective(1, cascade.KindWillDisplayHeader)

	var got []int
	s.SetHook(func(index int, call Call) {
		got = append(got, index, call.Section)
	})
	s.WillDisplayHeader(nil, nil, 7)

	assert.Equal(t, []int{1, 7}, got)
}

func TestCallsReturnsCopy(t *testing.T) {
	c := NewComplete(0)
	c.WillDisplayHeader(nil, nil, 1)

	calls := c.Calls()
	calls[0].Section = 99

	assert.Equal(t, 1, c.Calls()[0].Section)
}
