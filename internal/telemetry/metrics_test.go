package telemetry

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/recorder"
)

func TestObserveCounts(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	p, err := cascade.New(0, []cascade.Delegate{recorder.NewBare(0), recorder.NewComplete(1)}, cascade.WithObserver(m))
	require.NoError(t, err)

	p.WillDisplayCell(nil, nil, cascade.NewIndexPath(1, 0))
	p.WillDisplayCell(nil, nil, cascade.NewIndexPath(0, 0))
	p.WillDisplayCell(nil, nil, cascade.NewIndexPath(7, 0))
	p.WillDisplayHeader(nil, nil, 1)

	cell := cascade.KindWillDisplayCell.String()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(cell, "forwarded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(cell, "dropped-unsupported")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(cell, "dropped-out-of-range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(
		cascade.KindWillDisplayHeader.String(), "dropped-mode-mismatch")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mode.WithLabelValues("row")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.mode.WithLabelValues("section")))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	m.Observe(cascade.Outcome{Kind: cascade.KindWillDisplayFooter, Result: cascade.Forwarded})

	srv, err := m.Serve("127.0.0.1:0")
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cascade_notifications_total{kind="will-display-footer",result="forwarded"} 1`)
}
