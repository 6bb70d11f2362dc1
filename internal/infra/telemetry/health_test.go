package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthTracker_ReportsStaleLoop(t *testing.T) {
	tracker := NewHealthTracker()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }

	beat := tracker.Register("watcher", time.Second)
	assert.Equal(t, "ok", tracker.Report().Status)

	now = now.Add(5 * time.Second)
	report := tracker.Report()
	assert.Equal(t, "degraded", report.Status)
	require.Len(t, report.Loops, 1)
	assert.False(t, report.Loops[0].Healthy)

	beat.Beat()
	assert.Equal(t, "ok", tracker.Report().Status)
}

func TestHealthTracker_Unregister(t *testing.T) {
	tracker := NewHealthTracker()
	tracker.Register("watcher", time.Nanosecond)
	tracker.Unregister("watcher")

	report := tracker.Report()
	assert.Equal(t, "ok", report.Status)
	assert.Empty(t, report.Loops)
}

func TestHealthTracker_NilIsHealthy(t *testing.T) {
	var tracker *HealthTracker
	assert.Equal(t, "ok", tracker.Report().Status)

	var beat *Heartbeat
	assert.NotPanics(t, beat.Beat)
}
