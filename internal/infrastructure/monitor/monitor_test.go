//go:build unit
// +build unit

package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/testutil"
)

func TestMonitorSampleWithoutBackends(t *testing.T) {
	m, err := NewMonitor(nil, nil, &config.MonitorSettings{Enabled: true, Interval: time.Second}, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	snap := m.sample(context.Background())
	require.NotNil(t, snap)
	assert.Greater(t, snap.Goroutines, 0)
	assert.Greater(t, snap.HeapAllocBytes, uint64(0))
	assert.Nil(t, snap.DB)
	assert.Nil(t, snap.Redis)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestMonitorRunKeepsLatestSnapshot(t *testing.T) {
	m, err := NewMonitor(nil, nil, &config.MonitorSettings{Enabled: true, Interval: time.Second}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	assert.Nil(t, m.Latest())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	// The first sample is taken immediately, before the first tick
	assert.Eventually(t, func() bool { return m.Latest() != nil }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func TestNewMonitorRejectsSubSecondInterval(t *testing.T) {
	_, err := NewMonitor(nil, nil, &config.MonitorSettings{Enabled: true, Interval: 100 * time.Millisecond}, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestNewMonitorDefaultsInterval(t *testing.T) {
	m, err := NewMonitor(nil, nil, &config.MonitorSettings{Enabled: false}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, defaultInterval, m.interval)
}
