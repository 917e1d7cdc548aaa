package netmon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayutaki/kiroku/internal/logger"
)

func TestMonitor_TransitionEmitsEvent(t *testing.T) {
	var reachable atomic.Bool
	probe := func(ctx context.Context) bool { return reachable.Load() }

	m := New(probe, 10*time.Millisecond, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	// starts optimistic, first probe flips to offline
	select {
	case state := <-m.Events():
		assert.False(t, state)
	case <-time.After(time.Second):
		t.Fatal("no offline transition observed")
	}
	assert.False(t, m.Online())

	reachable.Store(true)
	select {
	case state := <-m.Events():
		assert.True(t, state)
	case <-time.After(time.Second):
		t.Fatal("no online transition observed")
	}
	assert.True(t, m.Online())
}

func TestMonitor_NoEventWithoutTransition(t *testing.T) {
	probe := func(ctx context.Context) bool { return true }

	m := New(probe, 5*time.Millisecond, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	select {
	case <-m.Events():
		t.Fatal("event emitted although the state never changed")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_StopBeforeStart(t *testing.T) {
	m := New(func(ctx context.Context) bool { return true }, time.Second, logger.Nop())
	require.NotPanics(t, func() { m.Stop() })
}
