package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ayutaki/kiroku/internal/logger"
)

func TestSyncJob_FlushesOnInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, outbox, mockAdapter := newTestEngine(t, ctrl, true)
	enqueueCreateEntry(outbox, "q1", "a", "pending")
	mockAdapter.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)

	job := NewSyncJob(engine, 10*time.Millisecond, nil, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return outbox.Depth() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSyncJob_FlushesOnOnlineTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, outbox, mockAdapter := newTestEngine(t, ctrl, true)
	enqueueCreateEntry(outbox, "q1", "a", "pending")
	mockAdapter.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)

	events := make(chan bool, 1)
	events <- true

	// interval far too long to fire: the drain must come from the initial
	// flush or the connectivity event
	job := NewSyncJob(engine, time.Hour, events, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return outbox.Depth() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSyncJob_StopTerminatesLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, _ := newTestEngine(t, ctrl, false)

	job := NewSyncJob(engine, 10*time.Millisecond, nil, logger.Nop())
	job.Start(context.Background())
	job.Stop()

	// second Stop is a no-op
	job.Stop()
}

func TestSyncJob_RestartSafe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, _ := newTestEngine(t, ctrl, false)

	job := NewSyncJob(engine, 10*time.Millisecond, nil, logger.Nop())
	job.Start(context.Background())
	job.Start(context.Background())
	job.Stop()
}
