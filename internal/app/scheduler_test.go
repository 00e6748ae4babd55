package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	mu   sync.Mutex
	ttls []time.Duration
}

func (f *fakeSweeper) SweepExpired(ttl time.Duration) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttls = append(f.ttls, ttl)
	return []int64{42}
}

func (f *fakeSweeper) calls() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.ttls...)
}

type fakeSessions struct {
	mu      sync.Mutex
	maxAges []time.Duration
}

func (f *fakeSessions) DeleteStale(_ context.Context, maxAge time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxAges = append(f.maxAges, maxAge)
	return 1, nil
}

func (f *fakeSessions) calls() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.maxAges...)
}

func TestSchedulerRunsTasksImmediately(t *testing.T) {
	drafts := &fakeSweeper{}
	sessions := &fakeSessions{}
	s := NewScheduler(drafts, sessions, SchedulerConfig{
		DraftTTL:        30 * time.Minute,
		SweepInterval:   time.Hour,
		SessionMaxAge:   720 * time.Hour,
		SessionInterval: time.Hour,
	}, zap.NewNop())

	s.Start(context.Background())

	require.Eventually(t, func() bool {
		return len(drafts.calls()) > 0 && len(sessions.calls()) > 0
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, 30*time.Minute, drafts.calls()[0])
	assert.Equal(t, 720*time.Hour, sessions.calls()[0])
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	drafts := &fakeSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(drafts, nil, SchedulerConfig{
		DraftTTL:      time.Minute,
		SweepInterval: 5 * time.Millisecond,
	}, zap.NewNop())

	s.Start(ctx)
	require.Eventually(t, func() bool { return len(drafts.calls()) >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()

	n := len(drafts.calls())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, len(drafts.calls()))
}

func TestSchedulerSkipsDisabledTasks(t *testing.T) {
	drafts := &fakeSweeper{}
	sessions := &fakeSessions{}
	s := NewScheduler(drafts, sessions, SchedulerConfig{}, zap.NewNop())

	s.Start(context.Background())
	s.Stop()
	s.Stop()

	assert.Empty(t, drafts.calls())
	assert.Empty(t, sessions.calls())
}
