package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (s *fakeStore) DeleteQueryLogsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoffs = append(s.cutoffs, cutoff)
	return 3, s.err
}

func (s *fakeStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cutoffs)
}

func TestPruneOnceUsesRetention(t *testing.T) {
	store := &fakeStore{}
	p := NewQueryLogPruner(store, time.Hour, 24*time.Hour, zap.NewNop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	p.pruneOnce(context.Background())

	assert.Equal(t, []time.Time{fixed.Add(-24 * time.Hour)}, store.cutoffs)
}

func TestPruneOnceLogsErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	p := NewQueryLogPruner(store, time.Hour, time.Hour, zap.NewNop())

	p.pruneOnce(context.Background())
	assert.Equal(t, 1, store.calls())
}

func TestStartStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &fakeStore{}
	p := NewQueryLogPruner(store, 5*time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.calls() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop after cancel")
	}
}
