package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockJob is a simple job for testing
type MockJob struct {
	runs    int32
	started chan struct{}
	hold    chan struct{}
	err     error
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.runs, 1)
	select {
	case m.started <- struct{}{}:
	default:
	}
	if m.hold != nil {
		select {
		case <-m.hold:
		case <-ctx.Done():
		}
	}
	return m.err
}

func TestScheduler_RunsJob(t *testing.T) {
	sched := New()
	job := &MockJob{started: make(chan struct{}, 10), err: errors.New("ignored")}
	require.NoError(t, sched.Schedule("test", "@every 1s", job))

	sched.Start()
	defer func() { _ = sched.Stop(context.Background()) }()

	select {
	case <-job.started:
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for job execution")
	}
	assert.GreaterOrEqual(t, atomic.LoadInt32(&job.runs), int32(1))
}

func TestScheduler_SkipsWhileRunning(t *testing.T) {
	sched := New()
	job := &MockJob{started: make(chan struct{}, 10), hold: make(chan struct{})}
	require.NoError(t, sched.Schedule("slow", "@every 1s", job))
	sched.Start()

	select {
	case <-job.started:
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for job execution")
	}
	// at least one more tick fires while the first run is held
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&job.runs))

	close(job.hold)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, sched.Stop(ctx))
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	sched := New()
	job := &MockJob{started: make(chan struct{}, 1), hold: make(chan struct{})}
	require.NoError(t, sched.Schedule("blocked", "@every 1s", job))
	sched.Start()

	select {
	case <-job.started:
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for job execution")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, sched.Stop(ctx))
}

func TestScheduler_InvalidSpec(t *testing.T) {
	err := New().Schedule("bad", "every now and then", &MockJob{})
	assert.Error(t, err)
}
