package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/osse101/FishBot_Go/internal/logger"
)

// Job represents a task to be executed on a schedule
type Job interface {
	Process(ctx context.Context) error
}

// Pool bounds how many per-user tasks a job runs at once
type Pool struct {
	pool *ants.Pool
}

// NewPool creates a pool running at most size tasks concurrently
func NewPool(size int) (*Pool, error) {
	p, err := ants.NewPool(size, ants.WithPanicHandler(func(v interface{}) {
		logger.FromContext(context.Background()).Error(LogMsgWorkerTaskPanic, "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Pool{pool: p}, nil
}

// Each runs fn once per key and waits for all of them. Submission stops
// early when ctx is cancelled; tasks already submitted still finish.
func (p *Pool) Each(ctx context.Context, keys []string, fn func(ctx context.Context, key string)) {
	var wg sync.WaitGroup
	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			fn(ctx, key)
		}); err != nil {
			wg.Done()
			logger.FromContext(ctx).Error(LogMsgWorkerSubmitFail, "key", key, "error", err)
		}
	}
	wg.Wait()
}

// Running reports the number of tasks currently executing
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Release stops the pool. Each must not be called afterwards.
func (p *Pool) Release() {
	p.pool.Release()
}
