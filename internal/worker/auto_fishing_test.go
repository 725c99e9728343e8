package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/domain"
)

type MockAutoFisher struct {
	mock.Mock
}

func (m *MockAutoFisher) AutoFish(ctx context.Context, userID string) (*domain.FishingResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FishingResult), args.Error(1)
}

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListAutoFishingUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newPool(t *testing.T) *Pool {
	t.Helper()
	pool, err := NewPool(TestPoolSize)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func TestAutoFishingJob_Sweep(t *testing.T) {
	lister := new(MockLister)
	fisher := new(MockAutoFisher)

	lister.On("ListAutoFishingUserIDs", mock.Anything).
		Return([]string{"caught", "missed", "busy", "cooling", "broken", "no-rod"}, nil)

	fisher.On("AutoFish", mock.Anything, "caught").Return(&domain.FishingResult{Success: true, Auto: true}, nil)
	fisher.On("AutoFish", mock.Anything, "missed").Return(&domain.FishingResult{Auto: true}, nil)
	fisher.On("AutoFish", mock.Anything, "busy").Return(nil, nil)
	fisher.On("AutoFish", mock.Anything, "cooling").
		Return(nil, domain.ErrOnCooldown{Action: "fishing", Remaining: time.Minute})
	fisher.On("AutoFish", mock.Anything, "broken").Return(nil, errors.New("connection reset"))
	fisher.On("AutoFish", mock.Anything, "no-rod").
		Return(nil, fmt.Errorf("check gear: %w", domain.ErrNoRodEquipped))

	job := NewAutoFishingJob(lister, fisher, newPool(t))
	summary, err := job.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &SweepSummary{Users: 6, Caught: 1, Missed: 1, Skipped: 3, Failed: 1}, summary)
	fisher.AssertNumberOfCalls(t, "AutoFish", 6)
}

func TestAutoFishingJob_ListError(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListAutoFishingUserIDs", mock.Anything).Return(nil, errors.New("db down"))

	job := NewAutoFishingJob(lister, new(MockAutoFisher), newPool(t))
	assert.Error(t, job.Process(context.Background()))

	// the flag is cleared after a failed run
	_, err := job.Sweep(context.Background())
	assert.NotErrorIs(t, err, ErrSweepInProgress)
}

func TestAutoFishingJob_SkipsOverlappingRuns(t *testing.T) {
	lister := new(MockLister)
	fisher := new(MockAutoFisher)
	started := make(chan struct{})
	release := make(chan struct{})

	lister.On("ListAutoFishingUserIDs", mock.Anything).Return([]string{"slow"}, nil)
	fisher.On("AutoFish", mock.Anything, "slow").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.FishingResult{Auto: true}, nil).Once()

	job := NewAutoFishingJob(lister, fisher, newPool(t))

	done := make(chan error, 1)
	go func() {
		_, err := job.Sweep(context.Background())
		done <- err
	}()
	<-started

	_, err := job.Sweep(context.Background())
	assert.ErrorIs(t, err, ErrSweepInProgress)
	assert.NoError(t, job.Process(context.Background()), "overlap is not a job failure")

	close(release)
	require.NoError(t, <-done)
	lister.AssertNumberOfCalls(t, "ListAutoFishingUserIDs", 1)
}
