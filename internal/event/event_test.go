package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(FishingCompleted, func(ctx context.Context, evt Event) error {
		assert.Equal(t, FishingCompleted, evt.Type)
		assert.Equal(t, "payload", evt.Payload)
		handled = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), New(FishingCompleted, "payload")))
	assert.True(t, handled)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, evt Event) error {
		count++
		return nil
	}

	bus.Subscribe(GachaDrawn, handler)
	bus.Subscribe(GachaDrawn, handler)

	require.NoError(t, bus.Publish(context.Background(), New(GachaDrawn, nil)))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), New(LevelUp, nil)))
}

func TestMemoryBus_HandlerErrorsJoined(t *testing.T) {
	bus := NewMemoryBus()
	boom := errors.New("boom")
	calls := 0

	bus.Subscribe(SignedIn, func(ctx context.Context, evt Event) error { return boom })
	bus.Subscribe(SignedIn, func(ctx context.Context, evt Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), New(SignedIn, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "later handlers still run after a failure")
}

func TestPublishBestEffort_NilBus(t *testing.T) {
	assert.NotPanics(t, func() {
		PublishBestEffort(context.Background(), nil, New(LevelUp, nil))
	})
}
