package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"`
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// Domain event types
const (
	UserRegistered       Type = domain.EventTypeUserRegistered
	FishingCompleted     Type = domain.EventTypeFishingCompleted
	GachaDrawn           Type = domain.EventTypeGachaDrawn
	LevelUp              Type = domain.EventTypeLevelUp
	TechnologyUnlocked   Type = domain.EventTypeTechnologyUnlocked
	AchievementCompleted Type = domain.EventTypeAchievementCompleted
	MarketSold           Type = domain.EventTypeMarketSold
	SignedIn             Type = domain.EventTypeSignedIn
	WagerSettled         Type = domain.EventTypeWagerSettled
	FishSold             Type = domain.EventTypeFishSold
)

// New builds a versioned event stamped with the current time
func New(eventType Type, payload interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus is the publish/subscribe seam between services and observers
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishBestEffort publishes and logs failures. Game state is already committed
// when events fire, so subscriber errors must never surface to the player.
func PublishBestEffort(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}
