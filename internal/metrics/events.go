package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.UserRegistered,
		event.FishingCompleted,
		event.GachaDrawn,
		event.LevelUp,
		event.TechnologyUnlocked,
		event.AchievementCompleted,
		event.MarketSold,
		event.SignedIn,
		event.WagerSettled,
		event.FishSold,
	} {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.UserRegisteredPayload:
		Registrations.WithLabelValues(p.Platform).Inc()

	case domain.FishingCompletedPayload:
		if p.Success {
			FishingAttempts.WithLabelValues(ResultSuccess).Inc()
			FishCaught.WithLabelValues(strconv.Itoa(p.Rarity)).Inc()
		} else {
			FishingAttempts.WithLabelValues(ResultMiss).Inc()
		}

	case domain.GachaDrawnPayload:
		GoldSpent.WithLabelValues(SourceGacha).Add(float64(p.Cost))
		for _, r := range p.Rarities {
			GachaDraws.WithLabelValues(strconv.Itoa(r)).Inc()
		}

	case domain.LevelUpPayload:
		LevelUps.Inc()
		GoldEarned.WithLabelValues(SourceLevelUp).Add(float64(p.Reward))

	case domain.TechnologyUnlockedPayload:
		path := PathManual
		if p.Auto {
			path = PathAuto
		}
		TechUnlocks.WithLabelValues(p.TechKey, path).Inc()

	case domain.AchievementCompletedPayload:
		AchievementsCompleted.WithLabelValues(p.Key).Inc()

	case domain.MarketSoldPayload:
		MarketSales.WithLabelValues(string(p.ItemType)).Inc()

	case domain.SignInLog:
		SignIns.Inc()
		GoldEarned.WithLabelValues(SourceSignIn).Add(float64(p.Reward))

	case domain.WagerSettledPayload:
		result := ResultLoss
		if p.Payout > p.Stake {
			result = ResultWin
		}
		Wagers.WithLabelValues(result).Inc()
		GoldSpent.WithLabelValues(SourceWager).Add(float64(p.Stake))
		GoldEarned.WithLabelValues(SourceWager).Add(float64(p.Payout))

	case domain.FishSoldPayload:
		GoldEarned.WithLabelValues(SourceFishSale).Add(float64(p.Earned))

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
