package worker

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/logger"
)

// ListingExpirer returns expired listings to their sellers
type ListingExpirer interface {
	ExpireListings(ctx context.Context) (int, error)
}

// MarketExpiryJob releases escrow for listings past their expiry
type MarketExpiryJob struct {
	market ListingExpirer
}

// NewMarketExpiryJob creates the market expiry job
func NewMarketExpiryJob(market ListingExpirer) *MarketExpiryJob {
	return &MarketExpiryJob{market: market}
}

func (j *MarketExpiryJob) Process(ctx context.Context) error {
	n, err := j.market.ExpireListings(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgMarketExpiryCompleted, "expired", n)
	}
	return nil
}
