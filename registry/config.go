package registry

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/vickrey/core"
)

// Config holds the engine's fixed parameters. Fees are exact-match charges:
// an over- or underpayment is rejected, never partially accepted.
type Config struct {
	// ListingFee is charged once per created auction, non-refundable.
	ListingFee decimal.Decimal

	// EntranceFee is charged once per participant per auction, non-refundable.
	EntranceFee decimal.Decimal

	// MinNameLen and MaxNameLen bound the auction name in runes.
	MinNameLen int
	MaxNameLen int

	// MinStartLead is how far in the future startsAt must be.
	MinStartLead time.Duration

	// MinDuration is the minimum bidding window length.
	MinDuration time.Duration

	// LonePolicy prices items that received exactly one bid. Nil means the
	// sole bidder pays their own full bid.
	LonePolicy core.PricingPolicy
}

// DefaultConfig returns the production parameters.
func DefaultConfig() Config {
	return Config{
		ListingFee:   decimal.NewFromInt(100),
		EntranceFee:  decimal.NewFromInt(10),
		MinNameLen:   4,
		MaxNameLen:   32,
		MinStartLead: time.Minute,
		MinDuration:  time.Minute,
		LonePolicy:   core.LoneBidPaysOwnPrice,
	}
}
