package core

import "github.com/shopspring/decimal"

// PricingPolicy selects the clearing price for an item that received
// exactly one bid, where no second price exists. The interface enables
// dependency injection so ports can swap the rule without touching
// settlement.
type PricingPolicy interface {
	// LoneBidPrice returns what the sole bidder owes given their bid.
	LoneBidPrice(bid decimal.Decimal) decimal.Decimal
}

type loneBidPaysOwn struct{}

func (loneBidPaysOwn) LoneBidPrice(bid decimal.Decimal) decimal.Decimal {
	return bid
}

type loneBidPaysZero struct{}

func (loneBidPaysZero) LoneBidPrice(decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// LoneBidPaysReserve charges the sole bidder the reserve price, capped at
// their own bid.
type LoneBidPaysReserve struct {
	Reserve decimal.Decimal
}

func (p LoneBidPaysReserve) LoneBidPrice(bid decimal.Decimal) decimal.Decimal {
	if p.Reserve.GreaterThan(bid) {
		return bid
	}
	return p.Reserve
}

// LoneBidPaysOwnPrice charges the sole bidder their full bid. This is the
// default policy.
var LoneBidPaysOwnPrice PricingPolicy = loneBidPaysOwn{}

// LoneBidPaysZero charges the sole bidder nothing.
var LoneBidPaysZero PricingPolicy = loneBidPaysZero{}
