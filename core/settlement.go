package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SettleItem computes the winner, clearing price and per-bidder leftovers
// for a single item.
//
// Rules:
//  1. Zero bids: no winner, zero price, no leftovers.
//  2. One bid: that bidder wins and pays the policy's lone-bid price.
//  3. Two or more bids: bids are ordered by amount descending, submission
//     sequence ascending. The first entry wins and pays the second entry's
//     amount (the highest losing bid). Tied top bids therefore clear at the
//     tied amount, and the earliest-submitted of the tied bids wins.
//
// The winner's leftover is their amount minus the clearing price; every
// other bidder's leftover is their full amount. For any input,
// sum(amounts) == ClearingPrice + sum(Leftovers) when HasWinner is true.
func SettleItem(bids []Bid, policy PricingPolicy) Outcome {
	if policy == nil {
		policy = LoneBidPaysOwnPrice
	}

	switch len(bids) {
	case 0:
		return Outcome{
			ClearingPrice: decimal.Zero,
			Leftovers:     map[string]decimal.Decimal{},
		}
	case 1:
		price := policy.LoneBidPrice(bids[0].Amount)
		return Outcome{
			HasWinner:     true,
			Winner:        bids[0].Bidder,
			ClearingPrice: price,
			Leftovers: map[string]decimal.Decimal{
				bids[0].Bidder: bids[0].Amount.Sub(price),
			},
		}
	}

	ordered := make([]Bid, len(bids))
	copy(ordered, bids)

	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Amount.Equal(ordered[j].Amount) {
			return ordered[i].Amount.GreaterThan(ordered[j].Amount)
		}
		// Earliest-submitted bid wins among equal amounts.
		return ordered[i].Seq < ordered[j].Seq
	})

	winner := ordered[0]
	price := ordered[1].Amount

	leftovers := make(map[string]decimal.Decimal, len(ordered))
	leftovers[winner.Bidder] = winner.Amount.Sub(price)
	for _, bid := range ordered[1:] {
		leftovers[bid.Bidder] = bid.Amount
	}

	return Outcome{
		HasWinner:     true,
		Winner:        winner.Bidder,
		ClearingPrice: price,
		Leftovers:     leftovers,
	}
}

// SettleAuction settles every item independently and sums the clearing
// revenue. Keys of itemBids are item indices; items without bids may be
// omitted entirely, their outcome is the zero-bid outcome either way.
func SettleAuction(itemBids map[int][]Bid, policy PricingPolicy) *Settlement {
	result := &Settlement{
		Outcomes: make(map[int]Outcome, len(itemBids)),
		Revenue:  decimal.Zero,
	}

	for index, bids := range itemBids {
		outcome := SettleItem(bids, policy)
		result.Outcomes[index] = outcome
		if outcome.HasWinner {
			result.Revenue = result.Revenue.Add(outcome.ClearingPrice)
		}
	}

	return result
}
