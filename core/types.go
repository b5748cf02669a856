package core

import "github.com/shopspring/decimal"

// Bid is a participant's live amount for a single item. Seq is the global
// submission-order stamp assigned when the bid was accepted; it makes
// tie-breaking deterministic. Callers pass at most one bid per bidder per
// item (a later bid replaces the earlier one before settlement runs).
type Bid struct {
	Bidder string
	Amount decimal.Decimal
	Seq    uint64
}

// Outcome is the settlement result for one item.
type Outcome struct {
	// HasWinner is false when the item received no bids.
	HasWinner bool

	// Winner is the identity of the highest bidder (empty if no winner).
	Winner string

	// ClearingPrice is what the winner owes: the highest losing bid when
	// there are two or more bids, otherwise the lone-bid policy's price.
	ClearingPrice decimal.Decimal

	// Leftovers maps each bidder to the refundable portion of their live
	// bid: amount minus clearing price for the winner, the full amount for
	// everyone else.
	Leftovers map[string]decimal.Decimal
}

// Settlement contains the per-item outcomes of an auction and the total
// clearing revenue across all items.
type Settlement struct {
	Outcomes map[int]Outcome
	Revenue  decimal.Decimal
}
