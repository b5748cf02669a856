package registry

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/vickrey/core"
	"github.com/cloudx-io/vickrey/events"
)

// ItemResult is the finalized outcome of one item.
type ItemResult struct {
	Index         int
	Description   string
	HasWinner     bool
	Winner        string
	ClearingPrice decimal.Decimal
}

// Settlement summarizes a concluded auction. Revenue is the total clearing
// revenue across items, excluding listing and entrance fees.
type Settlement struct {
	AuctionID   uint64
	Name        string
	Creator     string
	ConcludedAt time.Time
	Revenue     decimal.Decimal
	Items       []ItemResult
}

// ConcludeAuction settles every item once the bidding window has closed.
// Creator only, exactly once per auction. Clearing prices are credited to
// operator revenue; each participant's leftover balance (everything they
// deposited minus the clearing prices of the items they won) becomes
// claimable via WithdrawLeftovers.
func (r *Registry) ConcludeAuction(caller string, auctionID uint64) (*Settlement, error) {
	r.mu.Lock()
	a, err := r.auctionByID(auctionID)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if caller != a.creator {
		r.mu.Unlock()
		return nil, ErrNotCreator
	}
	if r.clock.Now().Before(a.endsAt) {
		r.mu.Unlock()
		return nil, ErrAuctionNotEnded
	}
	if a.concluded {
		r.mu.Unlock()
		return nil, ErrAlreadyConcluded
	}

	itemBids := make(map[int][]core.Bid)
	for index := range a.items {
		if a.items[index].removed {
			continue
		}
		for name, p := range a.participants {
			if bs, ok := p.bids[index]; ok {
				itemBids[index] = append(itemBids[index], core.Bid{
					Bidder: name,
					Amount: bs.amount,
					Seq:    bs.seq,
				})
			}
		}
	}

	settled := core.SettleAuction(itemBids, r.lonePolicy())

	for index, outcome := range settled.Outcomes {
		it := a.items[index]
		it.hasWinner = outcome.HasWinner
		it.winner = outcome.Winner
		it.clearingPrice = outcome.ClearingPrice
	}
	a.operatorRevenue = a.operatorRevenue.Add(settled.Revenue)

	// Leftover per participant: everything they ever deposited minus the
	// clearing prices of the items they won. Superseded bid amounts are part
	// of the deposits, so they refund here.
	for name, p := range a.participants {
		leftover := decimal.Zero
		for _, deposited := range p.deposited {
			leftover = leftover.Add(deposited)
		}
		for index, outcome := range settled.Outcomes {
			if outcome.HasWinner && outcome.Winner == name && !a.items[index].removed {
				leftover = leftover.Sub(outcome.ClearingPrice)
			}
		}
		p.leftover = leftover
		a.outstanding = a.outstanding.Add(leftover)
	}

	a.concluded = true

	summary := &Settlement{
		AuctionID:   a.id,
		Name:        a.name,
		Creator:     a.creator,
		ConcludedAt: r.clock.Now(),
		Revenue:     settled.Revenue,
		Items:       a.itemResults(),
	}
	r.mu.Unlock()

	r.publish(events.AuctionConcluded(auctionID, summary.Revenue))
	return summary, nil
}

// itemResults must be called with the lock held.
func (a *auction) itemResults() []ItemResult {
	results := make([]ItemResult, 0, len(a.items))
	for index, it := range a.items {
		if it.removed {
			continue
		}
		results = append(results, ItemResult{
			Index:         index,
			Description:   it.description,
			HasWinner:     it.hasWinner,
			Winner:        it.winner,
			ClearingPrice: it.clearingPrice,
		})
	}
	return results
}

// WithdrawLeftovers pays out the caller's summed leftover balance, exactly
// once. The withdrawn flag and escrow totals are committed and the lock is
// released before the payout hook runs, so funds release is always the last
// step and a re-entrant call fails with ErrAlreadyWithdrawn.
func (r *Registry) WithdrawLeftovers(caller string, auctionID uint64) (decimal.Decimal, error) {
	r.mu.Lock()
	a, err := r.auctionByID(auctionID)
	if err != nil {
		r.mu.Unlock()
		return decimal.Zero, err
	}
	if !a.concluded {
		r.mu.Unlock()
		return decimal.Zero, ErrNotConcluded
	}
	p, joined := a.participants[caller]
	if !joined {
		r.mu.Unlock()
		return decimal.Zero, ErrNotParticipant
	}
	if p.withdrawn {
		r.mu.Unlock()
		return decimal.Zero, ErrAlreadyWithdrawn
	}

	amount := p.leftover
	p.withdrawn = true
	a.outstanding = a.outstanding.Sub(amount)
	a.withdrawnTotal = a.withdrawnTotal.Add(amount)
	payout := r.payout
	r.mu.Unlock()

	if payout != nil {
		payout(auctionID, caller, amount)
	}
	r.publish(events.LeftoverWithdrawn(auctionID, caller, amount))
	return amount, nil
}
