package registry

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemView is the read-only projection of one catalog item. Winner and
// ClearingPrice are populated only after conclusion.
type ItemView struct {
	Index         int
	Description   string
	HasWinner     bool
	Winner        string
	ClearingPrice decimal.Decimal
}

// AuctionView is the read-only projection of an auction. It never exposes
// bid data; settlement results appear on the items once concluded.
type AuctionView struct {
	ID        uint64
	Name      string
	Creator   string
	StartsAt  time.Time
	EndsAt    time.Time
	Concluded bool
	Items     []ItemView
}

// Accounting exposes the escrow totals of an auction. At every point after
// conclusion: Received == OperatorRevenue + Withdrawn + Outstanding.
type Accounting struct {
	Received        decimal.Decimal
	OperatorRevenue decimal.Decimal
	Outstanding     decimal.Decimal
	Withdrawn       decimal.Decimal
}

// GetAuction returns the projection of the auction with the given id.
func (r *Registry) GetAuction(auctionID uint64) (*AuctionView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.auctionByID(auctionID)
	if err != nil {
		return nil, err
	}

	view := &AuctionView{
		ID:        a.id,
		Name:      a.name,
		Creator:   a.creator,
		StartsAt:  a.startsAt,
		EndsAt:    a.endsAt,
		Concluded: a.concluded,
		Items:     make([]ItemView, 0, len(a.items)),
	}
	for index, it := range a.items {
		if it.removed {
			continue
		}
		iv := ItemView{
			Index:       index,
			Description: it.description,
		}
		if a.concluded {
			iv.HasWinner = it.hasWinner
			iv.Winner = it.winner
			iv.ClearingPrice = it.clearingPrice
		}
		view.Items = append(view.Items, iv)
	}
	return view, nil
}

// GetAccounting returns the escrow totals for the auction with the given id.
func (r *Registry) GetAccounting(auctionID uint64) (*Accounting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.auctionByID(auctionID)
	if err != nil {
		return nil, err
	}
	return &Accounting{
		Received:        a.received,
		OperatorRevenue: a.operatorRevenue,
		Outstanding:     a.outstanding,
		Withdrawn:       a.withdrawnTotal,
	}, nil
}
