package registry

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/vickrey/events"
)

// CreateAuction lists a new auction and returns its sequential id. The
// listing fee must match exactly and becomes operator revenue immediately;
// it is never refunded. startsAt and endsAt are fixed for the auction's
// lifetime.
func (r *Registry) CreateAuction(caller, name string, startsAt, endsAt time.Time, fee decimal.Decimal) (uint64, error) {
	r.mu.Lock()
	now := r.clock.Now()

	if !fee.Equal(r.cfg.ListingFee) {
		r.mu.Unlock()
		return 0, ErrInsufficientFee
	}
	if startsAt.Before(now.Add(r.cfg.MinStartLead)) {
		r.mu.Unlock()
		return 0, ErrInvalidStartTime
	}
	if endsAt.Before(startsAt.Add(r.cfg.MinDuration)) {
		r.mu.Unlock()
		return 0, ErrInvalidEndTime
	}
	nameLen := utf8.RuneCountInString(name)
	if nameLen < r.cfg.MinNameLen {
		r.mu.Unlock()
		return 0, ErrNameTooShort
	}
	if nameLen > r.cfg.MaxNameLen {
		r.mu.Unlock()
		return 0, ErrNameTooLong
	}

	a := &auction{
		id:              uint64(len(r.auctions)),
		name:            name,
		creator:         caller,
		startsAt:        startsAt,
		endsAt:          endsAt,
		participants:    make(map[string]*participant),
		received:        fee,
		operatorRevenue: fee,
		outstanding:     decimal.Zero,
		withdrawnTotal:  decimal.Zero,
	}
	r.auctions = append(r.auctions, a)
	r.mu.Unlock()

	r.publish(events.AuctionCreated(a.id, caller, startsAt, endsAt))
	return a.id, nil
}

// AddItem appends an item to the auction's catalog. Creator only, and only
// strictly before the bidding window opens.
func (r *Registry) AddItem(caller string, auctionID uint64, description string) error {
	r.mu.Lock()
	a, err := r.auctionByID(auctionID)
	if err == nil {
		err = a.gateCatalogEdit(caller, r.clock.Now())
	}
	if err != nil {
		r.mu.Unlock()
		return err
	}

	a.items = append(a.items, &item{description: description})
	r.mu.Unlock()

	r.publish(events.ItemAdded(auctionID, description))
	return nil
}

// RemoveItem tombstones the item at the given index. Indices of the
// remaining items never shift; the slot simply stops existing for bidding
// and projection purposes.
func (r *Registry) RemoveItem(caller string, auctionID uint64, index int) error {
	r.mu.Lock()
	a, err := r.auctionByID(auctionID)
	if err == nil {
		err = a.gateCatalogEdit(caller, r.clock.Now())
	}
	if err != nil {
		r.mu.Unlock()
		return err
	}

	it, ok := a.liveItem(index)
	if !ok {
		r.mu.Unlock()
		return ErrItemIndexOutOfRange
	}
	it.removed = true
	description := it.description
	r.mu.Unlock()

	r.publish(events.ItemRemoved(auctionID, description))
	return nil
}

// gateCatalogEdit applies the shared preconditions for item edits. The
// already-ended check is unreachable when the already-started check holds,
// but both gates are kept explicit.
func (a *auction) gateCatalogEdit(caller string, now time.Time) error {
	if !now.Before(a.startsAt) {
		return ErrAuctionStarted
	}
	if !now.Before(a.endsAt) {
		return ErrAuctionEnded
	}
	if caller != a.creator {
		return ErrNotCreator
	}
	return nil
}

// JoinAuction registers the caller as a participant. The entrance fee must
// match exactly and becomes operator revenue immediately. Each identity can
// join a given auction at most once.
func (r *Registry) JoinAuction(caller string, auctionID uint64, fee decimal.Decimal) error {
	r.mu.Lock()
	a, err := r.auctionByID(auctionID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	now := r.clock.Now()
	if !now.Before(a.startsAt) {
		r.mu.Unlock()
		return ErrAuctionStarted
	}
	if !now.Before(a.endsAt) {
		r.mu.Unlock()
		return ErrAuctionEnded
	}
	if !fee.Equal(r.cfg.EntranceFee) {
		r.mu.Unlock()
		return ErrInsufficientEntranceFee
	}
	if _, joined := a.participants[caller]; joined {
		r.mu.Unlock()
		return ErrAlreadyJoined
	}

	a.participants[caller] = &participant{
		bids:      make(map[int]bidState),
		deposited: make(map[int]decimal.Decimal),
		leftover:  decimal.Zero,
	}
	a.received = a.received.Add(fee)
	a.operatorRevenue = a.operatorRevenue.Add(fee)
	r.mu.Unlock()

	r.publish(events.ParticipantJoined(auctionID, caller))
	return nil
}

// PlaceBid records or replaces the caller's bid on an item during the
// bidding window. The full amount moves into escrow on every call; when a
// bid is replaced, the superseded amount stays escrowed and flows back to
// the participant as leftover at settlement.
func (r *Registry) PlaceBid(caller string, auctionID uint64, itemID int, amount decimal.Decimal) error {
	r.mu.Lock()
	a, err := r.auctionByID(auctionID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if _, ok := a.liveItem(itemID); !ok {
		r.mu.Unlock()
		return ErrInvalidItemID
	}
	p, joined := a.participants[caller]
	if !joined {
		r.mu.Unlock()
		return ErrNotParticipant
	}
	now := r.clock.Now()
	if now.Before(a.startsAt) {
		r.mu.Unlock()
		return ErrAuctionNotStarted
	}
	if !now.Before(a.endsAt) {
		r.mu.Unlock()
		return ErrAuctionEnded
	}
	if amount.Sign() <= 0 {
		r.mu.Unlock()
		return ErrInsufficientBidAmount
	}

	r.bidSeq++
	p.bids[itemID] = bidState{amount: amount, seq: r.bidSeq}
	p.deposited[itemID] = p.deposited[itemID].Add(amount)
	a.received = a.received.Add(amount)
	r.mu.Unlock()

	r.publish(events.BidPlaced(auctionID, caller, itemID, amount))
	return nil
}
