// Package registry owns the append-only collection of auctions and is the
// sole mutator of auction, item, participant and escrow state. All
// operations are serialized through a single mutex so every call observes
// either none or all of any other call's effects.
package registry

import (
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/vickrey/core"
	"github.com/cloudx-io/vickrey/events"
)

// PayoutFunc releases withdrawn funds to a participant. It runs after the
// withdrawal has committed and the registry lock has been released, so a
// re-entrant call from inside the hook observes withdrawn=true and fails.
type PayoutFunc func(auctionID uint64, participant string, amount decimal.Decimal)

type bidState struct {
	amount decimal.Decimal
	seq    uint64
}

type item struct {
	description string
	removed     bool

	// Settlement result, meaningful only once the auction is concluded.
	hasWinner     bool
	winner        string
	clearingPrice decimal.Decimal
}

type participant struct {
	// bids holds the live bid per item index; a later bid replaces the
	// earlier one. deposited accumulates every amount ever escrowed per
	// item, including superseded bids, so replacements refund at settlement.
	bids      map[int]bidState
	deposited map[int]decimal.Decimal

	leftover  decimal.Decimal
	withdrawn bool
}

type auction struct {
	id        uint64
	name      string
	creator   string
	startsAt  time.Time
	endsAt    time.Time
	concluded bool

	items        []*item
	participants map[string]*participant

	// Escrow accounting. Invariant once concluded:
	// received == operatorRevenue + withdrawn + outstanding.
	received        decimal.Decimal
	operatorRevenue decimal.Decimal
	outstanding     decimal.Decimal
	withdrawnTotal  decimal.Decimal
}

// Registry is the auction engine's single writer.
type Registry struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	pub      events.Publisher
	payout   PayoutFunc
	auctions []*auction

	// bidSeq stamps accepted bids globally so settlement tie-breaking is
	// deterministic (earliest accepted bid wins among equal amounts).
	bidSeq uint64
}

// New creates a registry with the given parameters, time source and event
// publisher. A nil publisher discards events.
func New(cfg Config, clock Clock, pub events.Publisher) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	if pub == nil {
		pub = events.Discard{}
	}
	return &Registry{
		cfg:   cfg,
		clock: clock,
		pub:   pub,
	}
}

// OnPayout installs the hook invoked after each committed withdrawal.
func (r *Registry) OnPayout(fn PayoutFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payout = fn
}

// Fees returns the fixed listing and entrance fees.
func (r *Registry) Fees() (listing, entrance decimal.Decimal) {
	return r.cfg.ListingFee, r.cfg.EntranceFee
}

func (r *Registry) lonePolicy() core.PricingPolicy {
	if r.cfg.LonePolicy != nil {
		return r.cfg.LonePolicy
	}
	return core.LoneBidPaysOwnPrice
}

// auctionByID must be called with the lock held.
func (r *Registry) auctionByID(id uint64) (*auction, error) {
	if id >= uint64(len(r.auctions)) {
		return nil, ErrInvalidAuctionID
	}
	return r.auctions[id], nil
}

// liveItem must be called with the lock held. Removed slots are tombstoned,
// never compacted, so indices announced before a removal stay valid.
func (a *auction) liveItem(index int) (*item, bool) {
	if index < 0 || index >= len(a.items) || a.items[index].removed {
		return nil, false
	}
	return a.items[index], true
}

// publish delivers an event after the mutation it describes has committed.
// Delivery failures are logged, never propagated: committed state does not
// roll back because an observer was unreachable.
func (r *Registry) publish(ev events.Event) {
	if err := r.pub.Publish(ev); err != nil {
		log.Printf("ERROR: failed to publish %s event for auction %d: %v", ev.Type, ev.AuctionID, err)
	}
}
