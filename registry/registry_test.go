package registry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/cloudx-io/vickrey/events"
	"github.com/cloudx-io/vickrey/registry"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	clock    *fakeClock
	recorder *events.Recorder
	reg      *registry.Registry
	listing  decimal.Decimal
	entrance decimal.Decimal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	recorder := &events.Recorder{}
	reg := registry.New(registry.DefaultConfig(), clock, recorder)
	listing, entrance := reg.Fees()
	return &fixture{
		clock:    clock,
		recorder: recorder,
		reg:      reg,
		listing:  listing,
		entrance: entrance,
	}
}

// createAuction lists an auction starting one hour from now with a one hour
// bidding window.
func (f *fixture) createAuction(t *testing.T, creator string) uint64 {
	t.Helper()
	startsAt := f.clock.Now().Add(time.Hour)
	endsAt := startsAt.Add(time.Hour)
	id, err := f.reg.CreateAuction(creator, "Classic Cars", startsAt, endsAt, f.listing)
	assert.NoError(t, err)
	return id
}

func (f *fixture) startBidding(t *testing.T) {
	t.Helper()
	f.clock.Advance(90 * time.Minute)
}

func (f *fixture) endBidding(t *testing.T) {
	t.Helper()
	f.clock.Advance(3 * time.Hour)
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCreateAuction_ProjectionMatchesInput(t *testing.T) {
	f := newFixture(t)
	startsAt := f.clock.Now().Add(2 * time.Hour)
	endsAt := startsAt.Add(time.Hour)

	id, err := f.reg.CreateAuction("alice", "Classic Cars", startsAt, endsAt, f.listing)
	assert.NoError(t, err)
	check.Equal(t, uint64(0), id)

	view, err := f.reg.GetAuction(id)
	assert.NoError(t, err)
	check.Equal(t, "Classic Cars", view.Name)
	check.Equal(t, "alice", view.Creator)
	check.True(t, view.StartsAt.Equal(startsAt))
	check.True(t, view.EndsAt.Equal(endsAt))
	check.False(t, view.Concluded)
	check.Equal(t, 0, len(view.Items))

	// Ids are sequential.
	id2, err := f.reg.CreateAuction("bob", "Old Guitars", startsAt, endsAt, f.listing)
	assert.NoError(t, err)
	check.Equal(t, uint64(1), id2)
}

func TestCreateAuction_FeeMustMatchExactly(t *testing.T) {
	f := newFixture(t)
	startsAt := f.clock.Now().Add(time.Hour)
	endsAt := startsAt.Add(time.Hour)

	_, err := f.reg.CreateAuction("alice", "Classic Cars", startsAt, endsAt, f.listing.Sub(amount(1)))
	check.True(t, errors.Is(err, registry.ErrInsufficientFee))

	// Overpaying is also a mismatch, not a bonus.
	_, err = f.reg.CreateAuction("alice", "Classic Cars", startsAt, endsAt, f.listing.Add(amount(1)))
	check.True(t, errors.Is(err, registry.ErrInsufficientFee))
	check.Equal(t, registry.KindPaymentMismatch, registry.KindOf(err))
}

func TestCreateAuction_TimeValidation(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()

	// startsAt in the past.
	_, err := f.reg.CreateAuction("alice", "Classic Cars", now.Add(-time.Hour), now.Add(time.Hour), f.listing)
	check.True(t, errors.Is(err, registry.ErrInvalidStartTime))

	// startsAt now, inside the minimum lead.
	_, err = f.reg.CreateAuction("alice", "Classic Cars", now, now.Add(time.Hour), f.listing)
	check.True(t, errors.Is(err, registry.ErrInvalidStartTime))

	// endsAt before startsAt.
	startsAt := now.Add(time.Hour)
	_, err = f.reg.CreateAuction("alice", "Classic Cars", startsAt, startsAt.Add(-time.Minute), f.listing)
	check.True(t, errors.Is(err, registry.ErrInvalidEndTime))

	// Window shorter than the minimum duration.
	_, err = f.reg.CreateAuction("alice", "Classic Cars", startsAt, startsAt.Add(time.Second), f.listing)
	check.True(t, errors.Is(err, registry.ErrInvalidEndTime))
}

func TestCreateAuction_NameBounds(t *testing.T) {
	f := newFixture(t)
	startsAt := f.clock.Now().Add(time.Hour)
	endsAt := startsAt.Add(time.Hour)

	_, err := f.reg.CreateAuction("alice", "My", startsAt, endsAt, f.listing)
	check.True(t, errors.Is(err, registry.ErrNameTooShort))

	_, err = f.reg.CreateAuction("alice", "My long auction name that is too long", startsAt, endsAt, f.listing)
	check.True(t, errors.Is(err, registry.ErrNameTooLong))
}

func TestAddItem(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")

	descriptions := []string{"BMW Z4", "Honda S2000", "Mazda Miata"}
	for _, d := range descriptions {
		assert.NoError(t, f.reg.AddItem("alice", id, d))
	}

	view, err := f.reg.GetAuction(id)
	assert.NoError(t, err)
	assert.Equal(t, len(descriptions), len(view.Items))
	for i, d := range descriptions {
		check.Equal(t, d, view.Items[i].Description)
		check.Equal(t, i, view.Items[i].Index)
	}
}

func TestAddItem_Gates(t *testing.T) {
	f := newFixture(t)

	err := f.reg.AddItem("alice", 42, "BMW Z4")
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))

	id := f.createAuction(t, "alice")

	err = f.reg.AddItem("mallory", id, "BMW Z4")
	check.True(t, errors.Is(err, registry.ErrNotCreator))

	// At startsAt the catalog freezes, even for the creator.
	f.startBidding(t)
	err = f.reg.AddItem("alice", id, "BMW Z4")
	check.True(t, errors.Is(err, registry.ErrAuctionStarted))

	f.endBidding(t)
	err = f.reg.AddItem("alice", id, "BMW Z4")
	check.True(t, errors.Is(err, registry.ErrAuctionStarted))
}

func TestRemoveItem_TombstoneKeepsIndicesStable(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.AddItem("alice", id, "Honda S2000"))
	assert.NoError(t, f.reg.AddItem("alice", id, "Mazda Miata"))

	assert.NoError(t, f.reg.RemoveItem("alice", id, 0))

	view, err := f.reg.GetAuction(id)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(view.Items))
	// Remaining items keep their original indices.
	check.Equal(t, 1, view.Items[0].Index)
	check.Equal(t, "Honda S2000", view.Items[0].Description)
	check.Equal(t, 2, view.Items[1].Index)

	// The tombstoned slot cannot be removed again.
	err = f.reg.RemoveItem("alice", id, 0)
	check.True(t, errors.Is(err, registry.ErrItemIndexOutOfRange))
}

func TestRemoveItem_Gates(t *testing.T) {
	f := newFixture(t)

	err := f.reg.RemoveItem("alice", 7, 0)
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))

	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))

	err = f.reg.RemoveItem("mallory", id, 0)
	check.True(t, errors.Is(err, registry.ErrNotCreator))

	err = f.reg.RemoveItem("alice", id, 5)
	check.True(t, errors.Is(err, registry.ErrItemIndexOutOfRange))

	f.startBidding(t)
	err = f.reg.RemoveItem("alice", id, 0)
	check.True(t, errors.Is(err, registry.ErrAuctionStarted))
}

func TestJoinAuction(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")

	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	// Once only.
	err := f.reg.JoinAuction("bob", id, f.entrance)
	check.True(t, errors.Is(err, registry.ErrAlreadyJoined))
	check.Equal(t, registry.KindDuplicateAction, registry.KindOf(err))
}

func TestJoinAuction_Gates(t *testing.T) {
	f := newFixture(t)

	err := f.reg.JoinAuction("bob", 3, decimal.NewFromInt(10))
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))

	id := f.createAuction(t, "alice")

	err = f.reg.JoinAuction("bob", id, decimal.Zero)
	check.True(t, errors.Is(err, registry.ErrInsufficientEntranceFee))

	err = f.reg.JoinAuction("bob", id, f.entrance.Add(amount(5)))
	check.True(t, errors.Is(err, registry.ErrInsufficientEntranceFee))

	f.startBidding(t)
	err = f.reg.JoinAuction("bob", id, f.entrance)
	check.True(t, errors.Is(err, registry.ErrAuctionStarted))
}

func TestPlaceBid(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	f.startBidding(t)
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(1000)))

	acct, err := f.reg.GetAccounting(id)
	assert.NoError(t, err)
	// listing fee + entrance fee + bid.
	check.True(t, acct.Received.Equal(f.listing.Add(f.entrance).Add(amount(1000))))
}

func TestPlaceBid_Gates(t *testing.T) {
	f := newFixture(t)

	err := f.reg.PlaceBid("bob", 9, 0, amount(1000))
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))

	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	err = f.reg.PlaceBid("bob", id, 1, amount(1000))
	check.True(t, errors.Is(err, registry.ErrInvalidItemID))

	err = f.reg.PlaceBid("mallory", id, 0, amount(1000))
	check.True(t, errors.Is(err, registry.ErrNotParticipant))

	// Before the window opens.
	err = f.reg.PlaceBid("bob", id, 0, amount(1000))
	check.True(t, errors.Is(err, registry.ErrAuctionNotStarted))

	f.startBidding(t)
	err = f.reg.PlaceBid("bob", id, 0, decimal.Zero)
	check.True(t, errors.Is(err, registry.ErrInsufficientBidAmount))
	err = f.reg.PlaceBid("bob", id, 0, amount(-5))
	check.True(t, errors.Is(err, registry.ErrInsufficientBidAmount))

	f.endBidding(t)
	err = f.reg.PlaceBid("bob", id, 0, amount(1000))
	check.True(t, errors.Is(err, registry.ErrAuctionEnded))
}

func TestPlaceBid_RemovedItemRejected(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.AddItem("alice", id, "Honda S2000"))
	assert.NoError(t, f.reg.RemoveItem("alice", id, 0))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	f.startBidding(t)
	err := f.reg.PlaceBid("bob", id, 0, amount(1000))
	check.True(t, errors.Is(err, registry.ErrInvalidItemID))

	// The surviving item's original index still works.
	check.NoError(t, f.reg.PlaceBid("bob", id, 1, amount(1000)))
}

func TestConcludeAuction_SingleBidder(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	f.startBidding(t)
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(1000)))
	f.endBidding(t)

	settlement, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)

	// The sole bidder wins and pays their full bid.
	check.True(t, settlement.Revenue.Equal(amount(1000)))
	assert.Equal(t, 1, len(settlement.Items))
	check.Equal(t, "bob", settlement.Items[0].Winner)
	check.True(t, settlement.Items[0].ClearingPrice.Equal(amount(1000)))

	withdrawn, err := f.reg.WithdrawLeftovers("bob", id)
	assert.NoError(t, err)
	check.True(t, withdrawn.IsZero())
}

func TestConcludeAuction_SecondPrice(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	for _, p := range []string{"bob", "carol", "dave"} {
		assert.NoError(t, f.reg.JoinAuction(p, id, f.entrance))
	}

	f.startBidding(t)
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(3)))
	assert.NoError(t, f.reg.PlaceBid("carol", id, 0, amount(4)))
	assert.NoError(t, f.reg.PlaceBid("dave", id, 0, amount(5)))
	f.endBidding(t)

	settlement, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)
	check.Equal(t, "dave", settlement.Items[0].Winner)
	check.True(t, settlement.Items[0].ClearingPrice.Equal(amount(4)))
	check.True(t, settlement.Revenue.Equal(amount(4)))

	// Winner refunds the spread, losers their full bids.
	got, err := f.reg.WithdrawLeftovers("dave", id)
	assert.NoError(t, err)
	check.True(t, got.Equal(amount(1)))

	got, err = f.reg.WithdrawLeftovers("carol", id)
	assert.NoError(t, err)
	check.True(t, got.Equal(amount(4)))

	got, err = f.reg.WithdrawLeftovers("bob", id)
	assert.NoError(t, err)
	check.True(t, got.Equal(amount(3)))

	// Withdrawing twice always fails, even after a successful first call.
	_, err = f.reg.WithdrawLeftovers("dave", id)
	check.True(t, errors.Is(err, registry.ErrAlreadyWithdrawn))
}

func TestConcludeAuction_Gates(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.ConcludeAuction("alice", 1)
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))

	id := f.createAuction(t, "alice")

	_, err = f.reg.ConcludeAuction("mallory", id)
	check.True(t, errors.Is(err, registry.ErrNotCreator))

	_, err = f.reg.ConcludeAuction("alice", id)
	check.True(t, errors.Is(err, registry.ErrAuctionNotEnded))

	f.startBidding(t)
	_, err = f.reg.ConcludeAuction("alice", id)
	check.True(t, errors.Is(err, registry.ErrAuctionNotEnded))

	f.endBidding(t)
	_, err = f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)

	_, err = f.reg.ConcludeAuction("alice", id)
	check.True(t, errors.Is(err, registry.ErrAlreadyConcluded))
}

func TestConcludeAuction_ItemWithNoBids(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	f.endBidding(t)
	settlement, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)

	check.True(t, settlement.Revenue.IsZero())
	assert.Equal(t, 1, len(settlement.Items))
	check.False(t, settlement.Items[0].HasWinner)

	view, err := f.reg.GetAuction(id)
	assert.NoError(t, err)
	check.True(t, view.Concluded)
	check.False(t, view.Items[0].HasWinner)
}

func TestWithdrawLeftovers_Gates(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.WithdrawLeftovers("bob", 4)
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))

	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	// Before conclusion.
	_, err = f.reg.WithdrawLeftovers("bob", id)
	check.True(t, errors.Is(err, registry.ErrNotConcluded))

	f.endBidding(t)
	_, err = f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)

	_, err = f.reg.WithdrawLeftovers("mallory", id)
	check.True(t, errors.Is(err, registry.ErrNotParticipant))

	// A zero leftover still consumes the single withdrawal.
	got, err := f.reg.WithdrawLeftovers("bob", id)
	assert.NoError(t, err)
	check.True(t, got.IsZero())
	_, err = f.reg.WithdrawLeftovers("bob", id)
	check.True(t, errors.Is(err, registry.ErrAlreadyWithdrawn))
}

func TestWithdrawLeftovers_ReentrantPayoutFails(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	f.startBidding(t)
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(1000)))
	f.endBidding(t)
	_, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)

	// The payout hook runs after the withdrawal commits, so a re-entrant
	// withdrawal from inside it must observe withdrawn=true.
	var reentrantErr error
	calls := 0
	f.reg.OnPayout(func(auctionID uint64, participant string, _ decimal.Decimal) {
		calls++
		if calls == 1 {
			_, reentrantErr = f.reg.WithdrawLeftovers(participant, auctionID)
		}
	})

	_, err = f.reg.WithdrawLeftovers("bob", id)
	assert.NoError(t, err)
	check.Equal(t, 1, calls)
	check.True(t, errors.Is(reentrantErr, registry.ErrAlreadyWithdrawn))
}

// Conservation law: everything received is operator revenue plus leftovers,
// withdrawn or still outstanding, at all times after conclusion.
func TestConservation(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.AddItem("alice", id, "Honda S2000"))
	for _, p := range []string{"bob", "carol", "dave"} {
		assert.NoError(t, f.reg.JoinAuction(p, id, f.entrance))
	}

	f.startBidding(t)
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(3)))
	assert.NoError(t, f.reg.PlaceBid("carol", id, 0, amount(4)))
	assert.NoError(t, f.reg.PlaceBid("dave", id, 0, amount(5)))
	// carol replaces her bid on item 1; the superseded 200 stays escrowed
	// and must flow back as leftover.
	assert.NoError(t, f.reg.PlaceBid("carol", id, 1, amount(200)))
	assert.NoError(t, f.reg.PlaceBid("carol", id, 1, amount(300)))
	f.endBidding(t)

	_, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)

	assertConserved := func() {
		t.Helper()
		acct, err := f.reg.GetAccounting(id)
		assert.NoError(t, err)
		total := acct.OperatorRevenue.Add(acct.Withdrawn).Add(acct.Outstanding)
		check.True(t, acct.Received.Equal(total))
	}

	assertConserved()
	for _, p := range []string{"bob", "carol", "dave"} {
		_, err := f.reg.WithdrawLeftovers(p, id)
		assert.NoError(t, err)
		assertConserved()
	}

	// After everyone withdrew, escrow holds nothing unclaimed.
	acct, err := f.reg.GetAccounting(id)
	assert.NoError(t, err)
	check.True(t, acct.Outstanding.IsZero())

	// Listing fee + 3 entrance fees + clearing 4 on item 0 + clearing 300
	// on item 1 (carol's live lone bid pays its own price).
	expectedRevenue := f.listing.
		Add(f.entrance.Mul(amount(3))).
		Add(amount(4)).
		Add(amount(300))
	check.True(t, acct.OperatorRevenue.Equal(expectedRevenue))

	// carol deposited 4 + 200 + 300 = 504, won item 1 at 300 → 204 back.
	check.True(t, acct.Withdrawn.Equal(amount(3 + 1 + 204)))
}

func TestBidReplacement_LiveBidWins(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))
	assert.NoError(t, f.reg.JoinAuction("carol", id, f.entrance))

	f.startBidding(t)
	// bob lowers his bid; only the replacement counts at settlement.
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(500)))
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(100)))
	assert.NoError(t, f.reg.PlaceBid("carol", id, 0, amount(200)))
	f.endBidding(t)

	settlement, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)
	check.Equal(t, "carol", settlement.Items[0].Winner)
	check.True(t, settlement.Items[0].ClearingPrice.Equal(amount(100)))

	// bob gets his whole 600 deposit back.
	got, err := f.reg.WithdrawLeftovers("bob", id)
	assert.NoError(t, err)
	check.True(t, got.Equal(amount(600)))
}

func TestEvents_EmittedPerMutation(t *testing.T) {
	f := newFixture(t)
	id := f.createAuction(t, "alice")
	assert.NoError(t, f.reg.AddItem("alice", id, "BMW Z4"))
	assert.NoError(t, f.reg.AddItem("alice", id, "Honda S2000"))
	assert.NoError(t, f.reg.RemoveItem("alice", id, 1))
	assert.NoError(t, f.reg.JoinAuction("bob", id, f.entrance))

	f.startBidding(t)
	assert.NoError(t, f.reg.PlaceBid("bob", id, 0, amount(1000)))
	f.endBidding(t)
	_, err := f.reg.ConcludeAuction("alice", id)
	assert.NoError(t, err)
	_, err = f.reg.WithdrawLeftovers("bob", id)
	assert.NoError(t, err)

	created := f.recorder.OfType(events.TypeAuctionCreated)
	assert.Equal(t, 1, len(created))
	check.Equal(t, "alice", created[0].Creator)

	check.Equal(t, 2, len(f.recorder.OfType(events.TypeItemAdded)))

	removed := f.recorder.OfType(events.TypeItemRemoved)
	assert.Equal(t, 1, len(removed))
	check.Equal(t, "Honda S2000", removed[0].Description)

	joined := f.recorder.OfType(events.TypeParticipantJoined)
	assert.Equal(t, 1, len(joined))
	check.Equal(t, "bob", joined[0].Participant)

	bids := f.recorder.OfType(events.TypeBidPlaced)
	assert.Equal(t, 1, len(bids))
	check.Equal(t, 0, *bids[0].ItemID)
	check.True(t, bids[0].Amount.Equal(amount(1000)))

	concluded := f.recorder.OfType(events.TypeAuctionConcluded)
	assert.Equal(t, 1, len(concluded))
	check.True(t, concluded[0].Amount.Equal(amount(1000)))

	withdrawn := f.recorder.OfType(events.TypeLeftoverWithdrawn)
	assert.Equal(t, 1, len(withdrawn))
	check.Equal(t, "bob", withdrawn[0].Participant)

	// Failed operations emit nothing.
	before := len(f.recorder.Events())
	_, err = f.reg.WithdrawLeftovers("bob", id)
	check.True(t, errors.Is(err, registry.ErrAlreadyWithdrawn))
	check.Equal(t, before, len(f.recorder.Events()))
}

func TestGetAuction_UnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.reg.GetAuction(0)
	check.True(t, errors.Is(err, registry.ErrInvalidAuctionID))
	check.Equal(t, registry.KindNotFound, registry.KindOf(err))
}
