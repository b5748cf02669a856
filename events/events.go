// Package events defines the notifications the auction engine emits and the
// publishers that deliver them. Delivery is at-least-once and never rolls
// back engine state: events are emitted only after the mutation they
// describe has committed.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies the kind of notification.
type Type string

const (
	TypeAuctionCreated    Type = "auction_created"
	TypeItemAdded         Type = "item_added"
	TypeItemRemoved       Type = "item_removed"
	TypeParticipantJoined Type = "participant_joined"
	TypeBidPlaced         Type = "bid_placed"
	TypeAuctionConcluded  Type = "auction_concluded"
	TypeLeftoverWithdrawn Type = "leftover_withdrawn"
)

// Event is a single observable notification. Fields beyond the header are
// populated per type; unused fields are omitted from the JSON encoding.
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	AuctionID uint64    `json:"auction_id"`
	Timestamp time.Time `json:"timestamp"`

	Creator     string           `json:"creator,omitempty"`
	StartsAt    *time.Time       `json:"starts_at,omitempty"`
	EndsAt      *time.Time       `json:"ends_at,omitempty"`
	Description string           `json:"description,omitempty"`
	Participant string           `json:"participant,omitempty"`
	ItemID      *int             `json:"item_id,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

func newEvent(t Type, auctionID uint64) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      t,
		AuctionID: auctionID,
		Timestamp: time.Now().UTC(),
	}
}

// AuctionCreated reports a newly listed auction.
func AuctionCreated(auctionID uint64, creator string, startsAt, endsAt time.Time) Event {
	ev := newEvent(TypeAuctionCreated, auctionID)
	ev.Creator = creator
	ev.StartsAt = &startsAt
	ev.EndsAt = &endsAt
	return ev
}

// ItemAdded reports an item added to an auction's catalog.
func ItemAdded(auctionID uint64, description string) Event {
	ev := newEvent(TypeItemAdded, auctionID)
	ev.Description = description
	return ev
}

// ItemRemoved reports an item removed from an auction's catalog.
func ItemRemoved(auctionID uint64, description string) Event {
	ev := newEvent(TypeItemRemoved, auctionID)
	ev.Description = description
	return ev
}

// ParticipantJoined reports a participant paying the entrance fee.
func ParticipantJoined(auctionID uint64, participant string) Event {
	ev := newEvent(TypeParticipantJoined, auctionID)
	ev.Participant = participant
	return ev
}

// BidPlaced reports an accepted bid.
func BidPlaced(auctionID uint64, participant string, itemID int, amount decimal.Decimal) Event {
	ev := newEvent(TypeBidPlaced, auctionID)
	ev.Participant = participant
	ev.ItemID = &itemID
	ev.Amount = &amount
	return ev
}

// AuctionConcluded reports a settled auction and its total clearing revenue.
func AuctionConcluded(auctionID uint64, revenue decimal.Decimal) Event {
	ev := newEvent(TypeAuctionConcluded, auctionID)
	ev.Amount = &revenue
	return ev
}

// LeftoverWithdrawn reports a participant claiming their leftover balance.
func LeftoverWithdrawn(auctionID uint64, participant string, amount decimal.Decimal) Event {
	ev := newEvent(TypeLeftoverWithdrawn, auctionID)
	ev.Participant = participant
	ev.Amount = &amount
	return ev
}
