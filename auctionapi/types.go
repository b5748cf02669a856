// Package auctionapi defines the JSON wire types of the auction service.
// Monetary amounts are decimal strings.
package auctionapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAuctionRequest lists a new auction. Fee must equal the listing fee
// exactly.
type CreateAuctionRequest struct {
	Name     string          `json:"name"`
	StartsAt time.Time       `json:"starts_at"`
	EndsAt   time.Time       `json:"ends_at"`
	Fee      decimal.Decimal `json:"fee"`
}

type CreateAuctionResponse struct {
	ID uint64 `json:"id"`
}

type AddItemRequest struct {
	Description string `json:"description"`
}

// JoinRequest pays the entrance fee. Fee must match exactly.
type JoinRequest struct {
	Fee decimal.Decimal `json:"fee"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type FeesResponse struct {
	ListingFee  decimal.Decimal `json:"listing_fee"`
	EntranceFee decimal.Decimal `json:"entrance_fee"`
}

// Item is the projection of one catalog item. Winner and clearing price are
// present only after conclusion.
type Item struct {
	Index         int              `json:"index"`
	Description   string           `json:"description"`
	Winner        string           `json:"winner,omitempty"`
	ClearingPrice *decimal.Decimal `json:"clearing_price,omitempty"`
}

type Auction struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Creator   string    `json:"creator"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Concluded bool      `json:"concluded"`
	Items     []Item    `json:"items"`
}

type ItemOutcome struct {
	Index         int              `json:"index"`
	Description   string           `json:"description"`
	Winner        string           `json:"winner,omitempty"`
	ClearingPrice *decimal.Decimal `json:"clearing_price,omitempty"`
}

// ConcludeResponse reports the settlement: the total clearing revenue and
// each item's outcome.
type ConcludeResponse struct {
	AuctionID uint64          `json:"auction_id"`
	Revenue   decimal.Decimal `json:"revenue"`
	Items     []ItemOutcome   `json:"items"`
}

type WithdrawResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// AccountingResponse exposes an auction's escrow totals. After conclusion,
// received == operator_revenue + withdrawn + outstanding.
type AccountingResponse struct {
	Received        decimal.Decimal `json:"received"`
	OperatorRevenue decimal.Decimal `json:"operator_revenue"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	Withdrawn       decimal.Decimal `json:"withdrawn"`
}

// SettlementItem is one item's archived outcome. Amounts are decimal
// strings as stored in the archive.
type SettlementItem struct {
	Index         int    `json:"index"`
	Description   string `json:"description"`
	Winner        string `json:"winner,omitempty"`
	ClearingPrice string `json:"clearing_price,omitempty"`
}

// SettlementRecord is the archived record of a concluded auction.
type SettlementRecord struct {
	AuctionID   uint64           `json:"auction_id"`
	Name        string           `json:"name"`
	Creator     string           `json:"creator"`
	ConcludedAt time.Time        `json:"concluded_at"`
	Revenue     string           `json:"revenue"`
	Items       []SettlementItem `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
