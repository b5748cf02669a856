// Package server exposes every auction boundary operation over HTTP.
// Caller identity arrives in the X-Caller header; verifying that identity
// is the transport's job, the server only requires it to be present.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/cloudx-io/vickrey/archive"
	"github.com/cloudx-io/vickrey/auctionapi"
	"github.com/cloudx-io/vickrey/registry"
)

// CallerHeader carries the caller identity on every mutating request.
const CallerHeader = "X-Caller"

// Server routes HTTP requests to the registry and archives settlements.
type Server struct {
	reg *registry.Registry
	arc *archive.Store // nil disables archival and the settlement endpoint
}

// New creates a server over the given registry. arc may be nil.
func New(reg *registry.Registry, arc *archive.Store) *Server {
	return &Server{reg: reg, arc: arc}
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/fees", s.handleFees).Methods(http.MethodGet)
	api.HandleFunc("/auctions", s.handleCreateAuction).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}", s.handleGetAuction).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{id}/items", s.handleAddItem).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}/items/{index}", s.handleRemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/auctions/{id}/participants", s.handleJoin).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}/items/{index}/bids", s.handlePlaceBid).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}/conclusion", s.handleConclude).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}/withdrawals", s.handleWithdraw).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}/accounting", s.handleAccounting).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{id}/settlement", s.handleSettlement).Methods(http.MethodGet)

	router.Use(loggingMiddleware)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleFees(w http.ResponseWriter, r *http.Request) {
	listing, entrance := s.reg.Fees()
	respondJSON(w, http.StatusOK, auctionapi.FeesResponse{
		ListingFee:  listing,
		EntranceFee: entrance,
	})
}

func (s *Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req auctionapi.CreateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.reg.CreateAuction(caller, req.Name, req.StartsAt, req.EndsAt, req.Fee)
	if err != nil {
		respondRegistryError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, auctionapi.CreateAuctionResponse{ID: id})
}

func (s *Server) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	view, err := s.reg.GetAuction(id)
	if err != nil {
		respondRegistryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auctionFromView(view))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	var req auctionapi.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.reg.AddItem(caller, id, req.Description); err != nil {
		respondRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := auctionID(w, r)
	if !ok {
		return
	}
	index, ok := itemIndex(w, r)
	if !ok {
		return
	}

	if err := s.reg.RemoveItem(caller, id, index); err != nil {
		respondRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	var req auctionapi.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.reg.JoinAuction(caller, id, req.Fee); err != nil {
		respondRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := auctionID(w, r)
	if !ok {
		return
	}
	index, ok := itemIndex(w, r)
	if !ok {
		return
	}

	var req auctionapi.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.reg.PlaceBid(caller, id, index, req.Amount); err != nil {
		respondRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConclude(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	settlement, err := s.reg.ConcludeAuction(caller, id)
	if err != nil {
		respondRegistryError(w, err)
		return
	}

	// The settlement is committed; an archival failure is logged, not
	// surfaced, because the caller's operation already succeeded.
	if s.arc != nil {
		if err := s.arc.Put(archive.NewRecord(settlement)); err != nil {
			log.Printf("ERROR: failed to archive settlement for auction %d: %v", id, err)
		}
	}

	resp := auctionapi.ConcludeResponse{
		AuctionID: settlement.AuctionID,
		Revenue:   settlement.Revenue,
		Items:     make([]auctionapi.ItemOutcome, 0, len(settlement.Items)),
	}
	for _, it := range settlement.Items {
		outcome := auctionapi.ItemOutcome{
			Index:       it.Index,
			Description: it.Description,
		}
		if it.HasWinner {
			price := it.ClearingPrice
			outcome.Winner = it.Winner
			outcome.ClearingPrice = &price
		}
		resp.Items = append(resp.Items, outcome)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	amount, err := s.reg.WithdrawLeftovers(caller, id)
	if err != nil {
		respondRegistryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auctionapi.WithdrawResponse{Amount: amount})
}

func (s *Server) handleAccounting(w http.ResponseWriter, r *http.Request) {
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	acct, err := s.reg.GetAccounting(id)
	if err != nil {
		respondRegistryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auctionapi.AccountingResponse{
		Received:        acct.Received,
		OperatorRevenue: acct.OperatorRevenue,
		Outstanding:     acct.Outstanding,
		Withdrawn:       acct.Withdrawn,
	})
}

func (s *Server) handleSettlement(w http.ResponseWriter, r *http.Request) {
	id, ok := auctionID(w, r)
	if !ok {
		return
	}

	if s.arc == nil {
		respondError(w, http.StatusNotFound, archive.ErrNotFound.Error())
		return
	}

	rec, err := s.arc.Get(id)
	if errors.Is(err, archive.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read archive")
		return
	}

	resp := auctionapi.SettlementRecord{
		AuctionID:   rec.AuctionID,
		Name:        rec.Name,
		Creator:     rec.Creator,
		ConcludedAt: rec.ConcludedAt,
		Revenue:     rec.Revenue,
		Items:       make([]auctionapi.SettlementItem, 0, len(rec.Items)),
	}
	for _, it := range rec.Items {
		resp.Items = append(resp.Items, auctionapi.SettlementItem{
			Index:         it.Index,
			Description:   it.Description,
			Winner:        it.Winner,
			ClearingPrice: it.ClearingPrice,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func auctionFromView(view *registry.AuctionView) auctionapi.Auction {
	out := auctionapi.Auction{
		ID:        view.ID,
		Name:      view.Name,
		Creator:   view.Creator,
		StartsAt:  view.StartsAt,
		EndsAt:    view.EndsAt,
		Concluded: view.Concluded,
		Items:     make([]auctionapi.Item, 0, len(view.Items)),
	}
	for _, it := range view.Items {
		item := auctionapi.Item{
			Index:       it.Index,
			Description: it.Description,
		}
		if it.HasWinner {
			price := it.ClearingPrice
			item.Winner = it.Winner
			item.ClearingPrice = &price
		}
		out.Items = append(out.Items, item)
	}
	return out
}
