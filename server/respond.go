package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cloudx-io/vickrey/auctionapi"
	"github.com/cloudx-io/vickrey/registry"
)

// callerID extracts the caller identity from the request, writing a 400
// response when the header is missing.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := r.Header.Get(CallerHeader)
	if caller == "" {
		respondError(w, http.StatusBadRequest, "missing "+CallerHeader+" header")
		return "", false
	}
	return caller, true
}

// auctionID parses the {id} path variable. A non-numeric id cannot name any
// auction, so it maps to the same not-found response as an unknown one.
func auctionID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, registry.ErrInvalidAuctionID.Error())
		return 0, false
	}
	return id, true
}

// itemIndex parses the {index} path variable.
func itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, registry.ErrItemIndexOutOfRange.Error())
		return 0, false
	}
	return index, true
}

// respondRegistryError maps the registry's error taxonomy to HTTP status
// codes.
func respondRegistryError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch registry.KindOf(err) {
	case registry.KindNotFound:
		status = http.StatusNotFound
	case registry.KindUnauthorized:
		status = http.StatusForbidden
	case registry.KindPhaseViolation:
		status = http.StatusConflict
	case registry.KindPaymentMismatch:
		status = http.StatusPaymentRequired
	case registry.KindDuplicateAction:
		status = http.StatusConflict
	case registry.KindValidation:
		status = http.StatusBadRequest
	}
	respondError(w, status, err.Error())
}

func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, auctionapi.ErrorResponse{Error: message})
}

// loggingMiddleware logs every request with its duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("INFO: %s %s (%s)", r.Method, r.RequestURI, time.Since(start))
	})
}
