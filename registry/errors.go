package registry

import "errors"

// Kind classifies a rejection so transport layers can map it to a status
// code without matching on individual sentinel errors.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnauthorized
	KindPhaseViolation
	KindPaymentMismatch
	KindDuplicateAction
	KindValidation
)

// Error is a precondition-style rejection. Every operation either fully
// commits or fails with one of these; there is no partial state change.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidAuctionID = newErr(KindNotFound, "invalid auction id")
	ErrInvalidItemID    = newErr(KindNotFound, "invalid item id")

	ErrNotCreator     = newErr(KindUnauthorized, "caller is not the creator")
	ErrNotParticipant = newErr(KindUnauthorized, "caller is not a participant")

	ErrAuctionStarted    = newErr(KindPhaseViolation, "auction has already started")
	ErrAuctionEnded      = newErr(KindPhaseViolation, "auction has already ended")
	ErrAuctionNotStarted = newErr(KindPhaseViolation, "auction has not started yet")
	ErrAuctionNotEnded   = newErr(KindPhaseViolation, "auction has not ended yet")
	ErrNotConcluded      = newErr(KindPhaseViolation, "auction has not been concluded yet")

	ErrAlreadyJoined    = newErr(KindDuplicateAction, "already joined")
	ErrAlreadyConcluded = newErr(KindDuplicateAction, "auction has already been concluded")
	ErrAlreadyWithdrawn = newErr(KindDuplicateAction, "already withdrawn")

	ErrInsufficientFee         = newErr(KindPaymentMismatch, "insufficient auction fee")
	ErrInsufficientEntranceFee = newErr(KindPaymentMismatch, "insufficient participation fee")
	ErrInsufficientBidAmount   = newErr(KindPaymentMismatch, "insufficient bid amount")

	ErrInvalidStartTime    = newErr(KindValidation, "invalid start time")
	ErrInvalidEndTime      = newErr(KindValidation, "invalid end time")
	ErrNameTooShort        = newErr(KindValidation, "name is too short")
	ErrNameTooLong         = newErr(KindValidation, "name is too long")
	ErrItemIndexOutOfRange = newErr(KindValidation, "item index out of range")
)

// KindOf returns the classification of err, or KindUnknown if err did not
// originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
