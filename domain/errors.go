package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidAmount  = errors.New("Invalid amount")

	// ErrOwnerUnresolved means no source could determine token ownership.
	// Fatal to the request, not to the service.
	ErrOwnerUnresolved = errors.New("token ownership could not be resolved")
	// ErrSelfBid rejects an owner bidding on their own token
	ErrSelfBid = errors.New("owner cannot bid on own token")
	// ErrSelfTrade rejects settling a bid whose bidder is the resolved owner
	ErrSelfTrade = errors.New("bidder and owner are the same wallet")
	// ErrNotOwner rejects acceptance by anyone but the current real owner
	ErrNotOwner = errors.New("caller is not the current token owner")
	// ErrBidNotActive rejects stale or already-settled bids
	ErrBidNotActive = errors.New("bid is not active")

	// connectivity-class errors, candidates for the lenience policy
	ErrLedgerTimeout     = errors.New("ledger read timed out")
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrSettlementFailed means the ledger transaction reverted or failed
	// inclusion. Never silently retried.
	ErrSettlementFailed = errors.New("settlement transaction failed")
)

// DuplicateSaleError reports a settlement that already happened for the same
// token within the duplicate-sale window, with enough detail for client display.
type DuplicateSaleError struct {
	TxHash    TxHash
	SettledAt time.Time
}

func (e *DuplicateSaleError) Error() string {
	return fmt.Sprintf("token already settled at %s (tx %s)", e.SettledAt.UTC().Format(time.RFC3339), e.TxHash)
}

// IsConnectivityError reports whether err belongs to the connectivity class,
// i.e. the ledger could not be reached rather than gave a wrong answer.
func IsConnectivityError(err error) bool {
	return errors.Is(err, ErrLedgerTimeout) || errors.Is(err, ErrLedgerUnavailable)
}
