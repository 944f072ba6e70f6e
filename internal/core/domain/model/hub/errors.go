package hub

import (
	"errors"
	"fmt"

	"hubflow/internal/core/domain/model/kernel"
)

// Party says whose address a district was resolved from.
type Party string

const (
	SellerParty Party = "seller"
	BuyerParty  Party = "buyer"
)

var (
	// ErrNoActiveHub is the sentinel wrapped by every ResolutionError.
	ErrNoActiveHub = errors.New("no active hub for district")

	// ErrDistrictAlreadyServed is returned when activating a second hub in a district.
	ErrDistrictAlreadyServed = errors.New("district already has an active hub")

	// ErrNotHubManager is returned when a manager acts on an order held by another hub.
	ErrNotHubManager = errors.New("user does not manage this hub")
)

// ResolutionError is returned when no active hub serves a resolved district.
// The transition that needed the hub is aborted; nothing is mutated.
type ResolutionError struct {
	District kernel.District
	Party    Party
}

// NewResolutionError creates the error for party's resolved district.
func NewResolutionError(district kernel.District, party Party) *ResolutionError {
	return &ResolutionError{District: district, Party: party}
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s (resolved from %s address)", ErrNoActiveHub, e.District, e.Party)
}

func (e *ResolutionError) Unwrap() error {
	return ErrNoActiveHub
}
