package order

import (
	"fmt"

	"hubflow/internal/pkg/errs"
)

// Status is the position of an order in the fulfillment lifecycle.
//
//	Created ──> AtSellerHub ──> Shipped ──> OutForDelivery ──> Delivered
//	   │             │
//	   └─────────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Created is the state after checkout, before the parcel reaches a hub.
	Created

	// AtSellerHub means the parcel is at the seller's district hub awaiting admin approval.
	AtSellerHub

	// Shipped means an admin approved the order and it is travelling to the buyer hub.
	Shipped

	// OutForDelivery means the parcel is at the buyer hub and an OTP was issued.
	OutForDelivery

	// Delivered is terminal: the buyer collected the parcel with a valid OTP.
	Delivered

	// Cancelled is terminal and reachable only before dispatch.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:        "unknown",
	Created:        "created",
	AtSellerHub:    "at_seller_hub",
	Shipped:        "shipped",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// ParseStatus converts the persisted name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// HasSellerHub reports whether an order in s must have been received by a seller hub.
func (s Status) HasSellerHub() bool {
	return s == AtSellerHub || s == Shipped || s == OutForDelivery || s == Delivered
}

// HasBuyerHub reports whether an order in s must have a buyer hub assigned.
func (s Status) HasBuyerHub() bool {
	return s == Shipped || s == OutForDelivery || s == Delivered
}

// HasOTP reports whether an order in s must carry an OTP record.
func (s Status) HasOTP() bool {
	return s == OutForDelivery || s == Delivered
}

// next returns the status reached by t from s, or false when t is not allowed from s.
func (s Status) next(t Transition) (Status, bool) {
	switch t {
	case TransitionArriveAtSellerHub:
		return AtSellerHub, s == Created
	case TransitionApproveAndDispatch:
		return Shipped, s == AtSellerHub
	case TransitionArriveAtBuyerHub:
		return OutForDelivery, s == Shipped
	case TransitionResendOTP:
		return OutForDelivery, s == OutForDelivery
	case TransitionVerifyAndDeliver:
		return Delivered, s == OutForDelivery
	case TransitionCancel:
		return Cancelled, s == Created || s == AtSellerHub
	case TransitionCreate:
		return Created, false
	default:
		return Unknown, false
	}
}

// CanApply reports whether t is allowed from s.
func (s Status) CanApply(t Transition) bool {
	_, ok := s.next(t)
	return ok
}
