package order

import (
	"errors"
	"fmt"

	"hubflow/internal/core/domain/model/kernel"
)

// Transition names a state change. It also keys notification fanout rules.
type Transition string

const (
	TransitionCreate             Transition = "create"
	TransitionArriveAtSellerHub  Transition = "arrive_at_seller_hub"
	TransitionApproveAndDispatch Transition = "approve_and_dispatch"
	TransitionArriveAtBuyerHub   Transition = "arrive_at_buyer_hub"
	TransitionResendOTP          Transition = "resend_otp"
	TransitionVerifyAndDeliver   Transition = "verify_and_deliver"
	TransitionCancel             Transition = "cancel"
)

func (t Transition) String() string {
	return string(t)
}

// ErrInvalidTransition is the sentinel wrapped by every StateError.
var ErrInvalidTransition = errors.New("invalid order transition")

// StateError is returned when a transition is attempted from a status that does
// not permit it. It also covers the losing side of two concurrent approvals.
type StateError struct {
	OrderID   kernel.UUID
	Current   Status
	Attempted Transition
}

// NewStateError creates the error for attempting transition t on an order in current.
func NewStateError(orderID kernel.UUID, current Status, t Transition) *StateError {
	return &StateError{OrderID: orderID, Current: current, Attempted: t}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: order %s is %s, cannot %s", ErrInvalidTransition, e.OrderID, e.Current, e.Attempted)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidTransition
}
