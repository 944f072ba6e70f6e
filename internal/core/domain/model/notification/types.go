package notification

import (
	"fmt"

	"hubflow/internal/pkg/errs"
)

// Role is the audience a notification is addressed to.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSeller     Role = "seller"
	RoleBuyer      Role = "buyer"
	RoleHubManager Role = "hubmanager"
)

// ParseRole accepts the four recipient roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer, RoleHubManager:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("recipient role", fmt.Errorf("%q is not a recipient role", string(r)))
	}
}

// Type is the template a notification was rendered from.
type Type string

const (
	TypeNewOrder                     Type = "new_order"
	TypeOrderArrivedSellerHub        Type = "order_arrived_seller_hub"
	TypeAdminApprovalRequired        Type = "admin_approval_required"
	TypeOrderApproved                Type = "order_approved"
	TypeOrderDispatchedToCustomerHub Type = "order_dispatched_to_customer_hub"
	TypeOrderDispatchedToHub         Type = "order_dispatched_to_hub"
	TypeOrderArrivedCustomerHub      Type = "order_arrived_customer_hub"
	TypeOrderArrivedAtHub            Type = "order_arrived_at_hub"
	TypeOrderReadyForPickup          Type = "order_ready_for_pickup"
	TypePickupCodeReissued           Type = "pickup_code_reissued"
	TypeOrderDelivered               Type = "order_delivered"
	TypeOrderCancelled               Type = "order_cancelled"
)

// ActionType tells the dashboard which button to render next to a notification.
type ActionType string

const (
	ActionNone               ActionType = "none"
	ActionApproveHubDelivery ActionType = "approve_hub_delivery"
	ActionPrepareForPickup   ActionType = "prepare_for_pickup"
	ActionMoveToHub          ActionType = "move_to_hub"
	ActionCollectWithOTP     ActionType = "collect_with_otp"
)
