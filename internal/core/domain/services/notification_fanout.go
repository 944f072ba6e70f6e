package services

import (
	"fmt"
	"time"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
)

// Recipients is everyone the fanout may address for one event. Hub managers are
// nil when the hub has no manager assigned.
type Recipients struct {
	AdminIDs         []string
	SellerHubManager *hub.Manager
	BuyerHubManager  *hub.Manager
}

// NotificationFanout turns an order event into notifications. Which roles hear
// about which transition is fixed by the rule table below; the pickup code is
// never written into a notification.
//
//	create               seller
//	arrive_at_seller_hub admins (approval action), seller hub manager
//	approve_and_dispatch admins, buyer hub manager
//	arrive_at_buyer_hub  admins, buyer hub manager (prepare action), buyer
//	resend_otp           buyer
//	verify_and_deliver   buyer, seller, buyer hub manager
//	cancel               buyer, seller; admins and seller hub manager when it was at the seller hub
type NotificationFanout struct {
	newID func() kernel.UUID
}

// NewNotificationFanout creates a fanout assigning random notification ids.
func NewNotificationFanout() NotificationFanout {
	return NotificationFanout{newID: kernel.NewUUID}
}

type draft struct {
	recipient notification.Recipient
	content   notification.Content
}

// Fanout builds the notifications for event. Duplicate recipients are collapsed.
func (f NotificationFanout) Fanout(event order.Event, recipients Recipients, now time.Time) ([]*notification.Notification, error) {
	drafts := f.rules(event, recipients)

	seen := make(map[notification.Recipient]struct{}, len(drafts))
	out := make([]*notification.Notification, 0, len(drafts))
	for _, d := range drafts {
		if d.recipient.ID == "" {
			continue
		}
		if _, dup := seen[d.recipient]; dup {
			continue
		}
		seen[d.recipient] = struct{}{}

		n, err := notification.NewNotification(
			f.newID(), d.recipient, event.OrderID, event.OrderNumber, event.Transition, d.content, now,
		)
		if err != nil {
			return nil, fmt.Errorf("build %s notification for %s: %w", event.Transition, d.recipient.Role, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (f NotificationFanout) rules(e order.Event, r Recipients) []draft {
	s := e.Snapshot
	num := e.OrderNumber
	var drafts []draft

	switch e.Transition {
	case order.TransitionCreate:
		drafts = append(drafts, to(notification.RoleSeller, s.SellerID, notification.Content{
			Type:           notification.TypeNewOrder,
			Title:          "New order received",
			Message:        fmt.Sprintf("Order %s with %d item(s) was placed. Take it to your district hub.", num, s.ItemCount),
			ActionRequired: true,
			ActionType:     notification.ActionMoveToHub,
		}))

	case order.TransitionArriveAtSellerHub:
		hubName, district := hubNames(s.SellerHub)
		drafts = append(drafts, toAdmins(r.AdminIDs, notification.Content{
			Type:           notification.TypeAdminApprovalRequired,
			Title:          "Approval required",
			Message:        fmt.Sprintf("Order %s arrived at %s (%s) and is waiting for dispatch approval.", num, hubName, district),
			ActionRequired: true,
			ActionType:     notification.ActionApproveHubDelivery,
			Metadata:       hubMeta(s.SellerHub),
		})...)
		drafts = append(drafts, toManager(r.SellerHubManager, notification.Content{
			Type:     notification.TypeOrderArrivedSellerHub,
			Title:    "Order received at hub",
			Message:  fmt.Sprintf("Order %s was received at %s. Hold it until an admin approves dispatch.", num, hubName),
			Metadata: hubMeta(s.SellerHub),
		}))

	case order.TransitionApproveAndDispatch:
		fromHub, _ := hubNames(s.SellerHub)
		toHub, toDistrict := hubNames(s.BuyerHub)
		drafts = append(drafts, toAdmins(r.AdminIDs, notification.Content{
			Type:     notification.TypeOrderDispatchedToCustomerHub,
			Title:    "Order dispatched",
			Message:  fmt.Sprintf("Order %s was dispatched from %s to %s (%s).", num, fromHub, toHub, toDistrict),
			Metadata: hubMeta(s.BuyerHub),
		})...)
		drafts = append(drafts, toManager(r.BuyerHubManager, notification.Content{
			Type:       notification.TypeOrderDispatchedToHub,
			Title:      "Incoming order",
			Message:    fmt.Sprintf("Order %s is on its way to %s from %s.", num, toHub, fromHub),
			ActionType: notification.ActionNone,
			Metadata:   hubMeta(s.BuyerHub),
		}))

	case order.TransitionArriveAtBuyerHub:
		hubName, district := hubNames(s.BuyerHub)
		drafts = append(drafts, toAdmins(r.AdminIDs, notification.Content{
			Type:     notification.TypeOrderArrivedCustomerHub,
			Title:    "Order at customer hub",
			Message:  fmt.Sprintf("Order %s arrived at %s (%s).", num, hubName, district),
			Metadata: hubMeta(s.BuyerHub),
		})...)
		drafts = append(drafts, toManager(r.BuyerHubManager, notification.Content{
			Type:           notification.TypeOrderArrivedAtHub,
			Title:          "Prepare for pickup",
			Message:        fmt.Sprintf("Order %s is at %s. Keep it ready for the customer to collect.", num, hubName),
			ActionRequired: true,
			ActionType:     notification.ActionPrepareForPickup,
			Metadata:       hubMeta(s.BuyerHub),
		}))
		drafts = append(drafts, to(notification.RoleBuyer, s.BuyerID, notification.Content{
			Type:           notification.TypeOrderReadyForPickup,
			Title:          "Ready for pickup",
			Message:        fmt.Sprintf("Order %s is ready at %s. Show the pickup code we emailed you.", num, hubName),
			ActionRequired: true,
			ActionType:     notification.ActionCollectWithOTP,
			Metadata:       pickupMeta(s),
		}))

	case order.TransitionResendOTP:
		hubName, _ := hubNames(s.BuyerHub)
		drafts = append(drafts, to(notification.RoleBuyer, s.BuyerID, notification.Content{
			Type:           notification.TypePickupCodeReissued,
			Title:          "New pickup code sent",
			Message:        fmt.Sprintf("A new pickup code for order %s was emailed to you. Earlier codes no longer work at %s.", num, hubName),
			ActionRequired: true,
			ActionType:     notification.ActionCollectWithOTP,
			Metadata:       pickupMeta(s),
		}))

	case order.TransitionVerifyAndDeliver:
		hubName, _ := hubNames(s.BuyerHub)
		delivered := notification.Content{
			Type:     notification.TypeOrderDelivered,
			Title:    "Order delivered",
			Message:  fmt.Sprintf("Order %s was collected at %s.", num, hubName),
			Metadata: hubMeta(s.BuyerHub),
		}
		drafts = append(drafts,
			to(notification.RoleBuyer, s.BuyerID, delivered),
			to(notification.RoleSeller, s.SellerID, delivered),
			toManager(r.BuyerHubManager, delivered),
		)

	case order.TransitionCancel:
		cancelled := notification.Content{
			Type:     notification.TypeOrderCancelled,
			Title:    "Order cancelled",
			Message:  cancelMessage(num, s.CancelReason),
			Metadata: map[string]any{"previousStatus": s.PreviousStatus.String()},
		}
		drafts = append(drafts,
			to(notification.RoleBuyer, s.BuyerID, cancelled),
			to(notification.RoleSeller, s.SellerID, cancelled),
		)
		if s.PreviousStatus == order.AtSellerHub {
			drafts = append(drafts, toAdmins(r.AdminIDs, cancelled)...)
			drafts = append(drafts, toManager(r.SellerHubManager, cancelled))
		}
	}

	return drafts
}

func to(role notification.Role, id string, c notification.Content) draft {
	return draft{recipient: notification.Recipient{ID: id, Role: role}, content: c}
}

func toAdmins(ids []string, c notification.Content) []draft {
	out := make([]draft, 0, len(ids))
	for _, id := range ids {
		out = append(out, to(notification.RoleAdmin, id, c))
	}
	return out
}

func toManager(m *hub.Manager, c notification.Content) draft {
	if m == nil {
		return draft{}
	}
	return to(notification.RoleHubManager, m.ID, c)
}

func hubNames(ref *order.HubRef) (string, kernel.District) {
	if ref == nil {
		return "the hub", ""
	}
	return ref.Name, ref.District
}

func hubMeta(ref *order.HubRef) map[string]any {
	if ref == nil {
		return nil
	}
	return map[string]any{
		"hubId":            ref.ID.String(),
		"hubName":          ref.Name,
		"district":         ref.District.String(),
		"districtFallback": ref.Fallback,
	}
}

func pickupMeta(s order.EventSnapshot) map[string]any {
	meta := hubMeta(s.BuyerHub)
	if meta == nil {
		meta = map[string]any{}
	}
	if s.OTPExpiresAt != nil {
		meta["otpExpiresAt"] = s.OTPExpiresAt.UTC().Format(time.RFC3339)
	}
	return meta
}

func cancelMessage(num, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Order %s was cancelled.", num)
	}
	return fmt.Sprintf("Order %s was cancelled: %s", num, reason)
}
