package order

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNotOrderBuyer is returned when a buyer acts on someone else's order.
	ErrNotOrderBuyer = errors.New("user is not the buyer of this order")

	orderNumberPattern = regexp.MustCompile(`^ORD[0-9]+$`)
)

// Buyer is the customer the order ships to.
type Buyer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// LineItem is one product line. UnitPrice is in paise.
type LineItem struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice int64
}

// Subtotal is Quantity × UnitPrice.
func (l LineItem) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Totals are in paise. Final is Items + Shipping.
type Totals struct {
	Items    int64
	Shipping int64
	Final    int64
}

// Order is the aggregate root of the fulfillment workflow. Every state change
// goes through a method that checks the current status, mutates the aggregate
// and records an Event; a method that returns an error leaves the order untouched.
//
// Order follows these invariants:
//   - valid id, ORD-prefixed order number, buyer id, seller id and at least one line item
//   - buyer shipping address and seller address are captured at creation and never change
//   - statuses at or after AtSellerHub carry a seller hub; Shipped and later carry a buyer hub
//   - OutForDelivery and Delivered carry an OTP; Delivered carries a used OTP
//   - version is the optimistic concurrency token checked by the repository
type Order struct {
	id              kernel.UUID
	number          string
	buyer           Buyer
	shippingAddress kernel.Address
	sellerID        string
	sellerAddress   kernel.Address
	items           []LineItem
	totals          Totals
	status          Status
	tracking        HubTracking
	otp             *OTP
	cancelReason    string
	version         int
	createdAt       time.Time
	updatedAt       time.Time

	events []Event

	isConstructed bool
}

// NewOrder creates an order in Created status and records the create event.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD1718000000123",
//	    order.Buyer{ID: "buyer-1", Name: "Asha", Email: "asha@example.com"},
//	    shippingAddress, "seller-9", sellerAddress,
//	    []order.LineItem{{ProductID: "p-1", Title: "Coir mat", Quantity: 2, UnitPrice: 45000}},
//	    5000, time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	buyer Buyer,
	shippingAddress kernel.Address,
	sellerID string,
	sellerAddress kernel.Address,
	items []LineItem,
	shippingFee int64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
		tracking:      HubTracking{CurrentLocation: AtSeller},
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setBuyer(buyer),
		o.setShippingAddress(shippingAddress),
		o.setSellerID(sellerID),
		o.setSellerAddress(sellerAddress),
		o.setItems(items, shippingFee),
	); err != nil {
		return nil, err
	}

	o.raise(TransitionCreate, buyer.ID, Unknown, now)
	return o, nil
}

// State is the full persisted form of an order, used by RestoreOrder.
type State struct {
	ID              kernel.UUID
	Number          string
	Buyer           Buyer
	ShippingAddress kernel.Address
	SellerID        string
	SellerAddress   kernel.Address
	Items           []LineItem
	Totals          Totals
	Status          Status
	Tracking        HubTracking
	OTP             *OTP
	CancelReason    string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds an order from storage and checks that its status is
// consistent with its hub tracking and OTP record.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		totals:        s.Totals,
		tracking:      s.Tracking.clone(),
		cancelReason:  s.CancelReason,
		version:       s.Version,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}
	if s.OTP != nil {
		otp := *s.OTP
		o.otp = &otp
	}

	var errVersion error
	if s.Version < 1 {
		errVersion = errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is not positive", s.Version))
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setBuyer(s.Buyer),
		o.setShippingAddress(s.ShippingAddress),
		o.setSellerID(s.SellerID),
		o.setSellerAddress(s.SellerAddress),
		o.setRestoredItems(s.Items),
		o.setStatus(s.Status),
		errVersion,
	); err != nil {
		return nil, err
	}

	if err := o.validateConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) Number() string                  { return o.number }
func (o *Order) Buyer() Buyer                    { return o.buyer }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) SellerID() string                { return o.sellerID }
func (o *Order) SellerAddress() kernel.Address   { return o.sellerAddress }
func (o *Order) Totals() Totals                  { return o.totals }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) CancelReason() string            { return o.cancelReason }
func (o *Order) Version() int                    { return o.version }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Tracking returns a deep copy of the hub tracking.
func (o *Order) Tracking() HubTracking {
	return o.tracking.clone()
}

// OTP returns a copy of the current OTP record, or nil before arrival at the buyer hub.
func (o *Order) OTP() *OTP {
	if o.otp == nil {
		return nil
	}
	v := *o.otp
	return &v
}

// IsAwaitingApproval reports whether the order sits at the seller hub without admin approval.
func (o *Order) IsAwaitingApproval() bool {
	return o.status == AtSellerHub && !o.tracking.AdminApproved
}

// ArriveAtSellerHub records receipt at the seller's district hub.
func (o *Order) ArriveAtSellerHub(sellerHub HubRef, actor string, now time.Time) error {
	next, err := o.guardTransition(TransitionArriveAtSellerHub)
	if err != nil {
		return err
	}
	if o.tracking.SellerHub != nil {
		return NewStateError(o.id, o.status, TransitionArriveAtSellerHub)
	}
	if err = validateHubRef(sellerHub, "seller hub"); err != nil {
		return err
	}

	prev := o.status
	o.tracking.SellerHub = &sellerHub
	o.tracking.ArrivedAtSellerHubAt = &now
	o.tracking.CurrentLocation = AtSellerHubLocation
	o.status = next
	o.updatedAt = now
	o.raise(TransitionArriveAtSellerHub, actor, prev, now)
	return nil
}

// ApproveAndDispatch records admin approval and assigns the buyer hub.
// A second approval fails with a StateError; it is never a silent no-op.
func (o *Order) ApproveAndDispatch(approverID string, buyerHub HubRef, now time.Time) error {
	next, err := o.guardTransition(TransitionApproveAndDispatch)
	if err != nil {
		return err
	}
	approverID = strings.TrimSpace(approverID)
	if approverID == "" {
		return errs.NewValueIsRequiredError("approver id")
	}
	if err = validateHubRef(buyerHub, "buyer hub"); err != nil {
		return err
	}

	prev := o.status
	o.tracking.AdminApproved = true
	o.tracking.ApprovedAt = &now
	o.tracking.ApprovedBy = approverID
	o.tracking.BuyerHub = &buyerHub
	o.tracking.CurrentLocation = InTransitToBuyerHub
	o.status = next
	o.updatedAt = now
	o.raise(TransitionApproveAndDispatch, approverID, prev, now)
	return nil
}

// ArriveAtBuyerHub records receipt at the buyer hub and installs the pickup code.
func (o *Order) ArriveAtBuyerHub(otp OTP, actor string, now time.Time) error {
	next, err := o.guardTransition(TransitionArriveAtBuyerHub)
	if err != nil {
		return err
	}
	if err = validateCode(otp.code); err != nil {
		return err
	}

	prev := o.status
	o.otp = &otp
	o.tracking.ArrivedAtBuyerHubAt = &now
	o.tracking.CurrentLocation = AtBuyerHubLocation
	o.status = next
	o.updatedAt = now
	o.raise(TransitionArriveAtBuyerHub, actor, prev, now)
	return nil
}

// ReissueOTP replaces the live code. The previous code stops matching immediately.
func (o *Order) ReissueOTP(otp OTP, actor string, now time.Time) error {
	if _, err := o.guardTransition(TransitionResendOTP); err != nil {
		return err
	}
	if o.otp != nil && o.otp.used {
		return newOtpError(o.id, OtpAlreadyUsed, o.status)
	}
	if err := validateCode(otp.code); err != nil {
		return err
	}

	o.otp = &otp
	o.updatedAt = now
	o.raise(TransitionResendOTP, actor, o.status, now)
	return nil
}

// VerifyAndDeliver checks candidate against the live OTP and, on success, marks
// the code used and the order delivered. Checks run in this order:
// used code, status, missing record, expiry, match. Any failure returns an
// *OtpError and leaves the order unchanged.
func (o *Order) VerifyAndDeliver(candidate, actor string, now time.Time) error {
	if o.otp != nil && o.otp.used {
		return newOtpError(o.id, OtpAlreadyUsed, o.status)
	}
	next, ok := o.status.next(TransitionVerifyAndDeliver)
	if !ok || o.otp == nil {
		return newOtpError(o.id, WrongState, o.status)
	}
	if o.otp.IsExpired(now) {
		return newOtpError(o.id, OtpExpired, o.status)
	}
	if !o.otp.Matches(strings.TrimSpace(candidate)) {
		return newOtpError(o.id, OtpMismatch, o.status)
	}

	prev := o.status
	used := o.otp.markUsed(now)
	o.otp = &used
	o.tracking.DeliveredAt = &now
	o.tracking.CurrentLocation = DeliveredLocation
	o.status = next
	o.updatedAt = now
	o.raise(TransitionVerifyAndDeliver, actor, prev, now)
	return nil
}

// Cancel ends the order before dispatch. It returns the seller hub whose slot
// must be released, or nil when the parcel never reached a hub.
func (o *Order) Cancel(actor, reason string, now time.Time) (*HubRef, error) {
	next, err := o.guardTransition(TransitionCancel)
	if err != nil {
		return nil, err
	}

	prev := o.status
	released := cloneRef(o.tracking.SellerHub)
	o.cancelReason = strings.TrimSpace(reason)
	o.tracking.CurrentLocation = CancelledLocation
	o.status = next
	o.updatedAt = now
	o.raise(TransitionCancel, actor, prev, now)
	return released, nil
}

// Events returns the events raised since the order was loaded or created.
func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

// ClearEvents drops raised events once they are persisted to the outbox.
func (o *Order) ClearEvents() {
	o.events = nil
}

// BumpVersion advances the version after the repository's optimistic update succeeded.
func (o *Order) BumpVersion() {
	o.version++
}

func (o *Order) guardTransition(t Transition) (Status, error) {
	next, ok := o.status.next(t)
	if !ok {
		return Unknown, NewStateError(o.id, o.status, t)
	}
	return next, nil
}

func (o *Order) raise(t Transition, actor string, prev Status, now time.Time) {
	snapshot := EventSnapshot{
		PreviousStatus: prev,
		Status:         o.status,
		BuyerID:        o.buyer.ID,
		BuyerName:      o.buyer.Name,
		BuyerEmail:     o.buyer.Email,
		SellerID:       o.sellerID,
		SellerHub:      cloneRef(o.tracking.SellerHub),
		BuyerHub:       cloneRef(o.tracking.BuyerHub),
		FinalAmount:    o.totals.Final,
		ItemCount:      len(o.items),
		CancelReason:   o.cancelReason,
	}
	if t == TransitionArriveAtBuyerHub || t == TransitionResendOTP {
		snapshot.OTPCode = o.otp.code
		snapshot.OTPExpiresAt = copyTime(&o.otp.expiresAt)
	}

	o.events = append(o.events, Event{
		ID:          kernel.NewUUID(),
		Transition:  t,
		OrderID:     o.id,
		OrderNumber: o.number,
		Actor:       actor,
		OccurredAt:  now,
		Snapshot:    snapshot,
	})
}

func (o *Order) validateConsistency() error {
	t := o.tracking
	switch {
	case o.status.HasSellerHub() && t.SellerHub == nil:
		return errs.NewValueIsInvalidErrorWithCause("tracking", fmt.Errorf("%s order has no seller hub", o.status))
	case o.status.HasBuyerHub() && t.BuyerHub == nil:
		return errs.NewValueIsInvalidErrorWithCause("tracking", fmt.Errorf("%s order has no buyer hub", o.status))
	case o.status.HasBuyerHub() && !t.AdminApproved:
		return errs.NewValueIsInvalidErrorWithCause("tracking", fmt.Errorf("%s order was never approved", o.status))
	case o.status.HasOTP() && o.otp == nil:
		return errs.NewValueIsInvalidErrorWithCause("otp", fmt.Errorf("%s order has no otp", o.status))
	case o.status == Delivered && !o.otp.used:
		return errs.NewValueIsInvalidErrorWithCause("otp", errors.New("delivered order has an unused otp"))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if !orderNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q does not match ORD<digits>", number))
	}
	o.number = number
	return nil
}

func (o *Order) setBuyer(buyer Buyer) error {
	buyer.ID = strings.TrimSpace(buyer.ID)
	if buyer.ID == "" {
		return errs.NewValueIsRequiredError("buyer id")
	}
	o.buyer = buyer
	return nil
}

func (o *Order) setShippingAddress(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipping address", err)
	}
	o.shippingAddress = a
	return nil
}

func (o *Order) setSellerID(sellerID string) error {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return errs.NewValueIsRequiredError("seller id")
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setSellerAddress(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller address", err)
	}
	o.sellerAddress = a
	return nil
}

func (o *Order) setItems(items []LineItem, shippingFee int64) error {
	if err := o.setRestoredItems(items); err != nil {
		return err
	}
	if shippingFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipping fee", fmt.Errorf("%d is negative", shippingFee))
	}

	var sum int64
	for _, item := range o.items {
		sum += item.Subtotal()
	}
	o.totals = Totals{Items: sum, Shipping: shippingFee, Final: sum + shippingFee}
	return nil
}

func (o *Order) setRestoredItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("line item %d product id", i))
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		if item.UnitPrice < 0 {
			return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%d is negative", item.UnitPrice))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func validateHubRef(ref HubRef, name string) error {
	if err := ref.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	if err := ref.District.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}
