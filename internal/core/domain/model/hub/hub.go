package hub

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
)

// ErrHubIsNotConstructed is returned when a Hub was not built by NewHub or RestoreHub.
var ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub constructor")

// Contact is how buyers and sellers reach a hub.
type Contact struct {
	Phone string
	Email string
}

// Manager is the hub manager account assigned to a hub.
type Manager struct {
	ID   string
	Name string
}

// Capacity holds the advisory order ceiling and the live order count.
type Capacity struct {
	MaxOrders     int
	CurrentOrders int
}

// Stats are lifetime counters maintained by the store.
type Stats struct {
	TotalOrdersProcessed int
	OrdersDispatched     int
}

// Hub is a district fulfillment centre. Orders are received here from sellers
// (seller hub) and handed to buyers here against an OTP (buyer hub).
//
// Hub follows these invariants:
//   - district is one of the fourteen Kerala districts
//   - code and name are non-empty
//   - maxOrders is positive; currentOrders and stats are never negative
//   - only status changes, manager assignment and contact edits go through the aggregate
type Hub struct {
	id             kernel.UUID
	code           string
	name           string
	district       kernel.District
	address        kernel.Address
	location       kernel.GeoLocation
	contact        Contact
	manager        *Manager
	capacity       Capacity
	stats          Stats
	operatingHours OperatingHours
	status         Status
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewHub creates a hub with zero load. Whether the district may take another
// active hub is checked by the caller against the directory.
func NewHub(
	id kernel.UUID,
	code, name string,
	district kernel.District,
	address kernel.Address,
	location kernel.GeoLocation,
	contact Contact,
	maxOrders int,
	hours OperatingHours,
	status Status,
	now time.Time,
) (*Hub, error) {
	h := &Hub{
		contact:        contact,
		operatingHours: hours,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		h.setID(id),
		h.setCode(code),
		h.setName(name),
		h.setDistrict(district),
		h.setAddress(address),
		h.setLocation(location),
		h.setMaxOrders(maxOrders),
		h.setStatus(status),
	); err != nil {
		return nil, err
	}

	return h, nil
}

// RestoreHub rebuilds a hub from storage, including its counters and manager.
func RestoreHub(
	id kernel.UUID,
	code, name string,
	district kernel.District,
	address kernel.Address,
	location kernel.GeoLocation,
	contact Contact,
	manager *Manager,
	capacity Capacity,
	stats Stats,
	hours OperatingHours,
	status Status,
	createdAt, updatedAt time.Time,
) (*Hub, error) {
	h, err := NewHub(id, code, name, district, address, location, contact, capacity.MaxOrders, hours, status, createdAt)
	if err != nil {
		return nil, err
	}
	if capacity.CurrentOrders < 0 || stats.TotalOrdersProcessed < 0 || stats.OrdersDispatched < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("hub counters", fmt.Errorf("negative counter on hub %s", code))
	}

	h.manager = manager
	h.capacity = capacity
	h.stats = stats
	h.updatedAt = updatedAt
	return h, nil
}

// Validate ensures the Hub was built through a constructor.
func (h *Hub) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHubIsNotConstructed
	}
	return nil
}

func (h *Hub) ID() kernel.UUID                { return h.id }
func (h *Hub) Code() string                   { return h.code }
func (h *Hub) Name() string                   { return h.name }
func (h *Hub) District() kernel.District      { return h.district }
func (h *Hub) Address() kernel.Address        { return h.address }
func (h *Hub) Location() kernel.GeoLocation   { return h.location }
func (h *Hub) Contact() Contact               { return h.contact }
func (h *Hub) Capacity() Capacity             { return h.capacity }
func (h *Hub) Stats() Stats                   { return h.stats }
func (h *Hub) OperatingHours() OperatingHours { return h.operatingHours }
func (h *Hub) Status() Status                 { return h.status }
func (h *Hub) CreatedAt() time.Time           { return h.createdAt }
func (h *Hub) UpdatedAt() time.Time           { return h.updatedAt }

// Manager returns a copy of the assigned manager, or nil.
func (h *Hub) Manager() *Manager {
	if h.manager == nil {
		return nil
	}
	m := *h.manager
	return &m
}

// IsActive reports whether the hub currently receives orders.
func (h *Hub) IsActive() bool {
	return h.status == Active
}

// IsManagedBy reports whether userID is the hub's assigned manager.
func (h *Hub) IsManagedBy(userID string) bool {
	return h.manager != nil && userID != "" && h.manager.ID == userID
}

// Utilization is currentOrders as a percentage of maxOrders.
func (h *Hub) Utilization() float64 {
	if h.capacity.MaxOrders <= 0 {
		return 0
	}
	return float64(h.capacity.CurrentOrders) / float64(h.capacity.MaxOrders) * 100
}

// IsAvailable is a display hint for operators. Routing ignores it.
func (h *Hub) IsAvailable() bool {
	return h.IsActive() && h.capacity.CurrentOrders < h.capacity.MaxOrders
}

// ChangeStatus moves the hub to status. Re-applying the current status is a no-op.
func (h *Hub) ChangeStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if h.status == status {
		return nil
	}
	h.status = status
	h.updatedAt = now
	return nil
}

// AssignManager makes the given user the hub's manager, replacing any previous one.
func (h *Hub) AssignManager(managerID, managerName string, now time.Time) error {
	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return errs.NewValueIsRequiredError("manager id")
	}
	h.manager = &Manager{ID: managerID, Name: strings.TrimSpace(managerName)}
	h.updatedAt = now
	return nil
}

// UpdateContact replaces the hub's phone and email.
func (h *Hub) UpdateContact(contact Contact, now time.Time) {
	h.contact = contact
	h.updatedAt = now
}

func (h *Hub) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Hub) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("hub code")
	}
	h.code = strings.ToUpper(code)
	return nil
}

func (h *Hub) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("hub name")
	}
	h.name = name
	return nil
}

func (h *Hub) setDistrict(district kernel.District) error {
	if err := district.Validate(); err != nil {
		return err
	}
	h.district = district
	return nil
}

func (h *Hub) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	h.address = address
	return nil
}

func (h *Hub) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	h.location = location
	return nil
}

func (h *Hub) setMaxOrders(maxOrders int) error {
	if maxOrders <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("max orders", fmt.Errorf("%d is not greater than 0", maxOrders))
	}
	h.capacity.MaxOrders = maxOrders
	return nil
}

func (h *Hub) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	h.status = status
	return nil
}
