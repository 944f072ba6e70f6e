// Package hubrepo persists the hub directory. Load counters are never written
// from the aggregate; they move only through the atomic statements in the repository.
package hubrepo

import (
	"time"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ActiveDistrictIndex is the partial unique index that keeps one active hub per district.
const ActiveDistrictIndex = "ux_hubs_active_district"

// HubDTO is the hubs table.
type HubDTO struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code                 string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name                 string         `gorm:"type:varchar(255);not null"`
	District             string         `gorm:"type:varchar(32);not null;index"`
	Address              AddressDTO     `gorm:"embedded;embeddedPrefix:address_"`
	Latitude             float64        `gorm:"not null"`
	Longitude            float64        `gorm:"not null"`
	ContactPhone         string         `gorm:"type:varchar(32)"`
	ContactEmail         string         `gorm:"type:varchar(255)"`
	ManagerID            *string        `gorm:"type:varchar(64);index"`
	ManagerName          string         `gorm:"type:varchar(255)"`
	MaxOrders            int            `gorm:"not null;default:1000"`
	CurrentOrders        int            `gorm:"not null;default:0;check:current_orders >= 0"`
	TotalOrdersProcessed int            `gorm:"not null;default:0"`
	OrdersDispatched     int            `gorm:"not null;default:0"`
	OpenTime             string         `gorm:"type:varchar(5);not null"`
	CloseTime            string         `gorm:"type:varchar(5);not null"`
	WorkingDays          pq.StringArray `gorm:"type:text[]"`
	Status               string         `gorm:"type:varchar(16);not null;index"`
	CreatedAt            time.Time      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt            time.Time      `gorm:"not null;autoUpdateTime:false"`
}

func (HubDTO) TableName() string {
	return "hubs"
}

// AddressDTO is the hub's street address.
type AddressDTO struct {
	Street   string `gorm:"type:varchar(255)"`
	City     string `gorm:"type:varchar(128)"`
	State    string `gorm:"type:varchar(128)"`
	Pincode  string `gorm:"type:varchar(16)"`
	Landmark string `gorm:"type:varchar(255)"`
}

func fromDomain(h *hub.Hub) HubDTO {
	a := h.Address()
	dto := HubDTO{
		ID:       h.ID().Bytes(),
		Code:     h.Code(),
		Name:     h.Name(),
		District: h.District().String(),
		Address: AddressDTO{
			Street:   a.Street(),
			City:     a.City(),
			State:    a.State(),
			Pincode:  a.Pincode(),
			Landmark: a.Landmark(),
		},
		Latitude:             h.Location().Latitude(),
		Longitude:            h.Location().Longitude(),
		ContactPhone:         h.Contact().Phone,
		ContactEmail:         h.Contact().Email,
		MaxOrders:            h.Capacity().MaxOrders,
		CurrentOrders:        h.Capacity().CurrentOrders,
		TotalOrdersProcessed: h.Stats().TotalOrdersProcessed,
		OrdersDispatched:     h.Stats().OrdersDispatched,
		OpenTime:             h.OperatingHours().Open(),
		CloseTime:            h.OperatingHours().Close(),
		WorkingDays:          h.OperatingHours().WorkingDays(),
		Status:               h.Status().String(),
		CreatedAt:            h.CreatedAt(),
		UpdatedAt:            h.UpdatedAt(),
	}
	if m := h.Manager(); m != nil {
		id := m.ID
		dto.ManagerID = &id
		dto.ManagerName = m.Name
	}
	return dto
}

// ToDomain rebuilds a hub from its row. Query handlers that read hub rows reuse it.
func ToDomain(dto HubDTO) (*hub.Hub, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	district, err := kernel.ParseDistrict(dto.District)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.State,
		dto.Address.Pincode, dto.Address.Landmark)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	hours, err := hub.NewOperatingHours(dto.OpenTime, dto.CloseTime, dto.WorkingDays)
	if err != nil {
		return nil, err
	}
	status, err := hub.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var manager *hub.Manager
	if dto.ManagerID != nil && *dto.ManagerID != "" {
		manager = &hub.Manager{ID: *dto.ManagerID, Name: dto.ManagerName}
	}

	return hub.RestoreHub(
		id, dto.Code, dto.Name, district, address, location,
		hub.Contact{Phone: dto.ContactPhone, Email: dto.ContactEmail},
		manager,
		hub.Capacity{MaxOrders: dto.MaxOrders, CurrentOrders: dto.CurrentOrders},
		hub.Stats{TotalOrdersProcessed: dto.TotalOrdersProcessed, OrdersDispatched: dto.OrdersDispatched},
		hours, status, dto.CreatedAt, dto.UpdatedAt,
	)
}
