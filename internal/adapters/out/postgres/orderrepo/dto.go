// Package orderrepo persists the order aggregate. Hub tracking and the OTP
// record are flattened into the orders row; line items are a JSON column.
package orderrepo

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table.
type OrderDTO struct {
	ID              uuid.UUID                        `gorm:"type:uuid;primaryKey"`
	Number          string                           `gorm:"type:varchar(32);not null;uniqueIndex"`
	BuyerID         string                           `gorm:"type:varchar(64);not null;index"`
	BuyerName       string                           `gorm:"type:varchar(255)"`
	BuyerEmail      string                           `gorm:"type:varchar(255)"`
	BuyerPhone      string                           `gorm:"type:varchar(32)"`
	ShippingAddress AddressDTO                       `gorm:"embedded;embeddedPrefix:shipping_"`
	SellerID        string                           `gorm:"type:varchar(64);not null;index"`
	SellerAddress   AddressDTO                       `gorm:"embedded;embeddedPrefix:seller_"`
	Items           datatypes.JSONSlice[LineItemDTO] `gorm:"not null"`
	ItemsTotal      int64                            `gorm:"not null"`
	ShippingFee     int64                            `gorm:"not null"`
	FinalAmount     int64                            `gorm:"not null"`
	Status          string                           `gorm:"type:varchar(32);not null;index"`
	Tracking        TrackingDTO                      `gorm:"embedded"`
	OTP             OTPDTO                           `gorm:"embedded;embeddedPrefix:otp_"`
	CancelReason    string                           `gorm:"type:text"`
	Version         int                              `gorm:"not null;default:1"`
	CreatedAt       time.Time                        `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt       time.Time                        `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is an address snapshot stored with a column prefix.
type AddressDTO struct {
	Street   string `gorm:"type:varchar(255)"`
	City     string `gorm:"type:varchar(128)"`
	State    string `gorm:"type:varchar(128)"`
	Pincode  string `gorm:"type:varchar(16)"`
	Landmark string `gorm:"type:varchar(255)"`
}

// LineItemDTO is one element of the items JSON column.
type LineItemDTO struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// TrackingDTO holds the hub leg columns. The hub ids are indexed for the hub
// manager dashboard.
type TrackingDTO struct {
	SellerHubID            *uuid.UUID `gorm:"type:uuid;index"`
	SellerHubName          string     `gorm:"type:varchar(255)"`
	SellerHubDistrict      string     `gorm:"type:varchar(32)"`
	SellerDistrictFallback bool
	ArrivedAtSellerHubAt   *time.Time
	AdminApproved          bool
	ApprovedAt             *time.Time
	ApprovedBy             string     `gorm:"type:varchar(64)"`
	BuyerHubID             *uuid.UUID `gorm:"type:uuid;index"`
	BuyerHubName           string     `gorm:"type:varchar(255)"`
	BuyerHubDistrict       string     `gorm:"type:varchar(32)"`
	BuyerDistrictFallback  bool
	ArrivedAtBuyerHubAt    *time.Time
	DeliveredAt            *time.Time
	CurrentLocation        string `gorm:"type:varchar(32);not null"`
}

// OTPDTO is the pickup code record. Code is empty when no OTP was issued.
type OTPDTO struct {
	Code        string `gorm:"type:varchar(6)"`
	GeneratedAt *time.Time
	ExpiresAt   *time.Time
	Used        bool
	UsedAt      *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, LineItemDTO(it))
	}

	totals := o.Totals()
	buyer := o.Buyer()
	t := o.Tracking()

	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		Number:          o.Number(),
		BuyerID:         buyer.ID,
		BuyerName:       buyer.Name,
		BuyerEmail:      buyer.Email,
		BuyerPhone:      buyer.Phone,
		ShippingAddress: addressFromDomain(o.ShippingAddress()),
		SellerID:        o.SellerID(),
		SellerAddress:   addressFromDomain(o.SellerAddress()),
		Items:           items,
		ItemsTotal:      totals.Items,
		ShippingFee:     totals.Shipping,
		FinalAmount:     totals.Final,
		Status:          o.Status().String(),
		Tracking: TrackingDTO{
			ArrivedAtSellerHubAt: t.ArrivedAtSellerHubAt,
			AdminApproved:        t.AdminApproved,
			ApprovedAt:           t.ApprovedAt,
			ApprovedBy:           t.ApprovedBy,
			ArrivedAtBuyerHubAt:  t.ArrivedAtBuyerHubAt,
			DeliveredAt:          t.DeliveredAt,
			CurrentLocation:      string(t.CurrentLocation),
		},
		CancelReason: o.CancelReason(),
		Version:      o.Version(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}

	if ref := t.SellerHub; ref != nil {
		id := ref.ID.Bytes()
		dto.Tracking.SellerHubID = &id
		dto.Tracking.SellerHubName = ref.Name
		dto.Tracking.SellerHubDistrict = ref.District.String()
		dto.Tracking.SellerDistrictFallback = ref.Fallback
	}
	if ref := t.BuyerHub; ref != nil {
		id := ref.ID.Bytes()
		dto.Tracking.BuyerHubID = &id
		dto.Tracking.BuyerHubName = ref.Name
		dto.Tracking.BuyerHubDistrict = ref.District.String()
		dto.Tracking.BuyerDistrictFallback = ref.Fallback
	}
	if otp := o.OTP(); otp != nil {
		generated, expires := otp.GeneratedAt(), otp.ExpiresAt()
		dto.OTP = OTPDTO{
			Code:        otp.Code(),
			GeneratedAt: &generated,
			ExpiresAt:   &expires,
			Used:        otp.IsUsed(),
			UsedAt:      otp.UsedAt(),
		}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	shipping, err := dto.ShippingAddress.toDomain()
	if err != nil {
		return nil, err
	}
	seller, err := dto.SellerAddress.toDomain()
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, order.LineItem(it))
	}

	tracking := order.HubTracking{
		ArrivedAtSellerHubAt: dto.Tracking.ArrivedAtSellerHubAt,
		AdminApproved:        dto.Tracking.AdminApproved,
		ApprovedAt:           dto.Tracking.ApprovedAt,
		ApprovedBy:           dto.Tracking.ApprovedBy,
		ArrivedAtBuyerHubAt:  dto.Tracking.ArrivedAtBuyerHubAt,
		DeliveredAt:          dto.Tracking.DeliveredAt,
		CurrentLocation:      order.Location(dto.Tracking.CurrentLocation),
	}
	if tracking.SellerHub, err = hubRef(dto.Tracking.SellerHubID, dto.Tracking.SellerHubName,
		dto.Tracking.SellerHubDistrict, dto.Tracking.SellerDistrictFallback); err != nil {
		return nil, err
	}
	if tracking.BuyerHub, err = hubRef(dto.Tracking.BuyerHubID, dto.Tracking.BuyerHubName,
		dto.Tracking.BuyerHubDistrict, dto.Tracking.BuyerDistrictFallback); err != nil {
		return nil, err
	}

	var otp *order.OTP
	if dto.OTP.Code != "" && dto.OTP.GeneratedAt != nil && dto.OTP.ExpiresAt != nil {
		restored, otpErr := order.RestoreOTP(dto.OTP.Code, *dto.OTP.GeneratedAt, *dto.OTP.ExpiresAt, dto.OTP.Used, dto.OTP.UsedAt)
		if otpErr != nil {
			return nil, otpErr
		}
		otp = &restored
	}

	return order.RestoreOrder(order.State{
		ID:     id,
		Number: dto.Number,
		Buyer: order.Buyer{
			ID:    dto.BuyerID,
			Name:  dto.BuyerName,
			Email: dto.BuyerEmail,
			Phone: dto.BuyerPhone,
		},
		ShippingAddress: shipping,
		SellerID:        dto.SellerID,
		SellerAddress:   seller,
		Items:           items,
		Totals:          order.Totals{Items: dto.ItemsTotal, Shipping: dto.ShippingFee, Final: dto.FinalAmount},
		Status:          status,
		Tracking:        tracking,
		OTP:             otp,
		CancelReason:    dto.CancelReason,
		Version:         dto.Version,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Street:   a.Street(),
		City:     a.City(),
		State:    a.State(),
		Pincode:  a.Pincode(),
		Landmark: a.Landmark(),
	}
}

func (a AddressDTO) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(a.Street, a.City, a.State, a.Pincode, a.Landmark)
}

func hubRef(id *uuid.UUID, name, district string, fallback bool) (*order.HubRef, error) {
	if id == nil {
		return nil, nil
	}
	hubID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	d, err := kernel.ParseDistrict(district)
	if err != nil {
		return nil, err
	}
	return &order.HubRef{ID: hubID, Name: name, District: d, Fallback: fallback}, nil
}
