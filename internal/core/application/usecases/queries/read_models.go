// Package queries contains the read side: projections of orders, hubs and
// notifications read straight from the database, bypassing the aggregates.
package queries

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HubRef is a hub as seen from an order.
type HubRef struct {
	ID       kernel.UUID
	Name     string
	District kernel.District
	// Fallback is set when the district came from the default rather than the address.
	Fallback bool
}

// OrderSummary is the dashboard row for an order.
type OrderSummary struct {
	ID              kernel.UUID
	Number          string
	BuyerID         string
	BuyerName       string
	SellerID        string
	Status          order.Status
	CurrentLocation order.Location
	FinalAmount     int64
	ItemCount       int
	SellerHub       *HubRef
	BuyerHub        *HubRef

	AdminApproved        bool
	ApprovedBy           string
	ArrivedAtSellerHubAt *time.Time
	ApprovedAt           *time.Time
	ArrivedAtBuyerHubAt  *time.Time
	DeliveredAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OTPStatus describes the pickup code without revealing it.
type OTPStatus struct {
	GeneratedAt time.Time
	ExpiresAt   time.Time
	Used        bool
	UsedAt      *time.Time
}

// orderSummaryColumns selects what orderSummaryRow scans.
const orderSummaryColumns = `
	o.id, o.number, o.buyer_id, o.buyer_name, o.seller_id, o.status, o.current_location,
	o.final_amount, jsonb_array_length(o.items) AS item_count,
	o.seller_hub_id, o.seller_hub_name, o.seller_hub_district, o.seller_district_fallback,
	o.buyer_hub_id, o.buyer_hub_name, o.buyer_hub_district, o.buyer_district_fallback,
	o.admin_approved, o.approved_by, o.arrived_at_seller_hub_at, o.approved_at,
	o.arrived_at_buyer_hub_at, o.delivered_at, o.created_at, o.updated_at`

type orderSummaryRow struct {
	ID                     uuid.UUID
	Number                 string
	BuyerID                string
	BuyerName              string
	SellerID               string
	Status                 string
	CurrentLocation        string
	FinalAmount            int64
	ItemCount              int
	SellerHubID            *uuid.UUID
	SellerHubName          string
	SellerHubDistrict      string
	SellerDistrictFallback bool
	BuyerHubID             *uuid.UUID
	BuyerHubName           string
	BuyerHubDistrict       string
	BuyerDistrictFallback  bool
	AdminApproved          bool
	ApprovedBy             string
	ArrivedAtSellerHubAt   *time.Time
	ApprovedAt             *time.Time
	ArrivedAtBuyerHubAt    *time.Time
	DeliveredAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (r orderSummaryRow) toSummary() (OrderSummary, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderSummary{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderSummary{}, err
	}
	sellerHub, err := hubRef(r.SellerHubID, r.SellerHubName, r.SellerHubDistrict, r.SellerDistrictFallback)
	if err != nil {
		return OrderSummary{}, err
	}
	buyerHub, err := hubRef(r.BuyerHubID, r.BuyerHubName, r.BuyerHubDistrict, r.BuyerDistrictFallback)
	if err != nil {
		return OrderSummary{}, err
	}

	return OrderSummary{
		ID:                   id,
		Number:               r.Number,
		BuyerID:              r.BuyerID,
		BuyerName:            r.BuyerName,
		SellerID:             r.SellerID,
		Status:               status,
		CurrentLocation:      order.Location(r.CurrentLocation),
		FinalAmount:          r.FinalAmount,
		ItemCount:            r.ItemCount,
		SellerHub:            sellerHub,
		BuyerHub:             buyerHub,
		AdminApproved:        r.AdminApproved,
		ApprovedBy:           r.ApprovedBy,
		ArrivedAtSellerHubAt: r.ArrivedAtSellerHubAt,
		ApprovedAt:           r.ApprovedAt,
		ArrivedAtBuyerHubAt:  r.ArrivedAtBuyerHubAt,
		DeliveredAt:          r.DeliveredAt,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}, nil
}

func summaries(rows []orderSummaryRow) ([]OrderSummary, error) {
	result := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		s, err := row.toSummary()
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func hubRef(id *uuid.UUID, name, district string, fallback bool) (*HubRef, error) {
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
	return &HubRef{ID: hubID, Name: name, District: d, Fallback: fallback}, nil
}

// Page bounds a listing. Zero values select the defaults.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
