package queries

import (
	"context"
	"math"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler joins an order with the hubs it passed through.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

type hubContactRow struct {
	Phone     *string
	Email     *string
	Street    *string
	City      *string
	State     *string
	Latitude  *float64
	Longitude *float64
}

type trackingRow struct {
	orderSummaryRow

	OtpCode        string
	OtpGeneratedAt *time.Time
	OtpExpiresAt   *time.Time
	OtpUsed        bool
	OtpUsedAt      *time.Time

	SellerHubPhone     *string
	SellerHubEmail     *string
	SellerHubStreet    *string
	SellerHubCity      *string
	SellerHubState     *string
	SellerHubLatitude  *float64
	SellerHubLongitude *float64

	BuyerHubPhone     *string
	BuyerHubEmail     *string
	BuyerHubStreet    *string
	BuyerHubCity      *string
	BuyerHubState     *string
	BuyerHubLatitude  *float64
	BuyerHubLongitude *float64
}

// Handle returns errs.ErrObjectNotFound when the order does not exist. A hub
// deleted after the order passed it still shows with the name stored on the order.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var rows []trackingRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`,
			o.otp_code, o.otp_generated_at, o.otp_expires_at, o.otp_used, o.otp_used_at,
			sh.contact_phone AS seller_hub_phone,
			sh.contact_email AS seller_hub_email,
			sh.address_street AS seller_hub_street,
			sh.address_city AS seller_hub_city,
			sh.address_state AS seller_hub_state,
			sh.latitude AS seller_hub_latitude,
			sh.longitude AS seller_hub_longitude,
			bh.contact_phone AS buyer_hub_phone,
			bh.contact_email AS buyer_hub_email,
			bh.address_street AS buyer_hub_street,
			bh.address_city AS buyer_hub_city,
			bh.address_state AS buyer_hub_state,
			bh.latitude AS buyer_hub_latitude,
			bh.longitude AS buyer_hub_longitude
		FROM orders o
		LEFT JOIN hubs sh ON sh.id = o.seller_hub_id
		LEFT JOIN hubs bh ON bh.id = o.buyer_hub_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error; err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	row := rows[0]

	summary, err := row.toSummary()
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp := GetOrderTrackingQueryResponse{
		OrderID:         summary.ID,
		Number:          summary.Number,
		Status:          summary.Status,
		CurrentLocation: summary.CurrentLocation,
		AdminApproved:   summary.AdminApproved,
		ApprovedAt:      summary.ApprovedAt,
		DeliveredAt:     summary.DeliveredAt,
		OTP:             otpStatus(row.OtpCode, row.OtpGeneratedAt, row.OtpExpiresAt, row.OtpUsed, row.OtpUsedAt),
		CreatedAt:       summary.CreatedAt,
		UpdatedAt:       summary.UpdatedAt,
	}

	if summary.SellerHub != nil {
		resp.SellerHub = trackedHub(*summary.SellerHub, summary.ArrivedAtSellerHubAt, hubContactRow{
			Phone:     row.SellerHubPhone,
			Email:     row.SellerHubEmail,
			Street:    row.SellerHubStreet,
			City:      row.SellerHubCity,
			State:     row.SellerHubState,
			Latitude:  row.SellerHubLatitude,
			Longitude: row.SellerHubLongitude,
		})
	}
	if summary.BuyerHub != nil {
		resp.BuyerHub = trackedHub(*summary.BuyerHub, summary.ArrivedAtBuyerHubAt, hubContactRow{
			Phone:     row.BuyerHubPhone,
			Email:     row.BuyerHubEmail,
			Street:    row.BuyerHubStreet,
			City:      row.BuyerHubCity,
			State:     row.BuyerHubState,
			Latitude:  row.BuyerHubLatitude,
			Longitude: row.BuyerHubLongitude,
		})
	}

	if resp.SellerHub != nil && resp.BuyerHub != nil &&
		resp.SellerHub.Location != nil && resp.BuyerHub.Location != nil {
		if km, distErr := resp.SellerHub.Location.Distance(*resp.BuyerHub.Location); distErr == nil {
			rounded := math.Round(km*10) / 10
			resp.DistanceKm = &rounded
		}
	}

	return resp, nil
}

func trackedHub(ref HubRef, arrivedAt *time.Time, c hubContactRow) *TrackedHub {
	t := &TrackedHub{
		HubRef:    ref,
		Phone:     deref(c.Phone),
		Email:     deref(c.Email),
		ArrivedAt: arrivedAt,
	}

	var parts []string
	for _, p := range []*string{c.Street, c.City, c.State} {
		if v := strings.TrimSpace(deref(p)); v != "" {
			parts = append(parts, v)
		}
	}
	t.Address = strings.Join(parts, ", ")

	if c.Latitude != nil && c.Longitude != nil {
		if loc, err := kernel.NewGeoLocation(*c.Latitude, *c.Longitude); err == nil {
			t.Location = &loc
		}
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
