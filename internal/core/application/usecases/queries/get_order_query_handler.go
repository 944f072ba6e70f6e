package queries

import (
	"context"
	"time"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type lineItemRow struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type orderDetailRow struct {
	orderSummaryRow

	BuyerEmail       string
	BuyerPhone       string
	ShippingStreet   string
	ShippingCity     string
	ShippingState    string
	ShippingPincode  string
	ShippingLandmark string
	SellerStreet     string
	SellerCity       string
	SellerState      string
	SellerPincode    string
	SellerLandmark   string
	Items            datatypes.JSONSlice[lineItemRow]
	ItemsTotal       int64
	ShippingFee      int64
	CancelReason     string
	Version          int
	OtpCode          string
	OtpGeneratedAt   *time.Time
	OtpExpiresAt     *time.Time
	OtpUsed          bool
	OtpUsedAt        *time.Time
}

// Handle returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var rows []orderDetailRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`,
			o.buyer_email, o.buyer_phone,
			o.shipping_street, o.shipping_city, o.shipping_state, o.shipping_pincode, o.shipping_landmark,
			o.seller_street, o.seller_city, o.seller_state, o.seller_pincode, o.seller_landmark,
			o.items, o.items_total, o.shipping_fee, o.cancel_reason, o.version,
			o.otp_code, o.otp_generated_at, o.otp_expires_at, o.otp_used, o.otp_used_at
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	row := rows[0]

	summary, err := row.toSummary()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items := make([]order.LineItem, 0, len(row.Items))
	for _, it := range row.Items {
		items = append(items, order.LineItem(it))
	}

	return GetOrderQueryResponse{
		OrderSummary: summary,
		BuyerEmail:   row.BuyerEmail,
		BuyerPhone:   row.BuyerPhone,
		ShippingAddress: Address{
			Street:   row.ShippingStreet,
			City:     row.ShippingCity,
			State:    row.ShippingState,
			Pincode:  row.ShippingPincode,
			Landmark: row.ShippingLandmark,
		},
		SellerAddress: Address{
			Street:   row.SellerStreet,
			City:     row.SellerCity,
			State:    row.SellerState,
			Pincode:  row.SellerPincode,
			Landmark: row.SellerLandmark,
		},
		Items:        items,
		Totals:       order.Totals{Items: row.ItemsTotal, Shipping: row.ShippingFee, Final: row.FinalAmount},
		CancelReason: row.CancelReason,
		Version:      row.Version,
		OTP:          otpStatus(row.OtpCode, row.OtpGeneratedAt, row.OtpExpiresAt, row.OtpUsed, row.OtpUsedAt),
	}, nil
}

func otpStatus(code string, generatedAt, expiresAt *time.Time, used bool, usedAt *time.Time) *OTPStatus {
	if code == "" || generatedAt == nil || expiresAt == nil {
		return nil
	}
	return &OTPStatus{GeneratedAt: *generatedAt, ExpiresAt: *expiresAt, Used: used, UsedAt: usedAt}
}
