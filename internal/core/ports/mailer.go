package ports

import (
	"context"
	"time"
)

// PickupCodeMail is the out-of-band message carrying a pickup code to the buyer.
// It is the only place the code leaves the order.
type PickupCodeMail struct {
	To          string
	BuyerName   string
	OrderNumber string
	HubName     string
	Code        string
	ExpiresAt   time.Time
}

// Mailer delivers pickup-code emails.
type Mailer interface {
	SendPickupCode(ctx context.Context, mail PickupCodeMail) error
}
