package mail

import (
	"context"
	"log/slog"

	"hubflow/internal/core/ports"
)

// LogMailer writes pickup mails to the log instead of sending them. The code
// is logged, so it must not be used outside development.
type LogMailer struct {
	logger *slog.Logger
}

var _ ports.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "LogMailer")}
}

func (m *LogMailer) SendPickupCode(ctx context.Context, mail ports.PickupCodeMail) error {
	m.logger.InfoContext(ctx, "pickup code mail",
		"to", mail.To,
		"order", mail.OrderNumber,
		"hub", mail.HubName,
		"code", mail.Code,
		"expiresAt", mail.ExpiresAt,
	)
	return nil
}
