package cmd

import (
	"log/slog"
	"testing"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(envOf(map[string]string{"ADMIN_IDS": "admin-1, admin-2"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, kernel.Ernakulam, cfg.DefaultDistrict)
	assert.Equal(t, 24*time.Hour, cfg.OTPTTL)
	assert.Equal(t, 50, cfg.OutboxBatchSize)
	assert.Equal(t, 10, cfg.OutboxMaxAttempts)
	assert.Zero(t, cfg.ArrivalFallbackAfter)
	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.AdminIDs)
	assert.Equal(t, MailTransportLog, cfg.MailTransport)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Contains(t, cfg.DSN(), "dbname=hubflow")
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(envOf(map[string]string{
		"DEFAULT_DISTRICT":       "kozhikode",
		"OTP_TTL":                "30m",
		"ARRIVAL_FALLBACK_AFTER": "2h",
		"MAIL_TRANSPORT":         "SQS",
		"SQS_QUEUE_URL":          "https://sqs.ap-south-1.amazonaws.com/123/pickup-mails",
		"LOG_LEVEL":              "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, kernel.Kozhikode, cfg.DefaultDistrict)
	assert.Equal(t, 30*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 2*time.Hour, cfg.ArrivalFallbackAfter)
	assert.Equal(t, MailTransportSQS, cfg.MailTransport)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_ReportsEveryBadValue(t *testing.T) {
	_, err := LoadConfig(envOf(map[string]string{
		"DEFAULT_DISTRICT":  "Ooty",
		"OTP_TTL":           "0",
		"OUTBOX_BATCH_SIZE": "-1",
		"MAIL_TRANSPORT":    "sqs",
	}))
	require.Error(t, err)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "OTP_TTL")
	assert.Contains(t, err.Error(), "OUTBOX_BATCH_SIZE")
	assert.Contains(t, err.Error(), "SQS_QUEUE_URL")
}
