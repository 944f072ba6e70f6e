package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hubflow/internal/adapters/out/directory"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
)

// Mail transports.
const (
	MailTransportLog = "log"
	MailTransportSQS = "sqs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DefaultDistrict kernel.District
	OTPTTL          time.Duration

	OutboxBatchSize      int
	OutboxMaxAttempts    int
	OutboxConcurrency    int
	TaskBatchSize        int
	ArrivalFallbackAfter time.Duration

	AdminIDs []string

	MailTransport string
	SQSQueueURL   string
	AWSRegion     string

	LogLevel    slog.Level
	HubSeedFile string
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration through getenv, applying defaults for
// anything unset. Every malformed value is reported, not just the first.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPPort:      env("HTTP_PORT", "8080"),
		DBHost:        env("DB_HOST", "localhost"),
		DBPort:        env("DB_PORT", "5432"),
		DBUser:        env("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD"),
		DBName:        env("DB_NAME", "hubflow"),
		DBSslMode:     env("DB_SSLMODE", "disable"),
		AdminIDs:      directory.ParseAdminIDs(getenv("ADMIN_IDS")),
		MailTransport: strings.ToLower(env("MAIL_TRANSPORT", MailTransportLog)),
		SQSQueueURL:   getenv("SQS_QUEUE_URL"),
		AWSRegion:     env("AWS_REGION", "ap-south-1"),
		HubSeedFile:   env("HUB_SEED_FILE", "configs/hubs.yml"),
	}

	var errDistrict, errLevel, errTransport error
	cfg.DefaultDistrict, errDistrict = kernel.ParseDistrict(env("DEFAULT_DISTRICT", string(kernel.Ernakulam)))
	if errLevel = cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); errLevel != nil {
		errLevel = errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", errLevel)
	}
	switch cfg.MailTransport {
	case MailTransportLog:
	case MailTransportSQS:
		if cfg.SQSQueueURL == "" {
			errTransport = errs.NewValueIsRequiredError("SQS_QUEUE_URL")
		}
	default:
		errTransport = errs.NewValueIsInvalidErrorWithCause("MAIL_TRANSPORT",
			fmt.Errorf("%q is neither %s nor %s", cfg.MailTransport, MailTransportLog, MailTransportSQS))
	}

	var errTTL, errBatch, errAttempts, errConcurrency, errTasks, errFallback error
	cfg.OTPTTL, errTTL = duration(env("OTP_TTL", "24h"), "OTP_TTL", false)
	cfg.OutboxBatchSize, errBatch = positive(env("OUTBOX_BATCH_SIZE", "50"), "OUTBOX_BATCH_SIZE")
	cfg.OutboxMaxAttempts, errAttempts = positive(env("OUTBOX_MAX_ATTEMPTS", "10"), "OUTBOX_MAX_ATTEMPTS")
	cfg.OutboxConcurrency, errConcurrency = positive(env("OUTBOX_CONCURRENCY", "4"), "OUTBOX_CONCURRENCY")
	cfg.TaskBatchSize, errTasks = positive(env("TASK_BATCH_SIZE", "20"), "TASK_BATCH_SIZE")
	cfg.ArrivalFallbackAfter, errFallback = duration(env("ARRIVAL_FALLBACK_AFTER", "0"), "ARRIVAL_FALLBACK_AFTER", true)

	if err := errors.Join(errDistrict, errLevel, errTransport,
		errTTL, errBatch, errAttempts, errConcurrency, errTasks, errFallback); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func positive(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if n <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", n))
	}
	return n, nil
}

// duration accepts Go durations; "0" is allowed only where zero switches a feature off.
func duration(raw, name string, zeroAllowed bool) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if d < 0 || (d == 0 && !zeroAllowed) {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is out of range", d))
	}
	return d, nil
}
