package order

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
)

const (
	// OTPLength is the number of decimal digits in a pickup code.
	OTPLength = 6

	// DefaultOTPTTL is how long a code stays valid after issue.
	DefaultOTPTTL = 24 * time.Hour
)

// OtpErrorKind classifies a rejected verification.
type OtpErrorKind string

const (
	OtpExpired     OtpErrorKind = "otp_expired"
	OtpAlreadyUsed OtpErrorKind = "otp_already_used"
	OtpMismatch    OtpErrorKind = "otp_mismatch"
	WrongState     OtpErrorKind = "wrong_state"
)

var (
	ErrOtpExpired     = errors.New("otp has expired")
	ErrOtpAlreadyUsed = errors.New("otp has already been used")
	ErrOtpMismatch    = errors.New("otp does not match")
	ErrOtpWrongState  = errors.New("order is not awaiting pickup")
)

// OtpError is returned by VerifyAndDeliver. Expired and mismatch are retryable
// by the buyer; already-used and wrong-state are not.
type OtpError struct {
	OrderID kernel.UUID
	Kind    OtpErrorKind
	Status  Status
}

func newOtpError(orderID kernel.UUID, kind OtpErrorKind, status Status) *OtpError {
	return &OtpError{OrderID: orderID, Kind: kind, Status: status}
}

func (e *OtpError) Error() string {
	return fmt.Sprintf("order %s: %v", e.OrderID, e.Unwrap())
}

func (e *OtpError) Unwrap() error {
	switch e.Kind {
	case OtpExpired:
		return ErrOtpExpired
	case OtpAlreadyUsed:
		return ErrOtpAlreadyUsed
	case OtpMismatch:
		return ErrOtpMismatch
	default:
		return ErrOtpWrongState
	}
}

// Retryable reports whether the buyer may try again with another code.
func (e *OtpError) Retryable() bool {
	return e.Kind == OtpMismatch || e.Kind == OtpExpired
}

// OTP is the pickup code record embedded in an order's hub tracking.
type OTP struct {
	code        string
	generatedAt time.Time
	expiresAt   time.Time
	used        bool
	usedAt      *time.Time
}

// NewOTP creates an unused code valid for ttl from generatedAt.
func NewOTP(code string, generatedAt time.Time, ttl time.Duration) (OTP, error) {
	if err := validateCode(code); err != nil {
		return OTP{}, err
	}
	if ttl <= 0 {
		return OTP{}, errs.NewValueIsInvalidErrorWithCause("otp ttl", fmt.Errorf("%s is not positive", ttl))
	}
	return OTP{
		code:        code,
		generatedAt: generatedAt,
		expiresAt:   generatedAt.Add(ttl),
	}, nil
}

// RestoreOTP rebuilds a stored OTP record.
func RestoreOTP(code string, generatedAt, expiresAt time.Time, used bool, usedAt *time.Time) (OTP, error) {
	if err := validateCode(code); err != nil {
		return OTP{}, err
	}
	if used && usedAt == nil {
		return OTP{}, errs.NewValueIsRequiredError("otp used at")
	}
	return OTP{
		code:        code,
		generatedAt: generatedAt,
		expiresAt:   expiresAt,
		used:        used,
		usedAt:      copyTime(usedAt),
	}, nil
}

func (o OTP) Code() string           { return o.code }
func (o OTP) GeneratedAt() time.Time { return o.generatedAt }
func (o OTP) ExpiresAt() time.Time   { return o.expiresAt }
func (o OTP) IsUsed() bool           { return o.used }
func (o OTP) UsedAt() *time.Time     { return copyTime(o.usedAt) }

// IsExpired reports whether now is strictly after the expiry instant.
func (o OTP) IsExpired(now time.Time) bool {
	return now.After(o.expiresAt)
}

// Matches compares in constant time so response latency does not leak digits.
func (o OTP) Matches(candidate string) bool {
	return len(candidate) == len(o.code) &&
		subtle.ConstantTimeCompare([]byte(candidate), []byte(o.code)) == 1
}

func (o OTP) markUsed(now time.Time) OTP {
	o.used = true
	o.usedAt = &now
	return o
}

func validateCode(code string) error {
	if len(code) != OTPLength {
		return errs.NewValueIsInvalidErrorWithCause("otp", fmt.Errorf("must be %d digits", OTPLength))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("otp", fmt.Errorf("must be %d digits", OTPLength))
		}
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
