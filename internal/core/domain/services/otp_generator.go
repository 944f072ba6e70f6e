package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"hubflow/internal/core/domain/model/order"
)

var otpUpperBound = big.NewInt(1_000_000)

// OTPGenerator issues six-digit pickup codes from a cryptographic source.
type OTPGenerator struct {
	random io.Reader
	ttl    time.Duration
}

// NewOTPGenerator returns a generator reading crypto/rand. A non-positive ttl
// selects order.DefaultOTPTTL.
func NewOTPGenerator(ttl time.Duration) OTPGenerator {
	return NewOTPGeneratorWithSource(rand.Reader, ttl)
}

// NewOTPGeneratorWithSource lets tests supply a deterministic reader.
func NewOTPGeneratorWithSource(random io.Reader, ttl time.Duration) OTPGenerator {
	if ttl <= 0 {
		ttl = order.DefaultOTPTTL
	}
	return OTPGenerator{random: random, ttl: ttl}
}

// Issue returns a fresh code valid from now for the configured ttl.
func (g OTPGenerator) Issue(now time.Time) (order.OTP, error) {
	n, err := rand.Int(g.random, otpUpperBound)
	if err != nil {
		return order.OTP{}, fmt.Errorf("generate otp: %w", err)
	}
	return order.NewOTP(fmt.Sprintf("%06d", n.Int64()), now, g.ttl)
}

// TTL returns how long issued codes stay valid.
func (g OTPGenerator) TTL() time.Duration {
	return g.ttl
}
