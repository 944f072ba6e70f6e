package services_test

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestOTPGenerator_Issue(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("issues six digit codes with the default ttl", func(t *testing.T) {
		gen := services.NewOTPGenerator(0)

		for range 50 {
			otp, err := gen.Issue(now)
			require.NoError(t, err)
			assert.Regexp(t, sixDigits, otp.Code())
			assert.Equal(t, now.Add(order.DefaultOTPTTL), otp.ExpiresAt())
		}
	})

	t.Run("pads small values with zeros", func(t *testing.T) {
		gen := services.NewOTPGeneratorWithSource(bytes.NewReader(make([]byte, 64)), time.Hour)

		otp, err := gen.Issue(now)

		require.NoError(t, err)
		assert.Equal(t, "000000", otp.Code())
		assert.Equal(t, time.Hour, gen.TTL())
	})

	t.Run("surfaces entropy failures", func(t *testing.T) {
		gen := services.NewOTPGeneratorWithSource(bytes.NewReader(nil), time.Hour)

		_, err := gen.Issue(now)

		require.Error(t, err)
	})
}

func TestOrderNumberGenerator_Next(t *testing.T) {
	now := time.UnixMilli(1_746_349_200_123)

	number, err := services.NewOrderNumberGenerator().Next(now)

	require.NoError(t, err)
	assert.Regexp(t, `^ORD1746349200123[0-9]{3}$`, number)
}
