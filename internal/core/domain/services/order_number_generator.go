package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OrderNumberGenerator produces human-facing order numbers of the form
// ORD<unix millis><3 random digits>. Uniqueness is enforced by the store.
type OrderNumberGenerator struct{}

func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{}
}

// Next returns a number for an order placed at now.
func (OrderNumberGenerator) Next(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return fmt.Sprintf("ORD%d%03d", now.UnixMilli(), n.Int64()), nil
}
