// Package order implements the Order aggregate and the two-tier hub fulfillment
// state machine it moves through.
//
// The package includes:
//   - Order: aggregate root holding parties, line items, totals, status and hub tracking
//   - Status: the lifecycle state machine
//   - OTP: the one-time pickup code issued on arrival at the buyer hub
//   - Event: transition facts raised by the aggregate and relayed through the outbox
//   - StateError and OtpError: the typed failures callers discriminate on
//
// Lifecycle:
//
//	created ──> at_seller_hub ──> shipped ──> out_for_delivery ──> delivered
//	   │              │
//	   └──────────────┴──> cancelled
//
// Key business rules:
//   - Every transition checks the current status first and fails with a StateError
//     without touching the aggregate when the status does not match
//   - shipped and later states always carry a buyer hub; at_seller_hub and later carry a seller hub
//   - Exactly one OTP is live per order; re-issuing replaces it
//   - A failed OTP verification never mutates the order
//   - The aggregate never computes hub counters; the application layer applies
//     atomic increments in the same unit of work
package order
