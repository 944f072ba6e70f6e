// Package hub models the district fulfillment hubs that every order passes
// through twice: once at the seller's district and once at the buyer's.
//
// The package includes:
//   - Hub: aggregate holding identity, district, contact, manager, capacity and stats
//   - Status: operational state (active, inactive, maintenance)
//   - OperatingHours: opening window and working days
//   - ResolutionError: no active hub serves the district an address resolved to
//
// Key business rules:
//   - At most one active hub per district
//   - Capacity is advisory: utilization is shown to operators, never used to refuse an order
//   - currentOrders and the stats counters only move through atomic store-level
//     increments, never through the aggregate, so concurrent transitions cannot lose updates
package hub
