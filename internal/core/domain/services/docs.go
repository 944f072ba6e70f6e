// Package services holds the domain services that do not belong to a single
// aggregate:
//   - DistrictResolver: maps a postal address to a Kerala district
//   - HubRouter: picks the active hub serving a resolved district
//   - OTPGenerator and OrderNumberGenerator: identifier and code sources
//   - NotificationFanout: transition-keyed rules turning an order event into
//     per-recipient notifications
//
// All of them are deterministic given their inputs and injected sources, and
// none performs I/O.
package services
