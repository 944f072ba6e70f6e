// Package kernel holds the value objects shared by the hub, order and
// notification aggregates:
//   - UUID: identifier wrapper over github.com/google/uuid
//   - District: closed enumeration of the fourteen Kerala districts
//   - Address: postal address snapshot searched by the district resolver
//   - GeoLocation: coordinates with haversine distance
//
// All of them are immutable and reject their zero value through Validate.
package kernel
