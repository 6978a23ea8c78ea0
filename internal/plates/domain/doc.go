// Package domain provides the pure domain layer for the plate registry with no
// infrastructure dependencies.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports
//   - Defines the PlateKey value object and the Normalize function that produces it
//   - Defines the AuthorizedRecord, BlacklistRecord and EntryEvent entities
//   - Defines the repository interfaces the registry workflows depend on
//   - Provides domain-specific error types
//
// # Collections
//
// A plate key lives in at most one of two collections at a time:
//
//   - the authorized collection ("plates"), keyed by a store-assigned id with a
//     unique plate key, holding the owner and creation time
//   - the blacklist collection ("blacklist"), keyed by the plate key itself
//
// Entry events ("entries") are an append-only feed produced by the gate sensor.
// They are read-only to the registry workflows and only drive the dashboard.
package domain
