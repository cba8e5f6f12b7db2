// Package services provides domain services for the shipping system.
// It implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - TariffCalculator: A pure rate lookup computing postal cost (COGS) and
//     customer price for a parcel's weight, service level and destination zone
package services
