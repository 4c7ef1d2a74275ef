// Package kernel provides the domain primitives shared by every aggregate of the
// lastmile service.
//
// The package includes:
//   - UUID: identifiers for tenants, routes, orders and reference entities
//   - PostalCode: a normalized fixed-width postal code compared as a number
//   - Money and Weight: integer amounts in cents and grams, so route totals add up exactly
//
// Values are immutable and safe for concurrent use.
package kernel
