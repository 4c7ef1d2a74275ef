// Package services provides domain services that span several aggregates of
// the lastmile service.
//
// The package includes:
//   - FreightCalculator: prices a set of orders from the pricing table and the vehicle category
//   - ApprovalPolicy: checks route aggregates against the tenant's thresholds
//   - DeliveryAssessor: composes totals, freight and the approval decision for a route
//
// Every service here is pure: callers load the inputs and persist the results.
package services
