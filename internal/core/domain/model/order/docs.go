// Package order provides the Order aggregate and the order state machine.
//
// The package includes:
//   - Order: a single shipment with its postal code, weight, value and route assignment
//   - Status: the order lifecycle, including the five moves a driver may request
//
// Key business rules:
//   - An order is on at most one route; Unassigned orders reference none
//   - Drivers may only move EnRoute and InDelivery orders, and only forward
//   - Delivered and DeliveryFailed are terminal for the driver
//   - A failed delivery always records a reason
//   - Route approval, re-approval and release are driven by the delivery lifecycle,
//     never by the driver
package order
