// Package approval models the append-only approval ledger of a route.
// Entries are created by the delivery lifecycle handlers and never change.
package approval
