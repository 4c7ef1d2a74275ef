// Package pricing resolves region surcharges from a tenant's pricing table.
//
// A Direction maps an inclusive postal-code range to a surcharge. Codes are
// compared numerically after normalization (see kernel.PostalCode), so
// variable-length or zero-stripped codes resolve the same way as their
// canonical form. When several directions cover a code the highest surcharge
// wins.
package pricing
