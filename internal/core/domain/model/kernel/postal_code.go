package kernel

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// PostalCodeWidth is the number of digits every code is padded to.
	PostalCodeWidth = 8
	// PostalCodeMax is the largest representable code.
	PostalCodeMax uint32 = 99_999_999
)

// ErrPostalCodeIsNotConstructed is returned when a zero-value PostalCode is used.
var ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"postal code must be created via NewPostalCode or PostalCodeFromNumber constructors")

// PostalCode is a delivery postal code normalized to PostalCodeWidth digits.
//
// Separators ('-', '.', ' ') are stripped, shorter codes are left-padded with
// zeros, and comparison is numeric. "1310-100", "01310100" and "1310100" are
// therefore the same code, and range checks never depend on string ordering.
type PostalCode struct { //nolint:recvcheck //using for validation
	value uint32
	guard guard.ConstructorGuard
}

// NewPostalCode parses a raw postal code as typed by an operator or imported from a spreadsheet.
//
// Example:
//
//	code, err := kernel.NewPostalCode("01310-100")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(code) // 01310100
func NewPostalCode(raw string) (PostalCode, error) {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if digits == "" {
		return PostalCode{}, errs.NewValueIsRequiredError("postal code")
	}
	if len(digits) > PostalCodeWidth {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause(
			"postal code",
			fmt.Errorf("%q has more than %d digits", raw, PostalCodeWidth),
		)
	}

	var value uint32
	for _, r := range digits {
		if r < '0' || r > '9' {
			return PostalCode{}, errs.NewValueIsInvalidErrorWithCause(
				"postal code",
				fmt.Errorf("%q contains a non-digit character", raw),
			)
		}
		value = value*10 + uint32(r-'0')
	}

	return PostalCodeFromNumber(value)
}

// PostalCodeFromNumber restores a code from its numeric form, as persisted by the repositories.
func PostalCodeFromNumber(value uint32) (PostalCode, error) {
	if value > PostalCodeMax {
		return PostalCode{}, errs.NewValueIsOutOfRangeError("postal code", value, 0, PostalCodeMax)
	}
	return PostalCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (p PostalCode) Validate() error {
	return p.guard.Validate(ErrPostalCodeIsNotConstructed)
}

// Number returns the numeric magnitude used for comparisons and storage.
func (p PostalCode) Number() uint32 {
	return p.value
}

// String returns the zero-padded fixed-width representation.
func (p PostalCode) String() string {
	return fmt.Sprintf("%0*d", PostalCodeWidth, p.value)
}

// Compare returns -1, 0 or +1 as p is below, equal to or above other.
func (p PostalCode) Compare(other PostalCode) int {
	switch {
	case p.value < other.value:
		return -1
	case p.value > other.value:
		return 1
	default:
		return 0
	}
}

// IsBetween reports whether p lies in the inclusive range [from, to].
func (p PostalCode) IsBetween(from, to PostalCode) bool {
	return p.Compare(from) >= 0 && p.Compare(to) <= 0
}
