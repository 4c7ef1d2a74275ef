package pricing

import (
	"errors"
	"fmt"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// Direction maps an inclusive postal-code range to a region and its surcharge.
type Direction struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	region    string
	from      kernel.PostalCode
	to        kernel.PostalCode
	surcharge kernel.Money
}

// NewDirection validates that from <= to and that the surcharge is not negative.
func NewDirection(
	id, tenantID kernel.UUID,
	region string,
	from, to kernel.PostalCode,
	surcharge kernel.Money,
) (*Direction, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		from.Validate(),
		to.Validate(),
	); err != nil {
		return nil, err
	}
	if from.Compare(to) > 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"postal code range",
			fmt.Errorf("start %s is above end %s", from, to),
		)
	}
	if surcharge.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("surcharge", fmt.Errorf("%s is negative", surcharge))
	}

	return &Direction{
		id:        id,
		tenantID:  tenantID,
		region:    strings.TrimSpace(region),
		from:      from,
		to:        to,
		surcharge: surcharge,
	}, nil
}

func (d *Direction) ID() kernel.UUID {
	return d.id
}

func (d *Direction) TenantID() kernel.UUID {
	return d.tenantID
}

func (d *Direction) Region() string {
	return d.region
}

func (d *Direction) From() kernel.PostalCode {
	return d.from
}

func (d *Direction) To() kernel.PostalCode {
	return d.to
}

func (d *Direction) Surcharge() kernel.Money {
	return d.surcharge
}

// Covers reports whether code lies inside the direction's range, bounds included.
func (d *Direction) Covers(code kernel.PostalCode) bool {
	return code.IsBetween(d.from, d.to)
}
