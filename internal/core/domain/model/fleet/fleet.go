// Package fleet holds the tenant-scoped reference entities a route is built
// from: drivers, vehicles and vehicle categories.
package fleet

import (
	"errors"
	"fmt"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// Driver is a person that can be assigned to a route.
type Driver struct {
	id       kernel.UUID
	tenantID kernel.UUID
	name     string
}

func NewDriver(id, tenantID kernel.UUID, name string) (*Driver, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(id.Validate(), requireID("tenant id", tenantID), requireName(name)); err != nil {
		return nil, err
	}
	return &Driver{id: id, tenantID: tenantID, name: name}, nil
}

func (d *Driver) ID() kernel.UUID       { return d.id }
func (d *Driver) TenantID() kernel.UUID { return d.tenantID }
func (d *Driver) Name() string          { return d.name }

// Vehicle carries a route. A vehicle without a category adds nothing to freight.
type Vehicle struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	plate      string
	categoryID *kernel.UUID
}

func NewVehicle(id, tenantID kernel.UUID, plate string, categoryID *kernel.UUID) (*Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if err := errors.Join(id.Validate(), requireID("tenant id", tenantID)); err != nil {
		return nil, err
	}
	if plate == "" {
		return nil, errs.NewValueIsRequiredError("plate")
	}
	if categoryID != nil {
		if err := categoryID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("category id", err)
		}
	}
	return &Vehicle{id: id, tenantID: tenantID, plate: plate, categoryID: categoryID}, nil
}

func (v *Vehicle) ID() kernel.UUID       { return v.id }
func (v *Vehicle) TenantID() kernel.UUID { return v.tenantID }
func (v *Vehicle) Plate() string         { return v.plate }

// CategoryID returns nil when the vehicle is uncategorized.
func (v *Vehicle) CategoryID() *kernel.UUID { return v.categoryID }

// Category groups vehicles by the base freight rate paid for a route.
type Category struct {
	id       kernel.UUID
	tenantID kernel.UUID
	name     string
	baseRate kernel.Money
}

func NewCategory(id, tenantID kernel.UUID, name string, baseRate kernel.Money) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(id.Validate(), requireID("tenant id", tenantID), requireName(name)); err != nil {
		return nil, err
	}
	if baseRate.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("base rate", fmt.Errorf("%s is negative", baseRate))
	}
	return &Category{id: id, tenantID: tenantID, name: name, baseRate: baseRate}, nil
}

func (c *Category) ID() kernel.UUID        { return c.id }
func (c *Category) TenantID() kernel.UUID  { return c.tenantID }
func (c *Category) Name() string           { return c.name }
func (c *Category) BaseRate() kernel.Money { return c.baseRate }

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func requireName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
