// Package tenant holds the tenant and the approval thresholds it configures.
package tenant

import (
	"errors"
	"fmt"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// Policy holds the thresholds a route must meet to skip approval.
// A nil field is not enforced.
type Policy struct {
	MaxFreightPercentage *float64
	MinValue             *kernel.Money
	MinWeight            *kernel.Weight
	MinOrders            *int
}

// Validate rejects negative thresholds.
func (p Policy) Validate() error {
	var errList []error
	if p.MaxFreightPercentage != nil && *p.MaxFreightPercentage < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"max freight percentage", fmt.Errorf("%.2f is negative", *p.MaxFreightPercentage)))
	}
	if p.MinValue != nil && p.MinValue.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"min value", fmt.Errorf("%s is negative", *p.MinValue)))
	}
	if p.MinWeight != nil && p.MinWeight.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"min weight", fmt.Errorf("%s is negative", *p.MinWeight)))
	}
	if p.MinOrders != nil && *p.MinOrders < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"min orders", fmt.Errorf("%d is negative", *p.MinOrders)))
	}
	return errors.Join(errList...)
}

// Tenant is an isolated customer organization.
type Tenant struct {
	id     kernel.UUID
	name   string
	policy Policy
}

func NewTenant(id kernel.UUID, name string, policy Policy) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(id.Validate(), policy.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	return &Tenant{id: id, name: name, policy: policy}, nil
}

func (t *Tenant) ID() kernel.UUID {
	return t.id
}

func (t *Tenant) Name() string {
	return t.name
}

func (t *Tenant) Policy() Policy {
	return t.policy
}
