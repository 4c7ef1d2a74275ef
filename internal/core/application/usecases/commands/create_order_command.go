package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrWeightIsInvalid     = errs.NewValueIsInvalidError("weight must not be negative")
	ErrOrderValueIsInvalid = errs.NewValueIsInvalidError("value must not be negative")
)

// CreateOrderCommand registers one order handed over by the import pipeline.
// The order starts Unassigned.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(tenantID, kernel.NewUUID(), "01310-100",
//	    kernel.WeightFromGrams(2500), kernel.MoneyFromCents(15990), order.Address{City: "São Paulo"})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	orderID    kernel.UUID
	postalCode kernel.PostalCode
	weight     kernel.Weight
	value      kernel.Money
	address    order.Address

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand normalizes the postal code and validates the amounts.
func NewCreateOrderCommand(
	tenantID, orderID kernel.UUID,
	postalCode string,
	weight kernel.Weight,
	value kernel.Money,
	address order.Address,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setTenantID(tenantID),
		orderCommand.setOrderID(orderID),
		orderCommand.setPostalCode(postalCode),
		orderCommand.setWeight(weight),
		orderCommand.setValue(value),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) PostalCode() kernel.PostalCode {
	return c.postalCode
}

func (c CreateOrderCommand) Weight() kernel.Weight {
	return c.weight
}

func (c CreateOrderCommand) Value() kernel.Money {
	return c.value
}

func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.UUID) error {
	if err := requireID("tenant id", tenantID); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPostalCode(raw string) error {
	code, err := kernel.NewPostalCode(raw)
	if err != nil {
		return err
	}

	c.postalCode = code
	return nil
}

func (c *CreateOrderCommand) setWeight(weight kernel.Weight) error {
	if weight.IsNegative() {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setValue(value kernel.Money) error {
	if value.IsNegative() {
		return ErrOrderValueIsInvalid
	}

	c.value = value
	return nil
}
