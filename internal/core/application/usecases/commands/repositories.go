// Package commands contains the operations that change route and order state.
// Every handler validates its command, runs inside one unit of work and rolls
// back on any error path.
package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Handlers depend on the narrowest combination they need.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ApprovalLedgerFactory interface {
		ApprovalLedger() ports.ApprovalLedger
	}

	FleetRepoFactory interface {
		FleetRepository() ports.FleetRepository
	}

	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderStatusUoW serves driver status updates, which touch only the order
	// and possibly its route.
	OrderStatusUoW interface {
		TxManager
		DeliveryRepoFactory
		OrderRepoFactory
	}

	OrderStatusUoWFactory interface {
		Create() OrderStatusUoW
	}

	// ApprovalUoW serves approve and reject.
	ApprovalUoW interface {
		TxManager
		DeliveryRepoFactory
		OrderRepoFactory
		ApprovalLedgerFactory
	}

	ApprovalUoWFactory interface {
		Create() ApprovalUoW
	}

	// UoW spans every repository. Used by the handlers that reassess a route
	// or delete it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DeliveryRepository().Get(ctx, tenantID, deliveryID)
	//   orders, err := uow.OrderRepository().GetByDelivery(ctx, tenantID, deliveryID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DeliveryRepoFactory
		OrderRepoFactory
		ApprovalLedgerFactory
		FleetRepoFactory
		PricingRepoFactory
		TenantRepoFactory
		PaymentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
