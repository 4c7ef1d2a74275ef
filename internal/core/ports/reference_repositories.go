package ports

import (
	"context"

	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pricing"
	"lastmile/internal/core/domain/model/tenant"
)

// FleetRepository reads drivers, vehicles and vehicle categories.
type FleetRepository interface {
	GetDriver(ctx context.Context, tenantID, id kernel.UUID) (*fleet.Driver, error)
	GetVehicle(ctx context.Context, tenantID, id kernel.UUID) (*fleet.Vehicle, error)
	GetCategory(ctx context.Context, tenantID, id kernel.UUID) (*fleet.Category, error)
}

// PricingRepository reads a tenant's pricing table.
type PricingRepository interface {
	GetTable(ctx context.Context, tenantID kernel.UUID) (pricing.Table, error)
}

// TenantRepository reads tenants and their approval policy.
type TenantRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)
}

// PaymentRepository is the narrow view of the payables linked to routes.
type PaymentRepository interface {
	// HasSettled reports whether any payment linked to the route was settled.
	HasSettled(ctx context.Context, tenantID, deliveryID kernel.UUID) (bool, error)

	DeleteByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) error
}
