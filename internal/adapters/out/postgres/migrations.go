package postgres

import (
	"fmt"

	"lastmile/internal/adapters/out/postgres/approvalrepo"
	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/fleetrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/paymentrepo"
	"lastmile/internal/adapters/out/postgres/pricingrepo"
	"lastmile/internal/adapters/out/postgres/tenantrepo"
	"lastmile/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// Models lists every table owned or read by the service, in creation order.
func Models() []any {
	return []any{
		&tenantrepo.TenantDTO{},
		&fleetrepo.DriverDTO{},
		&fleetrepo.CategoryDTO{},
		&fleetrepo.VehicleDTO{},
		&pricingrepo.DirectionDTO{},
		&deliveryrepo.DeliveryDTO{},
		&orderrepo.OrderDTO{},
		&approvalrepo.EntryDTO{},
		&paymentrepo.PaymentDTO{},
	}
}

// Migrate creates the schema and the partial unique index that keeps a driver
// on at most one open route.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (tenant_id, driver_id) WHERE status IN (%d, %d)",
		deliveryrepo.OneOpenPerDriverIndex,
		deliveryrepo.DeliveryDTO{}.TableName(),
		int(delivery.AwaitingApproval),
		int(delivery.Active),
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", deliveryrepo.OneOpenPerDriverIndex, err)
	}

	return nil
}

// TruncateAll empties every table. Integration suites call it between tests.
func TruncateAll(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE tenants, drivers, vehicle_categories, vehicles, pricing_directions, " +
		"deliveries, orders, delivery_approvals, delivery_payments").Error
}
