package commands_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/tenant"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func removeOrder(t *testing.T, f *fixture, deliveryID, orderID kernel.UUID) error {
	t.Helper()
	ctx := t.Context()
	cmd, err := commands.NewRemoveOrderFromDeliveryCommand(f.tenantID, f.actorID, deliveryID, orderID)
	require.NoError(t, err)

	uow := &MockUoW{store: f.store}
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewRemoveOrderFromDeliveryCommandHandler(factory)
	return h.Handle(ctx, cmd)
}

func TestRemoveOrderFromDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("should release order and recompute totals", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		near := f.addOrder("01310-100", 1000, 10000)
		far := f.addOrder("04100-000", 2000, 20000)
		id := f.createDelivery(f.driverID, near, far)
		require.Equal(t, kernel.MoneyFromCents(sulSurcharge+vanBaseRate), f.delivery(id).Freight())

		cmd, err := commands.NewRemoveOrderFromDeliveryCommand(f.tenantID, f.actorID, id, far)
		require.NoError(t, err)

		uow := committingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveOrderFromDeliveryCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		removed := f.order(far)
		assert.Equal(t, order.Unassigned, removed.Status())
		assert.Nil(t, removed.DeliveryID())
		assert.Nil(t, removed.Sequence())

		d := f.delivery(id)
		assert.Equal(t, delivery.Active, d.Status())
		assert.Equal(t, kernel.MoneyFromCents(centroSurcharge+vanBaseRate), d.Freight())
		assert.Equal(t, delivery.Totals{
			Weight:     kernel.WeightFromGrams(1000),
			Value:      kernel.MoneyFromCents(10000),
			OrderCount: 1,
		}, d.Totals())
		uow.AssertExpectations(t)
	})

	t.Run("should require re-approval when the route falls below the minimum", func(t *testing.T) {
		f := newFixture(t, tenant.Policy{MinOrders: ptr(2)})
		first := f.addOrder("01310-100", 1, 1)
		second := f.addOrder("01310-200", 1, 1)
		id := f.createDelivery(f.driverID, first, second)
		require.Equal(t, delivery.Active, f.delivery(id).Status())

		require.NoError(t, removeOrder(t, f, id, second))

		assert.Equal(t, delivery.AwaitingApproval, f.delivery(id).Status())
		assert.Equal(t, order.AwaitingRouteApproval, f.order(first).Status())
		entries := f.store.ledgerFor(id)
		require.Len(t, entries, 1)
		assert.Equal(t, approval.ReapprovalRequired, entries[0].Action())
		assert.Contains(t, entries[0].Reason(), "1 orders")
	})

	t.Run("should finish the route when only terminal orders remain", func(t *testing.T) {
		f := newFixture(t, tenant.Policy{MinOrders: ptr(2)})
		first := f.addOrder("01310-100", 1, 1)
		second := f.addOrder("01310-200", 1, 1)
		third := f.addOrder("01310-300", 1, 1)
		id := f.createDelivery(f.driverID, first, second, third)
		require.Equal(t, delivery.Active, f.delivery(id).Status())
		require.NoError(t, f.driveOrder(first, order.Delivered, ""))
		require.NoError(t, f.driveOrder(second, order.DeliveryFailed, "recipient absent"))

		require.NoError(t, removeOrder(t, f, id, third))

		d := f.delivery(id)
		assert.Equal(t, delivery.Finished, d.Status())
		assert.NotNil(t, d.EndedAt())
		assert.Equal(t, order.Delivered, f.order(first).Status())
		assert.Equal(t, order.DeliveryFailed, f.order(second).Status())
		assert.Equal(t, order.Unassigned, f.order(third).Status())
		assert.Empty(t, f.store.ledgerFor(id))
	})

	t.Run("should refuse to remove the last order", func(t *testing.T) {
		ctx := t.Context()
		f, id, orders := activeRoute(t, 1)
		cmd, err := commands.NewRemoveOrderFromDeliveryCommand(f.tenantID, f.actorID, id, orders[0])
		require.NoError(t, err)

		uow := abortingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveOrderFromDeliveryCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "last one")
		assert.True(t, f.order(orders[0]).BelongsTo(id))
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should refuse an order already in delivery", func(t *testing.T) {
		f, id, orders := activeRoute(t, 2)
		require.NoError(t, f.driveOrder(orders[0], order.InDelivery, ""))

		err := removeOrder(t, f, id, orders[0])

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.InDelivery, f.order(orders[0]).Status())
	})

	t.Run("should refuse an order of another route", func(t *testing.T) {
		f, id, _ := activeRoute(t, 2)
		loose := f.addOrder("01310-100", 1, 1)

		err := removeOrder(t, f, id, loose)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "is not on delivery")
	})

	t.Run("should report unknown order", func(t *testing.T) {
		f, id, _ := activeRoute(t, 2)

		err := removeOrder(t, f, id, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse changes on a finished route", func(t *testing.T) {
		f, id, orders := activeRoute(t, 2)
		require.NoError(t, f.driveOrder(orders[0], order.Delivered, ""))
		require.NoError(t, f.driveOrder(orders[1], order.Delivered, ""))

		err := removeOrder(t, f, id, orders[0])

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Delivered, f.order(orders[0]).Status())
	})
}

func TestDeleteDeliveryCommandHandler_Handle(t *testing.T) {
	deleteDelivery := func(t *testing.T, f *fixture, id kernel.UUID) error {
		ctx := t.Context()
		cmd, err := commands.NewDeleteDeliveryCommand(f.tenantID, f.actorID, id)
		require.NoError(t, err)

		uow := &MockUoW{store: f.store}
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewDeleteDeliveryCommandHandler(factory)
		return h.Handle(ctx, cmd)
	}

	t.Run("should delete pending route with its ledger", func(t *testing.T) {
		ctx := t.Context()
		f, id, orders := pendingRoute(t)
		cmd, err := commands.NewDeleteDeliveryCommand(f.tenantID, f.actorID, id)
		require.NoError(t, err)

		uow := committingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteDeliveryCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.NotContains(t, f.store.deliveries, id)
		assert.Empty(t, f.store.ledgerFor(id))
		for _, orderID := range orders {
			assert.Equal(t, order.Unassigned, f.order(orderID).Status())
			assert.Nil(t, f.order(orderID).DeliveryID())
		}
		uow.AssertExpectations(t)
	})

	t.Run("should free the driver for a new route", func(t *testing.T) {
		f, id, _ := pendingRoute(t)
		require.NoError(t, deleteDelivery(t, f, id))

		next := f.createDelivery(f.driverID, f.addOrder("01310-100", 1, 1))

		assert.NotNil(t, f.delivery(next))
	})

	t.Run("should refuse active route with orders on the street", func(t *testing.T) {
		f, id, orders := activeRoute(t, 2)

		err := deleteDelivery(t, f, id)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, f.store.deliveries, id)
		assert.True(t, f.order(orders[0]).BelongsTo(id))
	})

	t.Run("should delete finished route and detach its orders", func(t *testing.T) {
		f, id, orders := activeRoute(t, 1)
		require.NoError(t, f.driveOrder(orders[0], order.Delivered, ""))
		require.Equal(t, delivery.Finished, f.delivery(id).Status())

		require.NoError(t, deleteDelivery(t, f, id))

		o := f.order(orders[0])
		assert.Equal(t, order.Unassigned, o.Status())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("should conflict on settled payment", func(t *testing.T) {
		f, id, _ := pendingRoute(t)
		f.store.settled[id] = true

		err := deleteDelivery(t, f, id)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, f.store.deliveries, id)
	})

	t.Run("should not find route of another tenant", func(t *testing.T) {
		f, id, _ := pendingRoute(t)
		other := newFixture(t, tenant.Policy{})
		other.store = f.store

		err := deleteDelivery(t, other, id)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
