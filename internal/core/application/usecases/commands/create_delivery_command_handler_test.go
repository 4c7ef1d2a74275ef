package commands_test

import (
	"errors"
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/tenant"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T, f *fixture, driverID kernel.UUID, orderIDs ...kernel.UUID) commands.CreateDeliveryCommand {
	t.Helper()
	refs := make([]commands.OrderRef, 0, len(orderIDs))
	for _, id := range orderIDs {
		refs = append(refs, commands.OrderRef{OrderID: id})
	}
	cmd, err := commands.NewCreateDeliveryCommand(f.tenantID, f.actorID, driverID, f.vehicleID, refs, " first run ", nil)
	require.NoError(t, err)
	return cmd
}

func TestCreateDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("should create active route when policy is met", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		first := f.addOrder("01310-100", 1500, 20000)
		second := f.addOrder("01420-000", 500, 10000)

		uow := committingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		result, err := h.Handle(ctx, newCreateCommand(t, f, f.driverID, first, second))

		require.NoError(t, err)
		assert.False(t, result.NeedsApproval)
		assert.Empty(t, result.Reasons)

		d := f.delivery(result.Delivery.ID())
		assert.Equal(t, delivery.Active, d.Status())
		assert.NotNil(t, d.ReleasedAt())
		assert.Equal(t, "first run", d.Note())
		assert.Equal(t, kernel.MoneyFromCents(centroSurcharge+vanBaseRate), d.Freight())
		assert.Equal(t, delivery.Totals{
			Weight:     kernel.WeightFromGrams(2000),
			Value:      kernel.MoneyFromCents(30000),
			OrderCount: 2,
		}, d.Totals())
		assert.Equal(t, 0, d.StartDate().Hour())
		assert.Equal(t, 0, d.StartDate().Minute())

		for _, id := range []kernel.UUID{first, second} {
			o := f.order(id)
			assert.Equal(t, order.EnRoute, o.Status())
			assert.True(t, o.BelongsTo(d.ID()))
		}
		assert.Contains(t, f.store.locked, f.driverID)

		uow.AssertExpectations(t)
		factory.AssertExpectations(t)
	})

	t.Run("should hold route that misses value and order thresholds", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{
			MinValue:  ptr(kernel.MoneyFromCents(50000)),
			MinOrders: ptr(3),
		})
		first := f.addOrder("01310-100", 1000, 20000)
		second := f.addOrder("01310-200", 1000, 10000)

		uow := committingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		result, err := h.Handle(ctx, newCreateCommand(t, f, f.driverID, first, second))

		require.NoError(t, err)
		assert.True(t, result.NeedsApproval)
		require.Len(t, result.Reasons, 2)
		assert.Contains(t, result.Reasons[0], "route value")
		assert.Contains(t, result.Reasons[1], "2 orders")

		d := f.delivery(result.Delivery.ID())
		assert.Equal(t, delivery.AwaitingApproval, d.Status())
		assert.Nil(t, d.ReleasedAt())
		assert.Equal(t, order.AwaitingRouteApproval, f.order(first).Status())
		assert.Equal(t, order.AwaitingRouteApproval, f.order(second).Status())
		uow.AssertExpectations(t)
	})

	t.Run("should keep requested sequences", func(t *testing.T) {
		f := newFixture(t, tenant.Policy{})
		first := f.addOrder("01310-100", 100, 100)
		second := f.addOrder("01310-200", 100, 100)

		id := f.createDelivery(f.driverID, first, second)

		require.NotNil(t, f.order(first).Sequence())
		assert.Equal(t, 1, *f.order(first).Sequence())
		assert.Equal(t, 2, *f.order(second).Sequence())
		assert.True(t, f.order(second).BelongsTo(id))
	})

	t.Run("should price only the base rate outside every region", func(t *testing.T) {
		f := newFixture(t, tenant.Policy{})
		outside := f.addOrder("90000-000", 100, 10000)

		id := f.createDelivery(f.driverID, outside)

		assert.Equal(t, kernel.MoneyFromCents(vanBaseRate), f.delivery(id).Freight())
	})

	t.Run("should conflict when driver already has open route", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		f.createDelivery(f.driverID, f.addOrder("01310-100", 100, 100))
		second := f.addOrder("01310-200", 100, 100)

		uow := abortingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		_, err := h.Handle(ctx, newCreateCommand(t, f, f.driverID, second))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Unassigned, f.order(second).Status())
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should list every missing order", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		known := f.addOrder("01310-100", 100, 100)
		missing := kernel.NewUUID()

		uow := abortingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		_, err := h.Handle(ctx, newCreateCommand(t, f, f.driverID, known, missing))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), missing.String())
		assert.Equal(t, order.Unassigned, f.order(known).Status())
		uow.AssertExpectations(t)
	})

	t.Run("should conflict when order is already on a route", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		taken := f.addOrder("01310-100", 100, 100)
		f.createDelivery(f.driverID, taken)

		other := kernel.NewUUID()
		f.addDriver(other)

		uow := abortingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		_, err := h.Handle(ctx, newCreateCommand(t, f, other, taken))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), taken.String())
	})

	t.Run("should not see drivers of another tenant", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		stranger := newFixture(t, tenant.Policy{})
		f.store.drivers[stranger.driverID] = stranger.store.drivers[stranger.driverID]

		uow := abortingUoW(ctx, f.store)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		_, err := h.Handle(ctx, newCreateCommand(t, f, stranger.driverID, f.addOrder("01310-100", 1, 1)))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), stranger.driverID.String())
	})

	t.Run("should fail when begin transaction fails", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t, tenant.Policy{})
		expectedErr := errors.New("begin failed")

		uow := &MockUoW{store: f.store}
		uow.On("Begin", ctx).Return(expectedErr).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateDeliveryCommandHandler(factory)
		_, err := h.Handle(ctx, newCreateCommand(t, f, f.driverID, f.addOrder("01310-100", 1, 1)))

		require.ErrorIs(t, err, expectedErr)
		uow.AssertNotCalled(t, "Rollback", mock.Anything)
		assert.Empty(t, f.store.deliveries)
	})

	t.Run("should reject command not built by constructor", func(t *testing.T) {
		factory := new(MockUoWFactory)

		h := commands.NewCreateDeliveryCommandHandler(factory)
		_, err := h.Handle(t.Context(), commands.CreateDeliveryCommand{})

		require.ErrorIs(t, err, commands.ErrCreateDeliveryCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestNewCreateDeliveryCommand(t *testing.T) {
	tenantID, actorID, driverID, vehicleID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	orderID := kernel.NewUUID()

	t.Run("should keep explicit start date", func(t *testing.T) {
		start := time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)

		cmd, err := commands.NewCreateDeliveryCommand(tenantID, actorID, driverID, vehicleID,
			[]commands.OrderRef{{OrderID: orderID}}, "", &start)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, start, *cmd.StartDate())
	})

	t.Run("should require orders", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(tenantID, actorID, driverID, vehicleID, nil, "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "orders")
	})

	t.Run("should reject duplicated orders", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(tenantID, actorID, driverID, vehicleID,
			[]commands.OrderRef{{OrderID: orderID}, {OrderID: orderID}}, "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "more than once")
	})

	t.Run("should reject sequence below one", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(tenantID, actorID, driverID, vehicleID,
			[]commands.OrderRef{{OrderID: orderID, Sequence: ptr(0)}}, "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should join missing ids", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(kernel.UUID{}, actorID, kernel.UUID{}, vehicleID,
			[]commands.OrderRef{{OrderID: orderID}}, "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "tenant id")
		assert.Contains(t, err.Error(), "driver id")
	})
}
