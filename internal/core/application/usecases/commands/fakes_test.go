package commands_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pricing"
	"lastmile/internal/core/domain/model/tenant"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore keeps copies of every aggregate, so handlers only see their
// changes persisted when they call the repositories.
type memStore struct {
	tenants    map[kernel.UUID]*tenant.Tenant
	drivers    map[kernel.UUID]*fleet.Driver
	vehicles   map[kernel.UUID]*fleet.Vehicle
	categories map[kernel.UUID]*fleet.Category
	directions map[kernel.UUID][]*pricing.Direction
	deliveries map[kernel.UUID]*delivery.Delivery
	orders     map[kernel.UUID]*order.Order
	ledger     []*approval.Entry
	settled    map[kernel.UUID]bool
	payments   map[kernel.UUID]bool
	locked     []kernel.UUID
}

func newMemStore() *memStore {
	return &memStore{
		tenants:    map[kernel.UUID]*tenant.Tenant{},
		drivers:    map[kernel.UUID]*fleet.Driver{},
		vehicles:   map[kernel.UUID]*fleet.Vehicle{},
		categories: map[kernel.UUID]*fleet.Category{},
		directions: map[kernel.UUID][]*pricing.Direction{},
		deliveries: map[kernel.UUID]*delivery.Delivery{},
		orders:     map[kernel.UUID]*order.Order{},
		settled:    map[kernel.UUID]bool{},
		payments:   map[kernel.UUID]bool{},
	}
}

func cloneOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(order.State{
		ID:            o.ID(),
		TenantID:      o.TenantID(),
		PostalCode:    o.PostalCode(),
		Weight:        o.Weight(),
		Value:         o.Value(),
		Address:       o.Address(),
		Status:        o.Status(),
		DeliveryID:    o.DeliveryID(),
		Sequence:      o.Sequence(),
		StartedAt:     o.StartedAt(),
		CompletedAt:   o.CompletedAt(),
		FailureCode:   o.FailureCode(),
		FailureReason: o.FailureReason(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

func cloneDelivery(d *delivery.Delivery) *delivery.Delivery {
	c, err := delivery.RestoreDelivery(delivery.State{
		ID:         d.ID(),
		TenantID:   d.TenantID(),
		DriverID:   d.DriverID(),
		VehicleID:  d.VehicleID(),
		Status:     d.Status(),
		StartDate:  d.StartDate(),
		ReleasedAt: d.ReleasedAt(),
		EndedAt:    d.EndedAt(),
		Note:       d.Note(),
		Totals:     d.Totals(),
		Freight:    d.Freight(),
		CreatedAt:  d.CreatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

// ledgerFor returns the entries of a route in append order.
func (s *memStore) ledgerFor(deliveryID kernel.UUID) []*approval.Entry {
	var result []*approval.Entry
	for _, e := range s.ledger {
		if e.DeliveryID().IsEqual(deliveryID) {
			result = append(result, e)
		}
	}
	return result
}

type memDeliveryRepo struct{ s *memStore }

func (r memDeliveryRepo) conflicts(d *delivery.Delivery) bool {
	if !d.Status().IsOpen() {
		return false
	}
	for _, other := range r.s.deliveries {
		if !other.ID().IsEqual(d.ID()) && other.TenantID().IsEqual(d.TenantID()) &&
			other.DriverID().IsEqual(d.DriverID()) && other.Status().IsOpen() {
			return true
		}
	}
	return false
}

func (r memDeliveryRepo) Add(_ context.Context, d *delivery.Delivery) error {
	if r.conflicts(d) {
		return errs.NewConflictError("driver", d.DriverID(), "open delivery exists")
	}
	r.s.deliveries[d.ID()] = cloneDelivery(d)
	return nil
}

func (r memDeliveryRepo) Update(_ context.Context, d *delivery.Delivery) error {
	if _, ok := r.s.deliveries[d.ID()]; !ok {
		return errs.NewObjectNotFoundError("delivery", d.ID())
	}
	if r.conflicts(d) {
		return errs.NewConflictError("driver", d.DriverID(), "open delivery exists")
	}
	r.s.deliveries[d.ID()] = cloneDelivery(d)
	return nil
}

func (r memDeliveryRepo) Delete(_ context.Context, d *delivery.Delivery) error {
	for _, o := range r.s.orders {
		if o.BelongsTo(d.ID()) {
			return fmt.Errorf("order %s still references delivery %s", o.ID(), d.ID())
		}
	}
	delete(r.s.deliveries, d.ID())
	return nil
}

func (r memDeliveryRepo) Get(_ context.Context, tenantID, id kernel.UUID) (*delivery.Delivery, error) {
	d, ok := r.s.deliveries[id]
	if !ok || !d.TenantID().IsEqual(tenantID) {
		return nil, errs.NewObjectNotFoundError("delivery", id)
	}
	return cloneDelivery(d), nil
}

func (r memDeliveryRepo) LockDriver(_ context.Context, _, driverID kernel.UUID) error {
	r.s.locked = append(r.s.locked, driverID)
	return nil
}

func (r memDeliveryRepo) HasOpenForDriver(
	_ context.Context,
	tenantID, driverID kernel.UUID,
	excludeID *kernel.UUID,
) (bool, error) {
	for _, d := range r.s.deliveries {
		if excludeID != nil && d.ID().IsEqual(*excludeID) {
			continue
		}
		if d.TenantID().IsEqual(tenantID) && d.DriverID().IsEqual(driverID) && d.Status().IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.s.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.s.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	r.s.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrderRepo) Get(_ context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || !o.TenantID().IsEqual(tenantID) {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(o), nil
}

func (r memOrderRepo) GetManyForUpdate(_ context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error) {
	var result []*order.Order
	for _, id := range ids {
		if o, ok := r.s.orders[id]; ok && o.TenantID().IsEqual(tenantID) {
			result = append(result, cloneOrder(o))
		}
	}
	return result, nil
}

func (r memOrderRepo) GetByDelivery(_ context.Context, tenantID, deliveryID kernel.UUID) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.s.orders {
		if o.TenantID().IsEqual(tenantID) && o.BelongsTo(deliveryID) {
			result = append(result, cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		si, sj := result[i].Sequence(), result[j].Sequence()
		switch {
		case si != nil && sj != nil && *si != *sj:
			return *si < *sj
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		}
		return result[i].ID().String() < result[j].ID().String()
	})
	return result, nil
}

type memLedger struct{ s *memStore }

func (r memLedger) Append(_ context.Context, e *approval.Entry) error {
	r.s.ledger = append(r.s.ledger, e)
	return nil
}

func (r memLedger) ListByDelivery(_ context.Context, _, deliveryID kernel.UUID) ([]*approval.Entry, error) {
	entries := r.s.ledgerFor(deliveryID)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (r memLedger) DeleteByDelivery(_ context.Context, _, deliveryID kernel.UUID) error {
	kept := r.s.ledger[:0]
	for _, e := range r.s.ledger {
		if !e.DeliveryID().IsEqual(deliveryID) {
			kept = append(kept, e)
		}
	}
	r.s.ledger = kept
	return nil
}

type memFleet struct{ s *memStore }

func (r memFleet) GetDriver(_ context.Context, tenantID, id kernel.UUID) (*fleet.Driver, error) {
	d, ok := r.s.drivers[id]
	if !ok || !d.TenantID().IsEqual(tenantID) {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return d, nil
}

func (r memFleet) GetVehicle(_ context.Context, tenantID, id kernel.UUID) (*fleet.Vehicle, error) {
	v, ok := r.s.vehicles[id]
	if !ok || !v.TenantID().IsEqual(tenantID) {
		return nil, errs.NewObjectNotFoundError("vehicle", id)
	}
	return v, nil
}

func (r memFleet) GetCategory(_ context.Context, tenantID, id kernel.UUID) (*fleet.Category, error) {
	c, ok := r.s.categories[id]
	if !ok || !c.TenantID().IsEqual(tenantID) {
		return nil, errs.NewObjectNotFoundError("vehicle category", id)
	}
	return c, nil
}

type memPricing struct{ s *memStore }

func (r memPricing) GetTable(_ context.Context, tenantID kernel.UUID) (pricing.Table, error) {
	return pricing.NewTable(r.s.directions[tenantID]), nil
}

type memTenants struct{ s *memStore }

func (r memTenants) Get(_ context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("tenant", id)
	}
	return t, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) HasSettled(_ context.Context, _, deliveryID kernel.UUID) (bool, error) {
	return r.s.settled[deliveryID], nil
}

func (r memPayments) DeleteByDelivery(_ context.Context, _, deliveryID kernel.UUID) error {
	delete(r.s.settled, deliveryID)
	r.s.payments[deliveryID] = false
	return nil
}

// MockUoW records the transaction calls and serves repositories backed by a memStore.
type MockUoW struct {
	mock.Mock
	store *memStore
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository { return memDeliveryRepo{m.store} }
func (m *MockUoW) OrderRepository() ports.OrderRepository       { return memOrderRepo{m.store} }
func (m *MockUoW) ApprovalLedger() ports.ApprovalLedger         { return memLedger{m.store} }
func (m *MockUoW) FleetRepository() ports.FleetRepository       { return memFleet{m.store} }
func (m *MockUoW) PricingRepository() ports.PricingRepository   { return memPricing{m.store} }
func (m *MockUoW) TenantRepository() ports.TenantRepository     { return memTenants{m.store} }
func (m *MockUoW) PaymentRepository() ports.PaymentRepository   { return memPayments{m.store} }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockApprovalUoWFactory struct{ mock.Mock }

func (m *MockApprovalUoWFactory) Create() commands.ApprovalUoW {
	args := m.Called()
	return args.Get(0).(commands.ApprovalUoW)
}

type MockOrderStatusUoWFactory struct{ mock.Mock }

func (m *MockOrderStatusUoWFactory) Create() commands.OrderStatusUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderStatusUoW)
}

// committingUoW expects Begin, Commit and the deferred Rollback, in that order.
func committingUoW(ctx context.Context, store *memStore) *MockUoW {
	uow := &MockUoW{store: store}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return uow
}

// abortingUoW expects Begin and the deferred Rollback only.
func abortingUoW(ctx context.Context, store *memStore) *MockUoW {
	uow := &MockUoW{store: store}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return uow
}

// fixture is one tenant with a driver, a categorized van and a small pricing table.
type fixture struct {
	t          *testing.T
	store      *memStore
	tenantID   kernel.UUID
	actorID    kernel.UUID
	driverID   kernel.UUID
	vehicleID  kernel.UUID
	categoryID kernel.UUID
}

const (
	centroSurcharge = 1000
	sulSurcharge    = 4000
	vanBaseRate     = 2000
)

func newFixture(t *testing.T, policy tenant.Policy) *fixture {
	t.Helper()
	f := &fixture{
		t:          t,
		store:      newMemStore(),
		tenantID:   kernel.NewUUID(),
		actorID:    kernel.NewUUID(),
		driverID:   kernel.NewUUID(),
		vehicleID:  kernel.NewUUID(),
		categoryID: kernel.NewUUID(),
	}

	tn, err := tenant.NewTenant(f.tenantID, "Acme", policy)
	require.NoError(t, err)
	f.store.tenants[f.tenantID] = tn

	f.addDriver(f.driverID)

	category, err := fleet.NewCategory(f.categoryID, f.tenantID, "Van", kernel.MoneyFromCents(vanBaseRate))
	require.NoError(t, err)
	f.store.categories[f.categoryID] = category

	vehicle, err := fleet.NewVehicle(f.vehicleID, f.tenantID, "ABC1D23", &f.categoryID)
	require.NoError(t, err)
	f.store.vehicles[f.vehicleID] = vehicle

	f.addDirection("01000-000", "01999-999", centroSurcharge)
	f.addDirection("04000-000", "04999-999", sulSurcharge)
	return f
}

func (f *fixture) addDriver(id kernel.UUID) {
	d, err := fleet.NewDriver(id, f.tenantID, "Driver "+id.String()[:8])
	require.NoError(f.t, err)
	f.store.drivers[id] = d
}

func (f *fixture) addDirection(from, to string, cents int64) {
	fromCode, err := kernel.NewPostalCode(from)
	require.NoError(f.t, err)
	toCode, err := kernel.NewPostalCode(to)
	require.NoError(f.t, err)
	d, err := pricing.NewDirection(kernel.NewUUID(), f.tenantID, from, fromCode, toCode, kernel.MoneyFromCents(cents))
	require.NoError(f.t, err)
	f.store.directions[f.tenantID] = append(f.store.directions[f.tenantID], d)
}

// addOrder stores an unassigned order and returns its id.
func (f *fixture) addOrder(postalCode string, grams, cents int64) kernel.UUID {
	code, err := kernel.NewPostalCode(postalCode)
	require.NoError(f.t, err)
	o, err := order.NewOrder(kernel.NewUUID(), f.tenantID, code,
		kernel.WeightFromGrams(grams), kernel.MoneyFromCents(cents), order.Address{})
	require.NoError(f.t, err)
	f.store.orders[o.ID()] = o
	return o.ID()
}

func (f *fixture) order(id kernel.UUID) *order.Order {
	o, ok := f.store.orders[id]
	require.True(f.t, ok, "order %s not stored", id)
	return o
}

func (f *fixture) delivery(id kernel.UUID) *delivery.Delivery {
	d, ok := f.store.deliveries[id]
	require.True(f.t, ok, "delivery %s not stored", id)
	return d
}

// createDelivery runs the create handler for the given orders and returns the new route id.
func (f *fixture) createDelivery(driverID kernel.UUID, orderIDs ...kernel.UUID) kernel.UUID {
	f.t.Helper()
	ctx := f.t.Context()

	refs := make([]commands.OrderRef, 0, len(orderIDs))
	for i, id := range orderIDs {
		seq := i + 1
		refs = append(refs, commands.OrderRef{OrderID: id, Sequence: &seq})
	}
	cmd, err := commands.NewCreateDeliveryCommand(f.tenantID, f.actorID, driverID, f.vehicleID, refs, "", nil)
	require.NoError(f.t, err)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(committingUoW(ctx, f.store)).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(f.t, err)
	return result.Delivery.ID()
}

// driveOrder moves an order through a driver transition via the handler.
func (f *fixture) driveOrder(orderID kernel.UUID, status order.Status, reason string) error {
	ctx := f.t.Context()
	cmd, err := commands.NewUpdateOrderStatusCommand(f.tenantID, f.driverID, orderID, status, reason, "")
	require.NoError(f.t, err)

	uow := &MockUoW{store: f.store}
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockOrderStatusUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewUpdateOrderStatusCommandHandler(factory)
	return h.Handle(ctx, cmd)
}

func ptr[T any](v T) *T {
	return &v
}

func mustVehicle(t *testing.T, id, tenantID kernel.UUID) *fleet.Vehicle {
	t.Helper()
	v, err := fleet.NewVehicle(id, tenantID, "xyz9a87", nil)
	require.NoError(t, err)
	return v
}
