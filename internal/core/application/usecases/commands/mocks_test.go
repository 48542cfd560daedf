package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockSubOrderRepository struct{ mock.Mock }

func (m *MockSubOrderRepository) Add(ctx context.Context, s *suborder.SubOrder) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSubOrderRepository) Update(ctx context.Context, s *suborder.SubOrder) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*suborder.SubOrder)
	return s, args.Error(1)
}

func (m *MockSubOrderRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).([]*suborder.SubOrder)
	return s, args.Error(1)
}

type MockKitchenRepository struct{ mock.Mock }

func (m *MockKitchenRepository) Add(ctx context.Context, k *kitchen.Kitchen) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKitchenRepository) Update(ctx context.Context, k *kitchen.Kitchen) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKitchenRepository) Get(ctx context.Context, id kernel.UUID) (*kitchen.Kitchen, error) {
	args := m.Called(ctx, id)
	k, _ := args.Get(0).(*kitchen.Kitchen)
	return k, args.Error(1)
}

func (m *MockKitchenRepository) FindActiveByType(ctx context.Context, kind kitchen.Type) ([]*kitchen.Kitchen, error) {
	args := m.Called(ctx, kind)
	k, _ := args.Get(0).([]*kitchen.Kitchen)
	return k, args.Error(1)
}

func (m *MockKitchenRepository) AdjustLoad(ctx context.Context, id kernel.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

type MockFundRepository struct{ mock.Mock }

func (m *MockFundRepository) Add(ctx context.Context, f *fund.Fund) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFundRepository) Update(ctx context.Context, f *fund.Fund) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFundRepository) Get(ctx context.Context, id kernel.UUID) (*fund.Fund, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*fund.Fund)
	return f, args.Error(1)
}

func (m *MockFundRepository) GetByClient(ctx context.Context, clientID kernel.UUID) (*fund.Fund, error) {
	args := m.Called(ctx, clientID)
	f, _ := args.Get(0).(*fund.Fund)
	return f, args.Error(1)
}

func (m *MockFundRepository) AddMovement(ctx context.Context, mv *fund.Movement) error {
	return m.Called(ctx, mv).Error(0)
}

func (m *MockFundRepository) FindMovement(ctx context.Context, orderID kernel.UUID, kind fund.MovementKind) (*fund.Movement, error) {
	args := m.Called(ctx, orderID, kind)
	mv, _ := args.Get(0).(*fund.Movement)
	return mv, args.Error(1)
}

func (m *MockFundRepository) ListMovements(ctx context.Context, fundID kernel.UUID) ([]*fund.Movement, error) {
	args := m.Called(ctx, fundID)
	mv, _ := args.Get(0).([]*fund.Movement)
	return mv, args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, events ...*audit.Event) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockAuditRepository) Find(ctx context.Context, filter audit.Filter) ([]*audit.Event, error) {
	args := m.Called(ctx, filter)
	e, _ := args.Get(0).([]*audit.Event)
	return e, args.Error(1)
}

func (m *MockAuditRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditRepository) MeanLatencyByKitchen(ctx context.Context, kitchenID *kernel.UUID) ([]audit.KitchenLatency, error) {
	args := m.Called(ctx, kitchenID)
	l, _ := args.Get(0).([]audit.KitchenLatency)
	return l, args.Error(1)
}

func (m *MockAuditRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.MenuItem, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).(map[kernel.UUID]ports.MenuItem)
	return items, args.Error(1)
}

// MockUoW satisfies every unit of work interface of the package. Repository
// accessors return the fields so tests only set expectations on the
// repositories themselves.
type MockUoW struct {
	mock.Mock

	Orders    *MockOrderRepository
	SubOrders *MockSubOrderRepository
	Kitchens  *MockKitchenRepository
	Funds     *MockFundRepository
	Events    *MockAuditRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Orders:    new(MockOrderRepository),
		SubOrders: new(MockSubOrderRepository),
		Kitchens:  new(MockKitchenRepository),
		Funds:     new(MockFundRepository),
		Events:    new(MockAuditRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) BeginSerializable(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository       { return m.Orders }
func (m *MockUoW) SubOrderRepository() ports.SubOrderRepository { return m.SubOrders }
func (m *MockUoW) KitchenRepository() ports.KitchenRepository   { return m.Kitchens }
func (m *MockUoW) FundRepository() ports.FundRepository         { return m.Funds }
func (m *MockUoW) AuditRepository() ports.AuditRepository       { return m.Events }

func (m *MockUoW) AssertRepositoryExpectations(t mock.TestingT) {
	m.Orders.AssertExpectations(t)
	m.SubOrders.AssertExpectations(t)
	m.Kitchens.AssertExpectations(t)
	m.Funds.AssertExpectations(t)
	m.Events.AssertExpectations(t)
}

// MockUoWFactory hands out the same MockUoW on every Create, so a retried
// handler sees one set of expectations.
type MockUoWFactory struct {
	mock.Mock
	uow *MockUoW
}

func NewMockUoWFactory(uow *MockUoW) *MockUoWFactory {
	return &MockUoWFactory{uow: uow}
}

func (f *MockUoWFactory) Create() commands.UoW {
	f.Called()
	return f.uow
}

type MockLedgerUoWFactory struct {
	mock.Mock
	uow *MockUoW
}

func NewMockLedgerUoWFactory(uow *MockUoW) *MockLedgerUoWFactory {
	return &MockLedgerUoWFactory{uow: uow}
}

func (f *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	f.Called()
	return f.uow
}

type MockKitchenUoWFactory struct {
	mock.Mock
	uow *MockUoW
}

func NewMockKitchenUoWFactory(uow *MockUoW) *MockKitchenUoWFactory {
	return &MockKitchenUoWFactory{uow: uow}
}

func (f *MockKitchenUoWFactory) Create() commands.KitchenUoW {
	f.Called()
	return f.uow
}

type MockAuditUoWFactory struct {
	mock.Mock
	uow *MockUoW
}

func NewMockAuditUoWFactory(uow *MockUoW) *MockAuditUoWFactory {
	return &MockAuditUoWFactory{uow: uow}
}

func (f *MockAuditUoWFactory) Create() commands.AuditUoW {
	f.Called()
	return f.uow
}

func mustActor(roles ...kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), roles...)
	if err != nil {
		panic(err)
	}
	return a
}

func fastRetry(attempts int) commands.RetryPolicy {
	return commands.RetryPolicy{MaxAttempts: attempts, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}
}
