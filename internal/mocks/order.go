package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prince-pos/internal/domain"
	"prince-pos/internal/order"
	"prince-pos/internal/printer"
)

// OrderBackend is a mock of order.Backend.
type OrderBackend struct {
	mock.Mock
}

func NewOrderBackend(t constructorTestingT) *OrderBackend {
	m := &OrderBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderBackend) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderBackend) PrintOrder(ctx context.Context, orderID int, printType, printerName string) (*domain.PrintResult, error) {
	args := m.Called(ctx, orderID, printType, printerName)
	var result *domain.PrintResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.PrintResult)
	}
	return result, args.Error(1)
}

var _ order.Backend = (*OrderBackend)(nil)

// OrderJournal is a mock of order.Journal.
type OrderJournal struct {
	mock.Mock
}

func NewOrderJournal(t constructorTestingT) *OrderJournal {
	m := &OrderJournal{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderJournal) SaveOrder(placed *domain.Order, receipt string) error {
	return m.Called(placed, receipt).Error(0)
}

func (m *OrderJournal) ListRecent(limit int) ([]domain.Order, error) {
	args := m.Called(limit)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderJournal) GetReceipt(orderID int) (string, error) {
	args := m.Called(orderID)
	return args.String(0), args.Error(1)
}

var _ order.Journal = (*OrderJournal)(nil)

// OrderPublisher is a mock of order.Publisher.
type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t constructorTestingT) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

var _ order.Publisher = (*OrderPublisher)(nil)

// OrderRenderer is a mock of order.Renderer.
type OrderRenderer struct {
	mock.Mock
}

func NewOrderRenderer(t constructorTestingT) *OrderRenderer {
	m := &OrderRenderer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRenderer) Render(placed *domain.Order, printType string) (string, error) {
	args := m.Called(placed, printType)
	return args.String(0), args.Error(1)
}

var _ order.Renderer = (*OrderRenderer)(nil)

// Printer is a mock of printer.Printer.
type Printer struct {
	mock.Mock
}

func NewPrinter(t constructorTestingT) *Printer {
	m := &Printer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Printer) Print(doc string) (domain.PrintResult, error) {
	args := m.Called(doc)
	return args.Get(0).(domain.PrintResult), args.Error(1)
}

var _ printer.Printer = (*Printer)(nil)

// OrderServiceInterface is a mock of order.ServiceInterface.
type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t constructorTestingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) History(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderServiceInterface) RecordPlaced(ctx context.Context, placed domain.Order) {
	m.Called(ctx, placed)
}

func (m *OrderServiceInterface) Print(ctx context.Context, orderID int, printType string) (domain.PrintResult, error) {
	args := m.Called(ctx, orderID, printType)
	return args.Get(0).(domain.PrintResult), args.Error(1)
}

var _ order.ServiceInterface = (*OrderServiceInterface)(nil)
