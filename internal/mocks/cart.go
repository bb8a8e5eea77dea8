package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prince-pos/internal/cart"
	"prince-pos/internal/domain"
	"prince-pos/internal/remote"
)

// CartBackend is a mock of cart.Backend.
type CartBackend struct {
	mock.Mock
}

func NewCartBackend(t constructorTestingT) *CartBackend {
	m := &CartBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartBackend) GetCart(ctx context.Context) (*domain.Cart, error) {
	args := m.Called(ctx)
	var c *domain.Cart
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Cart)
	}
	return c, args.Error(1)
}

func (m *CartBackend) AddItem(ctx context.Context, dishID, quantity int, note string) (*domain.Cart, error) {
	args := m.Called(ctx, dishID, quantity, note)
	var c *domain.Cart
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Cart)
	}
	return c, args.Error(1)
}

func (m *CartBackend) UpdateItem(ctx context.Context, itemID, quantity int, note string) (*remote.UpdateItemResult, error) {
	args := m.Called(ctx, itemID, quantity, note)
	var result *remote.UpdateItemResult
	if args.Get(0) != nil {
		result = args.Get(0).(*remote.UpdateItemResult)
	}
	return result, args.Error(1)
}

func (m *CartBackend) RemoveItem(ctx context.Context, itemID int) (*domain.Cart, error) {
	args := m.Called(ctx, itemID)
	var c *domain.Cart
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Cart)
	}
	return c, args.Error(1)
}

func (m *CartBackend) UpdateCart(ctx context.Context, orderType, tableNumber string) (*domain.Cart, error) {
	args := m.Called(ctx, orderType, tableNumber)
	var c *domain.Cart
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Cart)
	}
	return c, args.Error(1)
}

func (m *CartBackend) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *CartBackend) AddExtra(ctx context.Context, itemID int, extra domain.Extra) (*domain.Cart, error) {
	args := m.Called(ctx, itemID, extra)
	var c *domain.Cart
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Cart)
	}
	return c, args.Error(1)
}

func (m *CartBackend) RemoveExtra(ctx context.Context, itemID, extraID int) (*domain.Cart, error) {
	args := m.Called(ctx, itemID, extraID)
	var c *domain.Cart
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Cart)
	}
	return c, args.Error(1)
}

func (m *CartBackend) PlaceOrder(ctx context.Context, orderType, tableNumber string) (*remote.PlaceOrderResult, error) {
	args := m.Called(ctx, orderType, tableNumber)
	var result *remote.PlaceOrderResult
	if args.Get(0) != nil {
		result = args.Get(0).(*remote.PlaceOrderResult)
	}
	return result, args.Error(1)
}

var _ cart.Backend = (*CartBackend)(nil)

// CartServiceInterface is a mock of cart.ServiceInterface.
type CartServiceInterface struct {
	mock.Mock
}

func NewCartServiceInterface(t constructorTestingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartServiceInterface) Fetch(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *CartServiceInterface) AddItem(ctx context.Context, dishID, quantity int, note string) error {
	return m.Called(ctx, dishID, quantity, note).Error(0)
}

func (m *CartServiceInterface) UpdateItem(ctx context.Context, itemID, quantity int, note string) error {
	return m.Called(ctx, itemID, quantity, note).Error(0)
}

func (m *CartServiceInterface) RemoveItem(ctx context.Context, itemID int) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *CartServiceInterface) ToggleExtra(ctx context.Context, itemID int, extra domain.Extra) error {
	return m.Called(ctx, itemID, extra).Error(0)
}

func (m *CartServiceInterface) SetOrderDetails(orderType, tableNumber string) {
	m.Called(orderType, tableNumber)
}

func (m *CartServiceInterface) PlaceOrder(ctx context.Context, orderType, tableNumber string) (*domain.Order, error) {
	args := m.Called(ctx, orderType, tableNumber)
	var placed *domain.Order
	if args.Get(0) != nil {
		placed = args.Get(0).(*domain.Order)
	}
	return placed, args.Error(1)
}

func (m *CartServiceInterface) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *CartServiceInterface) Snapshot() cart.Snapshot {
	return m.Called().Get(0).(cart.Snapshot)
}

func (m *CartServiceInterface) ClearMessages() {
	m.Called()
}

var _ cart.ServiceInterface = (*CartServiceInterface)(nil)
