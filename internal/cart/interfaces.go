package cart

import (
	"context"

	"prince-pos/internal/domain"
	"prince-pos/internal/remote"
)

// Backend covers the cart and order endpoints of the remote API.
type Backend interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, dishID, quantity int, note string) (*domain.Cart, error)
	UpdateItem(ctx context.Context, itemID, quantity int, note string) (*remote.UpdateItemResult, error)
	RemoveItem(ctx context.Context, itemID int) (*domain.Cart, error)
	UpdateCart(ctx context.Context, orderType, tableNumber string) (*domain.Cart, error)
	ClearCart(ctx context.Context) error
	AddExtra(ctx context.Context, itemID int, extra domain.Extra) (*domain.Cart, error)
	RemoveExtra(ctx context.Context, itemID, extraID int) (*domain.Cart, error)
	PlaceOrder(ctx context.Context, orderType, tableNumber string) (*remote.PlaceOrderResult, error)
}

type ServiceInterface interface {
	Fetch(ctx context.Context) error
	AddItem(ctx context.Context, dishID, quantity int, note string) error
	UpdateItem(ctx context.Context, itemID, quantity int, note string) error
	RemoveItem(ctx context.Context, itemID int) error
	ToggleExtra(ctx context.Context, itemID int, extra domain.Extra) error
	SetOrderDetails(orderType, tableNumber string)
	PlaceOrder(ctx context.Context, orderType, tableNumber string) (*domain.Order, error)
	Clear(ctx context.Context) error
	Snapshot() Snapshot
	ClearMessages()
}

var _ ServiceInterface = (*Service)(nil)
