package order

import (
	"context"

	"prince-pos/internal/domain"
)

// Backend covers the order endpoints of the remote API.
type Backend interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	PrintOrder(ctx context.Context, orderID int, printType, printerName string) (*domain.PrintResult, error)
}

// Journal is the terminal's local order log.
type Journal interface {
	SaveOrder(order *domain.Order, receipt string) error
	ListRecent(limit int) ([]domain.Order, error)
	GetReceipt(orderID int) (string, error)
}

// Publisher emits order lifecycle events for downstream consumers
// (kitchen displays, analytics).
type Publisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

// Renderer produces printable markup for an order.
type Renderer interface {
	Render(order *domain.Order, printType string) (string, error)
}

type ServiceInterface interface {
	History(ctx context.Context) ([]domain.Order, error)
	RecordPlaced(ctx context.Context, placed domain.Order)
	Print(ctx context.Context, orderID int, printType string) (domain.PrintResult, error)
}

var _ ServiceInterface = (*Service)(nil)
