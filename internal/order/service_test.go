package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prince-pos/internal/domain"
	"prince-pos/internal/mocks"
	"prince-pos/internal/order"
	"prince-pos/internal/printer"
)

func TestHistory_BackendFirst(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	svc := order.NewService(backend, nil, nil, nil, nil, "pos-1")

	expected := []domain.Order{{ID: 1}, {ID: 2}}
	backend.On("ListOrders", mock.Anything).Return(expected, nil).Once()

	orders, err := svc.History(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
}

func TestHistory_JournalFallback(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	journal := mocks.NewOrderJournal(t)
	svc := order.NewService(backend, journal, nil, nil, nil, "pos-1")

	backend.On("ListOrders", mock.Anything).Return(nil, errors.New("backend down")).Once()
	local := []domain.Order{{ID: 40}}
	journal.On("ListRecent", 50).Return(local, nil).Once()

	orders, err := svc.History(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, local, orders)
}

func TestHistory_ErrorWhenNoFallback(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	journal := mocks.NewOrderJournal(t)
	svc := order.NewService(backend, journal, nil, nil, nil, "pos-1")

	backend.On("ListOrders", mock.Anything).Return(nil, errors.New("backend down")).Once()
	journal.On("ListRecent", 50).Return(nil, nil).Once()

	_, err := svc.History(context.Background())
	assert.Error(t, err)
}

func TestRecordPlaced_SideEffects(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	journal := mocks.NewOrderJournal(t)
	publisher := mocks.NewOrderPublisher(t)
	renderer := mocks.NewOrderRenderer(t)
	prn := mocks.NewPrinter(t)
	svc := order.NewService(backend, journal, publisher, renderer, prn, "pos-1")

	placed := domain.Order{ID: 42, OrderType: domain.OrderTypeDineIn, TableNumber: "4", TotalAmount: 31.5}

	renderer.On("Render", mock.Anything, printer.PrintTypeReceipt).Return("<receipt>", nil).Once()
	renderer.On("Render", mock.Anything, printer.PrintTypeKitchen).Return("<kitchen>", nil).Once()
	journal.On("SaveOrder", mock.Anything, "<receipt>").Return(nil).Once()
	publisher.On("PublishOrder", mock.Anything, mock.MatchedBy(func(event domain.OrderEvent) bool {
		return event.Type == "order_placed" && event.OrderID == 42 && event.TerminalID == "pos-1"
	})).Return(nil).Once()
	prn.On("Print", "<receipt>").Return(domain.PrintResult{Status: "spooled"}, nil).Once()
	prn.On("Print", "<kitchen>").Return(domain.PrintResult{Status: "spooled"}, nil).Once()

	svc.RecordPlaced(context.Background(), placed)
}

func TestRecordPlaced_PublishFailureIsNotFatal(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	journal := mocks.NewOrderJournal(t)
	publisher := mocks.NewOrderPublisher(t)
	renderer := mocks.NewOrderRenderer(t)
	prn := mocks.NewPrinter(t)
	svc := order.NewService(backend, journal, publisher, renderer, prn, "pos-1")

	renderer.On("Render", mock.Anything, printer.PrintTypeReceipt).Return("<receipt>", nil).Once()
	renderer.On("Render", mock.Anything, printer.PrintTypeKitchen).Return("<kitchen>", nil).Once()
	journal.On("SaveOrder", mock.Anything, "<receipt>").Return(nil).Once()
	publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()
	prn.On("Print", mock.Anything).Return(domain.PrintResult{Status: "spooled"}, nil).Twice()

	svc.RecordPlaced(context.Background(), domain.Order{ID: 43})
}

func TestPrint_ReceiptReprintsFromJournal(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	journal := mocks.NewOrderJournal(t)
	prn := mocks.NewPrinter(t)
	svc := order.NewService(backend, journal, nil, nil, prn, "pos-1")

	journal.On("GetReceipt", 42).Return("<receipt>", nil).Once()
	prn.On("Print", "<receipt>").Return(domain.PrintResult{Status: "spooled"}, nil).Once()

	result, err := svc.Print(context.Background(), 42, printer.PrintTypeReceipt)
	assert.NoError(t, err)
	assert.Equal(t, "spooled", result.Status)
	backend.AssertNotCalled(t, "ListOrders", mock.Anything)
}

func TestPrint_KitchenTicketRendersFromHistory(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	renderer := mocks.NewOrderRenderer(t)
	prn := mocks.NewPrinter(t)
	svc := order.NewService(backend, nil, nil, renderer, prn, "pos-1")

	backend.On("ListOrders", mock.Anything).
		Return([]domain.Order{{ID: 41}, {ID: 42}}, nil).Once()
	renderer.On("Render", mock.Anything, printer.PrintTypeKitchen).Return("<kitchen>", nil).Once()
	prn.On("Print", "<kitchen>").Return(domain.PrintResult{Status: "spooled"}, nil).Once()

	_, err := svc.Print(context.Background(), 42, printer.PrintTypeKitchen)
	assert.NoError(t, err)
}

func TestPrint_BackendPrinterPreferred(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	journal := mocks.NewOrderJournal(t)
	prn := mocks.NewPrinter(t)
	svc := order.NewService(backend, journal, nil, nil, prn, "pos-1")
	svc.SetBackendPrinter("kitchen-thermal")

	backend.On("PrintOrder", mock.Anything, 42, printer.PrintTypeKitchen, "kitchen-thermal").
		Return(&domain.PrintResult{Printer: "kitchen-thermal", Status: "printed"}, nil).Once()

	result, err := svc.Print(context.Background(), 42, printer.PrintTypeKitchen)
	assert.NoError(t, err)
	assert.Equal(t, "printed", result.Status)
	prn.AssertNotCalled(t, "Print", mock.Anything)
}

func TestPrint_UnknownOrder(t *testing.T) {
	backend := mocks.NewOrderBackend(t)
	svc := order.NewService(backend, nil, nil, nil, nil, "pos-1")

	backend.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()

	_, err := svc.Print(context.Background(), 99, printer.PrintTypeKitchen)
	assert.ErrorIs(t, err, order.ErrUnknownOrder)
}
