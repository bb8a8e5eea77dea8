package order

import (
	"context"
	"errors"
	"log"
	"time"

	"prince-pos/internal/domain"
	"prince-pos/internal/printer"
)

var ErrUnknownOrder = errors.New("order not found")

const historyFallbackLimit = 50

// Service owns the order side of the terminal: history, post-placement
// bookkeeping (journal row, kafka event, receipt printing) and reprints.
type Service struct {
	backend    Backend
	journal    Journal
	publisher  Publisher
	renderer   Renderer
	printer    printer.Printer
	terminalID string
	backendPrn string
}

func NewService(backend Backend, journal Journal, publisher Publisher, renderer Renderer, prn printer.Printer, terminalID string) *Service {
	return &Service{
		backend:    backend,
		journal:    journal,
		publisher:  publisher,
		renderer:   renderer,
		printer:    prn,
		terminalID: terminalID,
	}
}

// SetBackendPrinter routes print jobs through the backend's print endpoint
// in addition to the local spool, for venues with networked printers.
func (s *Service) SetBackendPrinter(printerName string) {
	s.backendPrn = printerName
}

// History lists placed orders from the backend, falling back to the local
// journal when the backend is unreachable.
func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.backend.ListOrders(ctx)
	if err == nil {
		return orders, nil
	}

	if s.journal != nil {
		if local, journalErr := s.journal.ListRecent(historyFallbackLimit); journalErr == nil && len(local) > 0 {
			log.Printf("Backend order history unavailable, serving local journal: %v", err)
			return local, nil
		}
	}
	return nil, err
}

// RecordPlaced runs the post-placement side effects. None of them can fail
// the placement itself: the order already exists server-side.
func (s *Service) RecordPlaced(ctx context.Context, placed domain.Order) {
	receipt := ""
	if s.renderer != nil {
		var err error
		receipt, err = s.renderer.Render(&placed, printer.PrintTypeReceipt)
		if err != nil {
			log.Printf("Failed to render receipt for order %d: %v", placed.ID, err)
		}
	}

	if s.journal != nil {
		if err := s.journal.SaveOrder(&placed, receipt); err != nil {
			log.Printf("Failed to journal order %d: %v", placed.ID, err)
		}
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:        "order_placed",
			OrderID:     placed.ID,
			TerminalID:  s.terminalID,
			OrderType:   placed.OrderType,
			TableNumber: placed.TableNumber,
			TotalAmount: placed.TotalAmount,
			Timestamp:   time.Now(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			log.Printf("Failed to publish order event for %d: %v", placed.ID, err)
		}
	}

	if s.printer != nil && receipt != "" {
		if _, err := s.printer.Print(receipt); err != nil {
			log.Printf("Failed to print receipt for order %d: %v", placed.ID, err)
		}
	}
	if s.printer != nil && s.renderer != nil {
		if ticket, err := s.renderer.Render(&placed, printer.PrintTypeKitchen); err == nil {
			if _, err := s.printer.Print(ticket); err != nil {
				log.Printf("Failed to print kitchen ticket for order %d: %v", placed.ID, err)
			}
		}
	}
}

// Print renders and prints an order from history. Receipts already rendered
// at placement time reprint from the journal without a backend round trip.
func (s *Service) Print(ctx context.Context, orderID int, printType string) (domain.PrintResult, error) {
	if s.backendPrn != "" {
		result, err := s.backend.PrintOrder(ctx, orderID, printType, s.backendPrn)
		if err == nil && result != nil {
			return *result, nil
		}
		log.Printf("Backend print for order %d failed, falling back to spool: %v", orderID, err)
	}

	if printType == printer.PrintTypeReceipt && s.journal != nil {
		if receipt, err := s.journal.GetReceipt(orderID); err == nil && receipt != "" {
			return s.printer.Print(receipt)
		}
	}

	orders, err := s.History(ctx)
	if err != nil {
		return domain.PrintResult{}, err
	}

	for idx := range orders {
		if orders[idx].ID == orderID {
			doc, err := s.renderer.Render(&orders[idx], printType)
			if err != nil {
				return domain.PrintResult{}, err
			}
			return s.printer.Print(doc)
		}
	}
	return domain.PrintResult{}, ErrUnknownOrder
}
