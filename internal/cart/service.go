package cart

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"prince-pos/internal/domain"
)

// ValidationError is a local precondition failure; it never reaches the
// network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Snapshot is the read model the rendering layer binds to.
type Snapshot struct {
	Cart             *domain.Cart `json:"cart"`
	Busy             map[int]bool `json:"busy"`
	PendingOrderType string       `json:"pending_order_type"`
	PendingTable     string       `json:"pending_table"`
	LastError        string       `json:"last_error,omitempty"`
	LastMessage      string       `json:"last_message,omitempty"`
}

// Service mirrors the remote cart. Mutations to existing items apply
// optimistically before the network round trip; a failed round trip recovers
// by refetching the server's truth rather than computing an inverse
// mutation. Overlapping responses for the same item are ordered by a
// per-item sequence number; a stale response is discarded.
type Service struct {
	backend       Backend
	debounce      *Debouncer
	onOrderPlaced func(domain.Order)

	mu          sync.Mutex
	current     *domain.Cart
	busy        map[int]bool
	seq         map[int]uint64
	pendingType string
	pendingTbl  string
	lastError   string
	lastMessage string
}

func NewService(backend Backend, debounceDelay time.Duration) *Service {
	if debounceDelay <= 0 {
		debounceDelay = 800 * time.Millisecond
	}
	return &Service{
		backend:  backend,
		debounce: NewDebouncer(debounceDelay),
		busy:     make(map[int]bool),
		seq:      make(map[int]uint64),
	}
}

// SetOrderPlacedHook registers a callback invoked after a successful order
// placement, so the caller can close any cart UI and record the order.
func (s *Service) SetOrderPlacedHook(fn func(domain.Order)) {
	s.onOrderPlaced = fn
}

// Fetch replaces the local cart wholesale with the server snapshot. It is
// also the canonical recovery path after a failed optimistic mutation.
func (s *Service) Fetch(ctx context.Context) error {
	fetched, err := s.backend.GetCart(ctx)
	if err != nil {
		s.setError(err)
		return err
	}
	s.adopt(fetched)
	return nil
}

// AddItem has no optimistic step: the item does not exist locally until the
// server creates it and returns the recomputed cart.
func (s *Service) AddItem(ctx context.Context, dishID, quantity int, note string) error {
	if quantity < 1 {
		return &ValidationError{Message: "quantity must be at least 1"}
	}

	updated, err := s.backend.AddItem(ctx, dishID, quantity, note)
	if err != nil {
		s.setError(err)
		return err
	}
	s.adopt(updated)
	s.setMessage("Item added to cart")
	return nil
}

// UpdateItem changes an item's quantity and note. A quantity at or below
// zero is translated into a removal, never sent as an update.
func (s *Service) UpdateItem(ctx context.Context, itemID, quantity int, note string) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	if s.current == nil || s.current.Item(itemID) == nil {
		s.mu.Unlock()
		return &ValidationError{Message: fmt.Sprintf("item %d is not in the cart", itemID)}
	}

	item := s.current.Item(itemID)
	item.Quantity = quantity
	item.Note = note
	s.current.RecomputeTotals()

	s.busy[itemID] = true
	s.seq[itemID]++
	mySeq := s.seq[itemID]
	s.mu.Unlock()

	result, err := s.backend.UpdateItem(ctx, itemID, quantity, note)

	if s.settle(itemID, mySeq) {
		return nil
	}
	if err != nil {
		s.setError(err)
		return s.recover(ctx, err)
	}

	s.mu.Lock()
	if result.Cart != nil {
		s.current = result.Cart
	} else if result.Item != nil && s.current != nil {
		if existing := s.current.Item(itemID); existing != nil {
			*existing = *result.Item
		}
		s.current.RecomputeTotals()
	}
	s.mu.Unlock()
	return nil
}

// RemoveItem deletes the item locally first, then confirms with the server.
func (s *Service) RemoveItem(ctx context.Context, itemID int) error {
	s.mu.Lock()
	if s.current == nil || s.current.Item(itemID) == nil {
		s.mu.Unlock()
		return &ValidationError{Message: fmt.Sprintf("item %d is not in the cart", itemID)}
	}

	kept := s.current.Items[:0]
	for _, item := range s.current.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.current.Items = kept
	s.current.RecomputeTotals()

	s.busy[itemID] = true
	s.seq[itemID]++
	mySeq := s.seq[itemID]
	s.mu.Unlock()

	updated, err := s.backend.RemoveItem(ctx, itemID)

	if s.settle(itemID, mySeq) {
		return nil
	}
	if err != nil {
		s.setError(err)
		return s.recover(ctx, err)
	}
	if updated != nil {
		s.adopt(updated)
	}
	return nil
}

// ToggleExtra flips the selection of an extra on an item: present means
// remove, absent means add with quantity 1, both applied optimistically.
func (s *Service) ToggleExtra(ctx context.Context, itemID int, extra domain.Extra) error {
	s.mu.Lock()
	item := (*domain.CartItem)(nil)
	if s.current != nil {
		item = s.current.Item(itemID)
	}
	if item == nil {
		s.mu.Unlock()
		return &ValidationError{Message: fmt.Sprintf("item %d is not in the cart", itemID)}
	}

	selected := false
	for _, existing := range item.Extras {
		if existing.ID == extra.ID {
			selected = true
			break
		}
	}

	if selected {
		kept := item.Extras[:0]
		for _, existing := range item.Extras {
			if existing.ID != extra.ID {
				kept = append(kept, existing)
			}
		}
		item.Extras = kept
	} else {
		extra.Quantity = 1
		item.Extras = append(item.Extras, extra)
	}
	s.current.RecomputeTotals()

	s.busy[itemID] = true
	s.seq[itemID]++
	mySeq := s.seq[itemID]
	s.mu.Unlock()

	var updated *domain.Cart
	var err error
	if selected {
		updated, err = s.backend.RemoveExtra(ctx, itemID, extra.ID)
	} else {
		updated, err = s.backend.AddExtra(ctx, itemID, extra)
	}

	if s.settle(itemID, mySeq) {
		return nil
	}
	if err != nil {
		s.setError(err)
		return s.recover(ctx, err)
	}
	if updated != nil {
		s.adopt(updated)
	}
	return nil
}

// SetOrderDetails records cart-level fields and schedules the PATCH behind a
// trailing debounce; only the last call within the window reaches the
// network. The pending values are readable immediately via Snapshot.
func (s *Service) SetOrderDetails(orderType, tableNumber string) {
	s.mu.Lock()
	s.pendingType = orderType
	s.pendingTbl = tableNumber
	s.mu.Unlock()

	s.debounce.Do(func() {
		s.mu.Lock()
		pendingType := s.pendingType
		pendingTable := s.pendingTbl
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		updated, err := s.backend.UpdateCart(ctx, pendingType, pendingTable)
		if err != nil {
			log.Printf("Failed to update cart details: %v", err)
			s.setError(err)
			return
		}
		s.adopt(updated)
	})
}

// PlaceOrder validates locally, then consumes the server-side cart into an
// order. Success empties the local cart; failure leaves it untouched.
func (s *Service) PlaceOrder(ctx context.Context, orderType, tableNumber string) (*domain.Order, error) {
	if domain.OrderTypeNeedsTable(orderType) && tableNumber == "" {
		return nil, &ValidationError{Message: "table number is required for this order type"}
	}

	s.mu.Lock()
	empty := s.current == nil || len(s.current.Items) == 0
	s.mu.Unlock()
	if empty {
		return nil, &ValidationError{Message: "cart is empty"}
	}

	result, err := s.backend.PlaceOrder(ctx, orderType, tableNumber)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	s.mu.Lock()
	s.current = nil
	s.pendingType = ""
	s.pendingTbl = ""
	s.mu.Unlock()
	s.debounce.Stop()

	message := result.Message
	if message == "" {
		message = "Order placed"
	}
	s.setMessage(message)

	if result.Order != nil && s.onOrderPlaced != nil {
		s.onOrderPlaced(*result.Order)
	}
	return result.Order, nil
}

// Clear empties the server-side cart and zeroes the local mirror.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.backend.ClearCart(ctx); err != nil {
		s.setError(err)
		return err
	}
	s.adopt(&domain.Cart{Items: []domain.CartItem{}})
	s.setMessage("Cart cleared")
	return nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Busy:             make(map[int]bool, len(s.busy)),
		PendingOrderType: s.pendingType,
		PendingTable:     s.pendingTbl,
		LastError:        s.lastError,
		LastMessage:      s.lastMessage,
	}
	for id, busy := range s.busy {
		if busy {
			snap.Busy[id] = true
		}
	}
	if s.current != nil {
		clone := *s.current
		clone.Items = make([]domain.CartItem, len(s.current.Items))
		copy(clone.Items, s.current.Items)
		for idx := range clone.Items {
			if src := s.current.Items[idx].Extras; src != nil {
				clone.Items[idx].Extras = make([]domain.Extra, len(src))
				copy(clone.Items[idx].Extras, src)
			}
		}
		snap.Cart = &clone
	}
	return snap
}

func (s *Service) ClearMessages() {
	s.mu.Lock()
	s.lastError = ""
	s.lastMessage = ""
	s.mu.Unlock()
}

// settle clears the busy flag when this mutation is still the newest one for
// the item, and reports whether the response is stale and must be dropped.
func (s *Service) settle(itemID int, mySeq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[itemID] != mySeq {
		return true
	}
	delete(s.busy, itemID)
	return false
}

// recover discards the optimistic state by re-reading the server's truth.
// The original failure is what the caller sees.
func (s *Service) recover(ctx context.Context, cause error) error {
	fetched, err := s.backend.GetCart(ctx)
	if err != nil {
		log.Printf("Failed to refetch cart after error: %v", err)
		return cause
	}
	s.adopt(fetched)
	return cause
}

// adopt replaces the mirror with a server snapshot. The server total is
// trusted when present; a zero total with items falls back to a local sum.
func (s *Service) adopt(fetched *domain.Cart) {
	if fetched != nil && fetched.TotalAmount == 0 && len(fetched.Items) > 0 {
		fetched.RecomputeTotals()
	}
	s.mu.Lock()
	s.current = fetched
	s.mu.Unlock()
}

// Banners are transient: they clear on their own unless something newer
// replaced them in the meantime.
const messageTTL = 4 * time.Second

func (s *Service) setError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
	s.expireMessages()
}

func (s *Service) setMessage(message string) {
	s.mu.Lock()
	s.lastMessage = message
	s.mu.Unlock()
	s.expireMessages()
}

func (s *Service) expireMessages() {
	s.mu.Lock()
	lastError, lastMessage := s.lastError, s.lastMessage
	s.mu.Unlock()

	time.AfterFunc(messageTTL, func() {
		s.mu.Lock()
		if s.lastError == lastError {
			s.lastError = ""
		}
		if s.lastMessage == lastMessage {
			s.lastMessage = ""
		}
		s.mu.Unlock()
	})
}
