package domain

import "time"

const (
	OrderTypeDelivery = "delivery"
	OrderTypeParcel   = "parcel"
	OrderTypeTable    = "table"
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
)

// OrderTypeNeedsTable reports whether placing an order of the given type
// requires a non-empty table number.
func OrderTypeNeedsTable(orderType string) bool {
	return orderType == OrderTypeTable || orderType == OrderTypeDineIn
}

type Extra struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CartItem struct {
	ID          int     `json:"id"`
	DishID      int     `json:"dish_id"`
	DishName    string  `json:"dish_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Note        string  `json:"note,omitempty"`
	Extras      []Extra `json:"extras,omitempty"`
	TotalAmount float64 `json:"total_amount"`
}

// Recompute sets TotalAmount from the unit price, quantity and extras. The
// server is authoritative; this is only the optimistic local estimate.
func (i *CartItem) Recompute() {
	total := i.Price * float64(i.Quantity)
	for _, extra := range i.Extras {
		qty := extra.Quantity
		if qty == 0 {
			qty = 1
		}
		total += extra.Price * float64(qty) * float64(i.Quantity)
	}
	i.TotalAmount = total
}

type Cart struct {
	ID          int        `json:"id"`
	Items       []CartItem `json:"items"`
	OrderType   string     `json:"order_type"`
	TableNumber string     `json:"table_number,omitempty"`
	TotalAmount float64    `json:"total_amount"`
}

// RecomputeTotals recomputes every item total and the cart total locally.
func (c *Cart) RecomputeTotals() {
	var total float64
	for idx := range c.Items {
		c.Items[idx].Recompute()
		total += c.Items[idx].TotalAmount
	}
	c.TotalAmount = total
}

// Item returns a pointer to the item with the given id, or nil.
func (c *Cart) Item(itemID int) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Dish struct {
	ID           int     `json:"dish_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	ImageURL     string  `json:"image_url"`
}

type OrderItem struct {
	DishID      int     `json:"dish_id"`
	DishName    string  `json:"dish_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Note        string  `json:"note,omitempty"`
	Extras      []Extra `json:"extras,omitempty"`
	TotalAmount float64 `json:"total_amount"`
}

type Order struct {
	ID          int         `json:"id"`
	OrderedAt   time.Time   `json:"ordered_at"`
	OrderType   string      `json:"order_type"`
	TableNumber string      `json:"table_number,omitempty"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status,omitempty"`
	Items       []OrderItem `json:"items"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     int       `json:"order_id"`
	TerminalID  string    `json:"terminal_id"`
	OrderType   string    `json:"order_type"`
	TableNumber string    `json:"table_number,omitempty"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

type PrintResult struct {
	Printer string `json:"printer"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}
