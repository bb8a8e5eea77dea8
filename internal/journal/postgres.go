package journal

import (
	"database/sql"
	"encoding/json"
	"errors"

	"prince-pos/internal/domain"
)

var ErrNotFound = errors.New("order not found in journal")

// PostgresJournal is the terminal's local record of placed orders, kept for
// reprints and end-of-day reconciliation independent of the backend.
type PostgresJournal struct {
	DB *sql.DB
}

func NewPostgresJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{DB: db}
}

func (j *PostgresJournal) SaveOrder(order *domain.Order, receipt string) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	_, err = j.DB.Exec(`
		INSERT INTO placed_orders (order_id, ordered_at, order_type, table_number, total_amount, status, items, receipt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_id) DO UPDATE
		SET status = EXCLUDED.status, receipt = EXCLUDED.receipt
	`, order.ID, order.OrderedAt, order.OrderType, order.TableNumber, order.TotalAmount, order.Status, items, receipt)
	return err
}

func (j *PostgresJournal) ListRecent(limit int) ([]domain.Order, error) {
	rows, err := j.DB.Query(`
		SELECT order_id, ordered_at, order_type, table_number, total_amount, status, items
		FROM placed_orders
		ORDER BY ordered_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var items []byte
		if err := rows.Scan(&order.ID, &order.OrderedAt, &order.OrderType, &order.TableNumber,
			&order.TotalAmount, &order.Status, &items); err != nil {
			continue
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			order.Items = nil
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (j *PostgresJournal) GetReceipt(orderID int) (string, error) {
	var receipt string
	err := j.DB.QueryRow(`
		SELECT receipt FROM placed_orders WHERE order_id = $1
	`, orderID).Scan(&receipt)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return receipt, nil
}
