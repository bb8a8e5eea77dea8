package journal_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"prince-pos/internal/domain"
	"prince-pos/internal/journal"
)

func TestSaveOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := journal.NewPostgresJournal(db)

	placed := &domain.Order{
		ID:          42,
		OrderedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		OrderType:   domain.OrderTypeDineIn,
		TableNumber: "4",
		TotalAmount: 31.5,
		Status:      "pending",
		Items: []domain.OrderItem{
			{DishID: 1, DishName: "Latte", Quantity: 2, Price: 4.5, TotalAmount: 9},
		},
	}

	mock.ExpectExec("INSERT INTO placed_orders").
		WithArgs(42, placed.OrderedAt, domain.OrderTypeDineIn, "4", 31.5, "pending", sqlmock.AnyArg(), "<html>receipt</html>").
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, j.SaveOrder(placed, "<html>receipt</html>"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := journal.NewPostgresJournal(db)

	orderedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"order_id", "ordered_at", "order_type", "table_number", "total_amount", "status", "items"}).
		AddRow(42, orderedAt, "dine_in", "4", 31.5, "completed", []byte(`[{"dish_id":1,"dish_name":"Latte","quantity":2,"price":4.5,"total_amount":9}]`)).
		AddRow(41, orderedAt.Add(-time.Hour), "takeaway", "", 3.0, "completed", []byte(`[]`))

	mock.ExpectQuery("SELECT order_id, ordered_at").
		WithArgs(50).
		WillReturnRows(rows)

	orders, err := j.ListRecent(50)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, 42, orders[0].ID)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Latte", orders[0].Items[0].DishName)
}

func TestGetReceipt_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := journal.NewPostgresJournal(db)

	mock.ExpectQuery("SELECT receipt FROM placed_orders").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"receipt"}))

	_, err = j.GetReceipt(99)
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

func TestGetReceipt_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := journal.NewPostgresJournal(db)

	mock.ExpectQuery("SELECT receipt FROM placed_orders").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"receipt"}).AddRow("<html>receipt</html>"))

	receipt, err := j.GetReceipt(42)
	assert.NoError(t, err)
	assert.Equal(t, "<html>receipt</html>", receipt)
}
