package httpapi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "prince-pos/internal/api/http"
	"prince-pos/internal/cart"
	"prince-pos/internal/domain"
	"prince-pos/internal/mocks"
	"prince-pos/internal/remote"
)

type handlerMocks struct {
	cart    *mocks.CartServiceInterface
	catalog *mocks.CatalogServiceInterface
	orders  *mocks.OrderServiceInterface
	auth    *mocks.Session
}

func setupRouter(t *testing.T) (*mux.Router, handlerMocks) {
	t.Helper()
	m := handlerMocks{
		cart:    mocks.NewCartServiceInterface(t),
		catalog: mocks.NewCatalogServiceInterface(t),
		orders:  mocks.NewOrderServiceInterface(t),
		auth:    mocks.NewSession(t),
	}
	handler := httpapi.NewHandler(m.cart, m.catalog, m.orders, m.auth)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router, m
}

func TestGetCart(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("Snapshot").Return(cart.Snapshot{
		Cart: &domain.Cart{ID: 7, TotalAmount: 200},
		Busy: map[int]bool{1: true},
	}).Once()

	req := httptest.NewRequest("GET", "/api/cart", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_amount":200`)
}

func TestUpdateItem_Route(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("UpdateItem", mock.Anything, 3, 2, "less ice").Return(nil).Once()
	m.cart.On("Snapshot").Return(cart.Snapshot{}).Once()

	req := httptest.NewRequest("PATCH", "/api/cart/items/3", bytes.NewBufferString(`{"quantity":2,"note":"less ice"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestPlaceOrder_ValidationMapsTo422(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("PlaceOrder", mock.Anything, domain.OrderTypeDineIn, "").
		Return(nil, &cart.ValidationError{Message: "table number is required for this order type"}).Once()

	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(`{"order_type":"dine_in"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "table number is required")
}

func TestPlaceOrder_Success(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("PlaceOrder", mock.Anything, domain.OrderTypeTakeaway, "").
		Return(&domain.Order{ID: 42}, nil).Once()
	m.cart.On("Snapshot").Return(cart.Snapshot{}).Once()

	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(`{"order_type":"takeaway"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var payload struct {
		Order domain.Order `json:"order"`
	}
	json.NewDecoder(recorder.Body).Decode(&payload)
	assert.Equal(t, 42, payload.Order.ID)
}

func TestUpdateCartDetails_Accepted(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("SetOrderDetails", domain.OrderTypeTable, "8").Once()
	m.cart.On("Snapshot").Return(cart.Snapshot{
		PendingOrderType: domain.OrderTypeTable,
		PendingTable:     "8",
	}).Once()

	req := httptest.NewRequest("PATCH", "/api/cart", bytes.NewBufferString(`{"order_type":"table","table_number":"8"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"pending_table":"8"`)
}

func TestAuthExpired_MapsTo401(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("Fetch", mock.Anything).Return(remote.ErrAuthExpired).Once()

	req := httptest.NewRequest("GET", "/api/cart?refresh=true", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestBackendError_StatusPassthrough(t *testing.T) {
	router, m := setupRouter(t)

	m.cart.On("AddItem", mock.Anything, 5, 1, "").
		Return(&remote.APIError{Status: http.StatusConflict, Message: "cart is locked"}).Once()

	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewBufferString(`{"dish_id":5,"quantity":1}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cart is locked")
}

func TestInvalidJSON(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewBufferString("bad json"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListOrders(t *testing.T) {
	router, m := setupRouter(t)

	m.orders.On("History", mock.Anything).
		Return([]domain.Order{{ID: 1}, {ID: 2}}, nil).Once()

	req := httptest.NewRequest("GET", "/api/orders", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var orders []domain.Order
	json.NewDecoder(recorder.Body).Decode(&orders)
	assert.Len(t, orders, 2)
}

func TestPrintOrder_Route(t *testing.T) {
	router, m := setupRouter(t)

	m.orders.On("Print", mock.Anything, 42, "kitchen").
		Return(domain.PrintResult{Status: "spooled"}, nil).Once()

	req := httptest.NewRequest("POST", "/api/orders/42/print", bytes.NewBufferString(`{"print_type":"kitchen"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "spooled")
}

func TestListDishes_StaleStillServes(t *testing.T) {
	router, m := setupRouter(t)

	m.catalog.On("Dishes", mock.Anything).
		Return([]domain.Dish{{ID: 1, Name: "Latte"}}, errors.New("backend down")).Once()

	req := httptest.NewRequest("GET", "/api/catalog/dishes", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Latte")
}

func TestLoginAndSession(t *testing.T) {
	router, m := setupRouter(t)

	m.auth.On("Login", mock.Anything, "cashier", "secret").Return(nil).Once()
	m.auth.On("Verify", mock.Anything).Return(true).Once()

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(`{"username":"cashier","password":"secret"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	req = httptest.NewRequest("GET", "/api/auth/session", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Contains(t, recorder.Body.String(), `"authenticated":true`)
}
