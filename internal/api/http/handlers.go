package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prince-pos/internal/cart"
	"prince-pos/internal/catalog"
	"prince-pos/internal/domain"
	"prince-pos/internal/order"
	"prince-pos/internal/remote"
)

// Session is the slice of the auth layer the local API needs; implemented
// by auth.Session.
type Session interface {
	Authenticated() bool
	Verify(ctx context.Context) bool
	Login(ctx context.Context, username, password string) error
	Signup(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// Handler serves the terminal's local API, which the rendering shell binds
// to. It is a thin translation layer over the services.
type Handler struct {
	Cart    cart.ServiceInterface
	Catalog catalog.ServiceInterface
	Orders  order.ServiceInterface
	Auth    Session
}

func NewHandler(cartSvc cart.ServiceInterface, catalogSvc catalog.ServiceInterface, orderSvc order.ServiceInterface, session Session) *Handler {
	return &Handler{Cart: cartSvc, Catalog: catalogSvc, Orders: orderSvc, Auth: session}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.updateCartDetails).Methods("PATCH")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.updateItem).Methods("PATCH")
	r.HandleFunc("/api/cart/items/{itemId}", h.removeItem).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{itemId}/extras", h.toggleExtra).Methods("POST")

	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}/print", h.printOrder).Methods("POST")

	r.HandleFunc("/api/catalog/dishes", h.listDishes).Methods("GET")
	r.HandleFunc("/api/catalog/categories", h.listCategories).Methods("GET")
	r.HandleFunc("/api/catalog/refresh", h.refreshCatalog).Methods("POST")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/auth/session", h.session).Methods("GET")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "posd"})
}

// writeError maps service errors onto HTTP statuses: local validation 422,
// expired auth 401, backend errors pass their status through.
func writeError(w http.ResponseWriter, err error) {
	var validation *cart.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": validation.Message})
		return
	}
	if errors.Is(err, remote.ErrAuthExpired) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	var api *remote.APIError
	if errors.As(err, &api) {
		writeJSON(w, api.Status, map[string]string{"error": api.Message})
		return
	}
	if errors.Is(err, order.ErrUnknownOrder) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// --- cart ---

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := h.Cart.Fetch(r.Context()); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.Cart.Snapshot())
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DishID   int    `json:"dish_id"`
		Quantity int    `json:"quantity"`
		Note     string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Cart.AddItem(r.Context(), payload.DishID, payload.Quantity, payload.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Cart.Snapshot())
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Quantity int    `json:"quantity"`
		Note     string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Cart.UpdateItem(r.Context(), itemID, payload.Quantity, payload.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Cart.Snapshot())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.Cart.RemoveItem(r.Context(), itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Cart.Snapshot())
}

func (h *Handler) toggleExtra(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var extra domain.Extra
	if err := json.NewDecoder(r.Body).Decode(&extra); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Cart.ToggleExtra(r.Context(), itemID, extra); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Cart.Snapshot())
}

func (h *Handler) updateCartDetails(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderType   string `json:"order_type"`
		TableNumber string `json:"table_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Debounced: the PATCH to the backend fires after the quiet window,
	// but the pending values show up in the snapshot immediately.
	h.Cart.SetOrderDetails(payload.OrderType, payload.TableNumber)
	writeJSON(w, http.StatusAccepted, h.Cart.Snapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Cart.Snapshot())
}

// --- orders ---

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.History(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderType   string `json:"order_type"`
		TableNumber string `json:"table_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	placed, err := h.Cart.PlaceOrder(r.Context(), payload.OrderType, payload.TableNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order": placed,
		"cart":  h.Cart.Snapshot(),
	})
}

func (h *Handler) printOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var payload struct {
		PrintType string `json:"print_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Orders.Print(r.Context(), orderID, payload.PrintType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- catalog ---

func (h *Handler) listDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Catalog.Dishes(r.Context())
	if err != nil && dishes == nil {
		writeError(w, err)
		return
	}
	// A stale snapshot with an error still renders; blanking the menu is
	// worse than showing yesterday's prices.
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories(r.Context())
	if err != nil && categories == nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// --- auth ---

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Auth.Login(r.Context(), payload.Username, payload.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Auth.Signup(r.Context(), payload.Username, payload.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"authenticated": h.Auth.Verify(r.Context()),
	})
}
