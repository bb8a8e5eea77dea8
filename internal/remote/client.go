package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"prince-pos/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies bearer tokens for authenticated requests. Refresh is
// called at most once per request, after a 401; Clear is called when the
// refreshed token is rejected too.
type TokenSource interface {
	Access(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Client talks to the restaurant backend's REST API.
type Client struct {
	baseURL string
	client  HTTPClient
	tokens  TokenSource
}

func NewClient(baseURL string, client HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: baseURL, client: client}
}

func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do performs an authenticated request, retrying exactly once through a token
// refresh when the backend answers 401.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	token := ""
	if c.tokens != nil {
		var err error
		token, err = c.tokens.Access(ctx)
		if err != nil {
			return err
		}
	}

	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		resp.Body.Close()

		refreshed, err := c.tokens.Refresh(ctx)
		if err != nil {
			_ = c.tokens.Clear(ctx)
			return ErrAuthExpired
		}

		resp, err = c.send(ctx, method, path, body, refreshed)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			_ = c.tokens.Clear(ctx)
			return ErrAuthExpired
		}
	}

	return decodeResponse(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, token string) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	return resp, nil
}

// doPublic performs an unauthenticated request (login, signup, token refresh).
func (c *Client) doPublic(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body, "")
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: normalizeErrorBody(payload)}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// --- cart ---

type UpdateItemResult struct {
	Cart *domain.Cart     `json:"cart"`
	Item *domain.CartItem `json:"item"`
}

type cartEnvelope struct {
	Cart *domain.Cart `json:"cart"`
}

func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodGet, "/cart/", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddItem(ctx context.Context, dishID, quantity int, note string) (*domain.Cart, error) {
	body := map[string]interface{}{"item": dishID, "quantity": quantity}
	if note != "" {
		body["note"] = note
	}
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPost, "/cart/add/", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID, quantity int, note string) (*UpdateItemResult, error) {
	body := map[string]interface{}{"quantity": quantity, "note": note}
	var result UpdateItemResult
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/cart/item/%d/", itemID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RemoveItem(ctx context.Context, itemID int) (*domain.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/item/%d/", itemID), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

func (c *Client) UpdateCart(ctx context.Context, orderType, tableNumber string) (*domain.Cart, error) {
	body := map[string]string{"order_type": orderType, "table_number": tableNumber}
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPatch, "/cart/", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/", nil, nil)
}

func (c *Client) AddExtra(ctx context.Context, itemID int, extra domain.Extra) (*domain.Cart, error) {
	body := map[string]interface{}{"extra": extra.ID, "quantity": 1}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/cart/item/%d/extras/", itemID), body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

func (c *Client) RemoveExtra(ctx context.Context, itemID, extraID int) (*domain.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/item/%d/extras/%d/", itemID, extraID), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// --- orders ---

type PlaceOrderResult struct {
	Order        *domain.Order        `json:"order"`
	Message      string               `json:"message"`
	PrintResults []domain.PrintResult `json:"print_results,omitempty"`
}

func (c *Client) PlaceOrder(ctx context.Context, orderType, tableNumber string) (*PlaceOrderResult, error) {
	body := map[string]string{"order_type": orderType}
	if tableNumber != "" {
		body["table_number"] = tableNumber
	}
	var result PlaceOrderResult
	if err := c.do(ctx, http.MethodPost, "/order/", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) PrintOrder(ctx context.Context, orderID int, printType, printerName string) (*domain.PrintResult, error) {
	body := map[string]string{"print_type": printType, "printer_name": printerName}
	var result domain.PrintResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/print/", orderID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- catalog ---

// rawDish is the backend's wire shape before normalization; price can arrive
// as a JSON string or number depending on the backend's serializer.
type rawDish struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    int             `json:"category"`
	Image       string          `json:"image"`
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	var raw []rawDish
	if err := c.do(ctx, http.MethodGet, "/dishes/", nil, &raw); err != nil {
		return nil, err
	}

	dishes := make([]domain.Dish, 0, len(raw))
	for _, item := range raw {
		dishes = append(dishes, domain.Dish{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       parsePrice(item.Price),
			CategoryID:  item.Category,
			ImageURL:    item.Image,
		})
	}
	return dishes, nil
}

func parsePrice(raw json.RawMessage) float64 {
	var number float64
	if json.Unmarshal(raw, &number) == nil {
		return number
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		fmt.Sscanf(text, "%f", &number)
	}
	return number
}

// --- auth ---

func (c *Client) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	body := map[string]string{"username": username, "password": password}
	var pair domain.TokenPair
	if err := c.doPublic(ctx, http.MethodPost, "/login/", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Signup(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	body := map[string]string{"username": username, "password": password}
	var pair domain.TokenPair
	if err := c.doPublic(ctx, http.MethodPost, "/signup/", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) RefreshToken(ctx context.Context, refresh string) (*domain.TokenPair, error) {
	body := map[string]string{"refresh": refresh}
	var pair domain.TokenPair
	if err := c.doPublic(ctx, http.MethodPost, "/token/refresh/", body, &pair); err != nil {
		return nil, err
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return &pair, nil
}

func (c *Client) Logout(ctx context.Context, refresh string) error {
	body := map[string]string{"refresh": refresh}
	return c.do(ctx, http.MethodPost, "/logout/", body, nil)
}
