// Package apiclient is a Go client for the storefront HTTP API. It
// keeps the session cookie in a jar, so one Client behaves like one
// signed-in browser.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/villagecraft/storefront/internal/models"
)

// ErrNotAuthenticated is returned when the server rejects a request
// for lack of a live session.
var ErrNotAuthenticated = errors.New("apiclient: not authenticated")

// APIError carries a success=false answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu   sync.Mutex
	user *models.SessionUser
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// CurrentUserKey reports the signed-in account email, making Client a
// localcart identity source.
func (c *Client) CurrentUserKey() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return "", false
	}
	return c.user.Email, true
}

type authEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    *models.SessionUser `json:"user"`
}

type cartEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Cart    *models.Cart `json:"cart"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Register creates an account. Role must be one of the fixed role
// values (models.RoleArtisan, models.RoleBuyer); the server rejects
// anything else. Registration leaves the caller signed out; follow
// with Login.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*models.SessionUser, error) {
	var env authEnvelope
	status, err := c.doJSON(ctx, http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, &env)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Message}
	}
	return env.User, nil
}

// Login opens a session; the cookie lands in the jar and the identity
// is remembered for CurrentUserKey.
func (c *Client) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	var env authEnvelope
	status, err := c.doJSON(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &env)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Message}
	}
	c.mu.Lock()
	c.user = env.User
	c.mu.Unlock()
	return env.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/logout", nil, nil)
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
	return err
}

// CheckSession asks the server whether the jarred cookie still opens
// a session and refreshes the remembered identity accordingly.
func (c *Client) CheckSession(ctx context.Context) (*models.SessionUser, error) {
	var env authEnvelope
	_, err := c.doJSON(ctx, http.MethodGet, "/api/check-session", nil, &env)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !env.Success {
		c.user = nil
		return nil, ErrNotAuthenticated
	}
	c.user = env.User
	return env.User, nil
}

func (c *Client) cartCall(ctx context.Context, method, path string, body interface{}) (*models.Cart, error) {
	var env cartEnvelope
	status, err := c.doJSON(ctx, method, path, body, &env)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, ErrNotAuthenticated
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Message}
	}
	return env.Cart, nil
}

func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodGet, "/api/cart", nil)
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodPost, "/api/cart/add", map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
	})
}

func (c *Client) UpdateCart(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodPut, "/api/cart/update", map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
	})
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, "/api/cart/remove", map[string]interface{}{
		"productId": productID,
	})
}

func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.cartCall(ctx, http.MethodDelete, "/api/cart/clear", nil)
	return err
}

// PlaceOrder mirrors a finished client cart to the server: the remote
// cart is cleared and rebuilt line by line, then cleared again once
// the order is through. Satisfies the localcart order placer.
func (c *Client) PlaceOrder(ctx context.Context, cart *models.Cart) error {
	if err := c.ClearCart(ctx); err != nil {
		return err
	}
	for _, item := range cart.Items {
		if _, err := c.AddToCart(ctx, item.ProductID, int(item.Quantity)); err != nil {
			return fmt.Errorf("mirror item %s: %w", item.ProductID, err)
		}
	}
	return c.ClearCart(ctx)
}

// Products fetches the whole catalog once; pages call it on load
// instead of polling.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	return c.productCall(ctx, "/api/products")
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return c.productCall(ctx, "/api/products/"+category)
}

func (c *Client) productCall(ctx context.Context, path string) ([]models.Product, error) {
	var env struct {
		Success  bool             `json:"success"`
		Message  string           `json:"message"`
		Products []models.Product `json:"products"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, path, nil, &env)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		msg := env.Message
		if msg == "" {
			msg = "failed to load products"
		}
		return nil, &APIError{StatusCode: status, Message: msg}
	}
	return env.Products, nil
}
