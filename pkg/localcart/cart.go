// Package localcart is the client-side cart: one cart object that
// serves both the storefront pages and the checkout flow, persisting
// through a pluggable Storage so the same mutation rules apply no
// matter where the bytes end up.
package localcart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/villagecraft/storefront/internal/cart"
	"github.com/villagecraft/storefront/internal/models"
)

var (
	// ErrLoginRequired is returned when a mutation needs a signed-in
	// user. The stored cart is left untouched.
	ErrLoginRequired = errors.New("localcart: login required")

	// ErrEmptyCart is returned by Checkout when there is nothing to
	// order.
	ErrEmptyCart = errors.New("localcart: cart is empty")
)

// Identity reports who the cart belongs to right now. Implementations
// typically wrap the session state of an API client.
type Identity interface {
	// CurrentUserKey returns a stable key for the signed-in user
	// (the account email) and whether anyone is signed in at all.
	CurrentUserKey() (string, bool)
}

// OrderPlacer submits a finished cart as an order.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, cart *models.Cart) error
}

const (
	keyPrefix  = "cart:"
	guestScope = "guest"
)

// Cart is the client cart. Each user gets an isolated scope in
// Storage, and an anonymous visitor gets the guest scope; scopes are
// never merged into one another.
type Cart struct {
	Storage  Storage
	Identity Identity
}

func (lc *Cart) scopeKey() (string, bool) {
	if lc.Identity != nil {
		if userKey, ok := lc.Identity.CurrentUserKey(); ok {
			return keyPrefix + userKey, true
		}
	}
	return keyPrefix + guestScope, false
}

func (lc *Cart) load() (*models.Cart, string, error) {
	key, _ := lc.scopeKey()
	data, ok, err := lc.Storage.Get(key)
	if err != nil {
		return nil, key, err
	}
	c := &models.Cart{}
	if ok {
		if err := json.Unmarshal(data, c); err != nil {
			// unreadable carts start over empty
			c = &models.Cart{}
		}
	}
	cart.Sanitize(c)
	return c, key, nil
}

func (lc *Cart) save(key string, c *models.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return lc.Storage.Set(key, data)
}

// Snapshot returns the cart for the current scope. Missing or
// malformed entries come back as an empty cart.
func (lc *Cart) Snapshot() (*models.Cart, error) {
	c, _, err := lc.load()
	return c, err
}

// Count returns the total number of units across all lines, for the
// cart badge.
func (lc *Cart) Count() (uint, error) {
	c, _, err := lc.load()
	if err != nil {
		return 0, err
	}
	return cart.Quantity(c), nil
}

// Add puts quantity units of the product into the cart, merging with
// an existing line for the same product. Adding requires a signed-in
// user; anonymous visitors get ErrLoginRequired and no state change.
func (lc *Cart) Add(p models.Product, quantity int) error {
	c, key, err := lc.load()
	if err != nil {
		return err
	}
	if _, signedIn := lc.scopeKey(); !signedIn {
		return ErrLoginRequired
	}
	cart.Add(c, p, quantity)
	return lc.save(key, c)
}

// SetQuantity changes the quantity of an existing line; zero or less
// removes it. A product that is not in the cart is an error.
func (lc *Cart) SetQuantity(productID string, quantity int) error {
	c, key, err := lc.load()
	if err != nil {
		return err
	}
	if err := cart.SetQuantity(c, productID, quantity); err != nil {
		return err
	}
	return lc.save(key, c)
}

// Remove deletes the line for productID. Removing a product that is
// not in the cart succeeds without changing anything.
func (lc *Cart) Remove(productID string) error {
	c, key, err := lc.load()
	if err != nil {
		return err
	}
	cart.Remove(c, productID)
	return lc.save(key, c)
}

// Clear empties the current scope.
func (lc *Cart) Clear() error {
	key, _ := lc.scopeKey()
	return lc.Storage.Delete(key)
}

// HandleLogin is called right after a successful sign-in. Whatever an
// anonymous visitor had gathered is discarded; the user's own scope
// takes over untouched.
func (lc *Cart) HandleLogin() error {
	return lc.Storage.Delete(keyPrefix + guestScope)
}

// HandleLogout clears the signed-in user's scope. Call it before the
// identity is dropped, while the user scope is still resolvable.
func (lc *Cart) HandleLogout() error {
	key, signedIn := lc.scopeKey()
	if !signedIn {
		return nil
	}
	return lc.Storage.Delete(key)
}

// Checkout submits the current cart through the placer and clears the
// scope on success. An empty cart or an anonymous visitor is refused
// up front. The clear happens after PlaceOrder returns, so a crash in
// between leaves the already-ordered items in the cart.
func (lc *Cart) Checkout(ctx context.Context, placer OrderPlacer) error {
	c, key, err := lc.load()
	if err != nil {
		return err
	}
	if _, signedIn := lc.scopeKey(); !signedIn {
		return ErrLoginRequired
	}
	if len(c.Items) == 0 {
		return ErrEmptyCart
	}
	if err := placer.PlaceOrder(ctx, c); err != nil {
		return err
	}
	return lc.Storage.Delete(key)
}
