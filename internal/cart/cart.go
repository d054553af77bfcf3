// Package cart implements the mutation rules shared by every place a
// cart lives: the server-side document per user and the client-local
// scoped carts. All mutations recompute the total from scratch.
package cart

import (
	"errors"

	"github.com/villagecraft/storefront/internal/models"
)

var ErrItemNotFound = errors.New("item not found in cart")

// Add merges quantity into an existing line for the same product or
// appends a new line with a price/name/image snapshot of the product.
// A quantity below 1 is treated as 1.
func Add(c *models.Cart, p models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += uint(quantity)
			Recompute(c)
			return
		}
	}

	c.Items = append(c.Items, models.CartItem{
		ProductID: p.ID,
		Quantity:  uint(quantity),
		Price:     p.Price,
		Name:      p.Name,
		Image:     p.Image,
	})
	Recompute(c)
}

// SetQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line entirely; a line is never stored at zero.
func SetQuantity(c *models.Cart, productID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = uint(quantity)
		}
		Recompute(c)
		return nil
	}
	return ErrItemNotFound
}

// Remove drops the line for productID. Removing an absent product is a
// no-op, not an error.
func Remove(c *models.Cart, productID string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	Recompute(c)
}

// Clear empties the cart.
func Clear(c *models.Cart) {
	c.Items = nil
	c.Total = 0
}

// Recompute derives the total from the current lines. Totals are never
// patched incrementally.
func Recompute(c *models.Cart) {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	c.Total = total
}

// Sanitize drops malformed lines (missing product id, quantity below 1,
// negative price) and recomputes the total. A corrupted persisted cart
// degrades to its valid lines instead of failing; run it after every
// load from any persistence location.
func Sanitize(c *models.Cart) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID == "" || it.Quantity < 1 || it.Price < 0 {
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	Recompute(c)
}

// Quantity reports the total number of units across all lines.
func Quantity(c *models.Cart) uint {
	var n uint
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
