package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	cartengine "github.com/villagecraft/storefront/internal/cart"
	"github.com/villagecraft/storefront/internal/cache"
	"github.com/villagecraft/storefront/internal/events"
	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/repo"
)

// casRetries bounds the reload-and-reapply loop for lost CAS races. Two
// interleaved requests for the same user settle on the first retry; the
// bound only guards against a pathological stream of conflicts.
const casRetries = 3

type CartService struct {
	Repo     repo.CartRepository
	Products repo.ProductRepository
	Cache    cache.CartCache
	Events   *events.Producer

	sfg singleflight.Group // collapses concurrent reads per user
}

// Get returns the user's cart, an empty one when none is stored yet.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		if s.Cache != nil {
			cart, err := s.Cache.Get(ctx, userID)
			if err == nil {
				cartengine.Sanitize(cart)
				return cart, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				logging.FromContext(ctx).Warn("cart cache get failed", "error", err)
			}
		}

		cart, err := s.Repo.Get(ctx, userID)
		if errors.Is(err, repo.ErrCartNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		cartengine.Sanitize(cart)

		if s.Cache != nil {
			if err := s.Cache.Set(ctx, userID, cart); err != nil {
				logging.FromContext(ctx).Warn("cart cache set failed", "error", err)
			}
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Cart), nil
}

// Add puts quantity units of the product into the user's cart,
// snapshotting price, name and image from the catalog.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	product, err := s.Products.GetByID(ctx, productID)
	if errors.Is(err, repo.ErrProductNotFound) {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	cart, err := s.mutate(ctx, userID, func(c *models.Cart) error {
		cartengine.Add(c, *product, quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return cart, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.mutate(ctx, userID, func(c *models.Cart) error {
		if err := cartengine.SetQuantity(c, productID, quantity); err != nil {
			return fmt.Errorf("item %s: %w", productID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_updated",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return cart, nil
}

// Remove drops a line. Removing an absent product still succeeds.
func (s *CartService) Remove(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.mutate(ctx, userID, func(c *models.Cart) error {
		cartengine.Remove(c, productID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_removed",
		"user_id":    userID,
		"product_id": productID,
	})
	return cart, nil
}

// Clear deletes the persisted cart document entirely.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	err := s.Repo.Delete(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrCartNotFound) {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.invalidate(ctx, userID)

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})
	return nil
}

// mutate runs a read-modify-write against the stored cart document.
// The write is a compare-and-set on the document version; on conflict
// the cart is reloaded and the mutation reapplied.
func (s *CartService) mutate(ctx context.Context, userID string, apply func(*models.Cart) error) (*models.Cart, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		cart, err := s.Repo.Get(ctx, userID)
		if errors.Is(err, repo.ErrCartNotFound) {
			cart = &models.Cart{UserID: userID}
		} else if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		cartengine.Sanitize(cart)

		fromVersion := cart.Version
		if err := apply(cart); err != nil {
			return nil, err
		}

		err = s.Repo.Update(ctx, cart, fromVersion)
		if errors.Is(err, repo.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("store cart: %w", err)
		}

		s.invalidate(ctx, userID)
		return cart, nil
	}
	return nil, ErrConflict
}

func (s *CartService) invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, userID); err != nil {
		logging.FromContext(ctx).Warn("cart cache invalidate failed", "error", err)
	}
}

func (s *CartService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, events.TopicCartEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("cart event publish failed", "error", err)
	}
}
