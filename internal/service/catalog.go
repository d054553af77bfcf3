package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/repo"
)

type CatalogService struct {
	Products repo.ProductRepository
}

// Lookup resolves a product reference; the cart uses it at add time to
// take the price snapshot.
func (s *CatalogService) Lookup(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, repo.ErrProductNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return product, err
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Products.List(ctx)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q: %w", category, ErrNotFound)
	}
	return s.Products.ListByCategory(ctx, category)
}

// SeedIfEmpty loads the initial catalog on first start.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, products []models.Product) error {
	count, err := s.Products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := s.Products.InsertMany(ctx, products); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	logging.FromContext(ctx).Info("catalog seeded", "products", len(products))
	return nil
}
