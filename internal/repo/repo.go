// Package repo holds the MongoDB persistence layer. Interfaces are
// defined here for the consumers in internal/service; the mongo*
// implementations live alongside them.
package repo

import (
	"context"
	"errors"

	"github.com/villagecraft/storefront/internal/models"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateEmail  = errors.New("user already exists with this email")
	// ErrVersionConflict reports a lost compare-and-set race; the caller
	// reloads the cart and re-applies its mutation.
	ErrVersionConflict = errors.New("cart version conflict")
)

type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	// Update persists cart only if the stored document still carries
	// fromVersion, bumping the version on success. A cart that has never
	// been stored is inserted with fromVersion 0.
	Update(ctx context.Context, cart *models.Cart, fromVersion uint64) error
	Delete(ctx context.Context, userID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []models.Product) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}
