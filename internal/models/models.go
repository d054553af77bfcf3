package models

import (
	"time"
)

// Category values are fixed; each maps to one listing page.
const (
	CategoryWaterUsage      = "water-usage"
	CategoryKitchenUsage    = "kitchen-usage"
	CategoryJuteProducts    = "jute-products"
	CategoryCeramicProducts = "ceramic-products"
)

func Categories() []string {
	return []string{
		CategoryWaterUsage,
		CategoryKitchenUsage,
		CategoryJuteProducts,
		CategoryCeramicProducts,
	}
}

func ValidCategory(c string) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Roles an account can register with. Artisans list products, buyers
// purchase them.
const (
	RoleArtisan = "artisan"
	RoleBuyer   = "buyer"
)

func ValidRole(r string) bool {
	return r == RoleArtisan || r == RoleBuyer
}

type Product struct {
	ID          string  `bson:"_id,omitempty" json:"id"`
	Name        string  `bson:"name"          json:"name"`
	Category    string  `bson:"category"      json:"category"`
	Description string  `bson:"description"   json:"description"`
	Price       float64 `bson:"price"         json:"price"`
	Image       string  `bson:"image"         json:"image"`
	Creator     string  `bson:"creator"       json:"creator"`
	Stock       uint    `bson:"stock"         json:"stock"`
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name"          json:"name"`
	Email        string    `bson:"email"         json:"email"`
	PasswordHash string    `bson:"password"      json:"-"`
	Role         string    `bson:"role"          json:"role"`
	CreatedAt    time.Time `bson:"created_at"    json:"created_at"`
}

// CartItem is one line of a cart. Price, name and image are snapshots
// taken from the catalog at add time; renders never re-read the catalog.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Quantity  uint    `bson:"quantity"   json:"quantity"`
	Price     float64 `bson:"price"      json:"price"`
	Name      string  `bson:"name"       json:"name"`
	Image     string  `bson:"image"      json:"image"`
}

// Cart is the persisted cart document, one per owner. Version is a
// counter used for compare-and-set updates.
type Cart struct {
	UserID    string     `bson:"user_id"    json:"user_id"`
	Items     []CartItem `bson:"items"      json:"items"`
	Total     float64    `bson:"total"      json:"total"`
	Version   uint64     `bson:"version"    json:"-"`
	CreatedAt time.Time  `bson:"created_at" json:"-"`
	UpdatedAt time.Time  `bson:"updated_at" json:"-"`
}

// SessionUser is the identity snapshot held by a session.
type SessionUser struct {
	ID    string `bson:"id"    json:"id"`
	Name  string `bson:"name"  json:"name"`
	Email string `bson:"email" json:"email"`
	Role  string `bson:"role"  json:"role"`
}

// Session lives for a fixed absolute lifetime and is destroyed
// explicitly on logout.
type Session struct {
	Token     string      `bson:"_id"        json:"token"`
	User      SessionUser `bson:"user"       json:"user"`
	LoggedIn  bool        `bson:"logged_in"  json:"logged_in"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time   `bson:"expires_at" json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
