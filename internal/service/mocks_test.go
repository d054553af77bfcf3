package service

import (
	"context"
	"sync"

	"github.com/villagecraft/storefront/internal/cache"
	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/repo"
)

// In-memory repositories mirroring the Mongo implementations' contracts.

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*models.Cart

	// conflictsLeft forces that many ErrVersionConflict results before
	// updates start succeeding again.
	conflictsLeft int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*models.Cart)}
}

func (m *memCartRepo) Get(ctx context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.carts[userID]
	if !ok {
		return nil, repo.ErrCartNotFound
	}
	cp := *stored
	cp.Items = append([]models.CartItem(nil), stored.Items...)
	return &cp, nil
}

func (m *memCartRepo) Update(ctx context.Context, cart *models.Cart, fromVersion uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflictsLeft > 0 {
		m.conflictsLeft--
		return repo.ErrVersionConflict
	}

	stored, ok := m.carts[cart.UserID]
	switch {
	case !ok && fromVersion != 0:
		return repo.ErrVersionConflict
	case ok && stored.Version != fromVersion:
		return repo.ErrVersionConflict
	}

	cart.Version = fromVersion + 1
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	m.carts[cart.UserID] = &cp
	return nil
}

func (m *memCartRepo) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[userID]; !ok {
		return repo.ErrCartNotFound
	}
	delete(m.carts, userID)
	return nil
}

type memProductRepo struct {
	products map[string]models.Product
}

func newMemProductRepo(products ...models.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[string]models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repo.ErrProductNotFound
	}
	return &p, nil
}

func (m *memProductRepo) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memProductRepo) InsertMany(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		if p.ID == "" {
			p.ID = p.Name // deterministic for tests
		}
		m.products[p.ID] = p
	}
	return nil
}

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	if user.ID == "" {
		m.nextID++
		user.ID = string(rune('a' + m.nextID))
	}
	cp := *user
	m.byEmail[user.Email] = &cp
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*models.Session)}
}

func (m *memSessionRepo) Create(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *session
	m.sessions[session.Token] = &cp
	return nil
}

func (m *memSessionRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, repo.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

type memCache struct {
	mu          sync.Mutex
	carts       map[string]*models.Cart
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{carts: make(map[string]*models.Cart)}
}

func (m *memCache) Get(ctx context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp, nil
}

func (m *memCache) Set(ctx context.Context, userID string, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	m.carts[userID] = &cp
	return nil
}

func (m *memCache) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	m.invalidated++
	return nil
}
