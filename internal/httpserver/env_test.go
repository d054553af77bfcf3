package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/repo"
	"github.com/villagecraft/storefront/internal/service"
)

// memStore is an in-memory stand-in for the Mongo repositories, good
// enough to exercise the handlers end to end.
type memStore struct {
	mu       sync.Mutex
	carts    map[string]*models.Cart
	users    map[string]*models.User // keyed by email
	sessions map[string]*models.Session
	products map[string]models.Product
	nextID   int
}

func newMemStore(products ...models.Product) *memStore {
	s := &memStore{
		carts:    make(map[string]*models.Cart),
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.Session),
		products: make(map[string]models.Product),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) Get(ctx context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, repo.ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp, nil
}

func (s *memStore) Update(ctx context.Context, cart *models.Cart, fromVersion uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.carts[cart.UserID]
	if (ok && stored.Version != fromVersion) || (!ok && fromVersion != 0) {
		return repo.ErrVersionConflict
	}
	cart.Version = fromVersion + 1
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	s.carts[cart.UserID] = &cp
	return nil
}

func (s *memStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[userID]; !ok {
		return repo.ErrCartNotFound
	}
	delete(s.carts, userID)
	return nil
}

type memUsers memStore

func (s *memUsers) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	s.nextID++
	user.ID = "user-" + strconv.Itoa(s.nextID)
	cp := *user
	s.users[user.Email] = &cp
	return nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

type memSessions memStore

func (s *memSessions) Create(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.Token] = &cp
	return nil
}

func (s *memSessions) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, repo.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessions) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type memProducts memStore

func (s *memProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repo.ErrProductNotFound
	}
	return &p, nil
}

func (s *memProducts) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProducts) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProducts) Count(ctx context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *memProducts) InsertMany(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		s.products[p.ID] = p
	}
	return nil
}

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	Store *memStore
	Auth  *service.AuthService
	Cart  *service.CartService
}

var envProducts = []models.Product{
	{ID: "7", Name: "Clay Water Pot", Category: models.CategoryWaterUsage, Price: 450, Image: "water1.jpg"},
	{ID: "13", Name: "Jute Shopping Bag", Category: models.CategoryJuteProducts, Price: 150, Image: "jute1.jpg"},
	{ID: "21", Name: "Ceramic Vase", Category: models.CategoryCeramicProducts, Price: 915, Image: "ceramic20.jpg"},
}

func newTestEnv(t *testing.T) *testEnv {
	store := newMemStore(envProducts...)

	auth := &service.AuthService{
		Users:      (*memUsers)(store),
		Sessions:   (*memSessions)(store),
		JWTSecret:  []byte("test-jwt-secret"),
		SessionTTL: 24 * time.Hour,
	}
	cartSvc := &service.CartService{
		Repo:     store,
		Products: (*memProducts)(store),
	}
	catalog := &service.CatalogService{Products: (*memProducts)(store)}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: auth},
		CartHandler:    &CartHTTP{Svc: cartSvc},
		CatalogHandler: &CatalogHTTP{Svc: catalog},
		Sessions:       &SessionMiddleware{Auth: auth},
	})

	return &testEnv{T: t, E: e, Store: store, Auth: auth, Cart: cartSvc}
}

func (env *testEnv) doJSON(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// login registers a user and opens a session, returning the cookie the
// cart routes require.
func (env *testEnv) login() *http.Cookie {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/register", map[string]string{
		"name":     "Meera",
		"email":    "meera@example.com",
		"password": "secret123",
		"role":     "buyer",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/login", map[string]string{
		"email":    "meera@example.com",
		"password": "secret123",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			return ck
		}
	}
	env.T.Fatal("login did not set a session cookie")
	return nil
}

type cartResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Cart    *struct {
		UserID string            `json:"user_id"`
		Items  []models.CartItem `json:"items"`
		Total  float64           `json:"total"`
	} `json:"cart"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
