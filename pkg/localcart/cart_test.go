package localcart

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villagecraft/storefront/internal/cart"
	"github.com/villagecraft/storefront/internal/models"
)

type fakeIdentity struct {
	user     string
	signedIn bool
}

func (f *fakeIdentity) CurrentUserKey() (string, bool) {
	return f.user, f.signedIn
}

type fakePlacer struct {
	placed []*models.Cart
	err    error
}

func (f *fakePlacer) PlaceOrder(ctx context.Context, c *models.Cart) error {
	if f.err != nil {
		return f.err
	}
	f.placed = append(f.placed, c)
	return nil
}

var clayPot = models.Product{ID: "7", Name: "Clay Water Pot", Category: models.CategoryWaterUsage, Price: 450}

func newSignedInCart(user string) (*Cart, *fakeIdentity) {
	id := &fakeIdentity{user: user, signedIn: true}
	return &Cart{Storage: NewMemoryStorage(), Identity: id}, id
}

func TestAddRequiresLogin(t *testing.T) {
	t.Parallel()
	lc, id := newSignedInCart("meera@example.com")
	id.signedIn = false

	err := lc.Add(clayPot, 1)
	require.ErrorIs(t, err, ErrLoginRequired)

	snap, err := lc.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestAddMergesIntoUserScope(t *testing.T) {
	t.Parallel()
	lc, _ := newSignedInCart("meera@example.com")

	require.NoError(t, lc.Add(clayPot, 2))
	require.NoError(t, lc.Add(clayPot, 1))

	snap, err := lc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, uint(3), snap.Items[0].Quantity)
	assert.Equal(t, float64(1350), snap.Total)

	n, err := lc.Count()
	require.NoError(t, err)
	assert.Equal(t, uint(3), n)
}

func TestScopesAreIsolated(t *testing.T) {
	t.Parallel()
	storage := NewMemoryStorage()
	id := &fakeIdentity{user: "meera@example.com", signedIn: true}
	lc := &Cart{Storage: storage, Identity: id}

	require.NoError(t, lc.Add(clayPot, 2))

	// another user on the same storage sees their own empty cart
	id.user = "arun@example.com"
	snap, err := lc.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	id.user = "meera@example.com"
	snap, err = lc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
}

func TestLoginDiscardsGuestScope(t *testing.T) {
	t.Parallel()
	storage := NewMemoryStorage()
	id := &fakeIdentity{}
	lc := &Cart{Storage: storage, Identity: id}

	// a guest cart can exist from an earlier session, even though Add
	// is gated; plant one directly
	require.NoError(t, storage.Set("cart:guest", []byte(`{"items":[{"product_id":"7","quantity":1,"price":450}]}`)))

	id.user = "meera@example.com"
	id.signedIn = true
	require.NoError(t, lc.HandleLogin())

	_, ok, err := storage.Get("cart:guest")
	require.NoError(t, err)
	assert.False(t, ok)

	snap, err := lc.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Items, "guest items must never leak into the user cart")
}

func TestLogoutClearsUserScope(t *testing.T) {
	t.Parallel()
	lc, id := newSignedInCart("meera@example.com")
	require.NoError(t, lc.Add(clayPot, 1))

	require.NoError(t, lc.HandleLogout())
	id.signedIn = false

	_, ok, err := lc.Storage.Get("cart:meera@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotSanitizesStoredJunk(t *testing.T) {
	t.Parallel()
	lc, _ := newSignedInCart("meera@example.com")
	junk := []byte(`{"items":[{"product_id":"","quantity":1,"price":450},{"product_id":"7","quantity":2,"price":450}],"total":9999}`)
	require.NoError(t, lc.Storage.Set("cart:meera@example.com", junk))

	snap, err := lc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "7", snap.Items[0].ProductID)
	assert.Equal(t, float64(900), snap.Total)
}

func TestSetQuantityAndRemove(t *testing.T) {
	t.Parallel()
	lc, _ := newSignedInCart("meera@example.com")
	require.NoError(t, lc.Add(clayPot, 1))

	require.NoError(t, lc.SetQuantity("7", 5))
	snap, _ := lc.Snapshot()
	assert.Equal(t, float64(2250), snap.Total)

	require.ErrorIs(t, lc.SetQuantity("999", 2), cart.ErrItemNotFound)

	require.NoError(t, lc.Remove("999")) // absent products are a no-op
	require.NoError(t, lc.Remove("7"))
	snap, _ = lc.Snapshot()
	assert.Empty(t, snap.Items)
}

func TestCheckout(t *testing.T) {
	t.Parallel()
	lc, id := newSignedInCart("meera@example.com")
	placer := &fakePlacer{}

	require.ErrorIs(t, lc.Checkout(context.Background(), placer), ErrEmptyCart)

	require.NoError(t, lc.Add(clayPot, 2))

	id.signedIn = false
	require.ErrorIs(t, lc.Checkout(context.Background(), placer), ErrLoginRequired)
	id.signedIn = true

	placer.err = errors.New("payment declined")
	require.Error(t, lc.Checkout(context.Background(), placer))
	snap, _ := lc.Snapshot()
	assert.Len(t, snap.Items, 1, "a failed order keeps the cart")

	placer.err = nil
	require.NoError(t, lc.Checkout(context.Background(), placer))
	require.Len(t, placer.placed, 1)
	assert.Equal(t, float64(900), placer.placed[0].Total)

	snap, _ = lc.Snapshot()
	assert.Empty(t, snap.Items, "a successful order clears the cart")
}

func TestFileStoragePersistsBetweenCarts(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "store.json")
	id := &fakeIdentity{user: "meera@example.com", signedIn: true}

	first := &Cart{Storage: NewFileStorage(path), Identity: id}
	require.NoError(t, first.Add(clayPot, 2))

	// a fresh cart over the same file sees the same state
	second := &Cart{Storage: NewFileStorage(path), Identity: id}
	snap, err := second.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, float64(900), snap.Total)
}
