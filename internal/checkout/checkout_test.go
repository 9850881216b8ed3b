package checkout

import (
	"context"
	"errors"
	"testing"

	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrders struct {
	calls  int
	order  models.Order
	items  []models.OrderItem
	err    error
}

func (m *mockOrders) CreateOrder(_ context.Context, order models.Order, items []models.OrderItem) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.order = order
	m.items = items
	return nil
}

type mockGuard struct {
	reserved map[string]string
	released []string
}

func newMockGuard() *mockGuard {
	return &mockGuard{reserved: make(map[string]string)}
}

func (m *mockGuard) Reserve(_ context.Context, token, orderID string) (string, bool, error) {
	if existing, ok := m.reserved[token]; ok {
		return existing, false, nil
	}
	m.reserved[token] = orderID
	return "", true, nil
}

func (m *mockGuard) Release(_ context.Context, token string) {
	delete(m.reserved, token)
	m.released = append(m.released, token)
}

func cartWith(t *testing.T, items []models.CartItem) *store.CartStore {
	t.Helper()
	s := store.New(store.NewMemorySlot())
	if items != nil {
		require.NoError(t, s.Save(context.Background(), "user-1", items))
	}
	return s
}

func twoLines() []models.CartItem {
	return []models.CartItem{
		{ProductID: "11111111-1111-1111-1111-111111111111", Name: "Drill", Price: 12.50, Quantity: 2},
		{ProductID: "22222222-2222-2222-2222-222222222222", Name: "Wrench", Price: 7.00, Quantity: 1},
	}
}

func TestCheckoutEmptyCartWritesNothing(t *testing.T) {
	repo := &mockOrders{}
	svc := NewService(cartWith(t, nil), repo, newMockGuard())

	result, err := svc.Checkout(context.Background(), "user-1", "tok-1")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, result)
	assert.Zero(t, repo.calls)
}

func TestCheckoutCreatesOrderWithAllLines(t *testing.T) {
	ctx := context.Background()
	cart := cartWith(t, twoLines())
	repo := &mockOrders{}
	svc := NewService(cart, repo, newMockGuard())

	result, err := svc.Checkout(ctx, "user-1", "tok-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "user-1", repo.order.UserID)
	assert.Equal(t, models.OrderStatusPending, repo.order.Status)
	assert.InDelta(t, 32.00, repo.order.Total, 0.001)

	require.Len(t, repo.items, 2)
	for _, item := range repo.items {
		assert.Equal(t, repo.order.ID, item.OrderID)
	}
	// Prix figé au moment de l'achat
	assert.Equal(t, 12.50, repo.items[0].Price)
	assert.Equal(t, 2, repo.items[0].Quantity)

	assert.False(t, result.Replayed)
	// Panier vidé seulement après écriture réussie
	assert.Empty(t, cart.Load(ctx, "user-1"))
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	cart := cartWith(t, twoLines())
	repo := &mockOrders{err: errors.New("écriture refusée")}
	guard := newMockGuard()
	svc := NewService(cart, repo, guard)

	result, err := svc.Checkout(ctx, "user-1", "tok-1")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Len(t, cart.Load(ctx, "user-1"), 2)
	// Le jeton est libéré pour autoriser une nouvelle tentative
	assert.Contains(t, guard.released, "tok-1")
}

func TestCheckoutReplaysDuplicateToken(t *testing.T) {
	ctx := context.Background()
	cart := cartWith(t, twoLines())
	repo := &mockOrders{}
	svc := NewService(cart, repo, newMockGuard())

	first, err := svc.Checkout(ctx, "user-1", "tok-dup")
	require.NoError(t, err)

	// Le panier du second clic n'a pas encore vu le vidage
	require.NoError(t, cart.Save(ctx, "user-1", twoLines()))

	second, err := svc.Checkout(ctx, "user-1", "tok-dup")
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, 1, repo.calls)
}

func TestCheckoutWithoutTokenStillWorks(t *testing.T) {
	cart := cartWith(t, twoLines())
	repo := &mockOrders{}
	svc := NewService(cart, repo, nil)

	result, err := svc.Checkout(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.False(t, result.Replayed)
	assert.Equal(t, 1, repo.calls)
}
