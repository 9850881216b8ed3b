package store

import (
	"context"
	"testing"

	"pataspace_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, id string, name string, price float64) models.Product {
	t.Helper()
	uid, err := gocql.ParseUUID(id)
	require.NoError(t, err)
	return models.Product{
		ID:       uid,
		Name:     name,
		Price:    price,
		ImageURL: "http://minio.local/pataspace-images/" + name + ".jpg",
	}
}

const (
	drillID  = "11111111-1111-1111-1111-111111111111"
	wrenchID = "22222222-2222-2222-2222-222222222222"
)

func TestAddMergesByProductID(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySlot())
	drill := testProduct(t, drillID, "Drill", 12.50)

	for i := 0; i < 3; i++ {
		_, err := s.Add(ctx, "user-1", drill)
		require.NoError(t, err)
	}

	items := s.Load(ctx, "user-1")
	require.Len(t, items, 1)
	assert.Equal(t, drillID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddKeepsExistingLineFields(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySlot())

	_, err := s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)

	// Le prix produit a changé entre-temps : la ligne existante garde
	// son prix, seule la quantité bouge.
	repriced := testProduct(t, drillID, "Drill", 99.99)
	items, err := s.Add(ctx, "user-1", repriced)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 12.50, items[0].Price)
}

func TestAdjustQuantityClampsAtZeroAndRemoves(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySlot())

	_, err := s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)
	_, err = s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)

	// -5 sur une quantité de 2 : borné à 0, donc la ligne disparaît
	items, err := s.AdjustQuantity(ctx, "user-1", drillID, -5)
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, item := range s.Load(ctx, "user-1") {
		assert.Positive(t, item.Quantity)
	}
}

func TestAdjustQuantityIncrement(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySlot())

	_, err := s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)

	items, err := s.AdjustQuantity(ctx, "user-1", drillID, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySlot())

	_, err := s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)
	_, err = s.Add(ctx, "user-1", testProduct(t, wrenchID, "Wrench", 7.00))
	require.NoError(t, err)

	items, err := s.Remove(ctx, "user-1", drillID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, wrenchID, items[0].ProductID)
}

func TestTotal(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySlot())

	drill := testProduct(t, drillID, "Drill", 12.50)
	_, err := s.Add(ctx, "user-1", drill)
	require.NoError(t, err)
	_, err = s.Add(ctx, "user-1", drill)
	require.NoError(t, err)
	_, err = s.Add(ctx, "user-1", testProduct(t, wrenchID, "Wrench", 7.00))
	require.NoError(t, err)

	items := s.Load(ctx, "user-1")
	assert.InDelta(t, 32.00, Total(items), 0.001)
	assert.Equal(t, 3, Count(items))
}

func TestLoadCorruptSlotReturnsEmptyCart(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Set(ctx, KeyPrefix+"user-1", "not valid json"))

	s := New(slot)
	items := s.Load(ctx, "user-1")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoadMissingSlotReturnsEmptyCart(t *testing.T) {
	s := New(NewMemorySlot())
	items := s.Load(context.Background(), "nobody")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClearDeletesSlot(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	s := New(slot)

	_, err := s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, "user-1"))

	_, err = slot.Get(ctx, KeyPrefix+"user-1")
	assert.ErrorIs(t, err, ErrNoSlot)
	assert.Empty(t, s.Load(ctx, "user-1"))
}

type recordingEvents struct {
	calls int
	last  []models.CartItem
}

func (r *recordingEvents) CartChanged(_ context.Context, _ string, items []models.CartItem) {
	r.calls++
	r.last = items
}

func TestEventsFiredOnMutation(t *testing.T) {
	ctx := context.Background()
	events := &recordingEvents{}
	s := New(NewMemorySlot()).WithEvents(events)

	_, err := s.Add(ctx, "user-1", testProduct(t, drillID, "Drill", 12.50))
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, "user-1"))

	assert.Equal(t, 2, events.calls)
	assert.Empty(t, events.last)
}
