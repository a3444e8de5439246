package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/debtbook-api/internal/models"
)

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	book := models.NewBook([]models.Debt{{ID: "d1", Status: models.DebtStatusPending}}, nil)
	require.NoError(t, c.Set(ctx, "u1", book))

	// mutating the original after Set does not leak into the cache
	book.SetStatus("d1", models.DebtStatusCompleted)

	got, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.DebtStatusPending, got.Debts[0].Status)

	// nor does mutating what Get returned
	got.AddDebt(models.Debt{ID: "d2"})
	again, _, _ := c.Get(ctx, "u1")
	assert.Len(t, again.Debts, 1)
}

func TestMemoryCache_Miss(t *testing.T) {
	_, ok, err := NewMemoryCache(0).Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "u1", models.NewBook(nil, nil)))

	now = now.Add(30 * time.Second)
	_, ok, _ := c.Get(ctx, "u1")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	require.NoError(t, c.Set(ctx, "u1", models.NewBook(nil, nil)))
	require.NoError(t, c.Delete(ctx, "u1"))

	_, ok, _ := c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestNew_WithoutAddrIsMemory(t *testing.T) {
	c := New(context.Background(), "", "", time.Minute)
	_, isMemory := c.(*MemoryCache)
	assert.True(t, isMemory)
}
