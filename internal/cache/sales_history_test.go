package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

func setupCache(t *testing.T) *SalesHistoryCache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { client.Close() })

	return New(client, time.Hour)
}

func TestSalesHistoryCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := setupCache(t)
	ctx := context.Background()

	t.Run("miss is a typed error", func(t *testing.T) {
		_, err := c.GetDailySales(ctx, "L404", 2026, 8)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		history := &models.DailySalesHistory{
			StoreCode: "L001",
			Year:      2026,
			Month:     8,
			Days: []models.DailySale{
				{Date: "2026-08-01", Day: 1, Total: decimal.NewFromInt(1000)},
				{Date: "2026-08-02", Day: 2, Total: decimal.NewFromInt(1500)},
			},
			PeriodTotal: decimal.NewFromInt(2500),
			ProcessedAt: time.Now().UTC(),
		}
		require.NoError(t, c.PutDailySales(ctx, history))

		got, err := c.GetDailySales(ctx, "L001", 2026, 8)
		require.NoError(t, err)
		assert.Equal(t, "L001", got.StoreCode)
		require.Len(t, got.Days, 2)
		assert.True(t, got.PeriodTotal.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("day close appends, sorts and recomputes the total", func(t *testing.T) {
		require.NoError(t, c.AppendDayClose(ctx, "L002", "2026-08-03", decimal.NewFromInt(300)))
		require.NoError(t, c.AppendDayClose(ctx, "L002", "2026-08-01", decimal.NewFromInt(100)))

		got, err := c.GetDailySales(ctx, "L002", 2026, 8)
		require.NoError(t, err)
		require.Len(t, got.Days, 2)
		assert.Equal(t, 1, got.Days[0].Day)
		assert.Equal(t, 3, got.Days[1].Day)
		assert.True(t, got.PeriodTotal.Equal(decimal.NewFromInt(400)))
		assert.False(t, got.ProcessedAt.IsZero())
	})

	t.Run("replayed close replaces the day instead of duplicating", func(t *testing.T) {
		require.NoError(t, c.AppendDayClose(ctx, "L003", "2026-08-05", decimal.NewFromInt(500)))
		require.NoError(t, c.AppendDayClose(ctx, "L003", "2026-08-05", decimal.NewFromInt(550)))

		got, err := c.GetDailySales(ctx, "L003", 2026, 8)
		require.NoError(t, err)
		require.Len(t, got.Days, 1)
		assert.True(t, got.Days[0].Total.Equal(decimal.NewFromInt(550)))
		assert.True(t, got.PeriodTotal.Equal(decimal.NewFromInt(550)))
	})

	t.Run("rejects malformed close dates", func(t *testing.T) {
		assert.Error(t, c.AppendDayClose(ctx, "L004", "05/08/2026", decimal.NewFromInt(1)))
		assert.Error(t, c.AppendDayClose(ctx, "L004", "2026-13-01", decimal.NewFromInt(1)))
	})
}
