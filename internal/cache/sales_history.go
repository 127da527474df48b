// Package cache stores closed-day sales history in Redis. History only
// changes when the consolidation job closes a day, so the dashboard reads
// it from here instead of hitting the upstream database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// ErrNotFound is returned when no history exists for the requested
// store and month.
var ErrNotFound = errors.New("sales history not found")

// SalesHistoryCache reads and writes per-store monthly sales history.
type SalesHistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache over the given Redis client. ttl applies to the
// current month's key; closed months keep their history indefinitely.
func New(client *redis.Client, ttl time.Duration) *SalesHistoryCache {
	return &SalesHistoryCache{client: client, ttl: ttl}
}

// GetDailySales returns the closed-day history for one store and month.
func (c *SalesHistoryCache) GetDailySales(ctx context.Context, storeCode string, year, month int) (*models.DailySalesHistory, error) {
	data, err := c.client.Get(ctx, key(storeCode, year, month)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sales history: %w", err)
	}

	var history models.DailySalesHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to decode sales history: %w", err)
	}
	return &history, nil
}

// PutDailySales stores a full month of history, replacing any existing
// payload.
func (c *SalesHistoryCache) PutDailySales(ctx context.Context, history *models.DailySalesHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode sales history: %w", err)
	}

	k := key(history.StoreCode, history.Year, history.Month)
	if err := c.client.Set(ctx, k, data, c.ttlFor(history.Year, history.Month)).Err(); err != nil {
		return fmt.Errorf("failed to write sales history: %w", err)
	}
	return nil
}

// AppendDayClose folds one daily-close event into the store's month
// payload: replaces the day if it is already present, keeps days sorted,
// recomputes the period total and stamps the processing time. Safe to
// replay the same event.
func (c *SalesHistoryCache) AppendDayClose(ctx context.Context, storeCode string, date string, total decimal.Decimal) error {
	year, month, day, err := splitISODate(date)
	if err != nil {
		return fmt.Errorf("failed to parse close date %q: %w", date, err)
	}

	history, err := c.GetDailySales(ctx, storeCode, year, month)
	if err == ErrNotFound {
		history = &models.DailySalesHistory{
			StoreCode: storeCode,
			Year:      year,
			Month:     month,
		}
	} else if err != nil {
		return err
	}

	replaced := false
	for i := range history.Days {
		if history.Days[i].Day == day {
			history.Days[i].Total = total
			history.Days[i].Date = date
			replaced = true
			break
		}
	}
	if !replaced {
		history.Days = append(history.Days, models.DailySale{Date: date, Day: day, Total: total})
		sort.Slice(history.Days, func(i, j int) bool { return history.Days[i].Day < history.Days[j].Day })
	}

	periodTotal := decimal.Zero
	for _, d := range history.Days {
		periodTotal = periodTotal.Add(d.Total)
	}
	history.PeriodTotal = periodTotal
	history.ProcessedAt = time.Now().UTC()

	return c.PutDailySales(ctx, history)
}

func (c *SalesHistoryCache) ttlFor(year, month int) time.Duration {
	now := time.Now()
	if year == now.Year() && month == int(now.Month()) {
		return c.ttl
	}
	return 0
}

func key(storeCode string, year, month int) string {
	return fmt.Sprintf("vendas:diarias:%s:%d:%02d", storeCode, year, month)
}

func splitISODate(date string) (year, month, day int, err error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("not a YYYY-MM-DD date")
	}
	if year, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if day, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, err
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("out-of-range date components")
	}
	return year, month, day, nil
}
