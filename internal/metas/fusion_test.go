package metas

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

func monthOfTargets(days int, meta, weight, sales int64) []models.DayTarget {
	targets := make([]models.DayTarget, 0, days)
	for d := 1; d <= days; d++ {
		targets = append(targets, models.DayTarget{
			Day:           d,
			MetaValue:     decimal.NewFromInt(meta),
			Weight:        decimal.NewFromInt(weight),
			ReportedSales: decimal.NewFromInt(sales),
		})
	}
	return targets
}

func TestFuseMonth(t *testing.T) {
	live := models.LiveSales{
		Today:       decimal.NewFromInt(600),
		MonthToDate: decimal.NewFromInt(5000),
	}

	t.Run("classifies each day against today", func(t *testing.T) {
		fused := FuseMonth(monthOfTargets(30, 100, 1, 90), live, 10)
		require.Len(t, fused, 30)

		for _, d := range fused {
			switch {
			case d.Day < 10:
				assert.Equal(t, models.SourceHistorical, d.SourceKind, "day %d", d.Day)
				assert.True(t, d.IsRealized)
				assert.True(t, d.ActualValue.Equal(decimal.NewFromInt(90)))
			case d.Day == 10:
				assert.Equal(t, models.SourceRealtime, d.SourceKind)
				assert.True(t, d.IsRealized)
				assert.True(t, d.ActualValue.Equal(live.Today), "realtime day takes the live figure, not the feed's")
			default:
				assert.Equal(t, models.SourceProjected, d.SourceKind, "day %d", d.Day)
				assert.False(t, d.IsRealized)
				assert.True(t, d.ActualValue.Equal(decimal.NewFromInt(90)))
			}
			assert.True(t, d.ProjectedValue.Equal(decimal.NewFromInt(90)), "projection carried on every day")
			assert.True(t, d.Delta.Equal(d.ActualValue.Sub(d.MetaValue)))
		}
	})

	t.Run("fusion never alters the meta sum", func(t *testing.T) {
		targets := monthOfTargets(31, 137, 1, 50)
		fused := FuseMonth(targets, live, 12)

		wantSum := decimal.Zero
		for _, target := range targets {
			wantSum = wantSum.Add(target.MetaValue)
		}
		gotSum := decimal.Zero
		for _, d := range fused {
			gotSum = gotSum.Add(d.MetaValue)
		}
		assert.True(t, gotSum.Equal(wantSum))
	})

	t.Run("idempotent under identical inputs", func(t *testing.T) {
		targets := monthOfTargets(28, 100, 1, 80)
		first := FuseMonth(targets, live, 14)
		second := FuseMonth(targets, live, 14)
		assert.Equal(t, first, second)
	})

	t.Run("browsing a past month realizes every day", func(t *testing.T) {
		// today beyond daysInMonth: the viewed month is already closed
		// relative to the real current day.
		fused := FuseMonth(monthOfTargets(30, 100, 1, 95), live, 45)
		for _, d := range fused {
			assert.Equal(t, models.SourceHistorical, d.SourceKind)
			assert.True(t, d.IsRealized)
		}
	})

	t.Run("preserves day order", func(t *testing.T) {
		fused := FuseMonth(monthOfTargets(30, 100, 1, 95), live, 10)
		for i, d := range fused {
			assert.Equal(t, i+1, d.Day)
		}
	})
}
