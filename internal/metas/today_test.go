package metas

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

func TestCompareToday(t *testing.T) {
	t.Run("deltas against meta and projection", func(t *testing.T) {
		day := models.FusedDay{
			Day:            12,
			MetaValue:      decimal.NewFromInt(500),
			ProjectedValue: decimal.NewFromInt(550),
			SourceKind:     models.SourceRealtime,
		}

		perf := CompareToday(day, decimal.NewFromInt(600))

		assert.True(t, perf.DeltaVsMeta.Equal(decimal.NewFromInt(100)))
		assert.True(t, perf.PercentVsMeta.Equal(decimal.NewFromInt(20)), "percentVsMeta = %s", perf.PercentVsMeta)
		assert.True(t, perf.DeltaVsProjection.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, models.StatusAhead, perf.Status)
	})

	t.Run("status uses the same dead-zone as month pacing", func(t *testing.T) {
		meta := decimal.NewFromInt(1000)
		cases := []struct {
			actual int64
			want   string
		}{
			{1050, models.StatusAhead},
			{1000, models.StatusOnTrack},
			{950, models.StatusOnTrack},
			{949, models.StatusBehind},
		}
		for _, tc := range cases {
			perf := CompareToday(models.FusedDay{MetaValue: meta}, decimal.NewFromInt(tc.actual))
			assert.Equal(t, tc.want, perf.Status, "actual %d", tc.actual)
		}
	})

	t.Run("zero meta and zero projection never divide", func(t *testing.T) {
		perf := CompareToday(models.FusedDay{}, decimal.NewFromInt(300))
		assert.True(t, perf.PercentVsMeta.IsZero())
		assert.True(t, perf.PercentVsProjection.IsZero())
		assert.Equal(t, models.StatusOnTrack, perf.Status)
	})

	t.Run("month and day signals stay independent", func(t *testing.T) {
		// A store deep behind on the month but crushing today's meta.
		live := models.LiveSales{Today: decimal.NewFromInt(200), MonthToDate: decimal.NewFromInt(100)}
		fused := FuseMonth(monthOfTargets(30, 100, 1, 10), live, 10)

		pacing := ComputePacing(fused, decimal.Zero)
		assert.Equal(t, models.StatusBehind, pacing.Status)

		today, ok := FindToday(fused, 10)
		require.True(t, ok)
		perf := CompareToday(today, live.Today)
		assert.Equal(t, models.StatusAhead, perf.Status)
	})
}

func TestFindToday(t *testing.T) {
	fused := FuseMonth(monthOfTargets(30, 100, 1, 10), models.LiveSales{}, 10)

	day, ok := FindToday(fused, 10)
	require.True(t, ok)
	assert.Equal(t, 10, day.Day)

	_, ok = FindToday(fused, 31)
	assert.False(t, ok)
}
