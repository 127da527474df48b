package metas

import (
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// CompareToday isolates the current day's performance: the live
// single-day figure against the day's meta and against the statistical
// projection. This signal is deliberately separate from the month-level
// pacing verdict; a store can be behind on the month yet ahead on the
// day, and the two must surface independently.
//
// liveToday is the "sales so far today" scalar, never the month-to-date
// total.
func CompareToday(day models.FusedDay, liveToday decimal.Decimal) models.TodayPerformance {
	deltaVsMeta := liveToday.Sub(day.MetaValue)
	deltaVsProjection := liveToday.Sub(day.ProjectedValue)
	percentVsMeta := percentOf(deltaVsMeta, day.MetaValue)

	return models.TodayPerformance{
		MetaToday:           day.MetaValue,
		ActualToday:         liveToday,
		ProjectedToday:      day.ProjectedValue,
		DeltaVsMeta:         deltaVsMeta,
		PercentVsMeta:       percentVsMeta,
		DeltaVsProjection:   deltaVsProjection,
		PercentVsProjection: percentOf(deltaVsProjection, day.ProjectedValue),
		Status:              classifyDelta(percentVsMeta),
	}
}

// FindToday returns the fused day matching the current day-of-month,
// or false when the timeline does not contain it.
func FindToday(fused []models.FusedDay, today int) (models.FusedDay, bool) {
	for _, d := range fused {
		if d.Day == today {
			return d, true
		}
	}
	return models.FusedDay{}, false
}
