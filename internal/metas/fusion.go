package metas

import (
	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// FuseMonth builds the fused per-day timeline for one store and month.
// Each day is classified against today, the real current day-of-month:
// closed days are historical and keep the feed's reported figure, today
// is realtime and takes the live single-day figure, future days are
// projected. The upstream projection is carried through on every day so
// later comparisons against it remain possible.
//
// Classification always uses the real current day, even when the viewed
// month is not the current month: pacing is "as of now" regardless of
// which month is being browsed. Browsing a past month therefore yields a
// fully realized timeline, and a future one fully projected.
func FuseMonth(targets []models.DayTarget, live models.LiveSales, today int) []models.FusedDay {
	fused := make([]models.FusedDay, 0, len(targets))
	for _, t := range targets {
		day := models.FusedDay{
			Day:            t.Day,
			MetaValue:      t.MetaValue,
			Weight:         t.Weight,
			ProjectedValue: t.ReportedSales,
			IsRealized:     t.Day <= today,
		}

		switch {
		case t.Day < today:
			day.SourceKind = models.SourceHistorical
			day.ActualValue = t.ReportedSales
		case t.Day == today:
			// The live feed is authoritative for the in-progress day,
			// even when the feed carries a non-zero figure for it.
			day.SourceKind = models.SourceRealtime
			day.ActualValue = live.Today
		default:
			day.SourceKind = models.SourceProjected
			day.ActualValue = t.ReportedSales
		}

		day.Delta = day.ActualValue.Sub(day.MetaValue)
		fused = append(fused, day)
	}
	return fused
}
