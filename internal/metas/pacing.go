package metas

import (
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// ComputePacing aggregates a fused timeline into the month-to-date
// pacing verdict. Only realized days count toward both sums.
//
// When the timeline is empty (no target data for the month) the meta
// side is zero and the actual side falls back to the caller-supplied
// month-to-date aggregate, so an empty feed never masquerades as a store
// exactly on pace: the status is on_track only when both sides are zero.
func ComputePacing(fused []models.FusedDay, fallbackActual decimal.Decimal) models.PacingSnapshot {
	metaToDate := decimal.Zero
	actualToDate := decimal.Zero

	if len(fused) == 0 {
		actualToDate = fallbackActual
	}

	for _, d := range fused {
		if !d.IsRealized {
			continue
		}
		metaToDate = metaToDate.Add(d.MetaValue)
		actualToDate = actualToDate.Add(d.ActualValue)
	}

	difference := actualToDate.Sub(metaToDate)
	percent := percentOf(difference, metaToDate)

	return models.PacingSnapshot{
		MetaToDate:        metaToDate,
		ActualToDate:      actualToDate,
		Difference:        difference,
		DifferencePercent: percent,
		Status:            classifyDelta(percent),
	}
}

// WeightedElapsedPercent is how much of the month has effectively passed,
// weighting each day by its seasonality weight rather than counting days.
// A heavy Saturday moves the month along more than a light Tuesday.
// Zero when the timeline carries no weight at all.
func WeightedElapsedPercent(fused []models.FusedDay) decimal.Decimal {
	realized := decimal.Zero
	total := decimal.Zero
	for _, d := range fused {
		total = total.Add(d.Weight)
		if d.IsRealized {
			realized = realized.Add(d.Weight)
		}
	}
	return percentOf(realized, total)
}
