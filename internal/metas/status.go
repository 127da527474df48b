package metas

import (
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// deadZone is the ±5% band around exact pace inside which a store is
// considered on track; it absorbs day-to-day noise near the target.
var deadZone = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// classifyDelta maps a signed percent deviation onto a status.
// The band boundaries matter: exactly +5 is ahead, exactly -5 is still
// on track (behind requires strictly below -5).
func classifyDelta(percent decimal.Decimal) string {
	switch {
	case percent.GreaterThanOrEqual(deadZone):
		return models.StatusAhead
	case percent.LessThan(deadZone.Neg()):
		return models.StatusBehind
	default:
		return models.StatusOnTrack
	}
}

// classifyAttainment compares an attainment percentage against an
// expected-pace benchmark using the same ±5 band.
func classifyAttainment(attainment, benchmark decimal.Decimal) string {
	return classifyDelta(attainment.Sub(benchmark))
}

// percentOf returns part/base*100, defined as zero when base is zero so
// aggregates stay total over empty and zero inputs.
func percentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(hundred)
}
