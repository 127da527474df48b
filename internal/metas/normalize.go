package metas

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// NormalizeDay converts a raw feed record into a DayTarget with every
// numeric field coerced to a non-negative decimal. A record without a day
// number falls back to the day component of its ISO date (YYYY-MM-DD).
// Returns false when neither is present; the record cannot be placed in
// the month and must be dropped.
func NormalizeDay(raw models.MetaDay) (models.DayTarget, bool) {
	day := raw.Day
	if day < 1 {
		day = dayFromISODate(raw.Date)
	}
	if day < 1 {
		return models.DayTarget{}, false
	}

	return models.DayTarget{
		Day:            day,
		MetaValue:      clampNonNegative(raw.MetaValue.Decimal),
		SuperMetaValue: clampNonNegative(raw.SuperMetaValue.Decimal),
		Weight:         clampNonNegative(raw.Weight.Decimal),
		ReportedSales:  clampNonNegative(raw.ReportedSales.Decimal),
	}, true
}

// NormalizeMonth normalizes a whole feed, preserving order. Records that
// cannot be placed in the month are dropped and logged, never fatal.
func NormalizeMonth(raw []models.MetaDay, logger zerolog.Logger) []models.DayTarget {
	targets := make([]models.DayTarget, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		t, ok := NormalizeDay(r)
		if !ok {
			dropped++
			continue
		}
		targets = append(targets, t)
	}
	if dropped > 0 {
		logger.Warn().
			Int("dropped", dropped).
			Int("kept", len(targets)).
			Msg("dropped meta records without day or parsable date")
	}
	return targets
}

// ApplyDailySales overrides the reported sales of each target with the
// closed-day history figure when one exists for that day. History is the
// consolidated record of what the store actually sold; the feed's own
// figure is kept only for days the history does not cover.
func ApplyDailySales(targets []models.DayTarget, history []models.DailySale) []models.DayTarget {
	if len(history) == 0 {
		return targets
	}

	byDay := make(map[int]decimal.Decimal, len(history))
	for _, h := range history {
		byDay[h.Day] = h.Total
	}

	out := make([]models.DayTarget, len(targets))
	copy(out, targets)
	for i := range out {
		if total, ok := byDay[out[i].Day]; ok {
			out[i].ReportedSales = clampNonNegative(total)
		}
	}
	return out
}

// dayFromISODate extracts the day number from a YYYY-MM-DD string.
// Returns 0 when the string is not parsable.
func dayFromISODate(date string) int {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return 0
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return 0
	}
	return day
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
