package metas

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// RankStores cross-joins the network-wide target feed with the realized
// sales feed and produces the ranking, sorted descending by attainment.
//
// Every store with a target appears, even when absent from the sales
// feed (0% attainment, ranked last). A zero target yields 0% attainment
// regardless of realized sales. The benchmark here is the unweighted
// elapsed fraction of the month, a simpler reference than the per-store
// weighted figure since this view compares many stores at a glance.
// The sort is stable: ties keep the target feed's order.
func RankStores(targets []models.StoreTarget, sales []models.StoreSales, today, daysInMonth int) []models.StoreRankingEntry {
	salesByCode := make(map[string]models.StoreSales, len(sales))
	for _, s := range sales {
		salesByCode[s.StoreCode] = s
	}

	benchmark := expectedPacePercent(today, daysInMonth)

	entries := make([]models.StoreRankingEntry, 0, len(targets))
	for _, t := range targets {
		entry := models.StoreRankingEntry{
			StoreCode:   t.StoreCode,
			StoreName:   t.StoreCode,
			Region:      "N/A",
			TargetTotal: t.Target,
		}

		if s, ok := salesByCode[t.StoreCode]; ok {
			entry.RealizedTotal = s.TotalSales
			if s.StoreName != "" {
				entry.StoreName = s.StoreName
			}
			if s.Region != "" {
				entry.Region = s.Region
			}
		} else {
			entry.RealizedTotal = decimal.Zero
		}

		entry.AttainmentPercent = percentOf(entry.RealizedTotal, entry.TargetTotal)
		entry.Status = classifyAttainment(entry.AttainmentPercent, benchmark)
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AttainmentPercent.GreaterThan(entries[j].AttainmentPercent)
	})

	return entries
}

// expectedPacePercent is the unweighted fraction of the month elapsed,
// as a percentage. Zero when daysInMonth is zero.
func expectedPacePercent(today, daysInMonth int) decimal.Decimal {
	return percentOf(decimal.NewFromInt(int64(today)), decimal.NewFromInt(int64(daysInMonth)))
}
