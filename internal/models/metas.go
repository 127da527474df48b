package models

import (
	"github.com/shopspring/decimal"
)

// Performance status constants (wire values shared with the dashboard frontend)
const (
	StatusAhead   = "adiantado"
	StatusBehind  = "atrasado"
	StatusOnTrack = "no_prazo"
)

// Source kind constants for fused day values
const (
	SourceHistorical = "historical"
	SourceRealtime   = "realtime"
	SourceProjected  = "projected"
)

// MetaDay is a raw day record from the upstream meta-distribution feed.
// The upstream serializes numbers inconsistently (sometimes quoted, sometimes
// absent), so numeric fields decode through LenientDecimal. A record may carry
// an ISO date instead of a day number.
type MetaDay struct {
	Day            int            `json:"dia,omitempty"`
	Date           string         `json:"data,omitempty"`
	MetaValue      LenientDecimal `json:"meta_valor"`
	SuperMetaValue LenientDecimal `json:"super_meta_valor,omitempty"`
	Weight         LenientDecimal `json:"peso_aplicado"`
	ReportedSales  LenientDecimal `json:"venda_informada"`
}

// DayTarget is a normalized per-day target. All fields are non-negative;
// one record exists per calendar day of the queried month.
type DayTarget struct {
	Day            int             `json:"dia"`
	MetaValue      decimal.Decimal `json:"meta_valor"`
	SuperMetaValue decimal.Decimal `json:"super_meta_valor"`
	Weight         decimal.Decimal `json:"peso_aplicado"`
	ReportedSales  decimal.Decimal `json:"venda_informada"`
}

// MetasDistribuidaResponse is the upstream response for a store's
// day-by-day target distribution.
type MetasDistribuidaResponse struct {
	Days              []MetaDay       `json:"dias"`
	TotalMetaMonth    decimal.Decimal `json:"total_meta_mes"`
	SeasonalitySource string          `json:"sazonalidade_usada"`
}

// StoreTarget is one store's monthly target in the network-wide feed.
type StoreTarget struct {
	StoreCode string          `json:"loja_codigo"`
	Target    decimal.Decimal `json:"meta"`
}

// MetasResponse is the upstream response for the network-wide target feed.
type MetasResponse struct {
	Targets []StoreTarget `json:"metas"`
}

// LiveSales carries the two live figures for the current day. They answer
// different questions and must never be confused: Today is sales of the
// current day only, MonthToDate is the month's running total.
type LiveSales struct {
	Today       decimal.Decimal `json:"venda_hoje"`
	MonthToDate decimal.Decimal `json:"venda_mes"`
}

// FusedDay is one day of the fused timeline: the target joined with the
// authoritative actual value for that day's position relative to today.
type FusedDay struct {
	Day            int             `json:"dia"`
	MetaValue      decimal.Decimal `json:"meta_valor"`
	Weight         decimal.Decimal `json:"peso_aplicado"`
	ActualValue    decimal.Decimal `json:"venda_realizada"`
	ProjectedValue decimal.Decimal `json:"venda_projetada"`
	Delta          decimal.Decimal `json:"diferenca"`
	SourceKind     string          `json:"fonte"`
	IsRealized     bool            `json:"realizado"`
}

// PacingSnapshot is the month-to-date pacing verdict for one store.
type PacingSnapshot struct {
	MetaToDate        decimal.Decimal `json:"meta_acumulada"`
	ActualToDate      decimal.Decimal `json:"vendas_realizadas"`
	Difference        decimal.Decimal `json:"diferenca"`
	DifferencePercent decimal.Decimal `json:"percentual_diferenca"`
	Status            string          `json:"status"`
}

// TodayPerformance is the single-day verdict for the current day,
// independent of the month-level pacing signal.
type TodayPerformance struct {
	MetaToday           decimal.Decimal `json:"meta_hoje"`
	ActualToday         decimal.Decimal `json:"venda_hoje"`
	ProjectedToday      decimal.Decimal `json:"projecao_hoje"`
	DeltaVsMeta         decimal.Decimal `json:"diferenca_meta"`
	PercentVsMeta       decimal.Decimal `json:"percentual_meta"`
	DeltaVsProjection   decimal.Decimal `json:"diferenca_projecao"`
	PercentVsProjection decimal.Decimal `json:"percentual_projecao"`
	Status              string          `json:"status"`
}

// StoreRankingEntry is one store's position in the network-wide ranking.
type StoreRankingEntry struct {
	StoreCode         string          `json:"loja_codigo"`
	StoreName         string          `json:"loja_nome"`
	Region            string          `json:"regional"`
	TargetTotal       decimal.Decimal `json:"meta_total"`
	RealizedTotal     decimal.Decimal `json:"vendas_realizadas"`
	AttainmentPercent decimal.Decimal `json:"percentual_atingido"`
	Status            string          `json:"status"`
}
