package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreSales is one store's realized sales for the queried period,
// as returned by the upstream realtime sales endpoint.
type StoreSales struct {
	StoreCode     string          `json:"codigo"`
	StoreName     string          `json:"loja"`
	TotalQuantity decimal.Decimal `json:"total_quantidade"`
	TotalSales    decimal.Decimal `json:"venda_total"`
	SalesCount    int             `json:"numero_vendas"`
	Region        string          `json:"regional"`
	LastSentAt    string          `json:"tempo_ultimo_envio"`
	Cost          decimal.Decimal `json:"custo"`
}

// VendasResponse is the upstream realtime sales response.
type VendasResponse struct {
	QueryDate    string       `json:"data_consulta"`
	PeriodStart  string       `json:"periodo_inicio"`
	PeriodEnd    string       `json:"periodo_fim"`
	TotalRecords int          `json:"total_registros"`
	Source       string       `json:"fonte"`
	Sales        []StoreSales `json:"vendas"`
}

// StoreSyncStatus is one store's data-sync freshness record.
type StoreSyncStatus struct {
	StoreCode      string  `json:"codigo"`
	StoreName      string  `json:"loja"`
	Region         string  `json:"regional"`
	LastReceivedAt *string `json:"tempo_ultimo_recebimento"`
	LastSentAt     *string `json:"tempo_ultimo_envio"`
}

// SyncStatusResponse is the upstream sync-status response.
type SyncStatusResponse struct {
	QueryDate    string            `json:"data_consulta"`
	TotalRecords int               `json:"total_registros"`
	Stores       []StoreSyncStatus `json:"lojas"`
}

// DailySale is one closed day of a store's sales history.
type DailySale struct {
	Date  string          `json:"data"`
	Day   int             `json:"dia"`
	Total decimal.Decimal `json:"venda_total"`
}

// DailySalesHistory is the closed-day sales history for one store and
// month, served from the cache. Covers day 1 through yesterday.
type DailySalesHistory struct {
	StoreCode   string          `json:"store_codigo"`
	Year        int             `json:"ano"`
	Month       int             `json:"mes"`
	Days        []DailySale     `json:"dias"`
	PeriodTotal decimal.Decimal `json:"total_periodo"`
	ProcessedAt time.Time       `json:"processado_em"`
}

// DailyCloseEvent is the Kafka event emitted when a store's sales day
// is closed by the upstream consolidation job.
type DailyCloseEvent struct {
	EventType string    `json:"event_type"`
	StoreCode string    `json:"store_codigo"`
	Date      string    `json:"data"`
	Total     string    `json:"venda_total"`
	Timestamp time.Time `json:"timestamp"`
}
