package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/cache"
	"github.com/varejo-labs/vendas-dashboard/internal/database"
	"github.com/varejo-labs/vendas-dashboard/internal/metas"
	"github.com/varejo-labs/vendas-dashboard/internal/models"
	"github.com/varejo-labs/vendas-dashboard/internal/upstream"
)

// HistoryReader is the slice of the sales cache the handlers read.
type HistoryReader interface {
	GetDailySales(ctx context.Context, storeCode string, year, month int) (*models.DailySalesHistory, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    database.PermissionStore
	upstream *upstream.Client
	history  HistoryReader
	logger   zerolog.Logger

	// now supplies the real current time; every fused timeline is
	// classified against now().Day() no matter which month is queried.
	now func() time.Time
}

// NewHandler creates a new Handler
func NewHandler(store database.PermissionStore, client *upstream.Client, history HistoryReader, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		upstream: client,
		history:  history,
		logger:   logger.With().Str("component", "api").Logger(),
		now:      time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GetVendasRealtime handles GET /api/vendas-realtime. Thin proxy: the
// secret key stays server-side, query params pass through.
func (h *Handler) GetVendasRealtime(w http.ResponseWriter, r *http.Request) {
	params := upstream.VendasParams{
		Date:  r.URL.Query().Get("data"),
		Start: r.URL.Query().Get("data_inicio"),
		End:   r.URL.Query().Get("data_fim"),
	}

	resp, err := h.upstream.RealtimeSales(r.Context(), params)
	if err != nil {
		h.respondUpstreamError(w, err, "vendas-realtime")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetSyncStatus handles GET /api/sync-status
func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.upstream.SyncStatus(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err, "sync-status")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetMetas handles GET /api/metas (network-wide target feed)
func (h *Handler) GetMetas(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonthParams(w, r)
	if !ok {
		return
	}

	resp, err := h.upstream.MonthTargets(r.Context(), year, month)
	if err != nil {
		h.respondUpstreamError(w, err, "metas")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetMetasDistribuida handles GET /api/metas/distribuida
func (h *Handler) GetMetasDistribuida(w http.ResponseWriter, r *http.Request) {
	storeCode, year, month, ok := h.storeMonthParams(w, r)
	if !ok {
		return
	}

	resp, err := h.upstream.DistributedTargets(r.Context(), storeCode, year, month)
	if err != nil {
		h.respondUpstreamError(w, err, "metas/distribuida")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetVendasDiarias handles GET /api/metas/vendas-diarias (closed-day
// history from the cache)
func (h *Handler) GetVendasDiarias(w http.ResponseWriter, r *http.Request) {
	storeCode, year, month, ok := h.storeMonthParams(w, r)
	if !ok {
		return
	}

	history, err := h.history.GetDailySales(r.Context(), storeCode, year, month)
	if errors.Is(err, cache.ErrNotFound) {
		respondError(w, http.StatusNotFound, "nenhum histórico para o período")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("store", storeCode).Msg("failed to read sales history")
		respondError(w, http.StatusInternalServerError, "erro ao carregar histórico")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// GetMetasFusao handles GET /api/metas/fusao: the fused per-day timeline
// for one store and month.
func (h *Handler) GetMetasFusao(w http.ResponseWriter, r *http.Request) {
	storeCode, year, month, ok := h.storeMonthParams(w, r)
	if !ok {
		return
	}

	fused, _, err := h.fusedMonth(r.Context(), storeCode, year, month)
	if err != nil {
		h.respondUpstreamError(w, err, "metas/fusao")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"dias": fused})
}

// pacingResponse joins the month verdict with the weighted elapsed figure.
type pacingResponse struct {
	models.PacingSnapshot
	WeightedElapsedPercent decimal.Decimal `json:"percentual_decorrido"`
}

// GetMetasPacing handles GET /api/metas/pacing
func (h *Handler) GetMetasPacing(w http.ResponseWriter, r *http.Request) {
	storeCode, year, month, ok := h.storeMonthParams(w, r)
	if !ok {
		return
	}

	fused, live, err := h.fusedMonth(r.Context(), storeCode, year, month)
	if err != nil {
		h.respondUpstreamError(w, err, "metas/pacing")
		return
	}

	respondJSON(w, http.StatusOK, pacingResponse{
		PacingSnapshot:         metas.ComputePacing(fused, live.MonthToDate),
		WeightedElapsedPercent: metas.WeightedElapsedPercent(fused),
	})
}

// GetMetasHoje handles GET /api/metas/hoje: today's single-day verdict,
// kept separate from the month-level pacing signal.
func (h *Handler) GetMetasHoje(w http.ResponseWriter, r *http.Request) {
	storeCode, year, month, ok := h.storeMonthParams(w, r)
	if !ok {
		return
	}

	fused, live, err := h.fusedMonth(r.Context(), storeCode, year, month)
	if err != nil {
		h.respondUpstreamError(w, err, "metas/hoje")
		return
	}

	today, found := metas.FindToday(fused, h.now().Day())
	if !found {
		respondError(w, http.StatusNotFound, "o período consultado não contém o dia atual")
		return
	}
	respondJSON(w, http.StatusOK, metas.CompareToday(today, live.Today))
}

// GetMetasRanking handles GET /api/metas/ranking: network-wide store
// ranking for the queried month.
func (h *Handler) GetMetasRanking(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonthParams(w, r)
	if !ok {
		return
	}

	targets, err := h.upstream.MonthTargets(r.Context(), year, month)
	if err != nil {
		h.respondUpstreamError(w, err, "metas/ranking")
		return
	}

	// Realized sales are bounded to the queried month; for the current
	// month the window stops at today.
	now := h.now()
	end := lastOfMonth(year, month)
	if year == now.Year() && month == int(now.Month()) {
		end = isoDate(now)
	}
	sales, err := h.upstream.RealtimeSales(r.Context(), upstream.VendasParams{
		Start: firstOfMonth(year, month),
		End:   end,
	})
	if err != nil {
		h.respondUpstreamError(w, err, "metas/ranking")
		return
	}

	ranking := metas.RankStores(targets.Targets, sales.Sales, now.Day(), daysInMonth(now.Year(), int(now.Month())))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ranking": ranking})
}

// GetRLSConfig handles GET /api/rls/config
func (h *Handler) GetRLSConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.store.GetRLSConfig()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load RLS config")
		respondError(w, http.StatusInternalServerError, "erro ao carregar configurações")
		return
	}
	respondJSON(w, http.StatusOK, config)
}

// SaveRLSConfig handles POST /api/rls/config
func (h *Handler) SaveRLSConfig(w http.ResponseWriter, r *http.Request) {
	var config models.RLSConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if err := h.store.ReplaceRLSConfig(&config); err != nil {
		h.logger.Error().Err(err).Msg("failed to save RLS config")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "erro ao salvar configuração",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "configuração salva com sucesso",
	})
}

// GetUserPermissions handles GET /api/rls/user/{userId}
func (h *Handler) GetUserPermissions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "userId inválido")
		return
	}

	perms, err := h.store.GetUserPermissions(userID)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", userID).Msg("failed to load user permissions")
		respondError(w, http.StatusInternalServerError, "erro ao buscar permissões")
		return
	}
	respondJSON(w, http.StatusOK, perms)
}

// fusedMonth assembles the fused timeline for one store and month:
// distributed targets from the upstream feed, closed-day history from
// the cache, and the two live figures from the realtime endpoint.
func (h *Handler) fusedMonth(ctx context.Context, storeCode string, year, month int) ([]models.FusedDay, models.LiveSales, error) {
	dist, err := h.upstream.DistributedTargets(ctx, storeCode, year, month)
	if err != nil {
		return nil, models.LiveSales{}, err
	}

	targets := metas.NormalizeMonth(dist.Days, h.logger)

	history, err := h.history.GetDailySales(ctx, storeCode, year, month)
	if err == nil {
		targets = metas.ApplyDailySales(targets, history.Days)
	} else if !errors.Is(err, cache.ErrNotFound) {
		// History is an enrichment; the feed's own figures still stand.
		h.logger.Warn().Err(err).Str("store", storeCode).Msg("sales history unavailable")
	}

	live, err := h.liveSales(ctx, storeCode)
	if err != nil {
		return nil, models.LiveSales{}, err
	}

	return metas.FuseMonth(targets, live, h.now().Day()), live, nil
}

// liveSales fetches the two live scalars for one store: sales so far
// today and sales so far this month.
func (h *Handler) liveSales(ctx context.Context, storeCode string) (models.LiveSales, error) {
	now := h.now()
	today := isoDate(now)

	dayResp, err := h.upstream.RealtimeSales(ctx, upstream.VendasParams{Date: today})
	if err != nil {
		return models.LiveSales{}, err
	}

	monthResp, err := h.upstream.RealtimeSales(ctx, upstream.VendasParams{
		Start: firstOfMonth(now.Year(), int(now.Month())),
		End:   today,
	})
	if err != nil {
		return models.LiveSales{}, err
	}

	return models.LiveSales{
		Today:       storeTotal(dayResp.Sales, storeCode),
		MonthToDate: storeTotal(monthResp.Sales, storeCode),
	}, nil
}

func storeTotal(sales []models.StoreSales, storeCode string) decimal.Decimal {
	for _, s := range sales {
		if s.StoreCode == storeCode {
			return s.TotalSales
		}
	}
	return decimal.Zero
}

func (h *Handler) storeMonthParams(w http.ResponseWriter, r *http.Request) (storeCode string, year, month int, ok bool) {
	storeCode = r.URL.Query().Get("store_codigo")
	if storeCode == "" {
		respondError(w, http.StatusBadRequest, "store_codigo é obrigatório")
		return "", 0, 0, false
	}
	year, month, ok = h.yearMonthParams(w, r)
	return storeCode, year, month, ok
}

func (h *Handler) yearMonthParams(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	now := h.now()
	year, month = now.Year(), int(now.Month())

	if v := r.URL.Query().Get("ano"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2100 {
			respondError(w, http.StatusBadRequest, "ano inválido")
			return 0, 0, false
		}
		year = n
	}
	if v := r.URL.Query().Get("mes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			respondError(w, http.StatusBadRequest, "mes inválido")
			return 0, 0, false
		}
		month = n
	}
	return year, month, true
}

func (h *Handler) respondUpstreamError(w http.ResponseWriter, err error, endpoint string) {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		respondError(w, statusErr.Code, fmt.Sprintf("erro ao buscar %s: %s", endpoint, statusErr.Status))
		return
	}
	h.logger.Error().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
	respondError(w, http.StatusInternalServerError, "erro interno do servidor")
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func firstOfMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d-01", year, month)
}

func lastOfMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, daysInMonth(year, month))
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
