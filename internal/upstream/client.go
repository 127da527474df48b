// Package upstream talks to the protected sales API. The API sits behind
// a shared secret; every request carries it in the X-Secret-Key header so
// the key never reaches a browser.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// VendasParams filters the realtime sales query. Either Date (single day)
// or the Start/End pair (period) is set.
type VendasParams struct {
	Date  string
	Start string
	End   string
}

// Client is an HTTP client for the sales API.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	logger    zerolog.Logger
}

// New creates a Client for the given base URL and secret key.
func New(baseURL, secretKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
		logger:    logger.With().Str("component", "upstream").Logger(),
	}
}

// RealtimeSales fetches per-store realized sales for a day or period.
func (c *Client) RealtimeSales(ctx context.Context, params VendasParams) (*models.VendasResponse, error) {
	q := url.Values{}
	if params.Date != "" {
		q.Set("data", params.Date)
	}
	if params.Start != "" {
		q.Set("data_inicio", params.Start)
	}
	if params.End != "" {
		q.Set("data_fim", params.End)
	}

	var resp models.VendasResponse
	if err := c.get(ctx, "/vendas-realtime", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch realtime sales: %w", err)
	}
	return &resp, nil
}

// SyncStatus fetches per-store data-sync freshness.
func (c *Client) SyncStatus(ctx context.Context) (*models.SyncStatusResponse, error) {
	var resp models.SyncStatusResponse
	if err := c.get(ctx, "/sync-status", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch sync status: %w", err)
	}
	return &resp, nil
}

// MonthTargets fetches the network-wide target feed for a month.
func (c *Client) MonthTargets(ctx context.Context, year, month int) (*models.MetasResponse, error) {
	q := url.Values{}
	q.Set("ano", strconv.Itoa(year))
	q.Set("mes", strconv.Itoa(month))

	var resp models.MetasResponse
	if err := c.get(ctx, "/metas", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch month targets: %w", err)
	}
	return &resp, nil
}

// DistributedTargets fetches one store's day-by-day target distribution.
func (c *Client) DistributedTargets(ctx context.Context, storeCode string, year, month int) (*models.MetasDistribuidaResponse, error) {
	q := url.Values{}
	q.Set("store_codigo", storeCode)
	q.Set("ano", strconv.Itoa(year))
	q.Set("mes", strconv.Itoa(month))

	var resp models.MetasDistribuidaResponse
	if err := c.get(ctx, "/metas/distribuida", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch distributed targets: %w", err)
	}
	return &resp, nil
}

// StatusError is returned when the upstream answers with a non-2xx code;
// proxy handlers pass the code through to their own caller.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %s", e.Status)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Secret-Key", c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
