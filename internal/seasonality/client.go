// Package seasonality maintains the supply-level reference table used to
// annotate report runs. The table is consumed read-only by the pipeline;
// it never transforms pricing rows.
package seasonality

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"relatorios/internal"
	"relatorios/internal/config"
)

// Client pulls the seasonality reference table from the external
// tabular warehouse.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	pacer      *Pacer
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type tablePayload struct {
	Rows []map[string]any `json:"rows"`
}

var monthKeys = [12]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.SeasonalityTimeoutMs) * time.Millisecond},
		pacer:      NewPacer(time.Duration(cfg.SeasonalityIntervalMs) * time.Millisecond),
	}
}

// GetReferenceTable fetches the full seasonality table.
func (c *Client) GetReferenceTable(ctx context.Context) ([]internal.SeasonalityRow, error) {
	body, err := c.fetchJSON(ctx, "seasonality/table", map[string]string{})
	if err != nil {
		return nil, err
	}

	var payload tablePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	out := make([]internal.SeasonalityRow, 0, len(payload.Rows))
	for _, raw := range payload.Rows {
		row, err := toSeasonalityRow(raw)
		if err != nil {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.SeasonalityAPIBaseURL) == "" {
		return nil, errors.New("missing SEASONALITY_API_BASE_URL")
	}
	if strings.TrimSpace(c.cfg.SeasonalityAPIToken) == "" {
		return nil, errors.New("missing SEASONALITY_API_TOKEN")
	}

	baseURL := strings.TrimRight(c.cfg.SeasonalityAPIBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	for k, v := range params {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.SeasonalityAPIToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				lastErr = fmt.Errorf("warehouse status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("warehouse api error: status=%d body=%s", resp.StatusCode, string(body))
		}

		var apiResp apiResponse
		if err := json.Unmarshal(body, &apiResp); err != nil {
			return nil, err
		}
		if !apiResp.Success {
			return nil, fmt.Errorf("warehouse api unsuccessful: %s", string(apiResp.Errors))
		}
		return apiResp.Data, nil
	}

	if lastErr == nil {
		lastErr = errors.New("warehouse request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func toSeasonalityRow(raw map[string]any) (internal.SeasonalityRow, error) {
	external, _ := raw["externalCode"].(string)
	external = strings.TrimSpace(external)
	if external == "" {
		return internal.SeasonalityRow{}, errors.New("empty externalCode")
	}

	row := internal.SeasonalityRow{ExternalCode: external}
	row.InternalCode, _ = raw["internalCode"].(string)
	row.ClientSpec, _ = raw["clientSpec"].(string)
	row.Unit, _ = raw["unit"].(string)
	if strings.TrimSpace(row.InternalCode) == "" {
		return internal.SeasonalityRow{}, errors.New("empty internalCode")
	}

	for i, key := range monthKeys {
		if v, ok := raw[key].(string); ok {
			row.Months[i] = strings.ToUpper(strings.TrimSpace(v))
		}
	}
	return row, nil
}
