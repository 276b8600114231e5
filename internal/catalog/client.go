package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"itemdeck/internal"
	"itemdeck/internal/config"
)

var ErrMissingBaseURL = errors.New("missing ITEMS_API_BASE_URL")

// PayloadCache stores raw upstream bodies by request key.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
	cache      PayloadCache
	logger     *slog.Logger
}

type ClientOption func(*Client)

func WithCache(cache PayloadCache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(cfg config.Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.ItemsTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.ItemsRateLimitRPS),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchItemsPayload returns the raw body of the items endpoint, from the cache when it holds one.
// With refresh set the cached copy is ignored and overwritten by the fetched body.
func (c *Client) FetchItemsPayload(ctx context.Context, refresh bool) ([]byte, error) {
	params := map[string]string{"language": c.cfg.ItemsAPILanguage}
	key := cacheKey("items", params)

	if c.cache != nil && !refresh {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("payload cache read failed", "key", key, "error", err)
		} else if ok {
			c.logger.Debug("payload cache hit", "key", key, "bytes", len(body))
			return body, nil
		}
	}

	body, err := c.fetchJSON(ctx, "items", params)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			c.logger.Warn("payload cache write failed", "key", key, "error", err)
		}
	}
	return body, nil
}

func (c *Client) FetchItems(ctx context.Context) ([]internal.RawItem, error) {
	body, err := c.FetchItemsPayload(ctx, false)
	if err != nil {
		return nil, err
	}
	items, skipped, err := DecodeItems(body)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		c.logger.Warn("skipped malformed item records", "count", skipped)
	}
	return items, nil
}

// DecodeItems decodes an items array record by record. Records that are not objects or fail to
// decode are skipped and counted.
func DecodeItems(body []byte) ([]internal.RawItem, int, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, errors.New("items payload is not valid JSON")
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return nil, 0, fmt.Errorf("items payload: expected array, got %s", res.Type)
	}

	items := make([]internal.RawItem, 0)
	skipped := 0
	res.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			skipped++
			return true
		}
		var item internal.RawItem
		if err := json.Unmarshal([]byte(value.Raw), &item); err != nil {
			skipped++
			return true
		}
		items = append(items, item)
		return true
	})
	return items, skipped, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.ItemsAPIBaseURL) == "" {
		return nil, ErrMissingBaseURL
	}

	baseURL := strings.TrimRight(c.cfg.ItemsAPIBaseURL, "/") + "/"
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

	maxAttempts := c.cfg.ItemsMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.WaitTurn(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		c.logger.Debug("items api request", "url", u.String(), "attempt", attempt)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.logger.Warn("items api request failed", "attempt", attempt, "error", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < maxAttempts {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				c.logger.Warn("items api retryable status", "status", resp.StatusCode, "attempt", attempt, "backoff", backoff)
				if err := sleepCtx(ctx, backoff); err != nil {
					return nil, err
				}
				lastErr = fmt.Errorf("items api status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("items api error: status=%d body=%s", resp.StatusCode, truncate(string(body), 512))
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("items request failed")
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

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cacheKey(endpoint string, params map[string]string) string {
	key := endpoint
	if lang := strings.TrimSpace(params["language"]); lang != "" {
		key += ":" + lang
	}
	return key
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
