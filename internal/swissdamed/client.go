package swissdamed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://swissdamed.ch"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"
	basicUDIsPath    = "/public/udi/basic-udis"
	maxAttempts      = 3
)

// ErrStatus is returned for non-2xx page responses.
var ErrStatus = errors.New("swissdamed: unexpected HTTP status")

type ClientConfig struct {
	BaseURL    string
	PageSize   int
	RatePerSec float64 // 0 = unlimited
	Timeout    time.Duration
	UserAgent  string
}

// Client pages through the public basic-UDI listing.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	pageSize    int
	userAgent   string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	backoff     func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	return &Client{
		httpClient:  &http.Client{Jar: jar, Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		pageSize:    cfg.PageSize,
		userAgent:   cfg.UserAgent,
		rateLimiter: rate.NewLimiter(limit, 1),
		logger:      logger,
		backoff:     exponentialBackoff,
	}
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// DownloadAll fetches pages until one is empty or shorter than the page size.
func (c *Client) DownloadAll(ctx context.Context) ([]any, error) {
	var all []any
	for page := 0; ; page++ {
		c.logger.Info().Int("page", page).Msg("fetching page")
		values, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			break
		}
		all = append(all, values...)
		c.logger.Info().Int("got", len(values)).Int("total", len(all)).Msg("page done")
		if len(values) < c.pageSize {
			break
		}
	}
	c.logger.Info().Int("items", len(all)).Msg("download complete")
	return all, nil
}

// fetchPage retries transport errors and 5xx responses; other statuses fail at once.
func (c *Client) fetchPage(ctx context.Context, page int) ([]any, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(c.pageSize))
	reqURL := c.baseURL + basicUDIsPath + "?" + q.Encode()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		values, retry, err := c.doPage(ctx, reqURL, page)
		if err == nil {
			return values, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
		c.logger.Warn().Err(err).Int("page", page).Int("attempt", attempt).Msg("page failed, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}
	return nil, lastErr
}

func (c *Client) doPage(ctx context.Context, reqURL string, page int) ([]any, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBufferString("{}"))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode >= 500, fmt.Errorf("%w: %d for page %d", ErrStatus, resp.StatusCode, page)
	}
	values, err := Decode(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("page %d: %w", page, err)
	}
	return values, false, nil
}
