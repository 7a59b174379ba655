// Package backend talks to the search/proxy API. It is the only code that
// performs network I/O, and it never sends cookies or credentials.
package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"shroud/internal/domain"
	"shroud/internal/retry"
)

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration // zero keeps the transport default
	Logger    *zap.Logger
	OnAttempt func(attempt int, url string) // proxy fetch attempts, for logging and tests
}

// Client performs search, proxy fetch and session reset against the backend
type Client struct {
	endpoints Endpoints
	api       *resty.Client // search and reset, no retry
	proxy     *resty.Client // proxy fetch, one retry
	log       *zap.Logger
}

// NewClient creates a backend client
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("backend")

	api := newResty(&http.Client{Timeout: opts.Timeout}, logger)
	proxy := newResty(retry.NewHTTPClient(retry.Options{
		Timeout:   opts.Timeout,
		Logger:    logger,
		OnAttempt: opts.OnAttempt,
	}), logger)

	return &Client{
		endpoints: NewEndpoints(opts.BaseURL),
		api:       api,
		proxy:     proxy,
		log:       logger,
	}
}

func newResty(hc *http.Client, logger *zap.Logger) *resty.Client {
	return resty.NewWithClient(hc).
		SetCookieJar(nil).
		SetLogger(logger.Sugar()).
		SetHeader("Accept", "application/json")
}

// Endpoints exposes the address builder
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Search queries the index. Non-array or malformed bodies are treated as no
// results; at most domain.MaxResults are returned in backend order.
func (c *Client) Search(ctx context.Context, term string) ([]domain.SearchResult, error) {
	resp, err := c.api.R().SetContext(ctx).Get(c.endpoints.Search(term))
	if err != nil {
		return nil, domain.ErrSearchFailed(0, err)
	}
	if !resp.IsSuccess() {
		return nil, domain.ErrSearchFailed(resp.StatusCode(), nil)
	}

	var results []domain.SearchResult
	if err := sonic.Unmarshal(resp.Body(), &results); err != nil {
		c.log.Debug("search response is not a result array", zap.Error(err))
		return []domain.SearchResult{}, nil
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	if len(results) > domain.MaxResults {
		results = results[:domain.MaxResults]
	}
	return results, nil
}

// FetchPage loads target through the proxy endpoint, retrying once on failure.
// The returned url and html are the backend's, unmodified.
func (c *Client) FetchPage(ctx context.Context, target string) (domain.Page, error) {
	resp, err := c.proxy.R().SetContext(ctx).Get(c.endpoints.Proxy(target))
	if err != nil {
		return domain.Page{}, domain.ErrProxyFetchFailed(0, err)
	}
	if !resp.IsSuccess() {
		return domain.Page{}, domain.ErrProxyFetchFailed(resp.StatusCode(), nil)
	}

	var page domain.Page
	if err := sonic.Unmarshal(resp.Body(), &page); err != nil {
		return domain.Page{}, domain.ErrProxyFetchFailed(resp.StatusCode(), err)
	}
	return page, nil
}

// ResetSession asks the backend to drop its session state. Failures are
// logged and otherwise ignored.
func (c *Client) ResetSession(ctx context.Context) {
	resp, err := c.api.R().SetContext(ctx).Post(c.endpoints.Reset())
	switch {
	case err != nil:
		c.log.Debug("session reset failed", zap.Error(err))
	case !resp.IsSuccess():
		c.log.Debug("session reset rejected", zap.Int("status", resp.StatusCode()))
	}
}
