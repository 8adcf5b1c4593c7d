package dajiala

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	listingEndpoint = "/fbmain/monitor/v3/post_history"
	contentEndpoint = "/fbmain/monitor/v3/article_html"
	detailEndpoint  = "/fbmain/monitor/v3/article_detail"
)

// Config holds client configuration.
type Config struct {
	BaseURL         string
	Key             string
	PageSize        int
	ListingTimeout  time.Duration
	ContentTimeout  time.Duration
	ListingInterval time.Duration
	ContentInterval time.Duration
	ListingPrice    float64
	ContentPrice    float64
}

// Client calls the metered upstream API. Every outbound call waits on
// the endpoint class's pacer first, so callers never sleep themselves.
// One Client serves one credential; calls are expected to be sequential.
type Client struct {
	listingHTTP  *http.Client
	contentHTTP  *http.Client
	baseURL      string
	key          string
	pageSize     int
	listingPrice float64
	contentPrice float64
	listingPacer *rate.Limiter
	contentPacer *rate.Limiter
	logger       *slog.Logger
}

// New creates a client. A zero pacing interval disables pacing for that
// endpoint class, which the tests rely on.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		listingHTTP:  &http.Client{Timeout: cfg.ListingTimeout},
		contentHTTP:  &http.Client{Timeout: cfg.ContentTimeout},
		baseURL:      cfg.BaseURL,
		key:          cfg.Key,
		pageSize:     cfg.PageSize,
		listingPrice: cfg.ListingPrice,
		contentPrice: cfg.ContentPrice,
		listingPacer: newPacer(cfg.ListingInterval),
		contentPacer: newPacer(cfg.ContentInterval),
		logger:       logger.With("source", "dajiala"),
	}
}

func newPacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// FetchListing fetches one zero-based page of an account's post history.
func (c *Client) FetchListing(ctx context.Context, biz string, page int) (*ListingResult, error) {
	if err := c.listingPacer.Wait(ctx); err != nil {
		return nil, &TransportError{Err: err}
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("biz", biz)
	params.Set("page", strconv.Itoa(page))
	params.Set("count", strconv.Itoa(c.pageSize))

	env, err := c.get(ctx, c.listingHTTP, listingEndpoint, params)
	if err != nil {
		return nil, err
	}
	if env.Code != 0 {
		return nil, &UpstreamError{Code: env.Code, Message: env.Msg}
	}

	var items []listingItem
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, &DecodeError{Endpoint: "post_history", Err: err}
		}
	}

	result := &ListingResult{
		TotalNum:    env.TotalNum,
		TotalPage:   env.TotalPage,
		Cost:        c.listingCost(env),
		RemainMoney: env.RemainMoney,
	}
	for _, item := range items {
		result.Items = append(result.Items, item.toDomain())
	}

	c.logger.Debug("fetched listing page",
		"biz", biz,
		"page", page,
		"items", len(result.Items),
		"total_page", result.TotalPage,
	)

	return result, nil
}

// FetchContent fetches an article's full HTML content.
func (c *Client) FetchContent(ctx context.Context, articleURL string) (*ContentResult, error) {
	return c.fetchArticle(ctx, contentEndpoint, articleURL)
}

// FetchDetail fetches an article's text content and author via the
// detail endpoint.
func (c *Client) FetchDetail(ctx context.Context, articleURL string) (*ContentResult, error) {
	return c.fetchArticle(ctx, detailEndpoint, articleURL)
}

// fetchArticle returns a non-nil result with the attributed cost even on
// API-level failures: the upstream bills rejected content calls. Only a
// transport failure costs nothing.
func (c *Client) fetchArticle(ctx context.Context, endpoint, articleURL string) (*ContentResult, error) {
	if err := c.contentPacer.Wait(ctx); err != nil {
		return nil, &TransportError{Err: err}
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("url", articleURL)

	env, err := c.get(ctx, c.contentHTTP, endpoint, params)
	if err != nil {
		return nil, err
	}

	cost := c.contentCost(env)
	if env.Code != 0 {
		return &ContentResult{Cost: cost}, &UpstreamError{Code: env.Code, Message: env.Msg}
	}

	var data contentData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return &ContentResult{Cost: cost}, &DecodeError{Endpoint: endpoint, Err: err}
		}
	}

	body := data.HTML
	if body == "" {
		body = data.Content
	}

	result := &ContentResult{Content: body, Author: data.Author, Cost: cost}
	if body == "" {
		return result, ErrEmptyContent
	}
	return result, nil
}

// Balance queries the remaining prepaid balance with the cheapest
// possible listing call (a single item).
func (c *Client) Balance(ctx context.Context, biz string) (*BalanceResult, error) {
	if err := c.listingPacer.Wait(ctx); err != nil {
		return nil, &TransportError{Err: err}
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("biz", biz)
	params.Set("page", "0")
	params.Set("count", "1")

	env, err := c.get(ctx, c.listingHTTP, listingEndpoint, params)
	if err != nil {
		return nil, err
	}
	if env.Code != 0 {
		return nil, &UpstreamError{Code: env.Code, Message: env.Msg}
	}

	return &BalanceResult{RemainMoney: env.RemainMoney, Cost: c.listingCost(env)}, nil
}

func (c *Client) get(ctx context.Context, httpClient *http.Client, endpoint string, params url.Values) (*envelope, error) {
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "WeChatFetcher/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Err: fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}

	return &env, nil
}

func (c *Client) listingCost(env *envelope) float64 {
	if env.CostMoney > 0 {
		return env.CostMoney
	}
	return c.listingPrice
}

func (c *Client) contentCost(env *envelope) float64 {
	if env.CostMoney > 0 {
		return env.CostMoney
	}
	return c.contentPrice
}
