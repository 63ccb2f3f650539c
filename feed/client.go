package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"feedwatch/domain"

	"github.com/sethvargo/go-retry"
)

// Source is the feed collaborator contract: it may return fewer items than
// requested and must be assumed rate-limited on the provider side.
type Source interface {
	Fetch(ctx context.Context, query Query) ([]domain.ContentItem, error)
}

var _ Source = (*Client)(nil)

// Client is a recent-search client for a v2-style social API. It only
// fetches; analysis happens downstream in the engine.
type Client struct {
	endpoint    string
	bearerToken string
	client      *http.Client
	baseDelay   time.Duration
	maxRetries  uint64
	log         *slog.Logger
}

func NewClient(endpoint, bearerToken string, timeout, baseDelay time.Duration, maxRetries uint64, log *slog.Logger) *Client {
	return &Client{
		endpoint:    endpoint,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: timeout},
		baseDelay:   baseDelay,
		maxRetries:  maxRetries,
		log:         log,
	}
}

type searchResponse struct {
	Data []Post `json:"data"`
}

func (c *Client) Fetch(ctx context.Context, query Query) ([]domain.ContentItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query.String())
	params.Set("max_results", strconv.Itoa(query.ClampCount()))
	params.Set("tweet.fields", "created_at,author_id,public_metrics")
	requestURL := c.endpoint + "?" + params.Encode()

	var result searchResponse
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			c.log.Warn("Feed provider busy", "status", resp.StatusCode)
			return retry.RetryableError(fmt.Errorf("provider returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.ContentItem, 0, len(result.Data))
	for _, post := range result.Data {
		items = append(items, post.ToContentItem())
	}
	c.log.Info("Feed page fetched", "requested", query.ClampCount(), "returned", len(items))
	return items, nil
}
