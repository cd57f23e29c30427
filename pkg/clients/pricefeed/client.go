package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/recipecalc/internal/config"
	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// Client fetches an ingredient price list published as a data.json-style
// document.
type Client interface {
	FetchIngredients(ctx context.Context) ([]models.IngredientSource, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a feed client using the provided configuration values.
func NewClient(cfg config.PriceFeedConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// FetchIngredients downloads and decodes the feed.
func (c *APIClient) FetchIngredients(ctx context.Context) ([]models.IngredientSource, error) {
	var rows []models.IngredientSource

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&rows).
		ForceContentType("application/json").
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch price feed: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("price feed error: code=%d, body=%s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	return rows, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
