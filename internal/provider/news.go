package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/arjunvn/stocklens/internal/model"
)

// FetchNews fetches recent news records for a symbol. Raw records arrive in
// provider-specific, inconsistently-nested shapes; each one goes through the
// extractor chains in extract.go. Records with no extractable title are
// dropped here; null url/publisher/published_at are permitted states.
func (c *Client) FetchNews(ctx context.Context, sym string) ([]model.NewsItem, error) {
	query := url.Values{}
	query.Set("q", sym)
	query.Set("newsCount", strconv.Itoa(c.newsCount))
	query.Set("quotesCount", "0")

	body, err := c.get(ctx, "/v1/finance/search", query)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			c.logger.Debug("no news endpoint match", "symbol", sym)
			return nil, nil
		}
		return nil, fmt.Errorf("fetch news %s: %w", sym, err)
	}

	records := gjson.GetBytes(body, "news").Array()
	items := make([]model.NewsItem, 0, len(records))
	for _, rec := range records {
		item, ok := extractNewsItem(rec)
		if !ok {
			c.logger.Debug("dropping news record without title", "symbol", sym)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}
