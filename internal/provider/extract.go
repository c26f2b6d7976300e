package provider

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/arjunvn/stocklens/internal/model"
)

// Field extraction is an ordered first-match chain: newer provider payloads
// nest everything under a "content" object, older ones are flat, and the url
// hides under several alternate keys. Each chain is tried in order until a
// path yields a usable value.
var (
	titlePaths     = []string{"content.title", "title"}
	summaryPaths   = []string{"content.summary", "content.description", "summary", "description"}
	urlPaths       = []string{"content.link", "content.canonicalUrl.url", "content.clickThroughUrl.url", "link", "canonicalUrl.url", "clickThroughUrl.url"}
	publisherPaths = []string{"content.publisher", "content.provider.displayName", "publisher", "provider.displayName"}
	timePaths      = []string{"content.providerPublishTime", "content.pubDate", "providerPublishTime", "pubDate"}
)

// extractNewsItem builds a NewsItem from one raw record. ok is false when no
// title can be extracted; a title is mandatory, everything else degrades to
// nil.
func extractNewsItem(rec gjson.Result) (model.NewsItem, bool) {
	title := firstString(rec, titlePaths)
	if title == "" {
		return model.NewsItem{}, false
	}

	item := model.NewsItem{
		Headline: title,
		Summary:  firstString(rec, summaryPaths),
	}

	if u := firstString(rec, urlPaths); u != "" {
		item.URL = &u
	}
	if p := firstString(rec, publisherPaths); p != "" {
		item.Publisher = &p
	}
	item.PublishedAt = extractPublishedAt(rec)

	return item, true
}

// firstString returns the first non-empty string value along the chain.
func firstString(rec gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := rec.Get(p); v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// extractPublishedAt handles both publish-time encodings seen in the wild:
// a Unix timestamp in seconds, or an ISO-8601 string with a trailing UTC
// designator. Unparseable values yield nil, never an error.
func extractPublishedAt(rec gjson.Result) *time.Time {
	for _, p := range timePaths {
		v := rec.Get(p)
		if !v.Exists() {
			continue
		}

		switch v.Type {
		case gjson.Number:
			t := time.Unix(v.Int(), 0).UTC()
			return &t
		case gjson.String:
			if t, err := time.Parse(time.RFC3339, v.String()); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}
