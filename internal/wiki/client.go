// Package wiki is a read-only client for the RuneScape wiki's MediaWiki API:
// article search, rendered-page fetch, and category listings.
package wiki

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"charm.land/log/v2"

	"github.com/damianpoole/Loadstone/internal/config"
	"github.com/damianpoole/Loadstone/internal/fetch"
)

// DefaultEndpoint is the wiki's API entry point.
const DefaultEndpoint = "https://runescape.wiki/api.php"

// articleBase is the canonical prefix for human-readable article URLs.
const articleBase = "https://runescape.wiki/w/"

// searchLimit caps search responses; search is a preview, not a listing.
const searchLimit = 5

// DefaultCategoryLimit caps category listings when the caller does not
// supply a limit.
const DefaultCategoryLimit = 50

const categoryPrefix = "Category:"

var tagRE = regexp.MustCompile(`<[^>]*>`)

// SearchResult is one search hit with its snippet reduced to plain text.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	URL     string `json:"url"`
}

// Page is a rendered article. Extract holds the raw article HTML; callers
// run it through wikitext.Parse so section filtering can happen before the
// final output shape is materialized.
type Page struct {
	Title    string
	PageID   int
	Revision int64
	URL      string
	Extract  string
}

// ClientConfig configures a Client. Zero values fall back to the production
// endpoint, a disabled cache, and the default logger.
type ClientConfig struct {
	Endpoint string
	Cache    config.Cache
	Logger   *log.Logger
}

// Client issues wiki API requests through the caching JSON fetcher.
type Client struct {
	endpoint string
	cache    config.Cache
	log      *log.Logger
}

// NewClient returns a Client for the given configuration.
func NewClient(cfg ClientConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Client{endpoint: endpoint, cache: cfg.Cache, log: logger}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchEnvelope struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search returns up to five relevance-ranked hits for query. Search is
// advisory: a transport failure is logged and yields an empty slice, never
// an error.
func (c *Client) Search(ctx context.Context, query string) []SearchResult {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(searchLimit))
	params.Set("format", "json")

	var envelope searchEnvelope
	if err := fetch.JSON(ctx, c.requestURL(params), c.fetchOptions(), &envelope); err != nil {
		c.log.Warn("wiki search failed", "query", query, "err", err)
		return []SearchResult{}
	}

	results := make([]SearchResult, 0, len(envelope.Query.Search))
	for _, hit := range envelope.Query.Search {
		results = append(results, SearchResult{
			Title:   hit.Title,
			Snippet: stripMarkup(hit.Snippet),
			URL:     ArticleURL(hit.Title),
		})
	}
	return results
}

type parseEnvelope struct {
	Parse *struct {
		Title  string `json:"title"`
		PageID int    `json:"pageid"`
		RevID  int64  `json:"revid"`
		Text   struct {
			Content string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

// Page fetches the rendered article for title, following redirects. A
// missing title (API error envelope) or a transport failure yields nil;
// transport failures are additionally logged. Callers treat nil uniformly
// as "nothing to show".
func (c *Client) Page(ctx context.Context, title string) *Page {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text|properties|displaytitle|revid")
	params.Set("redirects", "1")
	params.Set("format", "json")

	var envelope parseEnvelope
	if err := fetch.JSON(ctx, c.requestURL(params), c.fetchOptions(), &envelope); err != nil {
		c.log.Warn("wiki page fetch failed", "title", title, "err", err)
		return nil
	}
	if envelope.Error != nil || envelope.Parse == nil {
		if envelope.Error != nil {
			c.log.Debug("wiki reported error", "title", title, "code", envelope.Error.Code, "info", envelope.Error.Info)
		}
		return nil
	}

	return &Page{
		Title:    envelope.Parse.Title,
		PageID:   envelope.Parse.PageID,
		Revision: envelope.Parse.RevID,
		URL:      ArticleURL(envelope.Parse.Title),
		Extract:  envelope.Parse.Text.Content,
	}
}

type categoryEnvelope struct {
	Query struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// CategoryMembers lists up to limit member titles of a category, adding the
// "Category:" prefix when absent. Like Search it degrades to an empty slice
// on failure.
func (c *Client) CategoryMembers(ctx context.Context, category string, limit int) []string {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	if !strings.HasPrefix(category, categoryPrefix) {
		category = categoryPrefix + category
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "categorymembers")
	params.Set("cmtitle", category)
	params.Set("cmlimit", strconv.Itoa(limit))
	params.Set("format", "json")

	var envelope categoryEnvelope
	if err := fetch.JSON(ctx, c.requestURL(params), c.fetchOptions(), &envelope); err != nil {
		c.log.Warn("wiki category listing failed", "category", category, "err", err)
		return []string{}
	}

	titles := make([]string, 0, len(envelope.Query.CategoryMembers))
	for _, member := range envelope.Query.CategoryMembers {
		titles = append(titles, member.Title)
	}
	return titles
}

// ArticleURL builds the canonical article URL for a title: spaces become
// underscores, the rest is percent-encoded.
func ArticleURL(title string) string {
	return articleBase + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func (c *Client) requestURL(params url.Values) string {
	return c.endpoint + "?" + params.Encode()
}

func (c *Client) fetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Cache = c.cache
	opts.Logger = c.log
	return opts
}

// stripMarkup reduces a search snippet to plain text: tags removed, HTML
// entities decoded, whitespace collapsed.
func stripMarkup(snippet string) string {
	text := tagRE.ReplaceAllString(snippet, "")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
