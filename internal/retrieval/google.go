package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/farxc/folha-assistente/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"
)

var GoogleSearchURL = "https://www.googleapis.com/customsearch/v1"

const defaultNumResults = 5

type googleResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		HTMLSnippet string `json:"htmlSnippet"`
	} `json:"items"`
}

// Google queries the Custom Search JSON API. Identical queries in flight at
// the same time share one HTTP request.
type Google struct {
	APIKey     string
	EngineID   string
	BaseURL    string
	NumResults int
	Client     *http.Client

	group  singleflight.Group
	logger *logger.Logger
}

func NewGoogle(apiKey, engineID string, appLogger *logger.Logger) *Google {
	return &Google{
		APIKey:     apiKey,
		EngineID:   engineID,
		BaseURL:    GoogleSearchURL,
		NumResults: defaultNumResults,
		Client:     &http.Client{},
		logger:     appLogger,
	}
}

func (g *Google) Retrieve(ctx context.Context, query string) (Result, error) {
	const component = "GoogleSearch"

	enriched := Enrich(query)
	ch := g.group.DoChan(enriched, func() (any, error) {
		return g.search(ctx, enriched)
	})

	var items []Item
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		items = r.Val.([]Item)
		if r.Shared {
			g.logger.Debug(component, "Shared in-flight search: query=%q", enriched)
		}
	}

	relevant := FilterWorkplace(items)
	g.logger.Info(component, "Search completed: query=%q items=%d relevant=%d", enriched, len(items), len(relevant))
	if len(relevant) == 0 {
		return Curated{}.Retrieve(ctx, query)
	}
	return Compose(relevant), nil
}

func (g *Google) search(ctx context.Context, query string) ([]Item, error) {
	const component = "GoogleSearch"

	params := url.Values{}
	params.Set("key", g.APIKey)
	params.Set("cx", g.EngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(g.NumResults))
	params.Set("lr", "lang_pt")
	params.Set("gl", "br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		g.logger.Error(component, "HTTP request failed: error=%v", err)
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.logger.Warn(component, "Non-OK HTTP response: status=%s body=%s", resp.Status, strings.TrimSpace(string(body)))
		return nil, fmt.Errorf("search returned %s", resp.Status)
	}

	var payload googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]Item, 0, len(payload.Items))
	for _, it := range payload.Items {
		snippet := it.Snippet
		if it.HTMLSnippet != "" {
			snippet = StripHTML(it.HTMLSnippet)
		}
		items = append(items, Item{Title: it.Title, Link: it.Link, Snippet: snippet})
	}
	return items, nil
}

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed.
func StripHTML(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte(' ')
			}
		}
	}
}
