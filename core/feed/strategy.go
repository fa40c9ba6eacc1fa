// ABOUTME: Proxy strategies tried in order when fetching a registered feed
// ABOUTME: Each strategy builds its own request URL and decodes its own response shape

package feed

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	coreerrors "portfolio-feeds-api/core/errors"
)

// Strategy identifies one proxy service
type Strategy int

const (
	// StrategyPrimary is the JSON aggregator (rss2json style)
	StrategyPrimary Strategy = iota

	// StrategyRelay is the raw content relay (allorigins style)
	StrategyRelay

	// StrategyDirect fetches the raw feed through a CORS relay; decoding is not implemented
	StrategyDirect
)

// DefaultStrategies is the order in which proxy services are tried
var DefaultStrategies = []Strategy{StrategyPrimary, StrategyRelay, StrategyDirect}

// String returns the strategy name used in logs and errors
func (s Strategy) String() string {
	switch s {
	case StrategyPrimary:
		return "primary"
	case StrategyRelay:
		return "relay"
	case StrategyDirect:
		return "direct"
	default:
		return "strategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// Endpoints holds the base URLs of the proxy services
type Endpoints struct {
	PrimaryURL    string
	PrimaryAPIKey string
	RelayURL      string
	DirectURL     string
}

// rawItem is a proxy item before normalization
type rawItem struct {
	Title       string
	Link        string
	Description string
	Content     string
	PubDate     string
	IsoDate     string
	Published   *time.Time
	Categories  []string
}

// requestURL builds the URL a strategy requests for the given feed
func (s Strategy) requestURL(ep Endpoints, rssURL string, count int) (string, error) {
	switch s {
	case StrategyPrimary:
		return withQuery(ep.PrimaryURL, func(q url.Values) {
			q.Set("rss_url", rssURL)
			if ep.PrimaryAPIKey != "" {
				q.Set("api_key", ep.PrimaryAPIKey)
			}
			q.Set("count", strconv.Itoa(count))
		})
	case StrategyRelay:
		return withQuery(ep.RelayURL, func(q url.Values) {
			q.Set("url", rssURL)
		})
	case StrategyDirect:
		if ep.DirectURL == "" {
			return rssURL, nil
		}
		return strings.TrimSuffix(ep.DirectURL, "/") + "/" + rssURL, nil
	default:
		return "", fmt.Errorf("unknown strategy %d", int(s))
	}
}

func withQuery(base string, set func(q url.Values)) (string, error) {
	if base == "" {
		return "", errors.New("proxy URL not configured")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid proxy URL: %w", err)
	}

	q := u.Query()
	set(q)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// decode turns a proxy response body into raw items
func (s Strategy) decode(body []byte, rssURL string, count int) ([]rawItem, error) {
	switch s {
	case StrategyPrimary:
		return decodePrimary(body)
	case StrategyRelay:
		return decodeRelay(body, rssURL, count)
	default:
		return nil, fmt.Errorf("%s decode: %w", s, coreerrors.ErrNotImplemented)
	}
}

type primaryResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Items   json.RawMessage `json:"items"`
}

type primaryItem struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	PubDate     string   `json:"pubDate"`
	IsoDate     string   `json:"isoDate"`
	Categories  []string `json:"categories"`
}

func decodePrimary(body []byte) ([]rawItem, error) {
	source := StrategyPrimary.String()

	var resp primaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &coreerrors.DecodeError{Source: source, Message: "invalid JSON", Err: err}
	}

	if resp.Status != "ok" {
		msg := resp.Message
		if msg == "" {
			msg = "RSS feed returned an error"
		}
		return nil, &coreerrors.DecodeError{Source: source, Message: msg}
	}

	var items []primaryItem
	trimmed := strings.TrimSpace(string(resp.Items))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, &coreerrors.DecodeError{Source: source, Message: "Invalid feed response: no items found"}
	}
	if err := json.Unmarshal(resp.Items, &items); err != nil {
		return nil, &coreerrors.DecodeError{Source: source, Message: "Invalid feed response: malformed items", Err: err}
	}

	if len(items) == 0 {
		return nil, &coreerrors.DecodeError{Source: source, Message: "feed has no items"}
	}

	raw := make([]rawItem, 0, len(items))
	for _, item := range items {
		raw = append(raw, rawItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Content:     item.Content,
			PubDate:     item.PubDate,
			IsoDate:     item.IsoDate,
			Categories:  item.Categories,
		})
	}

	return raw, nil
}

type relayResponse struct {
	Status struct {
		HTTPCode int `json:"http_code"`
	} `json:"status"`
	Contents string `json:"contents"`
}

func decodeRelay(body []byte, rssURL string, count int) ([]rawItem, error) {
	source := StrategyRelay.String()

	var resp relayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &coreerrors.DecodeError{Source: source, Message: "invalid JSON", Err: err}
	}

	if resp.Status.HTTPCode != http.StatusOK {
		var cause error
		if resp.Status.HTTPCode != 0 {
			cause = &coreerrors.HTTPStatusError{StatusCode: resp.Status.HTTPCode, URL: rssURL}
		}
		return nil, &coreerrors.DecodeError{Source: source, Message: "Feed not accessible", Err: cause}
	}

	items := parseMarkup(resp.Contents)
	if len(items) == 0 {
		return nil, &coreerrors.DecodeError{Source: source, Message: "no items in relayed markup"}
	}

	if count > 0 && len(items) > count {
		items = items[:count]
	}

	return items, nil
}

// parseMarkup extracts items with gofeed, falling back to a lenient item scan
func parseMarkup(contents string) []rawItem {
	if strings.TrimSpace(contents) == "" {
		return nil
	}

	parsed, err := gofeed.NewParser().ParseString(contents)
	if err == nil && len(parsed.Items) > 0 {
		items := make([]rawItem, 0, len(parsed.Items))
		for _, item := range parsed.Items {
			items = append(items, rawItem{
				Title:       item.Title,
				Link:        item.Link,
				Description: item.Description,
				Content:     item.Content,
				PubDate:     item.Published,
				Published:   item.PublishedParsed,
				Categories:  item.Categories,
			})
		}
		return items
	}

	return scanItems(contents)
}

// scanItems reads title, link, description and pubDate of every item element,
// tolerating markup that is not well-formed XML
func scanItems(contents string) []rawItem {
	dec := xml.NewDecoder(strings.NewReader(contents))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		items  []rawItem
		cur    *rawItem
		seen   map[string]bool
		depth  int
		inItem bool
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if name == "item" && !inItem {
				inItem = true
				depth = 0
				cur = &rawItem{}
				seen = map[string]bool{}
				continue
			}
			if !inItem {
				continue
			}

			switch name {
			case "title", "link", "description", "pubdate":
				var text struct {
					Value string `xml:",chardata"`
				}
				if err := dec.DecodeElement(&text, &t); err != nil {
					return appendItem(items, cur)
				}
				if seen[name] {
					continue
				}
				seen[name] = true
				setField(cur, name, text.Value)
			default:
				depth++
			}
		case xml.EndElement:
			if !inItem {
				continue
			}
			if strings.ToLower(t.Name.Local) == "item" && depth == 0 {
				items = appendItem(items, cur)
				inItem = false
				cur = nil
				continue
			}
			if depth > 0 {
				depth--
			}
		}
	}

	return appendItem(items, cur)
}

func setField(item *rawItem, name, value string) {
	switch name {
	case "title":
		item.Title = value
	case "link":
		item.Link = value
	case "description":
		item.Description = value
	case "pubdate":
		item.PubDate = value
	}
}

func appendItem(items []rawItem, item *rawItem) []rawItem {
	if item == nil {
		return items
	}
	return append(items, *item)
}
