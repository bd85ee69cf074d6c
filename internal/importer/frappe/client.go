// Package frappe reads the public Frappe library catalog.
package frappe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/MrJamesThe3rd/libry/internal/importer"
)

const DefaultBaseURL = "https://frappe.io/api/method/frappe-library"

// maxBody caps how much of a single page response is read.
const maxBody = 8 << 20

var codec = jsoniter.Config{UseNumber: true}.Froze()

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type pageResponse struct {
	Message []map[string]any `json:"message"`
}

// FetchPage requests one catalog page. Title and author filters are only sent when set.
func (c *Client) FetchPage(ctx context.Context, page int, filter importer.Filter) ([]importer.Item, error) {
	u, err := c.pageURL(page, filter)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", importer.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: page %d returned status %d", importer.ErrExternalSource, page, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading page %d: %w", importer.ErrExternalSource, page, err)
	}

	var payload pageResponse
	if err := codec.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding page %d: %w", importer.ErrExternalSource, page, err)
	}

	items := make([]importer.Item, 0, len(payload.Message))
	for _, raw := range payload.Message {
		items = append(items, toItem(raw))
	}

	return items, nil
}

func (c *Client) pageURL(page int, filter importer.Filter) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))

	if filter.Title != "" {
		q.Set("title", filter.Title)
	}

	if filter.Authors != "" {
		q.Set("authors", filter.Authors)
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

// toItem reads a catalog record. Keys are matched after trimming, so the dataset's
// padded "  num_pages" key resolves like "num_pages".
func toItem(raw map[string]any) importer.Item {
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		fields[strings.TrimSpace(k)] = v
	}

	return importer.Item{
		Title:     text(fields["title"]),
		Authors:   text(fields["authors"]),
		ISBN:      text(fields["isbn"]),
		Publisher: text(fields["publisher"]),
		Pages:     number(fields["num_pages"]),
	}
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// number accepts JSON numbers and numeric strings. Anything else, including negatives, is 0.
func number(v any) int {
	s := text(v)
	if s == "" {
		return 0
	}

	if n, err := strconv.Atoi(s); err == nil {
		return max(n, 0)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return max(int(f), 0)
}
