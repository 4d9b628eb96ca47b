package gogoanime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phrazzld/gogoanime-api/internal/platform/network"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// Client scrapes one gogoanime origin.
type Client struct {
	baseURL string
	ajaxURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ provider.Provider = (*Client)(nil)

// NewClient creates a Client for the origin at baseURL whose ajax endpoints are
// served from ajaxURL. A nil httpClient uses network.NewClient().
func NewClient(baseURL, ajaxURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	base, err := normalizeOrigin(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	ajax, err := normalizeOrigin(ajaxURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ajax url: %w", err)
	}

	if httpClient == nil {
		httpClient = network.NewClient()
	}

	return &Client{
		baseURL: base,
		ajaxURL: ajax,
		http:    httpClient,
		logger:  logger.With(slog.String("component", "gogoanime_client")),
	}, nil
}

// BaseURL returns the origin the client scrapes.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func normalizeOrigin(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// get performs a GET and returns the open response body. The caller closes it.
func (c *Client) get(ctx context.Context, rawURL string, header http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", network.UserAgent)
	for k, v := range header {
		req.Header[k] = v
	}

	c.logger.Debug("fetching", slog.String("url", rawURL))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", provider.ErrNotFound, rawURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned status %d", provider.ErrUnexpectedResponse, rawURL, resp.StatusCode)
	}

	return resp.Body, nil
}

func (c *Client) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", provider.ErrUnexpectedResponse, rawURL, err)
	}
	return doc, nil
}

// ajaxFragment is the envelope of the origin's JSON endpoints that return markup.
type ajaxFragment struct {
	Status bool   `json:"status"`
	HTML   string `json:"html"`
}

// fetchFragment calls a JSON endpoint and parses the markup it carries.
func (c *Client) fetchFragment(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.get(ctx, rawURL, http.Header{"X-Requested-With": {"XMLHttpRequest"}})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var fragment ajaxFragment
	if err := json.NewDecoder(body).Decode(&fragment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", provider.ErrUnexpectedResponse, rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment.HTML))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse fragment from %s: %v", provider.ErrUnexpectedResponse, rawURL, err)
	}
	return doc, nil
}

// pageOrDefault maps the "unset" page 0 (and anything below) to the first page.
func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func (c *Client) absolute(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return c.baseURL + href
	default:
		return c.baseURL + "/" + href
	}
}

// firstInt extracts the first integer in s, or 0.
func firstInt(s string) int {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	n, _ := strconv.Atoi(s[start:end])
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
