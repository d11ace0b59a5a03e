package jsonbin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// DocumentStore defines the remote document operations used by the sync engine.
// This interface is implemented by *Client and can be used for testing.
type DocumentStore interface {
	FetchLatest(ctx context.Context) (catalog.Catalog, error)
	Replace(ctx context.Context, products catalog.Catalog) error
}

// Ensure Client implements DocumentStore at compile time.
var _ DocumentStore = (*Client)(nil)

var (
	// ErrUnreachable wraps transport failures (DNS, refused connections, resets).
	ErrUnreachable = errors.New("remote store unreachable")
	// ErrMalformed reports a response that is not a document with a products array.
	ErrMalformed = errors.New("remote document malformed")
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// MasterKeyHeader carries the static credential on every request.
const MasterKeyHeader = "X-Master-Key"

const (
	DefaultBaseURL   = "https://api.jsonbin.io"
	defaultUserAgent = "mitra/0.1"
)

// Options configure a Client.
type Options struct {
	BaseURL   string
	BinID     string
	MasterKey string
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to a JSONBin v3 compatible document store holding one bin.
type Client struct {
	baseURL   *url.URL
	binID     string
	masterKey string
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the configured bin.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	binID := strings.TrimSpace(opts.BinID)
	if binID == "" {
		return nil, fmt.Errorf("bin id is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:   base,
		binID:     binID,
		masterKey: strings.TrimSpace(opts.MasterKey),
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// BinID returns the configured bin identifier.
func (c *Client) BinID() string { return c.binID }

// FetchLatest reads the latest version of the bin and returns its products array.
func (c *Client) FetchLatest(ctx context.Context) (catalog.Catalog, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload latestResponse
	rel := &url.URL{Path: "/v3/b/" + url.PathEscape(c.binID) + "/latest"}
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.products()
}

// Replace overwrites the whole bin with {"products": [...]}. There is no merge and no
// concurrency token: the last writer wins.
func (c *Client) Replace(ctx context.Context, products catalog.Catalog) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if products == nil {
		products = catalog.Catalog{}
	}
	body, err := json.Marshal(Document{Products: products})
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	rel := &url.URL{Path: "/v3/b/" + url.PathEscape(c.binID)}
	return c.do(ctx, http.MethodPut, rel, body, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.masterKey != "" {
		req.Header.Set(MasterKeyHeader, c.masterKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, method, rel.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: rel.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrMalformed, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
