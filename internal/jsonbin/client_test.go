package jsonbin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/binserver"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.jsonbin.io" {
		t.Fatalf("default url = %q, want https://api.jsonbin.io", u.String())
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestNewClient_RequiresBinID(t *testing.T) {
	if _, err := NewClient(Options{BinID: "  "}); err == nil {
		t.Fatalf("NewClient with blank bin id returned nil error")
	}
}

func TestClient_FetchLatestAndReplace(t *testing.T) {
	t.Parallel()

	var (
		gotKey       string
		gotUserAgent string
		gotMethod    string
		gotPath      string
		gotBody      []byte
		gotType      string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(MasterKeyHeader)
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v3/b/bin42/latest":
			_, _ = w.Write([]byte(`{"record":{"products":[{"id":"p1","name":"Bayam","category":"Fresh Produce","price":5000,"unit":"ikat"}]},"metadata":{"id":"bin42","private":true}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/v3/b/bin42":
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"record":{},"metadata":{"parentId":"bin42"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, BinID: "bin42", MasterKey: " key "})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.FetchLatest(ctx)
	if err != nil {
		t.Fatalf("FetchLatest returned error: %v", err)
	}
	want := catalog.Catalog{{ID: "p1", Name: "Bayam", Category: catalog.CategoryFresh, Price: 5000, Unit: "ikat"}}
	if diff := cmp.Diff(want, products); diff != "" {
		t.Fatalf("FetchLatest mismatch (-want +got):\n%s", diff)
	}
	if gotKey != "key" {
		t.Fatalf("X-Master-Key = %q, want trimmed key", gotKey)
	}
	if !strings.HasPrefix(gotUserAgent, "mitra/") {
		t.Fatalf("User-Agent = %q, want mitra/*", gotUserAgent)
	}

	if err := c.Replace(ctx, want); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/v3/b/bin42" {
		t.Fatalf("Replace sent %s %s, want PUT /v3/b/bin42", gotMethod, gotPath)
	}
	if gotType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotType)
	}
	var doc Document
	if err := json.Unmarshal(gotBody, &doc); err != nil {
		t.Fatalf("PUT body not JSON: %v (%s)", err, gotBody)
	}
	if diff := cmp.Diff(want, doc.Products); diff != "" {
		t.Fatalf("PUT body mismatch (-want +got):\n%s", diff)
	}

	if err := c.Replace(ctx, nil); err != nil {
		t.Fatalf("Replace(nil) returned error: %v", err)
	}
	if string(gotBody) != `{"products":[]}` {
		t.Fatalf("Replace(nil) body = %s, want empty products array", gotBody)
	}
}

func TestClient_StatusAndMalformedErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v3/b/broken/latest":
			_, _ = w.Write([]byte("{not-json"))
		case "/v3/b/object/latest":
			_, _ = w.Write([]byte(`{"record":{"products":{"id":"x"}}}`))
		case "/v3/b/norecord/latest":
			_, _ = w.Write([]byte(`{"metadata":{}}`))
		case "/v3/b/denied/latest", "/v3/b/denied":
			http.Error(w, `{"message":"Invalid X-Master-Key provided"}`, http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	for _, bin := range []string{"broken", "object", "norecord"} {
		c, err := NewClient(Options{BaseURL: server.URL, BinID: bin})
		if err != nil {
			t.Fatalf("NewClient returned error: %v", err)
		}
		if _, err := c.FetchLatest(context.Background()); !errors.Is(err, ErrMalformed) {
			t.Fatalf("FetchLatest(%s) error = %v, want ErrMalformed", bin, err)
		}
	}

	c, err := NewClient(Options{BaseURL: server.URL, BinID: "denied"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchLatest(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("FetchLatest error = %v, want StatusError 401", err)
	}
	err = c.Replace(context.Background(), catalog.Catalog{})
	if err == nil || !strings.Contains(err.Error(), "returned status 401") {
		t.Fatalf("Replace error = %v, want status 401 error", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: addr, BinID: "b"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchLatest(context.Background()); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("FetchLatest error = %v, want ErrUnreachable", err)
	}
	if err := c.Replace(context.Background(), nil); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("Replace error = %v, want ErrUnreachable", err)
	}
}

func TestClient_AgainstBinServer(t *testing.T) {
	t.Parallel()

	bins := binserver.New(binserver.Options{MasterKey: "secret"})
	if err := bins.Seed("shop", []byte(`{"products":[]}`)); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	server := httptest.NewServer(bins.Handler())
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, BinID: "shop", MasterKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx := context.Background()
	defaults := catalog.Defaults()
	if err := c.Replace(ctx, defaults); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	got, err := c.FetchLatest(ctx)
	if err != nil {
		t.Fatalf("FetchLatest returned error: %v", err)
	}
	if !catalog.Equal(got, defaults) {
		t.Fatalf("round trip through bin server changed the catalog:\n%s", cmp.Diff(defaults, got))
	}

	wrong, err := NewClient(Options{BaseURL: server.URL, BinID: "shop", MasterKey: "other"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	var statusErr *StatusError
	if _, err := wrong.FetchLatest(ctx); !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("FetchLatest with wrong key error = %v, want 401", err)
	}
}
