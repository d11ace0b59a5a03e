package binserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, key string) (*Server, *httptest.Server) {
	t.Helper()
	s := New(Options{MasterKey: key})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doRequest(t *testing.T, method, url, key, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if key != "" {
		req.Header.Set(MasterKeyHeader, key)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_GetLatestReturnsSeededRecord(t *testing.T) {
	s, ts := newTestServer(t, "secret")
	if err := s.Seed("bin1", []byte(`{"products":[{"id":"a"}]}`)); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	resp := doRequest(t, http.MethodGet, ts.URL+"/v3/b/bin1/latest", "secret", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload struct {
		Record struct {
			Products []map[string]any `json:"products"`
		} `json:"record"`
		Metadata struct {
			ID string `json:"id"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Record.Products) != 1 || payload.Record.Products[0]["id"] != "a" {
		t.Fatalf("record = %#v, want one product a", payload.Record)
	}
	if payload.Metadata.ID != "bin1" {
		t.Fatalf("metadata.id = %q, want bin1", payload.Metadata.ID)
	}
}

func TestServer_PutReplacesRecord(t *testing.T) {
	s, ts := newTestServer(t, "")
	if err := s.Seed("bin1", []byte(`{"products":[]}`)); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	resp := doRequest(t, http.MethodPut, ts.URL+"/v3/b/bin1", "", `{"products":[{"id":"z"}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	rec, ok := s.Record("bin1")
	if !ok || !strings.Contains(string(rec), `"z"`) {
		t.Fatalf("record after PUT = %s, want product z", rec)
	}
	if s.Writes() != 1 {
		t.Fatalf("Writes = %d, want 1", s.Writes())
	}
}

func TestServer_MasterKeyRequired(t *testing.T) {
	s, ts := newTestServer(t, "secret")
	_ = s.Seed("bin1", []byte(`{"products":[]}`))

	if resp := doRequest(t, http.MethodGet, ts.URL+"/v3/b/bin1/latest", "", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing key status = %d, want 401", resp.StatusCode)
	}
	if resp := doRequest(t, http.MethodGet, ts.URL+"/v3/b/bin1/latest", "nope", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d, want 401", resp.StatusCode)
	}
	if resp := doRequest(t, http.MethodGet, ts.URL+"/health", "", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200 without key", resp.StatusCode)
	}
}

func TestServer_UnknownBinAndBadBodies(t *testing.T) {
	s, ts := newTestServer(t, "")
	_ = s.Seed("bin1", []byte(`{"products":[]}`))

	if resp := doRequest(t, http.MethodGet, ts.URL+"/v3/b/missing/latest", "", ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown bin GET status = %d, want 404", resp.StatusCode)
	}
	if resp := doRequest(t, http.MethodPut, ts.URL+"/v3/b/missing", "", `{"products":[]}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown bin PUT status = %d, want 404", resp.StatusCode)
	}
	for _, body := range []string{"", "[1,2]", "{broken"} {
		if resp := doRequest(t, http.MethodPut, ts.URL+"/v3/b/bin1", "", body); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("PUT %q status = %d, want 400", body, resp.StatusCode)
		}
	}
	if s.Writes() != 0 {
		t.Fatalf("Writes = %d, want 0 after rejected PUTs", s.Writes())
	}
}

func TestSeed_RejectsNonObject(t *testing.T) {
	s := New(Options{})
	if err := s.Seed("b", []byte(`[]`)); err == nil {
		t.Fatalf("Seed([]) returned nil error")
	}
}
