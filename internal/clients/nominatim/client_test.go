package nominatim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saralwebs/kundli/internal/common"
)

func TestSearch_ParsesResponse(t *testing.T) {
	var capturedQuery string
	var capturedUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		capturedUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"28.6139001","lon":"77.2090212","display_name":"Delhi, India"}]`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithUserAgent("TestAgent/1.0"))

	places, err := client.Search(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if capturedUA != "TestAgent/1.0" {
		t.Errorf("User-Agent = %q, want TestAgent/1.0", capturedUA)
	}
	if capturedQuery != "format=json&limit=1&q=Delhi" {
		t.Errorf("query = %q, want format=json&limit=1&q=Delhi", capturedQuery)
	}

	if len(places) != 1 {
		t.Fatalf("len(places) = %d, want 1", len(places))
	}
	if places[0].Lat != "28.6139001" {
		t.Errorf("Lat = %q, want 28.6139001", places[0].Lat)
	}
	if places[0].Lon != "77.2090212" {
		t.Errorf("Lon = %q, want 77.2090212", places[0].Lon)
	}
	if places[0].DisplayName != "Delhi, India" {
		t.Errorf("DisplayName = %q, want Delhi, India", places[0].DisplayName)
	}
}

func TestSearch_EmptyResultSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	places, err := client.Search(context.Background(), "nowhere-at-all")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("len(places) = %d, want 0", len(places))
	}
}

func TestSearch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "Delhi")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}

	var svcErr *common.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("error type = %T, want *common.ExternalServiceError", err)
	}
}
