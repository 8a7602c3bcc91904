package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveUsesGeocoderState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		// Deliberately odd casing: the value is returned verbatim.
		_, _ = w.Write([]byte(`{"address":{"state":"mahaRASHtra"}}`))
	}))
	defer srv.Close()

	r := NewNominatimResolver(srv.URL)
	got, err := r.Resolve(context.Background(), 19.0, 72.8)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "mahaRASHtra" {
		t.Errorf("Resolve = %q, want geocoder value verbatim", got)
	}
}

func TestResolveFallsBackWhenGeocoderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	r := NewNominatimResolver(srv.URL)
	got, err := r.Resolve(context.Background(), 19.0, 72.8)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Maharashtra" {
		t.Errorf("Resolve = %q, want bounds-table Maharashtra", got)
	}
}

func TestResolveFallsBackWhenNoStateField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"address":{"country":"India"}}`))
	}))
	defer srv.Close()

	r := NewNominatimResolver(srv.URL)
	got, err := r.Resolve(context.Background(), 9.9, 76.2)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Kerala" {
		t.Errorf("Resolve = %q, want Kerala", got)
	}
}

func TestResolveOutsideAllBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewNominatimResolver(srv.URL)
	_, err := r.Resolve(context.Background(), 48.8, 2.3) // Paris
	if !errors.Is(err, ErrRegionUnresolved) {
		t.Fatalf("expected ErrRegionUnresolved, got %v", err)
	}
}

func TestStateFromBounds(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     string
		ok       bool
	}{
		{19.0, 72.8, "Maharashtra", true},
		{22.0, 70.0, "Gujarat", true},
		{10.0, 92.5, "Andaman & Nicobar Islands", true},
		{0.0, 0.0, "", false},
	}
	for _, c := range cases {
		got, ok := stateFromBounds(c.lat, c.lon)
		if ok != c.ok || got != c.want {
			t.Errorf("stateFromBounds(%v,%v) = %q,%v; want %q,%v", c.lat, c.lon, got, ok, c.want, c.ok)
		}
	}
}
