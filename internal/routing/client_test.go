package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/egzit/egzit/internal/config"
)

func TestGetRouteParsesPrimaryRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
			t.Errorf("missing from/to params: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"primary":{"distance":129500,"duration":13380,"geometry":"abc"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.RoutingConfig{BaseURL: srv.URL, TimeoutMS: 2000})
	route, err := c.GetRoute(context.Background(), 17.9714, -76.7920, 18.4762, -77.8939)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.DistanceMeters != 129500 {
		t.Fatalf("expected distance 129500, got %d", route.DistanceMeters)
	}
	if route.DurationSeconds != 13380 {
		t.Fatalf("expected duration 13380, got %d", route.DurationSeconds)
	}
}

func TestGetRouteUnavailableWhenUnconfigured(t *testing.T) {
	c := NewClient(config.RoutingConfig{})
	if c.Available() {
		t.Fatalf("expected unavailable client")
	}
	if _, err := c.GetRoute(context.Background(), 0, 0, 1, 1); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestGetRouteUnavailableOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(config.RoutingConfig{BaseURL: srv.URL, TimeoutMS: 2000})
	if _, err := c.GetRoute(context.Background(), 0, 0, 1, 1); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestGetRouteRejectsEmptyRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"primary":null}`))
	}))
	defer srv.Close()

	c := NewClient(config.RoutingConfig{BaseURL: srv.URL, TimeoutMS: 2000})
	if _, err := c.GetRoute(context.Background(), 0, 0, 1, 1); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestGetRouteHonorsConfiguredTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"primary":{"distance":1000,"duration":120,"geometry":"abc"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.RoutingConfig{BaseURL: srv.URL, TimeoutMS: 50})
	start := time.Now()
	if _, err := c.GetRoute(context.Background(), 17.9714, -76.7920, 18.4762, -77.8939); err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}
