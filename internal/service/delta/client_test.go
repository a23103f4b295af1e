package delta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetCandlesOrdersAscending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/history/candles" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "BTCUSD" {
			t.Fatalf("unexpected symbol %s", got)
		}
		// newest-first, the way the exchange serves history
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[
			{"time":300,"open":3,"high":4,"low":2,"close":3,"volume":30},
			{"time":200,"open":2,"high":3,"low":1,"close":2,"volume":20},
			{"time":100,"open":1,"high":2,"low":0.5,"close":1}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	candles, err := c.GetCandles(context.Background(), "BTCUSD", "60", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("expected 3 candles, got %d", len(candles))
	}
	if candles[0].Timestamp != 100 || candles[2].Timestamp != 300 {
		t.Fatalf("candles not ascending: %+v", candles)
	}
	if candles[0].Volume != 0 {
		t.Fatalf("missing volume must default to zero, got %v", candles[0].Volume)
	}
}

func TestGetCandlesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	if _, err := c.GetCandles(context.Background(), "BTCUSD", "60", 100); err == nil {
		t.Fatalf("expected error on non-200")
	}
}

func TestGetTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/tickers/ETHUSD" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"close":2345.5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	p, err := c.GetTicker(context.Background(), "ETHUSD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 2345.5 {
		t.Fatalf("unexpected price %v", p)
	}
}

func TestGetTickerMarkPriceFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"mark_price":"1999.25"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	p, err := c.GetTicker(context.Background(), "ETHUSD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 1999.25 {
		t.Fatalf("unexpected price %v", p)
	}
}
