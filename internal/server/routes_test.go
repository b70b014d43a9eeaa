package routes

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codewithudo/quidax-market-summary/internal/middleware"
	"github.com/codewithudo/quidax-market-summary/internal/models"
	"github.com/codewithudo/quidax-market-summary/internal/services"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter arma el servicio completo contra un Quidax falso
func newTestRouter(t *testing.T, status int, body string) *gin.Engine {
	t.Helper()

	quidax := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/markets/tickers" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(quidax.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := services.NewQuidaxClient(quidax.URL, time.Second, services.EnvelopeDecoder{}, logger)
	svc := services.NewSummaryService(client, nil, logger)

	return NewRouter([]string{"http://localhost:3000"}, logger, middleware.NewSummaryHandler(svc))
}

func TestSummaryEndToEnd(t *testing.T) {
	router := newTestRouter(t, http.StatusOK, `{
		"status": "success",
		"data": {
			"btc_usdt": {"ticker": {"open": "50000", "low": "49000", "high": "52000", "last": "51500", "vol": "12.3"}},
			"eth_usdt": {"ticker": null}
		}
	}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got []models.MarketSummary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d: %+v", len(got), got)
	}

	want := models.MarketSummary{
		Market:             "BTC/USDT",
		Price:              "51500",
		Volume:             "12.3",
		High:               "52000",
		Low:                "49000",
		PriceChangePercent: "+3.00%",
	}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}

	var raw []map[string]any
	json.Unmarshal(w.Body.Bytes(), &raw)
	for _, key := range []string{"market", "price", "volume", "high", "low", "priceChangePercent"} {
		if _, ok := raw[0][key].(string); !ok {
			t.Errorf("expected string field %q in %v", key, raw[0])
		}
	}
}

func TestSummaryEmptyList(t *testing.T) {
	router := newTestRouter(t, http.StatusOK, `{"status":"success","data":{}}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected empty json array, got %s", body)
	}
}

func TestSummaryUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "Upstream 500", status: http.StatusInternalServerError, body: `oops`},
		{name: "Malformed JSON", status: http.StatusOK, body: `{"status":`},
		{name: "Failure status", status: http.StatusOK, body: `{"status":"error","message":"maintenance"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.status, tt.body)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

			if w.Code != http.StatusBadGateway {
				t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected error body, got %s", w.Body.String())
			}
		})
	}
}

func TestSingleMarketSummary(t *testing.T) {
	router := newTestRouter(t, http.StatusOK, `{
		"status": "success",
		"data": {
			"btcngn": {"ticker": {"open": "100", "low": "90", "high": "120", "last": "90", "vol": "1"}}
		}
	}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/BTCNGN", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.MarketSummary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Market != "BTCNGN" || got.PriceChangePercent != "-10.00%" {
		t.Errorf("unexpected summary %+v", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/doge_ngn", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown market, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, http.StatusOK, `{}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "up" || body["cache"] != "disabled" {
		t.Errorf("unexpected health body %v", body)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, http.StatusOK, `{"status":"success","data":{}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin header, got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	req.Header.Set("Origin", "http://evil.example")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for disallowed origin, got %d", w.Code)
	}
}
