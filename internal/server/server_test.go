package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/numlookup/internal/fetch"
	"github.com/hyperifyio/numlookup/internal/lookup"
	"github.com/hyperifyio/numlookup/internal/metrics"
)

// newTestRouter wires a real lookup service against upstream.
func newTestRouter(t *testing.T, upstream string, strict bool) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc, err := lookup.New(&fetch.Client{PerRequestTimeout: 2 * time.Second}, lookup.Options{
		Endpoint: upstream,
		Strict:   strict,
		Logger:   zerolog.Nop(),
		Metrics:  metrics.New(reg),
	})
	if err != nil {
		t.Fatalf("lookup.New: %v", err)
	}
	return NewRouter(svc, Options{Logger: zerolog.Nop(), Gatherer: reg, Version: "test"}), reg
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s: %v (%s)", target, err, rec.Body.String())
		}
	}
	return rec, body
}

func upstream(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestSearch_Success(t *testing.T) {
	up := upstream(http.StatusOK, "Name: John Doe\nCNIC: 12345-1234567-1\nAssociated Numbers:\n➤ 03001234567\n➤ 923111234567\nAddress: Lahore")
	defer up.Close()
	h, _ := newTestRouter(t, up.URL, false)

	for _, path := range []string{"/search", "/api/search"} {
		rec, body := get(t, h, path+"?number=0300-1234567")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, rec.Code, rec.Body.String())
		}
		if body["success"] != true {
			t.Fatalf("expected success=true, got %v", body)
		}
		data, ok := body["data"].(map[string]any)
		if !ok {
			t.Fatalf("missing data: %v", body)
		}
		if data["phone_number"] != "+923001234567" || data["name"] != "John Doe" || data["cnic"] != "12345-1234567-1" || data["address"] != "Lahore" {
			t.Fatalf("unexpected data: %v", data)
		}
		nums, _ := data["associated_numbers"].([]any)
		if len(nums) != 2 || nums[0] != "03001234567" || nums[1] != "923111234567" {
			t.Fatalf("unexpected associated_numbers: %v", data["associated_numbers"])
		}
		if rec.Header().Get(RequestIDHeader) == "" {
			t.Fatalf("expected request id header")
		}
	}
}

func TestSearch_MissingFieldsUseSentinel(t *testing.T) {
	up := upstream(http.StatusOK, "CNIC: 3520112345671")
	defer up.Close()
	h, _ := newTestRouter(t, up.URL, false)

	rec, body := get(t, h, "/search?number=3520112345671")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	data := body["data"].(map[string]any)
	if data["name"] != "N/A" || data["address"] != "N/A" {
		t.Fatalf("expected N/A sentinels, got %v", data)
	}
	if nums, ok := data["associated_numbers"].([]any); !ok || len(nums) != 0 {
		t.Fatalf("expected empty associated_numbers array, got %v", data["associated_numbers"])
	}
}

func TestSearch_NotFound(t *testing.T) {
	up := upstream(http.StatusOK, "<html><body>Nothing here</body></html>")
	defer up.Close()
	h, _ := newTestRouter(t, up.URL, false)

	rec, body := get(t, h, "/search?number=03001234567")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
	if body["success"] != false || body["searched_number"] != "+923001234567" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["message"] != "No information found for this number from external source" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestSearch_MissingNumber(t *testing.T) {
	h, _ := newTestRouter(t, "http://upstream.invalid/", false)
	for _, target := range []string{"/search", "/search?number=", "/search?number=%20%20"} {
		rec, body := get(t, h, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s status=%d, want 400", target, rec.Code)
		}
		if body["error"] != "Phone number is required" {
			t.Fatalf("unexpected body: %v", body)
		}
	}
}

func TestSearch_StrictInvalid(t *testing.T) {
	h, _ := newTestRouter(t, "http://upstream.invalid/", true)
	rec, body := get(t, h, "/search?number=12345")
	if rec.Code != http.StatusBadRequest || body["error"] != "Invalid number format" {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}
}

func TestSearch_UpstreamStatusForwarded(t *testing.T) {
	up := upstream(http.StatusTooManyRequests, "slow down")
	defer up.Close()
	h, _ := newTestRouter(t, up.URL, false)

	rec, body := get(t, h, "/search?number=923001234567")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d, want 429", rec.Code)
	}
	if body["message"] != "External API returned status code: 429" || body["searched_number"] != "+923001234567" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSearch_UpstreamUnreachable(t *testing.T) {
	up := upstream(http.StatusOK, "")
	url := up.URL
	up.Close()
	h, _ := newTestRouter(t, url, false)

	rec, body := get(t, h, "/search?number=03001234567")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rec.Code)
	}
	if body["error"] != "External API connection error" {
		t.Fatalf("unexpected body: %v", body)
	}
}

type lookupFunc func(ctx context.Context, raw string) (lookup.Outcome, error)

func (f lookupFunc) Lookup(ctx context.Context, raw string) (lookup.Outcome, error) {
	return f(ctx, raw)
}

func TestSearch_UnexpectedErrorIsGeneric(t *testing.T) {
	h := NewRouter(lookupFunc(func(context.Context, string) (lookup.Outcome, error) {
		return lookup.Outcome{}, errors.New("secret internal detail")
	}), Options{Logger: zerolog.Nop()})

	rec, body := get(t, h, "/search?number=1")
	if rec.Code != http.StatusInternalServerError || body["error"] != "Internal server error" {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestSearch_PanicRecovered(t *testing.T) {
	h := NewRouter(lookupFunc(func(context.Context, string) (lookup.Outcome, error) {
		panic("boom")
	}), Options{Logger: zerolog.Nop()})

	rec, body := get(t, h, "/search?number=1")
	if rec.Code != http.StatusInternalServerError || body["error"] != "Internal server error" {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	h, _ := newTestRouter(t, "http://upstream.invalid/", false)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id=%q, want abc-123", got)
	}
}

func TestInspect(t *testing.T) {
	h, _ := newTestRouter(t, "http://upstream.invalid/", false)

	rec, body := get(t, h, "/inspect?number=35201-1234567-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if body["normalized"] != "3520112345671" || body["kind"] != "cnic" || body["valid"] != true {
		t.Fatalf("unexpected body: %v", body)
	}

	rec, body = get(t, h, "/api/inspect?number=0300%201234567")
	if rec.Code != http.StatusOK || body["normalized"] != "+923001234567" || body["kind"] != "phone" {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}

	rec, _ = get(t, h, "/inspect")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	up := upstream(http.StatusOK, "Name: A")
	defer up.Close()
	h, _ := newTestRouter(t, up.URL, false)

	rec, body := get(t, h, "/healthz")
	if rec.Code != http.StatusOK || body["status"] != "ok" || body["version"] != "test" {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}

	get(t, h, "/search?number=03001234567")
	rec, _ = get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `numlookup_lookups_total{outcome="found"} 1`) {
		t.Fatalf("expected lookup counter in metrics output:\n%s", rec.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t, "http://upstream.invalid/", false)
	rec, _ := get(t, h, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}
