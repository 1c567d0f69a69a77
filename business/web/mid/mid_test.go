package mid_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/quantumcoin/node/business/web/mid"
	"github.com/quantumcoin/node/foundation/web"
	"go.uber.org/zap"
)

func newTestApp() *web.App {
	log := zap.NewNop().Sugar()

	return web.NewApp(
		make(chan os.Signal, 1),
		mid.Logger(log),
		mid.Errors(log),
		mid.Cors("*"),
		mid.Panics(),
	)
}

func Test_PanicRecovery(t *testing.T) {
	app := newTestApp()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("boom")
	}
	app.Handle(http.MethodGet, "", "/panic", h)

	r := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	// A panic must surface as a 200 recovered body, never an HTTP error.
	if w.Code != http.StatusOK {
		t.Fatalf("error: expected status 200 got %d", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error: unable to decode response: %v", err)
	}

	if resp.Status != "recovered" {
		t.Errorf("error: expected the recovered marker got %q", resp.Status)
	}
	if resp.Error == "" {
		t.Error("error: expected the fault description in the body")
	}
}

func Test_HandlerErrorRecovery(t *testing.T) {
	app := newTestApp()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return context.DeadlineExceeded
	}
	app.Handle(http.MethodGet, "", "/fault", h)

	r := httptest.NewRequest(http.MethodGet, "/fault", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("error: expected status 200 got %d", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error: unable to decode response: %v", err)
	}

	if resp.Status != "recovered" {
		t.Errorf("error: expected the recovered marker got %q", resp.Status)
	}
}

func Test_CorsHeader(t *testing.T) {
	app := newTestApp()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, struct{}{}, http.StatusOK)
	}
	app.Handle(http.MethodGet, "", "/ok", h)

	r := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("error: expected wildcard CORS header got %q", got)
	}
}
