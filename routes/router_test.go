package routes

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"festa-pos/controllers"
	"festa-pos/live"
	"festa-pos/models"
	"festa-pos/seeders"
	"festa-pos/services"
	"festa-pos/testutil"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	if err := seeders.SeedUsers(db); err != nil {
		t.Fatalf("SeedUsers: %v", err)
	}

	clock := &testutil.Clock{T: time.Date(2026, 10, 19, 12, 0, 0, 0, testutil.JST)}
	hours := services.BusinessHours{Open: 10, Close: 18, Location: testutil.JST}
	hub := live.NewHub(8)
	t.Cleanup(hub.Close)

	ctl := Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(db, testSecret, time.Hour, time.Now)),
		Products:    controllers.NewProductController(services.NewProductService(db)),
		Orders:      controllers.NewOrderController(services.NewOrderService(db, hub, hours, clock.Now), hub),
		Kitchen:     controllers.NewKitchenController(services.NewKitchenService(db, clock.Now), hub),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(db, hours, nil, clock.Now), hub),
		Memos:       controllers.NewMemoController(services.NewMemoService(db, hub, clock.Now), hub),
		CashSession: controllers.NewCashSessionController(services.NewCashSessionService(db, clock.Now)),
	}

	r := gin.New()
	RegisterRoutes(r, ctl, testSecret)
	return r
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/login", "", map[string]string{"username": username, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", username, w.Code, w.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	if w := do(t, r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/orders", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /orders without token = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/orders", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /orders with bad token = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/login", "", map[string]string{"username": "staff", "password": "nope"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password = %d, want 401", w.Code)
	}

	kitchen := login(t, r, "kitchen", "kitchen123")
	if w := do(t, r, http.MethodPost, "/orders", kitchen, map[string]any{}); w.Code != http.StatusForbidden {
		t.Fatalf("kitchen POST /orders = %d, want 403", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/dashboard/today", kitchen, nil); w.Code != http.StatusForbidden {
		t.Fatalf("kitchen GET /dashboard/today = %d, want 403", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/kitchen", kitchen, nil); w.Code != http.StatusOK {
		t.Fatalf("GET /kitchen with bearer token = %d, want 200", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/kitchen?token="+kitchen, "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /kitchen with query token = %d, want 401", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	staff := login(t, r, "staff", "staff123")
	kitchen := login(t, r, "kitchen", "kitchen123")

	w := do(t, r, http.MethodPost, "/orders", staff, map[string]any{
		"items": []map[string]any{
			{"id": "latte", "quantity": 2},
			{"id": "custom", "quantity": 1, "price": 200},
		},
		"receivedAmount": 1500,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /orders = %d, body = %s", w.Code, w.Body)
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.OrderNum != 1 || order.TotalAmount != 1200 || order.Change != 300 || order.Status != models.StatusPending {
		t.Fatalf("order = %+v", order)
	}

	w = do(t, r, http.MethodPost, "/orders", staff, map[string]any{
		"items":          []map[string]any{{"id": "tea", "quantity": 1}},
		"receivedAmount": 100,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("underpaid POST /orders = %d, want 422", w.Code)
	}
	if w = do(t, r, http.MethodPost, "/orders", staff, map[string]any{"items": []any{}, "receivedAmount": 0}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty cart POST /orders = %d, want 400", w.Code)
	}

	w = do(t, r, http.MethodGet, "/kitchen", kitchen, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /kitchen = %d", w.Code)
	}
	var view struct {
		PendingDrinks int `json:"pendingDrinks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode kitchen view: %v", err)
	}
	if view.PendingDrinks != 2 {
		t.Fatalf("pendingDrinks = %d, want 2", view.PendingDrinks)
	}

	w = do(t, r, http.MethodPatch, "/orders/"+order.ID+"/items/0", kitchen, map[string]bool{"completed": true})
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH item = %d, body = %s", w.Code, w.Body)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != models.StatusCompleted {
		t.Fatalf("status after last drink = %s, want completed", order.Status)
	}

	if w = do(t, r, http.MethodPatch, "/orders/"+order.ID+"/status", staff, map[string]string{"status": "cancelled"}); w.Code != http.StatusConflict {
		t.Fatalf("completed -> cancelled = %d, want 409", w.Code)
	}
	if w = do(t, r, http.MethodPatch, "/orders/"+order.ID+"/status", staff, map[string]string{"status": "eaten"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status = %d, want 400", w.Code)
	}
	if w = do(t, r, http.MethodGet, "/orders/missing", staff, nil); w.Code != http.StatusNotFound {
		t.Fatalf("GET /orders/missing = %d, want 404", w.Code)
	}

	w = do(t, r, http.MethodGet, "/dashboard/today", staff, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /dashboard/today = %d", w.Code)
	}
	var summary struct {
		TotalSales int64 `json:"totalSales"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalSales != 1200 {
		t.Fatalf("totalSales = %d, want 1200", summary.TotalSales)
	}

	w = do(t, r, http.MethodGet, "/dashboard/export?date=2026-10-19", staff, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Disposition"), "sales-2026-10-19.csv") {
		t.Fatalf("export = %d %q", w.Code, w.Header().Get("Content-Disposition"))
	}

	admin := login(t, r, "admin", "admin123")
	if w = do(t, r, http.MethodPost, "/dashboard/report", admin, nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("report without webhook = %d, want 503", w.Code)
	}
}

func TestMemoAndCashSessionRoutes(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	staff := login(t, r, "staff", "staff123")

	if w := do(t, r, http.MethodPost, "/memos", staff, map[string]string{"text": "restock cups"}); w.Code != http.StatusCreated {
		t.Fatalf("POST /memos = %d, body = %s", w.Code, w.Body)
	}
	w := do(t, r, http.MethodGet, "/memos", staff, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "restock cups") {
		t.Fatalf("GET /memos = %d %s", w.Code, w.Body)
	}

	if w := do(t, r, http.MethodGet, "/cash-sessions/current", staff, nil); w.Code != http.StatusNotFound {
		t.Fatalf("current without session = %d, want 404", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/cash-sessions/open", staff, map[string]int64{"opening_cash": 5000}); w.Code != http.StatusCreated {
		t.Fatalf("open = %d, body = %s", w.Code, w.Body)
	}
	if w := do(t, r, http.MethodPost, "/cash-sessions/open", staff, map[string]int64{"opening_cash": 5000}); w.Code != http.StatusConflict {
		t.Fatalf("second open = %d, want 409", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/cash-sessions/close", staff, map[string]int64{"closing_cash": 5000}); w.Code != http.StatusOK {
		t.Fatalf("close = %d, body = %s", w.Code, w.Body)
	}
}

// openStream connects to an SSE route with a query token and returns the
// response body reader. The connection closes with the test.
func openStream(t *testing.T, r http.Handler, path, token string) (*http.Response, *bufio.Reader) {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path+"?token="+token, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp, bufio.NewReader(resp.Body)
}

// nextEvent reads SSE lines until a complete event and returns its name and data.
func nextEvent(t *testing.T, body *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := body.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			data += strings.TrimPrefix(line, "data:")
		case line == "" && name != "":
			return name, data
		}
	}
}

func TestKitchenStreamSendsSnapshot(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	kitchen := login(t, r, "kitchen", "kitchen123")

	resp, body := openStream(t, r, "/kitchen/stream", kitchen)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}
	if name, _ := nextEvent(t, body); name != "kitchen" {
		t.Fatalf("first event = %q, want kitchen", name)
	}
}

func TestSnapshotStreamsRefreshAfterChanges(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	staff := login(t, r, "staff", "staff123")

	_, memos := openStream(t, r, "/memos/stream", staff)
	_, dashboard := openStream(t, r, "/dashboard/stream", staff)
	_, orders := openStream(t, r, "/orders/stream", staff)

	if name, data := nextEvent(t, memos); name != "memos" || data != "[]" {
		t.Fatalf("memos snapshot = %s %s, want memos []", name, data)
	}
	if name, data := nextEvent(t, dashboard); name != "dashboard" || !strings.Contains(data, `"totalSales":0`) {
		t.Fatalf("dashboard snapshot = %s %s", name, data)
	}
	if name, data := nextEvent(t, orders); name != "orders" || !strings.Contains(data, `"total":0`) {
		t.Fatalf("orders snapshot = %s %s", name, data)
	}

	if w := do(t, r, http.MethodPost, "/memos", staff, map[string]string{"text": "ice delivered"}); w.Code != http.StatusCreated {
		t.Fatalf("POST /memos = %d", w.Code)
	}
	if name, data := nextEvent(t, memos); name != "memos" || !strings.Contains(data, "ice delivered") {
		t.Fatalf("memos after post = %s %s", name, data)
	}

	w := do(t, r, http.MethodPost, "/orders", staff, map[string]any{
		"items":          []map[string]any{{"id": "tea", "quantity": 1}},
		"receivedAmount": 700,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /orders = %d, body = %s", w.Code, w.Body)
	}
	if name, data := nextEvent(t, dashboard); name != "dashboard" || !strings.Contains(data, `"totalSales":700`) {
		t.Fatalf("dashboard after order = %s %s", name, data)
	}

	// the orders feed carries the memo event first, then the order
	if name, _ := nextEvent(t, orders); name != "memo.created" {
		t.Fatalf("orders feed first delta = %q, want memo.created", name)
	}
	if name, _ := nextEvent(t, orders); name != "order.created" {
		t.Fatalf("orders feed second delta = %q, want order.created", name)
	}
}
