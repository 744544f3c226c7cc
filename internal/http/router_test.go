package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/farmstand/internal/config"
	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/http/middleware"
	"github.com/tbourn/farmstand/internal/repo"
)

// --- test store helper (pure-Go sqlite, no CGO) ---
func newTestStore(t *testing.T) *repo.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return repo.NewStore(db)
}

func testConfig() config.Config {
	return config.Config{
		RateRPS:        100,
		RateBurst:      100,
		IdempotencyTTL: time.Hour,
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestServer(t *testing.T, cfg config.Config) (http.Handler, *repo.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newTestStore(t)
	r := gin.New()
	RegisterRoutes(r, store, cfg)
	return Handler(r), store
}

func send(h http.Handler, method, target string, form url.Values, hdr ...string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	h, _ := newTestServer(t, testConfig())

	w := send(h, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if w.Header().Get("Content-Security-Policy") != middleware.DefaultContentSecurityPolicy {
		t.Fatalf("csp=%q", w.Header().Get("Content-Security-Policy"))
	}

	w = send(h, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "farmstand_http_requests_total") {
		t.Fatalf("GET /metrics bad: code=%d", w.Code)
	}

	w = send(h, http.MethodGet, "/nope", nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "Page Not Found" {
		t.Fatalf("NoRoute: %d %q", w.Code, w.Body.String())
	}

	w = send(h, http.MethodPatch, "/farms", nil)
	if w.Code != http.StatusMethodNotAllowed || w.Body.String() != "Method Not Allowed" {
		t.Fatalf("NoMethod: %d %q", w.Code, w.Body.String())
	}

	w = send(h, http.MethodGet, "/", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/products" {
		t.Fatalf("root: %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	h, _ := newTestServer(t, cfg)

	w := send(h, http.MethodGet, "/health", nil, "Origin", "http://example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestSwagger_OnlyWhenEnabled(t *testing.T) {
	h, _ := newTestServer(t, testConfig())
	if w := send(h, http.MethodGet, "/swagger/doc.json", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off, got %d", w.Code)
	}

	cfg := testConfig()
	cfg.SwaggerEnabled = true
	h, _ = newTestServer(t, cfg)
	w := send(h, http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"/farms/{id}/products"`) {
		t.Fatalf("swagger doc: %d", w.Code)
	}
}

func Test_limitBody_Handler(t *testing.T) {
	h := limitBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "too big", http.StatusRequestEntityTooLarge)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}), 10)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123")))
	if w.Code != http.StatusOK {
		t.Fatalf("small body: %d", w.Code)
	}
}

func TestPipeline_OversizedBodiesAre413(t *testing.T) {
	h, store := newTestServer(t, testConfig())
	big := strings.Repeat("x", maxBodyBytes+1)

	form := url.Values{"name": {big}, "price": {"1"}, "category": {"fruit"}}
	w := send(h, http.MethodPost, "/products", form)
	if w.Code != http.StatusRequestEntityTooLarge || w.Body.String() != "Request body too large" {
		t.Fatalf("form: %d %q", w.Code, w.Body.String())
	}

	w = send(h, http.MethodPost, "/farms", url.Values{"name": {big}, "email": {"g@x.com"}})
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("farm form: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name":"`+big+`","price":1,"category":"fruit"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("json: %d", rec.Code)
	}

	items, err := store.ListProducts(context.Background(), "")
	if err != nil || len(items) != 0 {
		t.Fatalf("products=%d err=%v", len(items), err)
	}
	farms, err := store.ListFarms(context.Background())
	if err != nil || len(farms) != 0 {
		t.Fatalf("farms=%d err=%v", len(farms), err)
	}
}

// End to end through the full stack: create a farm, add a product under it,
// delete the farm with a form override, and check the cascade.
func TestPipeline_FarmLifecycle(t *testing.T) {
	h, store := newTestServer(t, testConfig())

	w := send(h, http.MethodPost, "/farms", url.Values{"name": {"Green Acres"}, "email": {"g@x.com"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/farms" {
		t.Fatalf("create farm: %d %q", w.Code, w.Header().Get("Location"))
	}
	farms, err := store.ListFarms(context.Background())
	if err != nil || len(farms) != 1 {
		t.Fatalf("farms=%v err=%v", farms, err)
	}
	id := farms[0].ID

	w = send(h, http.MethodPost, "/farms/"+id+"/products/", url.Values{"name": {"Kale"}, "price": {"2.5"}, "category": {"vegetable"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/farms/"+id {
		t.Fatalf("nested create: %d %q", w.Code, w.Header().Get("Location"))
	}
	farm, err := store.GetFarm(context.Background(), id)
	if err != nil || len(farm.ProductIDs) != 1 {
		t.Fatalf("farm=%v err=%v", farm, err)
	}
	p, err := store.GetProduct(context.Background(), farm.ProductIDs[0])
	if err != nil || p.FarmID == nil || *p.FarmID != id {
		t.Fatalf("product back reference wrong: %+v err=%v", p, err)
	}
	standalone, err := store.CreateProduct(context.Background(), &domain.Product{Name: "Milk", Price: 1, Category: "dairy"})
	if err != nil {
		t.Fatal(err)
	}

	w = send(h, http.MethodPost, "/farms/"+id, url.Values{"_method": {"DELETE"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/farms" {
		t.Fatalf("delete: %d %q", w.Code, w.Header().Get("Location"))
	}
	if _, err := store.GetProduct(context.Background(), p.ID); err == nil {
		t.Fatal("linked product survived the cascade")
	}
	if _, err := store.GetProduct(context.Background(), standalone.ID); err != nil {
		t.Fatalf("unrelated product removed: %v", err)
	}
}

func TestPipeline_ErrorsArePlainText(t *testing.T) {
	h, _ := newTestServer(t, testConfig())

	w := send(h, http.MethodPost, "/products", url.Values{"name": {"X"}, "price": {"-1"}, "category": {"fruit"}})
	if w.Code != http.StatusBadRequest || w.Body.String() != `"price" must be greater than or equal to 0` {
		t.Fatalf("validation: %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content-type=%q", ct)
	}

	w = send(h, http.MethodGet, "/products/missing", nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "Product not found" {
		t.Fatalf("missing: %d %q", w.Code, w.Body.String())
	}

	w = send(h, http.MethodGet, "/product/new", nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "Page Does Not Exist, try products/new" {
		t.Fatalf("product/new: %d %q", w.Code, w.Body.String())
	}
}

func TestPipeline_ErrorBodiesAreCompressed(t *testing.T) {
	h, _ := newTestServer(t, testConfig())

	w := send(h, http.MethodGet, "/products/missing", nil, "Accept-Encoding", "gzip")
	if w.Code != http.StatusNotFound || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("code=%d encoding=%q", w.Code, w.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	body, _ := io.ReadAll(zr)
	if string(body) != "Product not found" {
		t.Fatalf("body=%q", body)
	}
}

func TestPipeline_IdempotentCreate(t *testing.T) {
	h, store := newTestServer(t, testConfig())
	form := url.Values{"name": {"Melon"}, "price": {"3"}, "category": {"fruit"}}

	for i := 0; i < 3; i++ {
		w := send(h, http.MethodPost, "/products", form, middleware.HeaderIdempotencyKey, "submit-1")
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/products" {
			t.Fatalf("attempt %d: %d %q", i, w.Code, w.Header().Get("Location"))
		}
		if replayed := w.Header().Get(middleware.HeaderIdempotencyReplayed) == "true"; replayed != (i > 0) {
			t.Fatalf("attempt %d: replayed=%v", i, replayed)
		}
	}
	items, err := store.ListProducts(context.Background(), "")
	if err != nil || len(items) != 1 {
		t.Fatalf("products=%d err=%v", len(items), err)
	}
}

func TestPipeline_RateLimitsWritesOnly(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0.0001
	cfg.RateBurst = 1
	h, _ := newTestServer(t, cfg)

	form := url.Values{"name": {"A"}, "price": {"1"}, "category": {"fruit"}}
	if w := send(h, http.MethodPost, "/products", form); w.Code != http.StatusFound {
		t.Fatalf("first write: %d", w.Code)
	}
	w := send(h, http.MethodPost, "/products", form)
	if w.Code != http.StatusTooManyRequests || w.Body.String() != "Too many requests" {
		t.Fatalf("second write: %d %q", w.Code, w.Body.String())
	}
	for i := 0; i < 3; i++ {
		if w := send(h, http.MethodGet, "/products", nil); w.Code != http.StatusOK {
			t.Fatalf("read %d: %d", i, w.Code)
		}
	}
}
