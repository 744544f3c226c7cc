package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/farmstand/internal/apperr"
	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/http/middleware"
	"github.com/tbourn/farmstand/internal/http/views"
	"github.com/tbourn/farmstand/internal/repo"
	"github.com/tbourn/farmstand/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

// testApp is a fully wired page server over an in-memory SQLite store.
type testApp struct {
	store    *repo.Store
	farms    *services.FarmService
	products *services.ProductService
	handler  http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, repo.AutoMigrate(db))

	store := repo.NewStore(db)
	return newTestAppWith(t, store, services.NewFarmService(store, store), services.NewProductService(store, store))
}

func newTestAppWith(t *testing.T, store *repo.Store, farms *services.FarmService, products *services.ProductService) *testApp {
	t.Helper()
	r := gin.New()
	r.SetHTMLTemplate(views.MustLoad())
	r.Use(middleware.ErrorChain([]apperr.Translator{apperr.TranslatePersistenceValidation}, middleware.PlainTextResponder))
	r.Use(middleware.Recovery())

	h := New(farms, products)
	r.GET("/farms", h.ListFarms)
	r.GET("/farms/new", h.NewFarm)
	r.POST("/farms", h.CreateFarm)
	r.GET("/farms/:id", h.ShowFarm)
	r.DELETE("/farms/:id", h.DeleteFarm)
	r.GET("/farms/:id/products/new", h.NewFarmProduct)
	r.POST("/farms/:id/products", h.CreateFarmProduct)
	r.POST("/farms/:id/products/", h.CreateFarmProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/new", h.NewProduct)
	r.GET("/product/new", h.ProductPageMissing)
	r.POST("/products", h.CreateProduct)
	r.GET("/products/:id", h.ShowProduct)
	r.GET("/products/:id/edit", h.EditProduct)
	r.PUT("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)

	return &testApp{store: store, farms: farms, products: products, handler: middleware.MethodOverride(r)}
}

func (a *testApp) form(method, target string, vals url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) json(method, target string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(target string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// getJSON fetches target as JSON and decodes the view into out.
func (a *testApp) getJSON(t *testing.T, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	w := a.get(target, "Accept", "application/json")
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func (a *testApp) mustFarm(t *testing.T, name string) *domain.Farm {
	t.Helper()
	f, err := a.farms.Create(context.Background(), &domain.Farm{Name: name, Email: strings.ToLower(name) + "@x.com"})
	require.NoError(t, err)
	return f
}

func (a *testApp) mustProduct(t *testing.T, name, category string, price float64) *domain.Product {
	t.Helper()
	p, err := a.products.Create(context.Background(), domain.ProductInput{Name: name, Price: price, Category: category})
	require.NoError(t, err)
	return p
}

func domainInput(name string) domain.ProductInput {
	return domain.ProductInput{Name: name, Price: 1, Category: domain.CategoryVegetable}
}
