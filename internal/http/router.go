// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, page templates and route handlers. It centralizes cross-cutting
// concerns such as tracing, correlation IDs, logging/redaction, the error
// chain, panic recovery, metrics, compression, CORS, security headers,
// idempotency and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - One explicit error chain: handlers attach errors, the chain answers
//   - Deterministic, minimal router setup; all dependencies injected
//   - Work for plain HTML forms (method override, redirects after writes)
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/farmstand/internal/apperr"
	"github.com/tbourn/farmstand/internal/config"
	"github.com/tbourn/farmstand/internal/http/docs"
	"github.com/tbourn/farmstand/internal/http/handlers"
	"github.com/tbourn/farmstand/internal/http/middleware"
	"github.com/tbourn/farmstand/internal/http/views"
	"github.com/tbourn/farmstand/internal/services"
)

// Store is the persistence surface the HTTP layer needs. repo.Store (SQLite,
// Postgres) and docstore.Store (MongoDB) both implement it.
type Store interface {
	services.FarmStore
	services.ProductStore
	middleware.IdempotencyStore
}

// Translators is the ordered error translator list applied by the error
// chain before the terminal responder.
var Translators = []apperr.Translator{
	apperr.TranslatePersistenceValidation,
}

// maxBodyBytes caps request bodies; forms here are a few hundred bytes.
const maxBodyBytes = 1 << 20

// RegisterRoutes attaches all middleware, templates and endpoints to the
// given Gin engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: request-scoped logger for handlers and services
//  4. RedactingLogger: access log with PII scrubbing, sees the final status
//  5. Metrics: sees the final status
//  6. gzip: the error chain writes inside it, so error bodies are compressed too
//  7. ErrorChain: translators, then the plain-text responder
//  8. Recovery: panics become errors for the chain
//  9. Idempotency validator (before rate limiting, so replays cost no tokens)
//  10. Rate limiter (writes only, per client IP)
//  11. CORS and security headers
//
// The body size cap sits outside the engine, in Handler.
func RegisterRoutes(r *gin.Engine, store Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(views.MustLoad())

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.ErrorChain(Translators, middleware.PlainTextResponder))
	r.Use(middleware.Recovery())

	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{
		TTL:    cfg.IdempotencyTTL,
		MaxLen: 200,
	}, store))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
		CSP:          middleware.DefaultContentSecurityPolicy,
	}))

	// Fallbacks go through the error chain like everything else.
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, apperr.NotFound(handlers.MsgRouteNotFound))
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, apperr.New(http.StatusMethodNotAllowed, handlers.MsgMethodNotAllowed))
	})

	// Ambient endpoints
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = "/"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/products") })

	// Dependency injection: services ← store
	farmSvc := services.NewFarmService(store, store)
	productSvc := services.NewProductService(store, store)
	h := handlers.New(farmSvc, productSvc)

	farms := r.Group("/farms")
	{
		farms.GET("", h.ListFarms)
		farms.GET("/new", h.NewFarm)
		farms.POST("", h.CreateFarm)
		farms.GET("/:id", h.ShowFarm)
		farms.DELETE("/:id", h.DeleteFarm)
		farms.GET("/:id/products/new", h.NewFarmProduct)
		farms.POST("/:id/products", h.CreateFarmProduct)
		farms.POST("/:id/products/", h.CreateFarmProduct)
	}

	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/new", h.NewProduct)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.ShowProduct)
		products.GET("/:id/edit", h.EditProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
	r.GET("/product/new", h.ProductPageMissing)
}

// Handler wraps the engine with method override so HTML forms can reach the
// PUT and DELETE routes, and caps request bodies before the override reads
// the form. Serve this, not the bare engine.
func Handler(r *gin.Engine) http.Handler {
	return limitBody(middleware.MethodOverride(r), maxBodyBytes)
}

// corsMiddleware returns the CORS posture. With no configured origins every
// origin is allowed without credentials; otherwise the allowlist is echoed.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	allowHeaders := []string{
		"Origin", "Content-Type", "Accept",
		middleware.HeaderIdempotencyKey, middleware.HeaderMethodOverride,
	}
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	expose := []string{"X-Request-ID", "ETag", "Content-Length"}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     methods,
				AllowHeaders:     allowHeaders,
				ExposeHeaders:    expose,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    expose,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// limitBody caps the request body at maxBytes using http.MaxBytesReader.
// Reads past the cap fail with *http.MaxBytesError, which handlers report
// as 413.
func limitBody(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}
