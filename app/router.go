package app

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
	"github.com/mytheresa/storefront-catalog/app/catalog"
	"github.com/mytheresa/storefront-catalog/app/categories"
	"github.com/mytheresa/storefront-catalog/app/coupons"
	"github.com/mytheresa/storefront-catalog/app/health"
	"github.com/mytheresa/storefront-catalog/app/reviews"
	"github.com/mytheresa/storefront-catalog/app/variants"
	"github.com/mytheresa/storefront-catalog/app/wishlist"
	"github.com/mytheresa/storefront-catalog/config"
	"github.com/mytheresa/storefront-catalog/database"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// RouteRegistrar is implemented by every handler group.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// App builds the admin API on top of db.
func App(cfg *config.Config, db *gorm.DB, logger *gecho.Logger) chi.Router {
	productsRepo := models.NewProductsRepository(db)

	return NewRouter(cfg, logger,
		categories.NewCategoryHandler(models.NewCategoriesRepository(db), logger),
		catalog.NewCatalogHandler(productsRepo, logger, cfg.Media.BaseURL),
		variants.NewVariantHandler(models.NewVariantsRepository(db), logger),
		coupons.NewCouponHandler(models.NewCouponsRepository(db), logger),
		reviews.NewReviewHandler(models.NewReviewsRepository(db), productsRepo, logger),
		wishlist.NewWishlistHandler(models.NewWishlistRepository(db), logger),
		health.NewHealthRoutesManager(func() error { return database.CheckConnection(db) }, logger),
	)
}

// NewRouter installs the middleware stack and the given handler groups.
func NewRouter(cfg *config.Config, logger *gecho.Logger, groups ...RouteRegistrar) chi.Router {
	r := chi.NewRouter()

	mwLogger := gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(false),
		gecho.WithLogLevel(gecho.ParseLogLevel(cfg.Server.LogLevel())),
	))

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits
	r.Use(BodyLimit(cfg.Server.BodyLimit))

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))
	r.Use(health.MetricsMiddleware)

	// CORS
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		AllowedMethods:   cfg.Cors.AllowedMethods,
		AllowedHeaders:   cfg.Cors.AllowedHeaders,
		ExposedHeaders:   cfg.Cors.ExposedHeaders,
		AllowCredentials: cfg.Cors.AllowCredentials,
		MaxAge:           cfg.Cors.MaxAge,
	}).Handler)

	for _, g := range groups {
		g.RegisterRoutes(r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w, gecho.Send())
	})

	logger.Debug("Routes registered", gecho.Field("groups", len(groups)))
	return r
}

// BodyLimit caps request bodies at maxBytes.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
