package health

import (
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutesManager struct {
	checkDatabase func() error
	logger        *gecho.Logger
	started       time.Time
}

// NewHealthRoutesManager reports the database healthy while checkDatabase
// returns nil.
func NewHealthRoutesManager(checkDatabase func() error, logger *gecho.Logger) *HealthRoutesManager {
	return &HealthRoutesManager{
		checkDatabase: checkDatabase,
		logger:        logger,
		started:       time.Now(),
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)

	// Prometheus metrics endpoint
	registerMetrics()
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}
