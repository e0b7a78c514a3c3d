package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"` // in seconds
	CurrentTime  time.Time `json:"current_time"`
	ServiceAlive bool      `json:"service_alive"`
	Goroutines   int       `json:"goroutines"`
	AllocMB      uint64    `json:"alloc_mb"`
}

type databaseHealthStatus struct {
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	gecho.Success(w,
		gecho.WithData(serverHealthStatus{
			Uptime:       time.Since(hrm.started).Seconds(),
			CurrentTime:  time.Now(),
			ServiceAlive: true,
			Goroutines:   runtime.NumGoroutine(),
			AllocMB:      m.Alloc / 1024 / 1024,
		}),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := hrm.checkDatabase(); err != nil {
		hrm.logger.Error("Database health check failed", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Database health check failed"),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(databaseHealthStatus{
			Connected:      true,
			LastChecked:    time.Now(),
			ResponseTimeMs: time.Since(start).Milliseconds(),
		}),
		gecho.Send(),
	)
}
