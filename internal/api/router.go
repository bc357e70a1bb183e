package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veracify/credence/internal/api/handlers"
	mw "github.com/veracify/credence/internal/api/middleware"
	"github.com/veracify/credence/internal/config"
	"github.com/veracify/credence/internal/domain"
	"github.com/veracify/credence/internal/service"
	"github.com/veracify/credence/internal/store"
	"go.uber.org/zap"
)

// App holds the router and request metrics. The inference engine is
// stateless, so there are no background services to manage.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	evidenceStore := store.NewEvidenceStore(db)

	inferenceSvc := service.NewInferenceService(evidenceStore, logger)
	applyCalibration(inferenceSvc)

	inferenceHandler := handlers.NewInferenceHandler(inferenceSvc)
	explanationHandler := handlers.NewExplanationHandler(inferenceSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	// Read-only inference surface. Record CRUD, auth and ingestion live in
	// collaborating services, not here.
	r.Route("/v1", func(r chi.Router) {
		r.Route("/entities/{id}", func(r chi.Router) {
			r.Get("/inference", inferenceHandler.GetInference)
			r.Get("/roles/{roleType}/explanation", explanationHandler.GetExplanation)
		})
	})

	return app
}

// applyCalibration overrides the engine's policy constants from env config
// where set.
func applyCalibration(svc *service.InferenceService) {
	if k := config.CoverageSaturation(); k > 0 {
		svc.CoverageSaturation = k
	}
	if v := config.DisputedDisagreement(); v > 0 {
		svc.DisputedDisagreement = v
	}
	if v := config.WeakConfidenceCeiling(); v > 0 {
		svc.WeakConfidenceCeiling = v
	}
	if v := config.ModerateConfidenceCeiling(); v > 0 {
		svc.ModerateConfidenceCeiling = v
	}
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure the store satisfies the engine's interface at compile time.
var _ domain.EvidenceStore = (*store.EvidenceStore)(nil)
