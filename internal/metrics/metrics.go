// Package metrics exposes run-level Prometheus metrics and a small health
// endpoint for operators that schedule the batch.
package metrics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/rpattn/medallion/internal/domain"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_runs_total",
		Help: "Total number of completed batch runs",
	})

	runErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_run_errors_total",
		Help: "Total number of failed batch runs",
	})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "warehouse_stage_duration_seconds",
		Help:    "Duration of individual pipeline stages",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	}, []string{"stage"})

	stageRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_stage_rows_total",
		Help: "Rows emitted per pipeline stage",
	}, []string{"stage"})

	stageDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_stage_dropped_rows_total",
		Help: "Rows dropped by explicit cleansing rules per stage",
	}, []string{"stage"})
)

// ObserveStage records one stage result.
func ObserveStage(result domain.StageResult) {
	stage := string(result.Stage)
	stageDuration.WithLabelValues(stage).Observe(result.Duration.Seconds())
	stageRows.WithLabelValues(stage).Add(float64(result.Rows))
	stageDropped.WithLabelValues(stage).Add(float64(result.Dropped))
}

// ObserveRun records the outcome of one batch run.
func ObserveRun(err error) {
	if err != nil {
		runErrors.Inc()
		return
	}
	runsTotal.Inc()
}

// Server serves /metrics and /healthz while a run is in flight.
type Server struct {
	addr      string
	startTime time.Time
}

// NewServer creates a metrics server bound to addr.
func NewServer(addr string) *Server {
	return &Server{addr: addr, startTime: time.Now()}
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)

	handler := cors.Default().Handler(mux)
	return http.ListenAndServe(s.addr, handler)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":         "healthy",
		"service":        "medallion-pipeline",
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
	})
}
