package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	Requests        *prometheus.CounterVec
	RowsPredicted   prometheus.Counter
	PipelineLatency *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_requests_total",
		Help: "Prediction requests by route and outcome.",
	}, []string{"route", "outcome"})
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "forecast_rows_predicted_total",
		Help: "Rows that received a prediction.",
	})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forecast_pipeline_latency_seconds",
		Help:    "Time spent running the prediction pipeline.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	r.MustRegister(requests, rows, latency)
	return &Registry{
		reg:             r,
		Requests:        requests,
		RowsPredicted:   rows,
		PipelineLatency: latency,
	}
}

// Observe records one finished pipeline run. A nil error counts as
// success and adds the predicted rows.
func (r *Registry) Observe(route string, rows int, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.Requests.WithLabelValues(route, outcome).Inc()
	r.PipelineLatency.WithLabelValues(route).Observe(elapsed.Seconds())
	if err == nil {
		r.RowsPredicted.Add(float64(rows))
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
