package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docqual"

var (
	registry = prometheus.NewRegistry()

	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Documents analyzed, by document type and quality outcome.",
	}, []string{"document_type", "outcome"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent scoring one document.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"document_type"})

	combinedScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "combined_score",
		Help:      "Distribution of combined quality scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})

	workflowsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflows_created_total",
		Help:      "Approval workflows created.",
	})

	workflowsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflows_completed_total",
		Help:      "Approval workflows that reached the completed state.",
	})

	decisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_decisions_total",
		Help:      "Submitted change decisions, by outcome.",
	}, []string{"outcome"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by route and status code.",
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		analysesTotal,
		analysisDuration,
		combinedScore,
		workflowsCreated,
		workflowsCompleted,
		decisionsTotal,
		httpRequests,
	)
}

// ObserveAnalysis records one scored document.
func ObserveAnalysis(documentType string, passed bool, score int, elapsed time.Duration) {
	outcome := "fail"
	if passed {
		outcome = "pass"
	}
	analysesTotal.WithLabelValues(documentType, outcome).Inc()
	analysisDuration.WithLabelValues(documentType).Observe(elapsed.Seconds())
	combinedScore.Observe(float64(score))
}

// IncWorkflowCreated counts a new approval workflow.
func IncWorkflowCreated() {
	workflowsCreated.Inc()
}

// IncWorkflowCompleted counts a workflow reaching completed.
func IncWorkflowCompleted() {
	workflowsCompleted.Inc()
}

// AddDecisions counts decisions by outcome: approved, rejected or change_not_found.
func AddDecisions(outcome string, n int) {
	if n <= 0 {
		return
	}
	decisionsTotal.WithLabelValues(outcome).Add(float64(n))
}

// ObserveRequest counts one HTTP response.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
