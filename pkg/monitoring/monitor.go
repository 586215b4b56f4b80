package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	EnrollmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coursemaster",
			Name:      "enrollments_total",
			Help:      "Enrollments created, by initial payment status",
		},
		[]string{"payment_status"},
	)

	EnrollmentsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coursemaster",
			Name:      "enrollments_completed_total",
			Help:      "Enrollments that reached 100% progress",
		},
	)

	QuizSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coursemaster",
			Name:      "quiz_submissions_total",
			Help:      "Graded quiz submissions",
		},
	)

	AssignmentSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coursemaster",
			Name:      "assignment_submissions_total",
			Help:      "Assignment submissions, created or resubmitted",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			EnrollmentsCreated,
			EnrollmentsCompleted,
			QuizSubmissions,
			AssignmentSubmissions,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
