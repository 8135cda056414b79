package common

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PromHTTPRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_request_total",
		Help: "The total number of http requests",
	}, []string{"path", "code"})

	PromHTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "The duration of http requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)
