package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Session metrics
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_active_connections",
			Help: "Currently open WebSocket connections",
		},
	)

	UsersLoggedIn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_users_logged_in",
			Help: "Connections with a registered user",
		},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_events_processed_total",
			Help: "Inbound events processed by the coordinator",
		},
		[]string{"event"},
	)

	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_posted_total",
			Help: "Total messages appended to room history",
		},
	)

	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rooms_created_total",
			Help: "Total rooms created",
		},
	)

	Broadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_broadcasts_total",
			Help: "Outbound fan-outs by scope",
		},
		[]string{"scope"}, // "self", "room", or "all"
	)

	// Transport metrics
	SlowClientsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_slow_clients_dropped_total",
			Help: "Connections dropped because their send buffer filled",
		},
	)
)
