// Package metrics holds the Prometheus collectors of the fulfillment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hubflow"

var (
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order transitions attempted, by transition and result",
		},
		[]string{"transition", "result"},
	)

	OTPFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verification_failures_total",
			Help:      "Rejected pickup code verifications, by kind",
		},
		[]string{"kind"},
	)

	DistrictFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "district_fallbacks_total",
			Help:      "Addresses routed to the default district because no district name matched",
		},
		[]string{"party"},
	)

	HubCounterUnderflowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hub_counter_underflows_total",
			Help:      "Slot releases on hubs whose current order count was already zero",
		},
		[]string{"hub"},
	)

	NotificationsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Notifications persisted by the relay, by recipient role",
		},
		[]string{"role"},
	)

	OutboxFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_failures_total",
			Help:      "Failed outbox relay attempts; parked=true when the message gave up",
		},
		[]string{"parked"},
	)

	PickupMailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pickup_mails_total",
			Help:      "Pickup code emails handed to the mailer, by result",
		},
		[]string{"result"},
	)

	ScheduledTasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_tasks_total",
			Help:      "Scheduled tasks run, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		TransitionsTotal,
		OTPFailuresTotal,
		DistrictFallbacksTotal,
		HubCounterUnderflowsTotal,
		NotificationsCreatedTotal,
		OutboxFailuresTotal,
		PickupMailsTotal,
		ScheduledTasksTotal,
		HTTPRequestDuration,
	)
}

// Result labels for TransitionsTotal.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ResultSuperseded labels a pickup mail skipped because a newer code replaced it.
const ResultSuperseded = "superseded"
