// Package observability provides Prometheus metrics for background work.
//
// Deferred updates and outbound notifications are fire-and-forget: their
// failures never reach a client. These counters are the only place those
// outcomes stay visible.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DeferredUpdatesScheduled counts deferred mutations accepted with a 202.
	DeferredUpdatesScheduled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasteboard_deferred_updates_scheduled_total",
		Help: "Total number of deferred updates scheduled, by entity",
	}, []string{"entity"})

	// DeferredUpdatesCompleted counts deferred mutations committed after the delay.
	DeferredUpdatesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasteboard_deferred_updates_completed_total",
		Help: "Total number of deferred updates committed, by entity",
	}, []string{"entity"})

	// DeferredUpdatesSkipped counts deferred mutations whose target row was
	// gone on wake (concurrent delete).
	DeferredUpdatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasteboard_deferred_updates_skipped_total",
		Help: "Total number of deferred updates skipped because the row no longer exists, by entity",
	}, []string{"entity"})

	// DeferredUpdatesFailed counts deferred mutations that errored during commit.
	DeferredUpdatesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasteboard_deferred_updates_failed_total",
		Help: "Total number of deferred updates that failed, by entity",
	}, []string{"entity"})

	// NotificationsSent counts successful outbound notifications by kind.
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasteboard_notifications_sent_total",
		Help: "Total number of outbound notifications delivered, by kind",
	}, []string{"kind"})

	// NotificationsFailed counts failed outbound notifications by kind.
	NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasteboard_notifications_failed_total",
		Help: "Total number of outbound notifications that failed, by kind",
	}, []string{"kind"})
)
