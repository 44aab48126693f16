// Package metrics exposes the directory's Prometheus counters. Audit
// appends are best-effort; the failure counter is the only place those
// errors remain observable.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LoginAttempts counts login attempts by outcome
	// (success, wrong_password, not_found, inactive).
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Login attempts processed by the account directory, by outcome.",
		},
		[]string{"outcome"},
	)

	// Registrations counts successful account creations.
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_registrations_total",
			Help: "Accounts created through the register operation.",
		},
	)

	// RecoveryEmails counts password recovery deliveries by status
	// (sent, failed).
	RecoveryEmails = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_recovery_emails_total",
			Help: "Password recovery emails, by delivery status.",
		},
		[]string{"status"},
	)

	// ActivityAppendFailures counts swallowed audit-log write errors.
	ActivityAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_activity_append_failures_total",
			Help: "Audit log appends that failed and were discarded.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		LoginAttempts,
		Registrations,
		RecoveryEmails,
		ActivityAppendFailures,
	)
}
