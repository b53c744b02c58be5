// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LoginAttempts counts logins by outcome: success, invalid_credentials,
	// locked, unverified, inactive, error.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "identity_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	// TokenRotations counts successful refresh-token rotations.
	TokenRotations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "identity_token_rotations_total",
		Help: "Successful refresh-token rotations.",
	})

	// TokenReuseIncidents counts detected refresh-token replays. Each one is
	// a security incident that revoked every session of the account.
	TokenReuseIncidents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "identity_token_reuse_incidents_total",
		Help: "Detected refresh-token replay incidents.",
	})

	// OTPVerifications counts OTP checks by outcome: success, incorrect,
	// expired, exhausted.
	OTPVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "identity_otp_verifications_total",
		Help: "One-time-code verifications by outcome.",
	}, []string{"outcome"})

	// ConsentDenials counts consent-gate rejections.
	ConsentDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "identity_consent_denials_total",
		Help: "Requests denied by the consent gate.",
	})
)

// Serve runs the metrics endpoint on its own port.
func Serve(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return srv.ListenAndServe()
}
