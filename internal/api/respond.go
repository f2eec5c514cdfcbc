package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/punchamoorthee/propshare/internal/service"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propshare_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "propshare_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})

	tokensPurchasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_tokens_purchased_total",
		Help: "Tokens sold through primary issuance",
	})

	distributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_distributions_total",
		Help: "Rental income distributions created",
	})

	claimsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_claims_total",
		Help: "Distribution claims paid out",
	})

	tradesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_trades_total",
		Help: "Secondary market trades executed",
	})
)

func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload any, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg string, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}

// respondServiceError maps engine errors onto HTTP statuses and includes the
// stable numeric error code alongside the message.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, method, endpoint string) {
	var status int
	switch {
	case errors.Is(err, service.ErrOwnerOnly), errors.Is(err, service.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyVerified), errors.Is(err, service.ErrNotVerified):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidParameter),
		errors.Is(err, service.ErrInsufficientTokens),
		errors.Is(err, service.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}
	h.respondJSON(w, status, map[string]any{
		"error": err.Error(),
		"code":  service.ErrorCode(err),
	}, method, endpoint)
}
