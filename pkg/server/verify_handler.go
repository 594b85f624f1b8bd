// Package server exposes the proof verifier over HTTP: a single verify
// endpoint plus the health and metrics surface an operator expects next to
// it.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zkmimc/proofengine/pkg/proof"
)

// VerifyHandlers provides the HTTP handlers for the proof verification
// service.
type VerifyHandlers struct {
	logger *log.Logger

	requestsTotal  *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewVerifyHandlers constructs a VerifyHandlers, registering its Prometheus
// collectors against registry. A nil registry uses the default registerer.
func NewVerifyHandlers(logger *log.Logger, registry prometheus.Registerer) *VerifyHandlers {
	if logger == nil {
		logger = log.New(log.Writer(), "[VerifyAPI] ", log.LstdFlags)
	}
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)
	return &VerifyHandlers{
		logger: logger,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zkengine_verify_requests_total",
			Help: "Total number of /v1/verify requests, labeled by outcome.",
		}, []string{"outcome"}),
		requestLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "zkengine_verify_request_duration_seconds",
			Help:    "Latency of /v1/verify requests.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// verifyResponse is the exact JSON envelope the verify endpoint emits in
// both the success and failure cases.
type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleVerify handles POST /v1/verify. The request body is a proof.Proof
// encoded as JSON. A structurally malformed request body is a 400; a
// well-formed but rejected proof is a 200 with success:false, since the
// client's request was valid and the verifier's answer is "no".
func (h *VerifyHandlers) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()
	requestID := uuid.New().String()
	defer func() {
		h.requestLatency.Observe(time.Since(start).Seconds())
	}()

	var p proof.Proof
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.requestsTotal.WithLabelValues("bad_request").Inc()
		h.logger.Printf("request %s: malformed body: %v", requestID, err)
		h.writeError(w, http.StatusBadRequest, "request body is not a valid proof encoding")
		return
	}

	result := proof.Verify(&p)
	if result.Accepted {
		h.requestsTotal.WithLabelValues("accepted").Inc()
		h.logger.Printf("request %s: %s proof accepted", requestID, p.ProofType)
		h.writeJSON(w, http.StatusOK, verifyResponse{Success: true, Message: "proof accepted"})
		return
	}

	h.requestsTotal.WithLabelValues(string(result.Err.Kind)).Inc()
	h.logger.Printf("request %s: %s proof rejected: %v", requestID, p.ProofType, result.Err)
	h.writeJSON(w, http.StatusOK, verifyResponse{Success: false, Error: result.Err.Error()})
}

// HandleHealthz handles GET /healthz. The service has no external
// dependencies to probe, so readiness is equivalent to liveness.
func (h *VerifyHandlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *VerifyHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("error encoding response: %v", err)
	}
}

func (h *VerifyHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, verifyResponse{Success: false, Error: message})
}
