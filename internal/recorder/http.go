package recorder

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxEventBytes bounds a notification body; a single-record S3 event is a few KiB.
const maxEventBytes = 1 << 20

// HTTPHandler receives S3-schema bucket notifications over HTTP, as sent by
// MinIO webhook targets.
type HTTPHandler struct {
	service   *Service
	logger    *zap.Logger
	sourceARN string
	metrics   http.Handler
	router    chi.Router
}

// NewHTTPHandler constructs the HTTP handler and wires routes. sourceARN is
// used as the invocation ARN for every event.
func NewHTTPHandler(service *Service, logger *zap.Logger, sourceARN string) *HTTPHandler {
	h := &HTTPHandler{
		service:   service,
		logger:    logger,
		sourceARN: sourceARN,
		metrics:   service.metrics.Handler(),
	}
	h.buildRouter()
	return h
}

func (h *HTTPHandler) buildRouter() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", h.metrics)
	r.Post("/events", h.handleEvent)

	h.router = r
}

// Router exposes the configured chi router.
func (h *HTTPHandler) Router() http.Handler {
	return h.router
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *HTTPHandler) handleEvent(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("notification received", zap.String("request_id", middleware.GetReqID(r.Context())))
	res := h.service.HandleReader(r.Context(), http.MaxBytesReader(w, r.Body, maxEventBytes), h.sourceARN)
	writeJSON(w, res.StatusCode, res.Message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
