// Package api implements the Function URL HTTP example: a small exact-match
// route table returning canned JSON responses.
package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// corsHeaders are fixed on every response, matching the demo deployment.
var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// Handler routes Function URL requests.
type Handler struct {
	cfg    *config.Config
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler constructs the API handler.
func NewHandler(cfg *config.Config, logger *logging.Logger) *Handler {
	if cfg == nil {
		cfg = config.Load()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{cfg: cfg, logger: logger, now: time.Now}
}

// Handle maps one Function URL event to a response. Unexpected panics are
// turned into a 500 whose body includes the error text; that mirrors the
// demo deployment this replaces and is deliberately not hardened.
func (h *Handler) Handle(evt events.LambdaFunctionURLRequest) (resp events.LambdaFunctionURLResponse) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("unhandled error", "error", fmt.Sprint(r))
			resp = h.respond(http.StatusInternalServerError, map[string]any{
				"error":   "Internal server error",
				"message": fmt.Sprint(r),
			})
		}
	}()

	method := evt.RequestContext.HTTP.Method
	path := evt.RawPath
	if path == "" {
		path = "/"
	}
	h.logger.Info("http request", "method", method, "path", path)

	body, err := requestBody(evt)
	if err != nil {
		return h.respond(http.StatusBadRequest, map[string]any{"error": "Invalid request body encoding"})
	}

	status, payload := h.Route(method, path, evt.QueryStringParameters, body)
	return h.respond(status, payload)
}

// Route resolves method+path against the fixed route table. It is shared by
// the Lambda front and the local chi server.
func (h *Handler) Route(method, path string, query map[string]string, body []byte) (int, any) {
	switch {
	case method == http.MethodGet && path == "/":
		return http.StatusOK, h.root(query)
	case method == http.MethodGet && path == "/health":
		return http.StatusOK, h.health()
	case method == http.MethodPost && path == "/api/data":
		return h.postData(body)
	default:
		return http.StatusNotFound, map[string]any{
			"error":  "Not found",
			"path":   path,
			"method": method,
		}
	}
}

func (h *Handler) root(query map[string]string) map[string]any {
	if query == nil {
		query = map[string]string{}
	}
	return map[string]any{
		"message":      "Welcome to Lambda Function URL API",
		"timestamp":    h.now().UTC().Format(time.RFC3339),
		"environment":  h.cfg.Env,
		"query_params": query,
		"endpoints": map[string]string{
			"GET /":          "This message",
			"GET /health":    "Health check",
			"POST /api/data": "Process data",
		},
	}
}

func (h *Handler) health() map[string]any {
	bookingStore := "simulated"
	if h.cfg.BookingsTable != "" {
		bookingStore = "dynamodb"
	}
	eventsQueue := "not configured"
	if h.cfg.BookingEventsQueueURL != "" {
		eventsQueue = "configured"
	}
	return map[string]any{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"booking_store": bookingStore,
			"events_queue":  eventsQueue,
			"aws_region":    h.cfg.AWSRegion,
		},
	}
}

func (h *Handler) postData(body []byte) (int, any) {
	data := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			h.logger.Error("json decode error", "error", err)
			return http.StatusBadRequest, map[string]any{"error": "Invalid JSON in request body"}
		}
	}
	h.logger.Info("processing posted data", "keys", len(data))
	return http.StatusOK, map[string]any{
		"message":       "Data received and processed",
		"timestamp":     h.now().UTC().Format(time.RFC3339),
		"received_data": data,
		"processed":     true,
	}
}

func (h *Handler) respond(status int, payload any) events.LambdaFunctionURLResponse {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Payloads are built from maps of primitives; this cannot happen in
		// practice.
		body = []byte(`{"error":"Internal server error"}`)
		status = http.StatusInternalServerError
	}
	headers := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		headers[k] = v
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

func requestBody(evt events.LambdaFunctionURLRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	return base64.StdEncoding.DecodeString(evt.Body)
}
