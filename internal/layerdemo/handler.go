// Package layerdemo implements the layer-dependency example: a Lambda that
// dispatches on an action field and exercises shared-layer style
// dependencies (AWS SDK, outbound HTTP).
package layerdemo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// fetchPreviewBytes caps how much of a non-JSON upstream body is echoed.
const fetchPreviewBytes = 100

// Event is the demo's invocation payload.
type Event struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
	URL    string         `json:"url"`
}

// Response mimics the proxy-style envelope the original demo returned.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// S3API is the slice of the S3 client the demo exercises.
type S3API interface {
	ListBuckets(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// Handler dispatches demo actions.
type Handler struct {
	cfg        *config.Config
	s3Client   S3API
	httpClient *http.Client
	logger     *logging.Logger
	now        func() time.Time
}

// NewHandler constructs the layer-demo handler. s3Client may be nil; the
// process action then reports zero accessible buckets.
func NewHandler(cfg *config.Config, s3Client S3API, httpClient *http.Client, logger *logging.Logger) *Handler {
	if cfg == nil {
		cfg = config.Load()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.FetchTimeout}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		cfg:        cfg,
		s3Client:   s3Client,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle runs one demo invocation. Failures become a 500 envelope rather
// than a Lambda error so the caller always gets a structured body.
func (h *Handler) Handle(ctx context.Context, evt Event) (Response, error) {
	h.logger.Info("layer demo invoked", "action", evt.Action)

	action := evt.Action
	if action == "" {
		action = "process"
	}

	var result map[string]any
	var err error
	switch action {
	case "process":
		result = h.process(ctx, evt.Data)
	case "fetch":
		url := evt.URL
		if url == "" {
			url = h.cfg.DefaultFetchURL
		}
		result, err = h.fetch(ctx, url)
	default:
		result = map[string]any{"message": fmt.Sprintf("Unknown action: %s", action)}
	}

	if err != nil {
		h.logger.Error("layer demo failed", "action", action, "error", err)
		return h.respond(http.StatusInternalServerError, map[string]any{
			"error":   err.Error(),
			"message": "Internal server error",
		}), nil
	}

	result["metadata"] = h.metadata(ctx)
	return h.respond(http.StatusOK, result), nil
}

func (h *Handler) process(ctx context.Context, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}

	bucketCount := 0
	if h.s3Client != nil {
		out, err := h.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
		if err != nil {
			h.logger.Warn("could not list S3 buckets", "error", err)
		} else {
			bucketCount = len(out.Buckets)
		}
	}

	return map[string]any{
		"message":               "Data processed successfully",
		"data":                  data,
		"s3_buckets_accessible": bucketCount,
	}
}

func (h *Handler) fetch(ctx context.Context, url string) (map[string]any, error) {
	h.logger.Info("fetching data", "url", url)

	reqCtx, cancel := context.WithTimeout(ctx, h.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("layerdemo: invalid fetch URL: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("layerdemo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("layerdemo: upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("layerdemo: failed to read response: %w", err)
	}

	var data any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("layerdemo: upstream sent invalid JSON: %w", err)
		}
	} else {
		preview := string(body)
		if len(preview) > fetchPreviewBytes {
			preview = preview[:fetchPreviewBytes]
		}
		data = preview
	}

	return map[string]any{
		"message":     "Data fetched successfully",
		"url":         url,
		"status_code": resp.StatusCode,
		"data":        data,
	}, nil
}

func (h *Handler) metadata(ctx context.Context) map[string]any {
	functionName := ""
	requestID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
		functionName = lambdacontext.FunctionName
	}
	return map[string]any{
		"timestamp":     h.now().UTC().Format(time.RFC3339),
		"environment":   h.cfg.Env,
		"layer_version": h.cfg.LayerVersion,
		"function_name": functionName,
		"request_id":    requestID,
	}
}

func (h *Handler) respond(status int, payload map[string]any) Response {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: `{"message":"Internal server error"}`}
	}
	return Response{StatusCode: status, Body: string(body)}
}
