package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shamank/entitrack-sdk-go/pkg/config"
	"go.uber.org/zap"
)

// Service is the operation surface UI code depends on. ServiceClient is the
// HTTP implementation.
type Service interface {
	// ListModels lists the hosted models reachable with apiKey. On success
	// the key is remembered in the state store.
	ListModels(ctx context.Context, apiKey string) Result
	// PerformNER extracts fields from text with a hosted model. On success
	// the key is remembered in the state store.
	PerformNER(ctx context.Context, apiKey, modelKey, text string, fields []string) Result
	// ListTrainingSessions lists every training session known to the backend.
	ListTrainingSessions(ctx context.Context) Result
	// GetTrainingSession returns the metadata of one training session.
	GetTrainingSession(ctx context.Context, sessionID string) Result
	// RemoveTrainingSession deletes a training session and its model.
	RemoveTrainingSession(ctx context.Context, sessionID string) Result
	// TrainModel uploads a CSV and trains a new session model. The call has
	// no deadline.
	TrainModel(ctx context.Context, req TrainRequest) Result
	// TrainModelFromFile is TrainModel reading the CSV from a local path.
	TrainModelFromFile(ctx context.Context, path, unstructuredColumn, description string) Result
	// PerformTrainedNER runs the model of a training session over text.
	PerformTrainedNER(ctx context.Context, sessionID, text string) Result
}

// State is the part of the state store the client needs: where to send
// requests and where to remember a working API key.
type State interface {
	BaseEndpoint() string
	SetAPIKey(key string)
}

// Result is the uniform envelope returned by every call.
//
// Succeeded is true iff the round trip completed with a 2xx status. RawBody
// is only set when Succeeded is true and ErrorMessage only when it is false.
// StatusCode is set whenever a response arrived, including failed ones.
type Result struct {
	Succeeded     bool   `json:"succeeded"`
	StatusSuccess bool   `json:"http_status_was_success"`
	StatusCode    int    `json:"status_code,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	RawBody       string `json:"raw_body,omitempty"`
}

// Err returns ErrorMessage as an error, or nil when the call succeeded.
func (r Result) Err() error {
	if r.Succeeded {
		return nil
	}
	return errors.New(r.ErrorMessage)
}

// Option customizes a ServiceClient.
type Option func(*ServiceClient)

// WithTransport replaces the HTTP transport used for every call. Tests use
// it to stub the network; nil restores http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *ServiceClient) {
		c.transport = rt
	}
}

// ServiceClient talks to the EntiTrack backend over HTTP.
type ServiceClient struct {
	state     State
	timeouts  config.Timeouts
	transport http.RoundTripper
}

var _ Service = (*ServiceClient)(nil)

// New creates a client that resolves the backend through st. Zero timeouts
// are replaced with defaults.
func New(st State, timeouts config.Timeouts, opts ...Option) *ServiceClient {
	c := &ServiceClient{
		state:    st,
		timeouts: timeouts.WithDefaults(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// operation names a backend call for logs and user-facing failure text.
type operation struct {
	name    string
	failure string
	cause   string
}

func (op operation) message(err error) string {
	if op.cause == "" {
		return fmt.Sprintf("%s Error message: %v", op.failure, err)
	}
	return fmt.Sprintf("%s Possible cause: %s. Error message: %v", op.failure, op.cause, err)
}

const (
	causeAPIKey = "Invalid API key"
	causeConfig = "Invalid configuration"
)

// request describes one round trip. A zero timeout means no deadline.
type request struct {
	op          operation
	method      string
	path        string
	body        io.Reader
	contentType string
	timeout     time.Duration
}

// endpoint joins the base endpoint and path, tolerating a trailing slash on
// the base.
func (c *ServiceClient) endpoint(path string) string {
	return strings.TrimSuffix(c.state.BaseEndpoint(), "/") + path
}

// do performs r and converts every outcome to a Result. A fresh http.Client
// is built per call and the response body is closed on every path.
func (c *ServiceClient) do(ctx context.Context, r request) (res Result) {
	fail := func(err error) Result {
		zap.L().Error("entitrack call failed",
			zap.String("operation", r.op.name),
			zap.Int("status", res.StatusCode),
			zap.Error(err))
		res.Succeeded = false
		res.StatusSuccess = false
		res.RawBody = ""
		res.ErrorMessage = r.op.message(err)
		return res
	}

	target := c.endpoint(r.path)
	if _, err := url.ParseRequestURI(target); err != nil {
		if r.body != nil {
			closeBody(r.body)
		}
		return fail(fmt.Errorf("invalid endpoint: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		if r.body != nil {
			closeBody(r.body)
		}
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Accept", "*/*")
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}

	zap.L().Debug("entitrack call",
		zap.String("operation", r.op.name),
		zap.String("method", r.method))

	hc := &http.Client{Transport: c.transport, Timeout: r.timeout}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return fail(err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			zap.L().Warn("failed to close response body", zap.String("operation", r.op.name), zap.Error(cerr))
		}
	}(resp.Body)

	res.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(statusError(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("failed to read response: %w", err))
	}

	res.Succeeded = true
	res.StatusSuccess = true
	res.RawBody = string(body)
	return res
}

// closeBody releases a request body that never reached the transport.
func closeBody(body io.Reader) {
	if rc, ok := body.(io.Closer); ok {
		_ = rc.Close()
	}
}

const maxErrorBody = 4 << 10

// statusError describes a non-2xx response, including the backend's
// {"message": ...} text when present.
func statusError(resp *http.Response) error {
	base := fmt.Sprintf("response status code does not indicate success: %s", resp.Status)

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		return fmt.Errorf("%s: %s", base, payload.Message)
	}
	return errors.New(base)
}

// segment escapes a value used as a single path segment.
func segment(v string) string {
	return url.PathEscape(v)
}
