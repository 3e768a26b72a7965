package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formflow/pkg/storage"
)

const maxResponseBytes = 1 << 20

// ErrResponseTooLarge is the cause of a failure for bodies over 1 MiB.
var ErrResponseTooLarge = errors.New("submit: response body too large")

// FieldMapping renames a form value when building the outbound request.
type FieldMapping struct {
	From string
	To   string
}

// DefaultSignInMapping maps the sign-in form onto the login endpoint fields.
var DefaultSignInMapping = []FieldMapping{
	{From: "mobile", To: "contact"},
	{From: "password", To: "password"},
}

// ErrInvalidFieldMapping is returned by ParseFieldMappings for malformed input.
var ErrInvalidFieldMapping = errors.New("submit: invalid field mapping")

// ParseFieldMappings reads a comma separated list of from=to pairs, for
// example "mobile=contact,password=password". A bare name maps to itself.
func ParseFieldMappings(raw string) ([]FieldMapping, error) {
	var mappings []FieldMapping
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, found := strings.Cut(part, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !found {
			to = from
		}
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldMapping, part)
		}
		mappings = append(mappings, FieldMapping{From: from, To: to})
	}
	return mappings, nil
}

// RemoteOption configures a Remote pipeline.
type RemoteOption func(*Remote)

// WithHTTPClient overrides the HTTP client; the default has a 30s timeout.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		if client != nil {
			r.client = client
		}
	}
}

// WithStorage sets where the session payload is persisted.
func WithStorage(s storage.Storage) RemoteOption {
	return func(r *Remote) {
		r.storage = s
	}
}

// WithNavigator sets the collaborator asked to move to the default route.
func WithNavigator(n Navigator) RemoteOption {
	return func(r *Remote) {
		r.navigator = n
	}
}

// WithRoute overrides the route requested on success.
func WithRoute(route string) RemoteOption {
	return func(r *Remote) {
		if trimmed := strings.TrimSpace(route); trimmed != "" {
			r.route = trimmed
		}
	}
}

// WithFieldMapping replaces the value-to-request field mapping.
func WithFieldMapping(mapping ...FieldMapping) RemoteOption {
	return func(r *Remote) {
		if len(mapping) > 0 {
			r.mapping = append([]FieldMapping(nil), mapping...)
		}
	}
}

// WithLogger routes pipeline logs to logger.
func WithLogger(logger Logger) RemoteOption {
	return func(r *Remote) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRequestID overrides the request id generator.
func WithRequestID(fn func() string) RemoteOption {
	return func(r *Remote) {
		if fn != nil {
			r.requestID = fn
		}
	}
}

// Remote posts values as multipart form fields and, on success, persists the
// response under storage.KeyUserData / storage.KeyIsLoggedIn and navigates to
// the default route.
type Remote struct {
	endpoint  string
	client    *http.Client
	storage   storage.Storage
	navigator Navigator
	route     string
	mapping   []FieldMapping
	logger    Logger
	requestID func() string
}

var _ Pipeline = (*Remote)(nil)

// NewRemote builds a Remote pipeline for endpoint.
func NewRemote(endpoint string, options ...RemoteOption) *Remote {
	r := &Remote{
		endpoint:  strings.TrimSpace(endpoint),
		client:    &http.Client{Timeout: 30 * time.Second},
		route:     DefaultRoute,
		mapping:   append([]FieldMapping(nil), DefaultSignInMapping...),
		logger:    defaultLogger(),
		requestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Endpoint reports the configured URL.
func (r *Remote) Endpoint() string {
	return r.endpoint
}

// Submit performs the request. Every failure is returned as an Outcome and
// logged; nothing is swallowed.
func (r *Remote) Submit(ctx context.Context, values map[string]string) Outcome {
	outcome := r.submit(ctx, values)
	if !outcome.OK() {
		r.logger.Printf("submit: %s %s failed: %v", http.MethodPost, r.endpoint, outcome.Err())
	}
	return outcome
}

func (r *Remote) submit(ctx context.Context, values map[string]string) Outcome {
	if r.endpoint == "" {
		return Failure(FailureTransport, "sign-in endpoint is not configured")
	}

	body, contentType, err := r.encode(values)
	if err != nil {
		return Failure(FailureTransport, "could not encode request").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, body)
	if err != nil {
		return Failure(FailureTransport, "could not build request").WithCause(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", r.requestID())

	resp, err := r.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Failure(FailureAborted, "request was cancelled").WithCause(err)
		}
		return Failure(FailureTransport, "could not reach the server").WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return Failure(FailureTransport, "could not read the response").WithStatus(resp.StatusCode).WithCause(err)
	}
	if len(raw) > maxResponseBytes {
		return Failure(FailureDecode, "response from the server is too large").
			WithStatus(resp.StatusCode).
			WithCause(fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBytes))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failure(FailureStatus, responseMessage(raw, resp.StatusCode)).WithStatus(resp.StatusCode)
	}

	payload, err := compactJSON(raw)
	if err != nil {
		return Failure(FailureDecode, "unexpected response from the server").WithStatus(resp.StatusCode).WithCause(err)
	}

	if err := r.persist(ctx, payload); err != nil {
		return Failure(FailureStorage, "could not save the session").WithCause(err)
	}

	if r.navigator != nil {
		if err := r.navigator.Navigate(ctx, r.route); err != nil {
			r.logger.Printf("submit: navigate to %s: %v", r.route, err)
		}
	}
	return Success(payload)
}

func (r *Remote) encode(values map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, m := range r.mapping {
		if err := w.WriteField(m.To, values[m.From]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", m.To, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func (r *Remote) persist(ctx context.Context, payload json.RawMessage) error {
	if r.storage == nil {
		return nil
	}
	if err := r.storage.Set(ctx, storage.KeyUserData, string(payload)); err != nil {
		return err
	}
	return r.storage.Set(ctx, storage.KeyIsLoggedIn, "true")
}

func compactJSON(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// responseMessage extracts a human readable message from an error body,
// falling back to the status text.
func responseMessage(raw []byte, status int) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"message", "error", "msg", "detail"} {
			if s, ok := body[key].(string); ok {
				if msg := plainText(s); msg != "" {
					return msg
				}
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText strips markup from server supplied messages before they reach a
// render target.
func plainText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}
