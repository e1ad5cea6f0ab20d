// Package api talks to the bookkeeping backend's JSON envelope protocol.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 8 << 20

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:3000/v1"

var errInvalidResponse = errors.New("Invalid response from server")

// Client issues one HTTP request per call against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a backend client.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// Envelope is a decoded success response: {"code":0, "message":..., <key>: ...}.
type Envelope struct {
	fields map[string]json.RawMessage
	raw    []byte
}

// Message returns the envelope's message, if any.
func (e Envelope) Message() string {
	var msg string
	if m, ok := e.fields["message"]; ok {
		_ = json.Unmarshal(m, &msg)
	}
	return msg
}

// Decode unmarshals the payload under key. ok is false when the key is absent.
func (e Envelope) Decode(key string, out any) (bool, error) {
	v, ok := e.fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(v, out); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Into unmarshals the whole envelope, for endpoints whose payload is flattened
// next to code and message.
func (e Envelope) Into(out any) error {
	if err := json.Unmarshal(e.raw, out); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	return nil
}

// Do sends one request and unwraps the envelope. Non-2xx statuses and non-zero
// envelope codes both come back as *Error.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (Envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	log := c.log.With().Str("method", method).Str("endpoint", endpoint).Str("request_id", requestID).Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("api request failed")
		return Envelope{}, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("api read failed")
		return Envelope{}, transportError(err)
	}
	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &errBody)
		apiErr := statusError(resp.StatusCode, errBody.Message)
		log.Warn().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("api error status")
		return Envelope{}, apiErr
	}

	env := Envelope{raw: raw}
	if err := json.Unmarshal(raw, &env.fields); err != nil {
		log.Warn().Err(err).Msg("api response is not a JSON object")
		return Envelope{}, &Error{Status: resp.StatusCode, Message: errInvalidResponse.Error(), Err: errInvalidResponse}
	}

	var code *int
	if v, ok := env.fields["code"]; ok {
		_ = json.Unmarshal(v, &code)
	}
	if code == nil || *code != 0 {
		got := -1
		if code != nil {
			got = *code
		}
		apiErr := appError(resp.StatusCode, got, env.Message())
		log.Warn().Int("code", got).Str("message", apiErr.Message).Msg("api application error")
		return Envelope{}, apiErr
	}
	return env, nil
}

func itemPath(coll Collection, id string) string {
	return coll.Path + "/" + url.PathEscape(id)
}

// List fetches every record of a collection. A missing key yields an empty,
// non-nil slice.
func List[T any](ctx context.Context, c *Client, coll Collection) ([]T, error) {
	env, err := c.Do(ctx, http.MethodGet, coll.Path, nil)
	if err != nil {
		return nil, err
	}
	var out []T
	if _, err := env.Decode(coll.ListKey, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get fetches one record. found is false when the response lacks the item key.
func Get[T any](ctx context.Context, c *Client, coll Collection, id string) (T, bool, error) {
	var out T
	env, err := c.Do(ctx, http.MethodGet, itemPath(coll, id), nil)
	if err != nil {
		return out, false, err
	}
	found, err := env.Decode(coll.ItemKey, &out)
	if err != nil {
		return out, false, err
	}
	return out, found, nil
}

// Create posts payload to the collection and returns the created record.
func Create[T any](ctx context.Context, c *Client, coll Collection, payload any) (T, error) {
	var out T
	env, err := c.Do(ctx, http.MethodPost, coll.Path, payload)
	if err != nil {
		return out, err
	}
	if _, err := env.Decode(coll.ItemKey, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update patches one record and returns the stored version.
func Update[T any](ctx context.Context, c *Client, coll Collection, id string, payload any) (T, error) {
	var out T
	env, err := c.Do(ctx, http.MethodPatch, itemPath(coll, id), payload)
	if err != nil {
		return out, err
	}
	if _, err := env.Decode(coll.ItemKey, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete removes one record.
func (c *Client) Delete(ctx context.Context, coll Collection, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, itemPath(coll, id), nil)
	return err
}
