package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	StartPath   = "/api/v1/conversation/start"
	RespondPath = "/api/v1/conversation/respond"
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend api error: %d %s body=%s", e.Code, http.StatusText(e.Code), e.Body)
}

type HTTPBackend struct {
	client *http.Client
}

// NewHTTPBackend builds the client. A zero timeout leaves the transport
// default in place.
func NewHTTPBackend(timeout time.Duration) *HTTPBackend {
	return &HTTPBackend{
		client: &http.Client{Timeout: timeout},
	}
}

func NewHTTPBackendWithClient(client *http.Client) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBackend{client: client}
}

func (c *HTTPBackend) Start(ctx context.Context, baseURL string) (Reply, error) {
	return c.post(ctx, baseURL+StartPath, nil)
}

func (c *HTTPBackend) Respond(ctx context.Context, baseURL string, msg OutgoingMessage) (Reply, error) {
	return c.post(ctx, baseURL+RespondPath, msg)
}

func (c *HTTPBackend) post(ctx context.Context, url string, body any) (Reply, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post "+url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read reply")
	}

	// Unmarshal rejects trailing bytes after the first value
	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, errors.Wrap(err, "decode reply")
	}

	switch v := payload.(type) {
	case nil:
		return nil, errors.New("decode reply: null body")
	case map[string]any:
		return Reply(v), nil
	default:
		// valid JSON of another shape carries no known fields
		return Reply{}, nil
	}
}
