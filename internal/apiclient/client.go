// Package apiclient talks to the reservation REST API.  Every operation the
// pages need maps to one method; responses are decoded with encoding/json
// and no further validation.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/table-reservation-web/internal/metrics"
)

// maxBody bounds how much of a response is read.
const maxBody = 4 << 20

// Client is safe for concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client rooted at baseURL.  A zero timeout leaves the
// http.Client without one.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one request.  in, when non-nil, is sent as a JSON body; out,
// when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, endpoint, method, path string, in, out any) error {
	start := time.Now()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.ObserveAPI(endpoint, metrics.OutcomeUnreachable, time.Since(start))
		return fmt.Errorf("%s: %w: %v", endpoint, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		metrics.ObserveAPI(endpoint, metrics.OutcomeUnreachable, time.Since(start))
		return fmt.Errorf("%s: read body: %w: %v", endpoint, ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveAPI(endpoint, metrics.OutcomeAPIError, time.Since(start))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Error}
	}
	metrics.ObserveAPI(endpoint, metrics.OutcomeOK, time.Since(start))

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
