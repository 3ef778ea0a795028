package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// restClient wraps the JSON-over-HTTP conventions the device endpoints
// share: POST for commands, GET for state, non-2xx mapped to
// TransportError.
type restClient struct {
	baseURL    string
	deviceType string
	httpClient *http.Client
}

func newRESTClient(baseURL, deviceType string, timeout time.Duration) *restClient {
	return &restClient{
		baseURL:    baseURL,
		deviceType: deviceType,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// post sends a command. A nil payload sends an empty body.
func (c *restClient) post(ctx context.Context, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{DeviceType: c.deviceType, Message: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	return nil
}

// get fetches state and decodes the JSON response into out.
func (c *restClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{DeviceType: c.deviceType, Message: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{DeviceType: c.deviceType, Message: "decoding response: " + err.Error()}
	}
	return nil
}

func (c *restClient) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return &TransportError{
		DeviceType: c.deviceType,
		StatusCode: resp.StatusCode,
		Message:    string(snippet),
	}
}
