package constellation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout is used when a client is constructed with timeout <= 0,
// matching NetworkConfig's documented default.
const defaultTimeout = 30

// httpClient is the thin outbound-only transport shared by CurrencyL1Client
// and DataL1Client. Submitting a signed CurrencyTransaction or metagraph
// data update, fetching an account's last TransactionReference, and
// polling for a pending transaction's status all go through it.
type httpClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient builds a client against baseURL with the given timeout in
// seconds (<=0 selects defaultTimeout).
func newHTTPClient(baseURL string, timeout int) *httpClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpClient{
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// get issues a GET against path, decoding a JSON response body into result.
func (c *httpClient) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return NewNetworkError(err.Error(), 0, "")
	}
	req.Header.Set("Accept", "application/json")
	return c.doRequest(req, result)
}

// post issues a POST of body (JSON-marshaled, e.g. a CurrencyTransaction
// envelope) against path, decoding a JSON response body into result.
func (c *httpClient) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return NewNetworkError(fmt.Sprintf("failed to marshal request body: %v", err), 0, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return NewNetworkError(err.Error(), 0, "")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.doRequest(req, result)
}

func (c *httpClient) doRequest(req *http.Request, result interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		if timeoutErr, ok := err.(interface{ Timeout() bool }); ok && timeoutErr.Timeout() {
			return ErrRequestTimeout
		}
		return NewNetworkError(err.Error(), 0, "")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(fmt.Sprintf("failed to read response body: %v", err), resp.StatusCode, "")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewNetworkError(
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			resp.StatusCode,
			string(body),
		)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return NewNetworkError(fmt.Sprintf("failed to unmarshal response: %v", err), 0, string(body))
		}
	}

	return nil
}
