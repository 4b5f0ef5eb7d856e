package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// NationalBankClient fetches the raw exchange-rate feed. The timeout is
// whatever the injected http.Client carries; one call, no retries.
type NationalBankClient struct {
	http    *http.Client
	feedURL string
}

func NewNationalBankClient(httpClient *http.Client, feedURL string) *NationalBankClient {
	return &NationalBankClient{http: httpClient, feedURL: feedURL}
}

func (c *NationalBankClient) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected feed status code %d: %s", resp.StatusCode, resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}
	return payload, nil
}
