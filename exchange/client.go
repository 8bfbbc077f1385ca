package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tradelog/reconcile"
)

// Client fetches raw fill history and account snapshots from the
// exchange HTTP API. Responses are handed to the reconcile package
// untouched; this layer does no validation beyond the status code.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type fillsResponse struct {
	Fills []reconcile.RawFill `json:"fills"`
}

// GetFills fetches a wallet's fill history. A zero from time means the
// full available history; reconciliation needs fills older than the
// emission cutoff to track net size correctly.
func (c *Client) GetFills(ctx context.Context, wallet string, from time.Time) ([]reconcile.RawFill, error) {
	params := url.Values{}
	if !from.IsZero() {
		params.Set("from", from.Format(time.RFC3339))
	}

	apiURL := fmt.Sprintf("%s/v1/wallets/%s/fills", c.baseURL, url.PathEscape(wallet))
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	var resp fillsResponse
	if err := c.get(ctx, apiURL, &resp); err != nil {
		return nil, err
	}
	return resp.Fills, nil
}

// GetAccount fetches a wallet's equity and open-position snapshot.
func (c *Client) GetAccount(ctx context.Context, wallet string) (reconcile.RawAccount, error) {
	apiURL := fmt.Sprintf("%s/v1/wallets/%s/account", c.baseURL, url.PathEscape(wallet))

	var resp reconcile.RawAccount
	if err := c.get(ctx, apiURL, &resp); err != nil {
		return reconcile.RawAccount{}, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, apiURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
