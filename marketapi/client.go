// Copyright 2026 ID Bazaar Developers

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package marketapi is the authenticated JSON client for the ID Bazaar
// marketplace API. It attaches the bearer credential, surfaces non-2xx
// responses as typed errors and keeps every mutating call single-shot:
// only the idempotent balance read is ever retried.
package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config configures a marketplace API client.
type Config struct {
	// BaseURL is the deployment-specific API origin, e.g.
	// "https://api.idbazaar.example".
	BaseURL string `yaml:"base_url"`
	// RequestTimeout bounds each individual HTTP request.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// BalanceRetryMaxElapsed bounds the total time spent retrying the wallet
	// balance read on 5xx responses. Zero disables retries.
	BalanceRetryMaxElapsed time.Duration `yaml:"balance_retry_max_elapsed"`
}

// DefaultConfig returns a Config with default values set.
func DefaultConfig() Config {
	return Config{
		BaseURL:                "",
		RequestTimeout:         30 * time.Second,
		BalanceRetryMaxElapsed: 10 * time.Second,
	}
}

// Client issues authenticated requests to the marketplace API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	tokens     TokenSource

	balanceRetryMaxElapsed time.Duration
}

// New creates a marketplace API client. tokens must be non-nil; requests
// without a usable credential fail before reaching the transport.
func New(cfg Config, tokens TokenSource, httpClient *http.Client) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("missing token source")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("wanted absolute base url, got %q", cfg.BaseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Client{
		httpClient:             httpClient,
		baseURL:                baseURL,
		tokens:                 tokens,
		balanceRetryMaxElapsed: cfg.BalanceRetryMaxElapsed,
	}, nil
}

// Balance fetches the current wallet balance for the authenticated user.
//
// A failed read means the balance is unknown; callers must never substitute
// zero. Being a GET, this is the one call that may be retried: 5xx responses
// are retried with exponential backoff until BalanceRetryMaxElapsed passes.
func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	var resp balanceResponse

	if c.balanceRetryMaxElapsed <= 0 {
		if err := c.doJSON(ctx, http.MethodGet, "/api/wallet", nil, &resp); err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to read wallet balance: %w", err)
		}
		return resp.Balance, nil
	}

	operation := func() error {
		err := c.doJSON(ctx, http.MethodGet, "/api/wallet", nil, &resp)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bckoff := backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(c.balanceRetryMaxElapsed),
	)
	if err := backoff.Retry(operation, backoff.WithContext(bckoff, ctx)); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to read wallet balance: %w", err)
	}

	return resp.Balance, nil
}

// PayFromWallet debits the wallet for a purchase. The endpoint is not known
// to be idempotent, so this call is issued exactly once per invocation and is
// never retried, not even after an ambiguous transport failure.
func (c *Client) PayFromWallet(ctx context.Context, req PayRequest) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/wallet/pay", req, nil); err != nil {
		return fmt.Errorf("wallet debit failed: %w", err)
	}
	return nil
}

// CreateGatewayOrder asks the marketplace to open a gateway order for the
// given amount (major units). The returned order is single-use.
func (c *Client) CreateGatewayOrder(ctx context.Context, amount decimal.Decimal) (GatewayOrder, error) {
	body := struct {
		Amount decimal.Decimal `json:"amount"`
	}{Amount: amount}

	var order GatewayOrder
	if err := c.doJSON(ctx, http.MethodPost, "/api/razorpay/order", body, &order); err != nil {
		return GatewayOrder{}, fmt.Errorf("failed to create gateway order: %w", err)
	}
	return order, nil
}

// VerifyGatewayPayment submits a gateway payment result for server-side
// verification. A false return with nil error means the marketplace rejected
// the result; the payment may still have been charged at the gateway.
func (c *Client) VerifyGatewayPayment(ctx context.Context, req VerifyRequest) (bool, error) {
	var resp verifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/razorpay/verify", req, &resp); err != nil {
		return false, fmt.Errorf("failed to verify gateway payment: %w", err)
	}
	return resp.Success, nil
}

// AddFunds credits the wallet after a completed gateway payment.
func (c *Client) AddFunds(ctx context.Context, req AddFundsRequest) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/wallet/add-funds", req, nil); err != nil {
		return fmt.Errorf("failed to add funds: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("no usable credential: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := newAPIError(resp)
		slog.InfoContext(ctx, "marketplace request rejected",
			"method", method,
			"path", path,
			"status_code", resp.StatusCode,
		)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// retryable reports whether a balance-read failure is worth retrying.
// Credential problems and 4xx rejections are permanent; transport errors and
// 5xx responses are transient.
func retryable(err error) bool {
	if tokenError(err) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
