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

// Package idbazaar is the Go client for the ID Bazaar gaming-account
// marketplace. It wraps the marketplace HTTP API and drives the buyer-side
// payment flows: listing purchases from wallet funds, in-game currency
// top-ups with gateway fallback, and wallet add-funds via the gateway.
package idbazaar

import (
	"context"
	"errors"
	"fmt"

	"github.com/idbazaar/idbazaar-go/checkout"
	"github.com/idbazaar/idbazaar-go/marketapi"
	"github.com/idbazaar/idbazaar-go/purchase"
	"github.com/shopspring/decimal"
)

// Client is a high-level marketplace client scoped to one authenticated user
// session. Purchase attempts on one Client are serialized; a second call
// while one is in flight returns [purchase.ErrAttemptInFlight] without
// touching the network.
type Client struct {
	api          *marketapi.Client
	gateway      checkout.Gateway
	orchestrator *purchase.Orchestrator
}

// New creates a client from config. Flows that need the external checkout
// (top-up shortfall, add-funds) additionally require [WithGateway]; without
// it those flows fail cleanly while wallet-only purchases keep working.
func New(config Config, options ...Option) (*Client, error) {
	c := &Client{}
	s := &scratch{}

	for _, option := range options {
		if err := option(c, s, &config); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	tokens := s.tokens
	if tokens == nil {
		if config.APIToken == "" {
			return nil, errors.New("missing api_token")
		}
		tokens = marketapi.StaticToken(config.APIToken)
	}

	api, err := marketapi.New(marketapi.Config{
		BaseURL:                config.APIURL,
		RequestTimeout:         config.RequestTimeout,
		BalanceRetryMaxElapsed: config.BalanceRetryMaxElapsed,
	}, tokens, s.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create marketplace api client: %w", err)
	}

	gateway := c.gateway
	if gateway == nil {
		gateway = unavailableGateway{}
	}

	c.api = api
	c.gateway = gateway
	c.orchestrator = purchase.NewOrchestrator(api, gateway)
	return c, nil
}

// Balance returns the current wallet balance. The result is a snapshot: the
// purchase flows always re-read it rather than trusting a previous value.
func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	return c.api.Balance(ctx)
}

// PurchaseListing buys a game-account listing. See
// [purchase.Orchestrator.PurchaseListing] for the policy.
func (c *Client) PurchaseListing(ctx context.Context, intent purchase.ListingIntent) (purchase.Outcome, error) {
	return c.orchestrator.PurchaseListing(ctx, intent)
}

// PurchaseTopup buys in-game currency for a player id. See
// [purchase.Orchestrator.PurchaseTopup] for the policy.
func (c *Client) PurchaseTopup(ctx context.Context, intent purchase.TopupIntent) (purchase.Outcome, error) {
	return c.orchestrator.PurchaseTopup(ctx, intent)
}

// AddFunds charges the gateway and credits the wallet.
func (c *Client) AddFunds(ctx context.Context, amount decimal.Decimal) (purchase.Outcome, error) {
	return c.orchestrator.AddFunds(ctx, amount)
}

// unavailableGateway stands in when no checkout adapter was injected, so
// wallet-only flows work and gateway flows fail with a clear error instead of
// a nil dereference.
type unavailableGateway struct{}

func (unavailableGateway) Open(context.Context, checkout.Order) (*checkout.Result, error) {
	return nil, ErrNoGateway
}
