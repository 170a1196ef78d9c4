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

package idbazaar_test

import (
	"context"
	"net/http/httptest"
	"testing"

	idbazaar "github.com/idbazaar/idbazaar-go"
	"github.com/idbazaar/idbazaar-go/checkout"
	"github.com/idbazaar/idbazaar-go/internal/test/markettest"
	"github.com/idbazaar/idbazaar-go/purchase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "session-token-1"

// payingGateway completes every checkout with a correctly signed result, the
// way the real widget does after a successful card payment.
func payingGateway() *checkout.Scripted {
	return &checkout.Scripted{
		CompleteFn: func(order checkout.Order) (*checkout.Result, error) {
			return &checkout.Result{
				PaymentID: "pay_e2e",
				OrderID:   order.OrderID,
				Signature: markettest.Signature(order.OrderID, "pay_e2e"),
			}, nil
		},
	}
}

func newTestClient(t *testing.T, market *markettest.Server, options ...idbazaar.Option) *idbazaar.Client {
	t.Helper()

	server := httptest.NewServer(market)
	t.Cleanup(server.Close)

	config := idbazaar.DefaultConfig()
	config.APIToken = testToken
	config.APIURL = server.URL

	client, err := idbazaar.New(config, options...)
	require.NoError(t, err)
	return client
}

func Test_New(t *testing.T) {
	t.Run("fail, missing api token", func(t *testing.T) {
		config := idbazaar.DefaultConfig()
		config.APIURL = "http://localhost:1"

		_, err := idbazaar.New(config)
		require.ErrorContains(t, err, "missing api_token")
	})

	t.Run("fail, missing api url", func(t *testing.T) {
		config := idbazaar.DefaultConfig()
		config.APIToken = testToken

		_, err := idbazaar.New(config)
		require.ErrorContains(t, err, "base url")
	})

	t.Run("ok, token source option replaces the static token", func(t *testing.T) {
		config := idbazaar.DefaultConfig()
		config.APIURL = "http://localhost:1"

		_, err := idbazaar.New(config, idbazaar.WithTokenSource(marketapiTokenSource{}))
		require.NoError(t, err)
	})
}

type marketapiTokenSource struct{}

func (marketapiTokenSource) Token() (string, error) { return "from-source", nil }

func Test_Client_Balance(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.RequireFromString("250.50"))
		client := newTestClient(t, market)

		balance, err := client.Balance(context.Background())
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("250.50")))
	})
}

func Test_Client_PurchaseListing(t *testing.T) {
	intent := purchase.ListingIntent{
		ListingID: 7,
		GameName:  "Valorant",
		Price:     decimal.NewFromInt(300),
	}

	t.Run("ok, debits the wallet", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(500))
		client := newTestClient(t, market)

		outcome, err := client.PurchaseListing(context.Background(), intent)
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusSuccess, outcome.Status)
		assert.True(t, market.BalanceOf(testToken).Equal(decimal.NewFromInt(200)))
	})

	t.Run("ok, insufficient balance leaves the wallet untouched", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(100))
		client := newTestClient(t, market)

		outcome, err := client.PurchaseListing(context.Background(), intent)
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusInsufficientBalance, outcome.Status)
		assert.True(t, market.BalanceOf(testToken).Equal(decimal.NewFromInt(100)))
		assert.Empty(t, market.Orders(), "listing purchases never open gateway orders")
	})
}

func Test_Client_PurchaseTopup(t *testing.T) {
	intent := purchase.TopupIntent{
		GameName:       "PUBG",
		PlayerID:       58000001411,
		CurrencyAmount: 600,
		Price:          decimal.NewFromInt(150),
	}

	t.Run("ok, shortfall is charged at the gateway and verified", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(40))
		gw := payingGateway()
		client := newTestClient(t, market, idbazaar.WithGateway(gw))

		outcome, err := client.PurchaseTopup(context.Background(), intent)
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusSuccess, outcome.Status)

		opened := gw.Opened()
		require.Len(t, opened, 1)
		assert.Equal(t, int64(11000), opened[0].Amount, "gateway charges the 110 shortfall in minor units")

		// The wallet leg settles server-side during verification; the client
		// must not have debited it.
		assert.True(t, market.BalanceOf(testToken).Equal(decimal.NewFromInt(40)))
		assert.Empty(t, market.Orders(), "the order is consumed by verification")
	})

	t.Run("fail, gateway flows without an adapter", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(40))
		client := newTestClient(t, market) // no WithGateway

		outcome, err := client.PurchaseTopup(context.Background(), intent)
		require.NoError(t, err)
		assert.Equal(t, purchase.StatusFailure, outcome.Status)
	})

	t.Run("ok, wallet-only when funds suffice", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(200))
		client := newTestClient(t, market) // works without a gateway

		outcome, err := client.PurchaseTopup(context.Background(), intent)
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusSuccess, outcome.Status)
		assert.True(t, market.BalanceOf(testToken).Equal(decimal.NewFromInt(50)))
	})
}

func Test_Client_AddFunds(t *testing.T) {
	t.Run("ok, credits the wallet after the gateway charge", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(10))
		client := newTestClient(t, market, idbazaar.WithGateway(payingGateway()))

		outcome, err := client.AddFunds(context.Background(), decimal.NewFromInt(100))
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusSuccess, outcome.Status)
		assert.True(t, market.BalanceOf(testToken).Equal(decimal.NewFromInt(110)))
	})

	t.Run("fail, credit failure after the charge asks for support", func(t *testing.T) {
		market := markettest.NewServer()
		market.SetBalance(testToken, decimal.NewFromInt(10))
		market.FailAddFunds(true)
		client := newTestClient(t, market, idbazaar.WithGateway(payingGateway()))

		outcome, err := client.AddFunds(context.Background(), decimal.NewFromInt(100))
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusFailure, outcome.Status)
		assert.True(t, outcome.ContactSupport)
		assert.True(t, market.BalanceOf(testToken).Equal(decimal.NewFromInt(10)))
	})
}
