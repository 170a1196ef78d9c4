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

package marketapi

import (
	"github.com/shopspring/decimal"
)

// PayRequest is the body of a wallet debit call. The marketplace accepts two
// payload shapes on the same endpoint: listing purchases carry GameID, top-up
// purchases carry PlayerID and CurrencyAmount. Zero-valued optional fields are
// omitted from the wire body.
type PayRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`

	// Listing purchases only.
	GameID int64 `json:"game_id,omitempty"`

	// Top-up purchases only.
	PlayerID       int64 `json:"player_id,omitempty"`
	CurrencyAmount int64 `json:"currency_amount,omitempty"`
}

// GatewayOrder is issued by the marketplace when an external checkout is
// required. Amount is denominated in minor currency units (paise), as
// returned by the order endpoint.
type GatewayOrder struct {
	Key      string `json:"key"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"order_id"`
}

// VerifyRequest asks the marketplace to verify a gateway payment result and
// credit the purchase. Amount is in major currency units.
type VerifyRequest struct {
	PaymentID string          `json:"razorpay_payment_id"`
	OrderID   string          `json:"razorpay_order_id"`
	Signature string          `json:"razorpay_signature"`
	Amount    decimal.Decimal `json:"amount"`

	PlayerID       int64 `json:"player_id,omitempty"`
	CurrencyAmount int64 `json:"currency_amount,omitempty"`
}

// AddFundsRequest credits the wallet after a gateway payment for the add-funds
// flow. PaymentID ties the credit to the gateway charge.
type AddFundsRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	PaymentID string          `json:"payment_id"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type verifyResponse struct {
	Success bool `json:"success"`
}
