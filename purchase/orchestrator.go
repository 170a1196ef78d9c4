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

// Package purchase drives a buyer's payment flow against the marketplace:
// read the wallet balance, choose between a wallet debit and a gateway
// checkout, and reconcile the result. All business rules (pricing, escrow,
// ledger) live server-side; this package only sequences the calls and maps
// every failure to an [Outcome].
package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/idbazaar/idbazaar-go/checkout"
	"github.com/idbazaar/idbazaar-go/marketapi"
	"github.com/shopspring/decimal"
)

// ErrAttemptInFlight is returned when a purchase call is made while a
// previous attempt on the same orchestrator has not settled. The new call is
// a no-op: no network request is issued. The debit endpoint is not known to
// be idempotent, so concurrent attempts must never race.
var ErrAttemptInFlight = errors.New("a purchase attempt is already in flight")

// minChargeable is the smallest amount the gateway accepts.
var minChargeable = decimal.NewFromInt(1)

// MarketAPI is the slice of the marketplace client the orchestrator consumes.
// *marketapi.Client satisfies it; tests substitute a fake.
type MarketAPI interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
	PayFromWallet(ctx context.Context, req marketapi.PayRequest) error
	CreateGatewayOrder(ctx context.Context, amount decimal.Decimal) (marketapi.GatewayOrder, error)
	VerifyGatewayPayment(ctx context.Context, req marketapi.VerifyRequest) (bool, error)
	AddFunds(ctx context.Context, req marketapi.AddFundsRequest) error
}

// Orchestrator runs purchase attempts one at a time. Within an attempt the
// calls are strictly sequential: balance, then either one wallet debit or one
// order+checkout+verify chain, never both.
type Orchestrator struct {
	api     MarketAPI
	gateway checkout.Gateway

	inFlight atomic.Bool
}

func NewOrchestrator(api MarketAPI, gateway checkout.Gateway) *Orchestrator {
	return &Orchestrator{
		api:     api,
		gateway: gateway,
	}
}

// PurchaseListing buys a game-account listing from wallet funds.
//
// When the balance does not cover the price the attempt stops with
// [StatusInsufficientBalance]; the buyer is expected to top up the wallet
// first. This policy never opens a gateway checkout. A fresh attempt re-reads
// the balance; the snapshot here is never reused.
func (o *Orchestrator) PurchaseListing(ctx context.Context, intent ListingIntent) (Outcome, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrAttemptInFlight
	}
	defer o.inFlight.Store(false)

	balance, err := o.api.Balance(ctx)
	if err != nil {
		return o.failf(ctx, err, "Payment failed! Please try again."), nil
	}

	if balance.GreaterThanOrEqual(intent.Price) {
		if err := o.api.PayFromWallet(ctx, intent.debitRequest()); err != nil {
			return o.failf(ctx, err, "Payment failed! Please try again."), nil
		}
		return success("Payment successful! Paid fully from wallet."), nil
	}

	slog.InfoContext(ctx, "listing purchase needs top-up",
		"balance", balance.String(),
		"required", intent.Price.String(),
	)
	return insufficientBalance(balance, intent.Price), nil
}

// PurchaseTopup buys in-game currency. Unlike the listing policy, an
// insufficient wallet falls through to the gateway for the difference: the
// wallet is not debited up front, the gateway charges price minus balance,
// and the marketplace settles both legs during verification.
func (o *Orchestrator) PurchaseTopup(ctx context.Context, intent TopupIntent) (Outcome, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrAttemptInFlight
	}
	defer o.inFlight.Store(false)

	balance, err := o.api.Balance(ctx)
	if err != nil {
		return o.failf(ctx, err, "Payment failed! Please try again."), nil
	}

	if balance.GreaterThanOrEqual(intent.Price) {
		if err := o.api.PayFromWallet(ctx, intent.debitRequest()); err != nil {
			return o.failf(ctx, err, "Payment failed! Please try again."), nil
		}
		return success("Paid from wallet!"), nil
	}

	payable := intent.Price.Sub(balance)
	if payable.LessThan(minChargeable) {
		// Near-zero charges get rejected by the gateway; refuse before
		// creating an order.
		return failure("No amount left to pay. Please check your wallet or selection."), nil
	}

	order, err := o.api.CreateGatewayOrder(ctx, payable)
	if err != nil {
		return o.failf(ctx, err, "Payment failed! Please try again."), nil
	}

	result, err := o.gateway.Open(ctx, checkout.Order{
		Key:         order.Key,
		Amount:      order.Amount,
		Currency:    order.Currency,
		OrderID:     order.OrderID,
		Name:        intent.GameName,
		Description: fmt.Sprintf("Topup purchase for player %d", intent.PlayerID),
	})
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, fmt.Errorf("checkout aborted: %w", err)
		}
		return o.failf(ctx, err, "Payment failed! Please try again."), nil
	}
	if result == nil {
		// User dismissed the widget. Nothing was debited, nothing to undo.
		slog.InfoContext(ctx, "checkout dismissed", "order_id", order.OrderID)
		return Outcome{Status: StatusNone}, nil
	}

	// The order amount is in minor units; verification expects major units.
	charged := decimal.New(order.Amount, -2)
	ok, err := o.api.VerifyGatewayPayment(ctx, intent.verifyRequest(*result, charged))
	if err != nil {
		return o.verificationFailed(ctx, err), nil
	}
	if !ok {
		return o.verificationFailed(ctx, nil), nil
	}

	return success("Payment verified successfully!"), nil
}

// AddFunds charges the gateway for the full amount and credits the wallet.
// There is no wallet leg to this flow; it exists so a buyer can recover from
// an insufficient-balance listing outcome.
func (o *Orchestrator) AddFunds(ctx context.Context, amount decimal.Decimal) (Outcome, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrAttemptInFlight
	}
	defer o.inFlight.Store(false)

	if !amount.IsPositive() {
		return failure("Please enter a valid amount greater than 0."), nil
	}

	order, err := o.api.CreateGatewayOrder(ctx, amount)
	if err != nil {
		return o.failf(ctx, err, "Failed to initiate payment. Please try again."), nil
	}

	result, err := o.gateway.Open(ctx, checkout.Order{
		Key:         order.Key,
		Amount:      order.Amount,
		Currency:    order.Currency,
		OrderID:     order.OrderID,
		Name:        "Add Funds to Wallet",
		Description: fmt.Sprintf("Adding ₹%s to wallet", amount),
	})
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, fmt.Errorf("checkout aborted: %w", err)
		}
		return o.failf(ctx, err, "Failed to initiate payment. Please try again."), nil
	}
	if result == nil {
		slog.InfoContext(ctx, "checkout dismissed", "order_id", order.OrderID)
		return Outcome{Status: StatusNone}, nil
	}

	if err := o.api.AddFunds(ctx, marketapi.AddFundsRequest{
		Amount:    amount,
		PaymentID: result.PaymentID,
	}); err != nil {
		// The gateway already completed; only the wallet credit is missing.
		slog.ErrorContext(ctx, "wallet credit failed after gateway payment",
			"error", err,
			"order_id", order.OrderID,
			"payment_id", result.PaymentID,
		)
		return Outcome{
			Status:         StatusFailure,
			Message:        "Payment succeeded but updating wallet failed. Contact support.",
			ContactSupport: true,
		}, nil
	}

	return success(fmt.Sprintf("₹%s added successfully!", amount)), nil
}

// failf logs the underlying error and maps it to a plain failure outcome.
// Errors never cross into the presenter.
func (o *Orchestrator) failf(ctx context.Context, err error, message string) Outcome {
	if err != nil {
		slog.ErrorContext(ctx, "purchase attempt failed", "error", err)
	}
	return failure(message)
}

// verificationFailed marks the one failure mode where money may already have
// moved at the gateway. The message must not imply the payment was lost, and
// the flow must not re-submit the result: retrying could double-charge.
func (o *Orchestrator) verificationFailed(ctx context.Context, err error) Outcome {
	if err != nil {
		slog.ErrorContext(ctx, "gateway payment verification failed", "error", err)
	}
	return Outcome{
		Status:         StatusFailure,
		Message:        "Payment verification failed. If you were charged, contact support before retrying.",
		ContactSupport: true,
	}
}
