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

// Package markettest is an in-memory marketplace API used by package tests
// and by cmd/mem-market for local development. It implements the endpoint
// surface the client consumes: wallet reads, wallet debits, gateway orders,
// payment verification and wallet credits. Amounts, payload shapes and error
// bodies mirror the production API.
package markettest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// signingSecret signs fake gateway results. Fixed on purpose: tests and the
// console flow need to produce signatures the verify endpoint accepts.
const signingSecret = "markettest-secret"

// Signature computes the gateway signature the verify endpoint expects for an
// order/payment pair, mirroring the production HMAC scheme.
func Signature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Server is a thread-safe in-memory marketplace.
type Server struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	orders   map[string]int64 // order id -> amount in minor units

	payments []PayCall

	failBalanceReads int
	failAddFunds     bool

	handler http.Handler
}

// PayCall records one wallet debit accepted by the server.
type PayCall struct {
	Token          string
	Amount         decimal.Decimal
	Description    string
	GameID         int64
	PlayerID       int64
	CurrencyAmount int64
}

func NewServer() *Server {
	s := &Server{
		balances: map[string]decimal.Decimal{},
		orders:   map[string]int64{},
	}

	r := chi.NewRouter()
	r.Get("/api/wallet", s.handleBalance)
	r.Get("/api/wallet/balance", s.handleBalance)
	r.Post("/api/wallet/pay", s.handlePay)
	r.Post("/api/razorpay/order", s.handleOrder)
	r.Post("/api/razorpay/verify", s.handleVerify)
	r.Post("/api/wallet/add-funds", s.handleAddFunds)
	s.handler = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// SetBalance seeds (or replaces) the wallet balance for a bearer token,
// implicitly registering the token as a valid credential.
func (s *Server) SetBalance(token string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[token] = balance
}

// BalanceOf returns the current balance for a token.
func (s *Server) BalanceOf(token string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[token]
}

// Payments returns the wallet debits accepted so far.
func (s *Server) Payments() []PayCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PayCall(nil), s.payments...)
}

// Orders returns the gateway orders created so far, keyed by order id, with
// amounts in minor units.
func (s *Server) Orders() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.orders))
	for id, amount := range s.orders {
		out[id] = amount
	}
	return out
}

// FailBalanceReads makes the next n balance reads respond with a 500.
func (s *Server) FailBalanceReads(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failBalanceReads = n
}

// FailAddFunds toggles a 500 response from the add-funds endpoint.
func (s *Server) FailAddFunds(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAddFunds = fail
}

func (s *Server) authToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return "", false
	}

	s.mu.Lock()
	_, known := s.balances[token]
	s.mu.Unlock()
	if !known {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return "", false
	}
	return token, true
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	token, ok := s.authToken(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.failBalanceReads > 0 {
		s.failBalanceReads--
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "wallet service unavailable"})
		return
	}
	balance := s.balances[token]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"balance": balance.String()})
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	token, ok := s.authToken(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount         decimal.Decimal `json:"amount"`
		Description    string          `json:"description"`
		GameID         int64           `json:"game_id"`
		PlayerID       int64           `json:"player_id"`
		CurrencyAmount int64           `json:"currency_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balances[token]
	if balance.LessThan(req.Amount) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "insufficient wallet balance"})
		return
	}

	s.balances[token] = balance.Sub(req.Amount)
	s.payments = append(s.payments, PayCall{
		Token:          token,
		Amount:         req.Amount,
		Description:    req.Description,
		GameID:         req.GameID,
		PlayerID:       req.PlayerID,
		CurrencyAmount: req.CurrencyAmount,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authToken(w, r); !ok {
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	if !req.Amount.IsPositive() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "amount must be positive"})
		return
	}

	orderID := "order_" + uuid.NewString()
	// Major to minor units, matching the production gateway.
	minor := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	s.mu.Lock()
	s.orders[orderID] = minor
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"key":      "rzp_test_markettest",
		"amount":   minor,
		"currency": "INR",
		"order_id": orderID,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authToken(w, r); !ok {
		return
	}

	var req struct {
		PaymentID string          `json:"razorpay_payment_id"`
		OrderID   string          `json:"razorpay_order_id"`
		Signature string          `json:"razorpay_signature"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	_, orderKnown := s.orders[req.OrderID]
	if orderKnown {
		// Single use: a replayed result must not verify twice.
		delete(s.orders, req.OrderID)
	}
	s.mu.Unlock()

	ok := orderKnown && hmac.Equal(
		[]byte(req.Signature),
		[]byte(Signature(req.OrderID, req.PaymentID)),
	)
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (s *Server) handleAddFunds(w http.ResponseWriter, r *http.Request) {
	token, ok := s.authToken(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount    decimal.Decimal `json:"amount"`
		PaymentID string          `json:"payment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAddFunds {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "ledger unavailable"})
		return
	}
	if !req.Amount.IsPositive() || req.PaymentID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid amount or payment id"})
		return
	}

	s.balances[token] = s.balances[token].Add(req.Amount)
	writeJSON(w, http.StatusOK, map[string]string{"status": "credited"})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
