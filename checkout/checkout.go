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

// Package checkout abstracts the external hosted payment widget. The real
// widget is a user-paced surface the caller cannot cancel once opened; this
// package reduces it to a single blocking call with an exactly-once-or-never
// result so the purchase flow can be driven and tested without a browser.
package checkout

import (
	"context"
)

// Order carries the fields the hosted widget is configured with. Amount is in
// minor currency units, as issued by the order endpoint.
type Order struct {
	Key         string
	Amount      int64
	Currency    string
	OrderID     string
	Name        string
	Description string
}

// Result is the widget's completion callback payload. It is single-use: the
// caller forwards it to verification exactly once and never replays it.
type Result struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Gateway opens the external checkout for an order.
//
// Open blocks until one of three things happens:
//   - the widget completes: returns a non-nil Result and nil error,
//   - the user dismisses the widget: returns (nil, nil) — dismissal is not an
//     error, it means no payment was attempted,
//   - ctx is done or the widget fails to open: returns a non-nil error.
//
// Implementations must invoke the underlying widget at most once per call and
// must not retain or reuse the Result.
type Gateway interface {
	Open(ctx context.Context, order Order) (*Result, error)
}
