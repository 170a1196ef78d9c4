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

package purchase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status tags the result of a purchase attempt.
type Status int

const (
	// StatusNone means the attempt ended without an outcome: the user
	// dismissed the checkout before paying. Nothing was debited.
	StatusNone Status = iota
	// StatusSuccess means the purchase settled.
	StatusSuccess
	// StatusInsufficientBalance means the wallet could not cover the amount
	// and the policy in effect does not fall through to the gateway.
	StatusInsufficientBalance
	// StatusFailure means the attempt failed. See Outcome.ContactSupport for
	// whether a gateway charge may have happened regardless.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusSuccess:
		return "success"
	case StatusInsufficientBalance:
		return "insufficient_balance"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is what a purchase attempt resolves to. It drives UI state only;
// it carries no retryable handle and must not be replayed into the flow.
type Outcome struct {
	Status  Status
	Message string

	// Balance and Required are set for StatusInsufficientBalance only.
	Balance  decimal.Decimal
	Required decimal.Decimal

	// ContactSupport is set when the gateway reported a completed payment but
	// the marketplace did not credit it. Money may have moved at the gateway;
	// retrying blindly could double-charge.
	ContactSupport bool
}

func success(message string) Outcome {
	return Outcome{Status: StatusSuccess, Message: message}
}

func failure(message string) Outcome {
	return Outcome{Status: StatusFailure, Message: message}
}

func insufficientBalance(balance, required decimal.Decimal) Outcome {
	return Outcome{
		Status:   StatusInsufficientBalance,
		Message:  fmt.Sprintf("Insufficient wallet balance. Your balance: ₹%s, Required: ₹%s", balance, required),
		Balance:  balance,
		Required: required,
	}
}
