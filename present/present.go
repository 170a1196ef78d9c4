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

// Package present turns a purchase outcome into something a UI can show:
// a band with a message and the recovery actions that apply. It performs no
// network calls and never re-enters the purchase flow.
package present

import (
	"fmt"
	"io"

	"github.com/idbazaar/idbazaar-go/purchase"
)

// Kind is the visual category of a band.
type Kind int

const (
	KindSuccess Kind = iota
	KindInfo
	KindError
)

// Action is a recovery step offered to the user. The presenter only names
// actions; executing them is the caller's concern.
type Action string

const (
	// ActionTopUpWallet navigates to the wallet top-up flow.
	ActionTopUpWallet Action = "top_up_wallet"
	// ActionRetry lets the user start a fresh attempt. The attempt must
	// re-read the balance; nothing from the failed attempt is reused.
	ActionRetry Action = "retry"
	// ActionDismiss clears the band.
	ActionDismiss Action = "dismiss"
	// ActionContactSupport applies when a gateway charge may exist without a
	// marketplace credit; retrying blindly could double-charge.
	ActionContactSupport Action = "contact_support"
)

// Band is a rendered outcome.
type Band struct {
	Kind    Kind
	Text    string
	Actions []Action
}

// BandFor maps an outcome to its band. A StatusNone outcome (dismissed
// checkout) renders nothing and returns false.
func BandFor(o purchase.Outcome) (Band, bool) {
	switch o.Status {
	case purchase.StatusSuccess:
		return Band{Kind: KindSuccess, Text: o.Message}, true
	case purchase.StatusInsufficientBalance:
		return Band{
			Kind:    KindInfo,
			Text:    o.Message,
			Actions: []Action{ActionTopUpWallet, ActionDismiss},
		}, true
	case purchase.StatusFailure:
		if o.ContactSupport {
			return Band{
				Kind:    KindError,
				Text:    o.Message,
				Actions: []Action{ActionContactSupport, ActionDismiss},
			}, true
		}
		return Band{
			Kind:    KindError,
			Text:    o.Message,
			Actions: []Action{ActionRetry, ActionDismiss},
		}, true
	default:
		return Band{}, false
	}
}

// Presenter writes bands to Out and fires OnSuccess for successful outcomes.
// Both fields are optional; a zero Presenter is usable.
type Presenter struct {
	Out io.Writer
	// OnSuccess is invoked once per successful outcome. Callers use it to
	// trigger follow-up UI (celebration, redirect offer); it must not issue
	// further purchase calls.
	OnSuccess func()
}

// Present renders the outcome and returns the band. It never returns an error
// and never panics: rendering a purchase result must not be able to break the
// flow that produced it.
func (p *Presenter) Present(o purchase.Outcome) (Band, bool) {
	band, ok := BandFor(o)
	if !ok {
		return Band{}, false
	}

	if p.Out != nil {
		fmt.Fprintln(p.Out, band.Text)
		for _, action := range band.Actions {
			fmt.Fprintf(p.Out, "  [%s]\n", action)
		}
	}

	if o.Status == purchase.StatusSuccess && p.OnSuccess != nil {
		p.OnSuccess()
	}

	return band, true
}
