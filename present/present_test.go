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

package present_test

import (
	"bytes"
	"testing"

	"github.com/idbazaar/idbazaar-go/present"
	"github.com/idbazaar/idbazaar-go/purchase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BandFor(t *testing.T) {
	t.Run("ok, success is a plain band", func(t *testing.T) {
		band, ok := present.BandFor(purchase.Outcome{
			Status:  purchase.StatusSuccess,
			Message: "Payment successful! Paid fully from wallet.",
		})
		require.True(t, ok)

		assert.Equal(t, present.KindSuccess, band.Kind)
		assert.Equal(t, "Payment successful! Paid fully from wallet.", band.Text)
		assert.Empty(t, band.Actions)
	})

	t.Run("ok, insufficient balance offers a top-up", func(t *testing.T) {
		band, ok := present.BandFor(purchase.Outcome{
			Status:   purchase.StatusInsufficientBalance,
			Message:  "Insufficient wallet balance. Your balance: ₹100, Required: ₹300",
			Balance:  decimal.NewFromInt(100),
			Required: decimal.NewFromInt(300),
		})
		require.True(t, ok)

		assert.Equal(t, present.KindInfo, band.Kind)
		assert.Equal(t, []present.Action{present.ActionTopUpWallet, present.ActionDismiss}, band.Actions)
	})

	t.Run("ok, plain failure offers a retry", func(t *testing.T) {
		band, ok := present.BandFor(purchase.Outcome{
			Status:  purchase.StatusFailure,
			Message: "Payment failed! Please try again.",
		})
		require.True(t, ok)

		assert.Equal(t, present.KindError, band.Kind)
		assert.Equal(t, []present.Action{present.ActionRetry, present.ActionDismiss}, band.Actions)
	})

	t.Run("ok, support failures never offer a retry", func(t *testing.T) {
		band, ok := present.BandFor(purchase.Outcome{
			Status:         purchase.StatusFailure,
			Message:        "Payment verification failed. If you were charged, contact support before retrying.",
			ContactSupport: true,
		})
		require.True(t, ok)

		assert.Equal(t, present.KindError, band.Kind)
		assert.Equal(t, []present.Action{present.ActionContactSupport, present.ActionDismiss}, band.Actions)
		assert.NotContains(t, band.Actions, present.ActionRetry)
	})

	t.Run("ok, a dismissed checkout renders nothing", func(t *testing.T) {
		_, ok := present.BandFor(purchase.Outcome{})
		assert.False(t, ok)
	})
}

func Test_Presenter_Present(t *testing.T) {
	t.Run("ok, writes the band and fires the success hook once", func(t *testing.T) {
		var out bytes.Buffer
		fired := 0
		p := &present.Presenter{
			Out:       &out,
			OnSuccess: func() { fired++ },
		}

		_, ok := p.Present(purchase.Outcome{
			Status:  purchase.StatusSuccess,
			Message: "Payment verified successfully!",
		})
		require.True(t, ok)

		assert.Contains(t, out.String(), "Payment verified successfully!")
		assert.Equal(t, 1, fired)
	})

	t.Run("ok, failures never fire the success hook", func(t *testing.T) {
		fired := 0
		p := &present.Presenter{OnSuccess: func() { fired++ }}

		_, ok := p.Present(purchase.Outcome{
			Status:  purchase.StatusFailure,
			Message: "Payment failed! Please try again.",
		})
		require.True(t, ok)
		assert.Equal(t, 0, fired)
	})

	t.Run("ok, zero presenter handles every status", func(t *testing.T) {
		var p present.Presenter

		_, ok := p.Present(purchase.Outcome{Status: purchase.StatusSuccess})
		assert.True(t, ok)
		_, ok = p.Present(purchase.Outcome{})
		assert.False(t, ok)
	})
}
