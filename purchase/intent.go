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

	"github.com/idbazaar/idbazaar-go/checkout"
	"github.com/idbazaar/idbazaar-go/marketapi"
	"github.com/shopspring/decimal"
)

// ListingIntent describes one attempt to buy a game-account listing. It lives
// for the duration of a single attempt and is never persisted.
type ListingIntent struct {
	ListingID int64
	GameName  string
	Price     decimal.Decimal
}

func (i ListingIntent) description() string {
	return fmt.Sprintf("Purchase for %s", i.GameName)
}

func (i ListingIntent) debitRequest() marketapi.PayRequest {
	return marketapi.PayRequest{
		Amount:      i.Price,
		GameID:      i.ListingID,
		Description: i.description(),
	}
}

// TopupIntent describes one attempt to buy in-game currency credited to a
// player id.
type TopupIntent struct {
	GameName       string
	PlayerID       int64
	CurrencyAmount int64
	Price          decimal.Decimal
}

func (i TopupIntent) description() string {
	return fmt.Sprintf("Topup purchase for %s", i.GameName)
}

func (i TopupIntent) debitRequest() marketapi.PayRequest {
	return marketapi.PayRequest{
		Amount:         i.Price,
		Description:    i.description(),
		PlayerID:       i.PlayerID,
		CurrencyAmount: i.CurrencyAmount,
	}
}

// verifyRequest builds the verification payload for a completed gateway
// payment. charged is the gateway order amount converted back to major units.
func (i TopupIntent) verifyRequest(result checkout.Result, charged decimal.Decimal) marketapi.VerifyRequest {
	return marketapi.VerifyRequest{
		PaymentID:      result.PaymentID,
		OrderID:        result.OrderID,
		Signature:      result.Signature,
		Amount:         charged,
		PlayerID:       i.PlayerID,
		CurrencyAmount: i.CurrencyAmount,
	}
}
