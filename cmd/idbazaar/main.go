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

// idbazaar is a terminal client for the ID Bazaar marketplace: check the
// wallet balance, buy a listing, top up in-game currency or add funds to the
// wallet. Credentials and the API origin come from a YAML config file, .env
// and environment variables.
//
// Usage:
//
//	idbazaar [-config config.yaml] balance
//	idbazaar [-config config.yaml] buy -listing 42 -game "Valorant" -price 300
//	idbazaar [-config config.yaml] topup -game "PUBG" -player 58000001411 -currency 600 -price 150
//	idbazaar [-config config.yaml] add-funds -amount 100
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/idbazaar/idbazaar-go"
	"github.com/idbazaar/idbazaar-go/checkout"
	"github.com/idbazaar/idbazaar-go/internal/config"
	"github.com/idbazaar/idbazaar-go/present"
	"github.com/idbazaar/idbazaar-go/purchase"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("idbazaar", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to YAML config")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() < 1 {
		return fmt.Errorf("usage: idbazaar [-config file] <balance|buy|topup|add-funds> [flags]")
	}

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := idbazaar.DefaultConfig()
	if err := config.Load(&cfg, *configPath); err != nil {
		return err
	}
	if v := os.Getenv("IDBAZAAR_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("IDBAZAAR_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if err := cfg.IsValid(); err != nil {
		return err
	}

	client, err := idbazaar.New(cfg, idbazaar.WithGateway(&checkout.Console{
		In:  os.Stdin,
		Out: os.Stdout,
	}))
	if err != nil {
		return err
	}

	ctx := context.Background()
	command, rest := flags.Arg(0), flags.Args()[1:]

	switch command {
	case "balance":
		balance, err := client.Balance(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Wallet balance: ₹%s\n", balance)
		return nil
	case "buy":
		return buyCmd(ctx, client, rest)
	case "topup":
		return topupCmd(ctx, client, rest)
	case "add-funds":
		return addFundsCmd(ctx, client, rest)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func buyCmd(ctx context.Context, client *idbazaar.Client, args []string) error {
	flags := flag.NewFlagSet("buy", flag.ContinueOnError)
	listingID := flags.Int64("listing", 0, "listing id")
	game := flags.String("game", "", "game name")
	price := flags.String("price", "", "listing price")
	if err := flags.Parse(args); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid -price: %w", err)
	}

	outcome, err := client.PurchaseListing(ctx, purchase.ListingIntent{
		ListingID: *listingID,
		GameName:  *game,
		Price:     amount,
	})
	if err != nil {
		return err
	}
	return show(outcome)
}

func topupCmd(ctx context.Context, client *idbazaar.Client, args []string) error {
	flags := flag.NewFlagSet("topup", flag.ContinueOnError)
	game := flags.String("game", "", "game name")
	playerID := flags.Int64("player", 0, "player id")
	currency := flags.Int64("currency", 0, "in-game currency amount")
	price := flags.String("price", "", "package price")
	if err := flags.Parse(args); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid -price: %w", err)
	}

	outcome, err := client.PurchaseTopup(ctx, purchase.TopupIntent{
		GameName:       *game,
		PlayerID:       *playerID,
		CurrencyAmount: *currency,
		Price:          amount,
	})
	if err != nil {
		return err
	}
	return show(outcome)
}

func addFundsCmd(ctx context.Context, client *idbazaar.Client, args []string) error {
	flags := flag.NewFlagSet("add-funds", flag.ContinueOnError)
	amountArg := flags.String("amount", "", "amount to add")
	if err := flags.Parse(args); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*amountArg)
	if err != nil {
		return fmt.Errorf("invalid -amount: %w", err)
	}

	outcome, err := client.AddFunds(ctx, amount)
	if err != nil {
		return err
	}
	return show(outcome)
}

func show(outcome purchase.Outcome) error {
	p := &present.Presenter{Out: os.Stdout}
	if _, ok := p.Present(outcome); !ok {
		fmt.Println("Checkout dismissed; nothing was charged.")
	}
	return nil
}
