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

// mem-market serves the in-memory marketplace API over HTTP for local
// development of the idbazaar client. Results from the fake gateway verify
// against signatures produced by markettest.Signature; the seeded token
// starts with a wallet balance so every purchase path can be exercised.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/idbazaar/idbazaar-go/internal/httpapp"
	"github.com/idbazaar/idbazaar-go/internal/test/markettest"
	"github.com/shopspring/decimal"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:8880", "listen address")
	token := flag.String("token", "dev-token", "bearer token to seed")
	balance := flag.String("balance", "500", "wallet balance to seed")
	flag.Parse()

	seed, err := decimal.NewFromString(*balance)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -balance:", err)
		os.Exit(2)
	}

	market := markettest.NewServer()
	market.SetBalance(*token, seed)
	slog.Info("seeded wallet", "token", *token, "balance", seed.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpapp.New(*addr, market).Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
