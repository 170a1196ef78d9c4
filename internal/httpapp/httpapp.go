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

// Package httpapp runs an HTTP server with graceful shutdown and slog-based
// request logging. Used by cmd/mem-market to serve the in-memory marketplace.
package httpapp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
)

type HTTP struct {
	Server *http.Server
}

func New(addr string, handler http.Handler) *HTTP {
	return &HTTP{
		Server: &http.Server{
			Addr:              addr,
			Handler:           LoggingMiddleware(handler),
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
}

func (a *HTTP) run() error {
	slog.Info("Listening on " + a.Server.Addr)
	err := a.Server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *HTTP) Run(ctx context.Context) error {
	runDone := make(chan error, 1)
	go func() {
		runDone <- a.run()
	}()

	select {
	case err := <-runDone:
		return err
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down gracefully", "reason", ctx.Err())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-runDone
	}
}

func LoggingMiddleware(h http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(os.Stderr, h, logFormatter)
}

// logFormatter adapts the gorilla logging middleware to use slog logging like
// the rest of the application.
func logFormatter(_ io.Writer, p handlers.LogFormatterParams) {
	duration := time.Since(p.TimeStamp)
	slog.Info(
		"request served",
		"request_start", p.TimeStamp,
		"duration_ms", (float64(duration.Nanoseconds()) / 1e6),
		"url", p.URL.String(),
		"status_code", p.StatusCode,
		"response_size", p.Size,
	)
}
