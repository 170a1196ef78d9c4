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

package idbazaar

import (
	"net/http"

	"github.com/idbazaar/idbazaar-go/checkout"
	"github.com/idbazaar/idbazaar-go/marketapi"
)

type scratch struct {
	httpClient *http.Client
	tokens     marketapi.TokenSource
}

type Option func(c *Client, s *scratch, config *Config) error

// WithGateway injects the checkout adapter used when wallet funds are
// insufficient. Required for the top-up and add-funds flows.
func WithGateway(g checkout.Gateway) Option {
	return func(c *Client, _ *scratch, _ *Config) error {
		c.gateway = g
		return nil
	}
}

// WithHTTPClient overrides the HTTP client used for marketplace requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(_ *Client, s *scratch, _ *Config) error {
		s.httpClient = httpClient
		return nil
	}
}

// WithTokenSource overrides the bearer credential source. By default the
// client uses a static token from Config.APIToken.
func WithTokenSource(tokens marketapi.TokenSource) Option {
	return func(_ *Client, s *scratch, _ *Config) error {
		s.tokens = tokens
		return nil
	}
}

// WithAPIURL overwrites the configured API origin. Mostly useful in tests
// pointing the client at an httptest server.
func WithAPIURL(apiURL string) Option {
	return func(_ *Client, _ *scratch, config *Config) error {
		config.APIURL = apiURL
		return nil
	}
}
