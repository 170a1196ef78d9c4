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
	"errors"
	"time"
)

// Config allows for configuration of clients via YAML files.
type Config struct {
	// APIToken is the bearer credential for the marketplace API. Obtaining
	// and refreshing the session is outside this module.
	APIToken string `yaml:"api_token"`
	// APIURL is the deployment-specific marketplace origin.
	APIURL string `yaml:"api_url"`
	// RequestTimeout bounds each individual HTTP request.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// BalanceRetryMaxElapsed bounds retries of the wallet balance read.
	// Only that GET is ever retried; zero disables retries.
	BalanceRetryMaxElapsed time.Duration `yaml:"balance_retry_max_elapsed"`
}

// DefaultConfig returns a new instance of Config with default values set.
func DefaultConfig() Config {
	return Config{
		APIToken:               "",
		APIURL:                 "",
		RequestTimeout:         30 * time.Second,
		BalanceRetryMaxElapsed: 10 * time.Second,
	}
}

// IsValid reports whether the configuration can produce a working client.
func (c Config) IsValid() error {
	if c.APIURL == "" {
		return errors.New("missing api_url")
	}
	if c.APIToken == "" {
		return errors.New("missing api_token")
	}
	return nil
}
