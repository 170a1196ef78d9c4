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

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idbazaar/idbazaar-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	APIURL   string `yaml:"api_url"`
	APIToken string `yaml:"api_token"`
}

func (c testConfig) IsValid() error {
	if c.APIURL == "" {
		return errors.New("missing api_url")
	}
	return nil
}

func Test_MergeYAML(t *testing.T) {
	t.Run("ok, expands set variables", func(t *testing.T) {
		t.Setenv("TEST_API_TOKEN", "secret-1")

		cfg := testConfig{}
		err := config.MergeYAML(&cfg, strings.NewReader("api_token: ${TEST_API_TOKEN}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret-1", cfg.APIToken)
	})

	t.Run("ok, default applies when variable is unset", func(t *testing.T) {
		cfg := testConfig{}
		err := config.MergeYAML(&cfg, strings.NewReader("api_url: ${TEST_UNSET_URL:-http://localhost:8080}\n"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	})

	t.Run("ok, set variable wins over its default", func(t *testing.T) {
		t.Setenv("TEST_API_URL", "http://real:9090")

		cfg := testConfig{}
		err := config.MergeYAML(&cfg, strings.NewReader("api_url: ${TEST_API_URL:-http://localhost:8080}\n"))
		require.NoError(t, err)
		assert.Equal(t, "http://real:9090", cfg.APIURL)
	})

	t.Run("fail, unset variable without default", func(t *testing.T) {
		cfg := testConfig{}
		err := config.MergeYAML(&cfg, strings.NewReader("api_token: ${TEST_DEFINITELY_UNSET}\n"))
		require.ErrorContains(t, err, "TEST_DEFINITELY_UNSET")
	})

	t.Run("fail, malformed yaml", func(t *testing.T) {
		cfg := testConfig{}
		err := config.MergeYAML(&cfg, strings.NewReader(":\n  - not yaml: [\n"))
		require.ErrorContains(t, err, "failed to unmarshal config")
	})
}

func Test_Load(t *testing.T) {
	t.Run("ok, loads and validates a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: http://localhost:8080\n"), 0o600))

		cfg := testConfig{}
		err := config.Load(&cfg, path)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	})

	t.Run("ok, empty path only validates", func(t *testing.T) {
		cfg := testConfig{APIURL: "http://localhost:8080"}
		require.NoError(t, config.Load(&cfg, ""))
	})

	t.Run("fail, validation error", func(t *testing.T) {
		cfg := testConfig{}
		err := config.Load(&cfg, "")
		require.ErrorContains(t, err, "missing api_url")
	})

	t.Run("fail, missing file", func(t *testing.T) {
		cfg := testConfig{}
		err := config.Load(&cfg, filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "failed to open config file")
	})
}
