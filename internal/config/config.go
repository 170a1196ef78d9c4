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

// Package config loads YAML configuration with environment expansion for the
// idbazaar commands.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validator can optionally be implemented by a configuration struct to run
// cross-field checks after loading.
type Validator interface {
	IsValid() error
}

// Load merges the YAML file at path into cfg and validates it when *T
// implements Validator. An empty path skips the file and only validates.
func Load[T any](cfg *T, path string) error {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		if err := MergeYAML(cfg, f); err != nil {
			return err
		}
	}

	if v, ok := any(cfg).(Validator); ok {
		if err := v.IsValid(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	return nil
}

// MergeYAML merges YAML from src into cfg, expanding ${VAR} references from
// the environment first. `${VAR:-default}` falls back to the default when VAR
// is unset; a plain `${VAR}` that is unset is an error, so missing secrets
// fail loudly instead of turning into empty strings.
func MergeYAML[T any](cfg *T, src io.Reader) error {
	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read config source: %w", err)
	}

	var missing []string
	expanded := os.Expand(string(raw), func(key string) string {
		if i := strings.Index(key, ":-"); i != -1 {
			name, fallback := key[:i], key[i+2:]
			if val, ok := os.LookupEnv(name); ok {
				return val
			}
			return fallback
		}

		val, ok := os.LookupEnv(key)
		if !ok {
			missing = append(missing, key)
			return ""
		}
		return val
	})

	if len(missing) > 0 {
		return fmt.Errorf("config expects the following environment variables to be set: %v", missing)
	}

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
