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

package marketapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the marketplace.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace error, status code %d: %s", e.StatusCode, e.Message)
}

var (
	// ErrUnauthorized indicates the bearer credential was rejected or has expired.
	// Session refresh is the caller's concern; the client never treats this as a
	// zero wallet balance.
	ErrUnauthorized = errors.New("credential rejected or expired")
)

// newAPIError builds an APIError from a non-2xx response, reading a JSON
// {"error": ...} or {"message": ...} body when one is present.
func newAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	if msg, err := decodeErrorMessage(resp.Body); err == nil && msg != "" {
		apiErr.Message = msg
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == 419 {
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	return apiErr
}

// decodeErrorMessage decodes a JSON error body. The marketplace uses
// "message" but some gateway endpoints respond with "error"; accept both.
func decodeErrorMessage(r io.Reader) (string, error) {
	tgt := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{}

	dec := json.NewDecoder(r)
	if err := dec.Decode(&tgt); err != nil {
		return "", err
	}

	if tgt.Error != "" {
		return tgt.Error, nil
	}
	return tgt.Message, nil
}
