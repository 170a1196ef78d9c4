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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer credential attached to every request.
// Session establishment and refresh happen outside this module.
type TokenSource interface {
	// Token returns the current bearer token. Implementations should return an
	// error wrapping [ErrUnauthorized] when no usable credential is available,
	// so callers fail fast instead of issuing a request that will be rejected.
	Token() (string, error)
}

// StaticToken is a TokenSource for a fixed bearer token.
//
// When the token is a JWT, Token reports [ErrUnauthorized] once the embedded
// expiry has passed. The claim is read without signature verification; it is
// used only to classify the credential locally, never to trust it.
type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", fmt.Errorf("%w: empty bearer token", ErrUnauthorized)
	}

	if expiry, ok := jwtExpiry(string(t)); ok && time.Now().After(expiry) {
		return "", fmt.Errorf("%w: bearer token expired at %s", ErrUnauthorized, expiry.UTC().Format(time.RFC3339))
	}

	return string(t), nil
}

// jwtExpiry extracts the exp claim from a JWT-shaped token. Opaque tokens and
// JWTs without exp report ok=false and are passed through untouched.
func jwtExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// tokenError reports whether err came from the token source rather than the
// transport, so callers can skip retries that cannot succeed.
func tokenError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
