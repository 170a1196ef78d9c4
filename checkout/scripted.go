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

package checkout

import (
	"context"
	"sync"
)

// Scripted is a Gateway for tests and local development. Each call to Open
// consults CompleteFn with the order; returning (nil, nil) simulates the user
// dismissing the widget. Opened records every order passed to Open.
type Scripted struct {
	mu     sync.Mutex
	opened []Order

	// CompleteFn decides the outcome of each Open call. A nil CompleteFn
	// dismisses every checkout.
	CompleteFn func(order Order) (*Result, error)
}

var _ Gateway = (*Scripted)(nil)

func (s *Scripted) Open(ctx context.Context, order Order) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.opened = append(s.opened, order)
	complete := s.CompleteFn
	s.mu.Unlock()

	if complete == nil {
		return nil, nil
	}
	return complete(order)
}

// Opened returns a copy of the orders passed to Open, in order.
func (s *Scripted) Opened() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.opened...)
}
