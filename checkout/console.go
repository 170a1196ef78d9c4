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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Console is a Gateway for terminal sessions. It prints the order details and
// reads the gateway callback fields line by line; an empty payment id
// dismisses the checkout. Useful against the in-memory marketplace, which
// prints the expected fields when an order is charged.
type Console struct {
	In  io.Reader
	Out io.Writer
}

var _ Gateway = (*Console)(nil)

func (c *Console) Open(ctx context.Context, order Order) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(c.Out, "Checkout for order %s: %d %s (key %s)\n",
		order.OrderID, order.Amount, order.Currency, order.Key)
	fmt.Fprintln(c.Out, "Enter payment id (empty line to dismiss):")

	scanner := bufio.NewScanner(c.In)

	paymentID, err := readLine(scanner)
	if err != nil {
		return nil, err
	}
	if paymentID == "" {
		return nil, nil
	}

	fmt.Fprintln(c.Out, "Enter signature:")
	signature, err := readLine(scanner)
	if err != nil {
		return nil, err
	}

	return &Result{
		PaymentID: paymentID,
		OrderID:   order.OrderID,
		Signature: signature,
	}, nil
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read checkout input: %w", err)
		}
		// EOF counts as walking away from the widget.
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
