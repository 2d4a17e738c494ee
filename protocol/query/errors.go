// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package query

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/gohiero/ledger"
)

var (
	ErrNoTransactionId = errors.New("transaction ID is required")
	ErrNoAccountId     = errors.New("account ID or contract ID is required")
	ErrMissingResponse = errors.New("response is missing the expected body")
)

// MaxQueryPaymentExceededError is returned when the cost of a paid query is higher than the
// maximum payment
type MaxQueryPaymentExceededError struct {
	Cost       ledger.Hbar
	MaxPayment ledger.Hbar
}

func (e MaxQueryPaymentExceededError) Error() string {
	return fmt.Sprintf(
		"query cost of %s exceeds the maximum payment of %s",
		e.Cost,
		e.MaxPayment,
	)
}
