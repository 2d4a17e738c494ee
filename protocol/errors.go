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

package protocol

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/gohiero/ledger"
)

var (
	ErrTransactionFrozen    = errors.New("transaction is frozen")
	ErrTransactionNotFrozen = errors.New("transaction is not frozen")
	ErrTransactionExecuted  = errors.New("transaction has already been executed")
	ErrNoNodeAccountIds     = errors.New("no node account IDs")
	ErrNoTransactionId      = errors.New("no transaction ID and no operator to generate one")
	ErrNoOperator           = errors.New("client has no operator")
	ErrNodeNotFound         = errors.New("node not found in network")
)

// ChunkCountExceededError is returned when a payload needs more chunks than allowed
type ChunkCountExceededError = ledger.ChunkCountExceededError

// FreezeError is returned when an executable cannot be frozen
type FreezeError struct {
	Err error
}

func (e FreezeError) Error() string {
	return fmt.Sprintf("freeze failed: %s", e.Err)
}

func (e FreezeError) Unwrap() error {
	return e.Err
}

// IllegalStateError is returned when an operation is not allowed in the current lifecycle state
type IllegalStateError struct {
	State State
	Event Event
}

func (e IllegalStateError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Event, e.State)
}

// Unwrap maps the state onto the matching sentinel error
func (e IllegalStateError) Unwrap() error {
	switch e.State {
	case StateBuilding:
		return ErrTransactionNotFrozen
	case StateFrozen:
		return ErrTransactionFrozen
	case StateExecuted:
		return ErrTransactionExecuted
	}
	return nil
}

// RetryableNodeError is a connection or transport failure. The request is retried against
// the next node without delay
type RetryableNodeError struct {
	NodeAccountId ledger.AccountId
	Err           error
}

func (e RetryableNodeError) Error() string {
	return fmt.Sprintf("node %s failed: %s", e.NodeAccountId, e.Err)
}

func (e RetryableNodeError) Unwrap() error {
	return e.Err
}

// RetryableBusyError is a transient pre-check status. The request is retried against the same
// node after a backoff
type RetryableBusyError struct {
	NodeAccountId ledger.AccountId
	Status        ledger.Status
}

func (e RetryableBusyError) Error() string {
	return fmt.Sprintf("node %s returned transient status %s", e.NodeAccountId, e.Status)
}

// PrecheckError is a pre-check rejection from the node. It is not retried
type PrecheckError struct {
	NodeAccountId ledger.AccountId
	Status        ledger.Status
	TransactionId *ledger.TransactionId
}

func (e PrecheckError) Error() string {
	if e.TransactionId == nil {
		return fmt.Sprintf("pre-check failed on node %s with status %s", e.NodeAccountId, e.Status)
	}
	return fmt.Sprintf(
		"pre-check for transaction %s failed on node %s with status %s",
		e.TransactionId,
		e.NodeAccountId,
		e.Status,
	)
}

// MaxAttemptsExceededError is returned when every attempt failed with a retryable error
type MaxAttemptsExceededError struct {
	Attempts int
	Last     error
}

func (e MaxAttemptsExceededError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %s", e.Attempts, e.Last)
}

func (e MaxAttemptsExceededError) Unwrap() error {
	return e.Last
}

// TimeoutError is returned when the caller's context ends before the operation completes
type TimeoutError struct {
	Err  error
	Last error
}

func (e TimeoutError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("operation timed out: %s (last error: %s)", e.Err, e.Last)
	}
	return fmt.Sprintf("operation timed out: %s", e.Err)
}

func (e TimeoutError) Unwrap() error {
	return e.Err
}
