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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/cenkalti/backoff/v4"
)

// Pre-check statuses that are retried against the same node after a backoff
var defaultRetryableStatuses = []ledger.Status{
	ledger.StatusBusy,
	ledger.StatusPlatformTransactionNotCreated,
	ledger.StatusPlatformNotActive,
}

// NodeCursor selects the node for the next attempt. It is owned by an executable, so a later
// execution resumes from the node after the last one that failed
type NodeCursor struct {
	index int
}

// Node returns the current node from the list
func (c *NodeCursor) Node(nodeAccountIds []ledger.AccountId) ledger.AccountId {
	return nodeAccountIds[c.index%len(nodeAccountIds)]
}

// Advance moves the cursor to the next node
func (c *NodeCursor) Advance() {
	c.index++
}

// Call describes a single request to be delivered by Execute
type Call[T any] struct {
	Method         Method
	NodeAccountIds []ledger.AccountId
	// Optional cursor that persists across executions
	Cursor *NodeCursor
	// Optional transaction ID used for logging and errors
	TransactionId *ledger.TransactionId
	// Extra pre-check statuses that are retried after a backoff
	RetryableStatuses []ledger.Status
	// MakeRequest builds the request payload for the given node. Errors are returned to the
	// caller without retry
	MakeRequest func(nodeAccountId ledger.AccountId) ([]byte, error)
	// MapResponse decodes the response payload and returns its pre-check status. The value is
	// only used when the status is OK
	MapResponse func(nodeAccountId ledger.AccountId, resp []byte) (T, ledger.Status, error)
}

// Result is the outcome of a successful Execute
type Result[T any] struct {
	Value         T
	NodeAccountId ledger.AccountId
	Attempts      int
}

// Execute delivers the call to the network, retrying according to the client's DispatchConfig.
// Nodes are tried in order starting from the cursor. Transport failures move on to the next
// node immediately, transient pre-check statuses retry the same node after a backoff, and any
// other status is returned as a PrecheckError. The context bounds the whole sequence
func Execute[T any](
	ctx context.Context,
	client Client,
	call Call[T],
) (Result[T], error) {
	if len(call.NodeAccountIds) == 0 {
		return Result[T]{}, ErrNoNodeAccountIds
	}
	cfg := client.DispatchConfig()
	if err := cfg.Validate(); err != nil {
		return Result[T]{}, fmt.Errorf("invalid dispatch config: %w", err)
	}
	logger := client.Logger()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("method", call.Method.String())
	if call.TransactionId != nil {
		logger = logger.With("transaction_id", call.TransactionId.String())
	}
	cursor := call.Cursor
	if cursor == nil {
		cursor = &NodeCursor{}
	}
	bo := newBackoff(cfg)
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result[T]{}, TimeoutError{Err: err, Last: lastErr}
		}
		nodeAccountId := cursor.Node(call.NodeAccountIds)
		logger.Debug(
			"sending request",
			"node", nodeAccountId.String(),
			"attempt", attempt,
		)
		value, err := executeAttempt(ctx, client.Network(), cfg, call, nodeAccountId)
		if err == nil {
			return Result[T]{
				Value:         value,
				NodeAccountId: nodeAccountId,
				Attempts:      attempt,
			}, nil
		}
		lastErr = err
		var nodeErr RetryableNodeError
		var busyErr RetryableBusyError
		switch {
		case errors.As(err, &nodeErr):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result[T]{}, TimeoutError{Err: ctxErr, Last: lastErr}
			}
			logger.Warn(
				"node failed, trying next node",
				"node", nodeAccountId.String(),
				"attempt", attempt,
				"error", nodeErr.Err,
			)
			cursor.Advance()
		case errors.As(err, &busyErr):
			delay := bo.NextBackOff()
			logger.Debug(
				"node busy, backing off",
				"node", nodeAccountId.String(),
				"attempt", attempt,
				"status", busyErr.Status.String(),
				"delay", delay,
			)
			if err := SleepContext(ctx, delay); err != nil {
				return Result[T]{}, TimeoutError{Err: err, Last: lastErr}
			}
		default:
			return Result[T]{}, err
		}
	}
	return Result[T]{}, MaxAttemptsExceededError{
		Attempts: cfg.MaxAttempts,
		Last:     lastErr,
	}
}

func executeAttempt[T any](
	ctx context.Context,
	network Network,
	cfg DispatchConfig,
	call Call[T],
	nodeAccountId ledger.AccountId,
) (T, error) {
	var zero T
	payload, err := call.MakeRequest(nodeAccountId)
	if err != nil {
		return zero, err
	}
	// The per-attempt deadline covers connecting as well as the request itself
	reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	channel, err := network.Channel(reqCtx, nodeAccountId)
	if err != nil {
		if errors.Is(err, ErrNodeNotFound) {
			return zero, err
		}
		return zero, RetryableNodeError{NodeAccountId: nodeAccountId, Err: err}
	}
	resp, err := channel.Request(reqCtx, uint16(call.Method), payload)
	if err != nil {
		return zero, RetryableNodeError{NodeAccountId: nodeAccountId, Err: err}
	}
	value, status, err := call.MapResponse(nodeAccountId, resp)
	if err != nil {
		return zero, RetryableNodeError{
			NodeAccountId: nodeAccountId,
			Err:           fmt.Errorf("decode response: %w", err),
		}
	}
	switch {
	case status == ledger.StatusOk:
		return value, nil
	case slices.Contains(defaultRetryableStatuses, status),
		slices.Contains(call.RetryableStatuses, status):
		return zero, RetryableBusyError{NodeAccountId: nodeAccountId, Status: status}
	}
	return zero, PrecheckError{
		NodeAccountId: nodeAccountId,
		Status:        status,
		TransactionId: call.TransactionId,
	}
}

func newBackoff(cfg DispatchConfig) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.MinBackoff
	bo.MaxInterval = cfg.MaxBackoff
	bo.Multiplier = 2
	bo.RandomizationFactor = cfg.BackoffJitter
	// Attempts are bounded by MaxAttempts and the caller's context instead
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

// SleepContext waits for the given duration or until the context is done
func SleepContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
