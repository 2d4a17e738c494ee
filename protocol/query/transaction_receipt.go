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
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

const (
	DefaultPollInterval    = 250 * time.Millisecond
	DefaultMaxPollInterval = 2 * time.Second

	pollIntervalMultiplier = 1.5
)

// Receipt statuses that mean the transaction has not reached consensus yet
var pendingStatuses = []ledger.Status{
	ledger.StatusUnknown,
	ledger.StatusReceiptNotFound,
	ledger.StatusRecordNotFound,
	ledger.StatusBusy,
	ledger.StatusPlatformNotActive,
	ledger.StatusPlatformTransactionNotCreated,
}

func isPending(status ledger.Status) bool {
	return slices.Contains(pendingStatuses, status)
}

// poller holds the settings for waiting on a consensus outcome
type poller struct {
	interval    time.Duration
	maxInterval time.Duration
}

func newPoller() poller {
	return poller{
		interval:    DefaultPollInterval,
		maxInterval: DefaultMaxPollInterval,
	}
}

// poll calls fetch until the returned status is no longer pending, sleeping between calls.
// Only the context bounds the number of polls
func poll[T any](
	ctx context.Context,
	client protocol.Client,
	p poller,
	transactionId ledger.TransactionId,
	fetch func() (T, ledger.Status, error),
) (T, error) {
	logger := client.Logger()
	if logger == nil {
		logger = slog.Default()
	}
	interval := p.interval
	for {
		value, status, err := fetch()
		if err != nil || !isPending(status) {
			return value, err
		}
		logger.Debug(
			"transaction has not reached consensus",
			"transaction_id", transactionId.String(),
			"status", status.String(),
			"delay", interval,
		)
		if err := protocol.SleepContext(ctx, interval); err != nil {
			var zero T
			return zero, protocol.TimeoutError{Err: err}
		}
		interval = min(
			time.Duration(float64(interval)*pollIntervalMultiplier),
			max(p.maxInterval, p.interval),
		)
	}
}

// TransactionReceiptQuery gets the receipt of a transaction, waiting until the transaction
// has reached consensus. It is free
type TransactionReceiptQuery struct {
	Query[ledger.Receipt]
	poller
	transactionId     ledger.TransactionId
	includeDuplicates bool
	includeChildren   bool
	validateStatus    bool
}

func NewTransactionReceiptQuery() *TransactionReceiptQuery {
	q := &TransactionReceiptQuery{
		poller: newPoller(),
	}
	q.Query = newQuery(q, false, q.mapResponse)
	q.pendingPrecheck = func(status ledger.Status) (ledger.Receipt, bool) {
		if status != ledger.StatusReceiptNotFound {
			return ledger.Receipt{}, false
		}
		return ledger.Receipt{Status: status}, true
	}
	return q
}

func (q *TransactionReceiptQuery) SetTransactionId(transactionId ledger.TransactionId) {
	q.transactionId = transactionId
}

func (q *TransactionReceiptQuery) TransactionId() ledger.TransactionId {
	return q.transactionId
}

// SetIncludeDuplicates requests the receipts of duplicate submissions of the transaction
func (q *TransactionReceiptQuery) SetIncludeDuplicates(include bool) {
	q.includeDuplicates = include
}

// SetIncludeChildren requests the receipts of child transactions
func (q *TransactionReceiptQuery) SetIncludeChildren(include bool) {
	q.includeChildren = include
}

// SetValidateStatus controls whether a non-SUCCESS receipt is returned as a ReceiptStatusError
func (q *TransactionReceiptQuery) SetValidateStatus(validate bool) {
	q.validateStatus = validate
}

// SetPollInterval sets the delay between polls while the transaction has not reached
// consensus. The delay grows by half on each poll up to maxInterval
func (q *TransactionReceiptQuery) SetPollInterval(interval, maxInterval time.Duration) {
	q.interval = interval
	q.maxInterval = maxInterval
}

// Execute polls until the transaction reaches consensus or the context is done. When status
// validation is enabled, a non-SUCCESS receipt is returned together with a ReceiptStatusError
func (q *TransactionReceiptQuery) Execute(
	ctx context.Context,
	client protocol.Client,
) (ledger.Receipt, error) {
	receipt, err := poll(
		ctx,
		client,
		q.poller,
		q.transactionId,
		func() (ledger.Receipt, ledger.Status, error) {
			receipt, err := q.Query.Execute(ctx, client)
			return receipt, receipt.Status, err
		},
	)
	if err != nil {
		return ledger.Receipt{}, err
	}
	return receipt, receipt.ValidateStatus(q.validateStatus)
}

func (q *TransactionReceiptQuery) Method() protocol.Method {
	return protocol.MethodTransactionGetReceipt
}

func (q *TransactionReceiptQuery) WireQuery(header *protocol.QueryHeader) protocol.Query {
	return protocol.Query{
		TransactionGetReceipt: &protocol.TransactionGetReceiptQuery{
			Header:               header,
			TransactionId:        q.transactionId,
			IncludeDuplicates:    q.includeDuplicates,
			IncludeChildReceipts: q.includeChildren,
		},
	}
}

func (q *TransactionReceiptQuery) ValidateChecksums(ledgerId ledger.LedgerId) error {
	return q.transactionId.AccountId.ValidateChecksum(ledgerId)
}

func (q *TransactionReceiptQuery) validate() error {
	if q.transactionId.IsZero() {
		return ErrNoTransactionId
	}
	return nil
}

func (q *TransactionReceiptQuery) mapResponse(resp *protocol.Response) (ledger.Receipt, error) {
	receiptResp := resp.TransactionGetReceipt
	if receiptResp == nil || receiptResp.Receipt == nil {
		return ledger.Receipt{}, ErrMissingResponse
	}
	receipt := *receiptResp.Receipt
	receipt.TransactionId = transactionIdPtr(q.transactionId)
	for _, duplicate := range receiptResp.DuplicateTransactionReceipts {
		duplicate.TransactionId = transactionIdPtr(q.transactionId)
		receipt.Duplicates = append(receipt.Duplicates, duplicate)
	}
	for i, child := range receiptResp.ChildTransactionReceipts {
		child.TransactionId = transactionIdPtr(childTransactionId(q.transactionId, i))
		receipt.Children = append(receipt.Children, child)
	}
	return receipt, nil
}

// childTransactionId returns the ID of the child transaction at the given index. Children
// share the parent's valid start and are numbered by nonce
func childTransactionId(parent ledger.TransactionId, idx int) ledger.TransactionId {
	ret := parent
	ret.Nonce = int32(idx + 1) // #nosec G115
	return ret
}

func transactionIdPtr(transactionId ledger.TransactionId) *ledger.TransactionId {
	return &transactionId
}
