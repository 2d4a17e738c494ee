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
	"time"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// TransactionRecordQuery gets the record of a transaction, waiting until the transaction has
// reached consensus. The query is paid for by the client operator
type TransactionRecordQuery struct {
	Query[ledger.Record]
	poller
	transactionId     ledger.TransactionId
	includeDuplicates bool
	includeChildren   bool
	validateStatus    bool
}

func NewTransactionRecordQuery() *TransactionRecordQuery {
	q := &TransactionRecordQuery{
		poller: newPoller(),
	}
	q.Query = newQuery(q, true, q.mapResponse)
	// The cost lookup is a single answer, so it retries these with a backoff instead
	q.retryableStatuses = []ledger.Status{
		ledger.StatusReceiptNotFound,
		ledger.StatusRecordNotFound,
	}
	q.pendingPrecheck = func(status ledger.Status) (ledger.Record, bool) {
		if status != ledger.StatusReceiptNotFound && status != ledger.StatusRecordNotFound {
			return ledger.Record{}, false
		}
		return ledger.Record{Receipt: ledger.Receipt{Status: status}}, true
	}
	return q
}

func (q *TransactionRecordQuery) SetTransactionId(transactionId ledger.TransactionId) {
	q.transactionId = transactionId
}

func (q *TransactionRecordQuery) TransactionId() ledger.TransactionId {
	return q.transactionId
}

// SetIncludeDuplicates requests the records of duplicate submissions of the transaction
func (q *TransactionRecordQuery) SetIncludeDuplicates(include bool) {
	q.includeDuplicates = include
}

// SetIncludeChildren requests the records of child transactions
func (q *TransactionRecordQuery) SetIncludeChildren(include bool) {
	q.includeChildren = include
}

// SetValidateStatus controls whether a record with a non-SUCCESS receipt is returned as a
// ReceiptStatusError
func (q *TransactionRecordQuery) SetValidateStatus(validate bool) {
	q.validateStatus = validate
}

func (q *TransactionRecordQuery) SetPollInterval(interval, maxInterval time.Duration) {
	q.interval = interval
	q.maxInterval = maxInterval
}

// Execute polls until the transaction reaches consensus or the context is done
func (q *TransactionRecordQuery) Execute(
	ctx context.Context,
	client protocol.Client,
) (ledger.Record, error) {
	record, err := poll(
		ctx,
		client,
		q.poller,
		q.transactionId,
		func() (ledger.Record, ledger.Status, error) {
			record, err := q.Query.Execute(ctx, client)
			return record, record.Receipt.Status, err
		},
	)
	if err != nil {
		return ledger.Record{}, err
	}
	return record, record.ValidateStatus(q.validateStatus)
}

func (q *TransactionRecordQuery) Method() protocol.Method {
	return protocol.MethodTransactionGetRecord
}

func (q *TransactionRecordQuery) WireQuery(header *protocol.QueryHeader) protocol.Query {
	return protocol.Query{
		TransactionGetRecord: &protocol.TransactionGetRecordQuery{
			Header:              header,
			TransactionId:       q.transactionId,
			IncludeDuplicates:   q.includeDuplicates,
			IncludeChildRecords: q.includeChildren,
		},
	}
}

func (q *TransactionRecordQuery) ValidateChecksums(ledgerId ledger.LedgerId) error {
	return q.transactionId.AccountId.ValidateChecksum(ledgerId)
}

func (q *TransactionRecordQuery) validate() error {
	if q.transactionId.IsZero() {
		return ErrNoTransactionId
	}
	return nil
}

func (q *TransactionRecordQuery) mapResponse(resp *protocol.Response) (ledger.Record, error) {
	recordResp := resp.TransactionGetRecord
	if recordResp == nil || recordResp.TransactionRecord == nil {
		return ledger.Record{}, ErrMissingResponse
	}
	record := *recordResp.TransactionRecord
	if record.TransactionId.IsZero() {
		record.TransactionId = q.transactionId
	}
	record.Receipt.TransactionId = transactionIdPtr(record.TransactionId)
	for _, duplicate := range recordResp.DuplicateTransactionRecords {
		if duplicate.TransactionId.IsZero() {
			duplicate.TransactionId = q.transactionId
		}
		duplicate.Receipt.TransactionId = transactionIdPtr(duplicate.TransactionId)
		record.Duplicates = append(record.Duplicates, duplicate)
	}
	for i, child := range recordResp.ChildTransactionRecords {
		if child.TransactionId.IsZero() {
			child.TransactionId = childTransactionId(q.transactionId, i)
		}
		child.Receipt.TransactionId = transactionIdPtr(child.TransactionId)
		record.Children = append(record.Children, child)
	}
	return record, nil
}
