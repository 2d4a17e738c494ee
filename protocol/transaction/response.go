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

package transaction

import (
	"context"
	"encoding/hex"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/blinklabs-io/gohiero/protocol/query"
)

// Response identifies a transaction accepted by a node
type Response struct {
	NodeAccountId   ledger.AccountId
	TransactionId   ledger.TransactionId
	TransactionHash []byte
	// ValidateStatus controls whether GetReceipt and GetRecord return a ReceiptStatusError for
	// a non-SUCCESS outcome. It is set by Execute
	ValidateStatus bool
}

func (r Response) String() string {
	return r.TransactionId.String() + " via " + r.NodeAccountId.String() + " (" +
		hex.EncodeToString(r.TransactionHash) + ")"
}

// GetReceiptQuery returns a receipt query for the transaction, targeted at the node that
// accepted it
func (r Response) GetReceiptQuery() *query.TransactionReceiptQuery {
	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(r.TransactionId)
	q.SetNodeAccountIds(r.NodeAccountId)
	q.SetValidateStatus(r.ValidateStatus)
	return q
}

// GetReceipt waits for the transaction to reach consensus and returns its receipt
func (r Response) GetReceipt(ctx context.Context, client protocol.Client) (ledger.Receipt, error) {
	return r.GetReceiptQuery().Execute(ctx, client)
}

// GetRecordQuery returns a record query for the transaction, targeted at the node that accepted
// it. Record queries are paid
func (r Response) GetRecordQuery() *query.TransactionRecordQuery {
	q := query.NewTransactionRecordQuery()
	q.SetTransactionId(r.TransactionId)
	q.SetNodeAccountIds(r.NodeAccountId)
	q.SetValidateStatus(r.ValidateStatus)
	return q
}

// GetRecord waits for the transaction to reach consensus and returns its record
func (r Response) GetRecord(ctx context.Context, client protocol.Client) (ledger.Record, error) {
	return r.GetRecordQuery().Execute(ctx, client)
}
