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

// Package query implements requests for information from the network, including the
// resolution of transaction receipts and records.
package query

import (
	"context"
	"fmt"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// Body is implemented by each kind of query
type Body interface {
	Method() protocol.Method
	// WireQuery builds the wire query using the given header
	WireQuery(header *protocol.QueryHeader) protocol.Query
	// ValidateChecksums validates the checksums of the entity IDs referenced by the query
	ValidateChecksums(ledgerId ledger.LedgerId) error
	validate() error
}

// Query holds the settings shared by all queries. The result of a successful query is mapped
// to a value of type T
type Query[T any] struct {
	body              Body
	mapResponse       func(resp *protocol.Response) (T, error)
	isPaid            bool
	retryableStatuses []ledger.Status
	// pendingPrecheck turns a pre-check status that means "not available yet" into a result
	// for the caller to poll on, instead of a dispatch failure
	pendingPrecheck func(status ledger.Status) (T, bool)
	nodeAccountIds    []ledger.AccountId
	paymentAmount     *ledger.Hbar
	maxQueryPayment   *ledger.Hbar
	cursor            protocol.NodeCursor
}

func newQuery[T any](
	body Body,
	isPaid bool,
	mapResponse func(resp *protocol.Response) (T, error),
) Query[T] {
	return Query[T]{
		body:        body,
		isPaid:      isPaid,
		mapResponse: mapResponse,
	}
}

// SetNodeAccountIds sets the nodes that the query may be sent to. By default, any node in the
// client's network is used
func (q *Query[T]) SetNodeAccountIds(nodeAccountIds ...ledger.AccountId) {
	q.nodeAccountIds = append([]ledger.AccountId{}, nodeAccountIds...)
}

func (q *Query[T]) NodeAccountIds() []ledger.AccountId {
	return append([]ledger.AccountId{}, q.nodeAccountIds...)
}

// SetPaymentAmount sets an explicit payment for paid queries, which skips the cost lookup
func (q *Query[T]) SetPaymentAmount(amount ledger.Hbar) {
	q.paymentAmount = &amount
}

// SetMaxQueryPayment sets the highest cost that will be paid without an explicit payment amount
func (q *Query[T]) SetMaxQueryPayment(amount ledger.Hbar) {
	q.maxQueryPayment = &amount
}

// IsPaid returns true if the node must be paid to answer the query
func (q *Query[T]) IsPaid() bool {
	return q.isPaid
}

// Execute sends the query and returns its mapped result
func (q *Query[T]) Execute(ctx context.Context, client protocol.Client) (T, error) {
	result, err := q.execute(ctx, client)
	return result.Value, err
}

func (q *Query[T]) execute(
	ctx context.Context,
	client protocol.Client,
) (protocol.Result[T], error) {
	nodeAccountIds, err := q.prepare(client)
	if err != nil {
		return protocol.Result[T]{}, err
	}
	var amount ledger.Hbar
	if q.isPaid {
		amount, err = q.payment(ctx, client)
		if err != nil {
			return protocol.Result[T]{}, err
		}
	}
	call := protocol.Call[T]{
		Method:            q.body.Method(),
		NodeAccountIds:    nodeAccountIds,
		Cursor:            &q.cursor,
		RetryableStatuses: q.retryableStatuses,
		MakeRequest: func(nodeAccountId ledger.AccountId) ([]byte, error) {
			return q.makeRequest(client, nodeAccountId, protocol.ResponseTypeAnswerOnly, amount)
		},
		MapResponse: func(_ ledger.AccountId, data []byte) (T, ledger.Status, error) {
			var zero T
			resp, status, err := decodeResponse(data)
			if err != nil {
				return zero, status, err
			}
			if status != ledger.StatusOk {
				if q.pendingPrecheck != nil {
					if value, ok := q.pendingPrecheck(status); ok {
						return value, ledger.StatusOk, nil
					}
				}
				return zero, status, nil
			}
			value, err := q.mapResponse(resp)
			return value, status, err
		},
	}
	return protocol.Execute(ctx, client, call)
}

// GetCost asks a node for the cost of answering the query
func (q *Query[T]) GetCost(ctx context.Context, client protocol.Client) (ledger.Hbar, error) {
	nodeAccountIds, err := q.prepare(client)
	if err != nil {
		return 0, err
	}
	call := protocol.Call[ledger.Hbar]{
		Method:            q.body.Method(),
		NodeAccountIds:    nodeAccountIds,
		Cursor:            &q.cursor,
		RetryableStatuses: q.retryableStatuses,
		MakeRequest: func(nodeAccountId ledger.AccountId) ([]byte, error) {
			return q.makeRequest(client, nodeAccountId, protocol.ResponseTypeCostAnswer, 0)
		},
		MapResponse: func(_ ledger.AccountId, data []byte) (ledger.Hbar, ledger.Status, error) {
			resp, status, err := decodeResponse(data)
			if err != nil || status != ledger.StatusOk {
				return 0, status, err
			}
			return ledger.HbarFromTinybars(int64(resp.Header().Cost)), status, nil // #nosec G115
		},
	}
	result, err := protocol.Execute(ctx, client, call)
	if err != nil {
		return 0, err
	}
	return result.Value, nil
}

// prepare runs the local checks and returns the nodes to use
func (q *Query[T]) prepare(client protocol.Client) ([]ledger.AccountId, error) {
	if err := q.body.validate(); err != nil {
		return nil, err
	}
	nodeAccountIds := q.nodeAccountIds
	if len(nodeAccountIds) == 0 {
		nodeAccountIds = client.Network().NodeAccountIds()
	}
	if len(nodeAccountIds) == 0 {
		return nil, protocol.ErrNoNodeAccountIds
	}
	if client.AutoValidateChecksums() {
		if err := q.body.ValidateChecksums(client.LedgerId()); err != nil {
			return nil, err
		}
		if err := ledger.ValidateChecksums(client.LedgerId(), nodeAccountIds...); err != nil {
			return nil, err
		}
	}
	return nodeAccountIds, nil
}

// payment returns the amount to pay for the query, looking up the cost if no explicit amount
// was set
func (q *Query[T]) payment(ctx context.Context, client protocol.Client) (ledger.Hbar, error) {
	if q.paymentAmount != nil {
		return *q.paymentAmount, nil
	}
	maxPayment := client.DefaultMaxQueryPayment()
	if q.maxQueryPayment != nil {
		maxPayment = *q.maxQueryPayment
	}
	cost, err := q.GetCost(ctx, client)
	if err != nil {
		return 0, fmt.Errorf("get query cost: %w", err)
	}
	if cost > maxPayment {
		return 0, MaxQueryPaymentExceededError{
			Cost:       cost,
			MaxPayment: maxPayment,
		}
	}
	return cost, nil
}

func (q *Query[T]) makeRequest(
	client protocol.Client,
	nodeAccountId ledger.AccountId,
	responseType protocol.ResponseType,
	amount ledger.Hbar,
) ([]byte, error) {
	header := &protocol.QueryHeader{
		ResponseType: responseType,
	}
	if q.isPaid {
		payment, err := makePayment(client, nodeAccountId, amount)
		if err != nil {
			return nil, err
		}
		header.Payment = payment
	}
	wireQuery := q.body.WireQuery(header)
	return cbor.Encode(&wireQuery)
}

func decodeResponse(data []byte) (*protocol.Response, ledger.Status, error) {
	var resp protocol.Response
	if err := cbor.DecodeStrict(data, &resp); err != nil {
		return nil, ledger.StatusUnknown, err
	}
	return &resp, resp.Header().NodeTransactionPrecheckCode, nil
}

// makePayment builds a transfer from the operator to the node, signed by the operator
func makePayment(
	client protocol.Client,
	nodeAccountId ledger.AccountId,
	amount ledger.Hbar,
) (*protocol.Transaction, error) {
	operator := client.Operator()
	if operator == nil {
		return nil, fmt.Errorf("paid query: %w", protocol.ErrNoOperator)
	}
	body := protocol.TransactionBody{
		TransactionId:            client.TransactionIdGenerator().Generate(operator.AccountId),
		NodeAccountId:            nodeAccountId,
		TransactionFee:           uint64(client.DefaultMaxTransactionFee().Tinybars()), // #nosec G115
		TransactionValidDuration: ledger.NewDuration(protocol.DefaultTransactionValidDuration),
		CryptoTransfer: &protocol.CryptoTransferBody{
			Transfers: []ledger.Transfer{
				{AccountId: operator.AccountId, Amount: -amount},
				{AccountId: nodeAccountId, Amount: amount},
			},
		},
	}
	bodyBytes, err := cbor.Encode(&body)
	if err != nil {
		return nil, err
	}
	sig, err := operator.Signer(bodyBytes)
	if err != nil {
		return nil, fmt.Errorf("sign query payment: %w", err)
	}
	sigMap := keys.NewSignatureMap()
	sigMap.Add(keys.SignaturePair{PublicKey: operator.PublicKey, Signature: sig})
	signedBytes, err := cbor.Encode(
		&protocol.SignedTransaction{
			BodyBytes: bodyBytes,
			SigMap:    sigMap,
		},
	)
	if err != nil {
		return nil, err
	}
	return &protocol.Transaction{SignedTransactionBytes: signedBytes}, nil
}
