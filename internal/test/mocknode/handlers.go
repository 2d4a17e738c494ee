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

package mocknode

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// ErrConnectionDropped is returned by Drop to simulate a transport failure
var ErrConnectionDropped = errors.New("mock connection dropped")

// Reply answers with the CBOR encoding of msg
func Reply(msg any) Handler {
	return func(protocol.Method, []byte) ([]byte, error) {
		return cbor.Encode(msg)
	}
}

// Drop closes the connection instead of answering
func Drop() Handler {
	return func(protocol.Method, []byte) ([]byte, error) {
		return nil, ErrConnectionDropped
	}
}

// Sequence uses each of the handlers in turn for successive requests. The last handler is
// repeated once the others have been used
func Sequence(handlers ...Handler) Handler {
	var mutex sync.Mutex
	idx := 0
	return func(method protocol.Method, payload []byte) ([]byte, error) {
		mutex.Lock()
		handler := handlers[min(idx, len(handlers)-1)]
		idx++
		mutex.Unlock()
		return handler(method, payload)
	}
}

// ByMethod routes requests to a handler by method
func ByMethod(handlers map[protocol.Method]Handler) Handler {
	return func(method protocol.Method, payload []byte) ([]byte, error) {
		handler, ok := handlers[method]
		if !ok {
			return nil, fmt.Errorf("unexpected method %s", method)
		}
		return handler(method, payload)
	}
}

// Precheck answers a transaction submission with the given pre-check status
func Precheck(status ledger.Status) Handler {
	return Reply(
		&protocol.TransactionResponse{
			NodeTransactionPrecheckCode: status,
		},
	)
}

// Receipt answers a receipt query with the given receipt
func Receipt(receipt ledger.Receipt) Handler {
	return ReceiptResponse(
		protocol.TransactionGetReceiptResponse{
			Receipt: &receipt,
		},
	)
}

// ReceiptStatus answers a receipt query with a receipt carrying only the given status
func ReceiptStatus(status ledger.Status) Handler {
	return Receipt(ledger.Receipt{Status: status})
}

// ReceiptResponse answers a receipt query with the given response body. An OK header is added
// if none is set
func ReceiptResponse(resp protocol.TransactionGetReceiptResponse) Handler {
	if resp.Header == nil {
		resp.Header = &protocol.ResponseHeader{
			NodeTransactionPrecheckCode: ledger.StatusOk,
		}
	}
	return Reply(
		&protocol.Response{
			TransactionGetReceipt: &resp,
		},
	)
}

// RecordResponse answers a record query with the given response body. An OK header is added
// if none is set
func RecordResponse(resp protocol.TransactionGetRecordResponse) Handler {
	if resp.Header == nil {
		resp.Header = &protocol.ResponseHeader{
			NodeTransactionPrecheckCode: ledger.StatusOk,
		}
	}
	return Reply(
		&protocol.Response{
			TransactionGetRecord: &resp,
		},
	)
}

// QueryPrecheck answers a query with a response header carrying the given pre-check status
// and cost
func QueryPrecheck(method protocol.Method, status ledger.Status, cost uint64) Handler {
	header := &protocol.ResponseHeader{
		NodeTransactionPrecheckCode: status,
		Cost:                        cost,
	}
	resp := &protocol.Response{}
	switch method {
	case protocol.MethodCryptoGetAccountBalance:
		resp.CryptoGetAccountBalance = &protocol.CryptoGetAccountBalanceResponse{Header: header}
	case protocol.MethodTransactionGetReceipt:
		resp.TransactionGetReceipt = &protocol.TransactionGetReceiptResponse{Header: header}
	case protocol.MethodTransactionGetRecord:
		resp.TransactionGetRecord = &protocol.TransactionGetRecordResponse{Header: header}
	}
	return Reply(resp)
}

// DecodeTransaction decodes a submitted transaction into its signed transaction and body
func DecodeTransaction(
	payload []byte,
) (*protocol.SignedTransaction, *protocol.TransactionBody, error) {
	var tx protocol.Transaction
	if err := cbor.DecodeStrict(payload, &tx); err != nil {
		return nil, nil, err
	}
	var signedTx protocol.SignedTransaction
	if err := cbor.DecodeStrict(tx.SignedTransactionBytes, &signedTx); err != nil {
		return nil, nil, err
	}
	var body protocol.TransactionBody
	if err := cbor.DecodeStrict(signedTx.BodyBytes, &body); err != nil {
		return nil, nil, err
	}
	return &signedTx, &body, nil
}

// DecodeQuery decodes a submitted query
func DecodeQuery(payload []byte) (*protocol.Query, error) {
	var query protocol.Query
	if err := cbor.DecodeStrict(payload, &query); err != nil {
		return nil, err
	}
	return &query, nil
}
