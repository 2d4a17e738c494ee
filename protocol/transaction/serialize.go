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
	"errors"
	"fmt"
	"slices"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

var (
	ErrEmptyTransactionList      = errors.New("transaction list is empty")
	ErrIncompleteTransactionList = errors.New("transaction list does not have a body for every chunk and node")
	ErrUnknownTransactionBody    = errors.New("unknown transaction body")
)

// ToBytes serializes the frozen transaction, including the signatures collected so far, as a
// list with one entry per chunk and node. The result can be passed to FromBytes to add more
// signatures or to execute elsewhere
func (t *Transaction) ToBytes() ([]byte, error) {
	if t.state == protocol.StateBuilding {
		return nil, protocol.ErrTransactionNotFrozen
	}
	list := protocol.TransactionList{}
	for i := range t.signed {
		for _, signedTx := range t.signed[i] {
			signedBytes, err := cbor.Encode(signedTx)
			if err != nil {
				return nil, err
			}
			list.Transactions = append(
				list.Transactions,
				protocol.Transaction{SignedTransactionBytes: signedBytes},
			)
		}
	}
	return cbor.Encode(&list)
}

type decodedEntry struct {
	signed *protocol.SignedTransaction
	body   protocol.TransactionBody
}

// FromBytes restores a transaction serialized with ToBytes. The result is frozen, and
// re-encoding it without changes produces the same bytes
func FromBytes(data []byte) (Executable, error) {
	var list protocol.TransactionList
	if err := cbor.DecodeStrict(data, &list); err != nil {
		return nil, fmt.Errorf("decode transaction list: %w", err)
	}
	if len(list.Transactions) == 0 {
		return nil, ErrEmptyTransactionList
	}
	var transactionIds []ledger.TransactionId
	var nodeAccountIds []ledger.AccountId
	entries := map[[2]int]decodedEntry{}
	for i, tx := range list.Transactions {
		var signedTx protocol.SignedTransaction
		if err := cbor.DecodeStrict(tx.SignedTransactionBytes, &signedTx); err != nil {
			return nil, fmt.Errorf("decode signed transaction %d: %w", i, err)
		}
		var body protocol.TransactionBody
		if err := cbor.DecodeStrict(signedTx.BodyBytes, &body); err != nil {
			return nil, fmt.Errorf("decode transaction body %d: %w", i, err)
		}
		chunkIdx := slices.IndexFunc(transactionIds, body.TransactionId.Equal)
		if chunkIdx < 0 {
			chunkIdx = len(transactionIds)
			transactionIds = append(transactionIds, body.TransactionId)
		}
		nodeIdx := slices.IndexFunc(nodeAccountIds, body.NodeAccountId.Equal)
		if nodeIdx < 0 {
			nodeIdx = len(nodeAccountIds)
			nodeAccountIds = append(nodeAccountIds, body.NodeAccountId)
		}
		entries[[2]int{chunkIdx, nodeIdx}] = decodedEntry{
			signed: &signedTx,
			body:   body,
		}
	}
	if len(entries) != len(list.Transactions) ||
		len(entries) != len(transactionIds)*len(nodeAccountIds) {
		return nil, ErrIncompleteTransactionList
	}
	signed := make([][]*protocol.SignedTransaction, len(transactionIds))
	// The operation is read from the body sent to the first node for each chunk
	bodies := make([]protocol.TransactionBody, len(transactionIds))
	for i := range transactionIds {
		signed[i] = make([]*protocol.SignedTransaction, len(nodeAccountIds))
		for j := range nodeAccountIds {
			entry := entries[[2]int{i, j}]
			signed[i][j] = entry.signed
		}
		bodies[i] = entries[[2]int{i, 0}].body
	}
	exe, err := bodyFromWire(bodies)
	if err != nil {
		return nil, err
	}
	first := bodies[0]
	t := exe.transaction()
	t.state = protocol.StateFrozen
	t.nodeAccountIds = nodeAccountIds
	t.transactionId = transactionIds[0]
	fee := ledger.HbarFromTinybars(int64(first.TransactionFee)) // #nosec G115
	t.maxTransactionFee = &fee
	t.validDuration = first.TransactionValidDuration.Duration()
	t.memo = first.Memo
	t.signed = signed
	// Responses and receipt lookups use the IDs found in the bodies, which the signer may have
	// chained differently
	t.chunkTransactionIds = transactionIds
	t.chunks = make([]ledger.ChunkInfo, len(transactionIds))
	for i := range transactionIds {
		t.chunks[i] = ledger.ChunkInfo{
			InitialTransactionId: transactionIds[0],
			Current:              uint32(i),                   // #nosec G115
			Total:                uint32(len(transactionIds)), // #nosec G115
		}
	}
	return exe, nil
}

// bodyFromWire rebuilds the operation from the body of each chunk
func bodyFromWire(bodies []protocol.TransactionBody) (Executable, error) {
	first := bodies[0]
	switch {
	case first.CryptoTransfer != nil:
		return transferFromWire(first.CryptoTransfer), nil
	case first.CryptoCreateAccount != nil:
		return accountCreateFromWire(first.CryptoCreateAccount), nil
	case first.ConsensusSubmitMessage != nil:
		return topicMessageSubmitFromWire(bodies)
	case first.FileAppend != nil:
		return fileAppendFromWire(bodies)
	case first.TokenWipe != nil:
		return tokenWipeFromWire(first.TokenWipe), nil
	case first.SystemUndelete != nil:
		return systemUndeleteFromWire(first.SystemUndelete), nil
	case first.NodeDelete != nil:
		return nodeDeleteFromWire(first.NodeDelete), nil
	}
	return nil, ErrUnknownTransactionBody
}
