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
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// Execute submits the transaction and returns the response for its first chunk. See
// ExecuteAll
func (t *Transaction) Execute(ctx context.Context, client protocol.Client) (Response, error) {
	responses, err := t.ExecuteAll(ctx, client)
	if err != nil {
		return Response{}, err
	}
	return responses[0], nil
}

// ExecuteAll submits every chunk of the transaction in order and returns a response per chunk.
// The transaction is frozen with the client first if needed, and signed by the operator if the
// operator has not signed it yet.
//
// After a failure, ExecuteAll may be called again. The same transaction IDs and bodies are
// sent, so chunks that were accepted before the failure are submitted again and rejected by
// the network as duplicates
func (t *Transaction) ExecuteAll(
	ctx context.Context,
	client protocol.Client,
) ([]Response, error) {
	switch {
	case t.state == protocol.StateBuilding:
		if err := t.FreezeWith(client); err != nil {
			return nil, err
		}
	case !t.stateMap.Allows(t.state, protocol.EventExecute):
		return nil, protocol.IllegalStateError{State: t.state, Event: protocol.EventExecute}
	}
	if client.AutoValidateChecksums() {
		if err := t.validateChecksums(client.LedgerId()); err != nil {
			return nil, err
		}
	}
	if operator := client.Operator(); operator != nil && !t.IsSignedBy(operator.PublicKey) {
		if err := t.SignWith(operator.PublicKey, operator.Signer); err != nil {
			return nil, err
		}
	}
	waitForReceipt := false
	if chunked, ok := t.body.(chunkedBody); ok {
		waitForReceipt = chunked.waitForReceipt()
	}
	logger := client.Logger()
	if logger == nil {
		logger = slog.Default()
	}
	responses := make([]Response, 0, len(t.chunks))
	for i := range t.chunks {
		resp, err := t.executeChunk(ctx, client, i)
		if err != nil {
			if len(t.chunks) > 1 {
				return responses, fmt.Errorf("chunk %d of %d: %w", i+1, len(t.chunks), err)
			}
			return responses, err
		}
		responses = append(responses, resp)
		if waitForReceipt && i < len(t.chunks)-1 {
			logger.Debug(
				"waiting for chunk receipt",
				"transaction_id", resp.TransactionId.String(),
				"chunk", i+1,
			)
			if _, err := resp.GetReceipt(ctx, client); err != nil {
				return responses, fmt.Errorf("chunk %d of %d: %w", i+1, len(t.chunks), err)
			}
		}
	}
	if err := t.transition(protocol.EventExecute); err != nil {
		return responses, err
	}
	return responses, nil
}

func (t *Transaction) validateChecksums(ledgerId ledger.LedgerId) error {
	if err := t.body.ValidateChecksums(ledgerId); err != nil {
		return err
	}
	if err := t.transactionId.AccountId.ValidateChecksum(ledgerId); err != nil {
		return err
	}
	return ledger.ValidateChecksums(ledgerId, t.nodeAccountIds...)
}

func (t *Transaction) executeChunk(
	ctx context.Context,
	client protocol.Client,
	chunk int,
) (Response, error) {
	transactionId := t.chunkTransactionIds[chunk]
	call := protocol.Call[Response]{
		Method:         t.body.Method(),
		NodeAccountIds: t.nodeAccountIds,
		Cursor:         &t.cursor,
		TransactionId:  &transactionId,
		MakeRequest: func(nodeAccountId ledger.AccountId) ([]byte, error) {
			signedBytes, err := t.signedBytes(chunk, nodeAccountId)
			if err != nil {
				return nil, err
			}
			return cbor.Encode(
				&protocol.Transaction{
					SignedTransactionBytes: signedBytes,
				},
			)
		},
		MapResponse: func(nodeAccountId ledger.AccountId, data []byte) (Response, ledger.Status, error) {
			var txResp protocol.TransactionResponse
			if err := cbor.DecodeStrict(data, &txResp); err != nil {
				return Response{}, ledger.StatusUnknown, err
			}
			if txResp.NodeTransactionPrecheckCode != ledger.StatusOk {
				return Response{}, txResp.NodeTransactionPrecheckCode, nil
			}
			signedBytes, err := t.signedBytes(chunk, nodeAccountId)
			if err != nil {
				return Response{}, ledger.StatusUnknown, err
			}
			return Response{
				NodeAccountId:   nodeAccountId,
				TransactionId:   transactionId,
				TransactionHash: transactionHash(signedBytes),
				ValidateStatus:  true,
			}, ledger.StatusOk, nil
		},
	}
	result, err := protocol.Execute(ctx, client, call)
	if err != nil {
		return Response{}, err
	}
	return result.Value, nil
}

func (t *Transaction) signedBytes(chunk int, nodeAccountId ledger.AccountId) ([]byte, error) {
	idx := slices.IndexFunc(t.nodeAccountIds, nodeAccountId.Equal)
	if idx < 0 {
		return nil, ErrBodyNotFound
	}
	return cbor.Encode(t.signed[chunk][idx])
}
