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
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// TopicMessageSubmitTransaction submits a message to a consensus topic. Messages larger than
// the max chunk size are split into several transactions that share the first chunk's
// transaction ID in their chunk info
type TopicMessageSubmitTransaction struct {
	*Transaction
	chunkedData
	topicId ledger.TopicId
}

func NewTopicMessageSubmitTransaction() *TopicMessageSubmitTransaction {
	t := &TopicMessageSubmitTransaction{
		chunkedData: newChunkedData(),
	}
	t.Transaction = newTransaction(t)
	return t
}

func topicMessageSubmitFromWire(
	bodies []protocol.TransactionBody,
) (*TopicMessageSubmitTransaction, error) {
	t := NewTopicMessageSubmitTransaction()
	chunks := make([][]byte, 0, len(bodies))
	for _, body := range bodies {
		if body.ConsensusSubmitMessage == nil {
			return nil, ErrUnknownTransactionBody
		}
		chunks = append(chunks, body.ConsensusSubmitMessage.Message)
	}
	t.topicId = bodies[0].ConsensusSubmitMessage.TopicId
	t.chunkedData = chunkedFromWire(chunks)
	return t, nil
}

func (t *TopicMessageSubmitTransaction) SetTopicId(topicId ledger.TopicId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.topicId = topicId
	return nil
}

func (t *TopicMessageSubmitTransaction) TopicId() ledger.TopicId {
	return t.topicId
}

func (t *TopicMessageSubmitTransaction) SetMessage(message []byte) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.data = append([]byte{}, message...)
	return nil
}

func (t *TopicMessageSubmitTransaction) Message() []byte {
	return append([]byte{}, t.data...)
}

// SetMaxChunkSize sets the largest message slice sent in a single transaction
func (t *TopicMessageSubmitTransaction) SetMaxChunkSize(maxChunkSize int) error {
	if err := t.modify(); err != nil {
		return err
	}
	return t.setMaxChunkSize(maxChunkSize)
}

// SetMaxChunks sets the most transactions the message may be split into
func (t *TopicMessageSubmitTransaction) SetMaxChunks(maxChunks int) error {
	if err := t.modify(); err != nil {
		return err
	}
	return t.setMaxChunks(maxChunks)
}

func (t *TopicMessageSubmitTransaction) Method() protocol.Method {
	return protocol.MethodConsensusSubmitMessage
}

func (t *TopicMessageSubmitTransaction) WireBody(
	chunk ledger.ChunkInfo,
) (protocol.TransactionBody, error) {
	message, err := t.chunk(chunk.Current)
	if err != nil {
		return protocol.TransactionBody{}, err
	}
	body := &protocol.ConsensusSubmitMessageBody{
		TopicId: t.topicId,
		Message: message,
	}
	// Chunk info is only sent when the message is actually split
	if !chunk.IsSingle() {
		body.ChunkInfo = &chunk
	}
	return protocol.TransactionBody{
		ConsensusSubmitMessage: body,
	}, nil
}

func (t *TopicMessageSubmitTransaction) ValidateChecksums(ledgerId ledger.LedgerId) error {
	return t.topicId.ValidateChecksum(ledgerId)
}

func (t *TopicMessageSubmitTransaction) waitForReceipt() bool {
	return false
}
