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

package ledger

import (
	"github.com/blinklabs-io/gohiero/cbor"
)

// ChunkInfo describes the position of one chunk within a chunked transaction. Current is
// 0-based in memory and 1-based on the wire
type ChunkInfo struct {
	InitialTransactionId TransactionId
	Current              uint32
	Total                uint32
}

// NewChunkInfo returns the ChunkInfo for chunk index current out of total, enforcing the
// maximum chunk count
func NewChunkInfo(
	initial TransactionId,
	current uint32,
	total uint32,
	maxChunks uint32,
) (ChunkInfo, error) {
	if total > maxChunks {
		return ChunkInfo{}, ChunkCountExceededError{
			Required: total,
			Max:      maxChunks,
		}
	}
	if current >= total {
		return ChunkInfo{}, ChunkCountExceededError{
			Required: current + 1,
			Max:      total,
		}
	}
	return ChunkInfo{
		InitialTransactionId: initial,
		Current:              current,
		Total:                total,
	}, nil
}

// SingleChunk returns the ChunkInfo for a transaction that is not chunked
func SingleChunk(transactionId TransactionId) ChunkInfo {
	return ChunkInfo{
		InitialTransactionId: transactionId,
		Current:              0,
		Total:                1,
	}
}

func (c ChunkInfo) IsSingle() bool {
	return c.Total <= 1
}

// TransactionId returns the chained transaction ID for this chunk
func (c ChunkInfo) TransactionId() TransactionId {
	return c.InitialTransactionId.Chained(int(c.Current))
}

type chunkInfoWire struct {
	InitialTransactionId TransactionId `cbor:"1,keyasint,omitzero"`
	Number               uint32        `cbor:"2,keyasint,omitempty"`
	Total                uint32        `cbor:"3,keyasint,omitempty"`
}

func (c ChunkInfo) MarshalCBOR() ([]byte, error) {
	tmp := chunkInfoWire{
		InitialTransactionId: c.InitialTransactionId,
		Number:               c.Current + 1,
		Total:                c.Total,
	}
	return cbor.Encode(&tmp)
}

func (c *ChunkInfo) UnmarshalCBOR(data []byte) error {
	var tmp chunkInfoWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	c.InitialTransactionId = tmp.InitialTransactionId
	c.Total = tmp.Total
	c.Current = 0
	if tmp.Number > 0 {
		c.Current = tmp.Number - 1
	}
	return nil
}
