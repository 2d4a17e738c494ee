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
	"slices"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

var ErrInvalidChunkSettings = errors.New("max chunk size and max chunks must be positive")

// chunkedData holds a payload that is split into chunks at freeze time
type chunkedData struct {
	data         []byte
	maxChunkSize int
	maxChunks    int
}

func newChunkedData() chunkedData {
	return chunkedData{
		maxChunkSize: protocol.DefaultMaxChunkSize,
		maxChunks:    protocol.DefaultMaxChunks,
	}
}

// chunkedFromWire reassembles the payload of each chunk. The largest chunk becomes the max
// chunk size
func chunkedFromWire(chunks [][]byte) chunkedData {
	data, largest := protocol.ReassembleChunks(chunks)
	return chunkedData{
		data:         data,
		maxChunkSize: max(largest, 1),
		maxChunks:    max(len(chunks), protocol.DefaultMaxChunks),
	}
}

// ChunkCount returns the number of chunks the payload is split into. It fails with a
// ChunkCountExceededError if that is more than the maximum
func (c *chunkedData) ChunkCount() (int, error) {
	if c.maxChunkSize <= 0 || c.maxChunks <= 0 {
		return 0, ErrInvalidChunkSettings
	}
	count := protocol.ChunkCount(len(c.data), c.maxChunkSize)
	if count > c.maxChunks {
		return 0, ledger.ChunkCountExceededError{
			Required: uint32(count),       // #nosec G115
			Max:      uint32(c.maxChunks), // #nosec G115
		}
	}
	return count, nil
}

func (c *chunkedData) MaxChunks() int {
	return c.maxChunks
}

func (c *chunkedData) MaxChunkSize() int {
	return c.maxChunkSize
}

func (c *chunkedData) setMaxChunkSize(maxChunkSize int) error {
	if maxChunkSize <= 0 {
		return ErrInvalidChunkSettings
	}
	c.maxChunkSize = maxChunkSize
	return nil
}

func (c *chunkedData) setMaxChunks(maxChunks int) error {
	if maxChunks <= 0 {
		return ErrInvalidChunkSettings
	}
	c.maxChunks = maxChunks
	return nil
}

// chunk returns the payload of the chunk at the given index
func (c *chunkedData) chunk(idx uint32) ([]byte, error) {
	chunks, err := protocol.SplitChunks(c.data, c.maxChunkSize, c.maxChunks)
	if err != nil {
		return nil, err
	}
	if int(idx) >= len(chunks) {
		return nil, ledger.ChunkCountExceededError{
			Required: idx + 1,
			Max:      uint32(len(chunks)), // #nosec G115
		}
	}
	return slices.Clone(chunks[idx]), nil
}
