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

package protocol

import (
	"errors"
	"math"
)

const (
	DefaultMaxChunkSize = 1024
	DefaultMaxChunks    = 20
)

// ChunkCount returns the number of chunks needed for a payload of the given length. An empty
// payload still needs one chunk
func ChunkCount(payloadLength int, maxChunkSize int) int {
	if payloadLength == 0 || maxChunkSize <= 0 {
		return 1
	}
	return (payloadLength + maxChunkSize - 1) / maxChunkSize
}

// SplitChunks splits the payload into ordered chunks of at most maxChunkSize bytes. The chunks
// share the payload's backing array
func SplitChunks(payload []byte, maxChunkSize int, maxChunks int) ([][]byte, error) {
	if maxChunkSize <= 0 {
		return nil, errors.New("max chunk size must be positive")
	}
	count := ChunkCount(len(payload), maxChunkSize)
	if count > maxChunks {
		return nil, ChunkCountExceededError{
			Required: clampUint32(count),
			Max:      clampUint32(maxChunks),
		}
	}
	ret := make([][]byte, 0, count)
	for i := range count {
		start := i * maxChunkSize
		end := min(start+maxChunkSize, len(payload))
		ret = append(ret, payload[start:end:end])
	}
	return ret, nil
}

// ReassembleChunks concatenates the chunks in order. It also returns the size of the largest
// chunk, which becomes the max chunk size of the combined payload
func ReassembleChunks(chunks [][]byte) ([]byte, int) {
	var total, largest int
	for _, chunk := range chunks {
		total += len(chunk)
		largest = max(largest, len(chunk))
	}
	ret := make([]byte, 0, total)
	for _, chunk := range chunks {
		ret = append(ret, chunk...)
	}
	return ret, largest
}

func clampUint32(val int) uint32 {
	if val < 0 {
		return 0
	}
	if val > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(val) // #nosec G115
}
