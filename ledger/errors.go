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
	"errors"
	"fmt"
)

var (
	ErrInvalidEntityId      = errors.New("invalid entity ID")
	ErrInvalidTransactionId = errors.New("invalid transaction ID")
	ErrChecksumNotSupported = errors.New("checksums are only supported for numeric entity IDs")
)

// ChecksumValidationError is returned when an entity ID carries a checksum that does not match
// the one calculated for the target ledger
type ChecksumValidationError struct {
	EntityId         EntityId
	LedgerId         LedgerId
	ExpectedChecksum string
	ActualChecksum   string
}

func (e ChecksumValidationError) Error() string {
	return fmt.Sprintf(
		"checksum mismatch for entity ID %s on ledger %s: expected %s, got %s",
		e.EntityId.withoutChecksum().String(),
		e.LedgerId.String(),
		e.ExpectedChecksum,
		e.ActualChecksum,
	)
}

// ReceiptStatusError is returned when a receipt with a non-success status is validated
type ReceiptStatusError struct {
	Status        Status
	TransactionId *TransactionId
}

func (e ReceiptStatusError) Error() string {
	if e.TransactionId == nil {
		return fmt.Sprintf("receipt failed with status %s", e.Status.String())
	}
	return fmt.Sprintf(
		"receipt for transaction %s failed with status %s",
		e.TransactionId.String(),
		e.Status.String(),
	)
}

// ChunkCountExceededError is returned when a payload needs more chunks than allowed
type ChunkCountExceededError struct {
	Required uint32
	Max      uint32
}

func (e ChunkCountExceededError) Error() string {
	return fmt.Sprintf(
		"payload requires %d chunks, which exceeds the maximum of %d",
		e.Required,
		e.Max,
	)
}
