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

// Transfer is a single hbar balance change within a record
type Transfer struct {
	AccountId  AccountId `cbor:"1,keyasint,omitzero"`
	Amount     Hbar      `cbor:"2,keyasint,omitempty"`
	IsApproval bool      `cbor:"3,keyasint,omitempty"`
}

// Record is the full consensus result of a transaction
type Record struct {
	Receipt            Receipt       `cbor:"1,keyasint"`
	TransactionHash    []byte        `cbor:"2,keyasint,omitempty"`
	ConsensusTimestamp Timestamp     `cbor:"3,keyasint,omitzero"`
	TransactionId      TransactionId `cbor:"4,keyasint,omitzero"`
	Memo               string        `cbor:"5,keyasint,omitempty"`
	TransactionFee     Hbar          `cbor:"6,keyasint,omitempty"`
	Transfers          []Transfer    `cbor:"7,keyasint,omitempty"`
	ScheduleRef        *ScheduleId   `cbor:"8,keyasint,omitempty"`
	// Populated by the record query
	Duplicates []Record `cbor:"-"`
	Children   []Record `cbor:"-"`
}

// ValidateStatus applies the receipt status check to the record's receipt. Duplicate and child
// records are left for the caller to check
func (r *Record) ValidateStatus(validate bool) error {
	if r.Receipt.TransactionId == nil && !r.TransactionId.IsZero() {
		txId := r.TransactionId
		r.Receipt.TransactionId = &txId
	}
	return r.Receipt.ValidateStatus(validate)
}
