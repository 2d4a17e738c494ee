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

// ExchangeRate is the exchange rate between hbars and US cents
type ExchangeRate struct {
	Hbars          int32     `cbor:"1,keyasint,omitempty"`
	Cents          int32     `cbor:"2,keyasint,omitempty"`
	ExpirationTime Timestamp `cbor:"3,keyasint,omitzero"`
}

type ExchangeRateSet struct {
	CurrentRate ExchangeRate `cbor:"1,keyasint"`
	NextRate    ExchangeRate `cbor:"2,keyasint"`
}

// Receipt is the consensus outcome of a transaction
type Receipt struct {
	Status                  Status           `cbor:"1,keyasint,omitempty"`
	AccountId               *AccountId       `cbor:"2,keyasint,omitempty"`
	FileId                  *FileId          `cbor:"3,keyasint,omitempty"`
	ContractId              *ContractId      `cbor:"4,keyasint,omitempty"`
	TopicId                 *TopicId         `cbor:"5,keyasint,omitempty"`
	TokenId                 *TokenId         `cbor:"6,keyasint,omitempty"`
	ScheduleId              *ScheduleId      `cbor:"7,keyasint,omitempty"`
	NodeId                  uint64           `cbor:"8,keyasint,omitempty"`
	TopicSequenceNumber     uint64           `cbor:"9,keyasint,omitempty"`
	TopicRunningHash        []byte           `cbor:"10,keyasint,omitempty"`
	TopicRunningHashVersion uint64           `cbor:"11,keyasint,omitempty"`
	TotalSupply             uint64           `cbor:"12,keyasint,omitempty"`
	ScheduledTransactionId  *TransactionId   `cbor:"13,keyasint,omitempty"`
	Serials                 []uint64         `cbor:"14,keyasint,omitempty"`
	ExchangeRate            *ExchangeRateSet `cbor:"15,keyasint,omitempty"`
	// The following are not part of the receipt itself and are populated by the receipt query
	TransactionId *TransactionId `cbor:"-"`
	Duplicates    []Receipt      `cbor:"-"`
	Children      []Receipt      `cbor:"-"`
}

// ValidateStatus returns a ReceiptStatusError if validate is set and the status is not SUCCESS.
// Only this receipt's own status is checked. Duplicate and child receipts carry their own
// status, and the caller may call ValidateStatus on each of them
func (r *Receipt) ValidateStatus(validate bool) error {
	if validate && r.Status != StatusSuccess {
		return ReceiptStatusError{
			Status:        r.Status,
			TransactionId: r.TransactionId,
		}
	}
	return nil
}
