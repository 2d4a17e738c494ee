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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/gohiero/cbor"
)

// TransactionId uniquely identifies a transaction by its payer and valid start time
type TransactionId struct {
	AccountId  AccountId
	ValidStart time.Time
	Nonce      int32
	Scheduled  bool
}

func NewTransactionId(accountId AccountId, validStart time.Time) TransactionId {
	return TransactionId{
		AccountId:  accountId,
		ValidStart: validStart.UTC(),
	}
}

func (t TransactionId) IsZero() bool {
	return t.AccountId.IsZero() && t.ValidStart.IsZero() && t.Nonce == 0 &&
		!t.Scheduled
}

func (t TransactionId) Equal(other TransactionId) bool {
	return t.AccountId.Equal(other.AccountId) &&
		t.ValidStart.Equal(other.ValidStart) &&
		t.Nonce == other.Nonce &&
		t.Scheduled == other.Scheduled
}

// Chained returns the transaction ID for chunk index i of a chunked transaction, which is
// the valid start moved forward by i nanoseconds
func (t TransactionId) Chained(i int) TransactionId {
	t.ValidStart = t.ValidStart.Add(time.Duration(i))
	return t
}

// String returns the ID in "shard.realm.num@seconds.nanos[?scheduled][/nonce]" form
func (t TransactionId) String() string {
	var sb strings.Builder
	sb.WriteString(t.AccountId.withoutChecksum().String())
	sb.WriteString("@")
	sb.WriteString(strconv.FormatInt(t.ValidStart.Unix(), 10))
	sb.WriteString(".")
	sb.WriteString(fmt.Sprintf("%09d", t.ValidStart.Nanosecond()))
	if t.Scheduled {
		sb.WriteString("?scheduled")
	}
	if t.Nonce != 0 {
		sb.WriteString("/")
		sb.WriteString(strconv.FormatInt(int64(t.Nonce), 10))
	}
	return sb.String()
}

// ParseTransactionId parses the form produced by TransactionId.String
func ParseTransactionId(str string) (TransactionId, error) {
	var ret TransactionId
	accountStr, rest, found := strings.Cut(str, "@")
	if !found {
		return ret, fmt.Errorf("%w: missing '@': %s", ErrInvalidTransactionId, str)
	}
	accountId, err := ParseEntityId(accountStr)
	if err != nil {
		return ret, fmt.Errorf("%w: %w", ErrInvalidTransactionId, err)
	}
	if before, after, found := strings.Cut(rest, "/"); found {
		nonce, err := strconv.ParseInt(after, 10, 32)
		if err != nil {
			return ret, fmt.Errorf("%w: bad nonce: %s", ErrInvalidTransactionId, str)
		}
		ret.Nonce = int32(nonce)
		rest = before
	}
	if before, found := strings.CutSuffix(rest, "?scheduled"); found {
		ret.Scheduled = true
		rest = before
	}
	secsStr, nanosStr, found := strings.Cut(rest, ".")
	if !found {
		return ret, fmt.Errorf("%w: missing nanoseconds: %s", ErrInvalidTransactionId, str)
	}
	secs, err := strconv.ParseInt(secsStr, 10, 64)
	if err != nil {
		return ret, fmt.Errorf("%w: bad seconds: %s", ErrInvalidTransactionId, str)
	}
	nanos, err := strconv.ParseInt(nanosStr, 10, 64)
	if err != nil || nanos < 0 || nanos >= int64(time.Second) {
		return ret, fmt.Errorf("%w: bad nanoseconds: %s", ErrInvalidTransactionId, str)
	}
	ret.AccountId = accountId
	ret.ValidStart = time.Unix(secs, nanos).UTC()
	return ret, nil
}

type transactionIdWire struct {
	ValidStart Timestamp `cbor:"1,keyasint,omitzero"`
	AccountId  AccountId `cbor:"2,keyasint,omitzero"`
	Scheduled  bool      `cbor:"3,keyasint,omitempty"`
	Nonce      int32     `cbor:"4,keyasint,omitempty"`
}

func (t TransactionId) MarshalCBOR() ([]byte, error) {
	tmp := transactionIdWire{
		AccountId: t.AccountId,
		Scheduled: t.Scheduled,
		Nonce:     t.Nonce,
	}
	if !t.ValidStart.IsZero() {
		tmp.ValidStart = NewTimestamp(t.ValidStart)
	}
	return cbor.Encode(&tmp)
}

func (t *TransactionId) UnmarshalCBOR(data []byte) error {
	var tmp transactionIdWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	t.AccountId = tmp.AccountId
	t.Scheduled = tmp.Scheduled
	t.Nonce = tmp.Nonce
	t.ValidStart = time.Time{}
	if !tmp.ValidStart.IsZero() {
		t.ValidStart = tmp.ValidStart.Time()
	}
	return nil
}
