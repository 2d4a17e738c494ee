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
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/ethereum/go-ethereum/common"
)

// EntityId identifies an entity on the ledger by shard, realm and number. An account may
// instead be identified by an EVM address or key alias in place of the number.
//
// EntityId values are immutable and comparable
type EntityId struct {
	shard      uint64
	realm      uint64
	num        uint64
	evmAddress common.Address
	hasEvm     bool
	alias      string
	checksum   string
}

type (
	AccountId  = EntityId
	FileId     = EntityId
	TopicId    = EntityId
	TokenId    = EntityId
	ContractId = EntityId
	ScheduleId = EntityId
)

func NewEntityId(shard, realm, num uint64) EntityId {
	return EntityId{
		shard: shard,
		realm: realm,
		num:   num,
	}
}

// NewEntityIdFromEvmAddress returns an entity ID that is addressed by its EVM address
func NewEntityIdFromEvmAddress(
	shard, realm uint64,
	addr common.Address,
) EntityId {
	return EntityId{
		shard:      shard,
		realm:      realm,
		evmAddress: addr,
		hasEvm:     true,
	}
}

// NewAccountIdFromAlias returns an account ID that is addressed by the encoded bytes of a
// public key
func NewAccountIdFromAlias(shard, realm uint64, alias []byte) AccountId {
	return EntityId{
		shard: shard,
		realm: realm,
		alias: string(alias),
	}
}

func (id EntityId) Shard() uint64 {
	return id.shard
}

func (id EntityId) Realm() uint64 {
	return id.realm
}

func (id EntityId) Num() uint64 {
	return id.num
}

// EvmAddress returns the EVM address for the entity, if it is addressed that way
func (id EntityId) EvmAddress() (common.Address, bool) {
	return id.evmAddress, id.hasEvm
}

// Alias returns the key alias for the account, if it is addressed that way
func (id EntityId) Alias() []byte {
	if id.alias == "" {
		return nil
	}
	return []byte(id.alias)
}

// Checksum returns the checksum carried by the ID, which may be empty
func (id EntityId) Checksum() string {
	return id.checksum
}

func (id EntityId) IsZero() bool {
	return id == EntityId{}
}

func (id EntityId) isNumeric() bool {
	return !id.hasEvm && id.alias == ""
}

// Equal compares two IDs while ignoring any carried checksum
func (id EntityId) Equal(other EntityId) bool {
	return id.withoutChecksum() == other.withoutChecksum()
}

func (id EntityId) withoutChecksum() EntityId {
	id.checksum = ""
	return id
}

func (id EntityId) String() string {
	var last string
	switch {
	case id.hasEvm:
		last = hex.EncodeToString(id.evmAddress.Bytes())
	case id.alias != "":
		last = hex.EncodeToString([]byte(id.alias))
	default:
		last = strconv.FormatUint(id.num, 10)
	}
	ret := fmt.Sprintf("%d.%d.%s", id.shard, id.realm, last)
	if id.checksum != "" {
		ret += "-" + id.checksum
	}
	return ret
}

// WithChecksum returns a copy of the ID carrying the checksum calculated for the given ledger
func (id EntityId) WithChecksum(ledgerId LedgerId) (EntityId, error) {
	if !id.isNumeric() {
		return EntityId{}, ErrChecksumNotSupported
	}
	id.checksum = calculateChecksum(ledgerId, id.withoutChecksum().String())
	return id, nil
}

// ToStringWithChecksum renders the ID in "shard.realm.num-checksum" form for the given ledger
func (id EntityId) ToStringWithChecksum(ledgerId LedgerId) (string, error) {
	tmpId, err := id.WithChecksum(ledgerId)
	if err != nil {
		return "", err
	}
	return tmpId.String(), nil
}

// ValidateChecksum checks the carried checksum, if any, against the given ledger. IDs without
// a checksum always pass
func (id EntityId) ValidateChecksum(ledgerId LedgerId) error {
	if id.checksum == "" || !id.isNumeric() {
		return nil
	}
	expected := calculateChecksum(ledgerId, id.withoutChecksum().String())
	if expected != id.checksum {
		return ChecksumValidationError{
			EntityId:         id,
			LedgerId:         ledgerId,
			ExpectedChecksum: expected,
			ActualChecksum:   id.checksum,
		}
	}
	return nil
}

// ParseEntityId parses an entity ID from its string form. Accepted forms are
// "shard.realm.num", "shard.realm.num-checksum", "shard.realm.<evm address hex>" and
// "shard.realm.<alias hex>"
func ParseEntityId(str string) (EntityId, error) {
	var checksum string
	idStr := str
	if before, after, found := strings.Cut(str, "-"); found {
		if !isValidChecksum(after) {
			return EntityId{}, fmt.Errorf("%w: malformed checksum: %s", ErrInvalidEntityId, str)
		}
		idStr = before
		checksum = after
	}
	parts := strings.Split(idStr, ".")
	if len(parts) != 3 {
		return EntityId{}, fmt.Errorf("%w: expected shard.realm.num: %s", ErrInvalidEntityId, str)
	}
	shard, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return EntityId{}, fmt.Errorf("%w: bad shard: %s", ErrInvalidEntityId, str)
	}
	realm, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return EntityId{}, fmt.Errorf("%w: bad realm: %s", ErrInvalidEntityId, str)
	}
	if num, err := strconv.ParseUint(parts[2], 10, 64); err == nil {
		ret := NewEntityId(shard, realm, num)
		ret.checksum = checksum
		return ret, nil
	}
	if checksum != "" {
		return EntityId{}, fmt.Errorf("%w: checksum on non-numeric ID: %s", ErrInvalidEntityId, str)
	}
	aliasBytes, err := hex.DecodeString(strings.TrimPrefix(parts[2], "0x"))
	if err != nil || len(aliasBytes) == 0 {
		return EntityId{}, fmt.Errorf("%w: bad num: %s", ErrInvalidEntityId, str)
	}
	if len(aliasBytes) == common.AddressLength {
		return NewEntityIdFromEvmAddress(shard, realm, common.BytesToAddress(aliasBytes)), nil
	}
	return NewAccountIdFromAlias(shard, realm, aliasBytes), nil
}

func isValidChecksum(checksum string) bool {
	if len(checksum) != checksumLength {
		return false
	}
	for _, c := range checksum {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

type entityIdWire struct {
	Shard uint64 `cbor:"1,keyasint,omitempty"`
	Realm uint64 `cbor:"2,keyasint,omitempty"`
	Num   uint64 `cbor:"3,keyasint,omitempty"`
	Alias []byte `cbor:"4,keyasint,omitempty"`
}

func (id EntityId) MarshalCBOR() ([]byte, error) {
	tmp := entityIdWire{
		Shard: id.shard,
		Realm: id.realm,
		Num:   id.num,
	}
	switch {
	case id.hasEvm:
		tmp.Alias = id.evmAddress.Bytes()
	case id.alias != "":
		tmp.Alias = []byte(id.alias)
	}
	return cbor.Encode(&tmp)
}

func (id *EntityId) UnmarshalCBOR(data []byte) error {
	var tmp entityIdWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	*id = NewEntityId(tmp.Shard, tmp.Realm, tmp.Num)
	switch {
	case len(tmp.Alias) == common.AddressLength:
		*id = NewEntityIdFromEvmAddress(tmp.Shard, tmp.Realm, common.BytesToAddress(tmp.Alias))
	case len(tmp.Alias) > 0:
		*id = NewAccountIdFromAlias(tmp.Shard, tmp.Realm, tmp.Alias)
	}
	return nil
}

// ValidateChecksums validates the checksums of all of the provided IDs against the given ledger,
// returning the first failure
func ValidateChecksums(ledgerId LedgerId, ids ...EntityId) error {
	for _, id := range ids {
		if err := id.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}
	return nil
}
