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

package keys

import (
	"fmt"

	"github.com/blinklabs-io/gohiero/cbor"
)

// Key is either a single public key or a list of keys. A list without a threshold requires
// all of its members, while a list with threshold t requires any t of them. Lists nest to
// arbitrary depth.
//
// Key values are immutable
type Key struct {
	publicKey PublicKey
	isList    bool
	members   []Key
	threshold uint32
}

func NewSingleKey(publicKey PublicKey) Key {
	return Key{
		publicKey: publicKey,
	}
}

// NewKeyList returns a key list that requires all of its members
func NewKeyList(members ...Key) Key {
	tmpMembers := make([]Key, len(members))
	copy(tmpMembers, members)
	return Key{
		isList:  true,
		members: tmpMembers,
	}
}

// NewThresholdKey returns a key list that requires threshold of its members. The threshold
// must be between 1 and the number of members
func NewThresholdKey(threshold uint32, members ...Key) (Key, error) {
	if threshold == 0 || int(threshold) > len(members) {
		return Key{}, fmt.Errorf(
			"%w: threshold %d with %d members",
			ErrInvalidThreshold,
			threshold,
			len(members),
		)
	}
	ret := NewKeyList(members...)
	ret.threshold = threshold
	return ret, nil
}

func (k Key) IsList() bool {
	return k.isList
}

// PublicKey returns the public key of a single key
func (k Key) PublicKey() (PublicKey, bool) {
	if k.isList {
		return PublicKey{}, false
	}
	return k.publicKey, true
}

// Members returns a copy of the members of a key list
func (k Key) Members() []Key {
	ret := make([]Key, len(k.members))
	copy(ret, k.members)
	return ret
}

// Threshold returns the threshold of a key list, if it has one
func (k Key) Threshold() (uint32, bool) {
	return k.threshold, k.threshold > 0
}

// PublicKeys returns every public key referenced by the key, depth first
func (k Key) PublicKeys() []PublicKey {
	if !k.isList {
		return []PublicKey{k.publicKey}
	}
	var ret []PublicKey
	for _, member := range k.members {
		ret = append(ret, member.PublicKeys()...)
	}
	return ret
}

// IsSatisfiedBy reports whether the signers satisfy the key
func (k Key) IsSatisfiedBy(signers SignerSet) bool {
	if !k.isList {
		return signers.Contains(k.publicKey)
	}
	satisfied := 0
	for _, member := range k.members {
		if member.IsSatisfiedBy(signers) {
			satisfied++
		}
	}
	if k.threshold > 0 {
		return satisfied >= int(k.threshold)
	}
	return satisfied == len(k.members)
}

// IsSatisfiedBy reports whether the signers satisfy the key
func IsSatisfiedBy(key Key, signers SignerSet) bool {
	return key.IsSatisfiedBy(signers)
}

func (k Key) String() string {
	if !k.isList {
		return k.publicKey.String()
	}
	if k.threshold > 0 {
		return fmt.Sprintf("ThresholdKey(%d, %v)", k.threshold, k.members)
	}
	return fmt.Sprintf("KeyList(%v)", k.members)
}

// ToBytes returns the wire encoding of the key
func (k Key) ToBytes() ([]byte, error) {
	return cbor.Encode(k)
}

// KeyFromBytes decodes a key from its wire encoding
func KeyFromBytes(data []byte) (Key, error) {
	var ret Key
	if err := cbor.DecodeStrict(data, &ret); err != nil {
		return Key{}, err
	}
	return ret, nil
}

type keyListWire struct {
	Keys []Key `cbor:"1,keyasint"`
}

type thresholdKeyWire struct {
	Threshold uint32       `cbor:"1,keyasint,omitempty"`
	Keys      *keyListWire `cbor:"2,keyasint,omitempty"`
}

type keyWire struct {
	Ed25519        []byte            `cbor:"1,keyasint,omitempty"`
	EcdsaSecp256k1 []byte            `cbor:"2,keyasint,omitempty"`
	KeyList        *keyListWire      `cbor:"3,keyasint,omitempty"`
	ThresholdKey   *thresholdKeyWire `cbor:"4,keyasint,omitempty"`
}

func (k Key) MarshalCBOR() ([]byte, error) {
	var tmp keyWire
	switch {
	case k.isList && k.threshold > 0:
		tmp.ThresholdKey = &thresholdKeyWire{
			Threshold: k.threshold,
			Keys:      &keyListWire{Keys: k.members},
		}
	case k.isList:
		members := k.members
		if members == nil {
			members = []Key{}
		}
		tmp.KeyList = &keyListWire{Keys: members}
	case k.publicKey.IsEd25519():
		tmp.Ed25519 = k.publicKey.ToBytesRaw()
	case k.publicKey.IsEcdsa():
		tmp.EcdsaSecp256k1 = k.publicKey.ToBytesRaw()
	default:
		return nil, fmt.Errorf("cannot encode empty key: %w", ErrUnsupportedKeyType)
	}
	return cbor.Encode(&tmp)
}

func (k *Key) UnmarshalCBOR(data []byte) error {
	var tmp keyWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	switch {
	case tmp.Ed25519 != nil:
		publicKey, err := PublicKeyFromBytesEd25519(tmp.Ed25519)
		if err != nil {
			return err
		}
		*k = NewSingleKey(publicKey)
	case tmp.EcdsaSecp256k1 != nil:
		publicKey, err := PublicKeyFromBytesEcdsa(tmp.EcdsaSecp256k1)
		if err != nil {
			return err
		}
		*k = NewSingleKey(publicKey)
	case tmp.KeyList != nil:
		*k = NewKeyList(tmp.KeyList.Keys...)
	case tmp.ThresholdKey != nil:
		var members []Key
		if tmp.ThresholdKey.Keys != nil {
			members = tmp.ThresholdKey.Keys.Keys
		}
		tmpKey, err := NewThresholdKey(tmp.ThresholdKey.Threshold, members...)
		if err != nil {
			return err
		}
		*k = tmpKey
	default:
		return newKeyParseError("key has no recognized variant", ErrUnsupportedKeyType)
	}
	return nil
}
