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
	"errors"

	"github.com/blinklabs-io/gohiero/cbor"
)

// SignaturePair is a signature along with the public key that made it
type SignaturePair struct {
	PublicKey PublicKey
	Signature []byte
}

type signaturePairWire struct {
	PubKeyPrefix   []byte `cbor:"1,keyasint,omitempty"`
	Ed25519        []byte `cbor:"2,keyasint,omitempty"`
	EcdsaSecp256k1 []byte `cbor:"3,keyasint,omitempty"`
}

func (p SignaturePair) MarshalCBOR() ([]byte, error) {
	tmp := signaturePairWire{
		PubKeyPrefix: p.PublicKey.ToBytesRaw(),
	}
	switch p.PublicKey.Type() {
	case KeyTypeEd25519:
		tmp.Ed25519 = p.Signature
	case KeyTypeEcdsaSecp256k1:
		tmp.EcdsaSecp256k1 = p.Signature
	default:
		return nil, ErrUnsupportedKeyType
	}
	return cbor.Encode(&tmp)
}

func (p *SignaturePair) UnmarshalCBOR(data []byte) error {
	var tmp signaturePairWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	var err error
	switch {
	case tmp.Ed25519 != nil:
		p.PublicKey, err = PublicKeyFromBytesEd25519(tmp.PubKeyPrefix)
		p.Signature = tmp.Ed25519
	case tmp.EcdsaSecp256k1 != nil:
		p.PublicKey, err = PublicKeyFromBytesEcdsa(tmp.PubKeyPrefix)
		p.Signature = tmp.EcdsaSecp256k1
	default:
		return errors.New("signature pair has no signature")
	}
	return err
}

// SignatureMap holds at most one signature per public key, in insertion order
type SignatureMap struct {
	pairs []SignaturePair
	index map[PublicKey]int
}

func NewSignatureMap() *SignatureMap {
	return &SignatureMap{
		index: make(map[PublicKey]int),
	}
}

// Add adds a signature pair. A pair for a key that is already present replaces the existing
// signature in place
func (m *SignatureMap) Add(pair SignaturePair) {
	if m.index == nil {
		m.index = make(map[PublicKey]int)
	}
	if idx, ok := m.index[pair.PublicKey]; ok {
		m.pairs[idx] = pair
		return
	}
	m.index[pair.PublicKey] = len(m.pairs)
	m.pairs = append(m.pairs, pair)
}

// Get returns the signature for the given public key
func (m *SignatureMap) Get(publicKey PublicKey) ([]byte, bool) {
	if m == nil {
		return nil, false
	}
	idx, ok := m.index[publicKey]
	if !ok {
		return nil, false
	}
	return m.pairs[idx].Signature, true
}

func (m *SignatureMap) Contains(publicKey PublicKey) bool {
	_, ok := m.Get(publicKey)
	return ok
}

func (m *SignatureMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns a copy of the signature pairs in insertion order
func (m *SignatureMap) Pairs() []SignaturePair {
	if m == nil {
		return nil
	}
	ret := make([]SignaturePair, len(m.pairs))
	copy(ret, m.pairs)
	return ret
}

// Signers returns the set of public keys that have signed
func (m *SignatureMap) Signers() SignerSet {
	ret := make(SignerSet)
	if m == nil {
		return ret
	}
	for _, pair := range m.pairs {
		ret.Add(pair.PublicKey)
	}
	return ret
}

// Clone returns a deep copy of the map
func (m *SignatureMap) Clone() *SignatureMap {
	ret := NewSignatureMap()
	if m == nil {
		return ret
	}
	for _, pair := range m.pairs {
		sig := make([]byte, len(pair.Signature))
		copy(sig, pair.Signature)
		ret.Add(SignaturePair{PublicKey: pair.PublicKey, Signature: sig})
	}
	return ret
}

type signatureMapWire struct {
	SigPair []SignaturePair `cbor:"1,keyasint,omitempty"`
}

func (m *SignatureMap) MarshalCBOR() ([]byte, error) {
	tmp := signatureMapWire{
		SigPair: m.pairs,
	}
	return cbor.Encode(&tmp)
}

func (m *SignatureMap) UnmarshalCBOR(data []byte) error {
	var tmp signatureMapWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.pairs = nil
	m.index = make(map[PublicKey]int)
	for _, pair := range tmp.SigPair {
		m.Add(pair)
	}
	return nil
}

// SignerSet is a set of public keys that have provided signatures
type SignerSet map[PublicKey]struct{}

func NewSignerSet(publicKeys ...PublicKey) SignerSet {
	ret := make(SignerSet, len(publicKeys))
	for _, publicKey := range publicKeys {
		ret.Add(publicKey)
	}
	return ret
}

func (s SignerSet) Add(publicKey PublicKey) {
	s[publicKey] = struct{}{}
}

func (s SignerSet) Contains(publicKey PublicKey) bool {
	_, ok := s[publicKey]
	return ok
}
