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
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const (
	ecdsaCompressedPublicKeySize   = 33
	ecdsaUncompressedPublicKeySize = 65
	ecdsaSignatureSize             = 64
)

// PublicKey is an Ed25519 or ECDSA(secp256k1) public key. ECDSA keys are always held in
// compressed form.
//
// PublicKey values are comparable and can be used as map keys
type PublicKey struct {
	keyType KeyType
	raw     string
}

// PublicKeyFromBytesEd25519 returns the public key for 32 raw bytes, which must be a valid
// curve point
func PublicKeyFromBytesEd25519(data []byte) (PublicKey, error) {
	if len(data) != ed25519.PublicKeySize {
		return PublicKey{}, newKeyParseError(
			fmt.Sprintf(
				"Ed25519 public key must be %d bytes, got %d",
				ed25519.PublicKeySize,
				len(data),
			),
			nil,
		)
	}
	if _, err := new(edwards25519.Point).SetBytes(data); err != nil {
		return PublicKey{}, newKeyParseError("Ed25519 public key is not a valid point", err)
	}
	return PublicKey{
		keyType: KeyTypeEd25519,
		raw:     string(data),
	}, nil
}

// PublicKeyFromBytesEcdsa returns the public key for 33 byte compressed or 65 byte
// uncompressed secp256k1 point
func PublicKeyFromBytesEcdsa(data []byte) (PublicKey, error) {
	switch len(data) {
	case ecdsaCompressedPublicKeySize:
		if _, err := crypto.DecompressPubkey(data); err != nil {
			return PublicKey{}, newKeyParseError("invalid compressed ECDSA public key", err)
		}
		return PublicKey{
			keyType: KeyTypeEcdsaSecp256k1,
			raw:     string(data),
		}, nil
	case ecdsaUncompressedPublicKeySize:
		pub, err := crypto.UnmarshalPubkey(data)
		if err != nil {
			return PublicKey{}, newKeyParseError("invalid uncompressed ECDSA public key", err)
		}
		return PublicKey{
			keyType: KeyTypeEcdsaSecp256k1,
			raw:     string(crypto.CompressPubkey(pub)),
		}, nil
	}
	return PublicKey{}, newKeyParseError(
		fmt.Sprintf("ECDSA public key must be 33 or 65 bytes, got %d", len(data)),
		nil,
	)
}

// PublicKeyFromBytesDer parses a SubjectPublicKeyInfo encoded public key
func PublicKeyFromBytesDer(data []byte) (PublicKey, error) {
	key, err := parseDer(data)
	if err != nil {
		return PublicKey{}, err
	}
	if key.private {
		return PublicKey{}, newKeyParseError("expected public key, found private key", nil)
	}
	return publicKeyFromRaw(key.keyType, key.raw)
}

// PublicKeyFromBytes parses a public key from DER or raw bytes. Raw 32 byte keys are assumed
// to be Ed25519
func PublicKeyFromBytes(data []byte) (PublicKey, error) {
	switch len(data) {
	case ed25519.PublicKeySize:
		return PublicKeyFromBytesEd25519(data)
	case ecdsaCompressedPublicKeySize, ecdsaUncompressedPublicKeySize:
		if data[0] != 0x30 {
			return PublicKeyFromBytesEcdsa(data)
		}
	}
	return PublicKeyFromBytesDer(data)
}

// ParsePublicKey parses a hex encoded public key in raw or DER form
func ParsePublicKey(str string) (PublicKey, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return PublicKey{}, newKeyParseError("invalid hex", err)
	}
	return PublicKeyFromBytes(data)
}

func publicKeyFromRaw(keyType KeyType, raw []byte) (PublicKey, error) {
	switch keyType {
	case KeyTypeEd25519:
		return PublicKeyFromBytesEd25519(raw)
	case KeyTypeEcdsaSecp256k1:
		return PublicKeyFromBytesEcdsa(raw)
	}
	return PublicKey{}, newKeyParseError(keyType.String(), ErrUnsupportedKeyType)
}

func (k PublicKey) Type() KeyType {
	return k.keyType
}

func (k PublicKey) IsZero() bool {
	return k.raw == ""
}

func (k PublicKey) IsEd25519() bool {
	return k.keyType == KeyTypeEd25519
}

func (k PublicKey) IsEcdsa() bool {
	return k.keyType == KeyTypeEcdsaSecp256k1
}

func (k PublicKey) Equal(other PublicKey) bool {
	return k == other
}

// ToBytesRaw returns the raw key bytes (compressed for ECDSA)
func (k PublicKey) ToBytesRaw() []byte {
	return []byte(k.raw)
}

// ToBytesDer returns the SubjectPublicKeyInfo encoding of the key
func (k PublicKey) ToBytesDer() []byte {
	return encodePublicKeyDer(k.keyType, []byte(k.raw))
}

// String returns the hex of the DER encoding
func (k PublicKey) String() string {
	return hex.EncodeToString(k.ToBytesDer())
}

func (k PublicKey) StringRaw() string {
	return hex.EncodeToString([]byte(k.raw))
}

// Verify checks a signature made over message by the matching private key
func (k PublicKey) Verify(message []byte, signature []byte) bool {
	switch k.keyType {
	case KeyTypeEd25519:
		if len(signature) != ed25519.SignatureSize {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(k.raw), message, signature)
	case KeyTypeEcdsaSecp256k1:
		if len(signature) != ecdsaSignatureSize {
			return false
		}
		return crypto.VerifySignature([]byte(k.raw), keccak256(message), signature)
	}
	return false
}

// ToEvmAddress returns the EVM address derived from an ECDSA public key
func (k PublicKey) ToEvmAddress() (common.Address, error) {
	if k.keyType != KeyTypeEcdsaSecp256k1 {
		return common.Address{}, fmt.Errorf(
			"EVM address requires an ECDSA key: %w",
			ErrUnsupportedKeyType,
		)
	}
	pub, err := crypto.DecompressPubkey([]byte(k.raw))
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// ToAccountId returns the account ID that uses this key as its alias
func (k PublicKey) ToAccountId(shard, realm uint64) (ledger.AccountId, error) {
	aliasBytes, err := NewSingleKey(k).ToBytes()
	if err != nil {
		return ledger.AccountId{}, err
	}
	return ledger.NewAccountIdFromAlias(shard, realm, aliasBytes), nil
}

// HasPrefix reports whether the raw key bytes start with prefix
func (k PublicKey) HasPrefix(prefix []byte) bool {
	return bytes.HasPrefix([]byte(k.raw), prefix)
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
