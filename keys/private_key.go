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
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Signer produces a signature over the provided message
type Signer func(message []byte) ([]byte, error)

// PrivateKey is an Ed25519 or ECDSA(secp256k1) private key
type PrivateKey struct {
	keyType KeyType
	ed      ed25519.PrivateKey
	ec      *ecdsa.PrivateKey
}

// GenerateEd25519 returns a new random Ed25519 private key
func GenerateEd25519() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{
		keyType: KeyTypeEd25519,
		ed:      priv,
	}, nil
}

// GenerateEcdsa returns a new random ECDSA(secp256k1) private key
func GenerateEcdsa() (PrivateKey, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{
		keyType: KeyTypeEcdsaSecp256k1,
		ec:      priv,
	}, nil
}

// PrivateKeyFromBytesEd25519 returns the Ed25519 key for a 32 byte seed or a 64 byte
// seed+public key
func PrivateKeyFromBytesEd25519(data []byte) (PrivateKey, error) {
	switch len(data) {
	case ed25519.SeedSize:
		return PrivateKey{
			keyType: KeyTypeEd25519,
			ed:      ed25519.NewKeyFromSeed(data),
		}, nil
	case ed25519.PrivateKeySize:
		return PrivateKey{
			keyType: KeyTypeEd25519,
			ed:      ed25519.NewKeyFromSeed(data[:ed25519.SeedSize]),
		}, nil
	}
	return PrivateKey{}, newKeyParseError(
		fmt.Sprintf("Ed25519 private key must be 32 or 64 bytes, got %d", len(data)),
		nil,
	)
}

// PrivateKeyFromBytesEcdsa returns the ECDSA key for a 32 byte scalar
func PrivateKeyFromBytesEcdsa(data []byte) (PrivateKey, error) {
	priv, err := crypto.ToECDSA(data)
	if err != nil {
		return PrivateKey{}, newKeyParseError("invalid ECDSA private key", err)
	}
	return PrivateKey{
		keyType: KeyTypeEcdsaSecp256k1,
		ec:      priv,
	}, nil
}

// PrivateKeyFromBytesDer parses a PKCS#8 or SEC1 encoded private key
func PrivateKeyFromBytesDer(data []byte) (PrivateKey, error) {
	key, err := parseDer(data)
	if err != nil {
		return PrivateKey{}, err
	}
	if !key.private {
		return PrivateKey{}, newKeyParseError("expected private key, found public key", nil)
	}
	switch key.keyType {
	case KeyTypeEd25519:
		return PrivateKeyFromBytesEd25519(key.raw)
	case KeyTypeEcdsaSecp256k1:
		return PrivateKeyFromBytesEcdsa(key.raw)
	}
	return PrivateKey{}, newKeyParseError(key.keyType.String(), ErrUnsupportedKeyType)
}

// PrivateKeyFromBytes parses a private key from DER or raw bytes. Raw 32 byte keys are
// assumed to be Ed25519
func PrivateKeyFromBytes(data []byte) (PrivateKey, error) {
	if len(data) == ed25519.SeedSize || len(data) == ed25519.PrivateKeySize {
		return PrivateKeyFromBytesEd25519(data)
	}
	return PrivateKeyFromBytesDer(data)
}

// ParsePrivateKey parses a hex encoded private key in raw or DER form
func ParsePrivateKey(str string) (PrivateKey, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return PrivateKey{}, newKeyParseError("invalid hex", err)
	}
	return PrivateKeyFromBytes(data)
}

// ParsePrivateKeyEcdsa parses a hex encoded ECDSA private key in raw or DER form
func ParsePrivateKeyEcdsa(str string) (PrivateKey, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return PrivateKey{}, newKeyParseError("invalid hex", err)
	}
	if len(data) == 32 {
		return PrivateKeyFromBytesEcdsa(data)
	}
	key, err := PrivateKeyFromBytesDer(data)
	if err != nil {
		return PrivateKey{}, err
	}
	if !key.IsEcdsa() {
		return PrivateKey{}, newKeyParseError("expected ECDSA key", ErrUnsupportedKeyType)
	}
	return key, nil
}

func (k PrivateKey) Type() KeyType {
	return k.keyType
}

func (k PrivateKey) IsEd25519() bool {
	return k.keyType == KeyTypeEd25519
}

func (k PrivateKey) IsEcdsa() bool {
	return k.keyType == KeyTypeEcdsaSecp256k1
}

// PublicKey returns the public key matching this private key
func (k PrivateKey) PublicKey() PublicKey {
	switch k.keyType {
	case KeyTypeEd25519:
		return PublicKey{
			keyType: KeyTypeEd25519,
			raw:     string(k.ed.Public().(ed25519.PublicKey)),
		}
	case KeyTypeEcdsaSecp256k1:
		return PublicKey{
			keyType: KeyTypeEcdsaSecp256k1,
			raw:     string(crypto.CompressPubkey(&k.ec.PublicKey)),
		}
	}
	return PublicKey{}
}

// SignRaw returns the wire signature over message. Ed25519 signs the message itself, while
// ECDSA signs its Keccak-256 hash and drops the recovery ID
func (k PrivateKey) SignRaw(message []byte) ([]byte, error) {
	switch k.keyType {
	case KeyTypeEd25519:
		return ed25519.Sign(k.ed, message), nil
	case KeyTypeEcdsaSecp256k1:
		sig, err := crypto.Sign(keccak256(message), k.ec)
		if err != nil {
			return nil, err
		}
		return sig[:ecdsaSignatureSize], nil
	}
	return nil, ErrUnsupportedKeyType
}

// Sign signs message and returns the signature along with the public key
func (k PrivateKey) Sign(message []byte) (SignaturePair, error) {
	sig, err := k.SignRaw(message)
	if err != nil {
		return SignaturePair{}, err
	}
	return SignaturePair{
		PublicKey: k.PublicKey(),
		Signature: sig,
	}, nil
}

// Signer returns a Signer backed by this key
func (k PrivateKey) Signer() Signer {
	return k.SignRaw
}

// ToBytesRaw returns the 32 byte private key
func (k PrivateKey) ToBytesRaw() []byte {
	switch k.keyType {
	case KeyTypeEd25519:
		return k.ed.Seed()
	case KeyTypeEcdsaSecp256k1:
		return crypto.FromECDSA(k.ec)
	}
	return nil
}

// ToBytesDer returns the PKCS#8 encoding of the key
func (k PrivateKey) ToBytesDer() []byte {
	return encodePrivateKeyDer(k.keyType, k.ToBytesRaw())
}

// String returns the hex of the DER encoding
func (k PrivateKey) String() string {
	return hex.EncodeToString(k.ToBytesDer())
}

func (k PrivateKey) StringRaw() string {
	return hex.EncodeToString(k.ToBytesRaw())
}
