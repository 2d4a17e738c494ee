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

package keys_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEd25519PrivateKeyDer = "302e020100300506032b657004220420db484b828e64b2d8f12ce3c0a0e93a0b8cce7af1bb8f39c97732394482538e10"
	testEd25519PublicKeyDer  = "302a300506032b6570032100e0c8ec2758a5879ffac226a13c0c516b799e72e35141a0dd828f94d37988a4b7"
	testEd25519PublicKeyRaw  = "e0c8ec2758a5879ffac226a13c0c516b799e72e35141a0dd828f94d37988a4b7"
	// secp256k1 private key 1, whose public key is the generator point
	testEcdsaPrivateKeyRaw = "0000000000000000000000000000000000000000000000000000000000000001"
	testEcdsaPublicKeyRaw  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	testEcdsaEvmAddress    = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
)

func TestParsePrivateKeyEd25519Der(t *testing.T) {
	privKey, err := keys.ParsePrivateKey(testEd25519PrivateKeyDer)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !privKey.IsEd25519() {
		t.Fatalf("did not get expected key type: got %s", privKey.Type())
	}
	if privKey.String() != testEd25519PrivateKeyDer {
		t.Fatalf(
			"did not get expected DER\n  got: %s\n  wanted: %s",
			privKey.String(),
			testEd25519PrivateKeyDer,
		)
	}
	pubKey := privKey.PublicKey()
	if pubKey.String() != testEd25519PublicKeyDer {
		t.Fatalf(
			"did not get expected public key\n  got: %s\n  wanted: %s",
			pubKey.String(),
			testEd25519PublicKeyDer,
		)
	}
	if pubKey.StringRaw() != testEd25519PublicKeyRaw {
		t.Fatalf("did not get expected raw public key: got %s", pubKey.StringRaw())
	}
}

func TestParsePublicKeyForms(t *testing.T) {
	fromDer, err := keys.ParsePublicKey(testEd25519PublicKeyDer)
	require.NoError(t, err)
	fromRaw, err := keys.ParsePublicKey(testEd25519PublicKeyRaw)
	require.NoError(t, err)
	assert.Equal(t, fromDer, fromRaw)
	ecdsaKey, err := keys.ParsePublicKey(testEcdsaPublicKeyRaw)
	require.NoError(t, err)
	assert.True(t, ecdsaKey.IsEcdsa())
	// DER round trip
	ecdsaKey2, err := keys.PublicKeyFromBytes(ecdsaKey.ToBytesDer())
	require.NoError(t, err)
	assert.Equal(t, ecdsaKey, ecdsaKey2)
	assert.Equal(
		t,
		"302d300706052b8104000a032200"+testEcdsaPublicKeyRaw,
		ecdsaKey.String(),
	)
}

func TestParseKeyErrors(t *testing.T) {
	testDefs := []struct {
		name  string
		parse func() error
	}{
		{
			name: "BadHex",
			parse: func() error {
				_, err := keys.ParsePrivateKey("zz")
				return err
			},
		},
		{
			name: "TruncatedDer",
			parse: func() error {
				_, err := keys.ParsePrivateKey(testEd25519PrivateKeyDer[:40])
				return err
			},
		},
		{
			name: "PublicKeyAsPrivate",
			parse: func() error {
				_, err := keys.ParsePrivateKey(testEd25519PublicKeyDer)
				return err
			},
		},
		{
			name: "InvalidEd25519Point",
			parse: func() error {
				_, err := keys.ParsePublicKey(
					"0200000000000000000000000000000000000000000000000000000000000000",
				)
				return err
			},
		},
		{
			name: "WrongLength",
			parse: func() error {
				_, err := keys.PublicKeyFromBytesEd25519([]byte{0x01, 0x02})
				return err
			},
		},
		{
			name: "InvalidEcdsaPoint",
			parse: func() error {
				_, err := keys.PublicKeyFromBytesEcdsa(make([]byte, 33))
				return err
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			err := testDef.parse()
			var parseErr keys.KeyParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("did not get expected KeyParseError, got: %v", err)
			}
		})
	}
}

func TestEcdsaKey(t *testing.T) {
	privKey, err := keys.ParsePrivateKeyEcdsa(testEcdsaPrivateKeyRaw)
	require.NoError(t, err)
	pubKey := privKey.PublicKey()
	assert.Equal(t, testEcdsaPublicKeyRaw, pubKey.StringRaw())
	addr, err := pubKey.ToEvmAddress()
	require.NoError(t, err)
	assert.Equal(t, testEcdsaEvmAddress, addr.Hex())
	// PKCS#8 round trip
	assert.Equal(
		t,
		"3030020100300706052b8104000a04220420"+testEcdsaPrivateKeyRaw,
		privKey.String(),
	)
	privKey2, err := keys.ParsePrivateKey(privKey.String())
	require.NoError(t, err)
	assert.Equal(t, pubKey, privKey2.PublicKey())
}

func TestEcdsaKeySec1Der(t *testing.T) {
	// SEC1 ECPrivateKey with secp256k1 parameters
	sec1Hex := "302e0201010420" + testEcdsaPrivateKeyRaw + "a00706052b8104000a"
	privKey, err := keys.ParsePrivateKey(sec1Hex)
	require.NoError(t, err)
	assert.True(t, privKey.IsEcdsa())
	assert.Equal(t, testEcdsaPublicKeyRaw, privKey.PublicKey().StringRaw())
}

func TestSignVerify(t *testing.T) {
	message := []byte("hello world")
	for _, generate := range []func() (keys.PrivateKey, error){
		keys.GenerateEd25519,
		keys.GenerateEcdsa,
	} {
		privKey, err := generate()
		require.NoError(t, err)
		pair, err := privKey.Sign(message)
		require.NoError(t, err)
		assert.Len(t, pair.Signature, 64)
		assert.Equal(t, privKey.PublicKey(), pair.PublicKey)
		assert.True(t, pair.PublicKey.Verify(message, pair.Signature))
		assert.False(t, pair.PublicKey.Verify([]byte("other"), pair.Signature))
		// Signing with another key does not verify
		otherKey, err := generate()
		require.NoError(t, err)
		assert.False(t, otherKey.PublicKey().Verify(message, pair.Signature))
	}
}

func TestEd25519EvmAddressUnsupported(t *testing.T) {
	privKey, err := keys.ParsePrivateKey(testEd25519PrivateKeyDer)
	require.NoError(t, err)
	_, err = privKey.PublicKey().ToEvmAddress()
	assert.ErrorIs(t, err, keys.ErrUnsupportedKeyType)
}

func TestPublicKeyToAccountId(t *testing.T) {
	pubKey, err := keys.ParsePublicKey(testEd25519PublicKeyRaw)
	require.NoError(t, err)
	accountId, err := pubKey.ToAccountId(0, 0)
	require.NoError(t, err)
	alias := accountId.Alias()
	// {1: h'<key>'}
	assert.Equal(t, "a1015820"+testEd25519PublicKeyRaw, hex.EncodeToString(alias))
}
