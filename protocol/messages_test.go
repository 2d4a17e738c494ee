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

package protocol_test

import (
	"testing"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/internal/test"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cborMessage interface {
	SetCbor([]byte)
}

func TestMessagesPreserveOriginalCbor(t *testing.T) {
	testDefs := []struct {
		name         string
		cborHex      string
		canonicalHex string
		newMessage   func() cborMessage
		checkDecoded func(t *testing.T, msg any)
	}{
		{
			name: "SignedTransaction",
			// Indefinite-length map
			cborHex:      "bf0143010203ff",
			canonicalHex: "a10143010203",
			newMessage: func() cborMessage {
				return &protocol.SignedTransaction{}
			},
			checkDecoded: func(t *testing.T, msg any) {
				signedTx := msg.(*protocol.SignedTransaction)
				assert.Equal(t, []byte{1, 2, 3}, signedTx.BodyBytes)
				assert.Nil(t, signedTx.SigMap)
			},
		},
		{
			name:         "TransactionList",
			cborHex:      "bf0181a10141aaff",
			canonicalHex: "a10181a10141aa",
			newMessage: func() cborMessage {
				return &protocol.TransactionList{}
			},
			checkDecoded: func(t *testing.T, msg any) {
				list := msg.(*protocol.TransactionList)
				require.Len(t, list.Transactions, 1)
				assert.Equal(t, []byte{0xaa}, list.Transactions[0].SignedTransactionBytes)
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			cborData := test.DecodeHexString(testDef.cborHex)
			msg := testDef.newMessage()
			require.NoError(t, cbor.DecodeStrict(cborData, msg))
			testDef.checkDecoded(t, msg)
			encoded, err := cbor.Encode(msg)
			require.NoError(t, err)
			assert.Equal(t, cborData, encoded)
			// Clearing the stored CBOR falls back to the canonical encoding
			msg.SetCbor(nil)
			encoded, err = cbor.Encode(msg)
			require.NoError(t, err)
			assert.Equal(t, test.DecodeHexString(testDef.canonicalHex), encoded)
		})
	}
}

func TestSignedTransactionWithSignatures(t *testing.T) {
	key := test.PrivateKey(9)
	bodyBytes := []byte("body")
	pair, err := key.Sign(bodyBytes)
	require.NoError(t, err)
	sigMap := keys.NewSignatureMap()
	sigMap.Add(pair)
	signedTx := &protocol.SignedTransaction{
		BodyBytes: bodyBytes,
		SigMap:    sigMap,
	}
	encoded, err := cbor.Encode(signedTx)
	require.NoError(t, err)
	var decoded protocol.SignedTransaction
	require.NoError(t, cbor.DecodeStrict(encoded, &decoded))
	require.NotNil(t, decoded.SigMap)
	sig, ok := decoded.SigMap.Get(key.PublicKey())
	require.True(t, ok)
	assert.True(t, key.PublicKey().Verify(bodyBytes, sig))
	reencoded, err := cbor.Encode(&decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}
