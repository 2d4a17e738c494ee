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
	"testing"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureMapOverwrite(t *testing.T) {
	privKeys := make([]keys.PrivateKey, 3)
	for i := range privKeys {
		var err error
		privKeys[i], err = keys.GenerateEd25519()
		require.NoError(t, err)
	}
	sigMap := keys.NewSignatureMap()
	for _, privKey := range privKeys {
		pair, err := privKey.Sign([]byte("first"))
		require.NoError(t, err)
		sigMap.Add(pair)
	}
	// Re-signing the middle key replaces its signature without reordering
	pair, err := privKeys[1].Sign([]byte("second"))
	require.NoError(t, err)
	sigMap.Add(pair)
	require.Equal(t, 3, sigMap.Len())
	pairs := sigMap.Pairs()
	for i, privKey := range privKeys {
		assert.Equal(t, privKey.PublicKey(), pairs[i].PublicKey)
	}
	sig, ok := sigMap.Get(privKeys[1].PublicKey())
	require.True(t, ok)
	assert.Equal(t, pair.Signature, sig)
	assert.True(t, sigMap.Signers().Contains(privKeys[2].PublicKey()))
}

func TestSignatureMapCbor(t *testing.T) {
	edKey, err := keys.GenerateEd25519()
	require.NoError(t, err)
	ecKey, err := keys.GenerateEcdsa()
	require.NoError(t, err)
	sigMap := keys.NewSignatureMap()
	for _, privKey := range []keys.PrivateKey{edKey, ecKey} {
		pair, err := privKey.Sign([]byte("message"))
		require.NoError(t, err)
		sigMap.Add(pair)
	}
	data, err := cbor.Encode(sigMap)
	require.NoError(t, err)
	decoded := keys.NewSignatureMap()
	_, err = cbor.Decode(data, decoded)
	require.NoError(t, err)
	assert.Equal(t, sigMap.Pairs(), decoded.Pairs())
	for _, pair := range decoded.Pairs() {
		assert.True(t, pair.PublicKey.Verify([]byte("message"), pair.Signature))
	}
}
