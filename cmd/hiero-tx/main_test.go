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

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/blinklabs-io/gohiero/internal/test"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/protocol/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKeygen(t *testing.T) {
	out, err := runCommand(t, "", "keygen")
	require.NoError(t, err)
	var privateKeyHex string
	for _, line := range strings.Split(out, "\n") {
		if after, ok := strings.CutPrefix(line, "private key: "); ok {
			privateKeyHex = after
		}
	}
	privateKey, err := keys.ParsePrivateKey(privateKeyHex)
	require.NoError(t, err)
	assert.True(t, privateKey.IsEd25519())
	assert.Contains(t, out, privateKey.PublicKey().StringRaw())

	out, err = runCommand(t, "", "keygen", "--ecdsa")
	require.NoError(t, err)
	assert.Contains(t, out, "evm address: 0x")
}

func TestOfflineTransferAndSign(t *testing.T) {
	operatorArgs := []string{
		"--network", "testnet",
		"--operator-id", test.OperatorAccountId.String(),
		"--operator-key", test.OperatorKey.StringRaw(),
	}
	out, err := runCommand(
		t,
		"",
		append(
			[]string{
				"transfer", "--offline",
				"--to", "0.0.1002",
				"--amount", "1000",
				"--memo", "offline",
				"--nodes", "0.0.3,0.0.4",
			},
			operatorArgs...,
		)...,
	)
	require.NoError(t, err)

	cosigner := test.PrivateKey(50)
	signedOut, err := runCommand(t, out, "sign", "-", "--key", cosigner.StringRaw())
	require.NoError(t, err)

	txBytes, err := hex.DecodeString(strings.TrimSpace(signedOut))
	require.NoError(t, err)
	tx, err := transaction.FromBytes(txBytes)
	require.NoError(t, err)
	transfer, ok := tx.(*transaction.TransferTransaction)
	require.True(t, ok)
	assert.Equal(t, "offline", transfer.TransactionMemo())
	assert.True(t, transfer.TransactionId().AccountId.Equal(test.OperatorAccountId))
	assert.Len(t, transfer.NodeAccountIds(), 2)
	assert.True(t, transfer.IsSignedBy(cosigner.PublicKey()))
	// The operator signs when the transaction is submitted
	assert.False(t, transfer.IsSignedBy(test.OperatorKey.PublicKey()))
	transfers := transfer.HbarTransfers()
	require.Len(t, transfers, 2)
	assert.Equal(t, int64(-1000), transfers[0].Amount.Tinybars())
}

func TestTransferRejectsBadInput(t *testing.T) {
	_, err := runCommand(t, "", "transfer", "--to", "0.0.1002", "--amount", "0")
	assert.ErrorContains(t, err, "--amount must be positive")

	_, err = runCommand(
		t,
		"",
		"transfer", "--offline", "--to", "0.0.1002", "--amount", "5",
		"--operator-id", test.OperatorAccountId.String(),
	)
	assert.ErrorContains(t, err, "must be used together")
}
