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

package hiero_test

import (
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/gohiero"
	"github.com/blinklabs-io/gohiero/internal/test"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromReader(t *testing.T) {
	cfgYaml := `
nodes:
  "127.0.0.1:50211": "0.0.3"
  "127.0.0.1:50212": "0.0.4"
ledgerId: testnet
autoValidateChecksums: true
operator:
  accountId: "0.0.1001"
  privateKey: "` + test.OperatorKey.StringRaw() + `"
dispatch:
  maxAttempts: 3
  requestTimeout: 5s
  minBackoff: 100ms
  maxBackoff: 1s
maxTransactionFee: 500000000
`
	cfg, err := hiero.NewConfigFromReader(strings.NewReader(cfgYaml))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dispatch.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Dispatch.RequestTimeout)

	client, err := hiero.NewClientFromConfig(cfg, hiero.WithLogger(test.DiscardLogger()))
	require.NoError(t, err)
	defer client.Close()
	assert.Len(t, client.Network().NodeAccountIds(), 2)
	assert.True(t, client.LedgerId().Equal(ledger.LedgerIdTestnet))
	assert.True(t, client.AutoValidateChecksums())
	assert.Equal(t, 3, client.DispatchConfig().MaxAttempts)
	assert.Equal(t, time.Second, client.DispatchConfig().MaxBackoff)
	assert.Equal(t, ledger.NewHbar(5), client.DefaultMaxTransactionFee())
	assert.Equal(t, hiero.DefaultMaxQueryPayment, client.DefaultMaxQueryPayment())
	accountId, ok := client.OperatorAccountId()
	require.True(t, ok)
	assert.True(t, accountId.Equal(test.OperatorAccountId))
}

func TestConfigNamedNetwork(t *testing.T) {
	cfg, err := hiero.NewConfigFromReader(strings.NewReader("network: previewnet\n"))
	require.NoError(t, err)
	client, err := hiero.NewClientFromConfig(cfg)
	require.NoError(t, err)
	defer client.Close()
	assert.True(t, client.LedgerId().Equal(ledger.LedgerIdPreviewnet))
}

func TestConfigInvalid(t *testing.T) {
	testDefs := []struct {
		name    string
		cfgYaml string
	}{
		{
			name:    "NoNetwork",
			cfgYaml: "ledgerId: testnet\n",
		},
		{
			name:    "UnknownNetwork",
			cfgYaml: "network: devnet\n",
		},
		{
			name:    "BadNodeAddress",
			cfgYaml: "nodes:\n  \"not an address\": \"0.0.3\"\n",
		},
		{
			name:    "OperatorMissingKey",
			cfgYaml: "network: testnet\noperator:\n  accountId: \"0.0.2\"\n",
		},
		{
			name:    "UnknownField",
			cfgYaml: "network: testnet\nretries: 3\n",
		},
		{
			name:    "NegativeFee",
			cfgYaml: "network: testnet\nmaxQueryPayment: -1\n",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := hiero.NewConfigFromReader(strings.NewReader(testDef.cfgYaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigBadOperatorKey(t *testing.T) {
	cfg, err := hiero.NewConfigFromReader(
		strings.NewReader("network: testnet\noperator:\n  accountId: \"0.0.2\"\n  privateKey: \"zz\"\n"),
	)
	require.NoError(t, err)
	_, err = hiero.NewClientFromConfig(cfg)
	assert.ErrorIs(t, err, hiero.ErrInvalidConfig)
}
