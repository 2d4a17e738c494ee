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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/gohiero"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddressBookJson = `
{
  "nodes": [
    {
      "accountId": "0.0.3",
      "description": "node 0",
      "serviceEndpoints": [
        {"address": "34.94.106.61", "port": 50211},
        {"address": "node0.example.com", "port": 50212}
      ]
    },
    {
      "accountId": "0.0.4",
      "serviceEndpoints": [
        {"address": "2001:db8::4", "port": 50211}
      ]
    }
  ]
}
`

func TestAddressBookFromReader(t *testing.T) {
	addressBook, err := hiero.NewAddressBookFromReader(strings.NewReader(testAddressBookJson))
	require.NoError(t, err)
	require.Len(t, addressBook.Nodes, 2)
	assert.Equal(t, "node 0", addressBook.Nodes[0].Description)
	network, err := addressBook.Network()
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]ledger.AccountId{
			"34.94.106.61:50211":      ledger.NewEntityId(0, 0, 3),
			"node0.example.com:50212": ledger.NewEntityId(0, 0, 3),
			"[2001:db8::4]:50211":     ledger.NewEntityId(0, 0, 4),
		},
		network,
	)
}

func TestAddressBookFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addressbook.json")
	require.NoError(t, os.WriteFile(path, []byte(testAddressBookJson), 0o600))
	addressBook, err := hiero.NewAddressBookFromFile(path)
	require.NoError(t, err)
	client, err := hiero.NewClient(hiero.WithAddressBook(addressBook))
	require.NoError(t, err)
	defer client.Close()
	assert.Len(t, client.Network().NodeAccountIds(), 2)
}

func TestAddressBookInvalid(t *testing.T) {
	testDefs := []struct {
		name     string
		jsonData string
	}{
		{
			name:     "NoNodes",
			jsonData: `{"nodes": []}`,
		},
		{
			name:     "NoEndpoints",
			jsonData: `{"nodes": [{"accountId": "0.0.3", "serviceEndpoints": []}]}`,
		},
		{
			name:     "BadAccountId",
			jsonData: `{"nodes": [{"accountId": "zero", "serviceEndpoints": [{"address": "127.0.0.1", "port": 1}]}]}`,
		},
		{
			name:     "BadPort",
			jsonData: `{"nodes": [{"accountId": "0.0.3", "serviceEndpoints": [{"address": "127.0.0.1", "port": 70000}]}]}`,
		},
		{
			name:     "BadJson",
			jsonData: `{"nodes": [`,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := hiero.NewAddressBookFromReader(strings.NewReader(testDef.jsonData))
			assert.Error(t, err)
		})
	}
}

func TestClientWithInvalidAddressBook(t *testing.T) {
	_, err := hiero.NewClient(
		hiero.WithAddressBook(&hiero.AddressBook{}),
	)
	assert.ErrorIs(t, err, hiero.ErrInvalidConfig)
}

func TestNetworkByName(t *testing.T) {
	for _, name := range []string{"mainnet", "testnet", "previewnet"} {
		network := hiero.NetworkByName(name)
		assert.Equal(t, name, network.Name)
		assert.NotEmpty(t, network.Nodes)
		assert.Equal(t, name, network.LedgerId.String())
		assert.Equal(t, name, hiero.NetworkByLedgerId(network.LedgerId).Name)
	}
	assert.Equal(t, hiero.NetworkInvalid.Name, hiero.NetworkByName("devnet").Name)
}
