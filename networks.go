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

package hiero

import "github.com/blinklabs-io/gohiero/ledger"

// Network is a predefined network
type Network struct {
	Name     string
	LedgerId ledger.LedgerId
	// Nodes maps node addresses to node account IDs
	Nodes map[string]ledger.AccountId
}

// Network definitions
var (
	NetworkMainnet = Network{
		Name:     "mainnet",
		LedgerId: ledger.LedgerIdMainnet,
		Nodes: map[string]ledger.AccountId{
			"35.237.200.180:50211": ledger.NewEntityId(0, 0, 3),
			"35.186.191.247:50211": ledger.NewEntityId(0, 0, 4),
			"35.192.2.25:50211":    ledger.NewEntityId(0, 0, 5),
			"35.199.161.108:50211": ledger.NewEntityId(0, 0, 6),
			"35.203.82.240:50211":  ledger.NewEntityId(0, 0, 7),
			"35.236.5.219:50211":   ledger.NewEntityId(0, 0, 8),
			"35.197.192.225:50211": ledger.NewEntityId(0, 0, 9),
			"35.242.233.154:50211": ledger.NewEntityId(0, 0, 10),
		},
	}
	NetworkTestnet = Network{
		Name:     "testnet",
		LedgerId: ledger.LedgerIdTestnet,
		Nodes: map[string]ledger.AccountId{
			"0.testnet.hedera.com:50211": ledger.NewEntityId(0, 0, 3),
			"1.testnet.hedera.com:50211": ledger.NewEntityId(0, 0, 4),
			"2.testnet.hedera.com:50211": ledger.NewEntityId(0, 0, 5),
			"3.testnet.hedera.com:50211": ledger.NewEntityId(0, 0, 6),
		},
	}
	NetworkPreviewnet = Network{
		Name:     "previewnet",
		LedgerId: ledger.LedgerIdPreviewnet,
		Nodes: map[string]ledger.AccountId{
			"0.previewnet.hedera.com:50211": ledger.NewEntityId(0, 0, 3),
			"1.previewnet.hedera.com:50211": ledger.NewEntityId(0, 0, 4),
			"2.previewnet.hedera.com:50211": ledger.NewEntityId(0, 0, 5),
			"3.previewnet.hedera.com:50211": ledger.NewEntityId(0, 0, 6),
		},
	}

	NetworkInvalid = Network{
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkPreviewnet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByLedgerId returns a predefined network by ledger ID
func NetworkByLedgerId(ledgerId ledger.LedgerId) Network {
	for _, network := range networks {
		if network.LedgerId.Equal(ledgerId) {
			return network
		}
	}
	return NetworkInvalid
}
