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

import (
	"log/slog"
	"maps"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithNetwork specifies the nodes to use, as a map of node address to node account ID. The same
// account ID may appear for several addresses
func WithNetwork(network map[string]ledger.AccountId) ClientOptionFunc {
	return func(c *Client) {
		c.network = maps.Clone(network)
	}
}

// WithNamedNetwork uses the nodes and ledger ID of a predefined network
func WithNamedNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.network = maps.Clone(network.Nodes)
		c.ledgerId = network.LedgerId
	}
}

// WithAddressBook uses the nodes listed in an address book
func WithAddressBook(addressBook *AddressBook) ClientOptionFunc {
	return func(c *Client) {
		network, err := addressBook.Network()
		if err != nil {
			c.optionErrs = append(c.optionErrs, err)
			return
		}
		c.network = network
	}
}

// WithOperator specifies the account that pays for transactions and the key that signs for it
func WithOperator(accountId ledger.AccountId, privateKey keys.PrivateKey) ClientOptionFunc {
	return WithOperatorSigner(accountId, privateKey.PublicKey(), privateKey.Signer())
}

// WithOperatorSigner specifies the operator using a custom signer, such as a hardware wallet
func WithOperatorSigner(
	accountId ledger.AccountId,
	publicKey keys.PublicKey,
	signer keys.Signer,
) ClientOptionFunc {
	return func(c *Client) {
		c.operator = &protocol.Operator{
			AccountId: accountId,
			PublicKey: publicKey,
			Signer:    signer,
		}
	}
}

// WithLogger specifies the logger to use. slog.Default() is used if not specified
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDispatchConfig specifies the retry settings used when sending requests to nodes
func WithDispatchConfig(cfg protocol.DispatchConfig) ClientOptionFunc {
	return func(c *Client) {
		c.dispatchConfig = cfg
	}
}

// WithLedgerId specifies the ledger ID used for entity ID checksums
func WithLedgerId(ledgerId ledger.LedgerId) ClientOptionFunc {
	return func(c *Client) {
		c.ledgerId = ledgerId
	}
}

// WithAutoValidateChecksums enables validation of entity ID checksums before execution
func WithAutoValidateChecksums(autoValidateChecksums bool) ClientOptionFunc {
	return func(c *Client) {
		c.autoValidateChecksums = autoValidateChecksums
	}
}

// WithDialer specifies the function used to connect to nodes
func WithDialer(dialer DialFunc) ClientOptionFunc {
	return func(c *Client) {
		c.dialer = dialer
	}
}

// WithClock specifies the clock used to generate transaction IDs
func WithClock(clock ledger.Clock) ClientOptionFunc {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithDefaultMaxTransactionFee specifies the fee limit for transactions that do not set one
func WithDefaultMaxTransactionFee(fee ledger.Hbar) ClientOptionFunc {
	return func(c *Client) {
		c.defaultMaxTransactionFee = fee
	}
}

// WithDefaultMaxQueryPayment specifies the highest cost paid for queries that do not set one
func WithDefaultMaxQueryPayment(payment ledger.Hbar) ClientOptionFunc {
	return func(c *Client) {
		c.defaultMaxQueryPayment = payment
	}
}
