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

// Package hiero provides the SDK client: the operator account, the network of nodes and a pool
// of connections to them, and the settings shared by all transactions and queries.
//
// Transactions live in the protocol/transaction package and queries in protocol/query. Both
// execute against a *Client
package hiero

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

var (
	ErrNoNetwork     = errors.New("no network nodes configured")
	ErrClientClosed  = errors.New("client is closed")
	ErrInvalidConfig = errors.New("invalid client configuration")
)

var (
	DefaultMaxTransactionFee = ledger.NewHbar(2)
	DefaultMaxQueryPayment   = ledger.NewHbar(1)
)

// Client holds the configuration shared by all executables and the pool of node connections
type Client struct {
	network                  map[string]ledger.AccountId
	nodePool                 *NodePool
	dialer                   DialFunc
	operator                 *protocol.Operator
	dispatchConfig           protocol.DispatchConfig
	ledgerId                 ledger.LedgerId
	autoValidateChecksums    bool
	clock                    ledger.Clock
	txIdGenerator            *ledger.TransactionIdGenerator
	defaultMaxTransactionFee ledger.Hbar
	defaultMaxQueryPayment   ledger.Hbar
	logger                   *slog.Logger
	optionErrs               []error
}

// NewClient returns a new Client with the specified options. A network must be provided with
// WithNetwork, WithNamedNetwork or WithAddressBook
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		network:                  map[string]ledger.AccountId{},
		dispatchConfig:           protocol.NewDispatchConfig(),
		defaultMaxTransactionFee: DefaultMaxTransactionFee,
		defaultMaxQueryPayment:   DefaultMaxQueryPayment,
	}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if err := errors.Join(c.optionErrs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.network) == 0 {
		return nil, ErrNoNetwork
	}
	if err := c.dispatchConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.defaultMaxTransactionFee < 0 || c.defaultMaxQueryPayment < 0 {
		return nil, fmt.Errorf("%w: negative default fee", ErrInvalidConfig)
	}
	if c.operator != nil && c.autoValidateChecksums {
		if err := c.operator.AccountId.ValidateChecksum(c.ledgerId); err != nil {
			return nil, err
		}
	}
	c.txIdGenerator = ledger.NewTransactionIdGenerator(c.clock)
	c.nodePool = NewNodePool(
		NodePoolConfig{
			Network: c.network,
			Dialer:  c.dialer,
			Logger:  c.logger,
		},
	)
	return c, nil
}

// Close closes all node connections. The client cannot be used afterward
func (c *Client) Close() error {
	return c.nodePool.Close()
}

func (c *Client) Network() protocol.Network {
	return c.nodePool
}

// NodePool returns the pool of node connections
func (c *Client) NodePool() *NodePool {
	return c.nodePool
}

// Operator returns the default payer and signer, or nil if none was configured
func (c *Client) Operator() *protocol.Operator {
	return c.operator
}

// OperatorAccountId returns the account ID of the operator and whether one is configured
func (c *Client) OperatorAccountId() (ledger.AccountId, bool) {
	if c.operator == nil {
		return ledger.AccountId{}, false
	}
	return c.operator.AccountId, true
}

// OperatorPublicKey returns the public key of the operator and whether one is configured
func (c *Client) OperatorPublicKey() (keys.PublicKey, bool) {
	if c.operator == nil {
		return keys.PublicKey{}, false
	}
	return c.operator.PublicKey, true
}

func (c *Client) DispatchConfig() protocol.DispatchConfig {
	return c.dispatchConfig
}

func (c *Client) LedgerId() ledger.LedgerId {
	return c.ledgerId
}

func (c *Client) AutoValidateChecksums() bool {
	return c.autoValidateChecksums
}

func (c *Client) TransactionIdGenerator() *ledger.TransactionIdGenerator {
	return c.txIdGenerator
}

func (c *Client) DefaultMaxTransactionFee() ledger.Hbar {
	return c.defaultMaxTransactionFee
}

func (c *Client) DefaultMaxQueryPayment() ledger.Hbar {
	return c.defaultMaxQueryPayment
}

func (c *Client) Logger() *slog.Logger {
	return c.logger
}
