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

// Package protocol implements the execution engine shared by transactions and queries: the
// lifecycle state map, the wire schema, payload chunking, and the node dispatcher that drives
// retries across nodes.
package protocol

import (
	"context"
	"log/slog"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
)

// Channel sends requests to a single node. A *muxer.Muxer satisfies this interface
type Channel interface {
	Request(ctx context.Context, method uint16, payload []byte) ([]byte, error)
}

// Network provides channels to the nodes of a network
type Network interface {
	// Channel returns a channel to the node with the given account ID, connecting if needed.
	// It returns an error wrapping ErrNodeNotFound for nodes that are not part of the network
	Channel(ctx context.Context, nodeAccountId ledger.AccountId) (Channel, error)
	// NodeAccountIds returns the account IDs of the known nodes, in a stable order
	NodeAccountIds() []ledger.AccountId
}

// Operator is the account that pays for and signs transactions by default
type Operator struct {
	AccountId ledger.AccountId
	PublicKey keys.PublicKey
	Signer    keys.Signer
}

// Client is what executables need from the SDK client
type Client interface {
	Network() Network
	Operator() *Operator
	DispatchConfig() DispatchConfig
	LedgerId() ledger.LedgerId
	AutoValidateChecksums() bool
	TransactionIdGenerator() *ledger.TransactionIdGenerator
	DefaultMaxTransactionFee() ledger.Hbar
	DefaultMaxQueryPayment() ledger.Hbar
	Logger() *slog.Logger
}
