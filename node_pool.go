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
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/muxer"
	"github.com/blinklabs-io/gohiero/protocol"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// DefaultDialTimeout bounds a single connection attempt made by the default dialer
const DefaultDialTimeout = 10 * time.Second

// DialFunc connects to a node address. It matches the signature of net.Dialer.DialContext
type DialFunc func(ctx context.Context, network string, address string) (net.Conn, error)

type NodePoolConfig struct {
	// Network maps node addresses to node account IDs
	Network map[string]ledger.AccountId
	Dialer  DialFunc
	Logger  *slog.Logger
}

// NodePool maintains a connection to each node of a network. Connections are made on first use
// and remade when they fail
type NodePool struct {
	dialer         DialFunc
	logger         *slog.Logger
	nodes          cmap.ConcurrentMap[string, *poolNode]
	nodeAccountIds []ledger.AccountId
	closed         atomic.Bool
}

type poolNode struct {
	accountId ledger.AccountId
	addresses []string
	mutex     sync.Mutex
	muxer     *muxer.Muxer
}

func NewNodePool(cfg NodePoolConfig) *NodePool {
	p := &NodePool{
		dialer: cfg.Dialer,
		logger: cfg.Logger,
		nodes:  cmap.New[*poolNode](),
	}
	if p.dialer == nil {
		dialer := &net.Dialer{
			Timeout: DefaultDialTimeout,
		}
		p.dialer = dialer.DialContext
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	for address, accountId := range cfg.Network {
		key := nodeKey(accountId)
		node, ok := p.nodes.Get(key)
		if !ok {
			node = &poolNode{accountId: accountId}
			p.nodes.Set(key, node)
			p.nodeAccountIds = append(p.nodeAccountIds, accountId)
		}
		node.addresses = append(node.addresses, address)
	}
	for _, node := range p.nodes.Items() {
		slices.Sort(node.addresses)
	}
	slices.SortFunc(p.nodeAccountIds, compareAccountIds)
	return p
}

// NodeAccountIds returns the account IDs of all nodes in the pool, ordered by shard, realm and
// number
func (p *NodePool) NodeAccountIds() []ledger.AccountId {
	return slices.Clone(p.nodeAccountIds)
}

// Addresses returns the addresses known for a node
func (p *NodePool) Addresses(nodeAccountId ledger.AccountId) []string {
	node, ok := p.nodes.Get(nodeKey(nodeAccountId))
	if !ok {
		return nil
	}
	return slices.Clone(node.addresses)
}

// Channel returns a connection to the given node, connecting if there is no live connection.
// The node is not locked while dialing, so callers for the same node can still give up on their
// own context
func (p *NodePool) Channel(
	ctx context.Context,
	nodeAccountId ledger.AccountId,
) (protocol.Channel, error) {
	if p.closed.Load() {
		return nil, ErrClientClosed
	}
	node, ok := p.nodes.Get(nodeKey(nodeAccountId))
	if !ok {
		return nil, fmt.Errorf("%w: %s", protocol.ErrNodeNotFound, nodeAccountId.String())
	}
	node.mutex.Lock()
	m := p.liveMuxer(node)
	node.mutex.Unlock()
	if m != nil {
		return m, nil
	}
	conn, address, err := p.dial(ctx, node)
	if err != nil {
		return nil, err
	}
	node.mutex.Lock()
	defer node.mutex.Unlock()
	// Check again now that we hold a new connection, in case Close raced with the dial
	if p.closed.Load() {
		conn.Close()
		return nil, ErrClientClosed
	}
	// Another caller connected while we were dialing
	if existing := p.liveMuxer(node); existing != nil {
		conn.Close()
		return existing, nil
	}
	p.logger.Debug(
		"connected to node",
		"node", nodeAccountId.String(),
		"address", address,
	)
	node.muxer = muxer.New(
		conn,
		muxer.WithLogger(p.logger.With("node", nodeAccountId.String())),
	)
	return node.muxer, nil
}

// liveMuxer returns the node's connection if it is still running. The caller must hold the node
// mutex
func (p *NodePool) liveMuxer(node *poolNode) *muxer.Muxer {
	if node.muxer == nil {
		return nil
	}
	select {
	case <-node.muxer.Done():
		p.logger.Debug(
			"connection to node closed, reconnecting",
			"node", node.accountId.String(),
			"error", node.muxer.Err(),
		)
		node.muxer = nil
		return nil
	default:
		return node.muxer
	}
}

func (p *NodePool) dial(ctx context.Context, node *poolNode) (net.Conn, string, error) {
	var errs []error
	for _, address := range node.addresses {
		conn, err := p.dialer(ctx, "tcp", address)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return conn, address, nil
	}
	return nil, "", fmt.Errorf(
		"connect to node %s: %w",
		node.accountId.String(),
		errors.Join(errs...),
	)
}

// Close stops all node connections
func (p *NodePool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	for item := range p.nodes.IterBuffered() {
		node := item.Val
		node.mutex.Lock()
		if node.muxer != nil {
			node.muxer.Stop()
			node.muxer = nil
		}
		node.mutex.Unlock()
	}
	return nil
}

func nodeKey(accountId ledger.AccountId) string {
	return fmt.Sprintf(
		"%d.%d.%d",
		accountId.Shard(),
		accountId.Realm(),
		accountId.Num(),
	)
}

func compareAccountIds(a, b ledger.AccountId) int {
	return cmp.Or(
		cmp.Compare(a.Shard(), b.Shard()),
		cmp.Compare(a.Realm(), b.Realm()),
		cmp.Compare(a.Num(), b.Num()),
	)
}
