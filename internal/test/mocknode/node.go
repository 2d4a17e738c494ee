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

// Package mocknode provides scripted in-memory nodes for tests. Each connection to a node is a
// net.Pipe with a muxer serving the node side
package mocknode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/muxer"
	"github.com/blinklabs-io/gohiero/protocol"
)

// Handler answers a request sent to a node. Returning an error drops the connection, which the
// client sees as a transport failure
type Handler func(method protocol.Method, payload []byte) ([]byte, error)

// Request is a request received by a node
type Request struct {
	Method  protocol.Method
	Payload []byte
}

// Node is a scripted node
type Node struct {
	accountId ledger.AccountId
	address   string
	mutex     sync.Mutex
	handler   Handler
	dialErr   error
	dialHang  bool
	requests  []Request
	muxers    []*muxer.Muxer
}

// NewNode returns a node with the given account ID that answers requests with the handler
func NewNode(accountId ledger.AccountId, handler Handler) *Node {
	return &Node{
		accountId: accountId,
		address:   fmt.Sprintf("node-%d.mock:50211", accountId.Num()),
		handler:   handler,
	}
}

func (n *Node) AccountId() ledger.AccountId {
	return n.accountId
}

func (n *Node) Address() string {
	return n.address
}

// SetHandler replaces the handler for future requests
func (n *Node) SetHandler(handler Handler) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.handler = handler
}

// SetDialError makes future connection attempts fail with the given error
func (n *Node) SetDialError(err error) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.dialErr = err
}

// SetDialHang makes future connection attempts block until their context is done, like a
// node that drops packets
func (n *Node) SetDialHang(hang bool) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.dialHang = hang
}

// Dial returns the client side of a new connection to the node
func (n *Node) Dial(ctx context.Context) (net.Conn, error) {
	n.mutex.Lock()
	hang := n.dialHang
	n.mutex.Unlock()
	if hang {
		<-ctx.Done()
		return nil, &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: ctx.Err(),
		}
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.dialErr != nil {
		return nil, n.dialErr
	}
	clientConn, nodeConn := net.Pipe()
	m := muxer.New(
		nodeConn,
		muxer.WithRequestHandler(n.handleRequest),
		muxer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	n.muxers = append(n.muxers, m)
	return clientConn, nil
}

func (n *Node) handleRequest(method uint16, payload []byte) ([]byte, error) {
	n.mutex.Lock()
	n.requests = append(
		n.requests,
		Request{
			Method:  protocol.Method(method),
			Payload: payload,
		},
	)
	handler := n.handler
	n.mutex.Unlock()
	if handler == nil {
		return nil, fmt.Errorf("node %s has no handler", n.accountId)
	}
	return handler(protocol.Method(method), payload)
}

// Requests returns the requests received so far, in order
func (n *Node) Requests() []Request {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([]Request{}, n.requests...)
}

// Close stops serving all connections to the node
func (n *Node) Close() {
	n.mutex.Lock()
	muxers := n.muxers
	n.muxers = nil
	n.mutex.Unlock()
	for _, m := range muxers {
		m.Stop()
	}
}

// Cluster is a set of nodes reachable by address
type Cluster struct {
	nodes []*Node
}

func NewCluster(nodes ...*Node) *Cluster {
	return &Cluster{
		nodes: nodes,
	}
}

// Network returns the address to node account ID mapping for the cluster
func (c *Cluster) Network() map[string]ledger.AccountId {
	ret := make(map[string]ledger.AccountId, len(c.nodes))
	for _, node := range c.nodes {
		ret[node.Address()] = node.AccountId()
	}
	return ret
}

// Dial connects to the node with the given address. It matches the signature of
// net.Dialer.DialContext
func (c *Cluster) Dial(ctx context.Context, network string, address string) (net.Conn, error) {
	for _, node := range c.nodes {
		if node.Address() == address {
			return node.Dial(ctx)
		}
	}
	return nil, &net.OpError{
		Op:  "dial",
		Net: network,
		Err: fmt.Errorf("no mock node at %s", address),
	}
}

// Node returns the node with the given account ID
func (c *Cluster) Node(accountId ledger.AccountId) *Node {
	for _, node := range c.nodes {
		if node.AccountId().Equal(accountId) {
			return node
		}
	}
	return nil
}

// Close closes all nodes in the cluster
func (c *Cluster) Close() {
	for _, node := range c.nodes {
		node.Close()
	}
}
