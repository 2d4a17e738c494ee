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

package transaction

import (
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// NodeDeleteTransaction removes a node from the network address book
type NodeDeleteTransaction struct {
	*Transaction
	nodeId uint64
}

func NewNodeDeleteTransaction() *NodeDeleteTransaction {
	t := &NodeDeleteTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

func nodeDeleteFromWire(body *protocol.NodeDeleteBody) *NodeDeleteTransaction {
	t := NewNodeDeleteTransaction()
	t.nodeId = body.NodeId
	return t
}

func (t *NodeDeleteTransaction) SetNodeId(nodeId uint64) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.nodeId = nodeId
	return nil
}

func (t *NodeDeleteTransaction) NodeId() uint64 {
	return t.nodeId
}

func (t *NodeDeleteTransaction) Method() protocol.Method {
	return protocol.MethodNodeDelete
}

func (t *NodeDeleteTransaction) WireBody(ledger.ChunkInfo) (protocol.TransactionBody, error) {
	return protocol.TransactionBody{
		NodeDelete: &protocol.NodeDeleteBody{
			NodeId: t.nodeId,
		},
	}, nil
}

func (t *NodeDeleteTransaction) ValidateChecksums(ledger.LedgerId) error {
	return nil
}
