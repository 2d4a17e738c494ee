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
	"errors"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

var ErrNoUndeleteTarget = errors.New("a file ID or contract ID is required")

// SystemUndeleteTransaction restores a file or contract removed by a system delete. It must be
// signed by a privileged account
type SystemUndeleteTransaction struct {
	*Transaction
	fileId     *ledger.FileId
	contractId *ledger.ContractId
}

func NewSystemUndeleteTransaction() *SystemUndeleteTransaction {
	t := &SystemUndeleteTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

func systemUndeleteFromWire(body *protocol.SystemUndeleteBody) *SystemUndeleteTransaction {
	t := NewSystemUndeleteTransaction()
	t.fileId = body.FileId
	t.contractId = body.ContractId
	return t
}

// SetFileId sets the file to restore. It replaces any contract ID
func (t *SystemUndeleteTransaction) SetFileId(fileId ledger.FileId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.fileId = &fileId
	t.contractId = nil
	return nil
}

func (t *SystemUndeleteTransaction) FileId() (ledger.FileId, bool) {
	if t.fileId == nil {
		return ledger.FileId{}, false
	}
	return *t.fileId, true
}

// SetContractId sets the contract to restore. It replaces any file ID
func (t *SystemUndeleteTransaction) SetContractId(contractId ledger.ContractId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.contractId = &contractId
	t.fileId = nil
	return nil
}

func (t *SystemUndeleteTransaction) ContractId() (ledger.ContractId, bool) {
	if t.contractId == nil {
		return ledger.ContractId{}, false
	}
	return *t.contractId, true
}

// Method returns the file or contract service method, depending on what is restored
func (t *SystemUndeleteTransaction) Method() protocol.Method {
	if t.contractId != nil {
		return protocol.MethodContractSystemUndelete
	}
	return protocol.MethodFileSystemUndelete
}

func (t *SystemUndeleteTransaction) WireBody(ledger.ChunkInfo) (protocol.TransactionBody, error) {
	if t.fileId == nil && t.contractId == nil {
		return protocol.TransactionBody{}, ErrNoUndeleteTarget
	}
	return protocol.TransactionBody{
		SystemUndelete: &protocol.SystemUndeleteBody{
			FileId:     t.fileId,
			ContractId: t.contractId,
		},
	}, nil
}

func (t *SystemUndeleteTransaction) ValidateChecksums(ledgerId ledger.LedgerId) error {
	if t.fileId != nil {
		return t.fileId.ValidateChecksum(ledgerId)
	}
	if t.contractId != nil {
		return t.contractId.ValidateChecksum(ledgerId)
	}
	return nil
}
