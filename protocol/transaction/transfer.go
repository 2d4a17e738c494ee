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
	"slices"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// TransferTransaction moves hbars between accounts. The amounts must sum to zero
type TransferTransaction struct {
	*Transaction
	transfers []ledger.Transfer
}

func NewTransferTransaction() *TransferTransaction {
	t := &TransferTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

func transferFromWire(body *protocol.CryptoTransferBody) *TransferTransaction {
	t := NewTransferTransaction()
	t.transfers = slices.Clone(body.Transfers)
	return t
}

// AddHbarTransfer adds an amount to the balance change of an account. A negative amount is
// debited. Transfers for the same account are combined
func (t *TransferTransaction) AddHbarTransfer(accountId ledger.AccountId, amount ledger.Hbar) error {
	return t.addTransfer(accountId, amount, false)
}

// AddApprovedHbarTransfer adds a transfer that spends an allowance granted to the payer
func (t *TransferTransaction) AddApprovedHbarTransfer(
	accountId ledger.AccountId,
	amount ledger.Hbar,
) error {
	return t.addTransfer(accountId, amount, true)
}

func (t *TransferTransaction) addTransfer(
	accountId ledger.AccountId,
	amount ledger.Hbar,
	isApproval bool,
) error {
	if err := t.modify(); err != nil {
		return err
	}
	for i := range t.transfers {
		transfer := &t.transfers[i]
		if transfer.AccountId.Equal(accountId) && transfer.IsApproval == isApproval {
			transfer.Amount += amount
			return nil
		}
	}
	t.transfers = append(
		t.transfers,
		ledger.Transfer{
			AccountId:  accountId,
			Amount:     amount,
			IsApproval: isApproval,
		},
	)
	return nil
}

func (t *TransferTransaction) HbarTransfers() []ledger.Transfer {
	return slices.Clone(t.transfers)
}

func (t *TransferTransaction) Method() protocol.Method {
	return protocol.MethodCryptoTransfer
}

func (t *TransferTransaction) WireBody(ledger.ChunkInfo) (protocol.TransactionBody, error) {
	return protocol.TransactionBody{
		CryptoTransfer: &protocol.CryptoTransferBody{
			Transfers: slices.Clone(t.transfers),
		},
	}, nil
}

func (t *TransferTransaction) ValidateChecksums(ledgerId ledger.LedgerId) error {
	for _, transfer := range t.transfers {
		if err := transfer.AccountId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}
	return nil
}
