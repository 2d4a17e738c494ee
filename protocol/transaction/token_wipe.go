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

// TokenWipeTransaction removes tokens from an account and reduces the total supply. Fungible
// tokens are wiped by amount and non-fungible tokens by serial number
type TokenWipeTransaction struct {
	*Transaction
	tokenId       ledger.TokenId
	accountId     ledger.AccountId
	amount        uint64
	serialNumbers []int64
}

func NewTokenWipeTransaction() *TokenWipeTransaction {
	t := &TokenWipeTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

func tokenWipeFromWire(body *protocol.TokenWipeBody) *TokenWipeTransaction {
	t := NewTokenWipeTransaction()
	t.tokenId = body.Token
	t.accountId = body.Account
	t.amount = body.Amount
	t.serialNumbers = slices.Clone(body.SerialNumbers)
	return t
}

func (t *TokenWipeTransaction) SetTokenId(tokenId ledger.TokenId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.tokenId = tokenId
	return nil
}

func (t *TokenWipeTransaction) TokenId() ledger.TokenId {
	return t.tokenId
}

func (t *TokenWipeTransaction) SetAccountId(accountId ledger.AccountId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.accountId = accountId
	return nil
}

func (t *TokenWipeTransaction) AccountId() ledger.AccountId {
	return t.accountId
}

// SetAmount sets the amount of a fungible token to wipe, in the token's smallest unit
func (t *TokenWipeTransaction) SetAmount(amount uint64) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.amount = amount
	return nil
}

func (t *TokenWipeTransaction) Amount() uint64 {
	return t.amount
}

// SetSerialNumbers sets the non-fungible token serial numbers to wipe
func (t *TokenWipeTransaction) SetSerialNumbers(serialNumbers ...int64) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.serialNumbers = slices.Clone(serialNumbers)
	return nil
}

func (t *TokenWipeTransaction) SerialNumbers() []int64 {
	return slices.Clone(t.serialNumbers)
}

func (t *TokenWipeTransaction) Method() protocol.Method {
	return protocol.MethodTokenWipe
}

func (t *TokenWipeTransaction) WireBody(ledger.ChunkInfo) (protocol.TransactionBody, error) {
	return protocol.TransactionBody{
		TokenWipe: &protocol.TokenWipeBody{
			Token:         t.tokenId,
			Account:       t.accountId,
			Amount:        t.amount,
			SerialNumbers: slices.Clone(t.serialNumbers),
		},
	}, nil
}

func (t *TokenWipeTransaction) ValidateChecksums(ledgerId ledger.LedgerId) error {
	return ledger.ValidateChecksums(ledgerId, t.tokenId, t.accountId)
}
