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

package query

import (
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// AccountBalanceQuery gets the hbar and token balances of an account or contract. It is free
type AccountBalanceQuery struct {
	Query[ledger.AccountBalance]
	accountId  *ledger.AccountId
	contractId *ledger.ContractId
}

func NewAccountBalanceQuery() *AccountBalanceQuery {
	q := &AccountBalanceQuery{}
	q.Query = newQuery(q, false, q.mapResponse)
	return q
}

// SetAccountId sets the account to query. It replaces any contract ID
func (q *AccountBalanceQuery) SetAccountId(accountId ledger.AccountId) {
	q.accountId = &accountId
	q.contractId = nil
}

// SetContractId sets the contract to query. It replaces any account ID
func (q *AccountBalanceQuery) SetContractId(contractId ledger.ContractId) {
	q.contractId = &contractId
	q.accountId = nil
}

func (q *AccountBalanceQuery) Method() protocol.Method {
	return protocol.MethodCryptoGetAccountBalance
}

func (q *AccountBalanceQuery) WireQuery(header *protocol.QueryHeader) protocol.Query {
	return protocol.Query{
		CryptoGetAccountBalance: &protocol.CryptoGetAccountBalanceQuery{
			Header:     header,
			AccountId:  q.accountId,
			ContractId: q.contractId,
		},
	}
}

func (q *AccountBalanceQuery) ValidateChecksums(ledgerId ledger.LedgerId) error {
	if q.accountId != nil {
		if err := q.accountId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}
	if q.contractId != nil {
		if err := q.contractId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}
	return nil
}

func (q *AccountBalanceQuery) validate() error {
	if q.accountId == nil && q.contractId == nil {
		return ErrNoAccountId
	}
	return nil
}

func (q *AccountBalanceQuery) mapResponse(resp *protocol.Response) (ledger.AccountBalance, error) {
	balance := resp.CryptoGetAccountBalance
	if balance == nil {
		return ledger.AccountBalance{}, ErrMissingResponse
	}
	return ledger.AccountBalance{
		AccountId: balance.AccountId,
		Hbars:     ledger.HbarFromTinybars(int64(balance.Balance)), // #nosec G115
		Tokens:    balance.TokenBalances,
	}, nil
}
