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

package ledger

// TokenBalance is the balance of a single token held by an account
type TokenBalance struct {
	TokenId  TokenId `cbor:"1,keyasint,omitzero"`
	Balance  uint64  `cbor:"2,keyasint,omitempty"`
	Decimals uint32  `cbor:"3,keyasint,omitempty"`
}

// AccountBalance is the hbar and token balance of an account
type AccountBalance struct {
	AccountId AccountId      `cbor:"1,keyasint,omitzero"`
	Hbars     Hbar           `cbor:"2,keyasint,omitempty"`
	Tokens    []TokenBalance `cbor:"3,keyasint,omitempty"`
}

// TokenBalances returns the token balances keyed by token ID
func (b AccountBalance) TokenBalances() map[TokenId]uint64 {
	ret := make(map[TokenId]uint64, len(b.Tokens))
	for _, token := range b.Tokens {
		ret[token.TokenId] = token.Balance
	}
	return ret
}
