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
	"slices"
	"time"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/ethereum/go-ethereum/common"
)

// Roughly 90 days
const DefaultAutoRenewPeriod = 7_890_000 * time.Second

var (
	ErrNoKey                  = errors.New("account key is required")
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
)

// AccountCreateTransaction creates a new account. The receipt carries the new account ID
type AccountCreateTransaction struct {
	*Transaction
	key                           *keys.Key
	initialBalance                ledger.Hbar
	receiverSigRequired           bool
	autoRenewPeriod               time.Duration
	accountMemo                   string
	maxAutomaticTokenAssociations int32
	alias                         []byte
	stakedAccountId               *ledger.AccountId
	stakedNodeId                  *int64
	declineReward                 bool
}

func NewAccountCreateTransaction() *AccountCreateTransaction {
	t := &AccountCreateTransaction{
		autoRenewPeriod: DefaultAutoRenewPeriod,
	}
	t.Transaction = newTransaction(t)
	return t
}

func accountCreateFromWire(body *protocol.CryptoCreateAccountBody) *AccountCreateTransaction {
	t := NewAccountCreateTransaction()
	if body.Key != nil {
		key := *body.Key
		t.key = &key
	}
	t.initialBalance = ledger.HbarFromTinybars(int64(body.InitialBalance)) // #nosec G115
	t.receiverSigRequired = body.ReceiverSigRequired
	t.autoRenewPeriod = body.AutoRenewPeriod.Duration()
	t.accountMemo = body.Memo
	t.maxAutomaticTokenAssociations = body.MaxAutomaticTokenAssociations
	t.alias = slices.Clone(body.Alias)
	t.stakedAccountId = body.StakedAccountId
	t.stakedNodeId = body.StakedNodeId
	t.declineReward = body.DeclineReward
	return t
}

// SetKey sets the key that must sign transactions for the new account
func (t *AccountCreateTransaction) SetKey(key keys.Key) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.key = &key
	return nil
}

func (t *AccountCreateTransaction) Key() (keys.Key, bool) {
	if t.key == nil {
		return keys.Key{}, false
	}
	return *t.key, true
}

// SetECDSAKeyWithAlias sets an ECDSA key as the account key and its EVM address as the alias
func (t *AccountCreateTransaction) SetECDSAKeyWithAlias(publicKey keys.PublicKey) error {
	if err := t.modify(); err != nil {
		return err
	}
	addr, err := publicKey.ToEvmAddress()
	if err != nil {
		return err
	}
	key := keys.NewSingleKey(publicKey)
	t.key = &key
	t.alias = addr.Bytes()
	return nil
}

// SetAlias sets the EVM address that the new account can also be addressed by
func (t *AccountCreateTransaction) SetAlias(alias common.Address) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.alias = alias.Bytes()
	return nil
}

func (t *AccountCreateTransaction) Alias() []byte {
	return slices.Clone(t.alias)
}

func (t *AccountCreateTransaction) SetInitialBalance(initialBalance ledger.Hbar) error {
	if err := t.modify(); err != nil {
		return err
	}
	if initialBalance < 0 {
		return ErrNegativeInitialBalance
	}
	t.initialBalance = initialBalance
	return nil
}

func (t *AccountCreateTransaction) InitialBalance() ledger.Hbar {
	return t.initialBalance
}

// SetReceiverSignatureRequired requires the account key to sign transfers into the account
func (t *AccountCreateTransaction) SetReceiverSignatureRequired(required bool) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.receiverSigRequired = required
	return nil
}

func (t *AccountCreateTransaction) SetAutoRenewPeriod(period time.Duration) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.autoRenewPeriod = period
	return nil
}

func (t *AccountCreateTransaction) AutoRenewPeriod() time.Duration {
	return t.autoRenewPeriod
}

func (t *AccountCreateTransaction) SetAccountMemo(memo string) error {
	if err := t.modify(); err != nil {
		return err
	}
	if len(memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	t.accountMemo = memo
	return nil
}

func (t *AccountCreateTransaction) AccountMemo() string {
	return t.accountMemo
}

// SetMaxAutomaticTokenAssociations sets how many tokens the account is associated with on
// receipt without an explicit association. -1 means unlimited
func (t *AccountCreateTransaction) SetMaxAutomaticTokenAssociations(maxAssociations int32) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.maxAutomaticTokenAssociations = maxAssociations
	return nil
}

// SetStakedAccountId stakes the new account to another account. It replaces any staked node
func (t *AccountCreateTransaction) SetStakedAccountId(accountId ledger.AccountId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.stakedAccountId = &accountId
	t.stakedNodeId = nil
	return nil
}

// SetStakedNodeId stakes the new account to a node. It replaces any staked account
func (t *AccountCreateTransaction) SetStakedNodeId(nodeId int64) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.stakedNodeId = &nodeId
	t.stakedAccountId = nil
	return nil
}

func (t *AccountCreateTransaction) SetDeclineStakingReward(decline bool) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.declineReward = decline
	return nil
}

func (t *AccountCreateTransaction) Method() protocol.Method {
	return protocol.MethodCryptoCreateAccount
}

func (t *AccountCreateTransaction) WireBody(ledger.ChunkInfo) (protocol.TransactionBody, error) {
	if t.key == nil && len(t.alias) == 0 {
		return protocol.TransactionBody{}, ErrNoKey
	}
	return protocol.TransactionBody{
		CryptoCreateAccount: &protocol.CryptoCreateAccountBody{
			Key:                           t.key,
			InitialBalance:                uint64(t.initialBalance.Tinybars()), // #nosec G115
			ReceiverSigRequired:           t.receiverSigRequired,
			AutoRenewPeriod:               ledger.NewDuration(t.autoRenewPeriod),
			Memo:                          t.accountMemo,
			MaxAutomaticTokenAssociations: t.maxAutomaticTokenAssociations,
			Alias:                         slices.Clone(t.alias),
			StakedAccountId:               t.stakedAccountId,
			StakedNodeId:                  t.stakedNodeId,
			DeclineReward:                 t.declineReward,
		},
	}, nil
}

func (t *AccountCreateTransaction) ValidateChecksums(ledgerId ledger.LedgerId) error {
	if t.stakedAccountId != nil {
		return t.stakedAccountId.ValidateChecksum(ledgerId)
	}
	return nil
}
