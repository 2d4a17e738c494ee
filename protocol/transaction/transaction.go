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

// Package transaction implements state-changing requests. A transaction is built, frozen into
// its signed wire bodies (one per chunk and node), signed, and then executed against the
// network.
package transaction

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

const (
	DefaultValidDuration = protocol.DefaultTransactionValidDuration
	MaxValidDuration     = 180 * time.Second
	MaxMemoLength        = 100
)

var DefaultMaxTransactionFee = ledger.NewHbar(2)

var (
	ErrMemoTooLong          = errors.New("memo exceeds 100 bytes")
	ErrInvalidValidDuration = errors.New("valid duration must be positive and at most 180s")
	ErrMultipleBodies       = errors.New("transaction has more than one body to sign")
	ErrBodyNotFound         = errors.New("no body for the given chunk and node")
)

// Body is implemented by each kind of transaction
type Body interface {
	Method() protocol.Method
	// WireBody returns a transaction body with the operation set for the given chunk. The
	// header fields are filled in by the caller
	WireBody(chunk ledger.ChunkInfo) (protocol.TransactionBody, error)
	// ValidateChecksums validates the checksums of the entity IDs referenced by the operation
	ValidateChecksums(ledgerId ledger.LedgerId) error
}

// chunkedBody is implemented by operations whose payload may span several wire transactions
type chunkedBody interface {
	ChunkCount() (int, error)
	MaxChunks() int
	waitForReceipt() bool
}

// Executable is implemented by every transaction type
type Executable interface {
	Freeze() error
	FreezeWith(client protocol.Client) error
	Sign(privateKey keys.PrivateKey) error
	SignWith(publicKey keys.PublicKey, signer keys.Signer) error
	AddSignature(publicKey keys.PublicKey, signature []byte) error
	Execute(ctx context.Context, client protocol.Client) (Response, error)
	ExecuteAll(ctx context.Context, client protocol.Client) ([]Response, error)
	ToBytes() ([]byte, error)
	State() protocol.State
	TransactionId() ledger.TransactionId
	NodeAccountIds() []ledger.AccountId
	SignatureMap(chunk int, nodeAccountId ledger.AccountId) (*keys.SignatureMap, error)
	transaction() *Transaction
}

// Transaction holds the settings and frozen state shared by all transactions. Operations embed
// it and add their own fields
type Transaction struct {
	body              Body
	stateMap          protocol.StateMap
	state             protocol.State
	nodeAccountIds    []ledger.AccountId
	transactionId     ledger.TransactionId
	maxTransactionFee *ledger.Hbar
	validDuration     time.Duration
	memo              string
	cursor            protocol.NodeCursor
	// Populated by freeze
	chunks []ledger.ChunkInfo
	// Transaction ID carried by the bodies of each chunk
	chunkTransactionIds []ledger.TransactionId
	signed              [][]*protocol.SignedTransaction
}

func newTransaction(body Body) *Transaction {
	return &Transaction{
		body:          body,
		stateMap:      protocol.TransactionStateMap,
		state:         protocol.StateBuilding,
		validDuration: DefaultValidDuration,
	}
}

func (t *Transaction) transaction() *Transaction {
	return t
}

// State returns the lifecycle state of the transaction
func (t *Transaction) State() protocol.State {
	return t.state
}

func (t *Transaction) IsFrozen() bool {
	return t.state != protocol.StateBuilding
}

// modify checks that the transaction may still be changed
func (t *Transaction) modify() error {
	_, err := t.stateMap.Transition(t.state, protocol.EventModify)
	return err
}

func (t *Transaction) transition(event protocol.Event) error {
	newState, err := t.stateMap.Transition(t.state, event)
	if err != nil {
		return err
	}
	t.state = newState
	return nil
}

// SetNodeAccountIds sets the nodes that the transaction may be submitted to. A body is built
// and signed for each of them. By default, every node in the client's network is used
func (t *Transaction) SetNodeAccountIds(nodeAccountIds ...ledger.AccountId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.nodeAccountIds = slices.Clone(nodeAccountIds)
	return nil
}

func (t *Transaction) NodeAccountIds() []ledger.AccountId {
	return slices.Clone(t.nodeAccountIds)
}

// SetTransactionId sets an explicit transaction ID instead of generating one from the operator
// at freeze time
func (t *Transaction) SetTransactionId(transactionId ledger.TransactionId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.transactionId = transactionId
	return nil
}

// TransactionId returns the transaction ID, which is zero until set or frozen. For chunked
// transactions this is the ID of the first chunk
func (t *Transaction) TransactionId() ledger.TransactionId {
	return t.transactionId
}

// SetMaxTransactionFee sets the most the payer is willing to pay. The client default is used
// if not set
func (t *Transaction) SetMaxTransactionFee(fee ledger.Hbar) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.maxTransactionFee = &fee
	return nil
}

// MaxTransactionFee returns the explicit fee limit, if one was set
func (t *Transaction) MaxTransactionFee() (ledger.Hbar, bool) {
	if t.maxTransactionFee == nil {
		return 0, false
	}
	return *t.maxTransactionFee, true
}

func (t *Transaction) SetTransactionValidDuration(validDuration time.Duration) error {
	if err := t.modify(); err != nil {
		return err
	}
	if validDuration <= 0 || validDuration > MaxValidDuration {
		return ErrInvalidValidDuration
	}
	t.validDuration = validDuration
	return nil
}

func (t *Transaction) TransactionValidDuration() time.Duration {
	return t.validDuration
}

func (t *Transaction) SetTransactionMemo(memo string) error {
	if err := t.modify(); err != nil {
		return err
	}
	if len(memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	t.memo = memo
	return nil
}

func (t *Transaction) TransactionMemo() string {
	return t.memo
}

// Freeze freezes the transaction without a client. Node account IDs and a transaction ID must
// have been set explicitly
func (t *Transaction) Freeze() error {
	return t.FreezeWith(nil)
}

// FreezeWith freezes the transaction, using the client for any settings that were not set
// explicitly: the nodes, the transaction ID (generated for the operator) and the fee limit.
// The body bytes for every chunk and node are built and cannot change afterward
func (t *Transaction) FreezeWith(client protocol.Client) error {
	if t.state != protocol.StateBuilding {
		return protocol.FreezeError{Err: protocol.ErrTransactionFrozen}
	}
	nodeAccountIds := t.nodeAccountIds
	if len(nodeAccountIds) == 0 && client != nil {
		nodeAccountIds = client.Network().NodeAccountIds()
	}
	if len(nodeAccountIds) == 0 {
		return protocol.FreezeError{Err: protocol.ErrNoNodeAccountIds}
	}
	chunkCount := 1
	maxChunks := protocol.DefaultMaxChunks
	if chunked, ok := t.body.(chunkedBody); ok {
		var err error
		chunkCount, err = chunked.ChunkCount()
		if err != nil {
			return err
		}
		maxChunks = chunked.MaxChunks()
	}
	transactionId := t.transactionId
	if transactionId.IsZero() {
		if client == nil || client.Operator() == nil {
			return protocol.FreezeError{Err: protocol.ErrNoTransactionId}
		}
		transactionId = client.TransactionIdGenerator().GenerateChained(
			client.Operator().AccountId,
			chunkCount,
		)
	}
	fee := DefaultMaxTransactionFee
	switch {
	case t.maxTransactionFee != nil:
		fee = *t.maxTransactionFee
	case client != nil:
		fee = client.DefaultMaxTransactionFee()
	}
	chunks := make([]ledger.ChunkInfo, chunkCount)
	chunkTransactionIds := make([]ledger.TransactionId, chunkCount)
	signed := make([][]*protocol.SignedTransaction, chunkCount)
	for i := range chunkCount {
		chunk, err := ledger.NewChunkInfo(
			transactionId,
			uint32(i),          // #nosec G115
			uint32(chunkCount), // #nosec G115
			uint32(maxChunks),  // #nosec G115
		)
		if err != nil {
			return err
		}
		chunks[i] = chunk
		chunkTransactionIds[i] = chunk.TransactionId()
		signed[i] = make([]*protocol.SignedTransaction, len(nodeAccountIds))
		for j, nodeAccountId := range nodeAccountIds {
			body, err := t.body.WireBody(chunk)
			if err != nil {
				return protocol.FreezeError{Err: err}
			}
			body.TransactionId = chunkTransactionIds[i]
			body.NodeAccountId = nodeAccountId
			body.TransactionFee = uint64(fee.Tinybars()) // #nosec G115
			body.TransactionValidDuration = ledger.NewDuration(t.validDuration)
			body.Memo = t.memo
			bodyBytes, err := cbor.Encode(&body)
			if err != nil {
				return protocol.FreezeError{Err: err}
			}
			signed[i][j] = &protocol.SignedTransaction{
				BodyBytes: bodyBytes,
				SigMap:    keys.NewSignatureMap(),
			}
		}
	}
	if err := t.transition(protocol.EventFreeze); err != nil {
		return err
	}
	t.nodeAccountIds = slices.Clone(nodeAccountIds)
	t.transactionId = transactionId
	t.maxTransactionFee = &fee
	t.chunks = chunks
	t.chunkTransactionIds = chunkTransactionIds
	t.signed = signed
	return nil
}

// Sign signs every body of the frozen transaction with the private key
func (t *Transaction) Sign(privateKey keys.PrivateKey) error {
	return t.SignWith(privateKey.PublicKey(), privateKey.Signer())
}

// SignWith signs every body of the frozen transaction using the signer. A signature already
// present for the public key is replaced
func (t *Transaction) SignWith(publicKey keys.PublicKey, signer keys.Signer) error {
	if err := t.transition(protocol.EventSign); err != nil {
		return err
	}
	for _, chunk := range t.signed {
		for _, signedTx := range chunk {
			sig, err := signer(signedTx.BodyBytes)
			if err != nil {
				return fmt.Errorf("sign transaction: %w", err)
			}
			addSignature(signedTx, publicKey, sig)
		}
	}
	return nil
}

// AddSignature adds a signature produced elsewhere over the body bytes. It is only allowed
// for a transaction with a single chunk and node, since each body needs its own signature
func (t *Transaction) AddSignature(publicKey keys.PublicKey, signature []byte) error {
	if err := t.transition(protocol.EventSign); err != nil {
		return err
	}
	if len(t.signed) != 1 || len(t.signed[0]) != 1 {
		return ErrMultipleBodies
	}
	addSignature(t.signed[0][0], publicKey, signature)
	return nil
}

func addSignature(signedTx *protocol.SignedTransaction, publicKey keys.PublicKey, sig []byte) {
	if signedTx.SigMap == nil {
		signedTx.SigMap = keys.NewSignatureMap()
	}
	signedTx.SigMap.Add(
		keys.SignaturePair{
			PublicKey: publicKey,
			Signature: sig,
		},
	)
	// The stored encoding no longer matches
	signedTx.SetCbor(nil)
}

// IsSignedBy returns true if every body carries a signature from the public key
func (t *Transaction) IsSignedBy(publicKey keys.PublicKey) bool {
	if len(t.signed) == 0 {
		return false
	}
	for _, chunk := range t.signed {
		for _, signedTx := range chunk {
			if signedTx.SigMap == nil || !signedTx.SigMap.Contains(publicKey) {
				return false
			}
		}
	}
	return true
}

func (t *Transaction) signedTransaction(
	chunk int,
	nodeAccountId ledger.AccountId,
) (*protocol.SignedTransaction, error) {
	if t.state == protocol.StateBuilding {
		return nil, protocol.IllegalStateError{State: t.state, Event: protocol.EventSign}
	}
	idx := slices.IndexFunc(t.nodeAccountIds, nodeAccountId.Equal)
	if chunk < 0 || chunk >= len(t.signed) || idx < 0 {
		return nil, ErrBodyNotFound
	}
	return t.signed[chunk][idx], nil
}

// SignatureMap returns the signatures collected for the body of a chunk sent to a node
func (t *Transaction) SignatureMap(
	chunk int,
	nodeAccountId ledger.AccountId,
) (*keys.SignatureMap, error) {
	signedTx, err := t.signedTransaction(chunk, nodeAccountId)
	if err != nil {
		return nil, err
	}
	if signedTx.SigMap == nil {
		return keys.NewSignatureMap(), nil
	}
	return signedTx.SigMap.Clone(), nil
}

// BodyBytes returns the bytes to be signed for a chunk sent to a node
func (t *Transaction) BodyBytes(chunk int, nodeAccountId ledger.AccountId) ([]byte, error) {
	signedTx, err := t.signedTransaction(chunk, nodeAccountId)
	if err != nil {
		return nil, err
	}
	return slices.Clone(signedTx.BodyBytes), nil
}

// TransactionHash returns the SHA-384 hash of the signed first chunk sent to a node
func (t *Transaction) TransactionHash(nodeAccountId ledger.AccountId) ([]byte, error) {
	signedTx, err := t.signedTransaction(0, nodeAccountId)
	if err != nil {
		return nil, err
	}
	signedBytes, err := cbor.Encode(signedTx)
	if err != nil {
		return nil, err
	}
	return transactionHash(signedBytes), nil
}

func transactionHash(signedBytes []byte) []byte {
	hash := sha512.Sum384(signedBytes)
	return hash[:]
}

// UsedChunks returns the number of chunks, which is known once the transaction is frozen
func (t *Transaction) UsedChunks() int {
	return len(t.chunks)
}
