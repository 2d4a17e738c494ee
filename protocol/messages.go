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

package protocol

import (
	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
)

// TransactionBody is the signed content of a transaction. Exactly one operation body is set
type TransactionBody struct {
	TransactionId            ledger.TransactionId `cbor:"1,keyasint,omitzero"`
	NodeAccountId            ledger.AccountId     `cbor:"2,keyasint,omitzero"`
	TransactionFee           uint64               `cbor:"3,keyasint,omitempty"`
	TransactionValidDuration ledger.Duration      `cbor:"4,keyasint,omitzero"`
	Memo                     string               `cbor:"5,keyasint,omitempty"`

	CryptoTransfer         *CryptoTransferBody         `cbor:"16,keyasint,omitempty"`
	CryptoCreateAccount    *CryptoCreateAccountBody    `cbor:"17,keyasint,omitempty"`
	ConsensusSubmitMessage *ConsensusSubmitMessageBody `cbor:"18,keyasint,omitempty"`
	FileAppend             *FileAppendBody             `cbor:"19,keyasint,omitempty"`
	TokenWipe              *TokenWipeBody              `cbor:"20,keyasint,omitempty"`
	SystemUndelete         *SystemUndeleteBody         `cbor:"21,keyasint,omitempty"`
	NodeDelete             *NodeDeleteBody             `cbor:"22,keyasint,omitempty"`
}

type CryptoTransferBody struct {
	Transfers []ledger.Transfer `cbor:"1,keyasint,omitempty"`
}

type CryptoCreateAccountBody struct {
	Key                           *keys.Key         `cbor:"1,keyasint,omitempty"`
	InitialBalance                uint64            `cbor:"2,keyasint,omitempty"`
	ReceiverSigRequired           bool              `cbor:"3,keyasint,omitempty"`
	AutoRenewPeriod               ledger.Duration   `cbor:"4,keyasint,omitzero"`
	Memo                          string            `cbor:"5,keyasint,omitempty"`
	MaxAutomaticTokenAssociations int32             `cbor:"6,keyasint,omitempty"`
	Alias                         []byte            `cbor:"7,keyasint,omitempty"`
	StakedAccountId               *ledger.AccountId `cbor:"8,keyasint,omitempty"`
	StakedNodeId                  *int64            `cbor:"9,keyasint,omitempty"`
	DeclineReward                 bool              `cbor:"10,keyasint,omitempty"`
}

type ConsensusSubmitMessageBody struct {
	TopicId   ledger.TopicId    `cbor:"1,keyasint,omitzero"`
	Message   []byte            `cbor:"2,keyasint,omitempty"`
	ChunkInfo *ledger.ChunkInfo `cbor:"3,keyasint,omitempty"`
}

type FileAppendBody struct {
	FileId   ledger.FileId `cbor:"1,keyasint,omitzero"`
	Contents []byte        `cbor:"2,keyasint,omitempty"`
}

type TokenWipeBody struct {
	Token         ledger.TokenId   `cbor:"1,keyasint,omitzero"`
	Account       ledger.AccountId `cbor:"2,keyasint,omitzero"`
	Amount        uint64           `cbor:"3,keyasint,omitempty"`
	SerialNumbers []int64          `cbor:"4,keyasint,omitempty"`
}

type SystemUndeleteBody struct {
	FileId     *ledger.FileId     `cbor:"1,keyasint,omitempty"`
	ContractId *ledger.ContractId `cbor:"2,keyasint,omitempty"`
}

type NodeDeleteBody struct {
	NodeId uint64 `cbor:"1,keyasint,omitempty"`
}

// SignedTransaction pairs the body bytes with the signatures over them. The original CBOR is
// kept on decode so that an unmodified transaction re-encodes to identical bytes
type SignedTransaction struct {
	cbor.DecodeStoreCbor
	BodyBytes []byte             `cbor:"1,keyasint,omitempty"`
	SigMap    *keys.SignatureMap `cbor:"2,keyasint,omitempty"`
}

func (s *SignedTransaction) UnmarshalCBOR(data []byte) error {
	if err := cbor.DecodeGeneric(data, s); err != nil {
		return err
	}
	s.SetCbor(data)
	return nil
}

func (s *SignedTransaction) MarshalCBOR() ([]byte, error) {
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}

// Transaction is the unit submitted to a node
type Transaction struct {
	SignedTransactionBytes []byte `cbor:"1,keyasint,omitempty"`
}

// TransactionList is the serialized form of a frozen transaction: one entry per chunk and node
type TransactionList struct {
	cbor.DecodeStoreCbor
	Transactions []Transaction `cbor:"1,keyasint"`
}

func (l *TransactionList) UnmarshalCBOR(data []byte) error {
	if err := cbor.DecodeGeneric(data, l); err != nil {
		return err
	}
	l.SetCbor(data)
	return nil
}

func (l *TransactionList) MarshalCBOR() ([]byte, error) {
	if l.Cbor() != nil {
		return l.Cbor(), nil
	}
	return cbor.EncodeGeneric(l)
}

// TransactionResponse is the node's synchronous answer to a submitted transaction
type TransactionResponse struct {
	NodeTransactionPrecheckCode ledger.Status `cbor:"1,keyasint,omitempty"`
	Cost                        uint64        `cbor:"2,keyasint,omitempty"`
}

type ResponseType int32

const (
	ResponseTypeAnswerOnly ResponseType = 0
	ResponseTypeCostAnswer ResponseType = 2
)

type QueryHeader struct {
	Payment      *Transaction `cbor:"1,keyasint,omitempty"`
	ResponseType ResponseType `cbor:"2,keyasint,omitempty"`
}

type ResponseHeader struct {
	NodeTransactionPrecheckCode ledger.Status `cbor:"1,keyasint,omitempty"`
	ResponseType                ResponseType  `cbor:"2,keyasint,omitempty"`
	Cost                        uint64        `cbor:"3,keyasint,omitempty"`
}

// Query is a request for information from a node. Exactly one query body is set
type Query struct {
	CryptoGetAccountBalance *CryptoGetAccountBalanceQuery `cbor:"1,keyasint,omitempty"`
	TransactionGetReceipt   *TransactionGetReceiptQuery   `cbor:"2,keyasint,omitempty"`
	TransactionGetRecord    *TransactionGetRecordQuery    `cbor:"3,keyasint,omitempty"`
}

type CryptoGetAccountBalanceQuery struct {
	Header     *QueryHeader       `cbor:"1,keyasint,omitempty"`
	AccountId  *ledger.AccountId  `cbor:"2,keyasint,omitempty"`
	ContractId *ledger.ContractId `cbor:"3,keyasint,omitempty"`
}

type TransactionGetReceiptQuery struct {
	Header               *QueryHeader         `cbor:"1,keyasint,omitempty"`
	TransactionId        ledger.TransactionId `cbor:"2,keyasint,omitzero"`
	IncludeDuplicates    bool                 `cbor:"3,keyasint,omitempty"`
	IncludeChildReceipts bool                 `cbor:"4,keyasint,omitempty"`
}

type TransactionGetRecordQuery struct {
	Header              *QueryHeader         `cbor:"1,keyasint,omitempty"`
	TransactionId       ledger.TransactionId `cbor:"2,keyasint,omitzero"`
	IncludeDuplicates   bool                 `cbor:"3,keyasint,omitempty"`
	IncludeChildRecords bool                 `cbor:"4,keyasint,omitempty"`
}

// Response is a node's answer to a Query. Exactly one response body is set
type Response struct {
	CryptoGetAccountBalance *CryptoGetAccountBalanceResponse `cbor:"1,keyasint,omitempty"`
	TransactionGetReceipt   *TransactionGetReceiptResponse   `cbor:"2,keyasint,omitempty"`
	TransactionGetRecord    *TransactionGetRecordResponse    `cbor:"3,keyasint,omitempty"`
}

// Header returns the header of whichever response body is set
func (r *Response) Header() ResponseHeader {
	var hdr *ResponseHeader
	switch {
	case r.CryptoGetAccountBalance != nil:
		hdr = r.CryptoGetAccountBalance.Header
	case r.TransactionGetReceipt != nil:
		hdr = r.TransactionGetReceipt.Header
	case r.TransactionGetRecord != nil:
		hdr = r.TransactionGetRecord.Header
	}
	if hdr == nil {
		return ResponseHeader{}
	}
	return *hdr
}

type CryptoGetAccountBalanceResponse struct {
	Header        *ResponseHeader       `cbor:"1,keyasint,omitempty"`
	AccountId     ledger.AccountId      `cbor:"2,keyasint,omitzero"`
	Balance       uint64                `cbor:"3,keyasint,omitempty"`
	TokenBalances []ledger.TokenBalance `cbor:"4,keyasint,omitempty"`
}

type TransactionGetReceiptResponse struct {
	Header                       *ResponseHeader  `cbor:"1,keyasint,omitempty"`
	Receipt                      *ledger.Receipt  `cbor:"2,keyasint,omitempty"`
	DuplicateTransactionReceipts []ledger.Receipt `cbor:"3,keyasint,omitempty"`
	ChildTransactionReceipts     []ledger.Receipt `cbor:"4,keyasint,omitempty"`
}

type TransactionGetRecordResponse struct {
	Header                      *ResponseHeader `cbor:"1,keyasint,omitempty"`
	TransactionRecord           *ledger.Record  `cbor:"2,keyasint,omitempty"`
	DuplicateTransactionRecords []ledger.Record `cbor:"3,keyasint,omitempty"`
	ChildTransactionRecords     []ledger.Record `cbor:"4,keyasint,omitempty"`
}
