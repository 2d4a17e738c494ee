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

import "fmt"

// Method identifies a node RPC. It is carried in the muxer segment header
type Method uint16

const (
	MethodCryptoTransfer         Method = 1
	MethodCryptoCreateAccount    Method = 2
	MethodConsensusSubmitMessage Method = 3
	MethodFileAppend             Method = 4
	MethodTokenWipe              Method = 5
	MethodFileSystemUndelete     Method = 6
	MethodContractSystemUndelete Method = 7
	MethodNodeDelete             Method = 8

	MethodCryptoGetAccountBalance Method = 32
	MethodTransactionGetReceipt   Method = 33
	MethodTransactionGetRecord    Method = 34
)

var methodNames = map[Method]string{
	MethodCryptoTransfer:          "CryptoService/cryptoTransfer",
	MethodCryptoCreateAccount:     "CryptoService/createAccount",
	MethodConsensusSubmitMessage:  "ConsensusService/submitMessage",
	MethodFileAppend:              "FileService/appendContent",
	MethodTokenWipe:               "TokenService/wipeTokenAccount",
	MethodFileSystemUndelete:      "FileService/systemUndelete",
	MethodContractSystemUndelete:  "SmartContractService/systemUndelete",
	MethodNodeDelete:              "AddressBookService/deleteNode",
	MethodCryptoGetAccountBalance: "CryptoService/cryptoGetBalance",
	MethodTransactionGetReceipt:   "CryptoService/getTransactionReceipts",
	MethodTransactionGetRecord:    "CryptoService/getTxRecordByTxID",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", uint16(m))
}

// IsQuery returns true for methods that carry a Query rather than a Transaction
func (m Method) IsQuery() bool {
	return m >= MethodCryptoGetAccountBalance
}
