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

import "fmt"

// Status is a response code returned by a node, either as a pre-check result or as the
// consensus outcome in a receipt
type Status int32

const (
	StatusOk                            Status = 0
	StatusInvalidTransaction            Status = 1
	StatusPayerAccountNotFound          Status = 2
	StatusInvalidNodeAccount            Status = 3
	StatusTransactionExpired            Status = 4
	StatusInvalidTransactionStart       Status = 5
	StatusInvalidTransactionDuration    Status = 6
	StatusInvalidSignature              Status = 7
	StatusMemoTooLong                   Status = 8
	StatusInsufficientTxFee             Status = 9
	StatusInsufficientPayerBalance      Status = 10
	StatusDuplicateTransaction          Status = 11
	StatusBusy                          Status = 12
	StatusNotSupported                  Status = 13
	StatusInvalidFileId                 Status = 14
	StatusInvalidAccountId              Status = 15
	StatusInvalidContractId             Status = 16
	StatusInvalidTransactionId          Status = 17
	StatusReceiptNotFound               Status = 18
	StatusRecordNotFound                Status = 19
	StatusInvalidSolidityId             Status = 20
	StatusUnknown                       Status = 21
	StatusSuccess                       Status = 22
	StatusFailInvalid                   Status = 23
	StatusFailFee                       Status = 24
	StatusFailBalance                   Status = 25
	StatusKeyRequired                   Status = 26
	StatusBadEncoding                   Status = 27
	StatusInsufficientAccountBalance    Status = 28
	StatusInvalidSolidityAddress        Status = 29
	StatusInsufficientGas               Status = 30
	StatusContractDeleted               Status = 66
	StatusPlatformNotActive             Status = 67
	StatusPlatformTransactionNotCreated Status = 69
	StatusAccountDeleted                Status = 72
	StatusFileDeleted                   Status = 73
	StatusInvalidTopicId                Status = 150
	StatusInvalidTokenId                Status = 167
)

var statusNames = map[Status]string{
	StatusOk:                            "OK",
	StatusInvalidTransaction:            "INVALID_TRANSACTION",
	StatusPayerAccountNotFound:          "PAYER_ACCOUNT_NOT_FOUND",
	StatusInvalidNodeAccount:            "INVALID_NODE_ACCOUNT",
	StatusTransactionExpired:            "TRANSACTION_EXPIRED",
	StatusInvalidTransactionStart:       "INVALID_TRANSACTION_START",
	StatusInvalidTransactionDuration:    "INVALID_TRANSACTION_DURATION",
	StatusInvalidSignature:              "INVALID_SIGNATURE",
	StatusMemoTooLong:                   "MEMO_TOO_LONG",
	StatusInsufficientTxFee:             "INSUFFICIENT_TX_FEE",
	StatusInsufficientPayerBalance:      "INSUFFICIENT_PAYER_BALANCE",
	StatusDuplicateTransaction:          "DUPLICATE_TRANSACTION",
	StatusBusy:                          "BUSY",
	StatusNotSupported:                  "NOT_SUPPORTED",
	StatusInvalidFileId:                 "INVALID_FILE_ID",
	StatusInvalidAccountId:              "INVALID_ACCOUNT_ID",
	StatusInvalidContractId:             "INVALID_CONTRACT_ID",
	StatusInvalidTransactionId:          "INVALID_TRANSACTION_ID",
	StatusReceiptNotFound:               "RECEIPT_NOT_FOUND",
	StatusRecordNotFound:                "RECORD_NOT_FOUND",
	StatusInvalidSolidityId:             "INVALID_SOLIDITY_ID",
	StatusUnknown:                       "UNKNOWN",
	StatusSuccess:                       "SUCCESS",
	StatusFailInvalid:                   "FAIL_INVALID",
	StatusFailFee:                       "FAIL_FEE",
	StatusFailBalance:                   "FAIL_BALANCE",
	StatusKeyRequired:                   "KEY_REQUIRED",
	StatusBadEncoding:                   "BAD_ENCODING",
	StatusInsufficientAccountBalance:    "INSUFFICIENT_ACCOUNT_BALANCE",
	StatusInvalidSolidityAddress:        "INVALID_SOLIDITY_ADDRESS",
	StatusInsufficientGas:               "INSUFFICIENT_GAS",
	StatusContractDeleted:               "CONTRACT_DELETED",
	StatusPlatformNotActive:             "PLATFORM_NOT_ACTIVE",
	StatusPlatformTransactionNotCreated: "PLATFORM_TRANSACTION_NOT_CREATED",
	StatusAccountDeleted:                "ACCOUNT_DELETED",
	StatusFileDeleted:                   "FILE_DELETED",
	StatusInvalidTopicId:                "INVALID_TOPIC_ID",
	StatusInvalidTokenId:                "INVALID_TOKEN_ID",
}

// String returns the name of the status code
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}
