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
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
)

// FileAppendTransaction appends contents to a file. Contents larger than the max chunk size are
// sent as several transactions, and each chunk's receipt is awaited before the next is sent so
// that the chunks are applied in order
type FileAppendTransaction struct {
	*Transaction
	chunkedData
	fileId ledger.FileId
}

func NewFileAppendTransaction() *FileAppendTransaction {
	t := &FileAppendTransaction{
		chunkedData: newChunkedData(),
	}
	t.Transaction = newTransaction(t)
	return t
}

func fileAppendFromWire(bodies []protocol.TransactionBody) (*FileAppendTransaction, error) {
	t := NewFileAppendTransaction()
	chunks := make([][]byte, 0, len(bodies))
	for _, body := range bodies {
		if body.FileAppend == nil {
			return nil, ErrUnknownTransactionBody
		}
		chunks = append(chunks, body.FileAppend.Contents)
	}
	t.fileId = bodies[0].FileAppend.FileId
	t.chunkedData = chunkedFromWire(chunks)
	return t, nil
}

func (t *FileAppendTransaction) SetFileId(fileId ledger.FileId) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.fileId = fileId
	return nil
}

func (t *FileAppendTransaction) FileId() ledger.FileId {
	return t.fileId
}

func (t *FileAppendTransaction) SetContents(contents []byte) error {
	if err := t.modify(); err != nil {
		return err
	}
	t.data = append([]byte{}, contents...)
	return nil
}

func (t *FileAppendTransaction) Contents() []byte {
	return append([]byte{}, t.data...)
}

func (t *FileAppendTransaction) SetMaxChunkSize(maxChunkSize int) error {
	if err := t.modify(); err != nil {
		return err
	}
	return t.setMaxChunkSize(maxChunkSize)
}

func (t *FileAppendTransaction) SetMaxChunks(maxChunks int) error {
	if err := t.modify(); err != nil {
		return err
	}
	return t.setMaxChunks(maxChunks)
}

func (t *FileAppendTransaction) Method() protocol.Method {
	return protocol.MethodFileAppend
}

func (t *FileAppendTransaction) WireBody(chunk ledger.ChunkInfo) (protocol.TransactionBody, error) {
	contents, err := t.chunk(chunk.Current)
	if err != nil {
		return protocol.TransactionBody{}, err
	}
	return protocol.TransactionBody{
		FileAppend: &protocol.FileAppendBody{
			FileId:   t.fileId,
			Contents: contents,
		},
	}, nil
}

func (t *FileAppendTransaction) ValidateChecksums(ledgerId ledger.LedgerId) error {
	return t.fileId.ValidateChecksum(ledgerId)
}

func (t *FileAppendTransaction) waitForReceipt() bool {
	return true
}
