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

// Package cbor provides the wire codec used for all ledger messages.
//
// This package wraps github.com/fxamacker/cbor/v2. Messages are encoded as CBOR
// maps keyed by small integers (field numbers), using the `keyasint` struct tag:
//
//	type TransactionId struct {
//	    ValidStart Timestamp `cbor:"1,keyasint,omitempty"`
//	    AccountId  AccountId `cbor:"2,keyasint,omitempty"`
//	}
//
// Encoding is deterministic (core deterministic map key ordering, shortest
// integer forms), so encoding the same value twice produces identical bytes.
// Decoding ignores unknown field numbers, which lets newer peers add fields
// without breaking older clients.
//
// # Preserving original bytes: DecodeStoreCbor
//
// Signed payloads must be re-emitted exactly as they were received. Types that
// need this embed DecodeStoreCbor and store the raw bytes in UnmarshalCBOR:
//
//	func (s *SignedTransaction) UnmarshalCBOR(data []byte) error {
//	    if err := cbor.DecodeGeneric(data, s); err != nil {
//	        return err
//	    }
//	    s.SetCbor(data)
//	    return nil
//	}
//
// MarshalCBOR then returns Cbor() when it is set and falls back to
// EncodeGeneric otherwise. Any mutation must clear the stored bytes with
// SetCbor(nil).
package cbor
