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

// Package keys implements the key model used to authorize transactions: Ed25519 and
// ECDSA(secp256k1) key pairs, recursive key lists with optional thresholds, and the
// signature collections attached to signed transactions.
//
// ECDSA signatures are made over the Keccak-256 hash of the message and are carried on the
// wire in 64 byte r||s form.
package keys
