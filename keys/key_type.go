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

package keys

// KeyType is the signature algorithm family of a key
type KeyType uint8

const (
	KeyTypeEd25519        KeyType = 1
	KeyTypeEcdsaSecp256k1 KeyType = 2
)

func (t KeyType) String() string {
	switch t {
	case KeyTypeEd25519:
		return "Ed25519"
	case KeyTypeEcdsaSecp256k1:
		return "ECDSA(secp256k1)"
	}
	return "unknown"
}
