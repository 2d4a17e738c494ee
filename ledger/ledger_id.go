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

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// LedgerId identifies a network. It feeds into entity ID checksums
type LedgerId []byte

var (
	LedgerIdMainnet    = LedgerId{0x00}
	LedgerIdTestnet    = LedgerId{0x01}
	LedgerIdPreviewnet = LedgerId{0x02}
)

// LedgerIdFromString returns the LedgerId for a network name or a hex string
func LedgerIdFromString(name string) (LedgerId, error) {
	switch strings.ToLower(name) {
	case "mainnet":
		return LedgerIdMainnet, nil
	case "testnet":
		return LedgerIdTestnet, nil
	case "previewnet":
		return LedgerIdPreviewnet, nil
	}
	tmp, err := hex.DecodeString(name)
	if err != nil {
		return nil, err
	}
	return LedgerId(tmp), nil
}

func (l LedgerId) Equal(other LedgerId) bool {
	return bytes.Equal(l, other)
}

func (l LedgerId) String() string {
	switch {
	case l.Equal(LedgerIdMainnet):
		return "mainnet"
	case l.Equal(LedgerIdTestnet):
		return "testnet"
	case l.Equal(LedgerIdPreviewnet):
		return "previewnet"
	}
	return hex.EncodeToString(l)
}

const (
	checksumP3     = 26 * 26 * 26
	checksumP5     = 26 * 26 * 26 * 26 * 26
	checksumM      = 1_000_003
	checksumW      = 31
	checksumLength = 5
)

// calculateChecksum computes the 5 letter checksum for a "shard.realm.num" string on the
// given ledger
func calculateChecksum(ledgerId LedgerId, addr string) string {
	var sd0, sd1, sd, sh, c uint64
	for i := range len(addr) {
		var digit uint64 = 10
		if addr[i] != '.' {
			digit = uint64(addr[i] - '0')
		}
		sd = (checksumW*sd + digit) % checksumP3
		if i%2 == 0 {
			sd0 = (sd0 + digit) % 11
		} else {
			sd1 = (sd1 + digit) % 11
		}
	}
	// The ledger ID is followed by 6 zero bytes
	h := make([]byte, len(ledgerId)+6)
	copy(h, ledgerId)
	for _, b := range h {
		sh = (checksumW*sh + uint64(b)) % checksumP5
	}
	c = ((((uint64(len(addr))%5)*11+sd0)*11+sd1)*checksumP3 + sd + sh) % checksumP5
	c = (c * checksumM) % checksumP5
	ret := make([]byte, checksumLength)
	for i := checksumLength - 1; i >= 0; i-- {
		ret[i] = byte('a' + c%26)
		c /= 26
	}
	return string(ret)
}
