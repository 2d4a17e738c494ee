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
	"fmt"
	"strconv"
)

// Hbar is an amount of the native currency, stored in tinybars
type Hbar int64

const (
	Tinybar Hbar = 1
	// 1 hbar is 100,000,000 tinybars
	HbarUnit Hbar = 100_000_000
)

// NewHbar returns the given whole number of hbars
func NewHbar(hbars int64) Hbar {
	return Hbar(hbars) * HbarUnit
}

func HbarFromTinybars(tinybars int64) Hbar {
	return Hbar(tinybars)
}

func (h Hbar) Tinybars() int64 {
	return int64(h)
}

func (h Hbar) String() string {
	if h%HbarUnit == 0 {
		return fmt.Sprintf("%d ℏ", int64(h/HbarUnit))
	}
	return strconv.FormatInt(int64(h), 10) + " tℏ"
}
