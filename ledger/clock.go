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
	"sync"
	"time"
)

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by the system time
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// TransactionIdGenerator creates transaction IDs with strictly increasing valid start times
// within a process, so that two transactions from the same payer never share an ID
type TransactionIdGenerator struct {
	mutex sync.Mutex
	clock Clock
	last  time.Time
}

// NewTransactionIdGenerator returns a generator using the provided clock. A nil clock uses the
// system time
func NewTransactionIdGenerator(clock Clock) *TransactionIdGenerator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TransactionIdGenerator{
		clock: clock,
	}
}

// Generate returns a new transaction ID for the given payer
func (g *TransactionIdGenerator) Generate(payer AccountId) TransactionId {
	return g.GenerateChained(payer, 1)
}

// GenerateChained returns a new transaction ID for the given payer and reserves the following
// count-1 nanoseconds for chained chunk IDs
func (g *TransactionIdGenerator) GenerateChained(
	payer AccountId,
	count int,
) TransactionId {
	if count < 1 {
		count = 1
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	now := g.clock.Now().UTC()
	if !now.After(g.last) {
		now = g.last.Add(time.Nanosecond)
	}
	g.last = now.Add(time.Duration(count - 1))
	return NewTransactionId(payer, now)
}
