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
	"time"
)

// Timestamp is the wire form of a point in time
type Timestamp struct {
	Seconds int64 `cbor:"1,keyasint,omitempty"`
	Nanos   int32 `cbor:"2,keyasint,omitempty"`
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()), // #nosec G115
	}
}

func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanos == 0
}

// Duration is the wire form of a length of time, in seconds
type Duration struct {
	Seconds int64 `cbor:"1,keyasint,omitempty"`
}

func NewDuration(d time.Duration) Duration {
	return Duration{Seconds: int64(d / time.Second)}
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d.Seconds) * time.Second
}

func (d Duration) IsZero() bool {
	return d.Seconds == 0
}
