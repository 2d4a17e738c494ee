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

package muxer

import (
	"time"
)

const (
	// Bit set on the method of response segments
	SegmentMethodResponseFlag = 0x8000

	// Size of the encoded segment header
	SegmentHeaderSize = 14

	// Maximum payload length accepted from the remote side
	SegmentMaxPayloadLength = 16 * 1024 * 1024
)

// SegmentHeader is the fixed size big-endian header preceding every payload
type SegmentHeader struct {
	Timestamp     uint32
	Method        uint16
	RequestId     uint32
	PayloadLength uint32
}

type Segment struct {
	SegmentHeader
	Payload []byte
}

func NewSegment(
	method uint16,
	requestId uint32,
	payload []byte,
	isResponse bool,
) *Segment {
	header := SegmentHeader{
		Timestamp: uint32(time.Now().UnixNano() & 0xffffffff), // #nosec G115
		Method:    method,
		RequestId: requestId,
	}
	if isResponse {
		header.Method = header.Method | SegmentMethodResponseFlag
	}
	header.PayloadLength = uint32(len(payload)) // #nosec G115
	segment := &Segment{
		SegmentHeader: header,
		Payload:       payload,
	}
	return segment
}

func (s *SegmentHeader) IsRequest() bool {
	return (s.Method & SegmentMethodResponseFlag) == 0
}

func (s *SegmentHeader) IsResponse() bool {
	return (s.Method & SegmentMethodResponseFlag) > 0
}

func (s *SegmentHeader) GetMethod() uint16 {
	return s.Method &^ SegmentMethodResponseFlag
}
