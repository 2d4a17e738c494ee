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

package cbor_test

import (
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/blinklabs-io/gohiero/cbor"
)

type decodeTestDefinition struct {
	CborHex   string
	Object    any
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{uint64(1), uint64(2), uint64(3)},
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []any{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest any
		bytesRead, err := cbor.Decode(cborData, &dest)
		if err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if test.BytesRead > 0 {
			if bytesRead != test.BytesRead {
				t.Fatalf(
					"expected to read %d bytes, read %d instead",
					test.BytesRead,
					bytesRead,
				)
			}
		}
		if !reflect.DeepEqual(dest, test.Object) {
			t.Fatalf(
				"CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v",
				dest,
				test.Object,
			)
		}
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	// {1: 5, 2: "hi", 3: 1}
	cborData, _ := hex.DecodeString("a30105026268690301")
	var dest testMessage
	if _, err := cbor.Decode(cborData, &dest); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := testMessage{Number: 5, Text: "hi"}
	if dest != expected {
		t.Fatalf("did not get expected object: got %#v, wanted %#v", dest, expected)
	}
}

func TestDecodeStrictTrailingData(t *testing.T) {
	cborData, _ := hex.DecodeString("a1010501")
	var dest testMessage
	if err := cbor.DecodeStrict(cborData, &dest); err == nil {
		t.Fatalf("did not get expected error for trailing data")
	}
}

func TestDecodeStoreCborPreservesBytes(t *testing.T) {
	// Keys in non-canonical order: {2: "hi", 1: 5}
	origHex := "a2026268690105"
	cborData, _ := hex.DecodeString(origHex)
	var msg testStoredMessage
	if _, err := cbor.Decode(cborData, &msg); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if msg.Number != 5 || msg.Text != "hi" {
		t.Fatalf("did not decode expected fields: %#v", msg)
	}
	out, err := cbor.Encode(&msg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if hex.EncodeToString(out) != origHex {
		t.Fatalf(
			"did not get original CBOR back\n  got: %x\n  wanted: %s",
			out,
			origHex,
		)
	}
	// Clearing the stored CBOR switches to canonical encoding
	msg.SetCbor(nil)
	out, err = cbor.Encode(&msg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if hex.EncodeToString(out) != "a2010502626869" {
		t.Fatalf(
			"did not get canonical CBOR\n  got: %x\n  wanted: %s",
			out,
			"a2010502626869",
		)
	}
}

func TestMajorType(t *testing.T) {
	majorType, ok := cbor.MajorType([]byte{0xa2, 0x01})
	if !ok || majorType != cbor.CborTypeMap {
		t.Fatalf("did not get expected major type: got %x, wanted %x", majorType, cbor.CborTypeMap)
	}
	if _, ok := cbor.MajorType(nil); ok {
		t.Fatalf("expected no major type for empty input")
	}
}
