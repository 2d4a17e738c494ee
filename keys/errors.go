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

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedKeyType = errors.New("unsupported key type")
	ErrInvalidThreshold   = errors.New("invalid threshold")
)

// KeyParseError is returned when key bytes or a key string cannot be parsed
type KeyParseError struct {
	Message string
	Err     error
}

func (e KeyParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse key: %s: %s", e.Message, e.Err)
	}
	return "failed to parse key: " + e.Message
}

func (e KeyParseError) Unwrap() error {
	return e.Err
}

func newKeyParseError(msg string, err error) KeyParseError {
	return KeyParseError{
		Message: msg,
		Err:     err,
	}
}
