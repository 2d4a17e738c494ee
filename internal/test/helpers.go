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

package test

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/gohiero"
	"github.com/blinklabs-io/gohiero/internal/test/mocknode"
	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/stretchr/testify/require"
)

var (
	OperatorAccountId = ledger.NewEntityId(0, 0, 1001)
	OperatorKey       = PrivateKey(1)
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// PrivateKey returns a deterministic Ed25519 key derived from the seed
func PrivateKey(seed byte) keys.PrivateKey {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed + byte(i)
	}
	key, err := keys.PrivateKeyFromBytesEd25519(raw)
	if err != nil {
		panic(fmt.Sprintf("error creating key: %s", err))
	}
	return key
}

// NodeAccountId returns the account ID of node n
func NodeAccountId(n uint64) ledger.AccountId {
	return ledger.NewEntityId(0, 0, n)
}

// DiscardLogger returns a logger that drops all output
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FastDispatchConfig returns retry settings with short backoff for tests
func FastDispatchConfig(opts ...protocol.DispatchOptionFunc) protocol.DispatchConfig {
	return protocol.NewDispatchConfig(
		append(
			[]protocol.DispatchOptionFunc{
				protocol.WithMaxAttempts(5),
				protocol.WithRequestTimeout(2 * time.Second),
				protocol.WithMinBackoff(time.Millisecond),
				protocol.WithMaxBackoff(4 * time.Millisecond),
			},
			opts...,
		)...,
	)
}

// NewClient returns a client connected to the mock cluster with the test operator. The caller
// must close the client
func NewClient(
	t testing.TB,
	cluster *mocknode.Cluster,
	opts ...hiero.ClientOptionFunc,
) *hiero.Client {
	t.Helper()
	client, err := hiero.NewClient(
		append(
			[]hiero.ClientOptionFunc{
				hiero.WithNetwork(cluster.Network()),
				hiero.WithDialer(cluster.Dial),
				hiero.WithLedgerId(ledger.LedgerIdTestnet),
				hiero.WithOperator(OperatorAccountId, OperatorKey),
				hiero.WithLogger(DiscardLogger()),
				hiero.WithDispatchConfig(FastDispatchConfig()),
			},
			opts...,
		)...,
	)
	require.NoError(t, err)
	return client
}
