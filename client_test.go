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

package hiero_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blinklabs-io/gohiero"
	"github.com/blinklabs-io/gohiero/internal/test"
	"github.com/blinklabs-io/gohiero/internal/test/mocknode"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/muxer"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func echo(_ protocol.Method, payload []byte) ([]byte, error) {
	return append([]byte("echo:"), payload...), nil
}

func TestNewClientRequiresNetwork(t *testing.T) {
	_, err := hiero.NewClient()
	assert.ErrorIs(t, err, hiero.ErrNoNetwork)
}

func TestNewClientInvalidDispatchConfig(t *testing.T) {
	_, err := hiero.NewClient(
		hiero.WithNamedNetwork(hiero.NetworkTestnet),
		hiero.WithDispatchConfig(
			protocol.NewDispatchConfig(protocol.WithMaxAttempts(0)),
		),
	)
	assert.ErrorIs(t, err, hiero.ErrInvalidConfig)
}

func TestNewClientOperatorChecksum(t *testing.T) {
	accountId, err := ledger.ParseEntityId("0.0.1001-aaaaa")
	require.NoError(t, err)
	_, err = hiero.NewClient(
		hiero.WithNamedNetwork(hiero.NetworkTestnet),
		hiero.WithAutoValidateChecksums(true),
		hiero.WithOperator(accountId, test.OperatorKey),
	)
	var checksumErr ledger.ChecksumValidationError
	assert.ErrorAs(t, err, &checksumErr)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := hiero.NewClient(hiero.WithNamedNetwork(hiero.NetworkTestnet))
	require.NoError(t, err)
	defer client.Close()
	assert.True(t, client.LedgerId().Equal(ledger.LedgerIdTestnet))
	assert.Nil(t, client.Operator())
	assert.Equal(t, hiero.DefaultMaxTransactionFee, client.DefaultMaxTransactionFee())
	assert.Equal(t, hiero.DefaultMaxQueryPayment, client.DefaultMaxQueryPayment())
	assert.Equal(t, protocol.DefaultMaxAttempts, client.DispatchConfig().MaxAttempts)
	assert.NotNil(t, client.Logger())
	assert.Len(t, client.Network().NodeAccountIds(), 4)
}

func TestClientOperator(t *testing.T) {
	client, err := hiero.NewClient(
		hiero.WithNamedNetwork(hiero.NetworkTestnet),
		hiero.WithOperator(test.OperatorAccountId, test.OperatorKey),
	)
	require.NoError(t, err)
	defer client.Close()
	accountId, ok := client.OperatorAccountId()
	require.True(t, ok)
	assert.True(t, accountId.Equal(test.OperatorAccountId))
	publicKey, ok := client.OperatorPublicKey()
	require.True(t, ok)
	assert.True(t, publicKey.Equal(test.OperatorKey.PublicKey()))
	sig, err := client.Operator().Signer([]byte("message"))
	require.NoError(t, err)
	assert.True(t, publicKey.Verify([]byte("message"), sig))
}

func TestNodePoolChannel(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(test.NodeAccountId(3), echo)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	ctx := context.Background()
	channel, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.NoError(t, err)
	resp, err := channel.Request(ctx, uint16(protocol.MethodCryptoTransfer), []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, []byte("echo:ping"), resp)

	// The connection is reused
	again, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.NoError(t, err)
	assert.Same(t, channel, again)

	requests := node.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, protocol.MethodCryptoTransfer, requests[0].Method)
	assert.Equal(t, []byte("ping"), requests[0].Payload)
}

func TestNodePoolReconnect(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.Sequence(mocknode.Drop(), echo),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	ctx := context.Background()
	channel, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.NoError(t, err)
	_, err = channel.Request(ctx, uint16(protocol.MethodCryptoTransfer), []byte("first"))
	require.Error(t, err)
	<-channel.(*muxer.Muxer).Done()

	next, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.NoError(t, err)
	assert.NotSame(t, channel, next)
	resp, err := next.Request(ctx, uint16(protocol.MethodCryptoTransfer), []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, []byte("echo:second"), resp)
}

func TestNodePoolUnknownNode(t *testing.T) {
	node := mocknode.NewNode(test.NodeAccountId(3), echo)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()
	_, err := client.Network().Channel(context.Background(), test.NodeAccountId(99))
	assert.ErrorIs(t, err, protocol.ErrNodeNotFound)
}

func TestNodePoolDialFailure(t *testing.T) {
	errRefused := errors.New("connection refused")
	node := mocknode.NewNode(test.NodeAccountId(3), echo)
	node.SetDialError(errRefused)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()
	_, err := client.Network().Channel(context.Background(), test.NodeAccountId(3))
	require.ErrorIs(t, err, errRefused)
	assert.NotErrorIs(t, err, protocol.ErrNodeNotFound)
}

func TestNodePoolDialDoesNotBlockOtherCallers(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(test.NodeAccountId(3), echo)
	node.SetDialHang(true)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	slowCtx, slowCancel := context.WithCancel(context.Background())
	slowDone := make(chan error, 1)
	go func() {
		_, err := client.Network().Channel(slowCtx, test.NodeAccountId(3))
		slowDone <- err
	}()
	// A second caller gives up on its own deadline while the first is still dialing
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	slowCancel()
	select {
	case err := <-slowDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dial did not stop after its context was canceled")
	}
}

func TestNodePoolOrderAndAddresses(t *testing.T) {
	pool := hiero.NewNodePool(
		hiero.NodePoolConfig{
			Network: map[string]ledger.AccountId{
				"10.0.0.10:50211": test.NodeAccountId(10),
				"10.0.0.4:50211":  test.NodeAccountId(4),
				"10.0.0.3:50211":  test.NodeAccountId(3),
				"10.0.1.3:50211":  test.NodeAccountId(3),
			},
			Logger: test.DiscardLogger(),
		},
	)
	defer pool.Close()
	ids := pool.NodeAccountIds()
	require.Len(t, ids, 3)
	for i, num := range []uint64{3, 4, 10} {
		assert.Equal(t, num, ids[i].Num())
	}
	assert.Equal(
		t,
		[]string{"10.0.0.3:50211", "10.0.1.3:50211"},
		pool.Addresses(test.NodeAccountId(3)),
	)
	assert.Nil(t, pool.Addresses(test.NodeAccountId(5)))
}

func TestNodePoolFallbackAddress(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(test.NodeAccountId(3), echo)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	network := cluster.Network()
	// Sorts ahead of the mock node address and is unreachable
	network["a-unreachable.mock:50211"] = test.NodeAccountId(3)
	client := test.NewClient(t, cluster, hiero.WithNetwork(network))
	defer client.Close()
	ctx := context.Background()
	channel, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.NoError(t, err)
	resp, err := channel.Request(ctx, uint16(protocol.MethodCryptoTransfer), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("echo:x"), resp)
}

func TestClientClose(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(test.NodeAccountId(3), echo)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	channel, err := client.Network().Channel(ctx, test.NodeAccountId(3))
	require.NoError(t, err)
	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
	_, err = channel.Request(ctx, uint16(protocol.MethodCryptoTransfer), nil)
	assert.ErrorIs(t, err, muxer.ErrMuxerShuttingDown)
	_, err = client.Network().Channel(ctx, test.NodeAccountId(3))
	assert.ErrorIs(t, err, hiero.ErrClientClosed)
}
