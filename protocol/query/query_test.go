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

package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/blinklabs-io/gohiero/cbor"
	"github.com/blinklabs-io/gohiero/internal/test"
	"github.com/blinklabs-io/gohiero/internal/test/mocknode"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/blinklabs-io/gohiero/protocol/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var testTransactionId = ledger.NewTransactionId(
	test.OperatorAccountId,
	time.Unix(1_700_000_000, 0),
)

// withCost answers cost lookups with the given cost and passes answer requests to the handler
func withCost(method protocol.Method, cost uint64, handler mocknode.Handler) mocknode.Handler {
	costHandler := mocknode.QueryPrecheck(method, ledger.StatusOk, cost)
	return func(m protocol.Method, payload []byte) ([]byte, error) {
		wireQuery, err := mocknode.DecodeQuery(payload)
		if err != nil {
			return nil, err
		}
		if wireQuery.TransactionGetRecord != nil &&
			wireQuery.TransactionGetRecord.Header.ResponseType == protocol.ResponseTypeCostAnswer {
			return costHandler(m, payload)
		}
		return handler(m, payload)
	}
}

// paymentTransfers decodes the payment attached to a record query
func paymentTransfers(t *testing.T, req mocknode.Request) []ledger.Transfer {
	t.Helper()
	wireQuery, err := mocknode.DecodeQuery(req.Payload)
	require.NoError(t, err)
	require.NotNil(t, wireQuery.TransactionGetRecord)
	payment := wireQuery.TransactionGetRecord.Header.Payment
	require.NotNil(t, payment)
	var signedTx protocol.SignedTransaction
	require.NoError(t, cbor.DecodeStrict(payment.SignedTransactionBytes, &signedTx))
	sig, ok := signedTx.SigMap.Get(test.OperatorKey.PublicKey())
	require.True(t, ok)
	require.True(t, test.OperatorKey.PublicKey().Verify(signedTx.BodyBytes, sig))
	var body protocol.TransactionBody
	require.NoError(t, cbor.DecodeStrict(signedTx.BodyBytes, &body))
	require.NotNil(t, body.CryptoTransfer)
	return body.CryptoTransfer.Transfers
}

func TestAccountBalanceQuery(t *testing.T) {
	defer goleak.VerifyNone(t)
	accountId := ledger.NewEntityId(0, 0, 1002)
	tokenId := ledger.NewEntityId(0, 0, 7)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.Reply(
			&protocol.Response{
				CryptoGetAccountBalance: &protocol.CryptoGetAccountBalanceResponse{
					Header:    &protocol.ResponseHeader{},
					AccountId: accountId,
					Balance:   1_500_000_000,
					TokenBalances: []ledger.TokenBalance{
						{TokenId: tokenId, Balance: 42, Decimals: 2},
					},
				},
			},
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewAccountBalanceQuery()
	q.SetAccountId(accountId)
	balance, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	assert.True(t, balance.AccountId.Equal(accountId))
	assert.Equal(t, ledger.NewHbar(15), balance.Hbars)
	assert.Equal(t, map[ledger.TokenId]uint64{tokenId: 42}, balance.TokenBalances())

	requests := node.Requests()
	require.Len(t, requests, 1)
	wireQuery, err := mocknode.DecodeQuery(requests[0].Payload)
	require.NoError(t, err)
	require.NotNil(t, wireQuery.CryptoGetAccountBalance)
	// Free queries carry no payment
	assert.Nil(t, wireQuery.CryptoGetAccountBalance.Header.Payment)
	require.NotNil(t, wireQuery.CryptoGetAccountBalance.AccountId)
	assert.True(t, wireQuery.CryptoGetAccountBalance.AccountId.Equal(accountId))
}

func TestAccountBalanceQueryRequiresTarget(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(test.NodeAccountId(3), mocknode.Drop())
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	_, err := query.NewAccountBalanceQuery().Execute(context.Background(), client)
	assert.ErrorIs(t, err, query.ErrNoAccountId)
	assert.Empty(t, node.Requests())
}

func TestAccountBalanceQueryFailover(t *testing.T) {
	defer goleak.VerifyNone(t)
	node3 := mocknode.NewNode(test.NodeAccountId(3), mocknode.Drop())
	node4 := mocknode.NewNode(
		test.NodeAccountId(4),
		mocknode.Reply(
			&protocol.Response{
				CryptoGetAccountBalance: &protocol.CryptoGetAccountBalanceResponse{
					Header:  &protocol.ResponseHeader{},
					Balance: 100,
				},
			},
		),
	)
	cluster := mocknode.NewCluster(node3, node4)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewAccountBalanceQuery()
	q.SetAccountId(ledger.NewEntityId(0, 0, 1002))
	balance, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, ledger.HbarFromTinybars(100), balance.Hbars)
	assert.Len(t, node3.Requests(), 1)
	assert.Len(t, node4.Requests(), 1)

	// Explicit nodes skip the rest of the network
	q.SetNodeAccountIds(test.NodeAccountId(4))
	_, err = q.Execute(context.Background(), client)
	require.NoError(t, err)
	assert.Len(t, node3.Requests(), 1)
	assert.Len(t, node4.Requests(), 2)
}

func TestReceiptQueryPolls(t *testing.T) {
	defer goleak.VerifyNone(t)
	createdAccountId := ledger.NewEntityId(0, 0, 2000)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.Sequence(
			mocknode.QueryPrecheck(protocol.MethodTransactionGetReceipt, ledger.StatusReceiptNotFound, 0),
			mocknode.ReceiptStatus(ledger.StatusUnknown),
			mocknode.ReceiptStatus(ledger.StatusUnknown),
			mocknode.ReceiptStatus(ledger.StatusUnknown),
			mocknode.Receipt(
				ledger.Receipt{
					Status:    ledger.StatusSuccess,
					AccountId: &createdAccountId,
				},
			),
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPollInterval(time.Millisecond, 4*time.Millisecond)
	receipt, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusSuccess, receipt.Status)
	require.NotNil(t, receipt.AccountId)
	assert.Equal(t, uint64(2000), receipt.AccountId.Num())
	require.NotNil(t, receipt.TransactionId)
	assert.True(t, receipt.TransactionId.Equal(testTransactionId))
	assert.Len(t, node.Requests(), 5)

	wireQuery, err := mocknode.DecodeQuery(node.Requests()[0].Payload)
	require.NoError(t, err)
	require.NotNil(t, wireQuery.TransactionGetReceipt)
	assert.True(t, wireQuery.TransactionGetReceipt.TransactionId.Equal(testTransactionId))
	assert.Nil(t, wireQuery.TransactionGetReceipt.Header.Payment)
}

func TestReceiptQueryNotFoundOutlastsMaxAttempts(t *testing.T) {
	defer goleak.VerifyNone(t)
	notFound := mocknode.QueryPrecheck(
		protocol.MethodTransactionGetReceipt,
		ledger.StatusReceiptNotFound,
		0,
	)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.Sequence(
			notFound,
			notFound,
			notFound,
			notFound,
			notFound,
			notFound,
			mocknode.ReceiptStatus(ledger.StatusSuccess),
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()
	require.Equal(t, 5, client.DispatchConfig().MaxAttempts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPollInterval(time.Millisecond, 2*time.Millisecond)
	receipt, err := q.Execute(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusSuccess, receipt.Status)
	assert.Len(t, node.Requests(), 7)
}

func TestReceiptQueryNotFoundUntilContextDone(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.QueryPrecheck(protocol.MethodTransactionGetReceipt, ledger.StatusReceiptNotFound, 0),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPollInterval(time.Millisecond, 2*time.Millisecond)
	_, err := q.Execute(ctx, client)
	var timeoutErr protocol.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	var attemptsErr protocol.MaxAttemptsExceededError
	assert.NotErrorAs(t, err, &attemptsErr)
	assert.Greater(t, len(node.Requests()), 5)
}

func TestReceiptQueryContextDone(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.ReceiptStatus(ledger.StatusUnknown),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPollInterval(5*time.Millisecond, 10*time.Millisecond)
	_, err := q.Execute(ctx, client)
	var timeoutErr protocol.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.NotEmpty(t, node.Requests())
}

func TestReceiptQueryValidateStatus(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.ReceiptStatus(ledger.StatusInsufficientPayerBalance),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(testTransactionId)
	receipt, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusInsufficientPayerBalance, receipt.Status)

	q.SetValidateStatus(true)
	_, err = q.Execute(context.Background(), client)
	var statusErr ledger.ReceiptStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, ledger.StatusInsufficientPayerBalance, statusErr.Status)
	require.NotNil(t, statusErr.TransactionId)
	assert.True(t, statusErr.TransactionId.Equal(testTransactionId))
}

func TestReceiptQueryDuplicatesAndChildren(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.ReceiptResponse(
			protocol.TransactionGetReceiptResponse{
				Receipt: &ledger.Receipt{Status: ledger.StatusSuccess},
				DuplicateTransactionReceipts: []ledger.Receipt{
					{Status: ledger.StatusDuplicateTransaction},
				},
				ChildTransactionReceipts: []ledger.Receipt{
					{Status: ledger.StatusSuccess},
					{Status: ledger.StatusInsufficientAccountBalance},
				},
			},
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionReceiptQuery()
	q.SetTransactionId(testTransactionId)
	q.SetIncludeDuplicates(true)
	q.SetIncludeChildren(true)
	// Only the primary receipt is validated
	q.SetValidateStatus(true)
	receipt, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, receipt.Duplicates, 1)
	assert.True(t, receipt.Duplicates[0].TransactionId.Equal(testTransactionId))
	require.Len(t, receipt.Children, 2)
	for i, child := range receipt.Children {
		require.NotNil(t, child.TransactionId)
		assert.Equal(t, int32(i+1), child.TransactionId.Nonce)
		assert.Equal(t, testTransactionId.ValidStart, child.TransactionId.ValidStart)
	}
	assert.Equal(t, ledger.StatusInsufficientAccountBalance, receipt.Children[1].Status)

	wireQuery, err := mocknode.DecodeQuery(node.Requests()[0].Payload)
	require.NoError(t, err)
	assert.True(t, wireQuery.TransactionGetReceipt.IncludeDuplicates)
	assert.True(t, wireQuery.TransactionGetReceipt.IncludeChildReceipts)
}

func TestReceiptQueryRequiresTransactionId(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(test.NodeAccountId(3), mocknode.Drop())
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	_, err := query.NewTransactionReceiptQuery().Execute(context.Background(), client)
	assert.ErrorIs(t, err, query.ErrNoTransactionId)
	assert.Empty(t, node.Requests())
}

func TestRecordQueryPaysCost(t *testing.T) {
	defer goleak.VerifyNone(t)
	cost := ledger.HbarFromTinybars(5000)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		withCost(
			protocol.MethodTransactionGetRecord,
			uint64(cost.Tinybars()),
			mocknode.RecordResponse(
				protocol.TransactionGetRecordResponse{
					TransactionRecord: &ledger.Record{
						Receipt:        ledger.Receipt{Status: ledger.StatusSuccess},
						Memo:           "paid",
						TransactionFee: ledger.HbarFromTinybars(90_000),
					},
				},
			),
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionRecordQuery()
	q.SetTransactionId(testTransactionId)
	assert.True(t, q.IsPaid())
	gotCost, err := q.GetCost(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, cost, gotCost)

	record, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "paid", record.Memo)
	assert.True(t, record.TransactionId.Equal(testTransactionId))
	require.NotNil(t, record.Receipt.TransactionId)

	// Cost lookup, then a second lookup and the paid answer
	requests := node.Requests()
	require.Len(t, requests, 3)
	transfers := paymentTransfers(t, requests[2])
	require.Len(t, transfers, 2)
	assert.True(t, transfers[0].AccountId.Equal(test.OperatorAccountId))
	assert.Equal(t, -cost, transfers[0].Amount)
	assert.True(t, transfers[1].AccountId.Equal(test.NodeAccountId(3)))
	assert.Equal(t, cost, transfers[1].Amount)
}

func TestRecordQueryNotFoundOutlastsMaxAttempts(t *testing.T) {
	defer goleak.VerifyNone(t)
	notFound := mocknode.QueryPrecheck(
		protocol.MethodTransactionGetRecord,
		ledger.StatusRecordNotFound,
		0,
	)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		withCost(
			protocol.MethodTransactionGetRecord,
			100,
			mocknode.Sequence(
				notFound,
				notFound,
				notFound,
				notFound,
				notFound,
				notFound,
				mocknode.RecordResponse(
					protocol.TransactionGetRecordResponse{
						TransactionRecord: &ledger.Record{
							Receipt: ledger.Receipt{Status: ledger.StatusSuccess},
						},
					},
				),
			),
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q := query.NewTransactionRecordQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPollInterval(time.Millisecond, 2*time.Millisecond)
	record, err := q.Execute(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusSuccess, record.Receipt.Status)
	// A cost lookup precedes each of the seven answers
	assert.Len(t, node.Requests(), 14)
}

func TestRecordQueryExplicitPayment(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.RecordResponse(
			protocol.TransactionGetRecordResponse{
				TransactionRecord: &ledger.Record{
					Receipt: ledger.Receipt{Status: ledger.StatusSuccess},
				},
			},
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionRecordQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPaymentAmount(ledger.HbarFromTinybars(777))
	_, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	requests := node.Requests()
	require.Len(t, requests, 1)
	transfers := paymentTransfers(t, requests[0])
	assert.Equal(t, ledger.HbarFromTinybars(777), transfers[1].Amount)
}

func TestRecordQueryMaxPaymentExceeded(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		withCost(
			protocol.MethodTransactionGetRecord,
			uint64(ledger.NewHbar(5).Tinybars()),
			mocknode.Drop(),
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionRecordQuery()
	q.SetTransactionId(testTransactionId)
	q.SetMaxQueryPayment(ledger.NewHbar(1))
	_, err := q.Execute(context.Background(), client)
	var paymentErr query.MaxQueryPaymentExceededError
	require.ErrorAs(t, err, &paymentErr)
	assert.Equal(t, ledger.NewHbar(5), paymentErr.Cost)
	assert.Equal(t, ledger.NewHbar(1), paymentErr.MaxPayment)
	assert.Len(t, node.Requests(), 1)
}

func TestRecordQueryValidateStatus(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := mocknode.NewNode(
		test.NodeAccountId(3),
		mocknode.RecordResponse(
			protocol.TransactionGetRecordResponse{
				TransactionRecord: &ledger.Record{
					Receipt: ledger.Receipt{Status: ledger.StatusInvalidSignature},
				},
			},
		),
	)
	cluster := mocknode.NewCluster(node)
	defer cluster.Close()
	client := test.NewClient(t, cluster)
	defer client.Close()

	q := query.NewTransactionRecordQuery()
	q.SetTransactionId(testTransactionId)
	q.SetPaymentAmount(ledger.HbarFromTinybars(1))
	q.SetValidateStatus(true)
	record, err := q.Execute(context.Background(), client)
	var statusErr ledger.ReceiptStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, ledger.StatusInvalidSignature, statusErr.Status)
	require.NotNil(t, statusErr.TransactionId)
	assert.True(t, statusErr.TransactionId.Equal(testTransactionId))
	assert.Equal(t, ledger.StatusInvalidSignature, record.Receipt.Status)
}
