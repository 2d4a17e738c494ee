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

package main

import (
	"fmt"

	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol/query"
	"github.com/spf13/cobra"
)

func newBalanceCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountId, err := ledger.ParseEntityId(args[0])
			if err != nil {
				return err
			}
			client, err := rootOpts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()
			ctx, cancel := rootOpts.context()
			defer cancel()
			q := query.NewAccountBalanceQuery()
			q.SetAccountId(accountId)
			balance, err := q.Execute(ctx, client)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "account: %s\n", balance.AccountId)
			fmt.Fprintf(out, "hbars:   %s\n", balance.Hbars)
			for _, token := range balance.Tokens {
				fmt.Fprintf(out, "token:   %s %d\n", token.TokenId, token.Balance)
			}
			return nil
		},
	}
}

func newReceiptCommand(rootOpts *rootOptions) *cobra.Command {
	var includeChildren bool
	cmd := &cobra.Command{
		Use:   "receipt <transaction-id>",
		Short: "Wait for and show the receipt of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transactionId, err := ledger.ParseTransactionId(args[0])
			if err != nil {
				return err
			}
			client, err := rootOpts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()
			ctx, cancel := rootOpts.context()
			defer cancel()
			q := query.NewTransactionReceiptQuery()
			q.SetTransactionId(transactionId)
			q.SetIncludeChildren(includeChildren)
			receipt, err := q.Execute(ctx, client)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", receipt.Status)
			if receipt.AccountId != nil {
				fmt.Fprintf(out, "account: %s\n", receipt.AccountId)
			}
			if receipt.FileId != nil {
				fmt.Fprintf(out, "file: %s\n", receipt.FileId)
			}
			if receipt.TopicId != nil {
				fmt.Fprintf(out, "topic: %s (sequence %d)\n", receipt.TopicId, receipt.TopicSequenceNumber)
			}
			for _, child := range receipt.Children {
				fmt.Fprintf(out, "child %s: %s\n", child.TransactionId, child.Status)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeChildren, "children", false, "include child receipts")
	return cmd
}
