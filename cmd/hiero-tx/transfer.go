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
	"errors"
	"fmt"
	"io"

	hiero "github.com/blinklabs-io/gohiero"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol/transaction"
	"github.com/spf13/cobra"
)

type transferOptions struct {
	from    string
	to      string
	amount  int64
	memo    string
	maxFee  int64
	nodes   []string
	offline bool
}

func newTransferCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &transferOptions{}
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer hbar between two accounts",
		Long: `Transfer hbar between two accounts. The sender defaults to the operator.

With --offline, the transaction is frozen and written to stdout in hex instead of being
submitted, so that other parties can add their signatures with "sign" before it is sent
with "submit".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd, rootOpts, opts)
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "sending account ID (defaults to the operator)")
	cmd.Flags().StringVar(&opts.to, "to", "", "receiving account ID")
	cmd.Flags().Int64Var(&opts.amount, "amount", 0, "amount to transfer in tinybars")
	cmd.Flags().StringVar(&opts.memo, "memo", "", "transaction memo")
	cmd.Flags().Int64Var(&opts.maxFee, "max-fee", 0, "maximum transaction fee in tinybars")
	cmd.Flags().StringSliceVar(
		&opts.nodes,
		"nodes",
		nil,
		"node account IDs to build the transaction for (defaults to the whole network)",
	)
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "freeze and print instead of submitting")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func runTransfer(cmd *cobra.Command, rootOpts *rootOptions, opts *transferOptions) error {
	if opts.amount <= 0 {
		return errors.New("--amount must be positive")
	}
	client, err := rootOpts.newClient()
	if err != nil {
		return err
	}
	defer client.Close()
	tx, err := buildTransfer(client, opts)
	if err != nil {
		return err
	}
	if opts.offline {
		if err := tx.FreezeWith(client); err != nil {
			return err
		}
		return writeTransaction(cmd.OutOrStdout(), tx)
	}
	ctx, cancel := rootOpts.context()
	defer cancel()
	resp, err := tx.Execute(ctx, client)
	if err != nil {
		return err
	}
	printResponses(cmd.OutOrStdout(), resp)
	receipt, err := resp.GetReceipt(ctx, client)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "status:         %s\n", receipt.Status)
	return nil
}

func buildTransfer(
	client *hiero.Client,
	opts *transferOptions,
) (*transaction.TransferTransaction, error) {
	to, err := ledger.ParseEntityId(opts.to)
	if err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}
	from, ok := client.OperatorAccountId()
	if opts.from != "" {
		from, err = ledger.ParseEntityId(opts.from)
		if err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
	} else if !ok {
		return nil, errors.New("--from is required without an operator")
	}
	amount := ledger.HbarFromTinybars(opts.amount)
	tx := transaction.NewTransferTransaction()
	if err := tx.AddHbarTransfer(from, -amount); err != nil {
		return nil, err
	}
	if err := tx.AddHbarTransfer(to, amount); err != nil {
		return nil, err
	}
	if err := tx.SetTransactionMemo(opts.memo); err != nil {
		return nil, err
	}
	if opts.maxFee > 0 {
		if err := tx.SetMaxTransactionFee(ledger.HbarFromTinybars(opts.maxFee)); err != nil {
			return nil, err
		}
	}
	if len(opts.nodes) > 0 {
		nodeAccountIds, err := parseAccountIds(opts.nodes)
		if err != nil {
			return nil, fmt.Errorf("--nodes: %w", err)
		}
		if err := tx.SetNodeAccountIds(nodeAccountIds...); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func newSubmitCommand(rootOpts *rootOptions) *cobra.Command {
	var waitReceipt bool
	cmd := &cobra.Command{
		Use:   "submit <file|->",
		Short: "Submit a serialized transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTransaction(cmd, args[0])
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
			responses, err := tx.ExecuteAll(ctx, client)
			printResponses(cmd.OutOrStdout(), responses...)
			if err != nil {
				return err
			}
			if !waitReceipt {
				return nil
			}
			receipt, err := responses[len(responses)-1].GetReceipt(ctx, client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status:         %s\n", receipt.Status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&waitReceipt, "receipt", true, "wait for the receipt of the last chunk")
	return cmd
}

func printResponses(w io.Writer, responses ...transaction.Response) {
	for _, resp := range responses {
		fmt.Fprintf(w, "transaction ID: %s\n", resp.TransactionId)
		fmt.Fprintf(w, "node:           %s\n", resp.NodeAccountId)
		fmt.Fprintf(w, "hash:           %x\n", resp.TransactionHash)
	}
}
