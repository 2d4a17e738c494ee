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
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	hiero "github.com/blinklabs-io/gohiero"
	"github.com/spf13/cobra"
)

const operatorKeyEnv = "HIERO_OPERATOR_KEY"

type rootOptions struct {
	configFile  string
	network     string
	operatorId  string
	operatorKey string
	timeout     time.Duration
	debug       bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "hiero-tx",
		Short:        "Build, sign and submit transactions",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(
		&opts.configFile,
		"config",
		"c",
		"",
		"path to a YAML client config. Overrides --network",
	)
	cmd.PersistentFlags().StringVar(
		&opts.network,
		"network",
		"testnet",
		"network to use (mainnet, testnet or previewnet)",
	)
	cmd.PersistentFlags().StringVar(
		&opts.operatorId,
		"operator-id",
		"",
		"operator account ID in shard.realm.num format",
	)
	cmd.PersistentFlags().StringVar(
		&opts.operatorKey,
		"operator-key",
		os.Getenv(operatorKeyEnv),
		"operator private key in hex (defaults to $"+operatorKeyEnv+")",
	)
	cmd.PersistentFlags().DurationVar(
		&opts.timeout,
		"timeout",
		2*time.Minute,
		"overall timeout for network operations",
	)
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(newKeygenCommand())
	cmd.AddCommand(newTransferCommand(opts))
	cmd.AddCommand(newSignCommand())
	cmd.AddCommand(newSubmitCommand(opts))
	cmd.AddCommand(newBalanceCommand(opts))
	cmd.AddCommand(newReceiptCommand(opts))
	return cmd
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}

// newClient builds a client from the config file, if any, with the operator flags applied on
// top
func (o *rootOptions) newClient() (*hiero.Client, error) {
	cfg := &hiero.Config{
		Network: o.network,
	}
	if o.configFile != "" {
		var err error
		cfg, err = hiero.NewConfigFromFile(o.configFile)
		if err != nil {
			return nil, err
		}
	}
	if o.operatorId != "" || o.operatorKey != "" {
		if o.operatorId == "" || o.operatorKey == "" {
			return nil, errors.New("--operator-id and --operator-key must be used together")
		}
		cfg.Operator = &hiero.OperatorConfig{
			AccountId:  o.operatorId,
			PrivateKey: o.operatorKey,
		}
	}
	return hiero.NewClientFromConfig(cfg, hiero.WithLogger(o.logger()))
}

func (o *rootOptions) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}
