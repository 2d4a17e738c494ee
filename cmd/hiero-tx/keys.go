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
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol/transaction"
	"github.com/spf13/cobra"
)

func newKeygenCommand() *cobra.Command {
	var ecdsa bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var privateKey keys.PrivateKey
			var err error
			if ecdsa {
				privateKey, err = keys.GenerateEcdsa()
			} else {
				privateKey, err = keys.GenerateEd25519()
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			publicKey := privateKey.PublicKey()
			fmt.Fprintf(out, "type:        %s\n", privateKey.Type())
			fmt.Fprintf(out, "private key: %s\n", privateKey.StringRaw())
			fmt.Fprintf(out, "public key:  %s\n", publicKey.StringRaw())
			if ecdsa {
				evmAddress, err := publicKey.ToEvmAddress()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "evm address: %s\n", evmAddress.Hex())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ecdsa, "ecdsa", false, "generate a secp256k1 key instead of ed25519")
	return cmd
}

func newSignCommand() *cobra.Command {
	var keyHex string
	cmd := &cobra.Command{
		Use:   "sign <file|->",
		Short: "Add a signature to a serialized transaction",
		Long: `Add a signature to a transaction serialized by "transfer --offline" or a previous
"sign". The signed transaction is written to stdout in hex.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := keys.ParsePrivateKey(keyHex)
			if err != nil {
				return fmt.Errorf("parse key: %w", err)
			}
			tx, err := readTransaction(cmd, args[0])
			if err != nil {
				return err
			}
			if err := tx.Sign(privateKey); err != nil {
				return err
			}
			return writeTransaction(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "private key in hex")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// readTransaction reads a hex serialized transaction from a file, or stdin for "-"
func readTransaction(cmd *cobra.Command, path string) (transaction.Executable, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	txBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return transaction.FromBytes(txBytes)
}

func writeTransaction(w io.Writer, tx transaction.Executable) error {
	txBytes, err := tx.ToBytes()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hex.EncodeToString(txBytes))
	return err
}

func parseAccountIds(strs []string) ([]ledger.AccountId, error) {
	ret := make([]ledger.AccountId, 0, len(strs))
	for _, str := range strs {
		accountId, err := ledger.ParseEntityId(str)
		if err != nil {
			return nil, err
		}
		ret = append(ret, accountId)
	}
	return ret, nil
}
