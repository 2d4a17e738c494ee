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

package hiero

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blinklabs-io/gohiero/keys"
	"github.com/blinklabs-io/gohiero/ledger"
	"github.com/blinklabs-io/gohiero/protocol"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the file form of the client configuration
type Config struct {
	// Network is the name of a predefined network
	Network string `yaml:"network"     validate:"omitempty,oneof=mainnet testnet previewnet"`
	// Nodes maps node addresses to node account IDs, and overrides Network
	Nodes map[string]string `yaml:"nodes"       validate:"omitempty,dive,keys,hostname_port,endkeys,required"`
	// AddressBook is the path to a JSON address book, and overrides Network and Nodes
	AddressBook           string          `yaml:"addressBook"`
	LedgerId              string          `yaml:"ledgerId"`
	AutoValidateChecksums bool            `yaml:"autoValidateChecksums"`
	Operator              *OperatorConfig `yaml:"operator"`
	Dispatch              DispatchConfig  `yaml:"dispatch"`
	MaxTransactionFee     int64           `yaml:"maxTransactionFee"     validate:"gte=0"`
	MaxQueryPayment       int64           `yaml:"maxQueryPayment"       validate:"gte=0"`
}

type OperatorConfig struct {
	AccountId  string `yaml:"accountId"  validate:"required"`
	PrivateKey string `yaml:"privateKey" validate:"required"`
}

// DispatchConfig holds optional overrides for the retry settings. Zero values keep the defaults
type DispatchConfig struct {
	MaxAttempts    int           `yaml:"maxAttempts"    validate:"gte=0"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"gte=0"`
	MinBackoff     time.Duration `yaml:"minBackoff"     validate:"gte=0"`
	MaxBackoff     time.Duration `yaml:"maxBackoff"     validate:"gte=0"`
}

func NewConfigFromFile(path string) (*Config, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()
	return NewConfigFromReader(dataFile)
}

func NewConfigFromReader(r io.Reader) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Network == "" && len(c.Nodes) == 0 && c.AddressBook == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoNetwork)
	}
	return c, nil
}

// ClientOptions converts the config into client options. Options passed to NewClient after
// these take precedence
func (c *Config) ClientOptions() ([]ClientOptionFunc, error) {
	var ret []ClientOptionFunc
	if c.Network != "" {
		network := NetworkByName(c.Network)
		if network.Name == NetworkInvalid.Name {
			return nil, fmt.Errorf("%w: unknown network %q", ErrInvalidConfig, c.Network)
		}
		ret = append(ret, WithNamedNetwork(network))
	}
	if len(c.Nodes) > 0 {
		network := make(map[string]ledger.AccountId, len(c.Nodes))
		for address, accountIdStr := range c.Nodes {
			accountId, err := ledger.ParseEntityId(accountIdStr)
			if err != nil {
				return nil, fmt.Errorf("%w: node %s: %w", ErrInvalidConfig, address, err)
			}
			network[address] = accountId
		}
		ret = append(ret, WithNetwork(network))
	}
	if c.AddressBook != "" {
		addressBook, err := NewAddressBookFromFile(c.AddressBook)
		if err != nil {
			return nil, err
		}
		ret = append(ret, WithAddressBook(addressBook))
	}
	if c.LedgerId != "" {
		ledgerId, err := ledger.LedgerIdFromString(c.LedgerId)
		if err != nil {
			return nil, fmt.Errorf("%w: ledger ID: %w", ErrInvalidConfig, err)
		}
		ret = append(ret, WithLedgerId(ledgerId))
	}
	ret = append(ret, WithAutoValidateChecksums(c.AutoValidateChecksums))
	if c.Operator != nil {
		accountId, err := ledger.ParseEntityId(c.Operator.AccountId)
		if err != nil {
			return nil, fmt.Errorf("%w: operator account ID: %w", ErrInvalidConfig, err)
		}
		privateKey, err := keys.ParsePrivateKey(c.Operator.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: operator key: %w", ErrInvalidConfig, err)
		}
		ret = append(ret, WithOperator(accountId, privateKey))
	}
	ret = append(ret, WithDispatchConfig(c.Dispatch.dispatchConfig()))
	if c.MaxTransactionFee > 0 {
		ret = append(ret, WithDefaultMaxTransactionFee(ledger.HbarFromTinybars(c.MaxTransactionFee)))
	}
	if c.MaxQueryPayment > 0 {
		ret = append(ret, WithDefaultMaxQueryPayment(ledger.HbarFromTinybars(c.MaxQueryPayment)))
	}
	return ret, nil
}

func (d DispatchConfig) dispatchConfig() protocol.DispatchConfig {
	var opts []protocol.DispatchOptionFunc
	if d.MaxAttempts > 0 {
		opts = append(opts, protocol.WithMaxAttempts(d.MaxAttempts))
	}
	if d.RequestTimeout > 0 {
		opts = append(opts, protocol.WithRequestTimeout(d.RequestTimeout))
	}
	if d.MinBackoff > 0 {
		opts = append(opts, protocol.WithMinBackoff(d.MinBackoff))
	}
	if d.MaxBackoff > 0 {
		opts = append(opts, protocol.WithMaxBackoff(d.MaxBackoff))
	}
	return protocol.NewDispatchConfig(opts...)
}

// NewClientFromConfig returns a client built from a config. Additional options are applied
// after those from the config
func NewClientFromConfig(cfg *Config, options ...ClientOptionFunc) (*Client, error) {
	cfgOptions, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}
	return NewClient(append(cfgOptions, options...)...)
}
