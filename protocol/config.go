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

package protocol

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultMaxAttempts    = 10
	DefaultRequestTimeout = 10 * time.Second
	DefaultMinBackoff     = 250 * time.Millisecond
	DefaultMaxBackoff     = 8 * time.Second
	DefaultBackoffJitter  = 0.1

	// Default validity window of a transaction, starting at its valid start time
	DefaultTransactionValidDuration = 120 * time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DispatchConfig controls how requests are retried across nodes
type DispatchConfig struct {
	// Maximum number of requests sent for a single execution
	MaxAttempts int `validate:"min=1"`
	// Deadline for each individual request
	RequestTimeout time.Duration `validate:"gt=0"`
	// First delay before retrying a busy node. It doubles on each retry up to MaxBackoff
	MinBackoff time.Duration `validate:"gt=0"`
	MaxBackoff time.Duration `validate:"gtefield=MinBackoff"`
	// Randomization factor applied to each delay
	BackoffJitter float64 `validate:"gte=0,lt=1"`
}

// DispatchOptionFunc is a function that modifies a DispatchConfig
type DispatchOptionFunc func(*DispatchConfig)

// NewDispatchConfig creates a new DispatchConfig with default values, applying any provided
// option functions
func NewDispatchConfig(options ...DispatchOptionFunc) DispatchConfig {
	c := DispatchConfig{
		MaxAttempts:    DefaultMaxAttempts,
		RequestTimeout: DefaultRequestTimeout,
		MinBackoff:     DefaultMinBackoff,
		MaxBackoff:     DefaultMaxBackoff,
		BackoffJitter:  DefaultBackoffJitter,
	}
	// Apply provided options functions
	for _, option := range options {
		option(&c)
	}
	return c
}

// Validate checks the config values
func (c DispatchConfig) Validate() error {
	return validate.Struct(c)
}

func WithMaxAttempts(maxAttempts int) DispatchOptionFunc {
	return func(c *DispatchConfig) {
		c.MaxAttempts = maxAttempts
	}
}

func WithRequestTimeout(timeout time.Duration) DispatchOptionFunc {
	return func(c *DispatchConfig) {
		c.RequestTimeout = timeout
	}
}

func WithMinBackoff(minBackoff time.Duration) DispatchOptionFunc {
	return func(c *DispatchConfig) {
		c.MinBackoff = minBackoff
	}
}

func WithMaxBackoff(maxBackoff time.Duration) DispatchOptionFunc {
	return func(c *DispatchConfig) {
		c.MaxBackoff = maxBackoff
	}
}

func WithBackoffJitter(jitter float64) DispatchOptionFunc {
	return func(c *DispatchConfig) {
		c.BackoffJitter = jitter
	}
}
