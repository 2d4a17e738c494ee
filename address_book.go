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
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/blinklabs-io/gohiero/ledger"
)

// AddressBook is a list of network nodes and the endpoints they serve requests on
type AddressBook struct {
	Nodes []AddressBookNode `json:"nodes" validate:"min=1,dive"`
}

type AddressBookNode struct {
	AccountId   string                `json:"accountId"        validate:"required"`
	Description string                `json:"description"`
	Endpoints   []AddressBookEndpoint `json:"serviceEndpoints" validate:"min=1,dive"`
}

type AddressBookEndpoint struct {
	Address string `json:"address" validate:"required,hostname_rfc1123|ip"`
	Port    uint   `json:"port"    validate:"required,lte=65535"`
}

func NewAddressBookFromFile(path string) (*AddressBook, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()
	return NewAddressBookFromReader(dataFile)
}

func NewAddressBookFromReader(r io.Reader) (*AddressBook, error) {
	a := &AddressBook{}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AddressBook) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid address book: %w", err)
	}
	for i, node := range a.Nodes {
		if _, err := ledger.ParseEntityId(node.AccountId); err != nil {
			return fmt.Errorf("invalid address book: node %d: %w", i, err)
		}
	}
	return nil
}

// Network returns the address to node account ID mapping described by the address book
func (a *AddressBook) Network() (map[string]ledger.AccountId, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	ret := map[string]ledger.AccountId{}
	for _, node := range a.Nodes {
		accountId, err := ledger.ParseEntityId(node.AccountId)
		if err != nil {
			return nil, err
		}
		for _, endpoint := range node.Endpoints {
			address := net.JoinHostPort(
				endpoint.Address,
				strconv.FormatUint(uint64(endpoint.Port), 10),
			)
			ret[address] = accountId
		}
	}
	return ret, nil
}
