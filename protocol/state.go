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

// State is a lifecycle state of an executable
type State struct {
	Id   uint
	Name string
}

func NewState(id uint, name string) State {
	return State{
		Id:   id,
		Name: name,
	}
}

func (s State) String() string {
	return s.Name
}

// Event is an operation that may change the state of an executable
type Event uint8

const (
	EventModify Event = iota + 1
	EventFreeze
	EventSign
	EventExecute
)

func (e Event) String() string {
	switch e {
	case EventModify:
		return "modify"
	case EventFreeze:
		return "freeze"
	case EventSign:
		return "sign"
	case EventExecute:
		return "execute"
	}
	return "unknown"
}

type StateTransition struct {
	Event    Event
	NewState State
}

type StateMapEntry struct {
	Transitions []StateTransition
}

type StateMap map[State]StateMapEntry

// Copy returns a copy of the state map. This is mostly for convenience,
// since we need to copy the state map in various places
func (s StateMap) Copy() StateMap {
	ret := StateMap{}
	for k, v := range s {
		ret[k] = v
	}
	return ret
}

// Transition returns the state that follows the given event, or an IllegalStateError if the
// event is not allowed in the current state
func (s StateMap) Transition(current State, event Event) (State, error) {
	entry, ok := s[current]
	if ok {
		for _, transition := range entry.Transitions {
			if transition.Event == event {
				return transition.NewState, nil
			}
		}
	}
	return current, IllegalStateError{
		State: current,
		Event: event,
	}
}

// Allows returns true if the event is allowed in the given state
func (s StateMap) Allows(current State, event Event) bool {
	_, err := s.Transition(current, event)
	return err == nil
}

var (
	StateBuilding = NewState(1, "Building")
	StateFrozen   = NewState(2, "Frozen")
	StateExecuted = NewState(3, "Executed")
)

// TransactionStateMap describes the lifecycle of a transaction. Execution only moves the
// transaction to Executed on success, so a failed execution may be retried from Frozen
var TransactionStateMap = StateMap{
	StateBuilding: StateMapEntry{
		Transitions: []StateTransition{
			{
				Event:    EventModify,
				NewState: StateBuilding,
			},
			{
				Event:    EventFreeze,
				NewState: StateFrozen,
			},
		},
	},
	StateFrozen: StateMapEntry{
		Transitions: []StateTransition{
			{
				Event:    EventSign,
				NewState: StateFrozen,
			},
			{
				Event:    EventExecute,
				NewState: StateExecuted,
			},
		},
	},
	StateExecuted: StateMapEntry{},
}
