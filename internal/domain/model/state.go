package model

import (
	"fmt"
	"strings"
)

type State string

const (
	StateAvailable State = "AVAILABLE"
	StateInUse     State = "IN_USE"
	StateInactive  State = "INACTIVE"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateInUse, StateInactive:
		return true
	default:
		return false
	}
}

func ParseState(s string) (State, error) {
	state := State(strings.ToUpper(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidState, s)
	}

	return state, nil
}

func AllStates() []State {
	return []State{StateAvailable, StateInUse, StateInactive}
}
