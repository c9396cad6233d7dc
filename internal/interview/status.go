package interview

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid session status transition")

// transitions lists the allowed next states. completed and cancelled are terminal.
var transitions = map[SessionStatus][]SessionStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to SessionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func checkTransition(from, to SessionStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
