package session

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when Chat is called while a previous call on the same
// session is still in flight. Both the provider round trip and multi-step tool
// rounds are long, order-sensitive suspension points, so a second message is
// rejected rather than interleaved.
var ErrBusy = errors.New("session: a chat is already in flight")

// RoundLimitError is the loop safety valve: the model was still requesting
// tools when the configured maximum number of rounds was reached. It is a
// terminal, user-visible outcome, not a crash; the conversation history keeps
// every resolved tool turn.
type RoundLimitError struct {
	Rounds int
}

func (e *RoundLimitError) Error() string {
	return fmt.Sprintf("round limit exceeded: model still requesting tools after %d rounds", e.Rounds)
}
