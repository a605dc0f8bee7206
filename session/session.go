// Package session binds one conversation history, one provider adapter and
// one tool registry into a chat entry point, and drives the orchestration
// loop: submit history, interpret the reply as a final answer or a batch of
// tool calls, resolve the calls, resubmit, bounded by a configured maximum
// number of rounds.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/logging"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

// DefaultMaxRounds bounds the model/tool negotiation per user message.
const DefaultMaxRounds = 8

// Options configure a Session.
type Options struct {
	// MaxRounds bounds provider calls per user message. <=0 selects the default.
	MaxRounds int
	// MaxParallel bounds concurrent tool executions within one round.
	// <=0 means one worker per call.
	MaxParallel int
	// SystemPrompt, when set, is installed as the first history turn and
	// restored by ClearHistory.
	SystemPrompt string
	// Logger receives structured events. Nil selects NoOpLogger.
	Logger logging.Logger
}

// Session owns one (History, Adapter, Registry) triple. The registry and
// adapter are read-only for the session's lifetime; history grows by append
// and is clearable. Sessions share no mutable state with each other.
type Session struct {
	id           string
	adapter      provider.Adapter
	registry     *tool.Registry
	history      *core.History
	maxRounds    int
	systemPrompt string
	logger       logging.Logger
	executor     *toolExecutor

	// chatMu enforces single-writer discipline: one Chat in flight at a time.
	chatMu sync.Mutex
}

// New creates a session around an adapter and a tool registry. A nil registry
// is replaced with an empty one so tool-less sessions need no setup.
func New(adapter provider.Adapter, registry *tool.Registry, optFns ...func(o *Options)) *Session {
	opts := Options{
		MaxRounds: DefaultMaxRounds,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if registry == nil {
		registry = tool.NewRegistry()
	}

	logger := logging.OrNoOp(opts.Logger)
	s := &Session{
		id:           uuid.NewString(),
		adapter:      adapter,
		registry:     registry,
		history:      core.NewHistory(),
		maxRounds:    opts.MaxRounds,
		systemPrompt: opts.SystemPrompt,
		logger:       logger,
		executor:     &toolExecutor{maxParallel: opts.MaxParallel, logger: logger},
	}
	if s.systemPrompt != "" {
		s.history.Append(core.NewSystemTurn(s.systemPrompt))
	}
	return s
}

// ID returns the session identifier used in log correlation.
func (s *Session) ID() string { return s.id }

// History returns a read-only copy of the conversation log for display.
func (s *Session) History() []core.Turn { return s.history.Snapshot() }

// ClearHistory truncates the conversation, re-seeding the system prompt if
// one was configured.
func (s *Session) ClearHistory() {
	s.history.Clear()
	if s.systemPrompt != "" {
		s.history.Append(core.NewSystemTurn(s.systemPrompt))
	}
}

// Chat submits a user message and drives rounds until the model produces a
// final answer, the provider fails, or the round limit is hit.
//
// Outcomes:
//   - final answer: appended as an assistant turn and returned
//   - *provider.Error: surfaced unchanged; history keeps the user turn (and
//     any resolved tool turns) so the caller can retry with full context
//   - *RoundLimitError: the model was still requesting tools at the bound;
//     no further provider call is made
//   - ErrBusy: another Chat on this session is still in flight
//
// Tool-call failures never abort a round: each failed call becomes a tool
// turn carrying the error so the model can react to it.
func (s *Session) Chat(ctx context.Context, message string) (string, error) {
	if !s.chatMu.TryLock() {
		return "", ErrBusy
	}
	defer s.chatMu.Unlock()

	s.logger.Debug("session.chat.start", "session_id", s.id, "history_len", s.history.Len())
	s.history.Append(core.NewUserTurn(message))

	for round := 0; round < s.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := s.adapter.Complete(ctx, s.history.Snapshot(), s.registry.ExportSchemas())
		if err != nil {
			s.logger.Error("session.provider.error", "session_id", s.id, "round", round, "error", err.Error())
			return "", err
		}

		if resp.IsFinal() {
			s.history.Append(core.NewAssistantTurn(resp.Text))
			s.logger.Info("session.chat.complete", "session_id", s.id, "rounds", round+1)
			return resp.Text, nil
		}

		s.logger.Debug("session.round.tool_calls", "session_id", s.id, "round", round, "count", len(resp.ToolCalls))
		s.history.Append(core.NewToolCallTurn(resp.Text, resp.ToolCalls))

		// Results are appended in the order the provider listed the requests,
		// regardless of completion order, to keep the transcript reproducible.
		results := s.executor.execute(ctx, s.registry, resp.ToolCalls)
		for _, res := range results {
			s.history.Append(core.NewToolResultTurn(res))
		}

		if err := ctx.Err(); err != nil {
			s.logger.Warn("session.chat.canceled", "session_id", s.id, "round", round)
			return "", err
		}
	}

	s.logger.Warn("session.round_limit", "session_id", s.id, "rounds", s.maxRounds)
	return "", &RoundLimitError{Rounds: s.maxRounds}
}
