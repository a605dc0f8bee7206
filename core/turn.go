package core

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleSystem marks instruction turns that steer the model.
	RoleSystem Role = "system"
	// RoleUser marks turns authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks turns produced by the model, including tool-call requests.
	RoleAssistant Role = "assistant"
	// RoleTool marks turns carrying the outcome of a tool invocation.
	RoleTool Role = "tool"
)

// ToolCall describes a tool invocation requested by the model.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID        string `json:"id"`                  // Correlates the eventual ToolResult
	Name      string `json:"name"`                // Registered tool name
	Arguments string `json:"arguments,omitempty"` // Serialized argument payload (JSON object)
}

// ToolResult describes the outcome of a tool invocation.
// Exactly one of Output / Error is meaningful: a failed call carries the
// error text so the model can see and react to the failure.
type ToolResult struct {
	ID     string `json:"id"`               // Matches the originating ToolCall ID
	Name   string `json:"name"`             // Tool name
	Output any    `json:"output,omitempty"` // Successful result value
	Error  string `json:"error,omitempty"`  // Populated on failure
}

// Failed reports whether the invocation produced an error instead of output.
func (r ToolResult) Failed() bool { return r.Error != "" }

// Turn is one immutable entry in a conversation log. Assistant turns may carry
// tool-call requests; tool turns carry exactly one result. Turns are values:
// History copies them on append and snapshot, so a Turn handed out never
// observes later mutation.
type Turn struct {
	Role       Role        `json:"role"`
	Content    string      `json:"content,omitempty"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolResult *ToolResult `json:"tool_result,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewSystemTurn creates an instruction turn.
func NewSystemTurn(text string) Turn {
	return Turn{Role: RoleSystem, Content: text, Timestamp: time.Now()}
}

// NewUserTurn creates a user message turn.
func NewUserTurn(text string) Turn {
	return Turn{Role: RoleUser, Content: text, Timestamp: time.Now()}
}

// NewAssistantTurn creates a plain assistant answer turn.
func NewAssistantTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Content: text, Timestamp: time.Now()}
}

// NewToolCallTurn creates an assistant turn requesting one or more tool calls.
// Text may be empty; some providers interleave prose with call requests.
func NewToolCallTurn(text string, calls []ToolCall) Turn {
	cp := make([]ToolCall, len(calls))
	copy(cp, calls)
	return Turn{Role: RoleAssistant, Content: text, ToolCalls: cp, Timestamp: time.Now()}
}

// NewToolResultTurn creates a tool turn carrying one resolved call.
func NewToolResultTurn(result ToolResult) Turn {
	return Turn{Role: RoleTool, ToolResult: &result, Timestamp: time.Now()}
}

// PendingToolCalls returns the calls requested by an assistant turn, or nil.
func (t Turn) PendingToolCalls() []ToolCall {
	if t.Role != RoleAssistant {
		return nil
	}
	return t.ToolCalls
}

// clone returns a deep copy so appended turns stay immutable even if the
// caller keeps mutating its own value.
func (t Turn) clone() Turn {
	cp := t
	if len(t.ToolCalls) > 0 {
		cp.ToolCalls = make([]ToolCall, len(t.ToolCalls))
		copy(cp.ToolCalls, t.ToolCalls)
	}
	if t.ToolResult != nil {
		res := *t.ToolResult
		cp.ToolResult = &res
	}
	return cp
}
