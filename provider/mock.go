package provider

import (
	"context"
	"sync"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/tool"
)

// MockAdapter is a lightweight in-memory Adapter useful for tests and
// examples. Responses are scripted in order; when the script runs out the
// adapter echoes the last user turn. Every call records the history and tool
// list it was given so tests can assert on what the loop submitted.
type MockAdapter struct {
	mu       sync.Mutex
	script   []mockStep
	cursor   int
	requests []MockRequest
}

type mockStep struct {
	resp *Response
	err  error
}

// MockRequest captures the arguments of one Complete call.
type MockRequest struct {
	History []core.Turn
	Tools   []tool.Export
}

// NewMockAdapter constructs an empty scripted adapter.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

// QueueText appends a final-text response to the script.
func (m *MockAdapter) QueueText(text string) *MockAdapter {
	return m.queue(&Response{Text: text}, nil)
}

// QueueToolCalls appends a tool-call response to the script.
func (m *MockAdapter) QueueToolCalls(calls ...core.ToolCall) *MockAdapter {
	return m.queue(&Response{ToolCalls: calls}, nil)
}

// QueueError appends a failing exchange to the script.
func (m *MockAdapter) QueueError(err error) *MockAdapter {
	return m.queue(nil, err)
}

func (m *MockAdapter) queue(resp *Response, err error) *MockAdapter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, mockStep{resp: resp, err: err})
	return m
}

// Complete implements Adapter by replaying the script.
func (m *MockAdapter) Complete(ctx context.Context, history []core.Turn, tools []tool.Export) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, MockRequest{History: history, Tools: tools})

	if m.cursor < len(m.script) {
		step := m.script[m.cursor]
		m.cursor++
		if step.err != nil {
			return nil, step.err
		}
		return step.resp, nil
	}

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == core.RoleUser {
			return &Response{Text: "Mock response to: " + history[i].Content}, nil
		}
	}
	return &Response{Text: "Mock response"}, nil
}

// Info implements Adapter.
func (m *MockAdapter) Info() Info {
	return Info{Provider: "mock", Model: "mock", SupportsTools: true}
}

// Calls returns how many times Complete was invoked.
func (m *MockAdapter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded Complete arguments.
func (m *MockAdapter) Requests() []MockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]MockRequest, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}
