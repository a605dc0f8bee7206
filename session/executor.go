package session

import (
	"context"
	"sync"
	"time"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/logging"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

// toolExecutor resolves a batch of tool calls from one provider response.
// Calls within a batch carry no declared data dependency, so they may run
// concurrently up to maxParallel workers; results are buffered by index and
// returned in request order. Every call settles to a complete ToolResult —
// lookup failures, schema violations, stage failures and cancellation all
// become error-carrying results rather than lost turns.
type toolExecutor struct {
	maxParallel int
	logger      logging.Logger
}

func (e *toolExecutor) execute(ctx context.Context, registry *tool.Registry, calls []core.ToolCall) []core.ToolResult {
	n := len(calls)
	if n == 0 {
		return nil
	}

	// Fast path: single call, execute inline.
	if n == 1 {
		return []core.ToolResult{e.resolve(ctx, registry, calls[0])}
	}

	maxPar := e.maxParallel
	if maxPar <= 0 || maxPar > n {
		maxPar = n
	}

	results := make([]core.ToolResult, n)
	sem := make(chan struct{}, maxPar)
	var wg sync.WaitGroup

	batchStart := time.Now()
	for i := range calls {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, call core.ToolCall) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = e.resolve(ctx, registry, call)
		}(i, calls[i])
	}
	wg.Wait()

	e.logger.Debug(
		"tools.batch.complete",
		"count", n,
		"parallelism", maxPar,
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)
	return results
}

// resolve settles one call. A failure at any step is recorded on the result
// so the model can see and react to it; the session never crashes on a bad
// tool call.
func (e *toolExecutor) resolve(ctx context.Context, registry *tool.Registry, call core.ToolCall) core.ToolResult {
	result := core.ToolResult{ID: call.ID, Name: call.Name}

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	descriptor, err := registry.Lookup(call.Name)
	if err != nil {
		e.logger.Warn("tool.lookup.failed", "tool", call.Name, "call_id", call.ID)
		result.Error = err.Error()
		return result
	}

	args, err := provider.DecodeArguments(call.Arguments)
	if err != nil {
		e.logger.Warn("tool.args.invalid", "tool", call.Name, "call_id", call.ID, "error", err.Error())
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	output, err := tool.Invoke(ctx, descriptor, args)
	if err != nil {
		e.logger.Error("tool.invoke.failed", "tool", call.Name, "call_id", call.ID, "error", err.Error())
		result.Error = err.Error()
		return result
	}

	e.logger.Info("tool.invoke.success", "tool", call.Name, "call_id", call.ID, "duration_ms", time.Since(start).Milliseconds())
	result.Output = output
	return result
}
