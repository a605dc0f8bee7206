package provider

import (
	"encoding/json"
	"fmt"

	"github.com/feldspar-ai/feldspar/core"
)

// EncodeToolResult renders a tool result as the wire string attached to a
// tool-role message. Failures are encoded as {"error": ...} so the model can
// see and react to them; successful outputs are serialized as JSON with a
// plain-format fallback for values encoding/json rejects.
func EncodeToolResult(res *core.ToolResult) string {
	if res == nil {
		return ""
	}
	if res.Failed() {
		payload, err := json.Marshal(map[string]string{"error": res.Error})
		if err != nil {
			return fmt.Sprintf(`{"error":%q}`, res.Error)
		}
		return string(payload)
	}
	if s, ok := res.Output.(string); ok {
		return s
	}
	payload, err := json.Marshal(res.Output)
	if err != nil {
		return fmt.Sprintf("%v", res.Output)
	}
	return string(payload)
}

// DecodeArguments parses a serialized tool-call argument payload into the map
// the invocation pipeline validates. An empty payload decodes to an empty map.
func DecodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
