// internal/smoke/types.go
package smoke

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ScenarioResult pairs a scenario name with its outcome, in run order.
type ScenarioResult struct {
	Name   string
	Passed bool
}

// ExecuteResponse is the subset of the target's execute JSON output the
// harness inspects. The shape is consumed tolerantly, not owned.
type ExecuteResponse struct {
	Completion        string             `json:"completion"`
	ExecutionMetadata *ExecutionMetadata `json:"execution_metadata,omitempty"`
}

// ExecutionMetadata carries retry accounting for an execute call.
type ExecutionMetadata struct {
	TotalAttempts int `json:"total_attempts"`
}

// CooldownStatus mirrors the target's cooldown JSON output. Both fields
// default to their zero values when absent.
type CooldownStatus struct {
	IsCooling        bool    `json:"is_cooling"`
	SecondsRemaining float64 `json:"seconds_remaining"`
}

// BatchPrompt is one entry of the batch input file the harness writes.
type BatchPrompt struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// batchEntry is one element of the batch response array.
type batchEntry struct {
	Status string `json:"status"`
}

var batchFileSchema = gojsonschema.NewGoLoader(map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "prompt"},
		"properties": map[string]any{
			"id":     map[string]any{"type": "string"},
			"prompt": map[string]any{"type": "string"},
		},
	},
})

var batchOutputSchema = gojsonschema.NewGoLoader(map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "object"},
})

// validateAgainst checks raw JSON against a schema and flattens schema
// violations into a single error.
func validateAgainst(schema gojsonschema.JSONLoader, data []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("schema violation: %v", result.Errors())
	}
	return nil
}

// parseExecuteResponse requires a JSON object and extracts the fields the
// harness reports on.
func parseExecuteResponse(data []byte) (ExecuteResponse, error) {
	var resp ExecuteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return ExecuteResponse{}, fmt.Errorf("execute response: %w", err)
	}
	return resp, nil
}

// parseCooldown requires a JSON object; absent fields default to
// not-cooling with zero seconds remaining.
func parseCooldown(data []byte) (CooldownStatus, error) {
	var status CooldownStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return CooldownStatus{}, fmt.Errorf("cooldown response: %w", err)
	}
	return status, nil
}

// parseBatchResults requires a JSON array and counts entries whose status
// is "success". The count is informational; any parseable array passes.
func parseBatchResults(data []byte) (successes, total int, err error) {
	if err := validateAgainst(batchOutputSchema, data); err != nil {
		return 0, 0, err
	}
	var entries []batchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, 0, fmt.Errorf("batch response: %w", err)
	}
	for _, entry := range entries {
		if entry.Status == "success" {
			successes++
		}
	}
	return successes, len(entries), nil
}
