package entity

import (
	"encoding/json"
	"strings"

	"github.com/reeflab/reef/pkg/errors"
)

// EventKind discriminates the telemetry events the aquarium understands.
type EventKind string

const (
	KindAgentStart    EventKind = "agent_start"
	KindAgentStop     EventKind = "agent_stop"
	KindToolStart     EventKind = "tool_start"
	KindToolEnd       EventKind = "tool_end"
	KindTaskCompleted EventKind = "task_completed"
	KindMilestone     EventKind = "milestone"
)

// Event is one decoded occurrence from the hook stream (or the demo
// director). Fields not relevant to a kind keep their zero values; Success
// defaults to true so that a bare tool_end reads as a successful call.
// Events are immutable after construction and discarded once the simulation
// has consumed them.
type Event struct {
	Kind             EventKind `json:"event"`
	AgentID          string    `json:"agent_id,omitempty"`
	AgentType        string    `json:"agent_type,omitempty"`
	Description      string    `json:"description,omitempty"`
	Error            bool      `json:"error,omitempty"`
	ToolName         string    `json:"tool_name,omitempty"`
	ToolInputSummary string    `json:"tool_input_summary,omitempty"`
	Success          bool      `json:"success"`
	TaskSubject      string    `json:"task_subject,omitempty"`
	Timestamp        float64   `json:"timestamp,omitempty"`
}

// wireEvent mirrors the hook wire record. Success is a pointer so an absent
// field can default to true rather than false.
type wireEvent struct {
	Event            string  `json:"event"`
	AgentID          string  `json:"agent_id"`
	AgentType        string  `json:"agent_type"`
	Description      string  `json:"description"`
	Error            bool    `json:"error"`
	ToolName         string  `json:"tool_name"`
	ToolInputSummary string  `json:"tool_input_summary"`
	Success          *bool   `json:"success"`
	TaskSubject      string  `json:"task_subject"`
	Timestamp        float64 `json:"timestamp"`
}

// DecodeLine parses one newline-delimited wire record. Malformed JSON or a
// record without the "event" discriminator returns an error; callers treat
// that as "drop this line". Telemetry is best-effort and a bad line is
// never surfaced to its origin.
func DecodeLine(line []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(line, &w); err != nil {
		return Event{}, errors.NewInvalidInputError("malformed event record")
	}
	kind := strings.TrimSpace(w.Event)
	if kind == "" {
		return Event{}, errors.NewInvalidInputError("event record missing discriminator")
	}
	ev := Event{
		Kind:             EventKind(kind),
		AgentID:          w.AgentID,
		AgentType:        w.AgentType,
		Description:      w.Description,
		Error:            w.Error,
		ToolName:         w.ToolName,
		ToolInputSummary: w.ToolInputSummary,
		Success:          true,
		TaskSubject:      w.TaskSubject,
		Timestamp:        w.Timestamp,
	}
	if w.Success != nil {
		ev.Success = *w.Success
	}
	return ev, nil
}

// externalToolMarker prefixes tool names that denote calls into an external
// integration rather than a built-in tool.
const externalToolMarker = "mcp__"

// sailboatPrefix is the sub-category of external tools drawn as a sailboat;
// every other external tool surfaces as a dolphin.
const sailboatPrefix = "mcp__codex__"

// IsExternalTool reports whether a tool name follows the external-integration
// naming convention.
func IsExternalTool(toolName string) bool {
	return strings.HasPrefix(toolName, externalToolMarker)
}

// ExternalToolLabel strips the integration prefix down to a short on-screen
// label, e.g. "mcp__notion__search-pages" → "notion".
func ExternalToolLabel(toolName string) string {
	parts := strings.Split(toolName, "__")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return toolName
}
