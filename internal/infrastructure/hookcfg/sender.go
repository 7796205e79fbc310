// Package hookcfg bridges the agent runner's hook system to the viewer:
// it installs hook entries into the runner's settings file and translates
// hook payloads into wire events on the unix socket.
package hookcfg

import (
	"encoding/json"
	"io"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/reeflab/reef/internal/domain/entity"
)

// sendTimeout bounds the whole socket exchange. Hooks run inline with the
// agent; a stuck viewer must never stall it.
const sendTimeout = 1 * time.Second

// HookInput is the payload the agent runner pipes to hook commands.
type HookInput struct {
	HookEventName string          `json:"hook_event_name"`
	AgentID       string          `json:"agent_id"`
	AgentType     string          `json:"agent_type"`
	Description   string          `json:"description"`
	Error         bool            `json:"error"`
	ToolName      string          `json:"tool_name"`
	ToolInput     json.RawMessage `json:"tool_input"`
	TaskSubject   string          `json:"task_subject"`
}

// BuildEvent maps a hook payload to a wire event. Unrecognized hook names
// return ok=false and nothing is sent.
func BuildEvent(in HookInput, now time.Time) (entity.Event, bool) {
	ts := float64(now.UnixNano()) / 1e9

	switch in.HookEventName {
	case "SubagentStart":
		return entity.Event{
			Kind:        entity.KindAgentStart,
			AgentID:     in.AgentID,
			AgentType:   in.AgentType,
			Description: in.Description,
			Timestamp:   ts,
		}, true
	case "SubagentStop":
		return entity.Event{
			Kind:      entity.KindAgentStop,
			AgentID:   in.AgentID,
			AgentType: in.AgentType,
			Error:     in.Error,
			Timestamp: ts,
		}, true
	case "PreToolUse":
		return entity.Event{
			Kind:             entity.KindToolStart,
			AgentID:          in.AgentID,
			ToolName:         in.ToolName,
			ToolInputSummary: SummarizeToolInput(in.ToolName, in.ToolInput),
			Timestamp:        ts,
		}, true
	case "PostToolUse":
		return entity.Event{
			Kind:      entity.KindToolEnd,
			AgentID:   in.AgentID,
			ToolName:  in.ToolName,
			Success:   true,
			Timestamp: ts,
		}, true
	case "PostToolUseFailure":
		return entity.Event{
			Kind:      entity.KindToolEnd,
			AgentID:   in.AgentID,
			ToolName:  in.ToolName,
			Success:   false,
			Timestamp: ts,
		}, true
	case "TaskCompleted":
		return entity.Event{
			Kind:        entity.KindTaskCompleted,
			TaskSubject: in.TaskSubject,
			Timestamp:   ts,
		}, true
	}
	return entity.Event{}, false
}

// SummarizeToolInput extracts a short human-readable fragment from a tool's
// input object. Per-tool, because the interesting field differs.
func SummarizeToolInput(toolName string, raw json.RawMessage) string {
	var in map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &in)
	}
	str := func(key string) string {
		s, _ := in[key].(string)
		return s
	}

	switch toolName {
	case "Bash":
		return clip(str("command"), 40)
	case "Read", "Write", "Edit":
		if p := str("file_path"); p != "" {
			return filepath.Base(p)
		}
		return ""
	case "Grep", "Glob":
		return clip(str("pattern"), 30)
	case "WebSearch":
		return clip(str("query"), 30)
	case "WebFetch":
		return clip(str("url"), 40)
	case "Task":
		return clip(str("description"), 30)
	}
	if strings.HasPrefix(toolName, "mcp__") {
		parts := strings.Split(toolName, "__")
		if len(parts) >= 3 {
			return clip(parts[1]+":"+parts[2], 30)
		}
		return clip(toolName[5:], 30)
	}
	return ""
}

// Send reads one hook payload from r, converts it and writes it to the
// socket. Every failure mode is silent: the viewer being down is normal,
// and hooks must not surface errors into the agent session.
func Send(r io.Reader, sockPath string) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return
	}
	var in HookInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return
	}
	ev, ok := BuildEvent(in, time.Now())
	if !ok {
		return
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return
	}

	conn, err := net.DialTimeout("unix", sockPath, sendTimeout)
	if err != nil {
		return
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(sendTimeout))
	_, _ = conn.Write(append(line, '\n'))
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
