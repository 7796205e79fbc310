package hookcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reeflab/reef/pkg/errors"
)

// HookEvents are the runner hook names the viewer subscribes to.
var HookEvents = []string{
	"SubagentStart",
	"SubagentStop",
	"PreToolUse",
	"PostToolUse",
	"PostToolUseFailure",
	"TaskCompleted",
}

// commandMarker identifies our entries inside a settings file so uninstall
// removes only what install added.
const commandMarker = "reef hook"

// DefaultSettingsPath is where the agent runner keeps its user settings.
func DefaultSettingsPath() string {
	return filepath.Join(os.Getenv("HOME"), ".claude", "settings.json")
}

type hookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout"`
	Async   bool   `json:"async"`
}

type hookEntry struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []hookCommand `json:"hooks"`
}

// Status describes the hook entries currently present in a settings file.
type Status struct {
	// Handlers maps hook event name to the number of configured entries.
	Handlers map[string]int
	// Installed is true when any entry invokes this binary.
	Installed bool
}

// Check reports hook state without modifying anything. A missing or broken
// settings file reads as "no hooks".
func Check(settingsPath string) Status {
	st := Status{Handlers: map[string]int{}}
	settings, err := readSettings(settingsPath)
	if err != nil {
		return st
	}
	hooks, _ := settings["hooks"].(map[string]any)
	for name, raw := range hooks {
		entries, _ := raw.([]any)
		st.Handlers[name] = len(entries)
		for _, e := range entries {
			if entryIsOurs(e) {
				st.Installed = true
			}
		}
	}
	return st
}

// Conflicts returns the hook events that already have entries from other
// tools, sorted for stable output.
func Conflicts(settingsPath string) []string {
	settings, err := readSettings(settingsPath)
	if err != nil {
		return nil
	}
	hooks, _ := settings["hooks"].(map[string]any)
	var out []string
	for _, name := range HookEvents {
		if entries, ok := hooks[name].([]any); ok && len(entries) > 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Install appends hook entries invoking binPath to the settings file.
// Existing entries are never replaced; a settings file with invalid JSON
// aborts rather than risking a destructive rewrite.
func Install(settingsPath, binPath, sockPath string) error {
	settings := map[string]any{}
	if data, err := os.ReadFile(settingsPath); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			return errors.NewInvalidInputError(
				fmt.Sprintf("%s contains invalid JSON, fix it before installing", settingsPath))
		}
	}

	cmd := fmt.Sprintf("REEF_SOCK=%s %s hook", sockPath, binPath)
	entry := hookEntry{
		Hooks: []hookCommand{{
			Type:    "command",
			Command: cmd,
			Timeout: 5,
			Async:   true,
		}},
	}
	entryJSON, err := toAny(entry)
	if err != nil {
		return err
	}

	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
		settings["hooks"] = hooks
	}
	for _, name := range HookEvents {
		existing, _ := hooks[name].([]any)
		hooks[name] = append(existing, entryJSON)
	}

	return writeSettings(settingsPath, settings)
}

// Uninstall strips every entry whose command invokes this binary. Returns
// true when the file changed.
func Uninstall(settingsPath string) (bool, error) {
	settings, err := readSettings(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		return false, nil
	}

	changed := false
	for name, raw := range hooks {
		entries, _ := raw.([]any)
		filtered := entries[:0:0]
		for _, e := range entries {
			if entryIsOurs(e) {
				changed = true
				continue
			}
			filtered = append(filtered, e)
		}
		if len(filtered) == 0 {
			delete(hooks, name)
		} else {
			hooks[name] = filtered
		}
	}
	if len(hooks) == 0 {
		delete(settings, "hooks")
	}

	if !changed {
		return false, nil
	}
	return true, writeSettings(settingsPath, settings)
}

func entryIsOurs(e any) bool {
	entry, _ := e.(map[string]any)
	cmds, _ := entry["hooks"].([]any)
	for _, c := range cmds {
		cmd, _ := c.(map[string]any)
		if s, _ := cmd["command"].(string); containsMarker(s) {
			return true
		}
	}
	return false
}

func containsMarker(command string) bool {
	// Match on the subcommand form so renamed install dirs still uninstall.
	return strings.Contains(command, commandMarker)
}

func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func writeSettings(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func toAny(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
