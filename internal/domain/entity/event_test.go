package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflab/reef/pkg/errors"
)

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Event
		wantErr bool
	}{
		{
			name: "agent start",
			line: `{"event":"agent_start","agent_id":"a1","agent_type":"Explore","description":"scan repo","timestamp":1700000000.5}`,
			want: Event{
				Kind:        KindAgentStart,
				AgentID:     "a1",
				AgentType:   "Explore",
				Description: "scan repo",
				Success:     true,
				Timestamp:   1700000000.5,
			},
		},
		{
			name: "tool end with explicit failure",
			line: `{"event":"tool_end","agent_id":"a1","tool_name":"Bash","success":false}`,
			want: Event{Kind: KindToolEnd, AgentID: "a1", ToolName: "Bash", Success: false},
		},
		{
			name: "absent success defaults to true",
			line: `{"event":"tool_end","tool_name":"Read"}`,
			want: Event{Kind: KindToolEnd, ToolName: "Read", Success: true},
		},
		{
			name: "unknown kind still decodes",
			line: `{"event":"solar_flare"}`,
			want: Event{Kind: "solar_flare", Success: true},
		},
		{
			name:    "malformed json",
			line:    `{"event":"agent_start"`,
			wantErr: true,
		},
		{
			name:    "missing discriminator",
			line:    `{"agent_id":"a1"}`,
			wantErr: true,
		},
		{
			name:    "blank discriminator",
			line:    `{"event":"  "}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			line:    `[1,2,3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLine([]byte(tt.line))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsExternalTool(t *testing.T) {
	assert.True(t, IsExternalTool("mcp__codex__codex"))
	assert.True(t, IsExternalTool("mcp__notion__search-pages"))
	assert.False(t, IsExternalTool("Bash"))
	assert.False(t, IsExternalTool("mcp_notion"))
}

func TestExternalToolLabel(t *testing.T) {
	tests := []struct {
		tool string
		want string
	}{
		{"mcp__notion__search-pages", "notion"},
		{"mcp__codex__codex", "codex"},
		{"mcp__plugin_context7_context7__query-docs", "plugin_context7_context7"},
		{"plainname", "plainname"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExternalToolLabel(tt.tool), tt.tool)
	}
}

func TestCreatureKindForTool(t *testing.T) {
	kind, ok := CreatureKindForTool("mcp__codex__codex")
	require.True(t, ok)
	assert.Equal(t, CreatureSailboat, kind)

	kind, ok = CreatureKindForTool("mcp__notion__search")
	require.True(t, ok)
	assert.Equal(t, CreatureDolphin, kind)

	_, ok = CreatureKindForTool("Bash")
	assert.False(t, ok)
}

func TestFishIndexForAgentType(t *testing.T) {
	tests := []struct {
		agentType string
		want      int
	}{
		{"Explore", FishSmall},
		{"general-purpose", FishMedium},
		{"Plan", FishLarge},
		{"code-reviewer", FishLarge},
		{"feature-dev:code-architect", FishDecorated},
		{"superpowers:builder", FishDecorated},
		{"something-new", FishMedium},
		{"", FishMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FishIndexForAgentType(tt.agentType), tt.agentType)
	}
}
