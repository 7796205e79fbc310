package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflab/reef/internal/domain/entity"
)

type stubQueue struct {
	events []entity.Event
}

func (q *stubQueue) Drain() []entity.Event {
	out := q.events
	q.events = nil
	return out
}

func (q *stubQueue) push(evs ...entity.Event) {
	q.events = append(q.events, evs...)
}

func testBounds() Bounds { return Bounds{W: 80, H: 30} }

func newTestSim(t *testing.T) (*Simulation, *stubQueue) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	world := NewWorld(testBounds(), rng, testLogger())
	q := &stubQueue{}
	return NewSimulation(world, q, testLogger()), q
}

func TestAgentLifecycle_StartToDone(t *testing.T) {
	sim, q := newTestSim(t)
	b := testBounds()

	q.push(entity.Event{
		Kind:        entity.KindAgentStart,
		AgentID:     "a1",
		AgentType:   "Explore",
		Description: "Find API endpoints",
	})
	sim.Tick(b)

	w := sim.World()
	require.Len(t, w.Fishes, 1)
	f := w.Fishes[0]
	assert.Equal(t, "a1", f.AgentID)
	assert.Equal(t, "Find API endpoints", f.Label)
	assert.Equal(t, entity.StatusSpawning, f.Status)
	assert.Equal(t, entity.FishSmall, f.SpriteIdx)
	assert.Equal(t, 1, w.TotalAgents)

	// Swim on screen; spawning becomes working once past the left edge.
	for i := 0; i < 60 && f.Status == entity.StatusSpawning; i++ {
		sim.Tick(b)
	}
	assert.Equal(t, entity.StatusWorking, f.Status)

	q.push(entity.Event{Kind: entity.KindAgentStop, AgentID: "a1", AgentType: "Explore"})
	sim.Tick(b)
	assert.Equal(t, entity.StatusDone, f.Status)
	assert.GreaterOrEqual(t, f.Speed, 0.6)
	assert.Equal(t, 1, f.Direction)

	// A done fish swims out to the right and is pruned past the edge.
	for i := 0; i < 400 && len(sim.World().Fishes) > 0; i++ {
		sim.Tick(b)
	}
	assert.Empty(t, sim.World().Fishes)
}

func TestAgentStop_ErrorCountedOnce(t *testing.T) {
	sim, q := newTestSim(t)
	b := testBounds()

	q.push(
		entity.Event{Kind: entity.KindAgentStart, AgentID: "a1", AgentType: "Plan"},
		entity.Event{Kind: entity.KindAgentStop, AgentID: "a1", Error: true},
		entity.Event{Kind: entity.KindAgentStop, AgentID: "a1", Error: true},
	)
	sim.Tick(b)

	w := sim.World()
	require.Len(t, w.Fishes, 1)
	assert.Equal(t, entity.StatusError, w.Fishes[0].Status)
	assert.InDelta(t, 0.1, w.Fishes[0].Speed, 1e-9)
	assert.Equal(t, 1, w.Stats.ErrorCount, "duplicate stop must not double-count")
}

func TestAgentStop_UnknownAgentIsNoop(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(entity.Event{Kind: entity.KindAgentStop, AgentID: "ghost", Error: true})
	sim.Tick(testBounds())

	w := sim.World()
	assert.Empty(t, w.Fishes)
	assert.Zero(t, w.Stats.ErrorCount)
	assert.Equal(t, 1, w.Stats.TotalEvents, "the event still reaches the log")
}

func TestToolStart_MainAgentFallback(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(entity.Event{
		Kind:             entity.KindToolStart,
		AgentID:          "", // main session tool call
		ToolName:         "Bash",
		ToolInputSummary: "go test ./...",
	})
	sim.Tick(testBounds())

	w := sim.World()
	require.Len(t, w.ToolBubbles, 1)
	assert.Equal(t, 1, w.TotalTools)
	assert.Equal(t, 1, w.Stats.ToolCounts["Bash"])
	assert.Contains(t, w.MainFish.LastTool, "Bash")
	assert.Empty(t, w.ToolCreatures, "only sub-agent calls stir up critters")
}

func TestToolStart_SubAgentCaption(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(
		entity.Event{Kind: entity.KindAgentStart, AgentID: "a1", AgentType: "Explore"},
		entity.Event{Kind: entity.KindToolStart, AgentID: "a1", ToolName: "Grep", ToolInputSummary: "handleEvent"},
	)
	sim.Tick(testBounds())

	w := sim.World()
	require.Len(t, w.Fishes, 1)
	assert.Equal(t, "Grep: handleEvent", w.Fishes[0].LastTool)
	assert.LessOrEqual(t, len(w.Fishes[0].LastTool), captionMax)
	assert.Empty(t, w.MainFish.LastTool)
}

func TestExternalTool_CreatureLifecycle(t *testing.T) {
	sim, q := newTestSim(t)
	b := testBounds()

	q.push(entity.Event{Kind: entity.KindToolStart, AgentID: "a1", ToolName: "mcp__codex__codex"})
	sim.Tick(b)

	w := sim.World()
	require.Len(t, w.Creatures, 1)
	c := w.Creatures[0]
	assert.Equal(t, entity.CreatureSailboat, c.Kind)
	assert.InDelta(t, float64(SurfaceRow-3), c.Y, 1e-9)
	assert.False(t, c.Leaving)
	assert.Empty(t, w.ToolBubbles, "external calls draw creatures, not bubbles")

	// A tool_end for a different pair changes nothing.
	q.push(entity.Event{Kind: entity.KindToolEnd, AgentID: "other", ToolName: "mcp__codex__codex"})
	sim.Tick(b)
	assert.False(t, c.Leaving)

	q.push(entity.Event{Kind: entity.KindToolEnd, AgentID: "a1", ToolName: "mcp__codex__codex"})
	sim.Tick(b)
	assert.True(t, c.Leaving)
	assert.GreaterOrEqual(t, c.Speed, 0.6)

	for i := 0; i < 300 && len(sim.World().Creatures) > 0; i++ {
		sim.Tick(b)
	}
	assert.Empty(t, sim.World().Creatures, "a leaving creature exits and is pruned")
}

func TestExternalTool_DolphinForOtherIntegrations(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(entity.Event{Kind: entity.KindToolStart, AgentID: "a1", ToolName: "mcp__notion__search-pages"})
	sim.Tick(testBounds())

	w := sim.World()
	require.Len(t, w.Creatures, 1)
	assert.Equal(t, entity.CreatureDolphin, w.Creatures[0].Kind)
}

func TestBuiltinToolEnd_IsNoop(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(entity.Event{Kind: entity.KindToolEnd, AgentID: "a1", ToolName: "Bash", Success: false})
	sim.Tick(testBounds())

	w := sim.World()
	assert.Empty(t, w.Creatures)
	assert.Empty(t, w.ToolBubbles)
	assert.Equal(t, 1, w.Stats.TotalEvents)
	require.NotEmpty(t, w.Log)
	assert.Contains(t, w.Log[len(w.Log)-1].Detail, "fail")
}

func TestTaskCompleted_DuplicateSubjectKeepsOneMarker(t *testing.T) {
	sim, q := newTestSim(t)
	b := testBounds()

	q.push(entity.Event{Kind: entity.KindTaskCompleted, TaskSubject: "ship it"})
	sim.Tick(b)
	require.Len(t, sim.World().Tasks, 1)
	firstX := sim.World().Tasks[0].X

	q.push(entity.Event{Kind: entity.KindTaskCompleted, TaskSubject: "ship it"})
	sim.Tick(b)
	require.Len(t, sim.World().Tasks, 1)
	assert.Equal(t, firstX, sim.World().Tasks[0].X, "existing marker updates in place")
	assert.True(t, sim.World().Tasks[0].Completed)
}

func TestMilestone_HundredToolsFiresOnce(t *testing.T) {
	sim, q := newTestSim(t)
	b := testBounds()
	w := sim.World()

	baseAmbient := len(w.Ambient)
	w.TotalTools = 99

	q.push(entity.Event{Kind: entity.KindToolStart, ToolName: "Read"})
	sim.Tick(b)

	assert.Equal(t, 100, w.TotalTools)
	assert.Equal(t, baseAmbient+5, len(w.Ambient), "five jellyfish join at 100 tools")

	var milestones int
	for _, e := range w.Log {
		if e.Kind == entity.KindMilestone {
			milestones++
		}
	}
	assert.Equal(t, 1, milestones)

	// More tool calls never re-fire the milestone.
	q.push(entity.Event{Kind: entity.KindToolStart, ToolName: "Read"})
	sim.Tick(b)
	assert.Equal(t, baseAmbient+5, len(w.Ambient))
}

func TestMilestone_TenAgents(t *testing.T) {
	sim, q := newTestSim(t)
	b := testBounds()
	w := sim.World()

	baseAmbient := len(w.Ambient)
	for i := 0; i < 10; i++ {
		q.push(entity.Event{Kind: entity.KindAgentStart, AgentID: string(rune('a' + i)), AgentType: "Explore"})
	}
	sim.Tick(b)

	assert.Equal(t, 10, w.TotalAgents)
	assert.Equal(t, baseAmbient+4, len(w.Ambient), "a school of four fish at 10 agents")
}

func TestUnknownEventKind_LogOnly(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(entity.Event{Kind: "solar_flare"})
	sim.Tick(testBounds())

	w := sim.World()
	assert.Empty(t, w.Fishes)
	assert.Equal(t, 1, w.Stats.TotalEvents)
	require.NotEmpty(t, w.Log)
	assert.Equal(t, "solar_flare", w.Log[len(w.Log)-1].Detail)
}

func TestRecord_DetailTruncated(t *testing.T) {
	sim, q := newTestSim(t)

	q.push(entity.Event{
		Kind:        entity.KindAgentStart,
		AgentID:     "a1",
		AgentType:   "general-purpose",
		Description: strings.Repeat("x", 120),
	})
	sim.Tick(testBounds())

	w := sim.World()
	require.NotEmpty(t, w.Log)
	assert.LessOrEqual(t, len(w.Log[len(w.Log)-1].Detail), detailMax)
}

func TestMainFish_NeverPruned(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()

	for i := 0; i < 200; i++ {
		sim.Tick(b)
	}
	w := sim.World()
	require.NotNil(t, w.MainFish)
	assert.True(t, w.MainFish.Alive)
	assert.Equal(t, MainAgentID, w.MainFish.AgentID)
}
