package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflab/reef/internal/domain/entity"
)

func TestFishBubbles_RiseAndDissolveAtSurface(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()

	f := &entity.Fish{
		AgentID: "a1",
		Status:  entity.StatusDone, // no new bubbles while we watch
		X:       10, Y: 20,
		Speed:     0,
		Direction: 1,
		Alive:     true,
		Bubbles: []entity.Bubble{
			{X: 10, Y: float64(SurfaceRow) + 1.1, Char: 'o'}, // about to hit the surface
			{X: 11, Y: 20, Char: 'O'},
		},
	}

	sim.updateFish(f, b)
	require.Len(t, f.Bubbles, 2)
	assert.InDelta(t, 20-bubbleRise, f.Bubbles[1].Y, 1e-9)

	for i := 0; i < 5; i++ {
		sim.updateFish(f, b)
	}
	require.Len(t, f.Bubbles, 1, "the surface bubble pops")
	assert.Equal(t, 'O', f.Bubbles[0].Char)

	for i := 0; i < bubbleMaxAge; i++ {
		sim.updateFish(f, b)
	}
	assert.Empty(t, f.Bubbles, "old bubbles age out")
}

func TestToolBubbles_AgeOutOrPop(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()
	w := sim.World()

	w.ToolBubbles = append(w.ToolBubbles,
		&entity.ToolBubble{X: 5, Y: 20, ToolName: "Read:main.go", Char: 'o'},
		&entity.ToolBubble{X: 6, Y: float64(SurfaceRow) + 0.1, ToolName: "Bash:ls", Char: '.'},
	)

	sim.Tick(b)
	require.Len(t, w.ToolBubbles, 1, "the bubble at the surface pops immediately")

	for i := 0; i < toolBubbleMaxAge; i++ {
		sim.Tick(b)
	}
	assert.Empty(t, w.ToolBubbles)
}

func TestToolCreatures_AgeOut(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()
	w := sim.World()

	w.ToolCreatures = append(w.ToolCreatures, &entity.ToolCreature{
		X: 10, Y: 15, SpriteIdx: 0, Speed: 0.3, Direction: 1,
	})

	for i := 0; i < toolCreatureMaxAge-1; i++ {
		sim.Tick(b)
	}
	require.Len(t, w.ToolCreatures, 1)

	sim.Tick(b)
	assert.Empty(t, w.ToolCreatures)
}

func TestDolphinJump_ReturnsToBaseDepth(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()

	c := &entity.Creature{
		Kind:         entity.CreatureDolphin,
		ToolName:     "mcp__notion__search",
		AgentID:      "a1",
		X:            20,
		Y:            float64(OceanTop + 2),
		Speed:        0.5,
		Direction:    1,
		Alive:        true,
		Jumping:      true,
		JumpDuration: jumpDurationTicks,
		JumpBaseY:    float64(OceanTop + 2),
		JumpApexY:    float64(SurfaceRow - 3),
	}

	minY := c.Y
	for i := 0; i < jumpDurationTicks; i++ {
		sim.updateCreature(c, b)
		if c.Y < minY {
			minY = c.Y
		}
	}
	assert.False(t, c.Jumping, "jump completes after its duration")
	assert.InDelta(t, c.JumpBaseY, c.Y, 1e-9, "dolphin lands at its base depth")
	assert.Less(t, minY, c.JumpBaseY, "the arc rises above the base depth")
	assert.GreaterOrEqual(t, minY, c.JumpApexY-1, "the arc peaks near the apex")
}

func TestSailboat_WakeSamplesAndAges(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()

	c := &entity.Creature{
		Kind:      entity.CreatureSailboat,
		ToolName:  "mcp__codex__codex",
		AgentID:   "a1",
		X:         20,
		Y:         float64(SurfaceRow - 3),
		Speed:     0.2,
		Direction: 1,
		Alive:     true,
	}

	for i := 0; i < wakeSampleTick*4; i++ {
		sim.World().Tick++
		sim.updateCreature(c, b)
	}
	require.NotEmpty(t, c.Wake)
	assert.LessOrEqual(t, len(c.Wake), wakeMaxAge/wakeSampleTick+1, "old wake points fall off")
	for _, wp := range c.Wake {
		assert.Less(t, wp.Age, wakeMaxAge)
	}
}

func TestLeavingCreature_SwimsStraightOut(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()

	c := &entity.Creature{
		Kind:      entity.CreatureDolphin,
		ToolName:  "mcp__notion__search",
		AgentID:   "a1",
		X:         float64(b.W - 5),
		Y:         12,
		Speed:     1.0,
		Direction: 1,
		Alive:     true,
		Leaving:   true,
	}

	for i := 0; i < 25 && c.Alive; i++ {
		sim.updateCreature(c, b)
	}
	assert.False(t, c.Alive, "leaving creatures never bounce back")
}

func TestWorkingFish_StaysInBounds(t *testing.T) {
	sim, _ := newTestSim(t)
	b := testBounds()

	f := &entity.Fish{
		AgentID:   "a1",
		Status:    entity.StatusWorking,
		X:         40,
		Y:         15,
		Speed:     0.8,
		SpriteIdx: entity.FishMedium,
		Direction: 1,
		Alive:     true,
	}

	for i := 0; i < 500; i++ {
		sim.updateFish(f, b)
		// Jitter can push past the bounce line briefly, never off-screen.
		assert.GreaterOrEqual(t, f.X, -5.0)
		assert.LessOrEqual(t, f.X, float64(b.W))
	}
	assert.True(t, f.Alive)
}
