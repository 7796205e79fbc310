package entity

import "time"

// AgentStatus is the lifecycle state of a fish; transitions are enforced by
// the service-layer state machine.
type AgentStatus string

const (
	StatusSpawning AgentStatus = "spawning" // swimming in from off-screen
	StatusWorking  AgentStatus = "working"  // agent is running
	StatusDone     AgentStatus = "done"     // finished cleanly, swimming out
	StatusError    AgentStatus = "error"    // finished with an error
)

// Terminal reports whether the status admits no further transitions.
func (s AgentStatus) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// Bubble is a single rising air bubble emitted by a fish.
type Bubble struct {
	X, Y float64
	Char rune
	Age  int
}

// ToolBubble is a labeled bubble spawned by a tool invocation.
type ToolBubble struct {
	X, Y     float64
	ToolName string
	Char     rune
	Age      int
}

// Fish is the visual body of one agent. X is continuous for smooth motion;
// Y is a row in cell space.
type Fish struct {
	AgentID   string
	Label     string
	Status    AgentStatus
	X, Y      float64
	Speed     float64
	SpriteIdx int
	Direction int // +1 right, -1 left
	Bubbles   []Bubble
	Alive     bool
	StartedAt time.Time

	// Speech-bubble caption for the most recent tool call, expiring a few
	// seconds after LastToolAt.
	LastTool   string
	LastToolAt time.Time
}

// CreatureKind selects the art for an external-tool creature.
type CreatureKind string

const (
	CreatureSailboat CreatureKind = "sailboat"
	CreatureDolphin  CreatureKind = "dolphin"
)

// CreatureKindForTool maps an external tool name to its creature category.
// Returns ok=false for tools that do not follow the external naming
// convention.
func CreatureKindForTool(toolName string) (CreatureKind, bool) {
	if !IsExternalTool(toolName) {
		return "", false
	}
	if len(toolName) >= len(sailboatPrefix) && toolName[:len(sailboatPrefix)] == sailboatPrefix {
		return CreatureSailboat, true
	}
	return CreatureDolphin, true
}

// WakePoint is one aging sample of a sailboat's wake trail.
type WakePoint struct {
	X   float64
	Age int
}

// Creature represents one in-flight external-tool call. Identity is the
// (AgentID, ToolName) pair; at most one non-leaving creature per pair is
// active at a time.
type Creature struct {
	Kind      CreatureKind
	ToolName  string
	AgentID   string
	X, Y      float64
	Speed     float64
	Direction int
	Alive     bool
	Leaving   bool
	StartedAt time.Time

	// Dolphin jump sub-state. A leaving creature abandons any jump in
	// progress.
	Jumping      bool
	JumpTick     int
	JumpDuration int
	JumpBaseY    float64
	JumpApexY    float64

	// Sailboat wake trail.
	Wake []WakePoint
}

// ToolCreature is a short-lived critter spawned probabilistically by a
// sub-agent tool call. It is not tied to any completion event; it ages out.
type ToolCreature struct {
	X, Y      float64
	SpriteIdx int
	Speed     float64
	Direction int
	Age       int
}

// AmbientKind distinguishes the purely decorative swimmers.
type AmbientKind string

const (
	AmbientJellyfish AmbientKind = "jellyfish"
	AmbientFish      AmbientKind = "fish"
	AmbientBird      AmbientKind = "bird"
)

// AmbientCreature is cosmetic background life, never tied to events beyond
// population milestones.
type AmbientCreature struct {
	Kind      AmbientKind
	X, Y      float64
	Speed     float64
	Direction int
}

// Cloud drifts across the sky band and wraps around the edges.
type Cloud struct {
	X         float64
	Y         int
	SpriteIdx int
	Speed     float64
	Direction int
}

// FloorDecorKind selects a decoration family for the sea floor.
type FloorDecorKind string

const (
	DecorCoral       FloorDecorKind = "coral"
	DecorRock        FloorDecorKind = "rock"
	DecorShell       FloorDecorKind = "shell"
	DecorStarfish    FloorDecorKind = "starfish"
	DecorWideSeaweed FloorDecorKind = "seaweed_wide"
)

// FloorDecor is a static sea-floor decoration placed at setup.
type FloorDecor struct {
	Kind   FloorDecorKind
	X      int
	ArtIdx int
	Height int
}

// TaskMarker is a sea-floor marker keyed by task subject. Repeated
// completions of the same subject update the one marker in place.
type TaskMarker struct {
	Subject   string
	X         int
	Completed bool
}

// LogEntry is one row of the on-screen event log.
type LogEntry struct {
	Timestamp time.Time
	Kind      EventKind
	Detail    string
}

// SessionStats accumulates monotonically over a session. Derived state, not
// authoritative.
type SessionStats struct {
	ToolCounts   map[string]int
	TotalEvents  int
	ErrorCount   int
	SessionStart time.Time
}

// NewSessionStats returns zeroed stats anchored at now.
func NewSessionStats(now time.Time) SessionStats {
	return SessionStats{
		ToolCounts:   make(map[string]int),
		SessionStart: now,
	}
}
