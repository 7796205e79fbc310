package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/reeflab/reef/internal/domain/entity"
)

// Drainer yields all events enqueued since the previous call, in arrival
// order. Satisfied by the ingestion queue.
type Drainer interface {
	Drain() []entity.Event
}

const (
	toolCreatureChance = 0.3 // per sub-agent tool call
	captionMax         = 25
	bubbleLabelMax     = 20
	detailMax          = 50

	milestoneTools  = "tools_100"
	milestoneAgents = "agents_10"
)

// Simulation drives the world forward one tick at a time: drain the queue,
// apply each event, fire milestones, run physics, prune the dead.
type Simulation struct {
	world  *World
	queue  Drainer
	status *StatusMachine
	logger *zap.Logger
}

// NewSimulation wires a controller onto a world and an event source.
func NewSimulation(world *World, queue Drainer, logger *zap.Logger) *Simulation {
	return &Simulation{
		world:  world,
		queue:  queue,
		status: NewStatusMachine(logger),
		logger: logger.With(zap.String("component", "simulation")),
	}
}

// World exposes the simulation's world for rendering and panels.
func (s *Simulation) World() *World { return s.world }

// Tick advances the world by one frame within the given bounds.
func (s *Simulation) Tick(b Bounds) {
	for _, ev := range s.queue.Drain() {
		s.Apply(ev, b)
	}

	w := s.world
	w.Tick++

	s.updateClouds(b)
	s.updateAmbient(b)
	for _, f := range w.Fishes {
		s.updateFish(f, b)
	}
	if w.MainFish != nil {
		s.updateFish(w.MainFish, b)
		w.MainFish.Alive = true // the session turtle never leaves
	}
	for _, c := range w.Creatures {
		s.updateCreature(c, b)
	}
	s.updateToolBubbles()
	s.updateToolCreatures()

	s.prune()
}

// Apply dispatches one event to its world mutation, then records it and
// re-evaluates milestones. Exhaustive over the known kinds; an unknown kind
// reaches the log and stats but mutates nothing.
func (s *Simulation) Apply(ev entity.Event, b Bounds) {
	switch ev.Kind {
	case entity.KindAgentStart:
		s.onAgentStart(ev, b)
	case entity.KindAgentStop:
		s.onAgentStop(ev)
	case entity.KindToolStart:
		s.onToolStart(ev, b)
	case entity.KindToolEnd:
		if entity.IsExternalTool(ev.ToolName) {
			s.onExternalToolEnd(ev)
		}
	case entity.KindTaskCompleted:
		s.onTaskCompleted(ev, b)
	case entity.KindMilestone:
		// Synthesized internally; log-only.
	default:
		s.logger.Debug("Event with unknown kind", zap.String("kind", string(ev.Kind)))
	}
	s.record(ev)
	s.checkMilestones(b)
}

func (s *Simulation) onAgentStart(ev entity.Event, b Bounds) {
	w := s.world
	top, bottom := OceanTop, b.OceanBottom()
	if bottom <= top+1 {
		bottom = top + 2
	}
	label := ev.Description
	if label == "" {
		label = ev.AgentType
	}
	f := &entity.Fish{
		AgentID:   ev.AgentID,
		Label:     label,
		Status:    entity.StatusSpawning,
		X:         -10,
		Y:         float64(top+1) + w.rng.Float64()*float64(max(1, bottom-top-4)),
		Speed:     0.3 + w.rng.Float64()*0.5,
		SpriteIdx: entity.FishIndexForAgentType(ev.AgentType),
		Direction: 1,
		Alive:     true,
		StartedAt: time.Now(),
	}
	w.Fishes = append(w.Fishes, f)
	w.TotalAgents++
}

func (s *Simulation) onAgentStop(ev entity.Event) {
	f := s.world.FindFish(ev.AgentID)
	if f == nil || f.Status.Terminal() {
		return
	}
	if ev.Error {
		if s.status.Transition(f, entity.StatusError) {
			f.Speed = 0.1 // limp out slowly
			s.world.Stats.ErrorCount++
		}
		return
	}
	if s.status.Transition(f, entity.StatusDone) {
		if f.Speed < 0.6 {
			f.Speed = 0.6 // swim out briskly
		}
	}
}

func (s *Simulation) onToolStart(ev entity.Event, b Bounds) {
	if kind, ok := entity.CreatureKindForTool(ev.ToolName); ok {
		s.onExternalToolStart(ev, kind, b)
		return
	}

	w := s.world

	// Attribute to the owning fish; events naming an unknown agent fall
	// back to the main turtle (best-effort degradation for dropped starts).
	parent := w.FindFish(ev.AgentID)
	target := parent
	if target == nil {
		target = w.MainFish
	}

	bx := target.X + w.rng.Float64()*7 - 2
	by := target.Y - 1

	summary := ev.ToolInputSummary
	if summary == "" {
		summary = ev.ToolName
	}
	target.LastTool = truncate(fmt.Sprintf("%s: %s", ev.ToolName, summary), captionMax)
	target.LastToolAt = time.Now()

	w.ToolBubbles = append(w.ToolBubbles, &entity.ToolBubble{
		X:        bx,
		Y:        by,
		ToolName: truncate(fmt.Sprintf("%s:%s", ev.ToolName, summary), bubbleLabelMax),
		Char:     entity.BubbleChars[w.rng.Intn(len(entity.BubbleChars))],
	})
	w.TotalTools++
	w.Stats.ToolCounts[ev.ToolName]++

	// Sub-agent calls occasionally stir up a critter.
	if parent != nil && w.rng.Float64() < toolCreatureChance {
		spriteIdx := w.rng.Intn(len(entity.ToolCreatureSprites))
		cx := bx + w.rng.Float64()*6 - 3
		cy := by + w.rng.Float64()*3 - 1
		if spriteIdx == entity.ToolCreatureCrab {
			cy = float64(b.OceanBottom())
		}
		w.ToolCreatures = append(w.ToolCreatures, &entity.ToolCreature{
			X:         cx,
			Y:         cy,
			SpriteIdx: spriteIdx,
			Speed:     0.2 + w.rng.Float64()*0.2,
			Direction: -parent.Direction,
		})
	}
}

func (s *Simulation) onExternalToolStart(ev entity.Event, kind entity.CreatureKind, b Bounds) {
	w := s.world
	var y, speed float64
	if kind == entity.CreatureSailboat {
		y = float64(SurfaceRow - 3) // sail above water, hull at the waterline
		speed = 0.2
	} else {
		bottom := b.OceanBottom()
		y = float64(OceanTop) + w.rng.Float64()*float64(max(1, bottom-OceanTop-4))
		speed = 0.4 + w.rng.Float64()*0.3
	}
	w.Creatures = append(w.Creatures, &entity.Creature{
		Kind:      kind,
		ToolName:  ev.ToolName,
		AgentID:   ev.AgentID,
		X:         -25,
		Y:         y,
		Speed:     speed,
		Direction: 1,
		Alive:     true,
		StartedAt: time.Now(),
	})
	w.TotalTools++
	w.Stats.ToolCounts[ev.ToolName]++
}

// onExternalToolEnd marks the matching active creature as leaving. No match
// is a no-op: the end may belong to a call whose start was never seen.
func (s *Simulation) onExternalToolEnd(ev entity.Event) {
	for _, c := range s.world.Creatures {
		if c.AgentID == ev.AgentID && c.ToolName == ev.ToolName && !c.Leaving {
			c.Leaving = true
			if c.Speed < 0.6 {
				c.Speed = 0.6
			}
			c.Jumping = false // abandon a jump mid-air
			return
		}
	}
}

func (s *Simulation) onTaskCompleted(ev entity.Event, b Bounds) {
	w := s.world
	if t := w.FindTask(ev.TaskSubject); t != nil {
		t.Completed = true
		return
	}
	w.Tasks = append(w.Tasks, &entity.TaskMarker{
		Subject:   ev.TaskSubject,
		X:         3 + w.rng.Intn(max(1, b.W-17)),
		Completed: true,
	})
}

// record appends a derived log entry and bumps the session counters for
// every event regardless of kind.
func (s *Simulation) record(ev entity.Event) {
	var detail string
	switch ev.Kind {
	case entity.KindAgentStart:
		desc := ev.Description
		if desc == "" {
			desc = "started"
		}
		detail = fmt.Sprintf("%s: %s", ev.AgentType, desc)
	case entity.KindAgentStop:
		outcome := "done"
		if ev.Error {
			outcome = "ERROR"
		}
		detail = fmt.Sprintf("%s: %s", ev.AgentType, outcome)
	case entity.KindToolStart:
		summary := ev.ToolInputSummary
		if summary == "" {
			summary = ev.ToolName
		}
		detail = fmt.Sprintf("%s: %s", ev.ToolName, summary)
	case entity.KindToolEnd:
		outcome := "ok"
		if !ev.Success {
			outcome = "fail"
		}
		detail = fmt.Sprintf("%s: %s", ev.ToolName, outcome)
	case entity.KindTaskCompleted:
		detail = fmt.Sprintf("task: %s", ev.TaskSubject)
	case entity.KindMilestone:
		detail = ev.Description
		if detail == "" {
			detail = "milestone reached"
		}
	default:
		detail = string(ev.Kind)
	}

	ts := time.Now()
	if ev.Timestamp > 0 {
		ts = time.Unix(0, int64(ev.Timestamp*float64(time.Second)))
	}
	s.world.AppendLog(entity.LogEntry{
		Timestamp: ts,
		Kind:      ev.Kind,
		Detail:    truncate(detail, detailMax),
	})
	s.world.Stats.TotalEvents++
}

// checkMilestones fires each population milestone at most once per session.
func (s *Simulation) checkMilestones(b Bounds) {
	w := s.world
	if w.TotalTools >= 100 && w.MilestoneFired(milestoneTools) {
		for i := 0; i < 5; i++ {
			w.Ambient = append(w.Ambient, &entity.AmbientCreature{
				Kind:      entity.AmbientJellyfish,
				X:         3 + w.rng.Float64()*float64(max(1, b.W-11)),
				Y:         float64(OceanTop+1) + w.rng.Float64()*float64(max(1, b.OceanBottom()-OceanTop-1)),
				Speed:     0.02 + w.rng.Float64()*0.03,
				Direction: randDirection(w.rng),
			})
		}
		s.record(entity.Event{
			Kind:        entity.KindMilestone,
			Description: "100 tools reached! Ocean comes alive!",
			Timestamp:   float64(time.Now().UnixNano()) / float64(time.Second),
		})
	}
	if w.TotalAgents >= 10 && w.MilestoneFired(milestoneAgents) {
		for i := 0; i < 4; i++ {
			w.Ambient = append(w.Ambient, &entity.AmbientCreature{
				Kind:      entity.AmbientFish,
				X:         w.rng.Float64() * float64(max(1, b.W-5)),
				Y:         float64(OceanTop+1) + w.rng.Float64()*float64(max(1, b.OceanBottom()-OceanTop-1)),
				Speed:     0.15 + w.rng.Float64()*0.1,
				Direction: randDirection(w.rng),
			})
		}
		s.record(entity.Event{
			Kind:        entity.KindMilestone,
			Description: "10 agents spawned! Fish school appears!",
			Timestamp:   float64(time.Now().UnixNano()) / float64(time.Second),
		})
	}
}

// prune compacts every collection after the update pass; removal never
// happens while iterating.
func (s *Simulation) prune() {
	w := s.world

	fishes := w.Fishes[:0]
	for _, f := range w.Fishes {
		if f.Alive {
			fishes = append(fishes, f)
		}
	}
	w.Fishes = fishes

	creatures := w.Creatures[:0]
	for _, c := range w.Creatures {
		if c.Alive {
			creatures = append(creatures, c)
		}
	}
	w.Creatures = creatures

	bubbles := w.ToolBubbles[:0]
	for _, tb := range w.ToolBubbles {
		if tb.Age < toolBubbleMaxAge && tb.Y > SurfaceRow {
			bubbles = append(bubbles, tb)
		}
	}
	w.ToolBubbles = bubbles

	critters := w.ToolCreatures[:0]
	for _, tc := range w.ToolCreatures {
		if tc.Age < toolCreatureMaxAge {
			critters = append(critters, tc)
		}
	}
	w.ToolCreatures = critters
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
