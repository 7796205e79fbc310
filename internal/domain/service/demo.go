package service

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reeflab/reef/internal/domain/entity"
	"github.com/reeflab/reef/pkg/safego"
)

// Enqueuer accepts synthetic events into the same bounded queue the socket
// server feeds. The demo director only ever talks to the world through it,
// so demo traffic is indistinguishable from real telemetry.
type Enqueuer interface {
	Enqueue(entity.Event)
}

var demoTasks = []string{
	"Find API endpoints", "Run test suite", "Write output.json",
	"Search documentation", "Analyze logs", "Edit config.toml",
	"Review PR changes", "Explore codebase",
}

var demoAgentTypes = []string{
	"Explore", "general-purpose", "Plan", "code-reviewer",
	"feature-dev:code-architect",
}

var demoTools = []string{"Read", "Bash", "Write", "Grep", "Edit"}

var demoToolInputs = []string{"main.go", "go test ./...", "*.ts", "TODO"}

var demoExternalTools = []string{
	"mcp__codex__codex",
	"mcp__notion__search-pages",
	"mcp__context7__query-docs",
}

// DemoDirector fabricates realistic agent lifecycles on randomized delays.
type DemoDirector struct {
	sink      Enqueuer
	logger    *zap.Logger
	errorRate float64

	mu  sync.Mutex
	rng *rand.Rand

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDemoDirector builds a director feeding the given sink. The RNG is
// injected so tests can fix the seed; errorRate is the probability that a
// synthetic agent ends in failure, clamped to [0, 1].
func NewDemoDirector(sink Enqueuer, rng *rand.Rand, errorRate float64, logger *zap.Logger) *DemoDirector {
	if errorRate < 0 {
		errorRate = 0
	}
	if errorRate > 1 {
		errorRate = 1
	}
	return &DemoDirector{
		sink:      sink,
		logger:    logger.With(zap.String("component", "demo")),
		errorRate: errorRate,
		rng:       rng,
		stopCh:    make(chan struct{}),
	}
}

// Stop halts the continuous spawner and any in-flight lifecycles at their
// next delay. Idempotent.
func (d *DemoDirector) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

// Start runs the continuous spawner: a small initial school, then a fresh
// agent every few seconds until stopped.
func (d *DemoDirector) Start() {
	safego.Go(d.logger, "demo-spawner", func() {
		if !d.sleep(500 * time.Millisecond) {
			return
		}
		for i := 0; i < 3; i++ {
			d.SpawnOne()
			if !d.sleep(d.randDuration(500*time.Millisecond, 1500*time.Millisecond)) {
				return
			}
		}
		for {
			if !d.sleep(d.randDuration(2*time.Second, 5*time.Second)) {
				return
			}
			d.SpawnOne()
		}
	})
}

// SpawnOne emits a full synthetic lifecycle for one agent: start, a handful
// of tool calls, an occasional external-tool pair, then a stop that fails
// with probability errorRate.
func (d *DemoDirector) SpawnOne() {
	agentID := "demo-" + uuid.NewString()[:8]
	agentType := demoAgentTypes[d.intn(len(demoAgentTypes))]
	d.sink.Enqueue(entity.Event{
		Kind:        entity.KindAgentStart,
		AgentID:     agentID,
		AgentType:   agentType,
		Description: demoTasks[d.intn(len(demoTasks))],
		Timestamp:   nowUnix(),
	})

	safego.Go(d.logger, "demo-lifecycle", func() {
		if !d.sleep(d.randDuration(2*time.Second, 5*time.Second)) {
			return
		}
		for i := 0; i < 2+d.intn(4); i++ {
			if !d.sleep(d.randDuration(500*time.Millisecond, 1500*time.Millisecond)) {
				return
			}
			d.sink.Enqueue(entity.Event{
				Kind:             entity.KindToolStart,
				ToolName:         demoTools[d.intn(len(demoTools))],
				ToolInputSummary: demoToolInputs[d.intn(len(demoToolInputs))],
				AgentID:          agentID,
				Timestamp:        nowUnix(),
			})
		}

		if d.float64() < 0.55 {
			tool := demoExternalTools[d.intn(len(demoExternalTools))]
			d.sink.Enqueue(entity.Event{
				Kind:             entity.KindToolStart,
				ToolName:         tool,
				ToolInputSummary: entity.ExternalToolLabel(tool),
				AgentID:          agentID,
				Timestamp:        nowUnix(),
			})
			if !d.sleep(d.randDuration(3*time.Second, 6*time.Second)) {
				return
			}
			d.sink.Enqueue(entity.Event{
				Kind:      entity.KindToolEnd,
				ToolName:  tool,
				Success:   true,
				AgentID:   agentID,
				Timestamp: nowUnix(),
			})
		}

		if !d.sleep(500 * time.Millisecond) {
			return
		}
		d.sink.Enqueue(entity.Event{
			Kind:      entity.KindAgentStop,
			AgentID:   agentID,
			AgentType: agentType,
			Error:     d.float64() < d.errorRate,
			Timestamp: nowUnix(),
		})
	})
}

// scenarioStep is one entry in a scripted demo file. The event block uses
// the same field names as the wire records.
type scenarioStep struct {
	DelayMS int           `yaml:"delay_ms"`
	Event   scenarioEvent `yaml:"event"`
}

type scenarioEvent struct {
	Event            string  `yaml:"event"`
	AgentID          string  `yaml:"agent_id"`
	AgentType        string  `yaml:"agent_type"`
	Description      string  `yaml:"description"`
	Error            bool    `yaml:"error"`
	ToolName         string  `yaml:"tool_name"`
	ToolInputSummary string  `yaml:"tool_input_summary"`
	Success          *bool   `yaml:"success"`
	TaskSubject      string  `yaml:"task_subject"`
	Timestamp        float64 `yaml:"timestamp"`
}

func (se scenarioEvent) toEvent() entity.Event {
	ev := entity.Event{
		Kind:             entity.EventKind(se.Event),
		AgentID:          se.AgentID,
		AgentType:        se.AgentType,
		Description:      se.Description,
		Error:            se.Error,
		ToolName:         se.ToolName,
		ToolInputSummary: se.ToolInputSummary,
		Success:          true,
		TaskSubject:      se.TaskSubject,
		Timestamp:        se.Timestamp,
	}
	if se.Success != nil {
		ev.Success = *se.Success
	}
	return ev
}

// PlayScenario replays a YAML script of delayed events through the sink.
// Steps missing a timestamp are stamped at send time.
func (d *DemoDirector) PlayScenario(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	var steps []scenarioStep
	if err := yaml.Unmarshal(raw, &steps); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	safego.Go(d.logger, "demo-scenario", func() {
		for _, step := range steps {
			if !d.sleep(time.Duration(step.DelayMS) * time.Millisecond) {
				return
			}
			ev := step.Event.toEvent()
			if ev.Kind == "" {
				continue
			}
			if ev.Timestamp == 0 {
				ev.Timestamp = nowUnix()
			}
			d.sink.Enqueue(ev)
		}
		d.logger.Info("Scenario finished", zap.String("path", path))
	})
	return nil
}

// sleep waits for dur or until Stop; returns false when stopped.
func (d *DemoDirector) sleep(dur time.Duration) bool {
	select {
	case <-time.After(dur):
		return true
	case <-d.stopCh:
		return false
	}
}

func (d *DemoDirector) randDuration(lo, hi time.Duration) time.Duration {
	return lo + time.Duration(d.float64()*float64(hi-lo))
}

func (d *DemoDirector) intn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(n)
}

func (d *DemoDirector) float64() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64()
}

func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
