package service

import (
	"go.uber.org/zap"

	"github.com/reeflab/reef/internal/domain/entity"
)

// validStatusTransitions defines the allowed fish lifecycle moves.
// Key = from status, value = set of allowed targets. Done and error are
// terminal: a second agent_stop for a finished agent is a no-op, never a
// re-animation.
var validStatusTransitions = map[entity.AgentStatus]map[entity.AgentStatus]bool{
	entity.StatusSpawning: {
		entity.StatusWorking: true,
		// A stop can arrive before the fish is fully on-screen.
		entity.StatusDone:  true,
		entity.StatusError: true,
	},
	entity.StatusWorking: {
		entity.StatusDone:  true,
		entity.StatusError: true,
	},
	entity.StatusDone:  {},
	entity.StatusError: {},
}

// StatusMachine applies lifecycle transitions to fish. Invalid transitions
// are rejected quietly; telemetry is best-effort and an out-of-order stop
// must not disturb the world.
type StatusMachine struct {
	logger *zap.Logger
}

// NewStatusMachine returns a machine logging rejected transitions at debug.
func NewStatusMachine(logger *zap.Logger) *StatusMachine {
	return &StatusMachine{logger: logger.With(zap.String("component", "status-machine"))}
}

// Can reports whether from → to is an allowed transition.
func (m *StatusMachine) Can(from, to entity.AgentStatus) bool {
	allowed, ok := validStatusTransitions[from]
	return ok && allowed[to]
}

// Transition moves the fish to a new status. Returns false (leaving the fish
// untouched) when the transition is not allowed.
func (m *StatusMachine) Transition(f *entity.Fish, to entity.AgentStatus) bool {
	if !m.Can(f.Status, to) {
		m.logger.Debug("Rejected status transition",
			zap.String("agent_id", f.AgentID),
			zap.String("from", string(f.Status)),
			zap.String("to", string(to)),
		)
		return false
	}
	from := f.Status
	f.Status = to
	m.logger.Debug("Status transition",
		zap.String("agent_id", f.AgentID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return true
}
