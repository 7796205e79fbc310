// Package tui renders the aquarium with bubbletea. The model owns the
// simulation clock: every animation tick drains the ingest queue, advances
// the world one step and repaints.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/reeflab/reef/internal/domain/entity"
	"github.com/reeflab/reef/internal/domain/service"
)

type tickMsg time.Time

// Model is the bubbletea root model.
type Model struct {
	sim  *service.Simulation
	demo *service.DemoDirector

	interval time.Duration
	width    int
	height   int

	mode        panelMode
	selectedIdx int
	logScroll   int
	showHelp    bool

	help   help.Model
	logger *zap.Logger
}

// New builds the root model. fps bounds the animation rate; values outside
// a sane range fall back to 20.
func New(sim *service.Simulation, demo *service.DemoDirector, fps int, logger *zap.Logger) Model {
	if fps < 1 || fps > 60 {
		fps = 20
	}
	return Model{
		sim:         sim,
		demo:        demo,
		interval:    time.Second / time.Duration(fps),
		mode:        panelLog,
		selectedIdx: -1,
		help:        help.New(),
		logger:      logger.With(zap.String("component", "tui")),
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) bounds() service.Bounds {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}
	return service.Bounds{W: w, H: h}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.sim.Tick(m.bounds())
		m.reconcileSelection()
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.sim.World()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Demo):
		if m.demo != nil {
			m.demo.SpawnOne()
		}

	case key.Matches(msg, keys.Panel):
		switch m.mode {
		case panelLog:
			m.mode = panelStats
		default:
			m.mode = panelLog
		}

	case key.Matches(msg, keys.Left):
		if sel := w.Selectable(); len(sel) > 0 {
			m.selectedIdx = ((m.selectedIdx-1)%len(sel) + len(sel)) % len(sel)
			m.mode = panelDetail
		}

	case key.Matches(msg, keys.Right):
		if sel := w.Selectable(); len(sel) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(sel)
			m.mode = panelDetail
		}

	case key.Matches(msg, keys.Deselect):
		m.selectedIdx = -1
		if m.mode == panelDetail {
			m.mode = panelLog
		}

	case key.Matches(msg, keys.Up):
		if m.mode == panelLog {
			maxScroll := max(0, len(w.Log)-service.PanelHeight+1)
			m.logScroll = min(m.logScroll+1, maxScroll)
		}

	case key.Matches(msg, keys.Down):
		if m.mode == panelLog {
			m.logScroll = max(0, m.logScroll-1)
		}

	case msg.String() == "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// reconcileSelection drops a selection whose fish has left the world.
func (m *Model) reconcileSelection() {
	if m.selectedIdx < 0 {
		return
	}
	sel := m.sim.World().Selectable()
	if m.selectedIdx >= len(sel) {
		m.selectedIdx = len(sel) - 1
		if m.selectedIdx < 0 && m.mode == panelDetail {
			m.mode = panelLog
		}
	}
}

func (m Model) selectedFish() *entity.Fish {
	if m.selectedIdx < 0 {
		return nil
	}
	sel := m.sim.World().Selectable()
	if m.selectedIdx >= len(sel) {
		return nil
	}
	return sel[m.selectedIdx]
}

// View paints one frame back-to-front: sky, water, background life, agent
// fish, external-tool creatures, floor and finally the HUD and panel.
func (m Model) View() string {
	b := m.bounds()
	if b.H < service.PanelHeight+8 {
		return "terminal too small"
	}

	w := m.sim.World()
	now := time.Now()
	c := NewCanvas(b.W, b.H)
	selected := m.selectedFish()

	drawSky(c, w, b, now)
	drawBirds(c, w)
	drawWaves(c, w, b)
	drawWaterDots(c, w, b)
	drawAmbient(c, w)

	for _, f := range w.Fishes {
		drawFish(c, w, f, b, f == selected, now)
	}
	if w.MainFish != nil {
		drawFish(c, w, w.MainFish, b, w.MainFish == selected, now)
	}
	for _, cr := range w.Creatures {
		drawCreature(c, cr, b)
	}
	drawToolBubbles(c, w, b)
	drawToolCreatures(c, w)
	drawSeaweed(c, w, b)
	drawFloorDecor(c, w, b)
	drawTaskMarkers(c, w, b)
	drawFloor(c, b)

	if m.showHelp {
		c.SetText(b.PanelTop()-1, 0, " "+m.help.View(keys), &styleHUD)
	} else {
		drawHUD(c, w, b)
	}
	drawPanel(c, w, b, m.mode, m.logScroll, selected, now)

	return c.Render()
}
