package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/reeflab/reef/internal/domain/entity"
	"github.com/reeflab/reef/internal/domain/service"
)

type panelMode string

const (
	panelLog    panelMode = "log"
	panelStats  panelMode = "stats"
	panelDetail panelMode = "detail"
)

func drawPanel(c *Canvas, w *service.World, b service.Bounds, mode panelMode, logScroll int, selected *entity.Fish, now time.Time) {
	panelTop := b.PanelTop()

	c.SetText(panelTop, 0, strings.Repeat("-", max(0, b.W-1)), &styleSeparator)
	tabX := 1
	for _, m := range []panelMode{panelLog, panelStats, panelDetail} {
		label, style := fmt.Sprintf(" %s ", m), &styleTab
		if m == mode {
			label, style = fmt.Sprintf("[%s]", strings.ToUpper(string(m))), &styleTabActive
		}
		c.SetText(panelTop, tabX, label, style)
		tabX += len([]rune(label)) + 3
	}
	c.SetText(panelTop, tabX, "[Tab] switch", &styleTab)

	contentTop := panelTop + 1
	contentHeight := service.PanelHeight - 1
	switch mode {
	case panelStats:
		drawStatsPanel(c, w, b, contentTop, now)
	case panelDetail:
		drawDetailPanel(c, w, b, contentTop, selected, now)
	default:
		drawLogPanel(c, w, b, contentTop, contentHeight, logScroll)
	}
}

func drawLogPanel(c *Canvas, w *service.World, b service.Bounds, top, height, scroll int) {
	if len(w.Log) == 0 {
		c.SetText(top, 1, "No events yet...", &stylePanelDim)
		return
	}

	// Newest at the bottom; scrolling moves the window back in time.
	total := len(w.Log)
	end := total - scroll
	if end < 0 {
		end = 0
	}
	start := max(0, end-height)
	visible := w.Log[start:end]

	for i, entry := range visible {
		kindShort := strings.ReplaceAll(string(entry.Kind), "_", " ")
		line := fmt.Sprintf(" %s  %-12s  %s",
			entry.Timestamp.Format("15:04:05"), clipRunes(kindShort, 12), entry.Detail)

		style := &stylePanelDim
		if strings.Contains(entry.Detail, "ERROR") || strings.Contains(entry.Detail, "fail") {
			style = &styleLogError
		} else if strings.Contains(entry.Detail, "done") || strings.Contains(entry.Detail, "ok") {
			style = &styleLogSuccess
		}
		c.SetText(top+i, 0, clipRunes(line, b.W-1), style)
	}
}

func drawStatsPanel(c *Canvas, w *service.World, b service.Bounds, top int, now time.Time) {
	elapsed := int(now.Sub(w.Stats.SessionStart).Seconds())
	line1 := fmt.Sprintf(" Session: %dm%02ds  |  Agents: %d active / %d total  |  Events: %d  |  Errors: %d",
		elapsed/60, elapsed%60, w.ActiveAgents(), w.TotalAgents,
		w.Stats.TotalEvents, w.Stats.ErrorCount)
	c.SetText(top, 0, clipRunes(line1, b.W-1), &stylePanelText)

	if len(w.Stats.ToolCounts) == 0 {
		return
	}
	type toolCount struct {
		name  string
		count int
	}
	counts := make([]toolCount, 0, len(w.Stats.ToolCounts))
	for name, n := range w.Stats.ToolCounts {
		counts = append(counts, toolCount{name, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	parts := make([]string, 0, len(counts))
	for _, tc := range counts {
		parts = append(parts, fmt.Sprintf("%s(%d)", tc.name, tc.count))
	}
	c.SetText(top+1, 0, clipRunes(" Top tools: "+strings.Join(parts, "  "), b.W-1), &stylePanelDim)
}

func drawDetailPanel(c *Canvas, w *service.World, b service.Bounds, top int, fish *entity.Fish, now time.Time) {
	if fish == nil {
		c.SetText(top, 1, "No fish selected. Use ← → to select.", &stylePanelDim)
		return
	}

	elapsed := now.Sub(fish.StartedAt).Seconds()
	line1 := fmt.Sprintf(" Agent: %s (%s)  |  Status: %s %.0fs",
		clipRunes(fish.Label, 20), clipRunes(fish.AgentID, 10),
		strings.ToUpper(string(fish.Status)), elapsed)
	c.SetText(top, 0, clipRunes(line1, b.W-1), &stylePanelText)

	lastTool := fish.LastTool
	if lastTool == "" {
		lastTool = "none"
	}
	arrow := "→"
	if fish.Direction != 1 {
		arrow = "←"
	}
	line2 := fmt.Sprintf(" Last tool: %s  |  Speed: %.1f  |  Dir: %s", lastTool, fish.Speed, arrow)
	c.SetText(top+1, 0, clipRunes(line2, b.W-1), &stylePanelDim)
}
