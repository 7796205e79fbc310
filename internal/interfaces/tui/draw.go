package tui

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/reeflab/reef/internal/domain/entity"
	"github.com/reeflab/reef/internal/domain/service"
)

func isNight(now time.Time) bool {
	hour := now.Hour()
	return hour < 6 || hour >= 19
}

func drawSky(c *Canvas, w *service.World, b service.Bounds, now time.Time) {
	night := isNight(now)

	// Stars reseed every 200 ticks for a slow twinkle.
	if night {
		rng := rand.New(rand.NewSource(int64(w.Tick / 200)))
		for i := 0; i < min(15, b.W/5); i++ {
			sx := rng.Intn(max(1, b.W-1))
			sy := rng.Intn(4)
			ch := entity.StarChars[rng.Intn(len(entity.StarChars))]
			style := &styleStar
			if ch == '*' && rng.Float64() >= 0.7 {
				style = &styleStarBright
			}
			c.SetRune(sy, sx, ch, style)
		}
	}

	body, style := entity.SunArt, &styleSun
	if night {
		body, style = entity.MoonArt, &styleMoon
	}
	bodyX := b.W - len([]rune(body[0])) - 2
	c.SetLines(0, bodyX, body, style)

	for _, cl := range w.Clouds {
		c.SetLines(cl.Y, int(cl.X), entity.CloudSprites[cl.SpriteIdx], &styleCloud)
	}
}

func drawBirds(c *Canvas, w *service.World) {
	frame := entity.BirdFrames[w.Tick/8%2]
	for _, ac := range w.Ambient {
		if ac.Kind == entity.AmbientBird {
			c.SetLines(int(ac.Y), int(ac.X), frame, &styleBird)
		}
	}
}

func drawWaves(c *Canvas, w *service.World, b service.Bounds) {
	frame := entity.WaveFrames[w.Tick/4%2]
	tile := tileTo(frame, b.W)
	c.SetText(service.SurfaceRow, 0, tile, &styleWave)
	c.SetText(service.SurfaceRow+1, 0, reverse(tile), &styleWaveDim)
}

func drawWaterDots(c *Canvas, w *service.World, b service.Bounds) {
	for row := service.OceanTop; row < b.PanelTop()-1; row++ {
		offset := (w.Tick/6 + row*3) % 8
		for col := offset; col < b.W-1; col += 8 {
			c.SetRune(row, col, '.', &styleWater)
		}
	}
}

func drawAmbient(c *Canvas, w *service.World) {
	jellyFrame := entity.JellyfishFrames[w.Tick/10%2]
	for _, ac := range w.Ambient {
		switch ac.Kind {
		case entity.AmbientJellyfish:
			c.SetLines(int(ac.Y), int(ac.X), jellyFrame, &styleJellyfish)
		case entity.AmbientFish:
			art := entity.AmbientFishSprite.Facing(ac.Direction)
			c.SetLines(int(ac.Y), int(ac.X), art, &styleAmbient)
		}
	}
}

func fishStyle(f *entity.Fish, selected bool) *lipgloss.Style {
	if selected {
		return &styleFishSelected
	}
	if f.SpriteIdx == entity.FishTurtle {
		return &styleFishMain
	}
	switch f.Status {
	case entity.StatusSpawning:
		return &styleFishSpawning
	case entity.StatusWorking:
		return &styleFishWorking
	case entity.StatusDone:
		return &styleFishDone
	default:
		return &styleFishError
	}
}

func drawFish(c *Canvas, w *service.World, f *entity.Fish, b service.Bounds, selected bool, now time.Time) {
	sprite := entity.FishSprites[f.SpriteIdx]
	art := sprite.Facing(f.Direction)

	wobble := int(math.Sin(float64(w.Tick)*0.15+f.X*0.1) * 0.7)
	drawY := int(f.Y) + wobble
	drawX := int(f.X)

	c.SetLines(drawY, drawX, art, fishStyle(f, selected))

	// Label row above the sprite; working fish show elapsed time.
	labelY := drawY - 1
	if labelY >= service.OceanTop && labelY < b.PanelTop()-1 {
		text := clipRunes(f.Label, 20)
		if f.Status == entity.StatusWorking {
			text += fmt.Sprintf(" %.0fs", now.Sub(f.StartedAt).Seconds())
		}
		c.SetText(labelY, drawX, text, &styleLabel)
	}

	// Tool caption above the label, fading before it expires.
	if f.LastTool != "" {
		age := now.Sub(f.LastToolAt)
		captionY := labelY - 1
		if age < 10*time.Second && captionY >= service.OceanTop && captionY < b.PanelTop()-1 {
			style := &styleCaption
			if age > 7*time.Second {
				style = &styleLabelDim
			}
			c.SetText(captionY, drawX, f.LastTool, style)
		}
	}

	for _, bub := range f.Bubbles {
		c.SetRune(int(bub.Y), int(bub.X), bub.Char, &styleBubble)
	}
}

func drawToolBubbles(c *Canvas, w *service.World, b service.Bounds) {
	for _, tb := range w.ToolBubbles {
		by, bx := int(tb.Y), int(tb.X)
		if by < service.OceanTop || by >= b.PanelTop()-1 {
			continue
		}
		c.SetRune(by, bx, tb.Char, &styleBubble)
		if tb.Age < 15 {
			c.SetText(by, bx+2, tb.ToolName, &styleLabelDim)
		}
	}
}

func drawToolCreatures(c *Canvas, w *service.World) {
	for _, tc := range w.ToolCreatures {
		sprite := entity.ToolCreatureSprites[tc.SpriteIdx]
		c.SetLines(int(tc.Y), int(tc.X), sprite.Facing(tc.Direction), &styleCritter)
	}
}

func drawCreature(c *Canvas, cr *entity.Creature, b service.Bounds) {
	sprite, style := entity.DolphinSprite, &styleDolphin
	if cr.Kind == entity.CreatureSailboat {
		sprite, style = entity.SailboatSprite, &styleSailboat
	}
	drawX, drawY := int(cr.X), int(cr.Y)
	c.SetLines(drawY, drawX, sprite.Facing(cr.Direction), style)

	if cr.Kind == entity.CreatureSailboat {
		wakeRow := service.SurfaceRow + 1
		for _, wp := range cr.Wake {
			wx := int(wp.X) + sprite.W/2
			switch {
			case wp.Age < 7:
				c.SetRune(wakeRow, wx, '~', &styleWave)
			case wp.Age < 14:
				c.SetRune(wakeRow, wx, '~', &styleWaveDim)
			default:
				c.SetRune(wakeRow, wx, '.', &styleWaveDim)
			}
		}
	}

	// Splash only at the start and end of a jump arc.
	if cr.Kind == entity.CreatureDolphin && cr.Jumping {
		t := float64(cr.JumpTick) / float64(max(1, cr.JumpDuration))
		if t < 0.1 || t > 0.9 {
			c.SetText(service.SurfaceRow, drawX+sprite.W/2-2, "~*~*~", &styleWave)
		}
	}

	labelY := drawY + sprite.H
	if labelY < b.PanelTop()-1 {
		c.SetText(labelY, drawX, clipRunes(entity.ExternalToolLabel(cr.ToolName), 15), &styleLabelDim)
	}
}

func drawSeaweed(c *Canvas, w *service.World, b service.Bounds) {
	frame := entity.SeaweedFrames[w.Tick/8%2]
	bottom := b.OceanBottom()
	for i, sx := range w.SeaweedXs {
		if sx >= b.W {
			continue
		}
		for j := 0; j < w.SeaweedHeights[i]; j++ {
			row := bottom - j
			if row < service.OceanTop {
				continue
			}
			c.SetRune(row, sx, frame[j%len(frame)], &styleSeaweed)
		}
	}
}

func drawFloorDecor(c *Canvas, w *service.World, b service.Bounds) {
	frameIdx := w.Tick / 10 % 2
	floorRow := b.OceanBottom()
	for _, d := range w.FloorDecor {
		if d.X >= b.W-1 {
			continue
		}
		switch d.Kind {
		case entity.DecorCoral:
			drawFloorArt(c, entity.CoralArts[d.ArtIdx], d.X, floorRow)
		case entity.DecorRock:
			drawFloorArt(c, entity.RockArts[d.ArtIdx], d.X, floorRow)
		case entity.DecorShell:
			drawFloorArt(c, entity.ShellArt, d.X, floorRow)
		case entity.DecorStarfish:
			drawFloorArt(c, entity.StarfishArt, d.X, floorRow)
		case entity.DecorWideSeaweed:
			frame := entity.WideSeaweedFrames[d.ArtIdx][frameIdx]
			for i, line := range frame {
				row := floorRow - i
				if row >= service.OceanTop {
					c.SetText(row, d.X, line, &styleSeaweed)
				}
			}
		}
	}
}

// drawFloorArt stacks a decoration's lines upward from the floor row.
func drawFloorArt(c *Canvas, art entity.FloorArt, x, floorRow int) {
	style, ok := floorPalette[art.Color]
	if !ok {
		style = &styleLabel
	}
	for i, line := range art.Lines {
		row := floorRow - i
		if row >= service.OceanTop {
			c.SetText(row, x, line, style)
		}
	}
}

func drawTaskMarkers(c *Canvas, w *service.World, b service.Bounds) {
	row := b.OceanBottom()
	for _, t := range w.Tasks {
		marker, style := "?", &styleTaskOpen
		if t.Completed {
			marker, style = "V", &styleTaskDone
		}
		c.SetText(row, t.X, fmt.Sprintf("[%s] %s", marker, clipRunes(t.Subject, 12)), style)
	}
}

func drawFloor(c *Canvas, b service.Bounds) {
	tile := tileTo(entity.FloorPattern, b.W-1)
	c.SetText(b.PanelTop()-2, 0, tile, &styleFloor)
}

func drawHUD(c *Canvas, w *service.World, b service.Bounds) {
	hud := fmt.Sprintf(" reef  |  Agents: %d/%d  |  Tools: %d  |  Events: %d  |  [Q]uit [D]emo [Tab]panel [←→]select [Esc]desel ",
		w.ActiveAgents(), w.TotalAgents, w.TotalTools, w.Stats.TotalEvents)
	if pad := b.W - len([]rune(hud)); pad > 0 {
		hud += strings.Repeat(" ", pad)
	}
	c.SetText(b.PanelTop()-1, 0, hud, &styleHUD)
}

func tileTo(pattern string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(strings.Repeat(pattern, width/len([]rune(pattern))+2))
	return string(runes[:width])
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
