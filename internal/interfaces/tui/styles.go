package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan    = lipgloss.Color("#00D7FF")
	colorDimCyan = lipgloss.Color("#00AFAF")
	colorBlue    = lipgloss.Color("#5FAFFF")
	colorGreen   = lipgloss.Color("#00FF87")
	colorYellow  = lipgloss.Color("#FFD75F")
	colorRed     = lipgloss.Color("#FF5F5F")
	colorMagenta = lipgloss.Color("#FF87D7")
	colorWhite   = lipgloss.Color("#FFFFFF")
	colorGray    = lipgloss.Color("#6C6C6C")
	colorDim     = lipgloss.Color("#4E4E4E")
	colorSand    = lipgloss.Color("#AF8700")
)

// Scene styles. Declared as vars so the canvas can group cells by style
// identity when flushing a frame.
var (
	styleWave       = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleWaveDim    = lipgloss.NewStyle().Foreground(colorDimCyan)
	styleWater      = lipgloss.NewStyle().Foreground(colorBlue).Faint(true)
	styleSeaweed    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleBubble     = lipgloss.NewStyle().Foreground(colorBlue)
	styleLabel      = lipgloss.NewStyle().Foreground(colorGray)
	styleLabelDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleCaption    = lipgloss.NewStyle().Foreground(colorWhite)
	styleSun        = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleMoon       = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleStar       = lipgloss.NewStyle().Foreground(colorWhite).Faint(true)
	styleStarBright = lipgloss.NewStyle().Foreground(colorYellow)
	styleCloud      = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleBird       = lipgloss.NewStyle().Foreground(colorWhite)
	styleSailboat   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleDolphin    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleJellyfish  = lipgloss.NewStyle().Foreground(colorMagenta).Faint(true)
	styleAmbient    = lipgloss.NewStyle().Foreground(colorDimCyan).Faint(true)
	styleCritter    = lipgloss.NewStyle().Foreground(colorDimCyan)
	styleFloor      = lipgloss.NewStyle().Foreground(colorSand).Faint(true)
	styleTaskDone   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleTaskOpen   = lipgloss.NewStyle().Foreground(colorGray).Faint(true)
)

// Fish status styles; the turtle keeps its own color regardless of status.
var (
	styleFishSpawning = lipgloss.NewStyle().Foreground(colorWhite)
	styleFishWorking  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleFishDone     = lipgloss.NewStyle().Foreground(colorMagenta)
	styleFishError    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleFishMain     = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleFishSelected = lipgloss.NewStyle().Foreground(colorWhite).Background(colorDimCyan)
)

// Floor decoration palette, keyed by the color names the art declares.
var floorPalette = map[string]*lipgloss.Style{
	"red":     &styleFishError,
	"magenta": &styleFishDone,
	"yellow":  &styleSun,
	"white":   &styleStar,
	"green":   &styleSeaweed,
}

// HUD and panel styles.
var (
	styleHUD        = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(colorCyan)
	styleSeparator  = lipgloss.NewStyle().Foreground(colorDim)
	styleTabActive  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleTab        = lipgloss.NewStyle().Foreground(colorGray)
	stylePanelText  = lipgloss.NewStyle().Foreground(colorWhite)
	stylePanelDim   = lipgloss.NewStyle().Foreground(colorGray)
	styleLogError   = lipgloss.NewStyle().Foreground(colorRed)
	styleLogSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)
