package entity

import "strings"

// Sprite is a multi-line ASCII figure with a mirrored variant for each swim
// direction.
type Sprite struct {
	Right []string
	Left  []string
	W, H  int
}

// Facing returns the art for a horizontal direction (+1 right, -1 left).
func (s Sprite) Facing(direction int) []string {
	if direction >= 0 {
		return s.Right
	}
	return s.Left
}

// Fish sprite indices, keyed off the agent type that spawned the fish.
const (
	FishSmall = iota
	FishMedium
	FishLarge
	FishDecorated
	FishTurtle // reserved for the main session
)

var FishSprites = []Sprite{
	{Right: []string{"><(((°>"}, Left: []string{"<°)))><"}, W: 7, H: 1},
	{Right: []string{"><((°>"}, Left: []string{"<°))><"}, W: 6, H: 1},
	{
		Right: []string{"  .  . ", "><(°)> ", "  `  ' "},
		Left:  []string{" .  .  ", " <(°)><", " '  `  "},
		W:     7, H: 3,
	},
	{
		Right: []string{"   __  ", "><(oo)>", "  (__) "},
		Left:  []string{"  __   ", "<(oo)><", " (__)  "},
		W:     7, H: 3,
	},
	{
		Right: []string{"  .----.  _    ", ",_/      \\/(_) ", "'~uu----uu'    "},
		Left:  []string{"   _  .----.   ", "  (_\\/      \\_,", "    'uu----uu~'"},
		W:     15, H: 3,
	},
}

var fishByAgentType = map[string]int{
	"Explore":         FishSmall,
	"general-purpose": FishMedium,
	"Plan":            FishLarge,
	"code-reviewer":   FishLarge,
	"code-simplifier": FishLarge,
}

// FishIndexForAgentType maps an agent type name to a fish sprite. Prefixed
// composite types get the decorated fish; anything unrecognized swims as the
// medium default.
func FishIndexForAgentType(agentType string) int {
	if idx, ok := fishByAgentType[agentType]; ok {
		return idx
	}
	if strings.HasPrefix(agentType, "feature-dev:") || strings.HasPrefix(agentType, "superpowers:") {
		return FishDecorated
	}
	return FishMedium
}

var SailboatSprite = Sprite{
	Right: []string{
		"    ,~     ",
		"    |\\     ",
		"   /| \\    ",
		" _/__|__\\_ ",
		"  '======'  ",
	},
	Left: []string{
		"     ~,    ",
		"     /|    ",
		"    / |\\   ",
		" _/__|__\\_ ",
		"  '======'  ",
	},
	W: 11, H: 5,
}

var DolphinSprite = Sprite{
	Right: []string{
		"       ,   ",
		"     __/)  ",
		"\\_.-' a '-.",
		"/~~'``(/~^^'",
	},
	Left: []string{
		"   ,       ",
		"  (\\__     ",
		".-' a '-._/",
		"'^^~\\)``'~~\\",
	},
	W: 12, H: 4,
}

// Small critters spawned by ordinary tool calls: shrimp, minnow and a crab
// that keeps to the sea floor.
var ToolCreatureSprites = []Sprite{
	{Right: []string{"~}>"}, Left: []string{"<{~"}, W: 3, H: 1},
	{Right: []string{">°>"}, Left: []string{"<°<"}, W: 3, H: 1},
	{Right: []string{",V,"}, Left: []string{",V,"}, W: 3, H: 1},
}

// ToolCreatureCrab is the sprite index placed on the sea floor.
const ToolCreatureCrab = 2

var AmbientFishSprite = Sprite{Right: []string{"-><>"}, Left: []string{"<><-"}, W: 4, H: 1}

var JellyfishFrames = [][]string{
	{" .-. ", "(   )", " /|\\ "},
	{" .-. ", "(   )", " \\|/ "},
}

var BirdFrames = [][]string{
	{"/^v^\\"},
	{"-.v.-"},
}

var CloudSprites = [][]string{
	{" .-(  ).  ", "(  __  )  "},
	{" .--.  ", "(    ) "},
}

var (
	SunArt    = []string{" \\ | / ", "- O - ", " / | \\ "}
	MoonArt   = []string{" _  ", "( ) ", " ~  "}
	StarChars = []rune{'.', '*', '+'}
)

var WaveFrames = []string{
	"~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^",
	"^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~^~",
}

var BubbleChars = []rune{'o', 'O', '°', '.'}

// Seaweed columns animate between two frames, indexed bottom-up.
var SeaweedFrames = [][]rune{
	{'(', '|', '(', '|', '('},
	{')', '|', ')', '|', ')'},
}

// Wide seaweed variants; each frame is ordered bottom-to-top.
var WideSeaweedFrames = [][2][]string{
	{{")(", "|(", ")("}, {"(|", ")|", "(|"}},
	{{"/\\", "\\/", "/\\"}, {"\\/", "/\\", "\\/"}},
}

// FloorArt is a single-variant floor decoration with a color name resolved
// by the renderer's palette.
type FloorArt struct {
	Lines []string // bottom-to-top
	W, H  int
	Color string
}

var CoralArts = []FloorArt{
	{Lines: []string{" | ", "\\|/"}, W: 3, H: 2, Color: "red"},
	{Lines: []string{" )( ", "(())"}, W: 4, H: 2, Color: "magenta"},
	{Lines: []string{" | ", "\\|/", "\\|/"}, W: 3, H: 3, Color: "red"},
}

var RockArts = []FloorArt{
	{Lines: []string{"(__)"}, W: 4, H: 1, Color: "white"},
	{Lines: []string{"(__)", ".--."}, W: 4, H: 2, Color: "white"},
}

var (
	ShellArt    = FloorArt{Lines: []string{"\\_^_/"}, W: 5, H: 1, Color: "yellow"}
	StarfishArt = FloorArt{Lines: []string{"-*-"}, W: 3, H: 1, Color: "yellow"}
)

const FloorPattern = `,._.:'"._.,:'"._.,:'"._.,:'"._.,:'"._.,:'"._.,:'"._.,:'"._.,`
