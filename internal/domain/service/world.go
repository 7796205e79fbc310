package service

import (
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/reeflab/reef/internal/domain/entity"
)

const (
	// SurfaceRow is the first of the two wave rows; everything above is sky.
	SurfaceRow = 4
	// OceanTop is the first fully underwater row.
	OceanTop = SurfaceRow + 2
	// PanelHeight is the bottom panel (separator + tab bar + content rows).
	PanelHeight = 6

	// MainAgentID is the synthetic id of the always-present session turtle.
	MainAgentID = "__main__"

	// logCap bounds the on-screen event log; oldest entries drop first.
	logCap = 200
)

// Bounds is the drawable cell area for one tick.
type Bounds struct {
	W, H int
}

// OceanBottom is the last swimmable row, just above the sandy floor line.
func (b Bounds) OceanBottom() int { return b.H - 3 - PanelHeight }

// PanelTop is the first row of the bottom panel.
func (b Bounds) PanelTop() int { return b.H - PanelHeight }

// World owns every live visual entity and the derived log/stat aggregates.
// It is mutated only by the simulation tick on the render goroutine; the
// ingestion side never touches it.
type World struct {
	Tick int

	MainFish      *entity.Fish
	Fishes        []*entity.Fish
	Creatures     []*entity.Creature
	ToolBubbles   []*entity.ToolBubble
	ToolCreatures []*entity.ToolCreature
	Ambient       []*entity.AmbientCreature
	Clouds        []*entity.Cloud
	FloorDecor    []*entity.FloorDecor
	Tasks         []*entity.TaskMarker

	SeaweedXs      []int
	SeaweedHeights []int

	Log   []entity.LogEntry
	Stats entity.SessionStats

	TotalAgents int
	TotalTools  int

	firedMilestones map[string]bool

	rng    *rand.Rand
	logger *zap.Logger
}

// NewWorld builds a populated world for the given bounds. The RNG is
// injected so tests can fix the seed.
func NewWorld(b Bounds, rng *rand.Rand, logger *zap.Logger) *World {
	w := &World{
		Stats:           entity.NewSessionStats(time.Now()),
		firedMilestones: make(map[string]bool),
		rng:             rng,
		logger:          logger.With(zap.String("component", "world")),
	}
	w.setupSeaweed(b)
	w.setupFloorDecor(b)
	w.setupSky(b)
	w.setupAmbient(b)
	w.setupMainFish(b)
	return w
}

func (w *World) setupSeaweed(b Bounds) {
	count := min(12, max(1, b.W/8))
	lo, hi := 2, max(3, b.W-2)
	xs := rand.New(rand.NewSource(w.rng.Int63())).Perm(hi - lo)
	if count > len(xs) {
		count = len(xs)
	}
	for _, off := range xs[:count] {
		w.SeaweedXs = append(w.SeaweedXs, lo+off)
		w.SeaweedHeights = append(w.SeaweedHeights, 3+w.rng.Intn(5))
	}
	sort.Ints(w.SeaweedXs)
}

func (w *World) setupFloorDecor(b Bounds) {
	occupied := make(map[int]bool, len(w.SeaweedXs))
	for _, x := range w.SeaweedXs {
		occupied[x] = true
	}
	var candidates []int
	for x := 3; x < max(4, b.W-6); x++ {
		if !occupied[x] {
			candidates = append(candidates, x)
		}
	}
	w.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	target := min(len(candidates)/3, max(4, b.W/10))
	placed := 0
	for _, x := range candidates {
		if placed >= target {
			break
		}
		tooClose := false
		for _, d := range w.FloorDecor {
			if abs(x-d.X) < 4 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		kind := pickDecorKind(w.rng)
		artIdx, height := 0, 1
		switch kind {
		case entity.DecorCoral:
			artIdx = w.rng.Intn(len(entity.CoralArts))
			height = entity.CoralArts[artIdx].H
		case entity.DecorRock:
			artIdx = w.rng.Intn(len(entity.RockArts))
			height = entity.RockArts[artIdx].H
		case entity.DecorWideSeaweed:
			artIdx = w.rng.Intn(len(entity.WideSeaweedFrames))
			height = len(entity.WideSeaweedFrames[artIdx][0])
		}
		w.FloorDecor = append(w.FloorDecor, &entity.FloorDecor{
			Kind: kind, X: x, ArtIdx: artIdx, Height: height,
		})
		placed++
	}
}

// pickDecorKind draws a weighted decoration kind (coral slightly favored).
func pickDecorKind(rng *rand.Rand) entity.FloorDecorKind {
	switch n := rng.Intn(11); {
	case n < 3:
		return entity.DecorCoral
	case n < 5:
		return entity.DecorRock
	case n < 7:
		return entity.DecorShell
	case n < 9:
		return entity.DecorStarfish
	default:
		return entity.DecorWideSeaweed
	}
}

func (w *World) setupSky(b Bounds) {
	count := 2 + w.rng.Intn(3)
	for i := 0; i < count; i++ {
		w.Clouds = append(w.Clouds, &entity.Cloud{
			X:         w.rng.Float64() * float64(max(1, b.W-12)),
			Y:         w.rng.Intn(2),
			SpriteIdx: w.rng.Intn(2),
			Speed:     0.03 + w.rng.Float64()*0.05,
			Direction: randDirection(w.rng),
		})
	}
}

func (w *World) setupAmbient(b Bounds) {
	bottom := b.OceanBottom()
	for i := 0; i < 2+w.rng.Intn(2); i++ {
		w.Ambient = append(w.Ambient, &entity.AmbientCreature{
			Kind:      entity.AmbientJellyfish,
			X:         3 + w.rng.Float64()*float64(max(1, b.W-11)),
			Y:         float64(OceanTop+1) + w.rng.Float64()*float64(max(1, (bottom-OceanTop)/2)),
			Speed:     0.01 + w.rng.Float64()*0.02,
			Direction: randDirection(w.rng),
		})
	}
	for i := 0; i < 2+w.rng.Intn(2); i++ {
		w.Ambient = append(w.Ambient, &entity.AmbientCreature{
			Kind:      entity.AmbientFish,
			X:         w.rng.Float64() * float64(max(1, b.W-5)),
			Y:         float64(OceanTop+1) + w.rng.Float64()*float64(max(1, bottom-OceanTop-3)),
			Speed:     0.1 + w.rng.Float64()*0.1,
			Direction: randDirection(w.rng),
		})
	}
	for i := 0; i < 1+w.rng.Intn(2); i++ {
		w.Ambient = append(w.Ambient, &entity.AmbientCreature{
			Kind:      entity.AmbientBird,
			X:         w.rng.Float64() * float64(max(1, b.W-5)),
			Y:         float64(w.rng.Intn(3)),
			Speed:     0.08 + w.rng.Float64()*0.07,
			Direction: randDirection(w.rng),
		})
	}
}

func (w *World) setupMainFish(b Bounds) {
	midY := float64(OceanTop+b.OceanBottom()) / 2
	w.MainFish = &entity.Fish{
		AgentID:   MainAgentID,
		Label:     "session",
		Status:    entity.StatusWorking,
		X:         float64(b.W) / 2,
		Y:         midY,
		Speed:     0.3 + w.rng.Float64()*0.2,
		SpriteIdx: entity.FishTurtle,
		Direction: 1,
		Alive:     true,
		StartedAt: time.Now(),
	}
}

// FindFish returns the first live fish with the given agent id, or nil.
// Duplicate ids should not occur; first match in iteration order wins.
func (w *World) FindFish(agentID string) *entity.Fish {
	for _, f := range w.Fishes {
		if f.AgentID == agentID {
			return f
		}
	}
	return nil
}

// FindTask returns the marker for a subject, or nil.
func (w *World) FindTask(subject string) *entity.TaskMarker {
	for _, t := range w.Tasks {
		if t.Subject == subject {
			return t
		}
	}
	return nil
}

// ActiveAgents counts sub-agent fish still spawning or working.
func (w *World) ActiveAgents() int {
	n := 0
	for _, f := range w.Fishes {
		if f.Alive && !f.Status.Terminal() {
			n++
		}
	}
	return n
}

// Selectable returns the fish the detail panel can cycle through: live
// non-terminal sub-agents plus the main turtle, in stable order.
func (w *World) Selectable() []*entity.Fish {
	var out []*entity.Fish
	for _, f := range w.Fishes {
		if f.Alive && !f.Status.Terminal() {
			out = append(out, f)
		}
	}
	if w.MainFish != nil {
		out = append(out, w.MainFish)
	}
	return out
}

// AppendLog adds a log entry, dropping the oldest beyond the cap.
func (w *World) AppendLog(e entity.LogEntry) {
	w.Log = append(w.Log, e)
	if len(w.Log) > logCap {
		w.Log = w.Log[len(w.Log)-logCap:]
	}
}

// MilestoneFired marks a milestone id, returning false if it already fired.
func (w *World) MilestoneFired(id string) bool {
	if w.firedMilestones[id] {
		return false
	}
	w.firedMilestones[id] = true
	return true
}

func randDirection(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
