package service

import (
	"math"

	"github.com/reeflab/reef/internal/domain/entity"
)

const (
	bubbleMaxAge       = 20
	bubbleRise         = 0.3
	toolBubbleMaxAge   = 30
	toolBubbleRise     = 0.25
	toolCreatureMaxAge = 40

	wakeMaxAge     = 20
	wakeSampleTick = 3

	jumpDurationTicks = 30
	jumpTriggerChance = 0.02
	jumpZone          = 4 // rows below OceanTop where a jump can start

	fishJitterChance    = 0.02
	dolphinJitterChance = 0.03
	bubbleEmitChance    = 0.06
)

// updateFish integrates one fish's position and advances its lifecycle.
func (s *Simulation) updateFish(f *entity.Fish, b Bounds) {
	w := s.world
	sprite := entity.FishSprites[f.SpriteIdx]
	f.X += f.Speed * float64(f.Direction)

	if f.Status == entity.StatusWorking {
		// Bounce off the horizontal bounds with occasional jitter.
		if f.X > float64(b.W-sprite.W-5) {
			f.Direction = -1
		} else if f.X < 5 {
			f.Direction = 1
		}
		if w.rng.Float64() < fishJitterChance {
			f.Direction = -f.Direction
		}
		if w.rng.Float64() < bubbleEmitChance {
			bx := f.X
			if f.Direction == 1 {
				bx += float64(sprite.W)
			}
			f.Bubbles = append(f.Bubbles, entity.Bubble{
				X:    bx + w.rng.Float64()*2 - 1,
				Y:    f.Y,
				Char: entity.BubbleChars[w.rng.Intn(len(entity.BubbleChars))],
			})
		}
	}

	live := f.Bubbles[:0]
	for i := range f.Bubbles {
		bub := f.Bubbles[i]
		bub.Y -= bubbleRise
		bub.Age++
		if bub.Age < bubbleMaxAge && bub.Y > SurfaceRow {
			live = append(live, bub)
		}
	}
	f.Bubbles = live

	// Finished fish swim out to the right and despawn off-screen.
	if f.Status.Terminal() {
		f.Direction = 1
		if f.X > float64(b.W+10) {
			f.Alive = false
		}
	}

	if f.Status == entity.StatusSpawning && f.X > 2 {
		s.status.Transition(f, entity.StatusWorking)
	}
}

// updateCreature advances an external-tool creature, including the sailboat
// wake and the dolphin jump sub-state.
func (s *Simulation) updateCreature(c *entity.Creature, b Bounds) {
	w := s.world
	c.X += c.Speed * float64(c.Direction)

	if c.Leaving {
		// Straight out, no bouncing.
		if c.X > float64(b.W+15) || c.X < -15 {
			c.Alive = false
		}
		return
	}

	if c.Kind == entity.CreatureSailboat {
		if c.X > float64(b.W-entity.SailboatSprite.W-3) {
			c.Direction = -1
		} else if c.X < 3 {
			c.Direction = 1
		}
		if w.Tick%wakeSampleTick == 0 {
			c.Wake = append(c.Wake, entity.WakePoint{X: c.X})
		}
		wake := c.Wake[:0]
		for _, wp := range c.Wake {
			wp.Age++
			if wp.Age < wakeMaxAge {
				wake = append(wake, wp)
			}
		}
		c.Wake = wake
		return
	}

	// Dolphin: bouncing swim plus the jump arc.
	if !c.Jumping {
		if c.X > float64(b.W-entity.DolphinSprite.W-3) {
			c.Direction = -1
		} else if c.X < 3 {
			c.Direction = 1
		}
		if w.rng.Float64() < dolphinJitterChance {
			c.Direction = -c.Direction
		}
		if c.Y < float64(OceanTop+jumpZone) && w.rng.Float64() < jumpTriggerChance {
			c.Jumping = true
			c.JumpTick = 0
			c.JumpDuration = jumpDurationTicks
			c.JumpBaseY = c.Y
			c.JumpApexY = float64(SurfaceRow - 3)
		}
		return
	}

	c.JumpTick++
	t := float64(c.JumpTick) / float64(c.JumpDuration)
	if t >= 1 {
		c.Jumping = false
		c.Y = c.JumpBaseY
		return
	}
	height := c.JumpBaseY - c.JumpApexY
	c.Y = c.JumpBaseY - height*4*t*(1-t)
}

func (s *Simulation) updateToolBubbles() {
	for _, tb := range s.world.ToolBubbles {
		tb.Y -= toolBubbleRise
		tb.Age++
	}
}

func (s *Simulation) updateToolCreatures() {
	for _, tc := range s.world.ToolCreatures {
		tc.X += tc.Speed * float64(tc.Direction)
		tc.Age++
	}
}

// updateAmbient drifts the decorative life; everything wraps at the edges.
func (s *Simulation) updateAmbient(b Bounds) {
	w := s.world
	for _, ac := range w.Ambient {
		ac.X += ac.Speed * float64(ac.Direction)
		switch ac.Kind {
		case entity.AmbientJellyfish:
			ac.Y += math.Sin(float64(w.Tick)*0.05+ac.X*0.1) * 0.05
			if ac.X > float64(b.W) {
				ac.X = -5
			} else if ac.X < -5 {
				ac.X = float64(b.W)
			}
		case entity.AmbientFish:
			if ac.Direction == 1 && ac.X > float64(b.W+4) {
				ac.X = -4
			} else if ac.Direction == -1 && ac.X < -4 {
				ac.X = float64(b.W + 4)
			}
		case entity.AmbientBird:
			if ac.Direction == 1 && ac.X > float64(b.W+3) {
				ac.X = -3
			} else if ac.Direction == -1 && ac.X < -3 {
				ac.X = float64(b.W + 3)
			}
		}
	}
}

func (s *Simulation) updateClouds(b Bounds) {
	for _, cl := range s.world.Clouds {
		cl.X += cl.Speed * float64(cl.Direction)
		artW := len(entity.CloudSprites[cl.SpriteIdx][0])
		if cl.X > float64(b.W) {
			cl.X = -float64(artW)
		} else if cl.X < -float64(artW) {
			cl.X = float64(b.W)
		}
	}
}
