package world

import "github.com/vovakirdan/tui-platformer/internal/core"

// Outcome is the observable result of a player update.
type Outcome int

const (
	Alive  Outcome = iota // Keep playing
	Dead                  // Touched a hazard or ran out of time
	Exited                // Reached the exit
)

func (o Outcome) String() string {
	switch o {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// Cause names what killed the player.
type Cause int

const (
	CauseNone Cause = iota
	CauseEnemy
	CauseLava
	CauseTimeout
)

// Controls is the held state of the movement keys for one frame.
type Controls struct {
	Left, Right, Jump bool
}

// Report describes what happened during one player update.
type Report struct {
	Outcome Outcome
	Cause   Cause
	Jumped  bool // A jump started this frame
	Moved   bool // The player acted (walked or jumped)
}

// Player is the controllable character.
type Player struct {
	Rect      core.Rect
	VelY      int
	Jumped    bool // Jump key still held since the last jump
	InAir     bool
	Frame     int // Walk animation frame
	Counter   int // Frames since the last animation step
	Direction int // -1 left, 1 right, 0 not moved yet
	Dead      bool
}

// NewPlayer creates a player at the spawn point of rules.
func NewPlayer(rules Rules) *Player {
	p := &Player{}
	p.Reset(rules)
	return p
}

// Reset puts the player back at the spawn point with no velocity.
func (p *Player) Reset(rules Rules) {
	*p = Player{
		Rect:  core.NewRect(rules.SpawnX, rules.SpawnY, rules.PlayerW, rules.PlayerH),
		InAir: true,
	}
}

// Update applies one frame of input, gravity and collision against w.
// Hazards are checked before the exit, so touching both in the same frame is
// a death.
func (p *Player) Update(w *World, in Controls, level int, rules Rules) Report {
	var rep Report
	dx, dy := 0, 0

	if in.Jump && !p.Jumped && !p.InAir {
		p.VelY = rules.JumpPowerFor(level)
		p.Jumped = true
		rep.Jumped = true
		rep.Moved = true
	}
	if !in.Jump {
		p.Jumped = false
	}
	if in.Left {
		dx -= rules.MoveSpeed
		p.Counter++
		p.Direction = -1
		rep.Moved = true
	}
	if in.Right {
		dx += rules.MoveSpeed
		p.Counter++
		p.Direction = 1
		rep.Moved = true
	}
	if !in.Left && !in.Right {
		p.Counter = 0
		p.Frame = 0
	}

	if p.Counter > rules.WalkCooldown {
		p.Counter = 0
		p.Frame = (p.Frame + 1) % max(rules.WalkFrames, 1)
	}

	p.VelY += rules.Gravity
	if p.VelY > rules.MaxFallSpeed {
		p.VelY = rules.MaxFallSpeed
	}
	dy += p.VelY

	// Static tiles, one axis at a time.
	p.InAir = true
	for _, b := range w.Blocks {
		if b.Rect.Intersects(p.Rect.Offset(dx, 0)) {
			dx = 0
		}
		if b.Rect.Intersects(p.Rect.Offset(0, dy)) {
			if p.VelY < 0 {
				dy = b.Rect.Bottom() - p.Rect.Y
			} else {
				dy = b.Rect.Y - p.Rect.Bottom()
				p.InAir = false
			}
			p.VelY = 0
		}
	}

	switch {
	case w.hitsEnemy(p.Rect):
		rep.Outcome, rep.Cause = Dead, CauseEnemy
	case w.hitsLava(p.Rect):
		rep.Outcome, rep.Cause = Dead, CauseLava
	case w.hitsExit(p.Rect):
		rep.Outcome = Exited
	}

	thresh := rules.PlatformThreshold
	for _, plat := range w.Platforms {
		if plat.Rect.Intersects(p.Rect.Offset(dx, 0)) {
			dx = 0
		}
		if plat.Rect.Intersects(p.Rect.Offset(0, dy)) {
			if core.Abs(p.Rect.Y+dy-plat.Rect.Bottom()) < thresh {
				p.VelY = 0
				dy = plat.Rect.Bottom() - p.Rect.Y
			} else if core.Abs(p.Rect.Bottom()+dy-plat.Rect.Y) < thresh {
				p.Rect.Y = plat.Rect.Y - 1 - p.Rect.H
				p.InAir = false
				dy = 0
			}
			if plat.MoveX != 0 {
				p.Rect.X += plat.Direction
			}
		}
	}

	p.Rect.X += dx
	p.Rect.Y += dy

	if rep.Outcome == Dead {
		p.Dead = true
	}
	return rep
}

// Float raises the ghost of a dead player one frame.
func (p *Player) Float(rules Rules) {
	if p.Rect.Y > rules.GhostCeiling {
		p.Rect.Y -= rules.GhostRise
	}
}

// Kill marks the player dead without a collision, e.g. on timeout.
func (p *Player) Kill() {
	p.Dead = true
}
