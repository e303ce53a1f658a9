package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// grounded returns a player standing on the floor of a built-in level.
func grounded(t *testing.T, w *World, rules Rules) *Player {
	t.Helper()
	p := NewPlayer(rules)
	p.Update(w, Controls{}, 1, rules)
	require.Equal(t, 680, p.Rect.Y, "spawn should snap onto the floor")
	require.False(t, p.InAir)
	return p
}

func TestPlayerSpawnSnapsToFloor(t *testing.T) {
	rules := DefaultRules()
	w := New(levels.Builtin(1))
	p := NewPlayer(rules)

	assert.Equal(t, core.NewRect(100, 726, 40, 80), p.Rect)
	rep := p.Update(w, Controls{}, 1, rules)

	assert.Equal(t, Alive, rep.Outcome)
	assert.Equal(t, 680, p.Rect.Y)
	assert.Equal(t, 0, p.VelY)
	assert.False(t, p.InAir)
	assert.False(t, rep.Moved)
}

func TestPlayerFallSpeedIsCapped(t *testing.T) {
	rules := DefaultRules()
	w := Empty()
	p := NewPlayer(rules)

	for i := range 200 {
		p.Update(w, Controls{}, 1, rules)
		require.LessOrEqual(t, p.VelY, 10, "frame %d", i)
	}
	assert.Equal(t, 10, p.VelY)
}

func TestPlayerWalkStopsAtWall(t *testing.T) {
	rules := DefaultRules()
	w := New(levels.Builtin(1))
	p := grounded(t, w, rules)

	for range 30 {
		p.Update(w, Controls{Left: true}, 1, rules)
	}
	assert.Equal(t, 40, p.Rect.X)
	assert.Equal(t, -1, p.Direction)
	assert.Equal(t, 680, p.Rect.Y)
}

func TestPlayerWalkAnimation(t *testing.T) {
	rules := DefaultRules()
	w := New(levels.Builtin(1))
	p := grounded(t, w, rules)

	for range 6 {
		p.Update(w, Controls{Right: true}, 1, rules)
	}
	assert.Equal(t, 1, p.Frame)
	assert.Equal(t, 0, p.Counter)
	assert.Equal(t, 130, p.Rect.X)

	p.Update(w, Controls{}, 1, rules)
	assert.Equal(t, 0, p.Frame, "standing still resets the animation")
}

func TestPlayerJumpArc(t *testing.T) {
	rules := DefaultRules()
	w := New(levels.Builtin(1))
	p := grounded(t, w, rules)

	rep := p.Update(w, Controls{Jump: true}, 1, rules)
	require.True(t, rep.Jumped)
	assert.True(t, rep.Moved)
	assert.Equal(t, -14, p.VelY)
	assert.Equal(t, 666, p.Rect.Y)

	apex := p.Rect.Y
	for range 60 {
		rep = p.Update(w, Controls{Jump: true}, 1, rules)
		assert.False(t, rep.Jumped, "holding jump must not jump again")
		apex = min(apex, p.Rect.Y)
	}
	assert.Equal(t, 575, apex)
	assert.Equal(t, 680, p.Rect.Y)
	assert.False(t, p.InAir)

	// Releasing and pressing again allows another jump.
	p.Update(w, Controls{}, 1, rules)
	rep = p.Update(w, Controls{Jump: true}, 1, rules)
	assert.True(t, rep.Jumped)
}

func TestPlayerHardLevelsJumpLower(t *testing.T) {
	rules := DefaultRules()
	w := New(levels.Builtin(5))
	p := grounded(t, w, rules)

	p.Update(w, Controls{Jump: true}, 5, rules)
	assert.Equal(t, -13, p.VelY)
	assert.Equal(t, -14, rules.JumpPowerFor(5))
	assert.Equal(t, -15, rules.JumpPowerFor(4))
}

func TestPlayerCannotJumpInAir(t *testing.T) {
	rules := DefaultRules()
	p := NewPlayer(rules)
	rep := p.Update(Empty(), Controls{Jump: true}, 1, rules)
	assert.False(t, rep.Jumped)
	assert.Equal(t, 1, p.VelY)
}

func TestPlayerHeadBump(t *testing.T) {
	rules := DefaultRules()
	w := &World{Blocks: []Block{{Rect: core.NewRect(100, 560, 40, 40), Kind: levels.TileDirt}}}
	p := NewPlayer(rules)
	p.Rect = core.NewRect(100, 605, 40, 80)
	p.VelY = -12

	p.Update(w, Controls{}, 1, rules)
	assert.Equal(t, 600, p.Rect.Y, "snapped under the block")
	assert.Equal(t, 0, p.VelY)
	assert.True(t, p.InAir)
}

func TestPlayerHazards(t *testing.T) {
	rules := DefaultRules()
	body := core.NewRect(300, 300, 40, 80)
	exit := &Exit{Rect: core.NewRect(300, 320, ExitW, ExitH)}
	enemy := NewEnemy(310, 340)
	lava := Lava{Rect: core.NewRect(300, 360, LavaW, LavaH)}

	tests := []struct {
		name    string
		world   *World
		outcome Outcome
		cause   Cause
	}{
		{"exit only", &World{Exits: []*Exit{exit}}, Exited, CauseNone},
		{"enemy", &World{Enemies: []*Enemy{enemy}}, Dead, CauseEnemy},
		{"lava", &World{Lava: []Lava{lava}}, Dead, CauseLava},
		{"enemy beats exit", &World{Enemies: []*Enemy{enemy}, Exits: []*Exit{exit}}, Dead, CauseEnemy},
		{"lava beats exit", &World{Lava: []Lava{lava}, Exits: []*Exit{exit}}, Dead, CauseLava},
		{"enemy before lava", &World{Enemies: []*Enemy{enemy}, Lava: []Lava{lava}}, Dead, CauseEnemy},
		{"nothing", Empty(), Alive, CauseNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer(rules)
			p.Rect = body
			rep := p.Update(tc.world, Controls{}, 1, rules)
			assert.Equal(t, tc.outcome, rep.Outcome)
			assert.Equal(t, tc.cause, rep.Cause)
			assert.Equal(t, tc.outcome == Dead, p.Dead)
		})
	}
}

func TestPlayerRidesHorizontalPlatform(t *testing.T) {
	rules := DefaultRules()
	plat := NewPlatform(200, 600, 1, 0)
	w := &World{Platforms: []*Platform{plat}}
	p := NewPlayer(rules)
	p.Rect = core.NewRect(200, 520, 40, 80)
	p.VelY = 0

	p.Update(w, Controls{}, 1, rules)

	assert.Equal(t, 519, p.Rect.Y, "placed one pixel above the platform")
	assert.Equal(t, 201, p.Rect.X, "carried along by the platform")
	assert.False(t, p.InAir)
}

func TestPlayerBumpsPlatformFromBelow(t *testing.T) {
	rules := DefaultRules()
	plat := NewPlatform(200, 400, 0, 1)
	w := &World{Platforms: []*Platform{plat}}
	p := NewPlayer(rules)
	p.Rect = core.NewRect(200, 425, 40, 80)
	p.VelY = -10

	p.Update(w, Controls{}, 1, rules)

	assert.Equal(t, 420, p.Rect.Y)
	assert.Equal(t, 0, p.VelY)
	assert.Equal(t, 200, p.Rect.X, "vertical platforms do not carry sideways")
}

func TestGhostFloatsUpToCeiling(t *testing.T) {
	rules := DefaultRules()
	p := NewPlayer(rules)
	p.Rect.Y = 212
	p.Kill()

	for range 10 {
		p.Float(rules)
	}
	assert.True(t, p.Dead)
	assert.Equal(t, 197, p.Rect.Y)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "exited", Exited.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
