// Package effect renders the confetti burst shown when a task is completed.
package effect

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Burst holds the fixed launch parameters of one confetti shot. Spread is
// in degrees; OriginY is a fraction of the canvas height measured from the
// top.
type Burst struct {
	ParticleCount int     `toml:"particle_count"`
	Spread        float64 `toml:"spread"`
	OriginY       float64 `toml:"origin_y"`
}

func DefaultBurst() Burst {
	return Burst{ParticleCount: 100, Spread: 70, OriginY: 0.6}
}

const (
	originX       = 0.5
	startVelocity = 0.045
	gravity       = 0.0025
	drag          = 0.94
	frames        = 45
)

var (
	glyphs  = []rune{'*', '+', '•', '◆', '▪', '~'}
	palette = []lipgloss.Color{"205", "214", "42", "63", "220", "196", "51"}
)

type particle struct {
	x, y   float64
	vx, vy float64
	ttl    int
	glyph  rune
	colour int
}

// Confetti is a small particle system. It is driven by the caller: Fire
// launches a burst and Step advances one animation frame.
type Confetti struct {
	burst     Burst
	rng       *rand.Rand
	particles []particle
	bursts    int
}

func NewConfetti(b Burst, src rand.Source) *Confetti {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	if b.ParticleCount <= 0 {
		b.ParticleCount = DefaultBurst().ParticleCount
	}
	return &Confetti{burst: b, rng: rand.New(src)}
}

// Fire launches one burst on top of whatever is still in the air.
func (c *Confetti) Fire() {
	half := c.burst.Spread / 2
	for i := 0; i < c.burst.ParticleCount; i++ {
		angle := (90 + (c.rng.Float64()*2-1)*half) * math.Pi / 180
		speed := startVelocity * (0.5 + c.rng.Float64()/2)
		c.particles = append(c.particles, particle{
			x:      originX,
			y:      c.burst.OriginY,
			vx:     math.Cos(angle) * speed,
			vy:     -math.Sin(angle) * speed,
			ttl:    frames/2 + c.rng.IntN(frames/2+1),
			glyph:  glyphs[c.rng.IntN(len(glyphs))],
			colour: c.rng.IntN(len(palette)),
		})
	}
	c.bursts++
}

// Step advances every particle one frame and drops the expired ones. It
// reports whether any particle is still alive.
func (c *Confetti) Step() bool {
	alive := c.particles[:0]
	for _, p := range c.particles {
		p.ttl--
		if p.ttl <= 0 {
			continue
		}
		p.vx *= drag
		p.vy = p.vy*drag + gravity
		p.x += p.vx
		p.y += p.vy
		alive = append(alive, p)
	}
	c.particles = alive
	return len(c.particles) > 0
}

func (c *Confetti) Active() bool {
	return len(c.particles) > 0
}

// Bursts returns how many times Fire has been called.
func (c *Confetti) Bursts() int {
	return c.bursts
}

func (c *Confetti) Len() int {
	return len(c.particles)
}

// Render paints the live particles onto a width x height canvas. Particles
// outside the canvas are skipped.
func (c *Confetti) Render(width, height int) string {
	if width <= 0 || height <= 0 || !c.Active() {
		return ""
	}
	type cell struct {
		glyph  rune
		colour int
	}
	grid := make([][]*cell, height)
	for i := range grid {
		grid[i] = make([]*cell, width)
	}
	for _, p := range c.particles {
		col := int(p.x * float64(width))
		row := int(p.y * float64(height))
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		grid[row][col] = &cell{glyph: p.glyph, colour: p.colour}
	}

	var b strings.Builder
	for r, line := range grid {
		for _, cl := range line {
			if cl == nil {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(palette[cl.colour]).Render(string(cl.glyph)))
		}
		if r < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Nop ignores every Fire call.
type Nop struct{}

func (Nop) Fire() {}
