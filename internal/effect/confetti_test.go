package effect

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func newTestConfetti(b Burst) *Confetti {
	return NewConfetti(b, rand.NewPCG(1, 2))
}

func TestFireLaunchesParticleCount(t *testing.T) {
	c := newTestConfetti(DefaultBurst())
	if c.Active() {
		t.Fatal("fresh confetti should be idle")
	}
	c.Fire()
	if got := c.Len(); got != 100 {
		t.Fatalf("Len()=%d, want 100", got)
	}
	c.Fire()
	if got := c.Len(); got != 200 {
		t.Fatalf("Len()=%d after second burst, want 200", got)
	}
	if c.Bursts() != 2 {
		t.Fatalf("Bursts()=%d, want 2", c.Bursts())
	}
}

func TestParticlesStartWithinSpread(t *testing.T) {
	c := newTestConfetti(Burst{ParticleCount: 500, Spread: 70, OriginY: 0.6})
	c.Fire()
	for i, p := range c.particles {
		if p.vy >= 0 {
			t.Fatalf("particle %d launched downward: vy=%f", i, p.vy)
		}
		// |vx| / |vy| <= tan(35deg) for a 70 degree cone around vertical.
		if ratio := -p.vx / p.vy; ratio > 0.7003 || ratio < -0.7003 {
			t.Fatalf("particle %d outside spread: ratio=%f", i, ratio)
		}
		if p.y != 0.6 || p.x != 0.5 {
			t.Fatalf("particle %d origin=(%f,%f)", i, p.x, p.y)
		}
	}
}

func TestStepExpiresEverything(t *testing.T) {
	c := newTestConfetti(DefaultBurst())
	c.Fire()
	steps := 0
	for c.Step() {
		steps++
		if steps > frames {
			t.Fatalf("particles still alive after %d frames", steps)
		}
	}
	if c.Active() {
		t.Fatal("confetti should be idle after all frames")
	}
}

func TestRender(t *testing.T) {
	c := newTestConfetti(DefaultBurst())
	if got := c.Render(20, 5); got != "" {
		t.Fatalf("idle render=%q, want empty", got)
	}
	c.Fire()
	out := c.Render(20, 5)
	if lines := strings.Split(out, "\n"); len(lines) != 5 {
		t.Fatalf("render lines=%d, want 5", len(lines))
	}
	if got := c.Render(0, 5); got != "" {
		t.Fatalf("zero width render=%q", got)
	}
}

func TestZeroCountFallsBackToDefault(t *testing.T) {
	c := newTestConfetti(Burst{Spread: 70, OriginY: 0.6})
	c.Fire()
	if c.Len() != DefaultBurst().ParticleCount {
		t.Fatalf("Len()=%d", c.Len())
	}
}
