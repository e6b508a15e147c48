package renderer

import (
	"math"
	"math/rand"
	"testing"
)

func TestSeedLights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lights := make([]PointLight, 64)
	seedLights(lights, rng)

	for i, l := range lights {
		for axis := 0; axis < 3; axis++ {
			p := l.Position[axis]
			if p < LightMinBounds[axis] || p > LightMaxBounds[axis] {
				t.Errorf("light %d axis %d: position %f outside [%f, %f]",
					i, axis, p, LightMinBounds[axis], LightMaxBounds[axis])
			}
		}
		if l.Position[3] != 1.0 {
			t.Errorf("light %d: position w = %f, want 1", i, l.Position[3])
		}
		for ch := 0; ch < 3; ch++ {
			c := l.Color[ch]
			if c < 1.0 || c >= 2.0 {
				t.Errorf("light %d channel %d: color %f outside [1, 2)", i, ch, c)
			}
		}
		if l.Radius() != 30.0 {
			t.Errorf("light %d: radius = %f, want 30", i, l.Radius())
		}
	}
}

func TestSeedLightsDeterministic(t *testing.T) {
	a := make([]PointLight, 16)
	b := make([]PointLight, 16)
	seedLights(a, rand.New(rand.NewSource(42)))
	seedLights(b, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("light %d differs between identically seeded streams: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAnimateLightsFall(t *testing.T) {
	tests := []struct {
		name  string
		y     float32
		dt    float64
		wantY float32
	}{
		// Plain fall: fmod(y - 4.5*dt - min + max, max) + min with
		// min = -20, max = 170.
		{name: "mid fall one second", y: 0, dt: 1, wantY: -4.5},
		{name: "small step", y: 100, dt: 0.1, wantY: 99.55},
		{name: "wrap below floor", y: -19, dt: 1, wantY: 146.5},
		{name: "exactly at floor", y: -20, dt: 1, wantY: 145.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lights := []PointLight{{Position: [4]float32{5, tt.y, -3, 1}}}
			animateLights(lights, tt.dt)
			got := lights[0].Position[1]
			if math.Abs(float64(got-tt.wantY)) > 1e-4 {
				t.Errorf("y = %f, want %f", got, tt.wantY)
			}
			// Only the vertical axis moves.
			if lights[0].Position[0] != 5 || lights[0].Position[2] != -3 {
				t.Errorf("x/z drifted: %+v", lights[0].Position)
			}
		})
	}
}

func TestAnimateLightsStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lights := make([]PointLight, 128)
	seedLights(lights, rng)

	min := LightMinBounds[1]
	max := LightMaxBounds[1]
	for step := 0; step < 1000; step++ {
		animateLights(lights, 1.0/60.0)
	}
	for i, l := range lights {
		y := l.Position[1]
		if y < min || y > max {
			t.Errorf("light %d: y = %f escaped [%f, %f]", i, y, min, max)
		}
	}
}
