package core

import (
	"math"
	"testing"
)

func TestMetrics(t *testing.T) {
	if err := MetricsInitialize(); err != nil {
		t.Fatal(err)
	}

	// The rolling average is published every AVG_COUNT frames.
	for i := uint8(0); i < AVG_COUNT-1; i++ {
		MetricsUpdate(0.016)
	}
	if got := MetricsFrameTime(); got != 0 {
		t.Fatalf("frame time published before the window filled: %f", got)
	}
	MetricsUpdate(0.016)
	if got := MetricsFrameTime(); math.Abs(got-16.0) > 1e-6 {
		t.Errorf("frame time = %f ms, want 16", got)
	}

	// FPS publishes once a full second has accumulated: 30 frames so far,
	// plus one long frame pushing the accumulator past 1000 ms.
	MetricsUpdate(0.6)
	if got := MetricsFPS(); got != 30 {
		t.Errorf("FPS = %f, want 30", got)
	}

	fps, frameTime := MetricsFrame()
	if fps != MetricsFPS() || frameTime != MetricsFrameTime() {
		t.Error("MetricsFrame disagrees with individual accessors")
	}
}

func TestMetricsRollingWindowResets(t *testing.T) {
	if err := MetricsInitialize(); err != nil {
		t.Fatal(err)
	}

	// Fill one window with slow frames, then flood with fast frames. The
	// published average must not carry the slow window's sum.
	for i := uint8(0); i < AVG_COUNT; i++ {
		MetricsUpdate(0.100)
	}
	for i := 0; i < int(AVG_COUNT)*2; i++ {
		MetricsUpdate(0.010)
	}
	if got := MetricsFrameTime(); math.Abs(got-10.0) > 1e-6 {
		t.Errorf("frame time after fast window = %f ms, want 10", got)
	}
}
