package analyzer

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"deepsight/internal/config"
	"deepsight/internal/source"
)

func uniformBuffer(w, h int, r, g, b uint8) *source.PixelBuffer {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 255
	}
	return &source.PixelBuffer{Width: w, Height: h, Pix: pix}
}

func TestUniformGraySignals(t *testing.T) {
	a := New(config.DefaultTuning())
	buf := uniformBuffer(64, 64, 128, 128, 128)

	set := a.Analyze(context.Background(), buf)

	if set.Artifact != 0 {
		t.Errorf("Artifact: expected 0 for uniform buffer, got %f", set.Artifact)
	}
	if set.ColorConsistency != 100 {
		t.Errorf("ColorConsistency: expected 100 for uniform buffer, got %f", set.ColorConsistency)
	}
	if set.Quality > 1e-6 {
		t.Errorf("Quality: expected ~0 (zero variance), got %f", set.Quality)
	}
	if set.Blockiness != 0 {
		t.Errorf("Blockiness: expected 0 for uniform buffer, got %f", set.Blockiness)
	}
	// No gradients anywhere: the edge extractor must fall back to neutral.
	if set.EdgeConsistency != config.DefaultTuning().EdgeNeutral {
		t.Errorf("EdgeConsistency: expected neutral %f, got %f", config.DefaultTuning().EdgeNeutral, set.EdgeConsistency)
	}
	if set.FaceRatio != 0 {
		t.Errorf("FaceRatio: expected 0 for mid-gray, got %f", set.FaceRatio)
	}
}

func TestEdgeConsistencyDegenerateBuffer(t *testing.T) {
	a := New(config.DefaultTuning())
	buf := uniformBuffer(1, 1, 200, 200, 200)

	got := a.EdgeConsistency(buf)
	if got != config.DefaultTuning().EdgeNeutral {
		t.Errorf("Expected neutral fallback %f for 1x1 buffer, got %f", config.DefaultTuning().EdgeNeutral, got)
	}
}

func TestEdgeConsistencySharpBoundary(t *testing.T) {
	a := New(config.DefaultTuning())

	// Left half black, right half white: one clean vertical edge whose
	// gradient direction is identical along the whole boundary.
	buf := uniformBuffer(32, 32, 0, 0, 0)
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			i := (y*32 + x) * 4
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = 255, 255, 255
		}
	}

	got := a.EdgeConsistency(buf)
	if got < 90 {
		t.Errorf("Expected high consistency for a clean edge, got %f", got)
	}
}

func TestFaceRatio(t *testing.T) {
	a := New(config.DefaultTuning())

	tests := []struct {
		name    string
		r, g, b uint8
		want    float64
	}{
		{"skin tone", 200, 140, 110, 100}, // entire region skin -> capped
		{"mid gray", 128, 128, 128, 0},
		{"pure blue", 0, 0, 255, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := uniformBuffer(64, 64, tt.r, tt.g, tt.b)
			got := a.FaceRatio(buf)
			if got != tt.want {
				t.Errorf("FaceRatio(%d,%d,%d) = %f, want %f", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestBlockinessTiledBuffer(t *testing.T) {
	a := New(config.DefaultTuning())

	// Alternating 8x8 black/white tiles: every checked boundary jumps by 255.
	// Edge blocks have no outside neighbor, so 24 of the 32 counted
	// boundaries fire.
	buf := uniformBuffer(32, 32, 0, 0, 0)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if (x/8+y/8)%2 == 1 {
				i := (y*32 + x) * 4
				buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = 255, 255, 255
			}
		}
	}

	got := a.Blockiness(buf)
	if math.Abs(got-75) > 0.001 {
		t.Errorf("Blockiness = %f, want 75", got)
	}
}

func TestColorConsistencyQuadrantShift(t *testing.T) {
	a := New(config.DefaultTuning())

	// Top-left quadrant white, rest black.
	buf := uniformBuffer(64, 64, 0, 0, 0)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			i := (y*64 + x) * 4
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = 255, 255, 255
		}
	}

	got := a.ColorConsistency(buf)
	if got >= 100 || got <= 0 {
		t.Errorf("Expected a reduced score for shifted quadrants, got %f", got)
	}
}

func TestFrequencyAnomaly(t *testing.T) {
	a := New(config.DefaultTuning())

	// A single gray level concentrates the whole histogram into one bin.
	uniform := a.FrequencyAnomaly(uniformBuffer(64, 64, 128, 128, 128))
	if uniform != 100 {
		t.Errorf("Expected capped anomaly for single-bin histogram, got %f", uniform)
	}

	// Sensor-like noise spreads the histogram out.
	r := rand.New(rand.NewSource(1))
	noise := uniformBuffer(64, 64, 0, 0, 0)
	for i := 0; i < len(noise.Pix); i += 4 {
		noise.Pix[i] = uint8(r.Intn(256))
		noise.Pix[i+1] = uint8(r.Intn(256))
		noise.Pix[i+2] = uint8(r.Intn(256))
	}

	got := a.FrequencyAnomaly(noise)
	if got >= uniform || got > 50 {
		t.Errorf("Expected low anomaly for noise, got %f", got)
	}
}

func TestFrequencyAnomalyDownscalesLargeBuffers(t *testing.T) {
	a := New(config.DefaultTuning())

	// Must not blow up or change verdict class on large inputs.
	got := a.FrequencyAnomaly(uniformBuffer(512, 300, 128, 128, 128))
	if got != 100 {
		t.Errorf("Expected capped anomaly after downscale, got %f", got)
	}
}

func TestTemporalConsistency(t *testing.T) {
	a := New(config.DefaultTuning())

	tests := []struct {
		name string
		sets []SignalSet
		want float64
	}{
		{"single frame is neutral", []SignalSet{{FaceRatio: 40}}, 100},
		{"no frames is neutral", nil, 100},
		{
			"identical frames",
			[]SignalSet{{FaceRatio: 40, Artifact: 20, Quality: 60}, {FaceRatio: 40, Artifact: 20, Quality: 60}},
			100,
		},
		{
			"diverging faces",
			[]SignalSet{{FaceRatio: 0}, {FaceRatio: 100}},
			60, // 100 - 0.4*100
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.TemporalConsistency(tt.sets)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("TemporalConsistency = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAnalyzeFramesKeepsOrder(t *testing.T) {
	a := New(config.DefaultTuning())

	frames := []*source.PixelBuffer{
		uniformBuffer(32, 32, 128, 128, 128), // zero quality
		uniformBuffer(32, 32, 200, 140, 110), // skin, zero quality
	}

	sets := a.AnalyzeFrames(context.Background(), frames, 2)
	if len(sets) != 2 {
		t.Fatalf("Expected 2 signal sets, got %d", len(sets))
	}
	if sets[0].FaceRatio != 0 || sets[1].FaceRatio != 100 {
		t.Errorf("Frame order lost: face ratios %f, %f", sets[0].FaceRatio, sets[1].FaceRatio)
	}
}
