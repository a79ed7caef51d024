package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"deepsight/internal/config"
	"deepsight/internal/source"
)

// Analyzer runs the signal extractors over pixel buffers. Extractors are
// independent pure scans of the same read-only buffer, so they fork-join.
type Analyzer struct {
	cfg config.Tuning
}

func New(tuning config.Tuning) *Analyzer {
	return &Analyzer{cfg: tuning}
}

// Analyze produces the full signal set for one frame. Each extractor writes
// a distinct field, so the goroutines share no mutable state.
func (a *Analyzer) Analyze(ctx context.Context, buf *source.PixelBuffer) SignalSet {
	var set SignalSet

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { set.FaceRatio = a.FaceRatio(buf); return nil })
	g.Go(func() error { set.Artifact = a.ArtifactScore(buf); return nil })
	g.Go(func() error { set.EdgeConsistency = a.EdgeConsistency(buf); return nil })
	g.Go(func() error { set.Blockiness = a.Blockiness(buf); return nil })
	g.Go(func() error { set.ColorConsistency = a.ColorConsistency(buf); return nil })
	g.Go(func() error { set.Frequency = a.FrequencyAnomaly(buf); return nil })
	g.Go(func() error { set.Quality = a.Quality(buf); return nil })
	g.Wait()

	return set
}

// AnalyzeFrames runs Analyze over already-captured frames, up to `workers`
// at a time, preserving frame order in the result.
func (a *Analyzer) AnalyzeFrames(ctx context.Context, frames []*source.PixelBuffer, workers int) []SignalSet {
	sets := make([]SignalSet, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, frame := range frames {
		i, frame := i, frame
		g.Go(func() error {
			sets[i] = a.Analyze(gctx, frame)
			return nil
		})
	}
	g.Wait()

	return sets
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
