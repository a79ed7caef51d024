package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"deepsight/internal/analyzer"
	"deepsight/internal/config"
	"deepsight/internal/scorer"
	"deepsight/internal/source"
	"deepsight/internal/system"
)

// ErrModelsNotReady marks a call made before Warmup completed. The caller
// should retry after readiness.
var ErrModelsNotReady = errors.New("engine invoked before warmup")

// Engine is the per-asset detection pipeline: MIME gate, decode/sample,
// per-frame signal extraction, temporal aggregation, scoring. One Engine
// serves many assets; each asset's buffers belong to its own pipeline run.
type Engine struct {
	cfg      *config.Config
	policy   config.Policy
	analyzer *analyzer.Analyzer
	scorer   *scorer.Scorer

	mu    sync.RWMutex
	ready bool
}

func New(cfg *config.Config, policy config.Policy) *Engine {
	var rng *rand.Rand
	if !cfg.Deterministic {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	return &Engine{
		cfg:      cfg,
		policy:   policy,
		analyzer: analyzer.New(policy.Tuning),
		scorer:   scorer.New(policy, rng),
	}
}

// Warmup validates the configuration and marks the engine ready. Readiness
// is explicit state: Process fails with ErrModelsNotReady until this ran.
func (e *Engine) Warmup() error {
	t := e.policy.Tuning
	if t.FrequencyDivisor <= 0 || t.QualityDivisor <= 0 || t.ColorScale <= 0 {
		return fmt.Errorf("policy %q: divisors and scales must be positive", e.policy.Name)
	}
	wsum := t.TemporalFaceWeight + t.TemporalArtifactWeight + t.TemporalQualityWeight
	if wsum < 0.999 || wsum > 1.001 {
		return fmt.Errorf("policy %q: temporal weights sum to %.3f, want 1", e.policy.Name, wsum)
	}

	if err := system.CheckFFmpeg(); err != nil {
		log.Printf("[!] %v: video assets will fail to decode", err)
	}

	e.mu.Lock()
	e.ready = true
	e.mu.Unlock()
	return nil
}

func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}

// Process runs the full pipeline for one file, inferring the media type
// from the file extension.
func (e *Engine) Process(ctx context.Context, path string) (*scorer.DetectionResult, error) {
	return e.ProcessAsset(ctx, path, system.MediaType(path))
}

// ProcessAsset runs the full pipeline for one file with a declared media
// type. Decode and type errors are fatal for the asset only.
func (e *Engine) ProcessAsset(ctx context.Context, path, mimeType string) (*scorer.DetectionResult, error) {
	if !e.Ready() {
		return nil, ErrModelsNotReady
	}

	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrDecode, err)
	}

	src, err := source.New(ctx, path, mimeType, e.cfg.FrameCount)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	isVideo := strings.HasPrefix(mimeType, "video/")

	// Frame capture is sequential: each seek must finish before the next.
	// Any failed capture aborts the asset; there are no partial frame sets.
	frames := make([]*source.PixelBuffer, src.FrameCount())
	for i := range frames {
		frames[i], err = src.Frame(ctx, i)
		if err != nil {
			return nil, err
		}
	}
	if isVideo {
		defer func() {
			for _, f := range frames {
				source.Release(f)
			}
		}()
	}

	sets := e.analyzer.AnalyzeFrames(ctx, frames, e.cfg.Workers)
	temporal := e.analyzer.TemporalConsistency(sets)

	meta := scorer.MediaMetadata{
		FileName: filepath.Base(path),
		ByteSize: info.Size(),
		Width:    frames[0].Width,
		Height:   frames[0].Height,
		IsVideo:  isVideo,
		Duration: src.Duration(),
	}

	confidence, analysis := e.scorer.Score(sets, temporal, meta)

	return &scorer.DetectionResult{
		FileName:       meta.FileName,
		IsDeepfake:     e.scorer.Decide(confidence),
		Confidence:     confidence,
		ThreatLevel:    e.scorer.Classify(confidence, analysis.ArtifactDetection),
		Analysis:       analysis,
		ProcessingTime: float64(time.Since(start).Microseconds()) / 1000,
		Timestamp:      time.Now().UTC(),
	}, nil
}

// ProcessBatch scans the given files concurrently. A failed asset yields a
// neutral LOW record in its slot and never aborts the others. Results keep
// the input order.
func (e *Engine) ProcessBatch(ctx context.Context, paths []string) []*scorer.DetectionResult {
	results := make([]*scorer.DetectionResult, len(paths))

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.processOne(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Engine) processOne(ctx context.Context, path string) *scorer.DetectionResult {
	assetCtx := ctx
	if e.cfg.AssetTimeout > 0 {
		var cancel context.CancelFunc
		assetCtx, cancel = context.WithTimeout(ctx, e.cfg.AssetTimeout)
		defer cancel()
	}

	result, err := e.Process(assetCtx, path)
	if err != nil {
		log.Printf("[!] %s: %v", filepath.Base(path), err)
		return scorer.NeutralResult(filepath.Base(path), err)
	}
	return result
}
