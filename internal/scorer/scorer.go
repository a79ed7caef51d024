package scorer

import (
	"math/rand"
	"strings"
	"sync"

	"deepsight/internal/analyzer"
	"deepsight/internal/config"
)

// Scorer folds signal sets and file metadata through the policy rule table
// into a clamped confidence and a threat level. It is a pure function of
// its inputs except for the optional jitter source.
type Scorer struct {
	policy config.Policy
	rng    *rand.Rand // nil disables jitter
	mu     sync.Mutex // guards rng; assets score concurrently
}

// New creates a scorer. Pass a nil rng for fully deterministic output.
func New(policy config.Policy, rng *rand.Rand) *Scorer {
	return &Scorer{policy: policy, rng: rng}
}

// Score aggregates per-frame signals plus metadata into a confidence in
// [0,100] and the analysis record. temporal is the frame aggregator's
// consistency value; it is ignored for still images.
func (s *Scorer) Score(sets []analyzer.SignalSet, temporal float64, meta MediaMetadata) (float64, DetectionAnalysis) {
	mean := meanSignals(sets)
	p := &s.policy

	suspicion := p.BaseSuspicion

	// Filename keyword rules. All matches apply cumulatively.
	name := strings.ToLower(meta.FileName)
	for _, kw := range p.SuspiciousKeywords {
		if strings.Contains(name, kw) {
			suspicion += p.SuspiciousBonus
		}
	}
	for _, kw := range p.TrustedKeywords {
		if strings.Contains(name, kw) {
			suspicion -= p.TrustedPenalty
		}
	}

	// Per-signal tiers, cumulative.
	suspicion += tiersAbove(p.FaceAbove, mean.FaceRatio)
	suspicion += tiersAbove(p.ArtifactAbove, mean.Artifact)
	suspicion += tiersBelow(p.EdgeBelow, mean.EdgeConsistency)
	suspicion += tiersAbove(p.BlockinessAbove, mean.Blockiness)
	suspicion += tiersBelow(p.ColorBelow, mean.ColorConsistency)
	suspicion += tiersAbove(p.FrequencyAbove, mean.Frequency)
	suspicion += tiersBelow(p.QualityBelow, mean.Quality)

	// Metadata rules.
	if meta.ByteSize > 0 && (meta.ByteSize < p.MinNormalBytes || meta.ByteSize > p.MaxNormalBytes) {
		suspicion += p.SizeBonus
	}
	if meta.Width*meta.Height > p.HighResPixels {
		suspicion += p.HighResAdjust
	}
	if meta.Height > 0 {
		aspect := float64(meta.Width) / float64(meta.Height)
		if aspect < p.AspectMin || aspect > p.AspectMax {
			suspicion += p.AspectBonus
		}
	}

	// Video rules.
	if meta.IsVideo {
		suspicion += tiersBelow(p.TemporalBelow, temporal)
		if meta.Duration > 0 && meta.Duration < p.ShortClipSeconds {
			suspicion += p.ShortClipBonus
		}
		if meta.Duration > p.LongClipSeconds {
			suspicion += p.LongClipAdjust
		}
	}

	if s.rng != nil && p.JitterAmplitude > 0 {
		s.mu.Lock()
		suspicion += (s.rng.Float64()*2 - 1) * p.JitterAmplitude
		s.mu.Unlock()
	}

	confidence := clamp(suspicion)

	if !meta.IsVideo {
		temporal = 100
	}
	analysis := DetectionAnalysis{
		FaceDetection:           mean.FaceRatio,
		TemporalConsistency:     temporal,
		ArtifactDetection:       mean.Artifact,
		ImageQuality:            mean.Quality,
		NeuralNetworkConfidence: confidence,
	}
	return confidence, analysis
}

// Classify maps confidence and the artifact sub-score onto the threat
// ladder, most severe rung first. The two ladders are independent and ORed.
func (s *Scorer) Classify(confidence, artifact float64) ThreatLevel {
	p := &s.policy
	switch {
	case confidence > p.CriticalConfidence || artifact > p.CriticalArtifact:
		return ThreatCritical
	case confidence > p.HighConfidence || artifact > p.HighArtifact:
		return ThreatHigh
	case confidence > p.MediumConfidence:
		return ThreatMedium
	default:
		return ThreatLow
	}
}

// Decide applies the single boolean cutoff, independent of the ladder.
func (s *Scorer) Decide(confidence float64) bool {
	return confidence > s.policy.DecisionThreshold
}

func meanSignals(sets []analyzer.SignalSet) analyzer.SignalSet {
	if len(sets) == 0 {
		return analyzer.SignalSet{}
	}
	var m analyzer.SignalSet
	for _, s := range sets {
		m.FaceRatio += s.FaceRatio
		m.Artifact += s.Artifact
		m.EdgeConsistency += s.EdgeConsistency
		m.Blockiness += s.Blockiness
		m.ColorConsistency += s.ColorConsistency
		m.Frequency += s.Frequency
		m.Quality += s.Quality
	}
	n := float64(len(sets))
	m.FaceRatio /= n
	m.Artifact /= n
	m.EdgeConsistency /= n
	m.Blockiness /= n
	m.ColorConsistency /= n
	m.Frequency /= n
	m.Quality /= n
	return m
}

func tiersAbove(tiers []config.Tier, signal float64) float64 {
	bonus := 0.0
	for _, t := range tiers {
		if signal > t.Limit {
			bonus += t.Bonus
		}
	}
	return bonus
}

func tiersBelow(tiers []config.Tier, signal float64) float64 {
	bonus := 0.0
	for _, t := range tiers {
		if signal < t.Limit {
			bonus += t.Bonus
		}
	}
	return bonus
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
