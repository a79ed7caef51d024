package config

import "fmt"

// Tier is one threshold rule: crossing Limit adds Bonus to the suspicion total.
// Tiers of the same signal are cumulative.
type Tier struct {
	Limit float64 `yaml:"limit"`
	Bonus float64 `yaml:"bonus"`
}

// Policy is the full scoring rule table. The engine treats it as an opaque
// value, so alternate tunings are plain data, not separate code paths.
type Policy struct {
	Name string `yaml:"name"`

	BaseSuspicion   float64 `yaml:"base_suspicion"`
	JitterAmplitude float64 `yaml:"jitter_amplitude"`

	// Filename keyword rules, case-insensitive substring match, all matches apply.
	SuspiciousKeywords []string `yaml:"suspicious_keywords"`
	SuspiciousBonus    float64  `yaml:"suspicious_bonus"`
	TrustedKeywords    []string `yaml:"trusted_keywords"`
	TrustedPenalty     float64  `yaml:"trusted_penalty"`

	// Per-signal tiers. "Above" fires when the signal exceeds Limit,
	// "Below" when it falls under Limit.
	FaceAbove       []Tier `yaml:"face_above"`
	ArtifactAbove   []Tier `yaml:"artifact_above"`
	EdgeBelow       []Tier `yaml:"edge_below"`
	BlockinessAbove []Tier `yaml:"blockiness_above"`
	ColorBelow      []Tier `yaml:"color_below"`
	FrequencyAbove  []Tier `yaml:"frequency_above"`
	QualityBelow    []Tier `yaml:"quality_below"`
	TemporalBelow   []Tier `yaml:"temporal_below"` // video only

	// Metadata rules.
	MinNormalBytes int64   `yaml:"min_normal_bytes"`
	MaxNormalBytes int64   `yaml:"max_normal_bytes"`
	SizeBonus      float64 `yaml:"size_bonus"`
	HighResPixels  int     `yaml:"high_res_pixels"`
	HighResAdjust  float64 `yaml:"high_res_adjust"`
	AspectMin      float64 `yaml:"aspect_min"`
	AspectMax      float64 `yaml:"aspect_max"`
	AspectBonus    float64 `yaml:"aspect_bonus"`

	// Video duration rules.
	ShortClipSeconds float64 `yaml:"short_clip_seconds"`
	ShortClipBonus   float64 `yaml:"short_clip_bonus"`
	LongClipSeconds  float64 `yaml:"long_clip_seconds"`
	LongClipAdjust   float64 `yaml:"long_clip_adjust"`

	// Threat ladder, most severe first. The confidence ladder and the
	// artifact ladder are independent and ORed.
	CriticalConfidence float64 `yaml:"critical_confidence"`
	CriticalArtifact   float64 `yaml:"critical_artifact"`
	HighConfidence     float64 `yaml:"high_confidence"`
	HighArtifact       float64 `yaml:"high_artifact"`
	MediumConfidence   float64 `yaml:"medium_confidence"`

	// Single cutoff for the boolean verdict, independent of the ladder.
	DecisionThreshold float64 `yaml:"decision_threshold"`

	Tuning Tuning `yaml:"tuning"`
}

// DefaultPolicy is the balanced tuning the engine ships with.
func DefaultPolicy() Policy {
	return Policy{
		Name: "default",

		BaseSuspicion:   10,
		JitterAmplitude: 3,

		SuspiciousKeywords: []string{"fake", "deepfake", "generated", "ai", "synthetic", "swap"},
		SuspiciousBonus:    25,
		TrustedKeywords:    []string{"real", "authentic", "original", "genuine"},
		TrustedPenalty:     15,

		FaceAbove:       []Tier{{Limit: 50, Bonus: 6}},
		ArtifactAbove:   []Tier{{Limit: 70, Bonus: 12}, {Limit: 85, Bonus: 10}},
		EdgeBelow:       []Tier{{Limit: 50, Bonus: 10}, {Limit: 30, Bonus: 8}},
		BlockinessAbove: []Tier{{Limit: 40, Bonus: 8}, {Limit: 60, Bonus: 7}},
		ColorBelow:      []Tier{{Limit: 70, Bonus: 6}, {Limit: 50, Bonus: 6}},
		FrequencyAbove:  []Tier{{Limit: 65, Bonus: 7}},
		QualityBelow:    []Tier{{Limit: 20, Bonus: 5}},
		TemporalBelow:   []Tier{{Limit: 60, Bonus: 12}, {Limit: 40, Bonus: 10}},

		MinNormalBytes: 10 << 10,  // 10 KB
		MaxNormalBytes: 200 << 20, // 200 MB
		SizeBonus:      5,
		HighResPixels:  8_000_000,
		HighResAdjust:  -4,
		AspectMin:      0.5,
		AspectMax:      2.4,
		AspectBonus:    5,

		ShortClipSeconds: 3,
		ShortClipBonus:   8,
		LongClipSeconds:  120,
		LongClipAdjust:   -5,

		CriticalConfidence: 85,
		CriticalArtifact:   90,
		HighConfidence:     70,
		HighArtifact:       80,
		MediumConfidence:   45,

		DecisionThreshold: 65,

		Tuning: DefaultTuning(),
	}
}

// AggressivePolicy flags earlier and harder. Useful when false negatives
// cost more than false positives.
func AggressivePolicy() Policy {
	p := DefaultPolicy()
	p.Name = "aggressive"
	p.BaseSuspicion = 18
	p.SuspiciousBonus = 30
	p.ArtifactAbove = []Tier{{Limit: 60, Bonus: 15}, {Limit: 80, Bonus: 12}}
	p.TemporalBelow = []Tier{{Limit: 70, Bonus: 15}, {Limit: 45, Bonus: 12}}
	p.CriticalConfidence = 80
	p.HighConfidence = 60
	p.MediumConfidence = 35
	p.DecisionThreshold = 55
	return p
}

// ConservativePolicy requires stronger evidence before flagging.
func ConservativePolicy() Policy {
	p := DefaultPolicy()
	p.Name = "conservative"
	p.BaseSuspicion = 5
	p.JitterAmplitude = 0
	p.SuspiciousBonus = 18
	p.ArtifactAbove = []Tier{{Limit: 80, Bonus: 10}, {Limit: 92, Bonus: 8}}
	p.CriticalConfidence = 92
	p.CriticalArtifact = 95
	p.HighConfidence = 80
	p.MediumConfidence = 55
	p.DecisionThreshold = 75
	return p
}

// PolicyByName resolves a built-in policy. An empty name means default.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "default", "":
		return DefaultPolicy(), nil
	case "aggressive":
		return AggressivePolicy(), nil
	case "conservative":
		return ConservativePolicy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown policy: %s", name)
	}
}
