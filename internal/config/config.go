package config

import "time"

// Config holds the runtime options of a single scan run.
type Config struct {
	InputPath     string
	ReportPath    string
	PolicyName    string
	PolicyFile    string
	FrameCount    int // sampled frames per video
	Workers       int
	AssetTimeout  time.Duration
	Seed          int64
	Deterministic bool
	Verbose       bool
	BuildVersion  string
}

// Tuning holds the per-extractor thresholds and scale constants.
// All of it is policy, not structure: tests pin exact values through here.
type Tuning struct {
	SkinScale             float64 `yaml:"skin_scale"`
	ArtifactVarianceLimit float64 `yaml:"artifact_variance_limit"`
	ArtifactDeltaLimit    float64 `yaml:"artifact_delta_limit"`
	ArtifactScale         float64 `yaml:"artifact_scale"`
	EdgeThreshold         float64 `yaml:"edge_threshold"`
	EdgeNeutral           float64 `yaml:"edge_neutral"`
	BlockJumpLimit        float64 `yaml:"block_jump_limit"`
	ColorScale            float64 `yaml:"color_scale"`
	FrequencyDivisor      float64 `yaml:"frequency_divisor"`
	QualityDivisor        float64 `yaml:"quality_divisor"`

	TemporalNeutral        float64 `yaml:"temporal_neutral"`
	TemporalFaceWeight     float64 `yaml:"temporal_face_weight"`
	TemporalArtifactWeight float64 `yaml:"temporal_artifact_weight"`
	TemporalQualityWeight  float64 `yaml:"temporal_quality_weight"`
}

// DefaultTuning returns the extractor constants shipped with the default policy.
func DefaultTuning() Tuning {
	return Tuning{
		SkinScale:             180,
		ArtifactVarianceLimit: 3000,
		ArtifactDeltaLimit:    100,
		ArtifactScale:         400,
		EdgeThreshold:         40,
		EdgeNeutral:           75,
		BlockJumpLimit:        30,
		ColorScale:            12,
		FrequencyDivisor:      1500,
		QualityDivisor:        10,

		TemporalNeutral:        100,
		TemporalFaceWeight:     0.4,
		TemporalArtifactWeight: 0.4,
		TemporalQualityWeight:  0.2,
	}
}
