package scorer

import "time"

// ThreatLevel is the ordered classification LOW < MEDIUM < HIGH < CRITICAL.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "LOW"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

var threatRank = map[ThreatLevel]int{
	ThreatLow:      0,
	ThreatMedium:   1,
	ThreatHigh:     2,
	ThreatCritical: 3,
}

// Rank returns the level's position in the ladder, for ordering comparisons.
func (t ThreatLevel) Rank() int {
	return threatRank[t]
}

// MediaMetadata is the coarse file-level input to the scorer. Filename is
// only used for substring keyword checks.
type MediaMetadata struct {
	FileName string
	ByteSize int64
	Width    int
	Height   int
	IsVideo  bool
	Duration float64 // seconds, video only
}

// DetectionAnalysis is the report-facing breakdown of sub-scores. The final
// aggregate is stored redundantly as NeuralNetworkConfidence to keep the
// externally observed record shape.
type DetectionAnalysis struct {
	FaceDetection           float64 `json:"faceDetection"`
	TemporalConsistency     float64 `json:"temporalConsistency"`
	ArtifactDetection       float64 `json:"artifactDetection"`
	ImageQuality            float64 `json:"imageQuality"`
	NeuralNetworkConfidence float64 `json:"neuralNetworkConfidence"`
}

// DetectionResult is the one record produced per submitted asset. It is
// never mutated after creation.
type DetectionResult struct {
	FileName       string            `json:"fileName"`
	IsDeepfake     bool              `json:"isDeepfake"`
	Confidence     float64           `json:"confidence"`
	ThreatLevel    ThreatLevel       `json:"threatLevel"`
	Analysis       DetectionAnalysis `json:"analysis"`
	ProcessingTime float64           `json:"processingTime"` // milliseconds
	Timestamp      time.Time         `json:"timestamp"`      // RFC 3339 in JSON
	Error          string            `json:"error,omitempty"`
}

// NeutralResult is the placeholder emitted for an asset that failed to
// decode, so batch output stays displayable instead of dropping rows.
func NeutralResult(fileName string, err error) *DetectionResult {
	r := &DetectionResult{
		FileName:    fileName,
		IsDeepfake:  false,
		Confidence:  0,
		ThreatLevel: ThreatLow,
		Timestamp:   time.Now().UTC(),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
