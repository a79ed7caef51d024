package analyzer

// SignalSet is the fixed record of heuristic signals produced for one
// frame. Every field is bounded to [0,100].
type SignalSet struct {
	FaceRatio        float64 // skin-toned share of the central region
	Artifact         float64 // local-variance artifact density
	EdgeConsistency  float64 // share of edges agreeing with their neighbors
	Blockiness       float64 // 8x8 compression block boundary jumps
	ColorConsistency float64 // cross-quadrant color balance
	Frequency        float64 // gray histogram anomaly
	Quality          float64 // global contrast
}
