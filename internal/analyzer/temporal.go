package analyzer

// TemporalConsistency measures cross-frame stability for video. Each
// consecutive frame pair contributes 100 minus the weighted absolute delta
// of its face, artifact and quality signals (weights sum to 1), floored at
// zero; the pair scores are averaged. A single frame has nothing to compare
// against and yields the configured neutral value.
func (a *Analyzer) TemporalConsistency(sets []SignalSet) float64 {
	if len(sets) < 2 {
		return a.cfg.TemporalNeutral
	}

	total := 0.0
	for i := 1; i < len(sets); i++ {
		delta := a.cfg.TemporalFaceWeight*abs(sets[i].FaceRatio-sets[i-1].FaceRatio) +
			a.cfg.TemporalArtifactWeight*abs(sets[i].Artifact-sets[i-1].Artifact) +
			a.cfg.TemporalQualityWeight*abs(sets[i].Quality-sets[i-1].Quality)

		pair := 100 - delta
		if pair < 0 {
			pair = 0
		}
		total += pair
	}

	return total / float64(len(sets)-1)
}
