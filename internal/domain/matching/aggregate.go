package matching

import "math"

// aggregate combines weighted factor scores into the overall score and a
// confidence value. Confidence never alters the score: it reflects factor
// agreement (low variance) and data completeness (non-neutral share), with
// a 0.5 floor.
func aggregate(scores []FactorScore, w Weights) (int, float64) {
	if len(scores) == 0 {
		return 0, 0.5
	}

	var weighted float64
	var mean float64
	nonNeutral := 0
	for _, fs := range scores {
		weighted += w[fs.Category] * float64(fs.Score)
		mean += float64(fs.Score)
		if !fs.Neutral {
			nonNeutral++
		}
	}
	mean /= float64(len(scores))

	var variance float64
	for _, fs := range scores {
		d := float64(fs.Score) - mean
		variance += d * d
	}
	variance /= float64(len(scores))
	stddev := math.Sqrt(variance)

	agreement := 1 - stddev/50
	if agreement < 0 {
		agreement = 0
	}
	completeness := float64(nonNeutral) / float64(len(scores))

	confidence := 0.5 + 0.5*(0.5*agreement+0.5*completeness)
	confidence = math.Round(confidence*100) / 100
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0.5 {
		confidence = 0.5
	}

	score := clampInt(int(math.Round(weighted)), 0, 100)
	return score, confidence
}
