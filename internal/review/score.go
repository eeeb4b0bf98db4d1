package review

// NormalizeScore rescales an average that was entered on the 25-point
// criteria-sum scale (5 criteria, 0-5 each) back onto the nominal 0-5
// scale. Anything at or below 5 is assumed to already be on the nominal
// scale and passes through untouched. The scale is inferred from magnitude
// alone; the schema carries no explicit scale field.
func NormalizeScore(avg float64) float64 {
	if avg > nominalScaleMax {
		return (avg / criteriaScaleMax) * nominalScaleMax
	}
	return avg
}

// Aggregate computes the normalized average score and acceptance verdict
// for one article's review scores. An empty set averages to 0 and an
// article can only pass once RequiredReviews reviews are in.
func Aggregate(scores []float64) Summary {
	avg := 0.0
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		avg = sum / float64(len(scores))
	}
	avg = NormalizeScore(avg)

	return Summary{
		AverageScore:    avg,
		ReviewCount:     len(scores),
		PassesThreshold: avg >= PassingScore && len(scores) >= RequiredReviews,
	}
}
