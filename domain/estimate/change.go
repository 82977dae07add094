package estimate

// ChangeVerdict classifies a relative change estimate against the
// configured noise threshold.
type ChangeVerdict string

const (
	VerdictWithinNoise  ChangeVerdict = "within noise"
	VerdictImproved     ChangeVerdict = "improved"
	VerdictRegressed    ChangeVerdict = "regressed"
	VerdictInconclusive ChangeVerdict = "inconclusive"
)

// ClassifyChange places a relative estimate's confidence interval
// against the band [-threshold, +threshold] around zero. Relative
// values are (new - base) / base over execution times, so entirely
// positive means slower.
func ClassifyChange(e Estimate, threshold float64) ChangeVerdict {
	lb := e.ConfidenceInterval.LowerBound
	ub := e.ConfidenceInterval.UpperBound

	switch {
	case lb >= -threshold && ub <= threshold:
		return VerdictWithinNoise
	case lb > threshold:
		return VerdictRegressed
	case ub < -threshold:
		return VerdictImproved
	default:
		return VerdictInconclusive
	}
}
