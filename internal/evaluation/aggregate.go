package evaluation

// Label is the qualitative grade derived from a score.
type Label string

const (
	LabelExcellent        Label = "excellent"
	LabelGood             Label = "good"
	LabelNeedsImprovement Label = "needs improvement"
)

// LabelFor maps a score to its qualitative label.
func LabelFor(score int) Label {
	switch {
	case score >= ExcellentThreshold:
		return LabelExcellent
	case score >= PassThreshold:
		return LabelGood
	default:
		return LabelNeedsImprovement
	}
}

// Aggregate folds criterion scores into round(Σ score*weight/100).
// Weights are trusted as given: they are not validated and the total is not clamped.
func Aggregate(scores []CriterionScore) int {
	var sum float64
	for _, score := range scores {
		sum += float64(score.Score*score.Criterion.Weight) / 100
	}
	return roundHalfUp(sum)
}

// Average returns the rounded mean of a series of answer scores, or 0 for none.
func Average(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, score := range scores {
		total += score
	}
	return roundHalfUp(float64(total) / float64(len(scores)))
}
