package evaluation

// Evaluate scores text against every criterion with the given strategy.
//
// Callers are expected to pass non-negative integer weights; nothing is validated. An empty
// criteria list yields a zero total. A nil strategy falls back to DefaultStrategy.
func Evaluate(text string, criteria []Criterion, strategy Strategy) Result {
	if strategy == nil {
		strategy = CoverageLength{}
	}

	length := TextLength(text)
	scores := make([]CriterionScore, 0, len(criteria))
	for _, criterion := range criteria {
		scores = append(scores, ScoreCriterion(text, criterion, strategy))
	}

	total := Aggregate(scores)
	feedback := BuildFeedback(scores, length)

	return Result{
		TotalScore:     total,
		Label:          LabelFor(total),
		Strategy:       strategy.Name(),
		TextLength:     length,
		CriteriaScores: scores,
		MissingPoints:  feedback.MissingPoints,
		Suggestions:    feedback.Suggestions,
	}
}

// ScoreCriterion evaluates a single criterion.
func ScoreCriterion(text string, criterion Criterion, strategy Strategy) CriterionScore {
	match := MatchKeywords(text, criterion.Keywords)
	score := strategy.Score(text, match)

	return CriterionScore{
		Criterion: criterion,
		Score:     score,
		Feedback:  FeedbackFor(score),
		Matched:   match.Matched,
		Missing:   match.Missing,
	}
}
