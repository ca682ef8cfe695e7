package evaluation

import (
	"fmt"
	"strings"
)

const (
	feedbackExcellent   = "Excellent: the key points of this dimension are well covered."
	feedbackGood        = "Good, but the related points could be explained in more detail."
	feedbackNeedsDetail = "Needs improvement: key information is missing, please add more detail."

	suggestionTooShort = "The answer is too short; give a more detailed explanation."
)

// FeedbackFor returns the per-criterion feedback line for a score. The thresholds are
// shared by every strategy.
func FeedbackFor(score int) string {
	switch {
	case score >= ExcellentThreshold:
		return feedbackExcellent
	case score >= PassThreshold:
		return feedbackGood
	default:
		return feedbackNeedsDetail
	}
}

// Feedback is the user-facing gap analysis of an evaluation.
type Feedback struct {
	MissingPoints []string
	Suggestions   []string
}

// BuildFeedback lists every criterion under the pass threshold as a missing point with a
// matching suggestion, and adds a length suggestion for answers under MinimumAnswerLength.
func BuildFeedback(scores []CriterionScore, textLength int) Feedback {
	feedback := Feedback{
		MissingPoints: make([]string, 0),
		Suggestions:   make([]string, 0),
	}

	for _, score := range scores {
		if score.Passed() {
			continue
		}
		feedback.MissingPoints = append(feedback.MissingPoints, score.Criterion.Name)
		feedback.Suggestions = append(feedback.Suggestions, suggestionFor(score))
	}

	if textLength < MinimumAnswerLength {
		feedback.Suggestions = append(feedback.Suggestions, suggestionTooShort)
	}

	return feedback
}

func suggestionFor(score CriterionScore) string {
	hint := strings.TrimSpace(score.Criterion.Hint)
	if hint == "" {
		hint = fmt.Sprintf("Cover the %q dimension in more depth", score.Criterion.Name)
	}
	if len(score.Missing) == 0 {
		return hint
	}
	return fmt.Sprintf("%s (missing keywords: %s)", hint, strings.Join(score.Missing, "、"))
}
