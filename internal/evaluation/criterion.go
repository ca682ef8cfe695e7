// Package evaluation scores free-text answers against weighted keyword rubrics.
//
// Every function in this package is pure: the same text, criteria and strategy always
// produce the same Result, and nothing is read from or written to shared state.
package evaluation

import "unicode/utf8"

// PassThreshold is the score below which a criterion is reported as a missing point.
const PassThreshold = 60

// ExcellentThreshold is the score from which feedback and labels turn positive.
const ExcellentThreshold = 80

// MinimumAnswerLength is the character count under which a "too short" suggestion is added.
const MinimumAnswerLength = 100

// Criterion is one weighted rubric dimension.
type Criterion struct {
	ID          string
	Name        string
	Description string
	Keywords    []string
	Weight      int
	Hint        string
}

// CriterionScore is the evaluation of a single criterion.
type CriterionScore struct {
	Criterion Criterion
	Score     int
	Feedback  string
	Matched   []string
	Missing   []string
}

// Passed reports whether the criterion reached the pass threshold.
func (s CriterionScore) Passed() bool {
	return s.Score >= PassThreshold
}

// Result is the outcome of one evaluation call. It is never persisted.
type Result struct {
	TotalScore     int
	Label          Label
	Strategy       StrategyName
	TextLength     int
	CriteriaScores []CriterionScore
	MissingPoints  []string
	Suggestions    []string
}

// TextLength counts characters the way users perceive them, so CJK answers are not
// inflated by their UTF-8 byte length.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}
