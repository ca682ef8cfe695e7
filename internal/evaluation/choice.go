package evaluation

const (
	quizFeedbackExcellent = "Excellent: the product knowledge is well mastered."
	quizFeedbackGood      = "Good: the basics are solid; review the questions you missed."
	quizFeedbackWeak      = "Needs improvement: revisit the module content and practise again."
)

// ChoiceOption is one answer of a multiple-choice question.
type ChoiceOption struct {
	ID      string
	Text    string
	Correct bool
}

// ChoiceQuestion is a multiple-choice question with its options.
type ChoiceQuestion struct {
	ID          string
	Question    string
	Options     []ChoiceOption
	Explanation string
}

// CorrectOption returns the ID of the first option marked correct, or "" when none is.
func (q ChoiceQuestion) CorrectOption() string {
	for _, option := range q.Options {
		if option.Correct {
			return option.ID
		}
	}
	return ""
}

// ChoiceAnswer is the grading of one question.
type ChoiceAnswer struct {
	QuestionID    string
	Selected      string
	CorrectOption string
	Correct       bool
	Explanation   string
}

// ChoiceResult is the outcome of a multiple-choice quiz.
type ChoiceResult struct {
	Correct    int
	Total      int
	Percentage int
	Label      Label
	Feedback   string
	Answers    []ChoiceAnswer
}

// GradeChoice marks every question against selections (question ID to option ID).
// An unanswered question or an unknown option counts as wrong. The percentage is
// round(correct/total*100), or 0 for an empty quiz.
func GradeChoice(questions []ChoiceQuestion, selections map[string]string) ChoiceResult {
	result := ChoiceResult{
		Total:   len(questions),
		Answers: make([]ChoiceAnswer, 0, len(questions)),
	}

	for _, question := range questions {
		selected := selections[question.ID]
		correct := false
		for _, option := range question.Options {
			if selected != "" && option.ID == selected {
				correct = option.Correct
				break
			}
		}
		if correct {
			result.Correct++
		}
		result.Answers = append(result.Answers, ChoiceAnswer{
			QuestionID:    question.ID,
			Selected:      selected,
			CorrectOption: question.CorrectOption(),
			Correct:       correct,
			Explanation:   question.Explanation,
		})
	}

	if result.Total > 0 {
		result.Percentage = roundHalfUp(float64(result.Correct) / float64(result.Total) * 100)
	}
	result.Label = LabelFor(result.Percentage)
	result.Feedback = quizFeedbackFor(result.Percentage)
	return result
}

func quizFeedbackFor(percentage int) string {
	switch {
	case percentage >= ExcellentThreshold:
		return quizFeedbackExcellent
	case percentage >= PassThreshold:
		return quizFeedbackGood
	default:
		return quizFeedbackWeak
	}
}
