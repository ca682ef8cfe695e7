package dto

import "github.com/noah-isme/salestrain-api/internal/evaluation"

// CriterionInput describes an inline rubric dimension supplied with an evaluation request.
type CriterionInput struct {
	ID          string   `json:"id" validate:"required,max=64"`
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Keywords    []string `json:"keywords" validate:"omitempty,dive,required,max=64"`
	Weight      int      `json:"weight" validate:"gte=0,lte=100"`
	Hint        string   `json:"hint" validate:"omitempty,max=500"`
}

// ToEvaluation converts the input into an evaluation criterion.
func (c CriterionInput) ToEvaluation() evaluation.Criterion {
	return evaluation.Criterion{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Keywords:    append([]string(nil), c.Keywords...),
		Weight:      c.Weight,
		Hint:        c.Hint,
	}
}

// EvaluationRequest evaluates one answer against a stored scenario or an inline rubric.
type EvaluationRequest struct {
	ScenarioID string           `json:"scenario_id" validate:"required_without=Criteria,max=64"`
	Text       string           `json:"text" validate:"max=20000"`
	Strategy   string           `json:"strategy" validate:"omitempty,oneof=coverage-length bucketed"`
	Criteria   []CriterionInput `json:"criteria" validate:"required_without=ScenarioID,max=20,dive"`
}

// SessionAnswer is one answer of a Q&A session.
type SessionAnswer struct {
	ScenarioID string `json:"scenario_id" validate:"required,max=64"`
	Text       string `json:"text" validate:"max=20000"`
}

// EvaluationSessionRequest evaluates a batch of answers and averages them.
type EvaluationSessionRequest struct {
	Strategy string          `json:"strategy" validate:"omitempty,oneof=coverage-length bucketed"`
	Answers  []SessionAnswer `json:"answers" validate:"required,min=1,max=50,dive"`
}

// CriterionScoreResponse reports one graded dimension.
type CriterionScoreResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Weight   int      `json:"weight"`
	Score    int      `json:"score"`
	Feedback string   `json:"feedback"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
}

// EvaluationResponse serialises an evaluation result.
type EvaluationResponse struct {
	ScenarioID     string                   `json:"scenario_id,omitempty"`
	TotalScore     int                      `json:"total_score"`
	Label          string                   `json:"label"`
	Strategy       string                   `json:"strategy"`
	TextLength     int                      `json:"text_length"`
	CriteriaScores []CriterionScoreResponse `json:"criteria_scores"`
	MissingPoints  []string                 `json:"missing_points"`
	Suggestions    []string                 `json:"suggestions"`
}

// EvaluationSessionResponse carries per-answer results and their rounded average.
type EvaluationSessionResponse struct {
	Results      []EvaluationResponse `json:"results"`
	AverageScore int                  `json:"average_score"`
	Label        string               `json:"label"`
}

// NewEvaluationResponse converts a core result into its response shape.
func NewEvaluationResponse(scenarioID string, result evaluation.Result) EvaluationResponse {
	scores := make([]CriterionScoreResponse, 0, len(result.CriteriaScores))
	for _, score := range result.CriteriaScores {
		scores = append(scores, CriterionScoreResponse{
			ID:       score.Criterion.ID,
			Name:     score.Criterion.Name,
			Weight:   score.Criterion.Weight,
			Score:    score.Score,
			Feedback: score.Feedback,
			Matched:  nonNil(score.Matched),
			Missing:  nonNil(score.Missing),
		})
	}

	return EvaluationResponse{
		ScenarioID:     scenarioID,
		TotalScore:     result.TotalScore,
		Label:          string(result.Label),
		Strategy:       string(result.Strategy),
		TextLength:     result.TextLength,
		CriteriaScores: scores,
		MissingPoints:  nonNil(result.MissingPoints),
		Suggestions:    nonNil(result.Suggestions),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// QuizSubmission answers a choice quiz. Answers maps question IDs to option IDs.
type QuizSubmission struct {
	ScenarioID string            `json:"scenario_id" validate:"required,max=64"`
	Answers    map[string]string `json:"answers" validate:"max=50"`
}

// QuizAnswerResponse reports one marked question.
type QuizAnswerResponse struct {
	QuestionID    string `json:"question_id"`
	Selected      string `json:"selected"`
	CorrectOption string `json:"correct_option"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizResultResponse serialises a graded quiz.
type QuizResultResponse struct {
	ScenarioID string               `json:"scenario_id"`
	Correct    int                  `json:"correct"`
	Total      int                  `json:"total"`
	Percentage int                  `json:"percentage"`
	Label      string               `json:"label"`
	Feedback   string               `json:"feedback"`
	Answers    []QuizAnswerResponse `json:"answers"`
}

// NewQuizResultResponse converts a graded quiz into its response shape.
func NewQuizResultResponse(scenarioID string, result evaluation.ChoiceResult) QuizResultResponse {
	answers := make([]QuizAnswerResponse, 0, len(result.Answers))
	for _, answer := range result.Answers {
		answers = append(answers, QuizAnswerResponse{
			QuestionID:    answer.QuestionID,
			Selected:      answer.Selected,
			CorrectOption: answer.CorrectOption,
			Correct:       answer.Correct,
			Explanation:   answer.Explanation,
		})
	}

	return QuizResultResponse{
		ScenarioID: scenarioID,
		Correct:    result.Correct,
		Total:      result.Total,
		Percentage: result.Percentage,
		Label:      string(result.Label),
		Feedback:   result.Feedback,
		Answers:    answers,
	}
}
