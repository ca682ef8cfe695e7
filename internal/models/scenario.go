package models

import (
	"strings"
	"time"

	"github.com/noah-isme/salestrain-api/internal/evaluation"
)

// Scenario categories used by the training catalog.
const (
	ScenarioCategoryProductIntro = "product-intro"
	ScenarioCategoryOpenQA       = "open-qa"
	ScenarioCategoryDialogue     = "dialogue"
	ScenarioCategoryChoiceQA     = "choice-qa"
)

// CriterionDefinition is a stored rubric dimension.
type CriterionDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Weight      int      `json:"weight" yaml:"weight"`
	Hint        string   `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// ToEvaluation converts the definition into the evaluation criterion it describes.
func (c CriterionDefinition) ToEvaluation() evaluation.Criterion {
	keywords := make([]string, len(c.Keywords))
	copy(keywords, c.Keywords)

	return evaluation.Criterion{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Keywords:    keywords,
		Weight:      c.Weight,
		Hint:        c.Hint,
	}
}

// DialogueScript drives a scripted dialogue practice for a scenario.
type DialogueScript struct {
	Role            string   `json:"role" yaml:"role"`
	RoleDescription string   `json:"role_description" yaml:"role_description"`
	Objective       string   `json:"objective" yaml:"objective"`
	Opening         string   `json:"opening" yaml:"opening"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
	Replies         []string `json:"replies" yaml:"replies"`
	Hints           []string `json:"hints,omitempty" yaml:"hints,omitempty"`
	Structure       string   `json:"structure,omitempty" yaml:"structure,omitempty"`
}

// ChoiceOption is one option of a quiz question.
type ChoiceOption struct {
	ID      string `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// ChoiceQuestion is a multiple-choice quiz question.
type ChoiceQuestion struct {
	ID          string         `json:"id" yaml:"id"`
	Topic       string         `json:"topic,omitempty" yaml:"topic,omitempty"`
	Question    string         `json:"question" yaml:"question"`
	Options     []ChoiceOption `json:"options" yaml:"options"`
	Explanation string         `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Tips        string         `json:"tips,omitempty" yaml:"tips,omitempty"`
}

// ToEvaluation converts the stored question into the form the grader takes.
func (q ChoiceQuestion) ToEvaluation() evaluation.ChoiceQuestion {
	options := make([]evaluation.ChoiceOption, 0, len(q.Options))
	for _, option := range q.Options {
		options = append(options, evaluation.ChoiceOption{ID: option.ID, Text: option.Text, Correct: option.Correct})
	}
	return evaluation.ChoiceQuestion{
		ID:          q.ID,
		Question:    q.Question,
		Options:     options,
		Explanation: q.Explanation,
	}
}

// Scenario is a training prompt together with the rubric it is graded by.
type Scenario struct {
	ID              string                `json:"id" yaml:"id"`
	Title           string                `json:"title" yaml:"title"`
	Category        string                `json:"category" yaml:"category"`
	Difficulty      string                `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Prompt          string                `json:"prompt" yaml:"prompt"`
	ReferenceAnswer string                `json:"reference_answer,omitempty" yaml:"reference_answer,omitempty"`
	Tips            string                `json:"tips,omitempty" yaml:"tips,omitempty"`
	Strategy        string                `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Criteria        []CriterionDefinition `json:"criteria" yaml:"criteria,omitempty"`
	Dialogue        *DialogueScript       `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`
	Questions       []ChoiceQuestion      `json:"questions,omitempty" yaml:"questions,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at" yaml:"-"`
}

// EvaluationCriteria returns the scenario rubric in declaration order.
func (s Scenario) EvaluationCriteria() []evaluation.Criterion {
	criteria := make([]evaluation.Criterion, 0, len(s.Criteria))
	for _, definition := range s.Criteria {
		criteria = append(criteria, definition.ToEvaluation())
	}
	return criteria
}

// TotalWeight sums the criterion weights.
func (s Scenario) TotalWeight() int {
	total := 0
	for _, criterion := range s.Criteria {
		total += criterion.Weight
	}
	return total
}

// HasDialogue reports whether the scenario can be practised as a dialogue.
func (s Scenario) HasDialogue() bool {
	return s.Dialogue != nil && strings.TrimSpace(s.Dialogue.Opening) != ""
}

// IsQuiz reports whether the scenario is a multiple-choice quiz.
func (s Scenario) IsQuiz() bool {
	return s.Category == ScenarioCategoryChoiceQA && len(s.Questions) > 0
}

// QuizQuestions returns the quiz in declaration order.
func (s Scenario) QuizQuestions() []evaluation.ChoiceQuestion {
	questions := make([]evaluation.ChoiceQuestion, 0, len(s.Questions))
	for _, question := range s.Questions {
		questions = append(questions, question.ToEvaluation())
	}
	return questions
}
