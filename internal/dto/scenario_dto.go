package dto

import (
	"time"

	"github.com/noah-isme/salestrain-api/internal/models"
)

// ScenarioFilter narrows scenario listings.
type ScenarioFilter struct {
	Category string
}

// ScenarioUpsertRequest creates or replaces a scenario. The ID comes from the path.
type ScenarioUpsertRequest struct {
	Title           string                  `json:"title" validate:"required,max=200"`
	Category        string                  `json:"category" validate:"required,oneof=product-intro open-qa dialogue choice-qa"`
	Difficulty      string                  `json:"difficulty" validate:"omitempty,max=32"`
	Prompt          string                  `json:"prompt" validate:"required,max=4000"`
	ReferenceAnswer string                  `json:"reference_answer" validate:"omitempty,max=8000"`
	Tips            string                  `json:"tips" validate:"omitempty,max=2000"`
	Strategy        string                  `json:"strategy" validate:"omitempty,oneof=coverage-length bucketed"`
	Criteria        []CriterionInput        `json:"criteria" validate:"omitempty,max=20,dive"`
	Dialogue        *models.DialogueScript  `json:"dialogue"`
	Questions       []models.ChoiceQuestion `json:"questions" validate:"omitempty,max=50"`
}

// ToModel builds the scenario stored under id.
func (r ScenarioUpsertRequest) ToModel(id string) models.Scenario {
	criteria := make([]models.CriterionDefinition, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		criteria = append(criteria, models.CriterionDefinition{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Keywords:    append([]string(nil), c.Keywords...),
			Weight:      c.Weight,
			Hint:        c.Hint,
		})
	}

	return models.Scenario{
		ID:              id,
		Title:           r.Title,
		Category:        r.Category,
		Difficulty:      r.Difficulty,
		Prompt:          r.Prompt,
		ReferenceAnswer: r.ReferenceAnswer,
		Tips:            r.Tips,
		Strategy:        r.Strategy,
		Criteria:        criteria,
		Dialogue:        r.Dialogue,
		Questions:       append([]models.ChoiceQuestion(nil), r.Questions...),
	}
}

// ScenarioSummary is the listing shape for scenarios.
type ScenarioSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Strategy    string    `json:"strategy,omitempty"`
	Criteria    int       `json:"criteria"`
	HasDialogue bool      `json:"has_dialogue"`
	Questions   int       `json:"questions,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewScenarioSummary converts a scenario into its listing shape.
func NewScenarioSummary(scenario models.Scenario) ScenarioSummary {
	return ScenarioSummary{
		ID:          scenario.ID,
		Title:       scenario.Title,
		Category:    scenario.Category,
		Difficulty:  scenario.Difficulty,
		Strategy:    scenario.Strategy,
		Criteria:    len(scenario.Criteria),
		HasDialogue: scenario.HasDialogue(),
		Questions:   len(scenario.Questions),
		UpdatedAt:   scenario.UpdatedAt,
	}
}

// NewScenarioSummaries converts a slice of scenarios.
func NewScenarioSummaries(scenarios []models.Scenario) []ScenarioSummary {
	summaries := make([]ScenarioSummary, 0, len(scenarios))
	for _, scenario := range scenarios {
		summaries = append(summaries, NewScenarioSummary(scenario))
	}
	return summaries
}

// SeedResponse reports how many scenarios a seed run wrote.
type SeedResponse struct {
	Seeded  int `json:"seeded"`
	Skipped int `json:"skipped"`
}
