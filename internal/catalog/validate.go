package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/noah-isme/salestrain-api/internal/evaluation"
	"github.com/noah-isme/salestrain-api/internal/models"
)

// ErrInvalidScenario indicates a scenario rubric breaks a catalog rule.
var ErrInvalidScenario = errors.New("invalid scenario")

var scenarioIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var knownCategories = map[string]struct{}{
	models.ScenarioCategoryProductIntro: {},
	models.ScenarioCategoryOpenQA:       {},
	models.ScenarioCategoryDialogue:     {},
	models.ScenarioCategoryChoiceQA:     {},
}

// ValidateScenario checks the rules every stored rubric must satisfy. Weights must be
// non-negative and sum to 100 so the weighted total stays on the 0-100 scale.
func ValidateScenario(scenario models.Scenario) error {
	var problems []string

	if !scenarioIDPattern.MatchString(scenario.ID) {
		problems = append(problems, fmt.Sprintf("id %q must be a lowercase slug", scenario.ID))
	}
	if strings.TrimSpace(scenario.Title) == "" {
		problems = append(problems, "title is required")
	}
	if _, ok := knownCategories[scenario.Category]; !ok {
		problems = append(problems, fmt.Sprintf("unknown category %q", scenario.Category))
	}
	if _, err := evaluation.StrategyByName(scenario.Strategy); err != nil {
		problems = append(problems, err.Error())
	}

	if scenario.Category == models.ScenarioCategoryChoiceQA {
		problems = append(problems, validateQuestions(scenario.Questions)...)
	} else if len(scenario.Criteria) == 0 {
		problems = append(problems, "at least one criterion is required")
	}

	seen := make(map[string]struct{}, len(scenario.Criteria))
	total := 0
	for _, criterion := range scenario.Criteria {
		if criterion.ID == "" {
			problems = append(problems, "criterion id is required")
		} else if _, dup := seen[criterion.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate criterion id %q", criterion.ID))
		}
		seen[criterion.ID] = struct{}{}

		if strings.TrimSpace(criterion.Name) == "" {
			problems = append(problems, fmt.Sprintf("criterion %q needs a name", criterion.ID))
		}
		if criterion.Weight < 0 {
			problems = append(problems, fmt.Sprintf("criterion %q has negative weight", criterion.ID))
		}
		total += criterion.Weight
	}
	if len(scenario.Criteria) > 0 && total != 100 {
		problems = append(problems, fmt.Sprintf("criterion weights sum to %d, want 100", total))
	}

	if script := scenario.Dialogue; script != nil {
		if strings.TrimSpace(script.Opening) == "" {
			problems = append(problems, "dialogue opening is required")
		}
		if len(script.Replies) == 0 {
			problems = append(problems, "dialogue needs at least one reply")
		}
		if len(script.Keywords) == 0 {
			problems = append(problems, "dialogue needs objective keywords")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidScenario, scenario.ID, strings.Join(problems, "; "))
	}
	return nil
}

// validateQuestions requires a non-empty quiz whose questions have unique IDs and exactly
// one correct option each.
func validateQuestions(questions []models.ChoiceQuestion) []string {
	if len(questions) == 0 {
		return []string{"a choice quiz needs at least one question"}
	}

	var problems []string
	seen := make(map[string]struct{}, len(questions))
	for _, question := range questions {
		if question.ID == "" {
			problems = append(problems, "question id is required")
		} else if _, dup := seen[question.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate question id %q", question.ID))
		}
		seen[question.ID] = struct{}{}

		if len(question.Options) < 2 {
			problems = append(problems, fmt.Sprintf("question %q needs at least two options", question.ID))
		}
		correct := 0
		options := make(map[string]struct{}, len(question.Options))
		for _, option := range question.Options {
			if _, dup := options[option.ID]; dup {
				problems = append(problems, fmt.Sprintf("question %q repeats option %q", question.ID, option.ID))
			}
			options[option.ID] = struct{}{}
			if option.Correct {
				correct++
			}
		}
		if correct != 1 {
			problems = append(problems, fmt.Sprintf("question %q has %d correct options, want 1", question.ID, correct))
		}
	}
	return problems
}

// ValidateBank validates every scenario and rejects duplicate IDs.
func ValidateBank(bank Bank) error {
	seen := make(map[string]struct{}, len(bank.Scenarios))
	for _, scenario := range bank.Scenarios {
		if _, dup := seen[scenario.ID]; dup {
			return fmt.Errorf("%w: duplicate scenario id %q", ErrInvalidBank, scenario.ID)
		}
		seen[scenario.ID] = struct{}{}

		if err := ValidateScenario(scenario); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBank, err)
		}
	}
	return nil
}
