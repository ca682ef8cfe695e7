package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/catalog"
	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/store"
)

// ScenarioService manages the scenario catalog.
type ScenarioService interface {
	List(ctx context.Context, filter dto.ScenarioFilter) ([]dto.ScenarioSummary, error)
	Get(ctx context.Context, id string) (models.Scenario, error)
	Upsert(ctx context.Context, id string, req dto.ScenarioUpsertRequest) (models.Scenario, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, bank catalog.Bank, overwrite bool) (dto.SeedResponse, error)
}

type scenarioService struct {
	repo      repository.ScenarioRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewScenarioService constructs the scenario catalog service.
func NewScenarioService(repo repository.ScenarioRepository, validator *validator.Validate, logger zerolog.Logger) ScenarioService {
	return &scenarioService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "scenario_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *scenarioService) List(ctx context.Context, filter dto.ScenarioFilter) ([]dto.ScenarioSummary, error) {
	scenarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Category != "" {
		filtered := scenarios[:0]
		for _, scenario := range scenarios {
			if scenario.Category == filter.Category {
				filtered = append(filtered, scenario)
			}
		}
		scenarios = filtered
	}

	return dto.NewScenarioSummaries(scenarios), nil
}

func (s *scenarioService) Get(ctx context.Context, id string) (models.Scenario, error) {
	scenario, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
		}
		return models.Scenario{}, err
	}
	return scenario, nil
}

func (s *scenarioService) Upsert(ctx context.Context, id string, req dto.ScenarioUpsertRequest) (models.Scenario, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Scenario{}, err
	}

	scenario := req.ToModel(id)
	if err := catalog.ValidateScenario(scenario); err != nil {
		return models.Scenario{}, err
	}
	scenario.UpdatedAt = s.now()

	if err := s.repo.Put(ctx, id, scenario); err != nil {
		return models.Scenario{}, err
	}

	s.logger.Info().Str("scenario_id", id).Int("criteria", len(scenario.Criteria)).Msg("scenario saved")
	return scenario, nil
}

func (s *scenarioService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
		}
		return err
	}
	s.logger.Info().Str("scenario_id", id).Msg("scenario deleted")
	return nil
}

// Seed writes the bank into the catalog. Existing scenarios are kept unless overwrite is set.
func (s *scenarioService) Seed(ctx context.Context, bank catalog.Bank, overwrite bool) (dto.SeedResponse, error) {
	var result dto.SeedResponse
	for _, scenario := range bank.Scenarios {
		if !overwrite {
			_, err := s.repo.Get(ctx, scenario.ID)
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return result, err
			}
		}

		scenario.UpdatedAt = s.now()
		if err := s.repo.Put(ctx, scenario.ID, scenario); err != nil {
			return result, err
		}
		result.Seeded++
	}

	s.logger.Info().Int("seeded", result.Seeded).Int("skipped", result.Skipped).Msg("scenario catalog seeded")
	return result, nil
}
