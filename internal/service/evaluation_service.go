package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/evaluation"
	"github.com/noah-isme/salestrain-api/internal/observability"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/store"
)

var (
	// ErrScenarioNotFound indicates the referenced scenario does not exist.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrQuizScenario indicates a free-text evaluation referenced a choice quiz.
	ErrQuizScenario = errors.New("scenario is a choice quiz")
	// ErrNotQuiz indicates a quiz submission referenced a scenario without choice questions.
	ErrNotQuiz = errors.New("scenario has no choice questions")
)

// EvaluationService grades free-text answers against scenario rubrics.
type EvaluationService interface {
	Evaluate(ctx context.Context, req dto.EvaluationRequest) (dto.EvaluationResponse, error)
	EvaluateSession(ctx context.Context, req dto.EvaluationSessionRequest) (dto.EvaluationSessionResponse, error)
	GradeQuiz(ctx context.Context, req dto.QuizSubmission) (dto.QuizResultResponse, error)
}

// quizStrategyLabel tags quiz gradings in the evaluation metrics.
const quizStrategyLabel = "choice"

type evaluationService struct {
	scenarios       repository.ScenarioRepository
	validator       *validator.Validate
	defaultStrategy string
	logger          zerolog.Logger
	tracer          trace.Tracer
}

// NewEvaluationService constructs the evaluation service. defaultStrategy applies when
// neither the request nor the scenario names one.
func NewEvaluationService(scenarios repository.ScenarioRepository, validator *validator.Validate, defaultStrategy string, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		scenarios:       scenarios,
		validator:       validator,
		defaultStrategy: defaultStrategy,
		logger:          logger.With().Str("component", "evaluation_service").Logger(),
		tracer:          otel.Tracer("github.com/noah-isme/salestrain-api/internal/service/evaluation"),
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, req dto.EvaluationRequest) (dto.EvaluationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.evaluate")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.EvaluationResponse{}, err
	}

	var (
		criteria         []evaluation.Criterion
		scenarioStrategy string
	)
	if req.ScenarioID != "" {
		scenario, err := s.scenarios.Get(ctx, req.ScenarioID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scenario lookup failed")
			return dto.EvaluationResponse{}, s.mapLookupError(req.ScenarioID, err)
		}
		if scenario.IsQuiz() {
			return dto.EvaluationResponse{}, fmt.Errorf("%w: %s", ErrQuizScenario, req.ScenarioID)
		}
		criteria = scenario.EvaluationCriteria()
		scenarioStrategy = scenario.Strategy
	} else {
		criteria = make([]evaluation.Criterion, 0, len(req.Criteria))
		for _, input := range req.Criteria {
			criteria = append(criteria, input.ToEvaluation())
		}
	}

	strategy, err := s.resolveStrategy(req.Strategy, scenarioStrategy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown strategy")
		return dto.EvaluationResponse{}, err
	}

	result := evaluation.Evaluate(req.Text, criteria, strategy)
	s.record(span, result)

	s.logger.Debug().
		Str("scenario_id", req.ScenarioID).
		Str("strategy", string(result.Strategy)).
		Int("total_score", result.TotalScore).
		Int("text_length", result.TextLength).
		Msg("answer evaluated")

	return dto.NewEvaluationResponse(req.ScenarioID, result), nil
}

func (s *evaluationService) EvaluateSession(ctx context.Context, req dto.EvaluationSessionRequest) (dto.EvaluationSessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.evaluate_session")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.EvaluationSessionResponse{}, err
	}
	span.SetAttributes(attribute.Int("evaluation.answers", len(req.Answers)))

	results := make([]dto.EvaluationResponse, 0, len(req.Answers))
	totals := make([]int, 0, len(req.Answers))
	for _, answer := range req.Answers {
		result, err := s.Evaluate(ctx, dto.EvaluationRequest{
			ScenarioID: answer.ScenarioID,
			Text:       answer.Text,
			Strategy:   req.Strategy,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "answer evaluation failed")
			return dto.EvaluationSessionResponse{}, err
		}
		results = append(results, result)
		totals = append(totals, result.TotalScore)
	}

	average := evaluation.Average(totals)
	s.logger.Info().Int("answers", len(results)).Int("average_score", average).Msg("session evaluated")

	return dto.EvaluationSessionResponse{
		Results:      results,
		AverageScore: average,
		Label:        string(evaluation.LabelFor(average)),
	}, nil
}

func (s *evaluationService) GradeQuiz(ctx context.Context, req dto.QuizSubmission) (dto.QuizResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.grade_quiz")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.QuizResultResponse{}, err
	}

	scenario, err := s.scenarios.Get(ctx, req.ScenarioID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scenario lookup failed")
		return dto.QuizResultResponse{}, s.mapLookupError(req.ScenarioID, err)
	}
	if !scenario.IsQuiz() {
		return dto.QuizResultResponse{}, fmt.Errorf("%w: %s", ErrNotQuiz, req.ScenarioID)
	}

	result := evaluation.GradeChoice(scenario.QuizQuestions(), req.Answers)
	observability.EvaluationsTotal().WithLabelValues(quizStrategyLabel, string(result.Label)).Inc()
	observability.EvaluationScore().WithLabelValues(quizStrategyLabel).Observe(float64(result.Percentage))
	span.SetAttributes(
		attribute.Int("quiz.correct", result.Correct),
		attribute.Int("quiz.total", result.Total),
	)
	span.SetStatus(codes.Ok, "graded")

	s.logger.Debug().
		Str("scenario_id", req.ScenarioID).
		Int("correct", result.Correct).
		Int("total", result.Total).
		Msg("quiz graded")

	return dto.NewQuizResultResponse(req.ScenarioID, result), nil
}

// resolveStrategy picks the request's strategy, then the scenario's, then the configured default.
func (s *evaluationService) resolveStrategy(requested, scenario string) (evaluation.Strategy, error) {
	name := requested
	if name == "" {
		name = scenario
	}
	if name == "" {
		name = s.defaultStrategy
	}
	return evaluation.StrategyByName(name)
}

func (s *evaluationService) record(span trace.Span, result evaluation.Result) {
	strategy := string(result.Strategy)
	observability.EvaluationsTotal().WithLabelValues(strategy, string(result.Label)).Inc()
	observability.EvaluationScore().WithLabelValues(strategy).Observe(float64(result.TotalScore))

	span.SetAttributes(
		attribute.String("evaluation.strategy", strategy),
		attribute.Int("evaluation.total_score", result.TotalScore),
		attribute.Int("evaluation.criteria", len(result.CriteriaScores)),
	)
	span.SetStatus(codes.Ok, "evaluated")
}

func (s *evaluationService) mapLookupError(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return err
}
