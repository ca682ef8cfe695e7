package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/evaluation"
	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/store"
)

var (
	// ErrDialogueNotFound indicates the session does not exist or has expired.
	ErrDialogueNotFound = errors.New("dialogue session not found")
	// ErrDialogueUnavailable indicates the scenario has no dialogue script.
	ErrDialogueUnavailable = errors.New("scenario has no dialogue script")
	// ErrDialogueCompleted indicates the session objective is already complete.
	ErrDialogueCompleted = errors.New("dialogue session already completed")
)

// DialogueService runs scripted dialogue practice sessions.
type DialogueService interface {
	Start(ctx context.Context, req dto.DialogueStartRequest) (dto.DialogueSessionResponse, error)
	Reply(ctx context.Context, id string, req dto.DialogueReplyRequest) (dto.DialogueSessionResponse, error)
	Get(ctx context.Context, id string) (dto.DialogueSessionResponse, error)
}

type dialogueService struct {
	sessions  repository.DialogueSessionRepository
	scenarios repository.ScenarioRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewDialogueService constructs the dialogue practice service.
func NewDialogueService(sessions repository.DialogueSessionRepository, scenarios repository.ScenarioRepository, validator *validator.Validate, logger zerolog.Logger) DialogueService {
	return &dialogueService{
		sessions:  sessions,
		scenarios: scenarios,
		validator: validator,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "dialogue_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *dialogueService) Start(ctx context.Context, req dto.DialogueStartRequest) (dto.DialogueSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DialogueSessionResponse{}, err
	}

	scenario, err := s.script(ctx, req.ScenarioID)
	if err != nil {
		return dto.DialogueSessionResponse{}, err
	}

	now := s.now()
	session := models.DialogueSession{
		ID:         uuid.NewString(),
		ScenarioID: scenario.ID,
		Learner:    plainText(s.policy, req.Learner),
		Messages: []models.DialogueMessage{{
			Sender:    models.DialogueSenderCoach,
			Content:   scenario.Dialogue.Opening,
			Timestamp: now,
		}},
		StartedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Put(ctx, session.ID, session); err != nil {
		return dto.DialogueSessionResponse{}, err
	}

	s.logger.Info().Str("session_id", session.ID).Str("scenario_id", scenario.ID).Msg("dialogue started")
	return dto.NewDialogueSessionResponse(session, scenario.Dialogue), nil
}

// Reply scores the learner's line against the objective keywords and appends the next
// scripted line. Scripted replies rotate in order.
func (s *dialogueService) Reply(ctx context.Context, id string, req dto.DialogueReplyRequest) (dto.DialogueSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DialogueSessionResponse{}, err
	}

	session, err := s.session(ctx, id)
	if err != nil {
		return dto.DialogueSessionResponse{}, err
	}
	if session.Completed {
		return dto.DialogueSessionResponse{}, ErrDialogueCompleted
	}

	scenario, err := s.script(ctx, session.ScenarioID)
	if err != nil {
		return dto.DialogueSessionResponse{}, err
	}
	script := scenario.Dialogue

	text := strings.TrimSpace(req.Message)
	turn := evaluation.ScoreTurn(text, script.Keywords, session.Progress)
	now := s.now()

	session.Messages = append(session.Messages, models.DialogueMessage{
		Sender:    models.DialogueSenderLearner,
		Content:   plainText(s.policy, text),
		Matched:   turn.Matched,
		Score:     turn.Score,
		Timestamp: now,
	})
	session.Messages = append(session.Messages, models.DialogueMessage{
		Sender:    models.DialogueSenderCoach,
		Content:   script.Replies[session.Turns%len(script.Replies)],
		Timestamp: now,
	})
	session.Turns++
	session.Progress = turn.Progress
	session.UpdatedAt = now
	if turn.Complete {
		session.Completed = true
		session.FinalScore = turn.Score
	}

	if err := s.sessions.Put(ctx, session.ID, session); err != nil {
		return dto.DialogueSessionResponse{}, err
	}

	event := s.logger.Debug()
	if session.Completed {
		event = s.logger.Info()
	}
	event.Str("session_id", session.ID).
		Int("progress", session.Progress).
		Bool("completed", session.Completed).
		Int("turn_score", turn.Score).
		Msg("dialogue turn scored")

	return dto.NewDialogueSessionResponse(session, script), nil
}

func (s *dialogueService) Get(ctx context.Context, id string) (dto.DialogueSessionResponse, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return dto.DialogueSessionResponse{}, err
	}

	var script *models.DialogueScript
	if scenario, err := s.scenarios.Get(ctx, session.ScenarioID); err == nil {
		script = scenario.Dialogue
	}
	return dto.NewDialogueSessionResponse(session, script), nil
}

func (s *dialogueService) session(ctx context.Context, id string) (models.DialogueSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DialogueSession{}, fmt.Errorf("%w: %s", ErrDialogueNotFound, id)
		}
		return models.DialogueSession{}, err
	}
	return session, nil
}

func (s *dialogueService) script(ctx context.Context, scenarioID string) (models.Scenario, error) {
	scenario, err := s.scenarios.Get(ctx, scenarioID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
		}
		return models.Scenario{}, err
	}
	if !scenario.HasDialogue() || len(scenario.Dialogue.Replies) == 0 {
		return models.Scenario{}, fmt.Errorf("%w: %s", ErrDialogueUnavailable, scenarioID)
	}
	return scenario, nil
}
