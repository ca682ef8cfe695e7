package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/store"
)

var (
	// ErrAppealNotFound indicates the appeal does not exist.
	ErrAppealNotFound = errors.New("appeal not found")
	// ErrAppealReviewed indicates the appeal already has a decision.
	ErrAppealReviewed = errors.New("appeal already reviewed")
	// ErrAppealScoreRequired indicates an approval without a replacement score.
	ErrAppealScoreRequired = errors.New("approving an appeal requires a new score")
)

// Review decisions.
const (
	AppealDecisionApprove = "approve"
	AppealDecisionReject  = "reject"
)

// AppealService handles score appeals and their review.
type AppealService interface {
	Submit(ctx context.Context, req dto.AppealSubmitRequest) (dto.AppealResponse, error)
	List(ctx context.Context, filter dto.AppealFilter) ([]dto.AppealResponse, error)
	Review(ctx context.Context, id string, req dto.AppealReviewRequest) (dto.AppealResponse, error)
}

type appealService struct {
	repo      repository.AppealRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAppealService constructs the appeal workflow service.
func NewAppealService(repo repository.AppealRepository, validator *validator.Validate, logger zerolog.Logger) AppealService {
	return &appealService{
		repo:      repo,
		validator: validator,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "appeal_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *appealService) Submit(ctx context.Context, req dto.AppealSubmitRequest) (dto.AppealResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AppealResponse{}, err
	}

	appeal := models.Appeal{
		ID:            uuid.NewString(),
		Student:       s.clean(req.Student),
		Session:       s.clean(req.Session),
		OriginalScore: req.OriginalScore,
		ScoreItem:     s.clean(req.ScoreItem),
		Reason:        s.clean(req.Reason),
		Status:        models.AppealStatusPending,
		SubmittedAt:   s.now(),
	}

	if err := s.repo.Put(ctx, appeal.ID, appeal); err != nil {
		return dto.AppealResponse{}, err
	}

	s.logger.Info().Str("appeal_id", appeal.ID).Str("score_item", appeal.ScoreItem).Msg("appeal submitted")
	return dto.NewAppealResponse(appeal), nil
}

func (s *appealService) List(ctx context.Context, filter dto.AppealFilter) ([]dto.AppealResponse, error) {
	appeals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Appeal, 0, len(appeals))
	for _, appeal := range appeals {
		if filter.Status != "" && appeal.Status != filter.Status {
			continue
		}
		if filter.Student != "" && appeal.Student != filter.Student {
			continue
		}
		filtered = append(filtered, appeal)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})

	return dto.NewAppealResponses(filtered), nil
}

func (s *appealService) Review(ctx context.Context, id string, req dto.AppealReviewRequest) (dto.AppealResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AppealResponse{}, err
	}

	appeal, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.AppealResponse{}, fmt.Errorf("%w: %s", ErrAppealNotFound, id)
		}
		return dto.AppealResponse{}, err
	}
	if !appeal.IsPending() {
		return dto.AppealResponse{}, ErrAppealReviewed
	}

	switch req.Decision {
	case AppealDecisionApprove:
		if req.NewScore == nil {
			return dto.AppealResponse{}, ErrAppealScoreRequired
		}
		score := *req.NewScore
		appeal.Status = models.AppealStatusApproved
		appeal.NewScore = &score
	case AppealDecisionReject:
		appeal.Status = models.AppealStatusRejected
		appeal.NewScore = nil
	}

	reviewedAt := s.now()
	appeal.ReviewComment = s.clean(req.Comment)
	appeal.ReviewedAt = &reviewedAt

	if err := s.repo.Put(ctx, appeal.ID, appeal); err != nil {
		return dto.AppealResponse{}, err
	}

	s.logger.Info().Str("appeal_id", appeal.ID).Str("status", appeal.Status).Msg("appeal reviewed")
	return dto.NewAppealResponse(appeal), nil
}

func (s *appealService) clean(value string) string {
	return plainText(s.policy, value)
}
