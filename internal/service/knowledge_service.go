package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
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
	// ErrKnowledgeNotFound indicates the knowledge entry does not exist.
	ErrKnowledgeNotFound = errors.New("knowledge entry not found")
	// ErrKnowledgeEmpty indicates nothing usable remained after sanitising the entry.
	ErrKnowledgeEmpty = errors.New("knowledge entry is empty after sanitising")
)

// KnowledgeService manages the sales knowledge base.
type KnowledgeService interface {
	List(ctx context.Context, filter dto.KnowledgeFilter) ([]dto.KnowledgeResponse, error)
	Create(ctx context.Context, req dto.KnowledgeCreateRequest) (dto.KnowledgeResponse, error)
	Delete(ctx context.Context, id string) error
}

type knowledgeService struct {
	repo      repository.KnowledgeRepository
	validator *validator.Validate
	strict    *bluemonday.Policy
	content   *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewKnowledgeService constructs the knowledge base service.
func NewKnowledgeService(repo repository.KnowledgeRepository, validator *validator.Validate, logger zerolog.Logger) KnowledgeService {
	return &knowledgeService{
		repo:      repo,
		validator: validator,
		strict:    bluemonday.StrictPolicy(),
		content:   bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "knowledge_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *knowledgeService) List(ctx context.Context, filter dto.KnowledgeFilter) ([]dto.KnowledgeResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]models.KnowledgeEntry, 0, len(entries))
	for _, entry := range entries {
		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}
		if search != "" && !entryMatches(entry, search) {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return dto.NewKnowledgeResponses(filtered), nil
}

func (s *knowledgeService) Create(ctx context.Context, req dto.KnowledgeCreateRequest) (dto.KnowledgeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.KnowledgeResponse{}, err
	}

	entry := models.KnowledgeEntry{
		ID:        uuid.NewString(),
		Title:     plainText(s.strict, req.Title),
		Category:  plainText(s.strict, req.Category),
		Content:   strings.TrimSpace(s.content.Sanitize(req.Content)),
		Tags:      s.sanitizeTags(req.Tags),
		Author:    plainText(s.strict, req.Author),
		CreatedAt: s.now(),
	}
	if entry.Title == "" || entry.Content == "" || entry.Category == "" {
		return dto.KnowledgeResponse{}, ErrKnowledgeEmpty
	}

	if err := s.repo.Put(ctx, entry.ID, entry); err != nil {
		return dto.KnowledgeResponse{}, err
	}

	s.logger.Info().Str("entry_id", entry.ID).Str("category", entry.Category).Msg("knowledge entry created")
	return dto.NewKnowledgeResponse(entry), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrKnowledgeNotFound, id)
		}
		return err
	}
	s.logger.Info().Str("entry_id", id).Msg("knowledge entry deleted")
	return nil
}

func (s *knowledgeService) sanitizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(plainText(s.strict, tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}

func entryMatches(entry models.KnowledgeEntry, search string) bool {
	if strings.Contains(strings.ToLower(entry.Title), search) || strings.Contains(strings.ToLower(entry.Content), search) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(tag, search) {
			return true
		}
	}
	return false
}
