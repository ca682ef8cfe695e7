package dto

import (
	"time"

	"github.com/noah-isme/salestrain-api/internal/models"
)

// AppealFilter narrows appeal listings.
type AppealFilter struct {
	Status  string
	Student string
}

// AppealSubmitRequest captures a learner's score appeal.
type AppealSubmitRequest struct {
	Student       string `json:"student" validate:"required,max=120"`
	Session       string `json:"session" validate:"required,max=200"`
	OriginalScore int    `json:"original_score" validate:"gte=0,lte=100"`
	ScoreItem     string `json:"score_item" validate:"required,max=120"`
	Reason        string `json:"reason" validate:"required,max=2000"`
}

// AppealReviewRequest approves or rejects an appeal.
type AppealReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	NewScore *int   `json:"new_score" validate:"omitempty,gte=0,lte=100"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}

// AppealResponse serialises an appeal.
type AppealResponse struct {
	ID            string     `json:"id"`
	Student       string     `json:"student"`
	Session       string     `json:"session"`
	OriginalScore int        `json:"original_score"`
	ScoreItem     string     `json:"score_item"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	NewScore      *int       `json:"new_score,omitempty"`
	ReviewComment string     `json:"review_comment,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

// NewAppealResponse converts a model into its response shape.
func NewAppealResponse(appeal models.Appeal) AppealResponse {
	return AppealResponse{
		ID:            appeal.ID,
		Student:       appeal.Student,
		Session:       appeal.Session,
		OriginalScore: appeal.OriginalScore,
		ScoreItem:     appeal.ScoreItem,
		Reason:        appeal.Reason,
		Status:        appeal.Status,
		NewScore:      appeal.NewScore,
		ReviewComment: appeal.ReviewComment,
		SubmittedAt:   appeal.SubmittedAt,
		ReviewedAt:    appeal.ReviewedAt,
	}
}

// NewAppealResponses converts a slice of appeals.
func NewAppealResponses(appeals []models.Appeal) []AppealResponse {
	responses := make([]AppealResponse, 0, len(appeals))
	for _, appeal := range appeals {
		responses = append(responses, NewAppealResponse(appeal))
	}
	return responses
}
