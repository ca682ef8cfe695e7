package models

import "time"

// Appeal statuses.
const (
	AppealStatusPending  = "pending"
	AppealStatusApproved = "approved"
	AppealStatusRejected = "rejected"
)

// Appeal is a learner's request to have a practice score reviewed.
type Appeal struct {
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

// IsPending reports whether the appeal still awaits review.
func (a Appeal) IsPending() bool {
	return a.Status == AppealStatusPending
}
