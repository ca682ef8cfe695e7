package models

import "time"

// Dialogue message senders.
const (
	DialogueSenderCoach   = "ai"
	DialogueSenderLearner = "user"
)

// DialogueMessage is one line of a practice dialogue.
type DialogueMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Matched   []string  `json:"matched,omitempty"`
	Score     int       `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DialogueSession tracks a learner working through a scenario's dialogue objective.
type DialogueSession struct {
	ID         string            `json:"id"`
	ScenarioID string            `json:"scenario_id"`
	Learner    string            `json:"learner"`
	Progress   int               `json:"progress"`
	Completed  bool              `json:"completed"`
	FinalScore int               `json:"final_score"`
	Turns      int               `json:"turns"`
	Messages   []DialogueMessage `json:"messages"`
	StartedAt  time.Time         `json:"started_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
