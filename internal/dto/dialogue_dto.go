package dto

import (
	"time"

	"github.com/noah-isme/salestrain-api/internal/models"
)

// DialogueStartRequest opens a practice dialogue for a scenario.
type DialogueStartRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required,max=64"`
	Learner    string `json:"learner" validate:"omitempty,max=120"`
}

// DialogueReplyRequest is the learner's next line.
type DialogueReplyRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// DialogueMessageResponse serialises one line of dialogue.
type DialogueMessageResponse struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Matched   []string  `json:"matched,omitempty"`
	Score     int       `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DialogueSessionResponse serialises a practice session.
type DialogueSessionResponse struct {
	ID         string                    `json:"id"`
	ScenarioID string                    `json:"scenario_id"`
	Learner    string                    `json:"learner,omitempty"`
	Role       string                    `json:"role,omitempty"`
	Objective  string                    `json:"objective,omitempty"`
	Hints      []string                  `json:"hints"`
	Progress   int                       `json:"progress"`
	Completed  bool                      `json:"completed"`
	FinalScore int                       `json:"final_score"`
	Turns      int                       `json:"turns"`
	Messages   []DialogueMessageResponse `json:"messages"`
	StartedAt  time.Time                 `json:"started_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// NewDialogueSessionResponse converts a session and its script into the response shape.
func NewDialogueSessionResponse(session models.DialogueSession, script *models.DialogueScript) DialogueSessionResponse {
	messages := make([]DialogueMessageResponse, 0, len(session.Messages))
	for _, message := range session.Messages {
		messages = append(messages, DialogueMessageResponse{
			Sender:    message.Sender,
			Content:   message.Content,
			Matched:   message.Matched,
			Score:     message.Score,
			Timestamp: message.Timestamp,
		})
	}

	response := DialogueSessionResponse{
		ID:         session.ID,
		ScenarioID: session.ScenarioID,
		Learner:    session.Learner,
		Hints:      []string{},
		Progress:   session.Progress,
		Completed:  session.Completed,
		FinalScore: session.FinalScore,
		Turns:      session.Turns,
		Messages:   messages,
		StartedAt:  session.StartedAt,
		UpdatedAt:  session.UpdatedAt,
	}
	if script != nil {
		response.Role = script.Role
		response.Objective = script.Objective
		response.Hints = nonNil(script.Hints)
	}
	return response
}
