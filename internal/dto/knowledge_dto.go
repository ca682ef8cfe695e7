package dto

import (
	"time"

	"github.com/noah-isme/salestrain-api/internal/models"
)

// KnowledgeFilter narrows knowledge base listings.
type KnowledgeFilter struct {
	Category string
	Search   string
}

// KnowledgeCreateRequest adds an entry to the knowledge base.
type KnowledgeCreateRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,max=64"`
	Content  string   `json:"content" validate:"required,max=20000"`
	Tags     []string `json:"tags" validate:"omitempty,max=20,dive,required,max=32"`
	Author   string   `json:"author" validate:"omitempty,max=120"`
}

// KnowledgeResponse serialises a knowledge base entry.
type KnowledgeResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewKnowledgeResponse converts a model into its response shape.
func NewKnowledgeResponse(entry models.KnowledgeEntry) KnowledgeResponse {
	return KnowledgeResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Category:  entry.Category,
		Content:   entry.Content,
		Tags:      nonNil(entry.Tags),
		Author:    entry.Author,
		CreatedAt: entry.CreatedAt,
	}
}

// NewKnowledgeResponses converts a slice of entries.
func NewKnowledgeResponses(entries []models.KnowledgeEntry) []KnowledgeResponse {
	responses := make([]KnowledgeResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewKnowledgeResponse(entry))
	}
	return responses
}
