package translation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound signals that no approved translation exists for a lookup.
// It is distinct from infrastructure errors so callers can tell "no
// translation" apart from "could not determine".
var ErrNotFound = errors.New("translation not found")

// Status tracks the moderation state of a translation row.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Translation is an approved (or moderated) phrase for a semantic key in
// one language.
type Translation struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Key          string    `json:"key" db:"key"`
	Intent       string    `json:"intent" db:"intent"`
	Context      string    `json:"context" db:"context"`
	LanguageCode string    `json:"language_code" db:"language_code"`
	Value        string    `json:"value" db:"value"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Source identifies where a lookup result came from.
type Source string

const (
	SourceSharedCache Source = "shared_cache"
	SourceLocalCache  Source = "local_cache"
	SourceStore       Source = "store"
)

// LookupResult is the outcome of a lookup. Found=false means no approved
// translation exists, which is an answer rather than an error.
type LookupResult struct {
	Key          string `json:"key"`
	Intent       string `json:"intent"`
	Context      string `json:"context"`
	LanguageCode string `json:"language_code"`
	Value        string `json:"value,omitempty"`
	Source       Source `json:"source,omitempty"`
	Found        bool   `json:"found"`
}

// CreateTranslationRequest represents the request to create a translation.
type CreateTranslationRequest struct {
	Key          string `json:"key" validate:"required"`
	LanguageCode string `json:"language_code" validate:"required"`
	Value        string `json:"value" validate:"required"`
	Status       Status `json:"status,omitempty"`
}

// UpdateTranslationRequest represents a partial update of a translation.
type UpdateTranslationRequest struct {
	Value  *string `json:"value,omitempty"`
	Status *Status `json:"status,omitempty"`
}
