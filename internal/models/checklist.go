package models

import (
	"time"

	"github.com/google/uuid"
)

// Checklist item response types
const (
	ResponseTypeYesNo  = "yes_no"
	ResponseTypeText   = "text"
	ResponseTypeNumber = "number"
	ResponseTypeNA     = "na"
)

// Checklist response document states
const (
	ChecklistStatusPending    = "pending"
	ChecklistStatusInProgress = "in_progress"
	ChecklistStatusCompleted  = "completed"
)

// ChecklistItem is one question in a template or a per-warehouse override.
type ChecklistItem struct {
	Category     string `json:"category"`
	Question     string `json:"question"`
	ResponseType string `json:"response_type"`
	Order        int    `json:"order"`
}

// ChecklistTemplate is the global questionnaire. Exactly one active
// template is expected system-wide; a warehouse may override its item
// list wholesale via Warehouse.ChecklistQuestions.
type ChecklistTemplate struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Items     []ChecklistItem `json:"items" db:"items"`
	IsActive  bool            `json:"is_active" db:"is_active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ChecklistAnswer is one answered question inside a response document.
// Response is a tagged union keyed by the item's response type:
// yes_no carries true/false/"N/A", text a string, number a numeric value.
type ChecklistAnswer struct {
	Category  string      `json:"category"`
	Question  string      `json:"question"`
	Response  interface{} `json:"response"`
	Notes     *string     `json:"notes,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChecklistResponse is the single response document per warehouse.
// Upsert semantics: found by warehouse id, items overwritten wholesale.
type ChecklistResponse struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	WarehouseID uuid.UUID         `json:"warehouse_id" db:"warehouse_id"`
	CompletedBy *uuid.UUID        `json:"completed_by" db:"completed_by"`
	Items       []ChecklistAnswer `json:"items" db:"items"`
	Status      string            `json:"status" db:"status"`
	CompletedAt *time.Time        `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

// QuestionBankItem is a reusable question used to seed templates.
type QuestionBankItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Category     string    `json:"category" db:"category"`
	Question     string    `json:"question" db:"question"`
	ResponseType string    `json:"response_type" db:"response_type"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
