package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit session states for a warehouse. Transitions are driven exclusively
// by the audit-control operation (initiate/close/reset).
const (
	AuditStatusNotStarted = "not_started"
	AuditStatusInProgress = "in_progress"
	AuditStatusCompleted  = "completed"
)

type Warehouse struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	OrganizationID   uuid.UUID       `json:"organization_id" db:"organization_id"`
	Name             string          `json:"name" db:"name"`
	Code             string          `json:"code" db:"code"`
	Location         *string         `json:"location" db:"location"`
	Address          *string         `json:"address" db:"address"`
	Status           string          `json:"status" db:"status"`
	AuditStatus      string          `json:"audit_status" db:"audit_status"`
	AuditInitiatedBy *uuid.UUID      `json:"audit_initiated_by" db:"audit_initiated_by"`
	AuditInitiatedAt *time.Time      `json:"audit_initiated_at" db:"audit_initiated_at"`
	// ChecklistQuestions, when non-empty, fully replaces the active
	// template's items for this warehouse.
	ChecklistQuestions []ChecklistItem `json:"checklist_questions,omitempty" db:"checklist_questions"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}
