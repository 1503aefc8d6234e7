package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization status values
const (
	OrgStatusActive   = "active"
	OrgStatusInactive = "inactive"
)

type Organization struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	ContactInfo *string   `json:"contact_info" db:"contact_info"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
