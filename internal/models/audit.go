package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry - запись журнала действий в консоли
type AuditEntry struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)
