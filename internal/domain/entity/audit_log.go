package entity

import "time"

// AuditEntry is one structured audit trail record.
type AuditEntry struct {
	Action   string      `json:"action"`
	Entity   string      `json:"entity"`
	EntityID string      `json:"entity_id,omitempty"`
	OldValue interface{} `json:"old_value,omitempty"`
	NewValue interface{} `json:"new_value,omitempty"`
	At       time.Time   `json:"at"`
}

// Common audit actions
const (
	AuditActionPatientCreate = "patient.create"
	AuditActionPatientDelete = "patient.delete"
	AuditActionPatientSeed   = "patient.seed"
	AuditActionQueryExecute  = "query.execute"
	AuditActionQuerySave     = "query.save"
)
