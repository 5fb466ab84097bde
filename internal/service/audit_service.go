package service

import (
	"context"
	"time"

	"patient-record-manager/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{})
	LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{})
	LogEvent(ctx context.Context, action string, entityName string, details interface{})
}

type auditService struct {
	log *logrus.Logger
	now func() time.Time
}

// NewAuditService writes the audit trail as structured log entries.
func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log, now: time.Now}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) {
	s.write(entity.AuditEntry{Action: action, Entity: entityName, EntityID: entityID, NewValue: newValue})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) {
	s.write(entity.AuditEntry{Action: action, Entity: entityName, EntityID: entityID, OldValue: oldValue})
}

// LogEvent logs an action that is not tied to a single row.
func (s *auditService) LogEvent(ctx context.Context, action string, entityName string, details interface{}) {
	s.write(entity.AuditEntry{Action: action, Entity: entityName, NewValue: details})
}

func (s *auditService) write(e entity.AuditEntry) {
	e.At = s.now()
	fields := logrus.Fields{
		"audit":  true,
		"action": e.Action,
		"entity": e.Entity,
		"at":     e.At.UTC().Format(time.RFC3339),
	}
	if e.EntityID != "" {
		fields["entity_id"] = e.EntityID
	}
	if e.OldValue != nil {
		fields["old_value"] = e.OldValue
	}
	if e.NewValue != nil {
		fields["new_value"] = e.NewValue
	}
	s.log.WithFields(fields).Info("audit")
}
