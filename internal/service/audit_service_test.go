package service

import (
	"context"
	"testing"
	"time"

	"patient-record-manager/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_WritesStructuredEntries(t *testing.T) {
	log, hook := test.NewNullLogger()
	svc := &auditService{log: log, now: func() time.Time { return fixedNow }}

	svc.LogCreate(context.Background(), entity.AuditActionPatientCreate, entity.PatientTable, "7", map[string]string{"gender": "Female"})
	svc.LogDelete(context.Background(), entity.AuditActionPatientDelete, entity.PatientTable, "7", nil)
	svc.LogEvent(context.Background(), entity.AuditActionPatientSeed, entity.PatientTable, map[string]int{"count": 10})

	entries := hook.AllEntries()
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, logrus.InfoLevel, first.Level)
	assert.Equal(t, entity.AuditActionPatientCreate, first.Data["action"])
	assert.Equal(t, "7", first.Data["entity_id"])
	assert.Equal(t, "2025-03-15T10:00:00Z", first.Data["at"])
	assert.Contains(t, first.Data, "new_value")

	assert.NotContains(t, entries[1].Data, "old_value")
	assert.NotContains(t, entries[2].Data, "entity_id")
}
