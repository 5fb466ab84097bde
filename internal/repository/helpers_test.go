package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"patient-record-manager/config"
	"patient-record-manager/internal/domain/entity"
	"patient-record-manager/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]string
}

func (n *recordingNotifier) Notify(tables ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, tables)
}

func (n *recordingNotifier) Calls() [][]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][]string(nil), n.calls...)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.NewConnection(cfg, "test")
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string {
	return &s
}

func newTestPatient(firstName string) entity.Patient {
	return entity.Patient{
		FirstName:        firstName,
		LastName:         "Rao",
		Phone:            "+911234567890",
		DateOfBirth:      "1990-05-01",
		Address:          "12 MG Road",
		RegistrationDate: "2024-06-01",
		Gender:           entity.GenderFemale,
	}
}
