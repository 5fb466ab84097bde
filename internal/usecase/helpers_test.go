package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"patient-record-manager/config"
	"patient-record-manager/internal/domain/entity"
	domainRepo "patient-record-manager/internal/domain/repository"
	"patient-record-manager/internal/infrastructure/database"
	"patient-record-manager/internal/repository"
	"patient-record-manager/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	db             *gorm.DB
	log            *logrus.Logger
	hook           *test.Hook
	patientRepo    domainRepo.PatientRepository
	queryRepo      domainRepo.QueryRepository
	savedQueryRepo domainRepo.SavedQueryRepository
	audit          service.AuditService
}

func setupEnv(t *testing.T) *testEnv {
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

	log, hook := test.NewNullLogger()
	feed := service.NewChangeFeed()

	return &testEnv{
		db:             db,
		log:            log,
		hook:           hook,
		patientRepo:    repository.NewPatientRepository(db, feed),
		queryRepo:      repository.NewQueryRepository(db, feed),
		savedQueryRepo: repository.NewSavedQueryFileRepository(afero.NewMemMapFs(), "saved.json", entity.SavedQueriesKey, log),
		audit:          service.NewAuditService(log),
	}
}

func (e *testEnv) patientUsecase() *patientUsecase {
	uc := NewPatientUsecase(e.log, e.patientRepo, service.NewPatientGenerator(11, func() time.Time { return fixedNow }), e.audit, 10).(*patientUsecase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (e *testEnv) queryUsecase() QueryUsecase {
	return NewQueryUsecase(e.log, entity.DialectSQLite, e.queryRepo, e.savedQueryRepo, e.audit)
}

func (e *testEnv) dropPatients(t *testing.T) {
	t.Helper()
	require.NoError(t, e.db.Exec("DROP TABLE patients").Error)
}
