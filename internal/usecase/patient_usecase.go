package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"patient-record-manager/internal/converter"
	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"
	"patient-record-manager/internal/domain/repository"
	"patient-record-manager/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

const maxPageLimit = 100

type PatientUsecase interface {
	Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PatientResponse, error)
	GetAll(ctx context.Context, page, limit int) ([]dto.PatientResponse, int64, error)
	Delete(ctx context.Context, id int64) error
	BulkInsert(ctx context.Context, patients []entity.Patient) int
	Seed(ctx context.Context, count int) *dto.SeedPatientsResponse
}

type patientUsecase struct {
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	generator        *service.PatientGenerator
	auditService     service.AuditService
	defaultSeedCount int
	now              func() time.Time
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	generator *service.PatientGenerator,
	auditService service.AuditService,
	defaultSeedCount int,
) PatientUsecase {
	if defaultSeedCount < 1 {
		defaultSeedCount = 10
	}
	if defaultSeedCount > dto.MaxSeedCount {
		defaultSeedCount = dto.MaxSeedCount
	}
	return &patientUsecase{
		log:              log,
		patientRepo:      patientRepo,
		generator:        generator,
		auditService:     auditService,
		defaultSeedCount: defaultSeedCount,
		now:              time.Now,
	}
}

// Register stores a new patient. The registration date is always today,
// never taken from the request.
func (u *patientUsecase) Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Phone:              strings.TrimSpace(req.Phone),
		DateOfBirth:        req.DateOfBirth,
		Address:            strings.TrimSpace(req.Address),
		RegistrationDate:   u.now().Format(entity.DateLayout),
		NationalID:         optional(req.NationalID),
		Gender:             req.Gender,
		Email:              optional(req.Email),
		EmergencyContact:   optional(req.EmergencyContact),
		BloodType:          optional(req.BloodType),
		MedicalHistory:     optional(req.MedicalHistory),
		InsuranceProvider:  optional(req.InsuranceProvider),
		InsuranceNumber:    optional(req.InsuranceNumber),
		LanguagePreference: optional(req.LanguagePreference),
		Notes:              optional(req.Notes),
	}

	id, err := u.patientRepo.Insert(ctx, patient)
	if err != nil {
		u.log.Warnf("Failed to insert patient: %+v", err)
		return nil, err
	}
	patient.ID = id

	u.auditService.LogCreate(ctx, entity.AuditActionPatientCreate, entity.PatientTable, strconv.FormatInt(id, 10), nil)

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAll(ctx context.Context, page, limit int) ([]dto.PatientResponse, int64, error) {
	page, limit = NormalizePage(page, limit)
	offset := (page - 1) * limit

	patients, total, err := u.patientRepo.FindAll(ctx, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}

	return converter.PatientsToResponses(patients), total, nil
}

// Delete removes a patient; a missing id is not an error.
func (u *patientUsecase) Delete(ctx context.Context, id int64) error {
	deleted, err := u.patientRepo.DeleteByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return err
	}
	if !deleted {
		return nil
	}

	u.auditService.LogDelete(ctx, entity.AuditActionPatientDelete, entity.PatientTable, strconv.FormatInt(id, 10), nil)
	return nil
}

// BulkInsert stores all patients in one statement. Failures are logged and
// swallowed; the number of stored patients (0 or len(patients)) is returned.
func (u *patientUsecase) BulkInsert(ctx context.Context, patients []entity.Patient) int {
	if len(patients) == 0 {
		return 0
	}

	if err := u.patientRepo.BulkInsert(ctx, patients); err != nil {
		u.log.Errorf("Failed to bulk insert %d patients: %+v", len(patients), err)
		return 0
	}

	u.log.Infof("Inserted %d patients", len(patients))
	return len(patients)
}

// Seed generates count fake patients (the configured default when count < 1)
// and bulk inserts them. Callers validate count against dto.MaxSeedCount.
func (u *patientUsecase) Seed(ctx context.Context, count int) *dto.SeedPatientsResponse {
	if count < 1 {
		count = u.defaultSeedCount
	}

	inserted := u.BulkInsert(ctx, u.generator.GenerateN(count))
	if inserted > 0 {
		u.auditService.LogEvent(ctx, entity.AuditActionPatientSeed, entity.PatientTable, map[string]int{"count": inserted})
	}

	return &dto.SeedPatientsResponse{Requested: count, Inserted: inserted}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NormalizePage applies the default page and clamps limit to maxPageLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = entity.ItemsPerPage
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
