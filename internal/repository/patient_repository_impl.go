package repository

import (
	"context"
	"errors"
	"strings"

	"patient-record-manager/internal/domain/entity"
	domainRepo "patient-record-manager/internal/domain/repository"

	"gorm.io/gorm"
)

var (
	insertPatientPrefix = "INSERT INTO patients (" + strings.Join(entity.PatientColumns, ", ") + ") VALUES "
	patientPlaceholders = "(" + strings.TrimSuffix(strings.Repeat("?, ", len(entity.PatientColumns)), ", ") + ")"
	insertPatientSQL    = insertPatientPrefix + patientPlaceholders + " RETURNING id"
)

const deletePatientSQL = "DELETE FROM patients WHERE id = ?"

type patientRepository struct {
	db       *gorm.DB
	notifier domainRepo.ChangeNotifier
}

func NewPatientRepository(db *gorm.DB, notifier domainRepo.ChangeNotifier) domainRepo.PatientRepository {
	return &patientRepository{db: db, notifier: notifier}
}

// Insert binds all non-identifier columns positionally and returns the
// engine assigned id.
func (r *patientRepository) Insert(ctx context.Context, patient *entity.Patient) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw(insertPatientSQL, patient.Values()...).Row().Scan(&id); err != nil {
		return 0, err
	}
	patient.ID = id
	r.notifier.Notify(entity.PatientTable)
	return id, nil
}

// BulkInsert submits every record as one multi-row statement, so the engine
// persists all of them or none.
func (r *patientRepository) BulkInsert(ctx context.Context, patients []entity.Patient) error {
	if len(patients) == 0 {
		return nil
	}

	sql, args := buildBulkInsert(patients)
	if err := r.db.WithContext(ctx).Exec(sql, args...).Error; err != nil {
		return err
	}
	r.notifier.Notify(entity.PatientTable)
	return nil
}

func buildBulkInsert(patients []entity.Patient) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(insertPatientPrefix)
	args := make([]interface{}, 0, len(patients)*len(entity.PatientColumns))
	for i := range patients {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(patientPlaceholders)
		args = append(args, patients[i].Values()...)
	}
	return sb.String(), args
}

// DeleteByID removes at most one row and reports whether one was removed.
// A missing id is not an error.
func (r *patientRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Exec(deletePatientSQL, id)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	r.notifier.Notify(entity.PatientTable)
	return true, nil
}

func (r *patientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Patient, int64, error) {
	var patients []entity.Patient
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Patient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("id ASC").Find(&patients).Error; err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Patient{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
