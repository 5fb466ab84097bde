package repository

import (
	"context"

	"patient-record-manager/internal/domain/entity"
)

type PatientRepository interface {
	Insert(ctx context.Context, patient *entity.Patient) (int64, error)
	BulkInsert(ctx context.Context, patients []entity.Patient) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	FindAll(ctx context.Context, limit, offset int) ([]entity.Patient, int64, error)
	Count(ctx context.Context) (int64, error)
}
