package repository

import (
	"context"

	"patient-record-manager/internal/domain/entity"
)

type SavedQueryRepository interface {
	FindAll(ctx context.Context) ([]entity.SavedQuery, error)
	Save(ctx context.Context, query entity.SavedQuery) error
}
