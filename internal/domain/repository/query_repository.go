package repository

import (
	"context"

	"patient-record-manager/internal/domain/entity"
)

// QueryRepository runs caller supplied SQL against the engine unmodified.
type QueryRepository interface {
	Execute(ctx context.Context, query string) (*entity.QueryResult, error)
	// DependentTables asks the engine which base tables a read-only query
	// reads, with views expanded. An empty result means they are unknown.
	DependentTables(ctx context.Context, query string) ([]string, error)
}
