package usecase

import (
	"context"
	"errors"
	"strings"

	"patient-record-manager/internal/converter"
	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"
	"patient-record-manager/internal/domain/repository"
	"patient-record-manager/internal/infrastructure/export"
	"patient-record-manager/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyQuery        = errors.New("query must not be empty")
	ErrInvalidSavedQuery = errors.New("saved query needs both a name and a query")
)

type QueryUsecase interface {
	Execute(ctx context.Context, query string) (*dto.QueryResultResponse, error)
	Export(ctx context.Context, req *dto.ExportQueryRequest) (*dto.ExportFile, error)
	ListSavedQueries(ctx context.Context) (*dto.SavedQueryListResponse, error)
	SaveQuery(ctx context.Context, req *dto.SaveQueryRequest) (*dto.SavedQueryResponse, error)
}

type queryUsecase struct {
	log            *logrus.Logger
	dialect        entity.Dialect
	queryRepo      repository.QueryRepository
	savedQueryRepo repository.SavedQueryRepository
	auditService   service.AuditService
}

func NewQueryUsecase(
	log *logrus.Logger,
	dialect entity.Dialect,
	queryRepo repository.QueryRepository,
	savedQueryRepo repository.SavedQueryRepository,
	auditService service.AuditService,
) QueryUsecase {
	return &queryUsecase{
		log:            log,
		dialect:        dialect,
		queryRepo:      queryRepo,
		savedQueryRepo: savedQueryRepo,
		auditService:   auditService,
	}
}

// Execute runs query unmodified. Engine errors are returned as is so the
// caller sees the engine's own message.
func (u *queryUsecase) Execute(ctx context.Context, query string) (*dto.QueryResultResponse, error) {
	result, err := u.run(ctx, query)
	if err != nil {
		return nil, err
	}
	return converter.QueryResultToResponse(result), nil
}

// Export runs query and renders its result as a downloadable file.
func (u *queryUsecase) Export(ctx context.Context, req *dto.ExportQueryRequest) (*dto.ExportFile, error) {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	result, err := u.run(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	data, err := export.Render(format, result)
	if err != nil {
		u.log.Warnf("Failed to render %s export: %+v", format, err)
		return nil, err
	}

	return &dto.ExportFile{
		Filename:    format.Filename(),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// ListSavedQueries returns the built-in catalog followed by the user's queries.
func (u *queryUsecase) ListSavedQueries(ctx context.Context) (*dto.SavedQueryListResponse, error) {
	saved, err := u.savedQueryRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load saved queries: %+v", err)
		return nil, err
	}

	queries := converter.SavedQueriesToResponses(entity.DefaultQueries(u.dialect), true)
	queries = append(queries, converter.SavedQueriesToResponses(saved, false)...)

	return &dto.SavedQueryListResponse{
		DefaultQuery: entity.DefaultSQLQuery,
		Queries:      queries,
	}, nil
}

func (u *queryUsecase) SaveQuery(ctx context.Context, req *dto.SaveQueryRequest) (*dto.SavedQueryResponse, error) {
	q := entity.SavedQuery{Name: strings.TrimSpace(req.Name), Query: strings.TrimSpace(req.Query)}
	if q.Name == "" || q.Query == "" {
		return nil, ErrInvalidSavedQuery
	}

	if err := u.savedQueryRepo.Save(ctx, q); err != nil {
		u.log.Warnf("Failed to save query %q: %+v", q.Name, err)
		return nil, err
	}

	u.auditService.LogEvent(ctx, entity.AuditActionQuerySave, entity.SavedQueriesKey, map[string]string{"name": q.Name})

	return &dto.SavedQueryResponse{Name: q.Name, Query: q.Query}, nil
}

func (u *queryUsecase) run(ctx context.Context, query string) (*entity.QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	result, err := u.queryRepo.Execute(ctx, query)
	if err != nil {
		u.log.Warnf("Failed to execute query: %+v", err)
		return nil, err
	}

	u.auditService.LogEvent(ctx, entity.AuditActionQueryExecute, "query", map[string]interface{}{
		"query": query,
		"rows":  len(result.Rows),
	})
	return result, nil
}
