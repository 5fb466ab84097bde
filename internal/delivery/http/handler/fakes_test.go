package handler

import (
	"context"
	"io"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type fakePatientUsecase struct {
	registered *dto.CreatePatientRequest
	patients   map[int64]*dto.PatientResponse
	deleted    []int64
	seeded     int
	err        error
	page       int
	limit      int
}

func (f *fakePatientUsecase) Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = req
	return &dto.PatientResponse{ID: 1, FirstName: req.FirstName, LastName: req.LastName, RegistrationDate: "2025-03-15"}, nil
}

func (f *fakePatientUsecase) GetByID(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.patients[id], nil
}

func (f *fakePatientUsecase) GetAll(ctx context.Context, page, limit int) ([]dto.PatientResponse, int64, error) {
	f.page, f.limit = page, limit
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []dto.PatientResponse{}
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, 25, nil
}

func (f *fakePatientUsecase) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakePatientUsecase) BulkInsert(ctx context.Context, patients []entity.Patient) int {
	return len(patients)
}

func (f *fakePatientUsecase) Seed(ctx context.Context, count int) *dto.SeedPatientsResponse {
	if count < 1 {
		count = 10
	}
	f.seeded = count
	return &dto.SeedPatientsResponse{Requested: count, Inserted: count}
}

type fakeQueryUsecase struct {
	executed string
	result   *dto.QueryResultResponse
	err      error
	file     *dto.ExportFile
	saved    []dto.SaveQueryRequest
}

func (f *fakeQueryUsecase) Execute(ctx context.Context, query string) (*dto.QueryResultResponse, error) {
	f.executed = query
	return f.result, f.err
}

func (f *fakeQueryUsecase) Export(ctx context.Context, req *dto.ExportQueryRequest) (*dto.ExportFile, error) {
	return f.file, f.err
}

func (f *fakeQueryUsecase) ListSavedQueries(ctx context.Context) (*dto.SavedQueryListResponse, error) {
	return &dto.SavedQueryListResponse{DefaultQuery: entity.DefaultSQLQuery}, f.err
}

func (f *fakeQueryUsecase) SaveQuery(ctx context.Context, req *dto.SaveQueryRequest) (*dto.SavedQueryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, *req)
	return &dto.SavedQueryResponse{Name: req.Name, Query: req.Query}, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
