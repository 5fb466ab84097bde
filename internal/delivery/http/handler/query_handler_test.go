package handler

import (
	"errors"
	"net/http"
	"testing"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/infrastructure/export"
	"patient-record-manager/internal/usecase"
	"patient-record-manager/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryRouter(uc *fakeQueryUsecase) *mux.Router {
	h := NewQueryHandler(uc, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/query", h.Execute).Methods(http.MethodPost)
	r.HandleFunc("/query/export", h.Export).Methods(http.MethodPost)
	r.HandleFunc("/queries", h.ListSaved).Methods(http.MethodGet)
	r.HandleFunc("/queries", h.Save).Methods(http.MethodPost)
	return r
}

func TestQueryHandler_Execute(t *testing.T) {
	uc := &fakeQueryUsecase{result: &dto.QueryResultResponse{Columns: []dto.ColumnResponse{{Name: "n"}}}}
	rec, resp := do(t, queryRouter(uc), http.MethodPost, "/query", `{"query":"SELECT 1 AS n"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "SELECT 1 AS n", uc.executed)
}

func TestQueryHandler_ExecuteErrors(t *testing.T) {
	uc := &fakeQueryUsecase{err: errors.New(`near "SELEKT": syntax error`)}
	rec, resp := do(t, queryRouter(uc), http.MethodPost, "/query", `{"query":"SELEKT 1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `near "SELEKT": syntax error`, resp.Error)

	uc.err = usecase.ErrEmptyQuery
	rec, resp = do(t, queryRouter(uc), http.MethodPost, "/query", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query must not be empty", resp.Message)
}

func TestQueryHandler_Export(t *testing.T) {
	uc := &fakeQueryUsecase{file: &dto.ExportFile{Filename: "query-results.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("n\n\"1\"")}}
	rec, _ := do(t, queryRouter(uc), http.MethodPost, "/query/export", `{"query":"SELECT 1 AS n","format":"csv"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="query-results.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "n\n\"1\"", rec.Body.String())

	rec, _ = do(t, queryRouter(uc), http.MethodPost, "/query/export", `{"query":"SELECT 1","format":"pdf"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.err = export.ErrUnsupportedFormat
	rec, _ = do(t, queryRouter(uc), http.MethodPost, "/query/export", `{"query":"SELECT 1","format":"csv"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryHandler_SavedQueries(t *testing.T) {
	uc := &fakeQueryUsecase{}

	rec, resp := do(t, queryRouter(uc), http.MethodGet, "/queries", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, _ = do(t, queryRouter(uc), http.MethodPost, "/queries", `{"name":"All","query":"SELECT * FROM patients"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, uc.saved, 1)

	rec, _ = do(t, queryRouter(uc), http.MethodPost, "/queries", `{"name":"","query":"SELECT 1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, uc.saved, 1)
}
