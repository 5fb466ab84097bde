package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/usecase"
	"patient-record-manager/pkg/response"
	"patient-record-manager/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientRouter(uc *fakePatientUsecase) *mux.Router {
	h := NewPatientHandler(uc, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/patients", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/patients", h.GetAll).Methods(http.MethodGet)
	r.HandleFunc("/patients/seed", h.Seed).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}", h.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response.Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

const validPatientJSON = `{
	"first_name": "Asha",
	"last_name": "Kumar",
	"phone": "+919876543210",
	"date_of_birth": "1990-01-31",
	"address": "4 Residency Road",
	"gender": "Prefer not to say",
	"blood_type": "AB-"
}`

func TestPatientHandler_Create(t *testing.T) {
	uc := &fakePatientUsecase{}
	rec, resp := do(t, patientRouter(uc), http.MethodPost, "/patients", validPatientJSON)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, uc.registered)
	assert.Equal(t, "AB-", uc.registered.BloodType)
}

func TestPatientHandler_CreateValidation(t *testing.T) {
	uc := &fakePatientUsecase{}
	body := `{"first_name":"A","last_name":"Kumar","phone":"123","date_of_birth":"1990-01-31","address":"x","gender":"Robot","email":"bad"}`
	rec, resp := do(t, patientRouter(uc), http.MethodPost, "/patients", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.registered)

	errs, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"first_name", "phone", "address", "gender", "email"} {
		assert.Contains(t, errs, field)
	}

	rec, _ = do(t, patientRouter(uc), http.MethodPost, "/patients", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatientHandler_CreateEngineError(t *testing.T) {
	uc := &fakePatientUsecase{err: errors.New("database is locked")}
	rec, resp := do(t, patientRouter(uc), http.MethodPost, "/patients", validPatientJSON)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "database is locked", resp.Error)
}

func TestPatientHandler_GetAll(t *testing.T) {
	uc := &fakePatientUsecase{patients: map[int64]*dto.PatientResponse{1: {ID: 1}}}
	rec, resp := do(t, patientRouter(uc), http.MethodGet, "/patients?page=2&limit=10", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, uc.page)

	_, resp = do(t, patientRouter(uc), http.MethodGet, "/patients", "")
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.Limit)

	_, resp = do(t, patientRouter(uc), http.MethodGet, "/patients?page=-3&limit=500", "")
	wantPage, wantLimit := usecase.NormalizePage(-3, 500)
	assert.Equal(t, wantPage, resp.Meta.Page)
	assert.Equal(t, wantLimit, resp.Meta.Limit)
	assert.Equal(t, wantLimit, uc.limit)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestPatientHandler_GetByID(t *testing.T) {
	uc := &fakePatientUsecase{patients: map[int64]*dto.PatientResponse{7: {ID: 7}}}

	rec, _ := do(t, patientRouter(uc), http.MethodGet, "/patients/7", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, patientRouter(uc), http.MethodGet, "/patients/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.err = usecase.ErrPatientNotFound
	rec, _ = do(t, patientRouter(uc), http.MethodGet, "/patients/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatientHandler_Delete(t *testing.T) {
	uc := &fakePatientUsecase{}
	rec, _ := do(t, patientRouter(uc), http.MethodDelete, "/patients/42", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{42}, uc.deleted)
}

func TestPatientHandler_Seed(t *testing.T) {
	uc := &fakePatientUsecase{}

	rec, _ := do(t, patientRouter(uc), http.MethodPost, "/patients/seed", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 10, uc.seeded)

	rec, _ = do(t, patientRouter(uc), http.MethodPost, "/patients/seed", `{"count": 25}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 25, uc.seeded)

	rec, _ = do(t, patientRouter(uc), http.MethodPost, "/patients/seed", `{"count": 5000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
