package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/infrastructure/export"
	"patient-record-manager/internal/usecase"
	"patient-record-manager/pkg/response"
	"patient-record-manager/pkg/validator"
)

type QueryHandler struct {
	queryUsecase usecase.QueryUsecase
	validator    *validator.CustomValidator
}

func NewQueryHandler(queryUsecase usecase.QueryUsecase, validator *validator.CustomValidator) *QueryHandler {
	return &QueryHandler{
		queryUsecase: queryUsecase,
		validator:    validator,
	}
}

// Execute runs arbitrary SQL. Engine errors are reported verbatim.
// @Summary Execute a query
// @Tags Query
// @Accept json
// @Produce json
// @Param request body dto.ExecuteQueryRequest true "Execute Query Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /query [post]
func (h *QueryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.ExecuteQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.queryUsecase.Execute(r.Context(), req.Query)
	if err != nil {
		if err == usecase.ErrEmptyQuery {
			response.BadRequest(w, "Query must not be empty")
			return
		}
		response.Error(w, http.StatusBadRequest, "Query failed", err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Query executed successfully", result)
}

// Export runs a query and returns the result as a file download.
func (h *QueryHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, err := h.queryUsecase.Export(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyQuery):
			response.BadRequest(w, "Query must not be empty")
		case errors.Is(err, export.ErrUnsupportedFormat):
			response.BadRequest(w, err.Error())
		default:
			response.Error(w, http.StatusBadRequest, "Query failed", err.Error())
		}
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

func (h *QueryHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	queries, err := h.queryUsecase.ListSavedQueries(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get saved queries")
		return
	}

	response.Success(w, http.StatusOK, "Saved queries retrieved successfully", queries)
}

func (h *QueryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	saved, err := h.queryUsecase.SaveQuery(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrInvalidSavedQuery {
			response.BadRequest(w, "Query name and SQL are required")
			return
		}
		response.InternalServerError(w, "Failed to save query")
		return
	}

	response.Success(w, http.StatusCreated, "Query saved successfully", saved)
}
