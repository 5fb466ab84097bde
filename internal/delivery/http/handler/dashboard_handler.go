package handler

import (
	"net/http"

	"patient-record-manager/internal/usecase"
	"patient-record-manager/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// Get always succeeds; failed metrics are reported as N/A.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", h.dashboardUsecase.Get(r.Context()))
}
