package http

import (
	"net/http"

	"patient-record-manager/internal/delivery/http/handler"
	"patient-record-manager/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	patientHandler    *handler.PatientHandler
	queryHandler      *handler.QueryHandler
	dashboardHandler  *handler.DashboardHandler
	liveHandler       *handler.LiveHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	queryHandler *handler.QueryHandler,
	dashboardHandler *handler.DashboardHandler,
	liveHandler *handler.LiveHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		patientHandler:    patientHandler,
		queryHandler:      queryHandler,
		dashboardHandler:  dashboardHandler,
		liveHandler:       liveHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient records
	api.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/patients/seed", r.patientHandler.Seed).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// SQL console
	api.HandleFunc("/query", r.queryHandler.Execute).Methods(http.MethodPost)
	api.HandleFunc("/query/export", r.queryHandler.Export).Methods(http.MethodPost)
	api.HandleFunc("/queries", r.queryHandler.ListSaved).Methods(http.MethodGet)
	api.HandleFunc("/queries", r.queryHandler.Save).Methods(http.MethodPost)

	// Analytics
	api.HandleFunc("/dashboard", r.dashboardHandler.Get).Methods(http.MethodGet)

	// Live queries (WebSocket)
	api.HandleFunc("/live", r.liveHandler.Subscribe).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
