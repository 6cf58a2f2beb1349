package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/export"
	"github.com/cloud-ru/loan-engine-go/internal/tools"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 16

// Server HTTP интерфейс к инструментам калькуляторов
type Server struct {
	tools tools.Registry
	log   *logrus.Logger
}

func New(registry tools.Registry, log *logrus.Logger) *Server {
	return &Server{tools: registry, log: log}
}

// Routes собирает маршруты и цепочку middleware
func (s *Server) Routes() http.Handler {
	standardMiddleware := alice.New(
		handlers.RecoveryHandler(handlers.RecoveryLogger(s.log), handlers.PrintRecoveryStack(false)),
		s.requestID,
		s.logRequest,
		secureHeaders,
	)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/tools", s.listTools).Methods("GET")
	api.HandleFunc("/tools/{name}", s.callTool).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", RequestIDHeader}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedOrigins([]string{"*"}),
	)

	return standardMiddleware.Then(cors(r))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"tools": s.tools.List()})
}

type errorResponse struct {
	Error      string                `json:"error"`
	Message    string                `json:"message,omitempty"`
	Violations validators.Violations `json:"violations,omitempty"`
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	tool, ok := s.tools[name]
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown_tool", Message: name})
		return
	}

	params := map[string]interface{}{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&params); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_request_body", Message: err.Error()})
		return
	}

	result, err := tool.Handler(r.Context(), params)
	if err != nil {
		var violations validators.Violations
		if errors.As(err, &violations) {
			s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation_error", Violations: violations})
			return
		}
		s.log.WithError(err).WithField("request_id", RequestID(r.Context())).Error("tool call failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "calculation_error", Message: err.Error()})
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		if schedule, ok := result.(*calculations.AmortizationResult); ok {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
			if err := export.WriteScheduleCSV(w, schedule.Schedule); err != nil {
				s.log.WithError(err).Error("csv export failed")
			}
			return
		}
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "csv_not_supported", Message: name})
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}
