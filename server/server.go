package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"employee-directory-backend/employee"
	"employee-directory-backend/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// maxBodyBytes bounds registration bodies.
const maxBodyBytes = 1 << 20

// Server is the local development HTTP surface over an employee.Store.
type Server struct {
	store          employee.Store
	logger         *zap.Logger
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	allowedOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request metrics into m and serves gatherer on /metrics.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithAllowedOrigins sets the CORS origins allowed to call the API.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// New creates a Server.
func New(store employee.Store, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.StripSlashes)
	router.Use(requestLogger(s.logger, s.metrics))
	if len(s.allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.NotFound(s.invalidPath)
	router.MethodNotAllowed(s.invalidPath)

	router.Get("/health", s.healthCheck)
	if s.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	router.Get("/api/employees", s.listEmployees)
	router.Get("/api/employees/{id}", s.getEmployee)
	router.Post("/api/employee/registration", s.registerEmployee)

	return router
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()["filterText"]
	if len(values) > 1 {
		// Multiple filterText values are not supported
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	filterText := ""
	if len(values) == 1 {
		filterText = values[0]
	}

	employees, err := s.store.List(r.Context(), filterText)
	if err != nil {
		s.logger.Error("Failed to load the employees", zap.String("filterText", filterText), zap.Error(err))
		s.internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, found, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load the employee", zap.String("id", id), zap.Error(err))
		s.internalError(w)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// registerEmployee always derives the id from name and age.
func (s *Server) registerEmployee(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := employee.ParseRegistration(body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	id := req.DerivedID()
	e := req.Employee(id)
	if err := s.store.Put(r.Context(), id, e); err != nil {
		s.logger.Error("Failed to store the employee", zap.String("id", id), zap.Error(err))
		s.internalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, employee.RegistrationResponse{
		Message:  employee.RegisteredMessage,
		Employee: e,
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) invalidPath(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Invalid path", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusBadRequest)
}

func (s *Server) internalError(w http.ResponseWriter) {
	writeMessage(w, http.StatusInternalServerError, employee.InternalErrorMessage)
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
