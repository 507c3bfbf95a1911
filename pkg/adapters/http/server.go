// Package http exposes the problem catalog and its solutions over a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/internal/service"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

// Service defines the operations served over HTTP.
type Service interface {
	Problems() []problems.Problem
	Build(ctx context.Context, name string, opts ...markov.Option) (markov.Runner, error)
	Solve(ctx context.Context, name string, opts ...markov.Option) (*service.Outcome, error)
	Solution(ctx context.Context, name string) (*domain.Solution, error)
	Solved(ctx context.Context) ([]string, error)
}

// Server holds the handlers of the API.
type Server struct {
	Service Service
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics serves the given gatherer on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(o *options) {
		o.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the service.
func NewHandler(svc Service, opts ...Option) http.Handler {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	server := &Server{Service: svc, Logger: o.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/problems", server.ListProblems)
	r.Route("/problems/{name}", func(r chi.Router) {
		r.Get("/", server.GetProblem)
		r.Post("/solve", server.SolveProblem)
		r.Get("/solution", server.GetSolution)
		r.Get("/graph", server.GetGraph)
	})
	r.Get("/solutions", server.ListSolutions)
	if o.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProblemDetail describes an explored problem.
type ProblemDetail struct {
	problems.Problem
	States      int      `json:"states"`
	Transitions int      `json:"transitions"`
	Actions     []string `json:"actions"`
}

// SolveResponse is the body of a solve.
type SolveResponse struct {
	Converged bool             `json:"converged"`
	Solution  *domain.Solution `json:"solution"`
}

// ListProblems handles GET /problems.
func (s *Server) ListProblems(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Problems())
}

// GetProblem handles GET /problems/{name}.
func (s *Server) GetProblem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	runner, err := s.Service.Build(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	p, _ := problems.Lookup(name)
	view := runner.View()
	detail := ProblemDetail{
		Problem:     p,
		States:      view.Len(),
		Transitions: view.NumTransitions(),
	}
	for _, id := range view.ActionSet() {
		detail.Actions = append(detail.Actions, id.Label)
	}
	s.writeJSON(w, http.StatusOK, detail)
}

// SolveProblem handles POST /problems/{name}/solve?discount=&tolerance=&max_iterations=.
func (s *Server) SolveProblem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	opts, err := solveOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, err := s.Service.Solve(r.Context(), name, opts...)
	if err != nil && !errors.Is(err, domain.ErrNotConverged) {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SolveResponse{
		Converged: out.Result.Converged,
		Solution:  out.Solution,
	})
}

// GetSolution handles GET /problems/{name}/solution.
func (s *Server) GetSolution(w http.ResponseWriter, r *http.Request) {
	sol, err := s.Service.Solution(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sol)
}

// GetGraph handles GET /problems/{name}/graph. The stored policy, if any, is drawn over it.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	runner, err := s.Service.Build(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.Overlay
	if sol, err := s.Service.Solution(r.Context(), name); err == nil && len(sol.Policy) == runner.View().Len() {
		overlay = &graph.Overlay{Policy: policy.New(sol.Policy)}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(graph.GenerateMermaid(runner.View(), overlay))); err != nil {
		s.Logger.Error("GetGraph write failed", "error", err)
	}
}

// ListSolutions handles GET /solutions.
func (s *Server) ListSolutions(w http.ResponseWriter, r *http.Request) {
	names, err := s.Service.Solved(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"name": "markov", "version": markov.Version})
}

func solveOptions(r *http.Request) ([]markov.Option, error) {
	q := r.URL.Query()
	var opts []markov.Option
	if v := q.Get("discount"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidConfig, err)
		}
		opts = append(opts, markov.WithDiscount(f))
	}
	if v := q.Get("tolerance"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidConfig, err)
		}
		opts = append(opts, markov.WithTolerance(f))
	}
	if v := q.Get("max_iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidConfig, err)
		}
		opts = append(opts, markov.WithMaxIterations(n))
	}
	return opts, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownProblem), errors.Is(err, domain.ErrSolutionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStateLimit):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	} else {
		s.Logger.Warn("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
