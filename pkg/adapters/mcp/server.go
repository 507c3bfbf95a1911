// Package mcp exposes the problem catalog as Model Context Protocol tools and resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/internal/service"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

const solutionURI = "markov://solutions/"

// Service defines the operations required by the MCP server.
type Service interface {
	Problems() []problems.Problem
	Build(ctx context.Context, name string, opts ...markov.Option) (markov.Runner, error)
	Solve(ctx context.Context, name string, opts ...markov.Option) (*service.Outcome, error)
	Solution(ctx context.Context, name string) (*domain.Solution, error)
}

// SolveArgs are the arguments of solve_problem.
type SolveArgs struct {
	Name          string  `json:"name"`
	Discount      float64 `json:"discount,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

// ProblemArgs names a catalog problem.
type ProblemArgs struct {
	Name string `json:"name"`
}

// PolicyEntry is the decision taken at one state.
type PolicyEntry struct {
	State  string  `json:"state" jsonschema_description:"Display form of the state"`
	Action string  `json:"action,omitempty" jsonschema_description:"Chosen action, empty when no action is enabled"`
	Value  float64 `json:"value" jsonschema_description:"Optimal value of the state"`
}

// PolicyResponse provides a unified structure for solve_problem and get_policy.
type PolicyResponse struct {
	Name       string        `json:"name" jsonschema_description:"Problem name"`
	RunID      string        `json:"run_id" jsonschema_description:"Correlation ID of the solve"`
	Converged  bool          `json:"converged" jsonschema_description:"Whether value iteration reached the tolerance"`
	Iterations int           `json:"iterations" jsonschema_description:"Number of sweeps performed"`
	Policy     []PolicyEntry `json:"policy" jsonschema_description:"Decision and value per state"`
}

// Server wraps the service and exposes it as an MCP Server.
type Server struct {
	svc       Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		svc:       svc,
		logger:    logger,
		mcpServer: server.NewMCPServer("markov-mcp", strings.TrimSpace(markov.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_problems
	s.mcpServer.AddTool(mcp.NewTool("list_problems",
		mcp.WithDescription("List the problems that can be solved."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.svc.Problems())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: solve_problem
	solveTool := mcp.NewTool("solve_problem",
		mcp.WithDescription("Solve a problem with value iteration and store its policy."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Problem name, see list_problems")),
		mcp.WithNumber("discount", mcp.Description("Discount factor in (0, 1] (optional)")),
		mcp.WithNumber("tolerance", mcp.Description("Convergence tolerance (optional)")),
		mcp.WithNumber("max_iterations", mcp.Description("Cap on the number of sweeps (optional)")),
		mcp.WithOutputSchema[PolicyResponse](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	// TOOL: get_policy
	policyTool := mcp.NewTool("get_policy",
		mcp.WithDescription("Get the stored policy of a solved problem."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Problem name")),
		mcp.WithOutputSchema[PolicyResponse](),
	)
	s.mcpServer.AddTool(policyTool, mcp.NewStructuredToolHandler(s.handleGetPolicy))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the transition graph of a problem as a Mermaid flowchart."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Problem name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := s.mermaid(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args SolveArgs) (PolicyResponse, error) {
	var opts []markov.Option
	if args.Discount != 0 {
		opts = append(opts, markov.WithDiscount(args.Discount))
	}
	if args.Tolerance != 0 {
		opts = append(opts, markov.WithTolerance(args.Tolerance))
	}
	if args.MaxIterations != 0 {
		opts = append(opts, markov.WithMaxIterations(args.MaxIterations))
	}

	out, err := s.svc.Solve(ctx, args.Name, opts...)
	if err != nil && !errors.Is(err, domain.ErrNotConverged) {
		return PolicyResponse{}, fmt.Errorf("solve failed: %w", err)
	}
	if err != nil {
		s.logger.Warn("MCP Solve: stopped before convergence", "problem", args.Name, "iterations", out.Result.Iterations)
	}
	return toResponse(out.Solution, out.Result.Converged), nil
}

func (s *Server) handleGetPolicy(ctx context.Context, request mcp.CallToolRequest, args ProblemArgs) (PolicyResponse, error) {
	sol, err := s.svc.Solution(ctx, args.Name)
	if err != nil {
		return PolicyResponse{}, fmt.Errorf("no policy: %w", err)
	}
	return toResponse(sol, sol.Delta < sol.Tolerance), nil
}

func (s *Server) mermaid(ctx context.Context, name string) (string, error) {
	runner, err := s.svc.Build(ctx, name)
	if err != nil {
		return "", err
	}
	var overlay *graph.Overlay
	if sol, err := s.svc.Solution(ctx, name); err == nil && len(sol.Policy) == runner.View().Len() {
		overlay = &graph.Overlay{Policy: policy.New(sol.Policy)}
	}
	return graph.GenerateMermaid(runner.View(), overlay), nil
}

func toResponse(sol *domain.Solution, converged bool) PolicyResponse {
	resp := PolicyResponse{
		Name:       sol.Name,
		RunID:      sol.RunID,
		Converged:  converged,
		Iterations: sol.Iterations,
		Policy:     make([]PolicyEntry, len(sol.States)),
	}
	for i, state := range sol.States {
		resp.Policy[i] = PolicyEntry{State: state, Value: sol.Values[i]}
		if id, ok := sol.Best(i); ok {
			resp.Policy[i].Action = id.Label
		}
	}
	return resp
}

func (s *Server) registerResources() {
	// EXPOSE: markov://problems
	s.mcpServer.AddResource(mcp.NewResource("markov://problems", "Problem Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.svc.Problems())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "markov://problems",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: markov://solutions/{name}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(solutionURI+"{name}", "Stored Solution",
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := strings.TrimPrefix(request.Params.URI, solutionURI)
		sol, err := s.svc.Solution(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load solution: %w", err)
		}
		jsonBytes, err := json.Marshal(sol)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
