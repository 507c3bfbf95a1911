package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/aretw0/markov/pkg/adapters/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start a Model Context Protocol server",
		Long:  `Exposes list_problems, solve_problem, get_policy and get_graph as MCP tools, over stdio or SSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetInt("sse-port")

			store, err := a.store()
			if err != nil {
				return err
			}
			server := mcpAdapter.NewServer(a.service(store, nil), a.logger)

			if port == 0 {
				return server.ServeStdio()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.ServeSSE(ctx, port)
		},
	}
	cmd.Flags().Int("sse-port", 0, "Serve over SSE on this port instead of stdio")
	return cmd
}
