package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/logging"
	"github.com/aretw0/markov/internal/service"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/aretw0/markov/pkg/ports"
)

// app carries what every command needs once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "markov",
		Short: "markov solves Markov Decision Processes",
		Long: `markov explores every state reachable under a set of stochastic actions, then runs
value iteration to find the optimal value of each state and the policy achieving it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
			}
			level, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewWithFormat(cmd.ErrOrStderr(), level, cfg.Log.Format)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Settings file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newListCmd(a),
		newSolveCmd(a),
		newInspectCmd(a),
		newGraphCmd(a),
		newSimulateCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// store opens the configured solution store.
func (a *app) store() (ports.SolutionStore, error) {
	switch a.cfg.Store.Driver {
	case "redis":
		r := a.cfg.Store.Redis
		opts := []redis.Option{redis.WithTTL(r.TTL)}
		if r.Prefix != "" {
			opts = append(opts, redis.WithPrefix(r.Prefix))
		}
		return redis.New(r.Addr, r.Password, r.DB, opts...), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
	}
}

// service builds the service over store with the configured overrides.
func (a *app) service(store ports.SolutionStore, metrics *observability.Metrics) *service.Service {
	opts := []service.Option{
		service.WithLogger(a.logger),
		service.WithSolverOverrides(a.cfg.Solver),
		service.WithStateLimit(a.cfg.Server.StateLimit),
	}
	if metrics != nil {
		opts = append(opts, service.WithMetrics(metrics))
	}
	return service.New(store, opts...)
}

// rich reports whether output goes to a terminal.
func rich(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
