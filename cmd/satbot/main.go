// Command satbot solves SAT problems, either one DIMACS file at a time or
// as a long-running HTTP service.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satbot/satbot/bot"
	"github.com/satbot/satbot/config"
	"github.com/satbot/satbot/dimacs"
	"github.com/satbot/satbot/solver"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "satbot",
		Short:         "satbot is a CDCL SAT solver with an HTTP front end",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(solveCmd(), serveCmd())
	return cmd
}

func solveCmd() *cobra.Command {
	var (
		timeout time.Duration
		restart string
	)
	cmd := &cobra.Command{
		Use:   "solve [file.cnf]",
		Short: "Solve a DIMACS CNF problem from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "cannot open problem")
				}
				defer f.Close()
				in = f
			}
			pb, err := dimacs.Parse(in)
			if err != nil {
				return err
			}
			opts := solver.DefaultOptions()
			if restart != "" {
				opts.RestartPolicy = solver.RestartPolicy(restart)
			}
			s, err := solver.NewWithOptions(pb, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return dimacs.WriteResult(cmd.OutOrStdout(), s.Solve(ctx))
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the solve after this duration (0 means no limit)")
	cmd.Flags().StringVar(&restart, "restart", "", `restart policy, "luby" or "lbd"`)
	return cmd
}

func serveCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the satbot HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			cfg := config.Default()
			if cfgPath != "" {
				var err error
				if cfg, err = config.Load(cfgPath); err != nil {
					return err
				}
			}
			opts, err := cfg.Solver.Options()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := bot.NewService(log, opts, cfg.Server.SolveTimeout)
			return svc.Run(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a YAML configuration file")
	return cmd
}
