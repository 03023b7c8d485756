package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/patient-seeder/internal/config"
	"github.com/jwalitptl/patient-seeder/internal/credentials"
	"github.com/jwalitptl/patient-seeder/internal/model"
	"github.com/jwalitptl/patient-seeder/pkg/logger"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	code := 0
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "seed-patients",
		Short:         "Seed Firestore with sample patient records",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}

			level, err := logger.ParseLevel(cfg.Logging.Level)
			if err != nil {
				return err
			}
			log := logger.NewLogger(&logger.Config{
				Level:  level,
				Output: stderr,
				JSON:   cfg.Logging.Format == "json",
			})

			env, err := credentials.EnvFromProcess()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			r := &runner{
				cfg:        cfg,
				env:        env,
				baseDir:    credentials.ExecutableDir(),
				stdout:     stdout,
				stderr:     stderr,
				logger:     log,
				patients:   model.DefaultPatients(),
				openRepo:   openFirestore,
				openEvents: openRedis,
			}
			*code = r.run(ctx)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetContext(context.Background())

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to a YAML config file")
	flags.String("collection", "patients", "target Firestore collection")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Duration("timeout", 30*time.Second, "deadline for the whole seed run")

	return cmd
}
