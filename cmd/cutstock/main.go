// Command cutstock is the CLI entry point, replacing the teacher's
// interactive bufio prompt loop (cmd/tube-designer/main.go) with a
// cobra.Command taking the prices and parts CSV files as positional
// arguments and the solve's tuning knobs as flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/heavybullets8/cutstock/internal/cuterr"
	"github.com/heavybullets8/cutstock/internal/engine"
	"github.com/heavybullets8/cutstock/internal/format"
	"github.com/heavybullets8/cutstock/internal/ingest"
	"github.com/heavybullets8/cutstock/internal/logging"
)

// exit codes distinguish how the run failed, so calling scripts can branch
// without scraping stderr text.
const (
	exitOK = iota
	exitInputMissing
	exitInputMalformed
	exitInfeasible
	exitSolverFailure
	exitUnexpected
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		formatFlag    string
		htmlPath      string
		epsilon       float64
		maxIterations int
		timeLimit     time.Duration
		verbose       bool
	)

	code := exitOK

	cmd := &cobra.Command{
		Use:   "cutstock <prices.csv> <parts.csv>",
		Short: "Compute a minimum-cost, minimum-waste cutting plan for a list of required cuts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := logging.New(cmd.ErrOrStderr(), level, logging.IsTerminal(os.Stderr))

			lvl, err := parseLevel(formatFlag)
			if err != nil {
				code = exitInputMalformed
				return err
			}

			stocks, err := ingest.LoadPrices(args[0])
			if err != nil {
				code = codeFor(err)
				return err
			}
			cuts, err := ingest.LoadParts(args[1])
			if err != nil {
				code = codeFor(err)
				return err
			}
			log.Info().Int("stock_options", len(stocks)).Int("required_cuts", len(cuts)).Msg("loaded input")

			cfg := engine.DefaultConfig()
			if epsilon > 0 {
				cfg.Epsilon = epsilon
			}
			if maxIterations > 0 {
				cfg.MaxColumnGenIterations = maxIterations
			}
			if timeLimit > 0 {
				cfg.IntegerSolveTimeLimit = timeLimit
			}

			eng := engine.New(cfg)
			ctx := context.Background()
			plan, err := eng.Optimize(ctx, stocks, cuts)
			if plan == nil && err != nil {
				code = codeFor(err)
				return err
			}
			if err != nil {
				// Non-fatal: a feasible plan was produced despite hitting a
				// cap or time limit.
				log.Warn().Err(err).Msg("solve completed with a caveat")
			}

			if err := format.Write(cmd.OutOrStdout(), plan, lvl); err != nil {
				code = exitUnexpected
				return err
			}

			if htmlPath != "" {
				f, err := os.Create(htmlPath)
				if err != nil {
					code = exitUnexpected
					return err
				}
				defer f.Close()
				if err := format.WriteHTML(f, plan); err != nil {
					code = exitUnexpected
					return err
				}
				log.Info().Str("path", htmlPath).Msg("wrote HTML cut ticket")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "collapsed", "report detail: simple, collapsed, or detailed")
	cmd.Flags().StringVar(&htmlPath, "html", "", "also write a self-contained HTML cut ticket to this path")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "reduced-cost tolerance for column generation (default 1e-6)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "column generation iteration cap (default 100)")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "integer master time budget (default 120s)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")

	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if code == exitOK {
			code = exitUnexpected
		}
		fmt.Fprintln(os.Stderr, "cutstock:", err)
		return code
	}
	return code
}

func parseLevel(s string) (format.Level, error) {
	switch s {
	case "simple":
		return format.Simple, nil
	case "collapsed", "":
		return format.Collapsed, nil
	case "detailed":
		return format.Detailed, nil
	default:
		return 0, fmt.Errorf("unknown --format %q: want simple, collapsed, or detailed", s)
	}
}

func codeFor(err error) int {
	switch {
	case cuterr.Is(err, cuterr.InputMissing):
		return exitInputMissing
	case cuterr.Is(err, cuterr.InputMalformed):
		return exitInputMalformed
	case cuterr.Is(err, cuterr.Infeasible):
		return exitInfeasible
	case cuterr.Is(err, cuterr.SolverFailure):
		return exitSolverFailure
	case errors.Is(err, context.DeadlineExceeded):
		return exitSolverFailure
	default:
		return exitUnexpected
	}
}
