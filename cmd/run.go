package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aquatherm/poolsim/app"
	"github.com/aquatherm/poolsim/config"
	"github.com/aquatherm/poolsim/infra/logger"
	"github.com/aquatherm/poolsim/pkg/export"
)

var (
	runStart     string
	runEnd       string
	runOutPath   string
	runOutFormat string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a heating simulation over the configured window",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringVar(&runStart, "start", "", "override start date (2006-01-02)")
	runCmd.Flags().StringVar(&runEnd, "end", "", "override end date (2006-01-02)")
	runCmd.Flags().StringVarP(&runOutPath, "out", "o", "", "write results to file instead of stdout")
	runCmd.Flags().StringVarP(&runOutFormat, "format", "f", "json", "output format: json, hourly-csv or daily-csv")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runStart != "" {
		cfg.Simulation.Start = runStart
	}
	if runEnd != "" {
		cfg.Simulation.End = runEnd
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("run-command").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if runOutPath != "" {
		f, err := os.Create(runOutPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	switch runOutFormat {
	case "json":
		return export.WriteResultJSON(out, res)
	case "hourly-csv":
		return export.WriteHourlyCSV(out, res.Hourly)
	case "daily-csv":
		return export.WriteDailyCSV(out, res.Daily)
	default:
		return fmt.Errorf("unknown output format %q", runOutFormat)
	}
}
