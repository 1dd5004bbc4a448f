package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aquatherm/poolsim/config"
	"github.com/aquatherm/poolsim/infra/store"
)

var (
	runsID          string
	runsPruneBefore string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List and inspect stored simulation runs",
	RunE:  queryRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsID, "id", "", "print the daily aggregates of one run")
	runsCmd.Flags().StringVar(&runsPruneBefore, "prune-before", "", "delete runs created before this date (2006-01-02)")
	rootCmd.AddCommand(runsCmd)
}

func queryRuns(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Store.Enabled {
		return fmt.Errorf("run store is disabled in the configuration")
	}
	st, err := store.NewRunStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("run store: %w", err)
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	switch {
	case runsPruneBefore != "":
		cutoff, err := time.Parse("2006-01-02", runsPruneBefore)
		if err != nil {
			return fmt.Errorf("invalid prune date %q: %w", runsPruneBefore, err)
		}
		return st.PruneBefore(ctx, cutoff)
	case runsID != "":
		days, err := st.LoadDaily(ctx, runsID)
		if err != nil {
			return err
		}
		return writeJSON(cmd, days)
	default:
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return err
		}
		return writeJSON(cmd, runs)
	}
}
