package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aquatherm/poolsim/config"
	"github.com/aquatherm/poolsim/core/model"
	coreschedule "github.com/aquatherm/poolsim/core/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <date>",
	Short: "Resolve the operating schedule for a date",
	Args:  cobra.ExactArgs(1),
	RunE:  resolveSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

// scheduleReport is the CLI output of a schedule query.
type scheduleReport struct {
	Date        string                    `json:"date"`
	Schedule    string                    `json:"schedule"`
	Periods     []model.Period            `json:"periods"`
	Transitions []coreschedule.Transition `json:"transitions"`
	NextOpening *coreschedule.Opening     `json:"next_opening,omitempty"`
}

func resolveSchedule(cmd *cobra.Command, args []string) error {
	date, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", args[0], err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tmpl, err := coreschedule.LoadTemplate(cfg.Calendar.TemplatePath)
	if err != nil {
		return fmt.Errorf("schedule template: %w", err)
	}
	resolver, err := coreschedule.NewResolver(tmpl, coreschedule.MissingScheduleAction(cfg.Calendar.MissingScheduleAction))
	if err != nil {
		return err
	}

	report := scheduleReport{Date: args[0]}
	if report.Schedule, err = resolver.ScheduleNameForDate(date); err != nil {
		return err
	}
	if report.Periods, err = resolver.PeriodsForDate(date); err != nil {
		return err
	}
	if report.Transitions, err = resolver.DailyTransitions(date); err != nil {
		return err
	}
	if report.NextOpening, err = resolver.FindNextOpening(date); err != nil {
		return err
	}

	return writeJSON(cmd, report)
}
