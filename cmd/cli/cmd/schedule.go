// Package cmd - schedule commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"barodeal/core/schedule"
	"barodeal/core/types"
	"barodeal/internal/app"
	"barodeal/internal/config"
)

var (
	scheduleRegion string
	scheduleFormat string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Inspect fee schedules",
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the loaded fee schedule table",
	Long: `Print every schedule in the loaded table with its tiers, caps and
provenance. Use --config with schedule.path to inspect an alternate HCL table.`,
	Args: cobra.NoArgs,
	RunE: runScheduleShow,
}

func init() {
	scheduleShowCmd.Flags().StringVarP(&scheduleRegion, "region", "r", "", "only show this region")
	scheduleShowCmd.Flags().StringVarP(&scheduleFormat, "format", "f", "", "output format (cli, json)")
	scheduleCmd.AddCommand(scheduleShowCmd)
}

func runScheduleShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	formatter, err := formatterFor(cfg, scheduleFormat)
	if err != nil {
		return err
	}
	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}

	table := engine.Table()
	if scheduleRegion != "" {
		region, ok := types.ParseRegion(scheduleRegion)
		if !ok {
			return fmt.Errorf("unknown region %q", scheduleRegion)
		}
		if table, err = filterRegion(table, region); err != nil {
			return err
		}
	}
	return formatter.RenderSchedules(cmd.OutOrStdout(), table)
}

func filterRegion(table *schedule.Table, region types.Region) (*schedule.Table, error) {
	var kept []schedule.Schedule
	for _, s := range table.Schedules() {
		if s.Key.Region == region {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no schedules for region %q", region)
	}
	return schedule.NewTable(kept)
}
