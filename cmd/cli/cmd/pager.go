// Package cmd - pager commands
package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"barodeal/core/output"
	"barodeal/core/pager"
	"barodeal/internal/config"
)

var (
	replaySections int
	replayEvents   string
	replayInterval time.Duration
	replayLanding  bool
	replayFormat   string
)

var pagerCmd = &cobra.Command{
	Use:   "pager",
	Short: "Section pager tools",
}

var pagerReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay input events through the section pager",
	Long: `Feed a scripted sequence of inputs through the section pager on a
simulated clock and print every transition.

Actions are comma separated:
  wheel:<deltaY>          mouse wheel
  key:<name>              ArrowDown, ArrowUp, PageDown, PageUp, Home, End
  swipe:<startY>><endY>   touch swipe
  goto:<section>          navigation bar jump
  wait:<ms>               let time pass

Examples:
  barodeal pager replay --events "wheel:120,key:ArrowDown,wait:1000,key:ArrowDown"
  barodeal pager replay --landing=false --sections 3 --events "key:End,wait:1000,key:Home"`,
	Args: cobra.NoArgs,
	RunE: runPagerReplay,
}

func init() {
	pagerReplayCmd.Flags().IntVar(&replaySections, "sections", 0, "number of sections (default from config; ignored with --landing)")
	pagerReplayCmd.Flags().StringVarP(&replayEvents, "events", "e", "", "comma separated actions")
	pagerReplayCmd.Flags().DurationVar(&replayInterval, "interval", 100*time.Millisecond, "simulated time between inputs")
	pagerReplayCmd.Flags().BoolVar(&replayLanding, "landing", true, "use the landing page layout with its process and footer steppers")
	pagerReplayCmd.Flags().StringVarP(&replayFormat, "format", "f", "", "output format (cli, json)")
	_ = pagerReplayCmd.MarkFlagRequired("events")
	pagerCmd.AddCommand(pagerReplayCmd)
}

func pagerConfig(cfg *config.Config) pager.Config {
	pc := pager.Config{
		Sections:       cfg.Pager.Sections,
		WheelThreshold: cfg.Pager.WheelThreshold,
		SwipeThreshold: cfg.Pager.SwipeThreshold,
		Cooldown:       time.Duration(cfg.Pager.CooldownMs) * time.Millisecond,
	}
	if replaySections > 0 {
		pc.Sections = replaySections
	}
	return pc
}

func runPagerReplay(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	actions, err := pager.ParseScript(replayEvents)
	if err != nil {
		return err
	}

	format := output.Format(cfg.Output.DefaultFormat)
	if replayFormat != "" {
		if format, err = output.ParseFormat(replayFormat); err != nil {
			return err
		}
	}

	clock := pager.NewManualClock(time.Unix(0, 0).UTC())
	var p *pager.Pager
	if replayLanding {
		stepCooldown := time.Duration(cfg.Pager.StepCooldownMs) * time.Millisecond
		p, err = pager.Landing(pagerConfig(cfg), stepCooldown, pager.WithClock(clock.Now))
	} else {
		p, err = pager.New(pagerConfig(cfg), pager.WithClock(clock.Now))
	}
	if err != nil {
		return err
	}

	steps := pager.Replay(p, clock, actions, replayInterval)

	w := cmd.OutOrStdout()
	if format == output.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}

	for _, s := range steps {
		line := fmt.Sprintf("%6dms  %-16s", s.At.Milliseconds(), s.Action)
		if t := s.Transition; t != nil {
			line += fmt.Sprintf("  %-17s %-6s -> %-17s %-9s", t.From, t.Input, t.To, t.Effect)
		} else {
			line += fmt.Sprintf("  %-53s", "")
		}
		line += fmt.Sprintf("  section %d", s.Status.Section)
		if s.Status.Step >= 0 {
			line += fmt.Sprintf(" step %d", s.Status.Step)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
