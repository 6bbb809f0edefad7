package main

import (
	"fmt"
	"time"

	"github.com/aknapek/crawlspace"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := crawlspace.RunFilter{Limit: c.Limit}
	if c.Seed != "" {
		filter.SeedURL = &c.Seed
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawlspace.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived runs.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%-36s %-20s %8s %6s %7s  %s\n",
		"id", "started", "crawled", "failed", "skipped", "seed")
	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%-36s %-20s %8d %6d %7d  %s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Crawled, run.Failed, run.Skipped,
			run.SeedURL)
	}

	return nil
}
