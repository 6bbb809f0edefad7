package main

import (
	"fmt"

	"github.com/aknapek/crawlspace"
	"github.com/aknapek/crawlspace/keyword"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	runID := c.RunID
	if runID == "" {
		runs, err := deps.Runs.FindRuns(deps.Ctx, crawlspace.RunFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", crawlspace.ErrorMessage(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stderr, "no archived runs found. Run 'crawlspace run <url>' first")
			return crawlspace.Errorf(crawlspace.ENOTFOUND, "no archived runs")
		}
		runID = runs[0].ID
	}

	records, err := deps.Runs.FindPagesByRun(deps.Ctx, runID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawlspace.ErrorMessage(err))
		return err
	}

	analyzer := keyword.NewAnalyzer()
	analyzer.TopN = c.Top

	report := analyzer.Analyze(records, c.Keyword)

	fmt.Fprintf(deps.Stdout, "Run %s: %d pages\n", runID, len(records))
	printKeywords(deps, report, c.Top)

	return nil
}
