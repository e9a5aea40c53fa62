package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"broom/internal/engine"
	"broom/internal/render"
)

func printSummary(out io.Writer, summary *engine.Summary) {
	mode := "run"
	if summary.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(out, "Cleanup %s %s: %d files scanned in %s\n",
		mode, summary.RunID, summary.Counts.Scanned,
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))

	counts := summary.Counts
	fmt.Fprintln(out, render.Table(out,
		[]string{"Keyword", "Extension", "MIME", "Archived", "Errors"},
		[][]string{{
			strconv.Itoa(counts.Keyword),
			strconv.Itoa(counts.Extension),
			strconv.Itoa(counts.Mime),
			strconv.Itoa(counts.Archived),
			strconv.Itoa(counts.Errors),
		}},
		[]render.Alignment{render.AlignRight, render.AlignRight, render.AlignRight, render.AlignRight, render.AlignRight},
	))

	if len(summary.Actions) == 0 {
		return
	}

	rows := make([][]string, 0, len(summary.Actions))
	for _, action := range summary.Actions {
		detail := action.Destination
		if action.Stage == engine.StageError {
			detail = action.Error
		}
		rows = append(rows, []string{string(action.Stage), action.Rule, action.Source, detail})
	}
	fmt.Fprintln(out, render.Table(out,
		[]string{"Stage", "Rule", "Source", "Destination"},
		rows,
		[]render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignLeft},
	))
}
