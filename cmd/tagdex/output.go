package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/akeefe/tagdex/internal/engine"
)

var (
	// pathStyle for document paths
	pathStyle = lipgloss.NewStyle().Bold(true)

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for completed runs
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// suspendStyle for suspended runs
	suspendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for the status box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	warnColor = color.New(color.FgYellow)
)

// printResult renders one invocation's outcome as a single line
func printResult(w io.Writer, path string, res *engine.Result) {
	state := successStyle.Render("complete")
	if res.Suspended {
		state = suspendStyle.Render(fmt.Sprintf("suspended (%s)", res.Phase))
	}
	if res.Resumed {
		_, _ = warnColor.Fprintf(w, "%s: resumed from checkpoint\n", path)
	}

	fmt.Fprintf(w, "%s %s  %s %d tags, %d entries  %s %s\n",
		pathStyle.Render(path), state,
		dimStyle.Render("found:"), res.Stats.TagsFound, res.Stats.EntriesFound,
		dimStyle.Render("in"), res.Stats.Duration.Round(time.Millisecond),
	)
}

// printStatus renders a checkpoint status box
func printStatus(w io.Writer, path string, inFlight bool, phase string, savedAt time.Time) {
	var content string
	if inFlight {
		content = fmt.Sprintf("%s %s\n%s %s\n%s %s",
			dimStyle.Render("Document:"), pathStyle.Render(path),
			dimStyle.Render("Phase:"), suspendStyle.Render(phase),
			dimStyle.Render("Saved:"), savedAt.Format(time.RFC3339),
		)
	} else {
		content = fmt.Sprintf("%s %s\n%s",
			dimStyle.Render("Document:"), pathStyle.Render(path),
			successStyle.Render("no checkpoint; next run starts fresh"),
		)
	}
	fmt.Fprintln(w, boxStyle.Render(content))
}
