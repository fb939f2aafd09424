// ABOUTME: Terminal color styles for td text output.
// ABOUTME: SprintFunc vars so call sites read like fmt helpers; plain when piped.

package td

import (
	"github.com/fatih/color"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// Sprint color functions for building styled strings.
var (
	styleBold   = color.New(color.Bold).SprintFunc()
	styleDim    = color.New(color.Faint).SprintFunc()
	styleCyan   = color.New(color.FgCyan).SprintFunc()
	styleGreen  = color.New(color.FgGreen).SprintFunc()
	styleRed    = color.New(color.FgRed).SprintFunc()
	styleYellow = color.New(color.FgYellow).SprintFunc()
)

// styleStatus colors a status the way the board reads it: green when done,
// yellow while moving, dim when cancelled.
func styleStatus(s task.Status) string {
	switch s {
	case task.StatusDone:
		return styleGreen(string(s))
	case task.StatusInProgress, task.StatusInReview:
		return styleYellow(string(s))
	case task.StatusCancelled:
		return styleDim(string(s))
	default:
		return string(s)
	}
}
