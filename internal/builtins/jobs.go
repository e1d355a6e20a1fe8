package builtins

import (
	"fmt"
	"io"

	"github.com/karssart/seal/internal/shellstate"
	"github.com/karssart/seal/internal/ui"
	"github.com/spf13/pflag"
)

var jobsBuiltin = &Builtin{
	Name:        "jobs",
	Description: "List active jobs",
	Usage:       "jobs [-l]\n\nLists every running, stopped or recently-finished background job.\n-l also shows each job's process group id.",
	Run:         runJobs,
}

func runJobs(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("jobs", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	long := flags.BoolP("l", "l", false, "show process group ids")
	if err := flags.Parse(argv[1:]); err != nil {
		return 1
	}

	entries := state.Jobs.Enumerate()
	if len(entries) == 0 {
		return 0
	}

	if !*long {
		for _, j := range entries {
			label := ui.StyleForState(j.State.String()).Render(j.State.String())
			fmt.Fprintf(stdout, "[%d]  %s\t\t%s\n", j.ID, label, j.Command)
		}
		return 0
	}

	t := ui.NewTable(stdout)
	t.SetHeaders("ID", "PGID", "STATE", "COMMAND")
	for _, j := range entries {
		label := ui.StyleForState(j.State.String()).Render(j.State.String())
		t.AddRow(fmt.Sprintf("[%d]", j.ID), fmt.Sprintf("%d", j.Pgid), label, j.Command)
	}
	t.Render()
	return 0
}
