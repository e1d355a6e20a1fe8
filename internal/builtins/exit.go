package builtins

import (
	"io"
	"os"
	"strconv"

	"github.com/karssart/seal/internal/shellstate"
)

var exitBuiltin = &Builtin{
	Name:        "exit",
	Description: "Exit the shell",
	Usage:       "exit [status]\n\nRuns shell teardown, then terminates with status (default 0).",
	Run:         runExit,
}

func runExit(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	status := 0
	if len(argv) >= 2 {
		if n, err := strconv.Atoi(argv[1]); err == nil {
			status = n
		}
	}

	state.Teardown()
	os.Exit(status)
	return status // unreachable
}
