package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/karssart/seal/internal/shellstate"
)

var cdBuiltin = &Builtin{
	Name:        "cd",
	Description: "Change the working directory",
	Usage:       "cd [dir]\n\nWith no argument, changes to $HOME.",
	Run:         runCd,
}

// Redirections are not honoured here: the original applies them only to
// forked children, and explicitly leaves `cd > log`-style combinations
// undefined, so this stays a plain os.Chdir call.
func runCd(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	var dir string
	if len(argv) < 2 {
		dir = os.Getenv("HOME")
		if dir == "" {
			fmt.Fprintln(stderr, "seal: cd: HOME not set")
			return 1
		}
	} else {
		dir = argv[1]
	}

	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(stderr, "seal: cd: %v\n", err)
		return 1
	}
	return 0
}
