package builtins

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/karssart/seal/internal/shellstate"
)

var exportBuiltin = &Builtin{
	Name:        "export",
	Description: "Set an environment variable",
	Usage:       "export VAR=value",
	Run:         runExport,
}

func runExport(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	if len(argv) < 2 {
		fmt.Fprintln(stderr, "seal: export: missing argument")
		return 1
	}

	name, value, ok := strings.Cut(argv[1], "=")
	if !ok {
		fmt.Fprintln(stderr, "seal: export: invalid syntax (use VAR=value)")
		return 1
	}

	if err := os.Setenv(name, value); err != nil {
		fmt.Fprintf(stderr, "seal: export: %v\n", err)
		return 1
	}
	return 0
}
