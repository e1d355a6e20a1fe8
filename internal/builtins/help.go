package builtins

import (
	"fmt"
	"io"

	"github.com/karssart/seal/internal/shellstate"
)

var helpBuiltin = &Builtin{
	Name:        "help",
	Description: "Show this help",
	Usage:       "help",
	Run:         runHelp,
}

func runHelp(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	fmt.Fprint(stdout, `Seal Shell - Custom Shell with Job Control

Built-in commands:
  cd [dir]       Change directory
  exit [status]  Exit shell
  jobs           List active jobs
  fg [job_id]    Bring job to foreground
  bg [job_id]    Send job to background
  help           Show this help
  export VAR=val Set environment variable

Redirection operators:
  <              Redirect input
  >              Redirect output (truncate)
  >>             Redirect output (append)
  2>             Redirect stderr
  2>&1           Redirect stderr to stdout
  |              Pipe

Job control:
  &              Run command in background
  Ctrl-C         Send SIGINT to foreground job
  Ctrl-Z         Send SIGTSTP to foreground job
`)
	return 0
}
