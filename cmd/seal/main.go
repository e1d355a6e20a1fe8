package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/karssart/seal/internal/builtins"
	"github.com/karssart/seal/internal/config"
	"github.com/karssart/seal/internal/executor"
	"github.com/karssart/seal/internal/lexer"
	"github.com/karssart/seal/internal/parser"
	"github.com/karssart/seal/internal/shellstate"
	"github.com/karssart/seal/internal/ui"
	"github.com/spf13/pflag"
)

// version is the only build-time-injectable value seal carries; it has no
// bearing on shell semantics and exists solely for --version.
var version = "dev"

func main() {
	versionFlag := pflag.BoolP("version", "v", false, "print the seal version and exit")
	pflag.Parse()

	if *versionFlag {
		fmt.Println("seal", version)
		os.Exit(0)
	}

	os.Exit(run())
}

// run wires config, job-control state and the readline loop together, and
// returns the status the process should exit with. It is split out from
// main so the deferred teardown runs on every return once the shell state
// exists (EOF or a readline error). The exit builtin calls os.Exit, which
// skips deferred calls, so it runs the teardown itself first.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seal: %v\n", err)
		return 1
	}
	ui.ApplyTheme(cfg.Theme)

	state, err := shellstate.New(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "seal: %v\n", err)
		return 1
	}
	defer state.Teardown()

	prompt := ""
	if state.Interactive {
		prompt = "seal> "
	}

	historyPath, _ := config.HistoryPath()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyPath,
		HistorySearchFold: true,
		HistoryLimit:      cfg.HistorySize,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seal: %v\n", err)
		return 1
	}
	defer rl.Close()

	registry := builtins.NewRegistry()

	lastStatus := 0
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "seal: %v\n", err)
			return lastStatus
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		pipeline, perr := parser.Parse(lexer.Tokenize(line))
		if perr != nil {
			fmt.Fprintf(os.Stderr, "seal: parse error: %v\n", perr)
			continue
		}

		lastStatus = executor.Run(state, registry, pipeline, os.Stdout, os.Stderr)
	}
}
