//go:build unix

// Package executor is the central authority that runs a parsed Pipeline:
// it forks one child per Command, wires pipes between them, assigns the
// whole pipeline a single process group, grants or withholds terminal
// ownership, and either waits for the pipeline in the foreground or
// records it as a background job.
//
// The original shell forked with raw fork()/execvp() and rewired
// descriptors by hand inside each child. Go's os/exec already performs
// that fork-and-rewire step internally (syscall.forkExec dup2's the
// *os.File handles assigned to Cmd.Stdin/Stdout/Stderr, and applies
// SysProcAttr.Setpgid/Pgid, before calling execve, all before Start()
// returns) — so there is no user-code hook between fork and exec the way
// the C version had, and none is needed: what used to be "do X inside the
// child" becomes "arrange for X before calling Start".
package executor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/karssart/seal/internal/builtins"
	"github.com/karssart/seal/internal/jobs"
	"github.com/karssart/seal/internal/parser"
	"github.com/karssart/seal/internal/redirect"
	"github.com/karssart/seal/internal/shellstate"
	"github.com/karssart/seal/internal/sysinfo"
	"golang.org/x/sys/unix"
)

// Run executes one parsed pipeline and returns the exit status that
// should be attributed to it (the last command's exit status for an
// external pipeline, 0 for a backgrounded one, or the built-in's own
// return value).
func Run(state *shellstate.State, registry *builtins.Registry, p *parser.Pipeline, stdout, stderr io.Writer) int {
	// A single, non-piped command is checked against the built-in table
	// regardless of its background flag — n == 1 means there is never a
	// pipe to set up either way, and the original dispatches to
	// execute_builtin unconditionally in that case.
	if len(p.Commands) == 1 {
		if bi, ok := registry.Lookup(p.Commands[0].Argv[0]); ok {
			return bi.Run(state, p.Commands[0].Argv, stdout, stderr)
		}
	}
	return runExternal(state, p, stdout, stderr)
}

func runExternal(state *shellstate.State, p *parser.Pipeline, stdout, stderr io.Writer) int {
	if msg := sysinfo.PreflightFork(); msg != "" {
		fmt.Fprintln(stderr, msg)
	}

	n := len(p.Commands)
	var prevRead *os.File
	var pgid int

	for i, c := range p.Commands {
		plan, err := redirect.Open(c.Redirs)
		if err != nil {
			fmt.Fprintf(stderr, "seal: %s: %v\n", c.Argv[0], err)
			if prevRead != nil {
				prevRead.Close()
			}
			return 1
		}

		cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
		cmd.Stdin = resolve(prevRead, plan.Stdin, os.Stdin)
		cmd.Stderr = resolve(nil, plan.Stderr, os.Stderr)

		var pipeR, pipeW *os.File
		if i < n-1 {
			pipeR, pipeW, err = os.Pipe()
			if err != nil {
				fmt.Fprintf(stderr, "seal: pipe: %v\n", err)
				plan.Close()
				if prevRead != nil {
					prevRead.Close()
				}
				return 1
			}
			cmd.Stdout = pipeW
		} else {
			cmd.Stdout = resolve(nil, plan.Stdout, os.Stdout)
		}

		attr := &syscall.SysProcAttr{Setpgid: true}
		if pgid != 0 {
			attr.Pgid = pgid
		}
		cmd.SysProcAttr = attr

		startErr := cmd.Start()

		// The shell's own copies of these descriptors are no longer
		// needed once the child has them (or failed to start): the
		// child inherited its own dup via fork, and plan's files were
		// only ever meant to live as long as Start.
		plan.Close()
		if prevRead != nil {
			prevRead.Close()
		}
		if pipeW != nil {
			pipeW.Close()
		}

		if startErr != nil {
			fmt.Fprintf(stderr, "seal: %s: %v\n", c.Argv[0], startErr)
			if pipeR != nil {
				pipeR.Close()
			}
			return 127
		}

		if pgid == 0 {
			pgid = cmd.Process.Pid
		}
		prevRead = pipeR
	}

	command := p.Render()

	if p.Background {
		id, err := state.Jobs.Add(pgid, command, jobs.Running)
		if err != nil {
			fmt.Fprintf(stderr, "seal: %v\n", err)
		} else {
			fmt.Fprintf(stdout, "[%d] %d\n", id, pgid)
		}
		return 0
	}

	if err := state.TakeTerminal(pgid); err != nil {
		fmt.Fprintf(stderr, "seal: %v\n", err)
	}

	exitStatus := waitForeground(state, pgid, command, stdout)

	if err := state.ReclaimTerminal(); err != nil {
		fmt.Fprintf(stderr, "seal: %v\n", err)
	}

	return exitStatus
}

// resolve returns the first non-nil *os.File among its arguments, in
// priority order: a pipe end always wins over an explicit redirection,
// which always wins over the shell's own stream — matching the original
// ordering, where redirections are applied first and pipe dup2's run
// afterward and overwrite them.
func resolve(pipeEnd, redirected, fallback *os.File) *os.File {
	if pipeEnd != nil {
		return pipeEnd
	}
	if redirected != nil {
		return redirected
	}
	return fallback
}

// waitForeground waits on the whole process group, mirroring the
// WUNTRACED waitpid(-pgid, ...) loop: EINTR is retried, ECHILD means the
// group is empty (all reaped), a stopped group raises a Stopped job and
// returns the terminal, and a normal exit keeps waiting — each blocking
// call reports the next member to change state — until the group is
// fully drained. Every status this loop observes, including ones for
// pipeline members other than the last, is fed through the same switch
// so no exit/signal status is ever silently discarded.
func waitForeground(state *shellstate.State, pgid int, command string, stdout io.Writer) int {
	var status unix.WaitStatus
	lastExit := 0

	for {
		_, err := unix.Wait4(-pgid, &status, unix.WUNTRACED, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			break
		}

		switch {
		case status.Stopped():
			id, aerr := state.Jobs.Add(pgid, command, jobs.Stopped)
			if aerr == nil {
				fmt.Fprintf(stdout, "\n[%d]+ Stopped\t\t%s\n", id, command)
			}
			return 0
		case status.Exited():
			lastExit = status.ExitStatus()
		case status.Signaled():
			lastExit = 128 + int(status.Signal())
		}
	}

	return lastExit
}
