//go:build unix

// Package shellstate owns the shell's session-wide lifecycle: claiming
// the controlling terminal as a job-control leader on startup, and
// returning everything to how it was found on shutdown.
//
// The original shell kept this as a single global ShellState struct
// (g_shell) touched from main, signals.c and jobs.c alike. A package-level
// global is the wrong translation in Go — there is nothing stopping two
// tests or two goroutines from racing on it — so State is an ordinary
// struct value, constructed once in cmd/seal/main.go and threaded through
// explicitly to whatever needs it (the executor, the fg/bg builtins).
package shellstate

import (
	"fmt"
	"os"

	"github.com/karssart/seal/internal/jobs"
	"github.com/karssart/seal/internal/procctl"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// State holds everything about the running shell session that used to
// live in the C global.
type State struct {
	Jobs        *jobs.Table
	Reaper      *procctl.Reaper
	Terminal    int
	Pgid        int
	Interactive bool
	savedModes  *term.State
}

// New claims job control over fd (STDIN_FILENO in normal use) if it is a
// terminal, and returns the resulting session state. If fd is not a
// terminal, the shell runs non-interactively and every terminal and
// signal-disposition step is skipped, matching the original's
// is_interactive gate; the SIGCHLD reaper is started either way.
func New(fd int) (*State, error) {
	s := &State{
		Jobs:     jobs.NewTable(),
		Terminal: fd,
	}

	s.Interactive = term.IsTerminal(fd)

	// setup_signals (and the SIGCHLD handler it installs) runs
	// unconditionally in the original, outside the is_interactive guard
	// — only the "[n]+ Done" notice it prints is gated on interactivity.
	// A piped, non-interactive session still spawns background/stopped
	// jobs and still needs them reaped, or the job table goes stale.
	s.Reaper = procctl.NewReaper(s.Jobs, s.printDone, s.printStopped, nil)
	s.Reaper.Start()

	if !s.Interactive {
		return s, nil
	}

	// Loop until the shell is in the foreground, yielding to any
	// process group ahead of it via SIGTTIN, exactly as the original
	// init_shell does.
	pgrp := unix.Getpgrp()
	for {
		fgpgrp, err := unix.IoctlGetInt(fd, unix.TIOCGPGRP)
		if err != nil {
			return nil, fmt.Errorf("tcgetpgrp: %w", err)
		}
		if fgpgrp == pgrp {
			break
		}
		unix.Kill(-pgrp, unix.SIGTTIN)
		pgrp = unix.Getpgrp()
	}

	procctl.IgnoreJobControlSignals()

	pgid := os.Getpid()
	if err := unix.Setpgid(pgid, pgid); err != nil {
		return nil, fmt.Errorf("couldn't put the shell in its own process group: %w", err)
	}
	s.Pgid = pgid

	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid); err != nil {
		return nil, fmt.Errorf("couldn't take control of the terminal: %w", err)
	}

	modes, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr: %w", err)
	}
	s.savedModes = modes

	return s, nil
}

// printDone is the reaper's onDone callback: it prints the asynchronous
// "[n]+ Done" notice to stdout, interactive sessions only, matching
// original_source/seal/signals.c's sigchld_handler.
func (s *State) printDone(job jobs.Job) {
	if !s.Interactive {
		return
	}
	fmt.Fprintf(os.Stdout, "\n[%d]+ Done\t\t%s\n", job.ID, job.Command)
}

// printStopped is the reaper's onStopped callback, mirroring the same
// sigchld_handler branch for WIFSTOPPED.
func (s *State) printStopped(job jobs.Job) {
	if !s.Interactive {
		return
	}
	fmt.Fprintf(os.Stdout, "\n[%d]+ Stopped\t\t%s\n", job.ID, job.Command)
}

// Teardown sends SIGTERM to every job still Running or Stopped, restores
// the shell's job-control signal dispositions, and restores the
// terminal's saved modes, mirroring cleanup_shell.
func (s *State) Teardown() {
	if s.Reaper != nil {
		s.Reaper.Stop()
	}

	for _, j := range s.Jobs.Enumerate() {
		if j.State == jobs.Running || j.State == jobs.Stopped {
			unix.Kill(-j.Pgid, unix.SIGTERM)
		}
	}

	if s.Interactive {
		procctl.RestoreJobControlSignals()
	}

	if s.Interactive && s.savedModes != nil {
		term.Restore(s.Terminal, s.savedModes)
	}
}

// TakeTerminal hands terminal ownership to pgid, used when a foreground
// pipeline starts and when a stopped job is resumed into the foreground.
func (s *State) TakeTerminal(pgid int) error {
	if !s.Interactive {
		return nil
	}
	return unix.IoctlSetPointerInt(s.Terminal, unix.TIOCSPGRP, pgid)
}

// ReclaimTerminal hands terminal ownership back to the shell itself.
func (s *State) ReclaimTerminal() error {
	return s.TakeTerminal(s.Pgid)
}
