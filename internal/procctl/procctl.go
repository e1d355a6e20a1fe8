//go:build unix

// Package procctl installs the shell's SIGCHLD reaper and the helpers
// that ignore and restore the job-control signals (SIGINT, SIGTSTP,
// SIGQUIT, SIGTTIN, SIGTTOU) in the shell process itself.
//
// In the shell this was distilled from, a SIGCHLD handler installed with
// sigaction ran asynchronously and reaped every terminated or stopped
// child with a non-blocking waitpid loop, updating the job table in
// place. Go has no equivalent of an asynchronous signal handler running
// inside the interrupted goroutine's stack; os/signal.Notify delivers
// signals onto a channel instead, so the reaper here is an ordinary
// goroutine receiving from that channel and doing the same waitpid loop.
package procctl

import (
	"os"
	"os/signal"

	"github.com/karssart/seal/internal/jobs"
	"golang.org/x/sys/unix"
)

// Reaper drains SIGCHLD notifications and keeps a jobs.Table in sync with
// the real state of reaped process groups.
type Reaper struct {
	table      *jobs.Table
	sigc       chan os.Signal
	done       chan struct{}
	onDone     func(job jobs.Job)
	onStopped  func(job jobs.Job)
	onContinue func(job jobs.Job)
}

// NewReaper constructs a Reaper bound to table. The onDone/onStopped/
// onContinue callbacks, any of which may be nil, are invoked synchronously
// from the reaper goroutine whenever a job transitions into that state —
// used by the shell to print the asynchronous "[n]+ Done" style notices.
func NewReaper(table *jobs.Table, onDone, onStopped, onContinue func(jobs.Job)) *Reaper {
	return &Reaper{
		table:      table,
		sigc:       make(chan os.Signal, 16),
		done:       make(chan struct{}),
		onDone:     onDone,
		onStopped:  onStopped,
		onContinue: onContinue,
	}
}

// Start installs the SIGCHLD listener and begins reaping in the
// background. Call Stop to tear it down.
func (r *Reaper) Start() {
	signal.Notify(r.sigc, unix.SIGCHLD)
	go r.loop()
}

// Stop stops receiving SIGCHLD and terminates the reaper goroutine.
func (r *Reaper) Stop() {
	signal.Stop(r.sigc)
	close(r.done)
}

func (r *Reaper) loop() {
	for {
		select {
		case <-r.done:
			return
		case <-r.sigc:
			r.reapAll()
		}
	}
}

// reapAll drains every terminated/stopped/continued child, mirroring the
// WNOHANG|WUNTRACED|WCONTINUED loop of the original handler.
func (r *Reaper) reapAll() {
	var status unix.WaitStatus
	for {
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			return
		}

		job, ok := r.table.FindByPgid(pid)
		if !ok {
			continue
		}

		switch {
		case status.Exited() || status.Signaled():
			r.table.UpdateState(pid, jobs.Done)
			if r.onDone != nil {
				job.State = jobs.Done
				r.onDone(job)
			}
		case status.Stopped():
			r.table.UpdateState(pid, jobs.Stopped)
			if r.onStopped != nil {
				job.State = jobs.Stopped
				r.onStopped(job)
			}
		case status.Continued():
			r.table.UpdateState(pid, jobs.Running)
			if r.onContinue != nil {
				job.State = jobs.Running
				r.onContinue(job)
			}
		}
	}
}

// IgnoreJobControlSignals sets SIGINT, SIGQUIT, SIGTSTP, SIGTTIN and
// SIGTTOU to be ignored by the shell process itself, so that Ctrl-C and
// Ctrl-Z reach the foreground job's process group instead of the shell.
func IgnoreJobControlSignals() {
	signal.Ignore(unix.SIGINT, unix.SIGQUIT, unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU)
}

// RestoreJobControlSignals undoes IgnoreJobControlSignals in the shell's
// own process, used when job control is torn down.
//
// It has no equivalent in a forked child: the Go runtime never installs a
// true SIG_IGN disposition for these signals, only an internal handler
// that os/signal's channel delivery reads from, and execve resets every
// caught (non-SIG_IGN) signal to its default disposition automatically.
// So a child produced by os/exec always starts with default dispositions
// for SIGINT/SIGQUIT/SIGTSTP/SIGTTIN/SIGTTOU regardless of what the shell
// process has done with signal.Ignore — there is no pre-exec step to
// perform here the way the original SIG_IGN/SIG_DFL dance required.
func RestoreJobControlSignals() {
	signal.Reset(unix.SIGINT, unix.SIGQUIT, unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU)
}
