//go:build unix

package builtins

import (
	"fmt"
	"io"
	"strconv"

	"github.com/karssart/seal/internal/jobs"
	"github.com/karssart/seal/internal/shellstate"
	"golang.org/x/sys/unix"
)

var fgBuiltin = &Builtin{
	Name:        "fg",
	Description: "Bring a job to the foreground",
	Usage:       "fg [job_id]\n\nWith no argument, resumes the highest-numbered job.",
	Run:         runFg,
}

var bgBuiltin = &Builtin{
	Name:        "bg",
	Description: "Resume a stopped job in the background",
	Usage:       "bg [job_id]\n\nWith no argument, resumes the highest-numbered stopped job.",
	Run:         runBg,
}

func runFg(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	id, err := jobIDFor(state, argv, state.Jobs.MostRecent, "fg: no current job")
	if err != nil {
		fmt.Fprintln(stderr, "seal:", err)
		return 1
	}

	job, ok := state.Jobs.Get(id)
	if !ok {
		fmt.Fprintln(stderr, "seal: fg: no such job")
		return 1
	}

	if err := state.TakeTerminal(job.Pgid); err != nil {
		fmt.Fprintf(stderr, "seal: fg: %v\n", err)
	}

	if err := unix.Kill(-job.Pgid, unix.SIGCONT); err != nil {
		fmt.Fprintf(stderr, "seal: fg: %v\n", err)
		return 1
	}
	state.Jobs.UpdateState(job.Pgid, jobs.Running)

	exitStatus := waitOnForegroundJob(state, id, job, stdout)

	if err := state.ReclaimTerminal(); err != nil {
		fmt.Fprintf(stderr, "seal: fg: %v\n", err)
	}

	return exitStatus
}

func runBg(state *shellstate.State, argv []string, stdout, stderr io.Writer) int {
	id, err := jobIDFor(state, argv, state.Jobs.MostRecentStopped, "bg: no stopped jobs")
	if err != nil {
		fmt.Fprintln(stderr, "seal:", err)
		return 1
	}

	job, ok := state.Jobs.Get(id)
	if !ok {
		fmt.Fprintln(stderr, "seal: bg: no such job")
		return 1
	}

	if err := unix.Kill(-job.Pgid, unix.SIGCONT); err != nil {
		fmt.Fprintf(stderr, "seal: bg: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "[%d]+ %s &\n", id, job.Command)
	state.Jobs.UpdateState(job.Pgid, jobs.Running)

	return 0
}

func jobIDFor(state *shellstate.State, argv []string, defaultLookup func() (int, bool), noneMsg string) (int, error) {
	if len(argv) >= 2 {
		id, err := strconv.Atoi(argv[1])
		if err != nil {
			return 0, fmt.Errorf("invalid job id %q", argv[1])
		}
		return id, nil
	}
	id, ok := defaultLookup()
	if !ok {
		return 0, fmt.Errorf("%s", noneMsg)
	}
	return id, nil
}

// waitOnForegroundJob mirrors bring_job_to_foreground's own waitpid loop
// — a separate copy from the executor's, the same way jobs.c and
// pipeline.c each carried their own in the original. Every status a
// blocking wait reports is fed through the switch below, including
// ones for earlier pipeline members, so no exit/signal status is ever
// silently discarded.
func waitOnForegroundJob(state *shellstate.State, id int, job jobs.Job, stdout io.Writer) int {
	var status unix.WaitStatus
	lastExit := 0

	for {
		_, err := unix.Wait4(-job.Pgid, &status, unix.WUNTRACED, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.ECHILD {
				state.Jobs.Remove(id)
			}
			break
		}

		switch {
		case status.Stopped():
			state.Jobs.UpdateState(job.Pgid, jobs.Stopped)
			fmt.Fprintf(stdout, "\n[%d]+ Stopped\t\t%s\n", id, job.Command)
			return 0
		case status.Exited():
			lastExit = status.ExitStatus()
		case status.Signaled():
			lastExit = 128 + int(status.Signal())
		}
	}

	return lastExit
}
