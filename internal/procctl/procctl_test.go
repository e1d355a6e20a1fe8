//go:build unix

package procctl_test

import (
	"os/exec"
	"testing"
	"time"

	"github.com/karssart/seal/internal/jobs"
	"github.com/karssart/seal/internal/procctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaper_MarksJobDoneOnExit(t *testing.T) {
	table := jobs.NewTable()

	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())
	pid := cmd.Process.Pid
	id, err := table.Add(pid, "true", jobs.Running)
	require.NoError(t, err)

	doneCh := make(chan jobs.Job, 1)
	reaper := procctl.NewReaper(table, func(j jobs.Job) { doneCh <- j }, nil, nil)
	reaper.Start()
	defer reaper.Stop()

	select {
	case j := <-doneCh:
		assert.Equal(t, id, j.ID)
		assert.Equal(t, jobs.Done, j.State)
	case <-time.After(2 * time.Second):
		t.Fatal("reaper never observed job exit")
	}

	job, _ := table.Get(id)
	assert.Equal(t, jobs.Done, job.State)
}

func TestReaper_IgnoresUnknownPgid(t *testing.T) {
	table := jobs.NewTable()
	reaper := procctl.NewReaper(table, nil, nil, nil)
	reaper.Start()
	defer reaper.Stop()

	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())
	require.NoError(t, cmd.Wait())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, table.ActiveCount())
}
