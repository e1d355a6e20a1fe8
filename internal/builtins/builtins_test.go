package builtins_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/karssart/seal/internal/builtins"
	"github.com/karssart/seal/internal/jobs"
	"github.com/karssart/seal/internal/shellstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) *shellstate.State {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	s, err := shellstate.New(int(f.Fd()))
	require.NoError(t, err)
	return s
}

func TestRegistry_Lookup(t *testing.T) {
	r := builtins.NewRegistry()
	for _, name := range []string{"cd", "exit", "jobs", "fg", "bg", "help", "export"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := r.Lookup("notabuiltin")
	assert.False(t, ok)
}

func TestCd_ChangesDirectory(t *testing.T) {
	r := builtins.NewRegistry()
	cd, _ := r.Lookup("cd")
	s := newState(t)

	dir := t.TempDir()
	original, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(original)

	var out, errBuf bytes.Buffer
	status := cd.Run(s, []string{"cd", dir}, &out, &errBuf)
	assert.Equal(t, 0, status)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	resolved, _ := filepath.EvalSymlinks(dir)
	resolvedCwd, _ := filepath.EvalSymlinks(cwd)
	assert.Equal(t, resolved, resolvedCwd)
}

func TestCd_NoHome(t *testing.T) {
	r := builtins.NewRegistry()
	cd, _ := r.Lookup("cd")
	s := newState(t)

	old := os.Getenv("HOME")
	os.Unsetenv("HOME")
	defer os.Setenv("HOME", old)

	var out, errBuf bytes.Buffer
	status := cd.Run(s, []string{"cd"}, &out, &errBuf)
	assert.Equal(t, 1, status)
	assert.Contains(t, errBuf.String(), "HOME not set")
}

func TestExport_SetsEnv(t *testing.T) {
	r := builtins.NewRegistry()
	export, _ := r.Lookup("export")
	s := newState(t)

	var out, errBuf bytes.Buffer
	status := export.Run(s, []string{"export", "SEAL_TEST_VAR=hello"}, &out, &errBuf)
	assert.Equal(t, 0, status)
	assert.Equal(t, "hello", os.Getenv("SEAL_TEST_VAR"))
}

func TestExport_InvalidSyntax(t *testing.T) {
	r := builtins.NewRegistry()
	export, _ := r.Lookup("export")
	s := newState(t)

	var out, errBuf bytes.Buffer
	status := export.Run(s, []string{"export", "NOVALUE"}, &out, &errBuf)
	assert.Equal(t, 1, status)
}

func TestJobs_ListsEntries(t *testing.T) {
	r := builtins.NewRegistry()
	jobsBuiltin, _ := r.Lookup("jobs")
	s := newState(t)

	_, err := s.Jobs.Add(4242, "sleep 30 &", jobs.Running)
	require.NoError(t, err)

	var out, errBuf bytes.Buffer
	status := jobsBuiltin.Run(s, []string{"jobs"}, &out, &errBuf)
	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "sleep 30 &")
	assert.Contains(t, out.String(), "[1]")
}

func TestFg_NoCurrentJob(t *testing.T) {
	r := builtins.NewRegistry()
	fg, _ := r.Lookup("fg")
	s := newState(t)

	var out, errBuf bytes.Buffer
	status := fg.Run(s, []string{"fg"}, &out, &errBuf)
	assert.Equal(t, 1, status)
	assert.Contains(t, errBuf.String(), "no current job")
}

func TestBg_NoStoppedJobs(t *testing.T) {
	r := builtins.NewRegistry()
	bg, _ := r.Lookup("bg")
	s := newState(t)

	var out, errBuf bytes.Buffer
	status := bg.Run(s, []string{"bg"}, &out, &errBuf)
	assert.Equal(t, 1, status)
	assert.Contains(t, errBuf.String(), "no stopped jobs")
}

func TestHelp_PrintsCommandList(t *testing.T) {
	r := builtins.NewRegistry()
	help, _ := r.Lookup("help")
	s := newState(t)

	var out, errBuf bytes.Buffer
	status := help.Run(s, []string{"help"}, &out, &errBuf)
	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "Built-in commands")
	assert.Contains(t, out.String(), "Redirection operators")
}
