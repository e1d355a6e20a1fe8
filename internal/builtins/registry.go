// Package builtins implements the shell's reserved commands — cd, exit,
// jobs, fg, bg, help and export — each run directly in the shell process
// rather than forked, the same split the original shell draws in
// is_builtin/execute_builtin.
package builtins

import (
	"io"

	"github.com/karssart/seal/internal/shellstate"
)

// Builtin is one reserved command's contract. Run receives the full argv
// (argv[0] is the command's own name) and returns the exit status the
// shell should attribute to it.
type Builtin struct {
	Name        string
	Description string
	Usage       string
	Run         func(state *shellstate.State, argv []string, stdout, stderr io.Writer) int
}

// Registry is the dispatch table of reserved names, constructed once per
// shell session.
type Registry struct {
	entries map[string]*Builtin
}

// NewRegistry builds the registry with every built-in command installed.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*Builtin)}
	for _, b := range []*Builtin{
		cdBuiltin,
		exitBuiltin,
		jobsBuiltin,
		fgBuiltin,
		bgBuiltin,
		helpBuiltin,
		exportBuiltin,
	} {
		r.entries[b.Name] = b
	}
	return r
}

// Lookup reports whether name is a reserved command.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.entries[name]
	return b, ok
}

// Names returns every registered built-in name, in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
