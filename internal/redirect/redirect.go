// Package redirect turns a Command's redirection list into concrete
// *os.File handles for an about-to-be-started child process.
//
// The original shell applied redirections with dup2 calls made directly
// inside a freshly-forked child, right before pipe wiring and exec. Go's
// os/exec gives no hook to run arbitrary code between fork and exec — the
// runtime forbids it for the same reason C code must stick to
// async-signal-safe calls there — so the equivalent here is to open the
// target files in the shell process and hand them to exec.Cmd's
// Stdin/Stdout/Stderr fields; the standard library's own fork/exec
// plumbing performs the dup2 that would otherwise happen by hand. Textual
// order is preserved by resolving each redirection against whatever the
// corresponding field currently holds, exactly as the original's dup2
// onto a live fd would: a later `2>&1` captures whatever `>`/`>>` came
// before it, and a later `>` does not retroactively change an earlier
// `2>&1`.
package redirect

import (
	"fmt"
	"os"

	"github.com/karssart/seal/internal/parser"
)

// Plan holds the resolved destinations for a command's standard streams.
// A nil field means "no redirection touched this stream"; the caller
// fills in its own default (the shell's stdio, or a pipe end) before
// starting the child.
type Plan struct {
	Stdin, Stdout, Stderr *os.File
	opened                []*os.File
}

// Open resolves redirs into a Plan, in textual order. On error, any files
// already opened are closed before returning.
func Open(redirs []parser.Redirection) (*Plan, error) {
	p := &Plan{}

	for _, r := range redirs {
		if err := p.apply(r); err != nil {
			p.Close()
			return nil, err
		}
	}
	return p, nil
}

func (p *Plan) apply(r parser.Redirection) error {
	switch r.Kind {
	case parser.RedirIn:
		f, err := os.Open(r.File)
		if err != nil {
			return fmt.Errorf("%s: %w", r.File, err)
		}
		p.opened = append(p.opened, f)
		p.Stdin = f

	case parser.RedirOut:
		f, err := os.OpenFile(r.File, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("%s: %w", r.File, err)
		}
		p.opened = append(p.opened, f)
		p.Stdout = f

	case parser.RedirAppend:
		f, err := os.OpenFile(r.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("%s: %w", r.File, err)
		}
		p.opened = append(p.opened, f)
		p.Stdout = f

	case parser.RedirErr:
		f, err := os.OpenFile(r.File, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("%s: %w", r.File, err)
		}
		p.opened = append(p.opened, f)
		p.Stderr = f

	case parser.RedirErrToOut:
		// Captures whatever Stdout resolves to right now (the shell's own
		// stdout when no earlier `>`/`>>` set it); a later `>` in the
		// same redirection list does not change it, matching
		// dup2-onto-a-live-fd semantics.
		p.Stderr = p.Stdout
		if p.Stderr == nil {
			p.Stderr = os.Stdout
		}

	default:
		return fmt.Errorf("unknown redirection kind %v", r.Kind)
	}
	return nil
}

// Close releases every file this Plan opened. Safe to call once the
// child holding the duplicated descriptors has been started (or if
// Start never happened at all, e.g. on a later pipeline-setup error).
func (p *Plan) Close() {
	for _, f := range p.opened {
		f.Close()
	}
}
