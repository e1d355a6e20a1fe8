// Package parser folds a lexer token sequence into a Pipeline AST: an
// ordered list of Commands, each with an argv and a list of Redirections,
// sharing one pipeline-wide background flag.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// RedirKind tags the kind of descriptor rewiring a Redirection performs.
type RedirKind int

const (
	RedirIn       RedirKind = iota // < file
	RedirOut                       // > file (truncate)
	RedirAppend                    // >> file (append)
	RedirErr                       // 2> file
	RedirErrToOut                  // 2>&1, no filename
)

// Redirection is one descriptor rewiring, applied in textual order.
// Every kind except RedirErrToOut carries a non-empty File.
type Redirection struct {
	Kind RedirKind
	File string
}

// Command is one stage of a Pipeline: a program and its arguments, plus
// the redirections that apply to it, in the order they appeared.
type Command struct {
	Argv   []string
	Redirs []Redirection
}

// Pipeline is one or more Commands connected by `|`, sharing a single
// background flag raised by any `&` token found anywhere among them.
type Pipeline struct {
	Commands   []Command
	Background bool
}

// Parse builds a Pipeline from a lexer token sequence. A Command with an
// empty argv, a pipeline with zero commands, or a redirection operator
// missing its filename is a parse error.
func Parse(tokens []string) (*Pipeline, error) {
	if len(tokens) == 0 {
		return nil, errors.New("parse error: empty input")
	}

	runs := splitByPipe(tokens)
	pipeline := &Pipeline{Commands: make([]Command, 0, len(runs))}

	for _, run := range runs {
		cmd, background, err := parseRun(run)
		if err != nil {
			return nil, err
		}
		if len(cmd.Argv) == 0 {
			return nil, errors.New("parse error: empty command")
		}
		pipeline.Commands = append(pipeline.Commands, cmd)
		if background {
			pipeline.Background = true
		}
	}

	if len(pipeline.Commands) == 0 {
		return nil, errors.New("parse error: empty pipeline")
	}

	return pipeline, nil
}

func splitByPipe(tokens []string) [][]string {
	var runs [][]string
	var cur []string
	for _, tok := range tokens {
		if tok == "|" {
			runs = append(runs, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	return append(runs, cur)
}

func parseRun(tokens []string) (Command, bool, error) {
	var cmd Command
	var background bool

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok {
		case "<":
			file, err := filenameAfter(tokens, i, "<")
			if err != nil {
				return Command{}, false, err
			}
			cmd.Redirs = append(cmd.Redirs, Redirection{Kind: RedirIn, File: file})
			i++
		case ">":
			file, err := filenameAfter(tokens, i, ">")
			if err != nil {
				return Command{}, false, err
			}
			cmd.Redirs = append(cmd.Redirs, Redirection{Kind: RedirOut, File: file})
			i++
		case ">>":
			file, err := filenameAfter(tokens, i, ">>")
			if err != nil {
				return Command{}, false, err
			}
			cmd.Redirs = append(cmd.Redirs, Redirection{Kind: RedirAppend, File: file})
			i++
		case "2>":
			file, err := filenameAfter(tokens, i, "2>")
			if err != nil {
				return Command{}, false, err
			}
			cmd.Redirs = append(cmd.Redirs, Redirection{Kind: RedirErr, File: file})
			i++
		case "2>&1":
			cmd.Redirs = append(cmd.Redirs, Redirection{Kind: RedirErrToOut})
		case "&":
			background = true
		default:
			cmd.Argv = append(cmd.Argv, tok)
		}
	}

	return cmd, background, nil
}

func filenameAfter(tokens []string, i int, op string) (string, error) {
	if i+1 >= len(tokens) {
		return "", fmt.Errorf("parse error: missing filename after '%s'", op)
	}
	name := tokens[i+1]
	if isOperator(name) {
		return "", fmt.Errorf("parse error: missing filename after '%s'", op)
	}
	return name, nil
}

func isOperator(tok string) bool {
	switch tok {
	case "|", "&", "<", ">", ">>", "2>", "2>&1":
		return true
	default:
		return false
	}
}

// Render produces the human-readable command-string used in job listings:
// each command's full argv rendered space-separated, commands joined by
// " | ", suffixed with " &" when the pipeline is backgrounded.
func (p *Pipeline) Render() string {
	parts := make([]string, len(p.Commands))
	for i, cmd := range p.Commands {
		parts[i] = strings.Join(cmd.Argv, " ")
	}
	s := strings.Join(parts, " | ")
	if p.Background {
		s += " &"
	}
	return s
}
