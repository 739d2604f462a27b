// Package script replays a plain-text scoreboard script against a registry.
//
// One command per line; blank lines and lines starting with '#' are skipped.
//
//	start <home team> | <away team>
//	score #<n> <home score> <away score>
//	finish #<n>
//	summary
//
// Matches are addressed by handle: #1 is the match created by the first
// start line, #2 by the second, and so on.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"example.com/scoreboard/internal/scoreboard"
)

var ErrSyntax = errors.New("syntax error")

type Runner struct {
	reg     *scoreboard.Registry
	out     io.Writer
	handles []string
}

func NewRunner(reg *scoreboard.Registry, out io.Writer) *Runner {
	return &Runner{reg: reg, out: out}
}

// Run executes every line of in and stops at the first failing one.
func (r *Runner) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		if err := r.Exec(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func (r *Runner) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "start":
		return r.start(rest)
	case "score":
		return r.score(rest)
	case "finish":
		return r.finish(rest)
	case "summary":
		if rest != "" {
			return fmt.Errorf("%w: summary takes no arguments", ErrSyntax)
		}
		return r.summary()
	default:
		return fmt.Errorf("%w: unknown command %q", ErrSyntax, cmd)
	}
}

func (r *Runner) start(args string) error {
	home, away, ok := strings.Cut(args, "|")
	if !ok {
		return fmt.Errorf("%w: want start <home> | <away>", ErrSyntax)
	}
	id, err := r.reg.StartMatch(strings.TrimSpace(home), strings.TrimSpace(away))
	if err != nil {
		return err
	}
	r.handles = append(r.handles, id)
	_, err = fmt.Fprintf(r.out, "#%d started\n", len(r.handles))
	return err
}

func (r *Runner) score(args string) error {
	f := strings.Fields(args)
	if len(f) != 3 {
		return fmt.Errorf("%w: want score #<n> <home> <away>", ErrSyntax)
	}
	id, err := r.lookup(f[0])
	if err != nil {
		return err
	}
	home, err := parseScore(f[1])
	if err != nil {
		return err
	}
	away, err := parseScore(f[2])
	if err != nil {
		return err
	}
	return r.reg.UpdateScore(id, home, away)
}

func (r *Runner) finish(args string) error {
	f := strings.Fields(args)
	if len(f) != 1 {
		return fmt.Errorf("%w: want finish #<n>", ErrSyntax)
	}
	id, err := r.lookup(f[0])
	if err != nil {
		return err
	}
	return r.reg.FinishMatch(id)
}

func (r *Runner) summary() error {
	matches := r.reg.Summary()
	if len(matches) == 0 {
		_, err := fmt.Fprintln(r.out, "no active matches")
		return err
	}
	for i, m := range matches {
		if _, err := fmt.Fprintf(r.out, "%d. %s\n", i+1, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) lookup(handle string) (string, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(handle, "#"))
	if err != nil || !strings.HasPrefix(handle, "#") {
		return "", fmt.Errorf("%w: bad match handle %q", ErrSyntax, handle)
	}
	if n < 1 || n > len(r.handles) {
		return "", fmt.Errorf("%w: no match #%d", scoreboard.ErrNotFound, n)
	}
	return r.handles[n-1], nil
}

// parseScore accepts any integer; the registry rejects negatives.
func parseScore(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: score %q is not an integer", scoreboard.ErrInvalidArgument, s)
	}
	return n, nil
}
