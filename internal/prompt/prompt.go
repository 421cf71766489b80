// Package prompt asks the user for a single line of text whose initial value
// has a pre-selected span, the way an editor input box does.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/kennyg/yokogaki/internal/ui"
)

// Request describes what to ask.
type Request struct {
	Title string
	Value string
	// SelStart and SelEnd bound the pre-selected runes of Value.
	SelStart int
	SelEnd   int
}

// Prompter asks for a line of text. ok is false when the user cancelled.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (value string, ok bool, err error)
}

// Auto returns an interactive prompter when in is a terminal and a
// line-based one otherwise.
func Auto(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(in.Fd()) {
		return &Terminal{In: in, Out: out}
	}
	return &Line{In: in, Out: out}
}

// Terminal runs a bubbletea program for the prompt.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// Prompt implements Prompter.
func (t *Terminal) Prompt(ctx context.Context, req Request) (string, bool, error) {
	p := tea.NewProgram(NewModel(req),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.Submitted() {
		return "", false, nil
	}
	return m.Value(), true, nil
}

// Line reads one line from In. An empty line keeps the value, EOF cancels,
// and an answer without a path separator replaces the selected span.
type Line struct {
	In  io.Reader
	Out io.Writer
}

// Prompt implements Prompter.
func (l *Line) Prompt(_ context.Context, req Request) (string, bool, error) {
	fmt.Fprintf(l.Out, "%s %s: ", ui.RenderHighlight(req.Title), ui.RenderMuted("["+req.Value+"]"))

	line, err := bufio.NewReader(l.In).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(l.Out)
			return "", false, nil
		}
	}

	return resolveAnswer(req, strings.TrimRight(line, "\r\n")), true, nil
}

// Fixed answers every prompt with Answer, resolved like a Line answer.
type Fixed struct {
	Answer string
}

// Prompt implements Prompter.
func (f Fixed) Prompt(_ context.Context, req Request) (string, bool, error) {
	if f.Answer == "" {
		return "", false, nil
	}
	return resolveAnswer(req, f.Answer), true, nil
}

func resolveAnswer(req Request, answer string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return req.Value
	}
	if strings.ContainsAny(answer, `/\`) {
		return answer
	}
	return ReplaceSpan(req.Value, req.SelStart, req.SelEnd, answer)
}

// ReplaceSpan replaces runes [start, end) of value with repl. Out-of-range
// bounds are clamped.
func ReplaceSpan(value string, start, end int, repl string) string {
	rs := []rune(value)
	start, end = clampSpan(len(rs), start, end)
	return string(rs[:start]) + repl + string(rs[end:])
}

func clampSpan(n, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	return start, end
}
