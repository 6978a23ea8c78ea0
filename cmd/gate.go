package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/application"
)

// promptGate asks for confirmation on a terminal line.
type promptGate struct {
	in  *bufio.Reader
	out io.Writer
}

type answer struct {
	line string
	err  error
}

// newGate returns the confirmation gate for cmd. With --yes every prompt is
// confirmed without reading input.
func newGate(cmd *cobra.Command) application.Gate {
	if assumeYes {
		return application.StaticGate(application.DecisionConfirm)
	}
	return &promptGate{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.ErrOrStderr(),
	}
}

// Confirm prints the prompt and waits for a line. Only "y" or "yes"
// confirms; EOF or an empty line cancels.
func (g *promptGate) Confirm(ctx context.Context, prompt application.Prompt) (application.Decision, error) {
	fmt.Fprintf(g.out, "%s\n%s [y/N] ", prompt.Title, prompt.Body)

	answers := make(chan answer, 1)
	go func() {
		line, err := g.in.ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(g.out)
		return application.DecisionCancel, ctx.Err()
	case a := <-answers:
		if a.err != nil && a.err != io.EOF {
			return application.DecisionCancel, fmt.Errorf("reading answer: %w", a.err)
		}
		decision := parseAnswer(a.line)
		log.Debug(log.CatUI, "prompt answered", "title", prompt.Title, "decision", decision)
		return decision, nil
	}
}

func parseAnswer(line string) application.Decision {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return application.DecisionConfirm
	default:
		return application.DecisionCancel
	}
}
