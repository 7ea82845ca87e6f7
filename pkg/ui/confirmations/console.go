// Package confirmations provides UI implementations for confirmation dialogs.
package confirmations

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// maxItems is how many affected items are listed before summarizing.
const maxItems = 10

// ConsoleDialog implements types.Confirmer for console interaction
type ConsoleDialog struct {
	in  *bufio.Reader
	out io.Writer

	// pending receives the line of a read that outlived a cancelled
	// Confirm. The next Confirm takes it instead of reading concurrently.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewConsoleDialog creates a console confirmation dialog reading answers
// from in and writing prompts to out
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm presents req and reads one line of input. When req.Literal is set
// only that exact text (surrounding whitespace ignored) approves; otherwise
// y or yes does. End of input without an answer declines. Cancelling ctx
// abandons the prompt and returns ctx.Err().
func (d *ConsoleDialog) Confirm(ctx context.Context, req types.ConfirmationRequest) (bool, error) {
	d.present(req)

	line, err := d.readLine(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		fmt.Fprintln(d.out)
		return false, ctxErr
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	answer := strings.TrimSpace(line)

	if req.Literal != "" {
		return answer == req.Literal, nil
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// readLine reads one line in the background so a blocked read does not
// hold up cancellation.
func (d *ConsoleDialog) readLine(ctx context.Context) (string, error) {
	if d.pending == nil {
		ch := make(chan lineResult, 1)
		d.pending = ch
		go func() {
			line, err := d.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}

	select {
	case res := <-d.pending:
		d.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (d *ConsoleDialog) present(req types.ConfirmationRequest) {
	fmt.Fprintln(d.out)
	if req.Title != "" {
		fmt.Fprintln(d.out, req.Title)
	}
	if req.Description != "" {
		fmt.Fprintln(d.out, req.Description)
	}

	if len(req.Items) > 0 {
		shown := req.Items
		if len(shown) > maxItems {
			shown = shown[:maxItems]
		}
		for _, item := range shown {
			fmt.Fprintf(d.out, "└── %s\n", item)
		}
		if more := len(req.Items) - len(shown); more > 0 {
			fmt.Fprintf(d.out, "└── and %d more\n", more)
		}
	}

	fmt.Fprintln(d.out)
	if req.Literal != "" {
		fmt.Fprintf(d.out, "Type '%s' in all capitals and then return to continue: ", req.Literal)
	} else {
		fmt.Fprint(d.out, "Continue? [y/N]: ")
	}
}
