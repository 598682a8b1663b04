// Package approval renders the interactive confirmation prompt for
// commands classified Yellow. In a non-interactive session there is no one
// to ask, so the answer is deny.
package approval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/shellgate/shellgate/internal/risk"
)

// Result is the user's answer to an approval prompt.
type Result struct {
	Approved   bool
	UserAction string
}

// Prompt carries what the user needs to see before deciding.
type Prompt struct {
	Command string
	Verdict risk.Verdict
}

func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask blocks until the user approves or denies. The caller must not start
// the command's process until Ask returns an approval.
func Ask(p Prompt) Result {
	if !IsInteractive() {
		return Result{Approved: false, UserAction: "auto_deny_non_interactive"}
	}
	return ask(p, os.Stdin, os.Stderr)
}

func ask(p Prompt, in io.Reader, out io.Writer) Result {
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "⚠️  approval required")
	fmt.Fprintf(out, "Command: %s\n", p.Command)
	fmt.Fprintf(out, "Risk: %s\n", p.Verdict.Status)
	if len(p.Verdict.Reasons) > 0 {
		fmt.Fprintln(out, "Reasons:")
		for _, reason := range p.Verdict.Reasons {
			fmt.Fprintf(out, "  • %s\n", reason)
		}
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  [a] approve once — execute this command")
	fmt.Fprintln(out, "  [d] deny — do not execute")
	fmt.Fprintln(out, "")

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "Your choice [a/d]: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return Result{Approved: false, UserAction: "error_reading_input"}
		}
		switch strings.TrimSpace(strings.ToLower(input)) {
		case "a", "approve", "y", "yes":
			return Result{Approved: true, UserAction: "approve_once"}
		case "d", "deny", "n", "no":
			return Result{Approved: false, UserAction: "deny"}
		default:
			fmt.Fprintln(out, "Please enter 'a' to approve or 'd' to deny.")
		}
	}
}
