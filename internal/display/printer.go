// Package display renders the executor's terminal output.
package display

import (
	"fmt"
	"io"

	"github.com/quocvuong92/ai-exec/internal/session"
)

const indent = "      "

var _ session.Reporter = (*Printer)(nil)

// Printer writes session progress to the operator. It implements
// session.Reporter.
type Printer struct {
	out         io.Writer
	styles      Styles
	interactive bool
}

// NewPrinter creates a Printer on out. The translation spinner is only shown
// when interactive is set.
func NewPrinter(out io.Writer, interactive bool) *Printer {
	return &Printer{
		out:         out,
		styles:      NewStyles(out),
		interactive: interactive,
	}
}

// Banner prints the startup message
func (p *Printer) Banner(provider, model string) {
	fmt.Fprintln(p.out, "--- AI Command Executor Initialized ---")
	fmt.Fprintln(p.out, p.styles.Muted.Render(fmt.Sprintf("Provider: %s | Model: %s", provider, model)))
	fmt.Fprintln(p.out, "Type what you want to do, or type 'exit' to quit.")
}

// Goodbye prints the shutdown message
func (p *Printer) Goodbye() {
	fmt.Fprintln(p.out, "\n--- Executor Shut Down ---")
}

// Error prints err in the error color
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.styles.Error.Render("Error: "+err.Error()))
}

// PromptPrefix returns the line-input prompt for wd without color
func PromptPrefix(wd string) string {
	return wd + " > "
}

// Prompt implements session.Reporter
func (p *Printer) Prompt(wd string) {
	fmt.Fprintf(p.out, "\n%s > ", p.styles.Prompt.Render(wd))
}

// Translating implements session.Reporter
func (p *Printer) Translating() func() {
	if !p.interactive {
		return func() {}
	}
	sp := NewSpinner("Translating...")
	sp.Start()
	return sp.Stop
}

// Suggest implements session.Reporter. The hint is left without a newline
// so the key press lands on the same line.
func (p *Printer) Suggest(command string) {
	fmt.Fprintf(p.out, "  └── AI Suggestion: %s\n", p.styles.Suggestion.Render(command))
	fmt.Fprintf(p.out, "%sPress %s to execute, %s to cancel...",
		indent, p.styles.Accept.Render("ENTER"), p.styles.Cancel.Render("ESC"))
}

// Confirmed implements session.Reporter
func (p *Printer) Confirmed() {
	fmt.Fprintln(p.out)
}

// Executing implements session.Reporter
func (p *Printer) Executing(string) {
	fmt.Fprintln(p.out, indent+"--- Executing (press Ctrl+C to stop) ---")
}

// Report implements session.Reporter
func (p *Printer) Report(turn session.Turn) {
	out := turn.Outcome
	switch out.Kind {
	case session.DirectoryChanged:
		if target, _ := session.DirectoryTarget(turn.Command); target == "" || target == "~" {
			fmt.Fprintln(p.out, indent+"--- Directory changed to home ---")
		} else {
			fmt.Fprintln(p.out, indent+"--- Directory changed ---")
		}
	case session.Executed:
		if out.ExitStatus == 0 {
			fmt.Fprintln(p.out, indent+"--- Done ---")
		} else {
			fmt.Fprintf(p.out, "%s--- Done (exit status %d) ---\n", indent, out.ExitStatus)
		}
	case session.Cancelled:
		if out.Err != nil {
			p.Error(out.Err)
		}
		fmt.Fprintln(p.out, indent+"Operation cancelled.")
	case session.TranslationEmpty:
		fmt.Fprintln(p.out, "  └── AI did not return a command.")
	case session.TranslationFailure:
		p.Error(fmt.Errorf("translation failed: %w", out.Err))
	case session.DirectoryError, session.ExecutionError:
		p.Error(out.Err)
	}
}
