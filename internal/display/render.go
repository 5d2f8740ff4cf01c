package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 100

var (
	rendererMu sync.Mutex
	mdRenderer *glamour.TermRenderer
)

// InitRenderer prepares the markdown renderer
func InitRenderer() error {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if mdRenderer != nil {
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	mdRenderer = r
	return nil
}

// RenderMarkdown renders md for the terminal. Without a renderer the text
// is returned unchanged.
func RenderMarkdown(md string) string {
	rendererMu.Lock()
	r := mdRenderer
	rendererMu.Unlock()

	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// ShowContent writes plain text to w, ending with one newline
func ShowContent(w io.Writer, content string) error {
	_, err := fmt.Fprintln(w, strings.TrimRight(content, "\n"))
	return err
}

// ShowContentRendered writes markdown to w, falling back to plain text when
// no renderer could be created
func ShowContentRendered(w io.Writer, content string) error {
	if err := InitRenderer(); err != nil {
		return ShowContent(w, content)
	}
	_, err := io.WriteString(w, RenderMarkdown(content))
	return err
}

// ShowError prints an error message to stderr
func ShowError(msg string) {
	fmt.Fprintln(os.Stderr, NewStyles(os.Stderr).Error.Render("Error: "+msg))
}
