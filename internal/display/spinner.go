package display

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress while a request is in flight
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner on stderr with the given message
func NewSpinner(message string) *Spinner {
	return newSpinner(os.Stderr, message)
}

func newSpinner(w io.Writer, message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins the animation
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop ends the animation and clears its line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}
