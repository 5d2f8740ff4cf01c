// Package keygate asks the operator for a single accept/cancel keypress.
//
// ENTER (carriage return or line feed) accepts. Every other key cancels,
// and Ctrl+C is reported as ErrInterrupted.
package keygate

import (
	"context"
	"errors"
)

// Decision is the operator's answer to a suggested command
type Decision int

const (
	// Cancel discards the suggestion
	Cancel Decision = iota
	// Accept runs the suggestion
	Accept
)

func (d Decision) String() string {
	if d == Accept {
		return "accept"
	}
	return "cancel"
}

// Control keys with a fixed meaning
const (
	KeyEnter     = '\r'
	KeyLineFeed  = '\n'
	KeyInterrupt = 0x03
	KeyEscape    = 0x1b
)

// ErrInterrupted is returned when the operator presses Ctrl+C at the gate
var ErrInterrupted = errors.New("interrupted")

// KeyReader blocks until one key is pressed and returns it
type KeyReader interface {
	ReadKey() (rune, error)
}

// Classify maps a key to a Decision
func Classify(key rune) Decision {
	if key == KeyEnter || key == KeyLineFeed {
		return Accept
	}
	return Cancel
}

// Gate asks for exactly one keypress per call
type Gate struct {
	reader KeyReader
}

// New creates a Gate reading from r
func New(r KeyReader) *Gate {
	return &Gate{reader: r}
}

// Confirm blocks for one key. There is no timeout.
func (g *Gate) Confirm(ctx context.Context) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Cancel, ErrInterrupted
	}

	key, err := g.reader.ReadKey()
	if err != nil {
		return Cancel, err
	}
	if key == KeyInterrupt {
		return Cancel, ErrInterrupted
	}

	// A signal may have cancelled the session while we were blocked
	if ctx.Err() != nil {
		return Cancel, ErrInterrupted
	}
	return Classify(key), nil
}
