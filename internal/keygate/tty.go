package keygate

import (
	"fmt"

	"github.com/mattn/go-tty"
)

// TTYReader reads single keys from the controlling terminal in raw mode
type TTYReader struct {
	tty *tty.TTY
}

// OpenTTY opens the controlling terminal
func OpenTTY() (*TTYReader, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return &TTYReader{tty: t}, nil
}

// ReadKey switches the terminal to raw mode for one key and restores it.
// Bytes that arrived with the key, such as the tail of an arrow-key escape
// sequence, are discarded so they cannot reach the next prompt.
func (r *TTYReader) ReadKey() (rune, error) {
	restore, err := r.tty.Raw()
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = restore() }()

	key, err := r.tty.ReadRune()
	if err != nil {
		return 0, err
	}

	for r.tty.Buffered() {
		if _, err := r.tty.ReadRune(); err != nil {
			break
		}
	}
	return key, nil
}

// Close releases the terminal
func (r *TTYReader) Close() error {
	return r.tty.Close()
}

// TerminalKeys opens the controlling terminal for each key and closes it
// afterwards, so line editors and child programs see the terminal in its
// normal mode between reads.
type TerminalKeys struct{}

// ReadKey implements KeyReader
func (TerminalKeys) ReadKey() (rune, error) {
	r, err := OpenTTY()
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return r.ReadKey()
}
