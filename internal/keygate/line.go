package keygate

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// LineReader reads keys from a non-terminal stream, one line per key.
// An empty line is ENTER; otherwise the first character counts and the
// rest of the line is discarded.
type LineReader struct {
	in *bufio.Reader
}

// NewLineReader creates a LineReader. Pass the same *bufio.Reader that
// serves request lines so both consumers see one buffered stream.
func NewLineReader(in *bufio.Reader) *LineReader {
	return &LineReader{in: in}
}

// ReadKey implements KeyReader
func (r *LineReader) ReadKey() (rune, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, err
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return KeyEnter, nil
	}
	key, _ := utf8.DecodeRuneInString(line)
	return key, nil
}
