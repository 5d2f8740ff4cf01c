package cmd

import (
	"bufio"
	"context"
	"io"

	"github.com/quocvuong92/ai-exec/internal/display"
	"github.com/quocvuong92/ai-exec/internal/keygate"
	"github.com/quocvuong92/ai-exec/internal/session"
)

// runPlain drives the session from a non-terminal input, one request per
// line. The key gate reads from the same stream: an empty line accepts.
func runPlain(ctx context.Context, sess *session.Session, t session.Translator, runner session.Runner, printer *display.Printer, in io.Reader) error {
	br := bufio.NewReader(in)
	gate := keygate.New(keygate.NewLineReader(br))
	loop := session.NewLoop(sess, t, gate, runner, printer)

	// Reads block without watching ctx, so the loop runs on its own
	// goroutine and an interrupt returns immediately.
	result := make(chan error, 1)
	go func() {
		result <- loop.Run(ctx, session.NewBufferedLineReader(br))
	}()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return session.ErrInterrupted
	}
}
