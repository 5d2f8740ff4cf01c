package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/quocvuong92/ai-exec/internal/constants"
	"github.com/quocvuong92/ai-exec/internal/keygate"
	"github.com/quocvuong92/ai-exec/internal/logging"
)

// Translator turns a request into a command; "" means no command
type Translator interface {
	Translate(ctx context.Context, request string) (string, error)
}

// Confirmer asks the operator to accept or cancel a suggestion
type Confirmer interface {
	Confirm(ctx context.Context) (keygate.Decision, error)
}

// Reporter presents the loop's progress to the operator
type Reporter interface {
	// Prompt shows the input prompt for line-mode input
	Prompt(wd string)
	// Translating starts a progress indicator and returns its stop function
	Translating() (stop func())
	// Suggest shows a command and the accept/cancel hint
	Suggest(command string)
	// Confirmed is called once the gate has a decision or failed
	Confirmed()
	// Executing is called right before a generic command starts
	Executing(command string)
	// Report shows how a turn ended
	Report(turn Turn)
}

// LineReader supplies request lines. io.EOF ends the session normally.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// Loop drives turns against one Session
type Loop struct {
	session    *Session
	translator Translator
	gate       Confirmer
	dispatcher *Dispatcher
	reporter   Reporter
	log        *logging.FieldLogger
}

// NewLoop wires a loop together. A nil reporter discards all output.
func NewLoop(s *Session, t Translator, g Confirmer, runner Runner, r Reporter) *Loop {
	if r == nil {
		r = nopReporter{}
	}
	d := NewDispatcher(runner)
	d.BeforeRun = r.Executing

	return &Loop{
		session:    s,
		translator: t,
		gate:       g,
		dispatcher: d,
		reporter:   r,
		log:        logging.WithFields(logging.Fields{"session": s.ID}),
	}
}

// Session returns the session the loop mutates
func (l *Loop) Session() *Session {
	return l.session
}

// IsExitSentinel reports whether line asks to end the session
func IsExitSentinel(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), constants.ExitSentinel)
}

// Step runs one turn for line. The returned error is ErrInterrupted when the
// operator interrupted the turn; every other failure is an Outcome.
func (l *Loop) Step(ctx context.Context, line string) (Turn, error) {
	request := strings.TrimRight(line, "\r\n")
	turn := Turn{Request: request}

	if strings.TrimSpace(request) == "" {
		return turn, nil
	}
	if IsExitSentinel(request) {
		turn.Outcome.Kind = Exited
		return l.finish(turn), nil
	}
	if ctx.Err() != nil {
		return turn, ErrInterrupted
	}

	stop := l.reporter.Translating()
	command, err := l.translator.Translate(ctx, request)
	stop()
	if err != nil {
		if ctx.Err() != nil {
			return turn, ErrInterrupted
		}
		turn.Outcome = Outcome{Kind: TranslationFailure, Err: err}
		return l.finish(turn), nil
	}

	turn.Command = strings.TrimSpace(command)
	if turn.Command == "" {
		turn.Outcome.Kind = TranslationEmpty
		return l.finish(turn), nil
	}

	l.reporter.Suggest(turn.Command)
	decision, err := l.gate.Confirm(ctx)
	l.reporter.Confirmed()
	turn.Decision = decision

	switch {
	case errors.Is(err, keygate.ErrInterrupted):
		return turn, ErrInterrupted
	case errors.Is(err, io.EOF):
		turn.Decision = keygate.Cancel
		turn.Outcome.Kind = Exited
		return l.finish(turn), nil
	case err != nil:
		turn.Decision = keygate.Cancel
		turn.Outcome = Outcome{Kind: Cancelled, Err: err}
		return l.finish(turn), nil
	}

	if decision != keygate.Accept {
		turn.Outcome.Kind = Cancelled
		return l.finish(turn), nil
	}

	turn.Outcome = l.dispatcher.Dispatch(ctx, l.session, turn.Command)
	return l.finish(turn), nil
}

func (l *Loop) finish(turn Turn) Turn {
	l.reporter.Report(turn)

	fields := logging.Fields{
		"request": turn.Request,
		"command": turn.Command,
		"outcome": turn.Outcome.Kind.String(),
		"wd":      l.session.WorkingDirectory(),
	}
	switch turn.Outcome.Kind {
	case Executed:
		fields["exit_status"] = turn.Outcome.ExitStatus
	case DirectoryChanged, DirectoryError:
		fields["path"] = turn.Outcome.Path
	}
	if turn.Outcome.Err != nil {
		l.log.Error("turn failed", turn.Outcome.Err, fields)
	} else {
		l.log.Debug("turn finished", fields)
	}
	return turn
}

// Run reads lines from in until the exit sentinel, end of input, or an
// interrupt. It returns nil for a normal exit and ErrInterrupted otherwise.
func (l *Loop) Run(ctx context.Context, in LineReader) error {
	for {
		if ctx.Err() != nil {
			return ErrInterrupted
		}

		l.reporter.Prompt(l.session.WorkingDirectory())
		line, err := in.ReadLine(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, ErrInterrupted), ctx.Err() != nil:
				return ErrInterrupted
			}
			return err
		}

		turn, err := l.Step(ctx, line)
		if err != nil {
			return err
		}
		if turn.Outcome.Kind == Exited {
			return nil
		}
	}
}

// BufferedLineReader reads request lines from a buffered stream. Reads block
// until a full line arrives; the context is not consulted mid-read.
type BufferedLineReader struct {
	in *bufio.Reader
}

// NewBufferedLineReader wraps in
func NewBufferedLineReader(in *bufio.Reader) *BufferedLineReader {
	return &BufferedLineReader{in: in}
}

// ReadLine implements LineReader
func (r *BufferedLineReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type nopReporter struct{}

func (nopReporter) Prompt(string) {}
func (nopReporter) Translating() func() { return func() {} }
func (nopReporter) Suggest(string) {}
func (nopReporter) Confirmed() {}
func (nopReporter) Executing(string) {}
func (nopReporter) Report(Turn) {}
