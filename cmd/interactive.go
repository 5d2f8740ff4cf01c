package cmd

import (
	"context"
	"errors"

	"github.com/elk-language/go-prompt"

	"github.com/quocvuong92/ai-exec/internal/display"
	"github.com/quocvuong92/ai-exec/internal/keygate"
	"github.com/quocvuong92/ai-exec/internal/logging"
	"github.com/quocvuong92/ai-exec/internal/session"
)

// InteractiveSession adapts the session loop to the line editor
type InteractiveSession struct {
	ctx     context.Context
	loop    *session.Loop
	printer *display.Printer

	exitFlag bool
	err      error
}

// newInteractiveSession wires a loop whose gate reads keys from the terminal
func newInteractiveSession(ctx context.Context, sess *session.Session, t session.Translator, g session.Confirmer, runner session.Runner, printer *display.Printer) *InteractiveSession {
	return &InteractiveSession{
		ctx:     ctx,
		loop:    session.NewLoop(sess, t, g, runner, printer),
		printer: printer,
	}
}

// executor handles one line from the editor
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	turn, err := s.loop.Step(s.ctx, input)
	switch {
	case err != nil:
		s.stop(err)
	case turn.Outcome.Kind == session.Exited:
		s.stop(nil)
	}
}

// prefix shows the session's working directory on every prompt
func (s *InteractiveSession) prefix() string {
	return display.PromptPrefix(s.loop.Session().WorkingDirectory())
}

// stop ends the editor loop; err is reported by runInteractive
func (s *InteractiveSession) stop(err error) {
	s.exitFlag = true
	if s.err == nil {
		s.err = err
	}
}

// shouldExit also catches a session cancelled by a signal between lines
func (s *InteractiveSession) shouldExit() bool {
	if !s.exitFlag && s.ctx.Err() != nil {
		s.stop(session.ErrInterrupted)
	}
	return s.exitFlag
}

// runInteractive runs the session behind a go-prompt line editor
func runInteractive(ctx context.Context, sess *session.Session, t session.Translator, runner session.Runner, printer *display.Printer) error {
	s := newInteractiveSession(ctx, sess, t, keygate.New(keygate.TerminalKeys{}), runner, printer)

	p := prompt.New(
		s.executor,
		prompt.WithPrefixCallback(s.prefix),
		prompt.WithTitle("AI Command Executor"),
		prompt.WithPrefixTextColor(prompt.Blue),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.shouldExit()
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				s.stop(session.ErrInterrupted)
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					s.stop(nil)
				}
				return false
			},
		}),
	)

	p.Run()

	if s.err != nil && !errors.Is(s.err, session.ErrInterrupted) {
		logging.Error("interactive session failed", s.err, logging.Fields{"session": sess.ID})
	}
	return s.err
}
