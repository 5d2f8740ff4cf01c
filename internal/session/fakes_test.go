package session

import (
	"context"
	"fmt"
	"io"

	"github.com/quocvuong92/ai-exec/internal/keygate"
)

// events records the order in which collaborators were called
type events []string

func (e *events) add(format string, args ...any) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

type fakeTranslator struct {
	log     *events
	replies map[string]string
	err     error
	calls   int
}

func (f *fakeTranslator) Translate(ctx context.Context, request string) (string, error) {
	f.calls++
	f.log.add("translate %s", request)
	if f.err != nil {
		return "", f.err
	}
	return f.replies[request], nil
}

type fakeGate struct {
	log   *events
	keys  []rune
	err   error
	calls int
}

func (f *fakeGate) Confirm(ctx context.Context) (keygate.Decision, error) {
	f.calls++
	f.log.add("confirm")
	if f.err != nil {
		return keygate.Cancel, f.err
	}
	if len(f.keys) == 0 {
		return keygate.Cancel, io.EOF
	}
	key := f.keys[0]
	f.keys = f.keys[1:]
	if key == keygate.KeyInterrupt {
		return keygate.Cancel, keygate.ErrInterrupted
	}
	return keygate.Classify(key), nil
}

type runCall struct {
	dir     string
	command string
}

type fakeRunner struct {
	log    *events
	status int
	err    error
	runs   []runCall
}

func (f *fakeRunner) Run(ctx context.Context, dir, command string) (int, error) {
	f.log.add("run %s", command)
	f.runs = append(f.runs, runCall{dir: dir, command: command})
	if f.err != nil {
		return -1, f.err
	}
	return f.status, nil
}

type recordingReporter struct {
	log     *events
	prompts []string
	turns   []Turn
}

func (r *recordingReporter) Prompt(wd string) { r.prompts = append(r.prompts, wd) }

func (r *recordingReporter) Translating() func() {
	r.log.add("spinner start")
	return func() { r.log.add("spinner stop") }
}

func (r *recordingReporter) Suggest(command string)   { r.log.add("suggest %s", command) }
func (r *recordingReporter) Confirmed()               { r.log.add("confirmed") }
func (r *recordingReporter) Executing(command string) { r.log.add("executing %s", command) }
func (r *recordingReporter) Report(turn Turn)         { r.turns = append(r.turns, turn) }

// scriptedLines feeds request lines, then io.EOF
type scriptedLines struct {
	lines []string
	err   error
}

func (s *scriptedLines) ReadLine(ctx context.Context) (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// harness bundles a loop with its fakes
type harness struct {
	log        *events
	translator *fakeTranslator
	gate       *fakeGate
	runner     *fakeRunner
	reporter   *recordingReporter
	loop       *Loop
}

func newHarness(s *Session, replies map[string]string, keys ...rune) *harness {
	log := &events{}
	h := &harness{
		log:        log,
		translator: &fakeTranslator{log: log, replies: replies},
		gate:       &fakeGate{log: log, keys: keys},
		runner:     &fakeRunner{log: log},
		reporter:   &recordingReporter{log: log},
	}
	h.loop = NewLoop(s, h.translator, h.gate, h.runner, h.reporter)
	return h
}
