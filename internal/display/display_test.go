package display

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/ai-exec/internal/executor"
	"github.com/quocvuong92/ai-exec/internal/session"
)

func TestPrinter_Banner(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Banner("Google Gemini", "gemini-1.5-flash")
	p.Goodbye()

	out := buf.String()
	assert.Contains(t, out, "--- AI Command Executor Initialized ---")
	assert.Contains(t, out, "Provider: Google Gemini | Model: gemini-1.5-flash")
	assert.Contains(t, out, "type 'exit' to quit")
	assert.True(t, strings.HasSuffix(out, "\n--- Executor Shut Down ---\n"))
}

func TestPrinter_PlainOutputHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Prompt("/home/user")
	p.Suggest("ls -la")
	p.Confirmed()

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t,
		"\n/home/user > "+
			"  └── AI Suggestion: ls -la\n"+
			"      Press ENTER to execute, ESC to cancel...\n",
		out)
}

func TestPrinter_Report(t *testing.T) {
	tests := []struct {
		name string
		turn session.Turn
		want string
	}{
		{
			name: "directory changed",
			turn: session.Turn{Command: "cd src", Outcome: session.Outcome{Kind: session.DirectoryChanged, Path: "/x/src"}},
			want: "      --- Directory changed ---\n",
		},
		{
			name: "directory changed home",
			turn: session.Turn{Command: "cd", Outcome: session.Outcome{Kind: session.DirectoryChanged, Path: "/home/u"}},
			want: "      --- Directory changed to home ---\n",
		},
		{
			name: "done",
			turn: session.Turn{Command: "ls", Outcome: session.Outcome{Kind: session.Executed}},
			want: "      --- Done ---\n",
		},
		{
			name: "done with status",
			turn: session.Turn{Command: "false", Outcome: session.Outcome{Kind: session.Executed, ExitStatus: 1}},
			want: "      --- Done (exit status 1) ---\n",
		},
		{
			name: "cancelled",
			turn: session.Turn{Command: "ls", Outcome: session.Outcome{Kind: session.Cancelled}},
			want: "      Operation cancelled.\n",
		},
		{
			name: "empty translation",
			turn: session.Turn{Outcome: session.Outcome{Kind: session.TranslationEmpty}},
			want: "  └── AI did not return a command.\n",
		},
		{
			name: "translation failure",
			turn: session.Turn{Outcome: session.Outcome{Kind: session.TranslationFailure, Err: errors.New("quota exceeded")}},
			want: "Error: translation failed: quota exceeded\n",
		},
		{
			name: "directory error",
			turn: session.Turn{Command: "cd /nope", Outcome: session.Outcome{
				Kind: session.DirectoryError,
				Path: "/nope",
				Err:  &executor.DirError{Path: "/nope", Err: os.ErrNotExist},
			}},
			want: "Error: cannot change directory to /nope: file does not exist\n",
		},
		{
			name: "idle",
			turn: session.Turn{},
			want: "",
		},
		{
			name: "exited",
			turn: session.Turn{Request: "exit", Outcome: session.Outcome{Kind: session.Exited}},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, false).Report(tt.turn)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_Executing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Executing("make")
	assert.Equal(t, "      --- Executing (press Ctrl+C to stop) ---\n", buf.String())
}

func TestPrinter_TranslatingNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	stop := NewPrinter(&buf, false).Translating()
	stop()
	assert.Empty(t, buf.String())
}

func TestPromptPrefix(t *testing.T) {
	assert.Equal(t, "/tmp > ", PromptPrefix("/tmp"))
}

func TestRenderMarkdown(t *testing.T) {
	require.NoError(t, InitRenderer())
	require.NoError(t, InitRenderer())

	out := RenderMarkdown("# Status\n\n- provider: gemini\n")
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "provider: gemini")
}

func TestPrinter_TranslatingInteractive(t *testing.T) {
	var buf bytes.Buffer
	stop := NewPrinter(&buf, true).Translating()
	require.NotNil(t, stop)
	stop()
	assert.Empty(t, buf.String(), "spinner writes to stderr, not the session output")
}

func TestShowContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ShowContent(&buf, "line one\nline two\n\n"))
	assert.Equal(t, "line one\nline two\n", buf.String())
}

func TestShowContentRendered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ShowContentRendered(&buf, "# Status\n\n- **Shell:** /bin/sh\n"))
	assert.Contains(t, buf.String(), "Status")
	assert.Contains(t, buf.String(), "/bin/sh")
}
