// Package cmd implements the CLI commands for ai-exec.
//
// # Layout
//
//   - root.go: App, the cobra command tree, flags, and session startup
//   - interactive.go: go-prompt front end used when stdin and stdout are terminals
//   - plain.go: line-mode front end for piped input
//   - signals.go: routes SIGINT/SIGTERM between a running child and the session
//   - status.go: the status and config init subcommands
//
// # Interrupts
//
// Ctrl+C at the line editor or at the ENTER/ESC gate ends the session. While
// a command runs, Ctrl+C reaches the command through the terminal and the
// session continues once it exits.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
