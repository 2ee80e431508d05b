package interfaces

// Console is the interactive terminal collaborator: it yields user input as
// strings and renders program output. ReadSecret must not echo the input on a
// real terminal.
type Console interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
	Printf(format string, args ...any)
}
