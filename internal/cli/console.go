package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
)

// Terminal is the interactive console. Secrets are read without echo when
// stdin is a real terminal; with piped input it falls back to plain line
// reads so scripted runs still work.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

func NewTerminal() *Terminal {
	fd := int(os.Stdin.Fd())
	return &Terminal{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		fd:     fd,
		isTerm: term.IsTerminal(fd),
	}
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) ReadSecret(prompt string) (string, error) {
	if !t.isTerm {
		return t.ReadLine(prompt)
	}
	fmt.Fprint(t.out, prompt)
	secret, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

var _ interfaces.Console = (*Terminal)(nil)
