package credentials

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Credentials struct {
	Login    string
	Password string
}

// Provider supplies the proxy login and password for the config file.
type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// Static returns fixed credentials, e.g. taken from the environment.
type Static Credentials

func (s Static) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// Terminal asks for the login (echoed) and the password (hidden when In is
// a terminal).
type Terminal struct {
	In  io.Reader
	Out io.Writer
	// Fd is the descriptor used for hidden input; -1 disables it.
	Fd int
}

// Stdin prompts on the process's standard streams.
func Stdin() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout, Fd: int(os.Stdin.Fd())}
}

func (t *Terminal) Credentials(ctx context.Context) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	reader := bufio.NewReader(t.In)

	fmt.Fprint(t.Out, "Input login: ")
	login, err := readLine(reader)
	if err != nil {
		return Credentials{}, fmt.Errorf("read login: %w", err)
	}

	fmt.Fprint(t.Out, "Password: ")
	var password string
	if t.Fd >= 0 && term.IsTerminal(t.Fd) {
		raw, err := term.ReadPassword(t.Fd)
		fmt.Fprintln(t.Out)
		if err != nil {
			return Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	} else {
		password, err = readLine(reader)
		if err != nil {
			return Credentials{}, fmt.Errorf("read password: %w", err)
		}
	}

	return Credentials{Login: login, Password: password}, nil
}

// readLine returns one line without its terminator. A final line without
// newline is accepted; an empty stream is io.ErrUnexpectedEOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
