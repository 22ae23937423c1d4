package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Terminal reads operator answers from the controlling terminal, so that a
// filename list piped through stdin is never consumed as answers.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	closer io.Closer
}

// NewTerminal returns a Terminal bound to stdin when stdin is a real
// terminal, and to /dev/tty otherwise. It fails when neither is interactive,
// e.g. when the whole process runs without a terminal attached.
func NewTerminal() (*Terminal, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return &Terminal{in: bufio.NewReader(os.Stdin), out: os.Stderr}, nil
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("no interactive terminal available: %w", err)
	}

	return &Terminal{in: bufio.NewReader(tty), out: tty, closer: tty}, nil
}

// Ask prints the label and returns the operator's next line, trimmed.
// io.EOF is returned when the terminal is closed with no pending input.
func (t *Terminal) Ask(label string) (string, error) {
	if _, err := fmt.Fprint(t.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := t.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		// A last line without a trailing newline is still an answer.
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}

	return line, nil
}

func (t *Terminal) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}
