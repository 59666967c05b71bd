// Package clipboard writes text to the system clipboard and decodes the
// outcome of copies made by a web browser.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned when no clipboard mechanism exists on the host.
var ErrUnavailable = errors.New("clipboard: no clipboard tool available")

// ErrDenied is returned when a browser refused or could not perform a copy.
var ErrDenied = errors.New("clipboard: copy denied by browser")

// Result values reported by the browser UI after navigator.clipboard.writeText.
const (
	ResultOK     = "ok"
	ResultDenied = "denied"
)

// Result maps a reported copy result to an error. Anything but ResultOK,
// including a missing value, is a denial.
func Result(result string) error {
	if result == ResultOK {
		return nil
	}
	return ErrDenied
}

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

// WriteText calls f(text).
func (f WriterFunc) WriteText(text string) error {
	return f(text)
}

// System returns the clipboard of the host operating system.
func System() Writer {
	return WriterFunc(copyToClipboard)
}

// pipe runs name with args, feeding text on stdin.
func pipe(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
