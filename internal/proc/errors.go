package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// ExitError reports a command that finished with an unexpected exit code.
// Both output streams are carried verbatim so callers can relay them.
type ExitError struct {
	Argv         []string
	ExpectedCode int
	Code         int
	Stdout       []byte
	Stderr       []byte
}

func (e *ExitError) Error() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "command: %q\n", e.Argv)
	fmt.Fprintf(&b, "expected code: %d\n", e.ExpectedCode)
	fmt.Fprintf(&b, "return code: %d\n", e.Code)
	b.WriteString("stdout:")
	b.Write(indentOrNone(e.Stdout))
	b.WriteString("\nstderr:")
	b.Write(indentOrNone(e.Stderr))
	return b.String()
}

// indentOrNone indents every line of part by four spaces, or renders a
// placeholder when the stream is empty.
func indentOrNone(part []byte) []byte {
	if len(part) == 0 {
		return []byte(" (none)")
	}
	indented := append([]byte("\n    "), bytes.ReplaceAll(part, []byte("\n"), []byte("\n    "))...)
	return bytes.TrimRight(indented, " \n")
}

// NotFoundError reports that a command's executable could not be located.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(messages.ProcExecutableNotFoundFmt, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the executable was absent.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func isNotFoundCause(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
