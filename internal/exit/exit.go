package exit

import "fmt"

// Process exit codes. Zero is success, including runs where some instance
// tagging calls failed.
const (
	CodeConfig    = 1
	CodeDiscovery = 2
	CodeArtifacts = 3
	CodeDNS       = 4
)

type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, err error) error {
	return &Error{Code: code, Err: err}
}

func Newf(code int, format string, args ...any) error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}
