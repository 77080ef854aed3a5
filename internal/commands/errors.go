package commands

import (
	"errors"
	"fmt"
	"io"

	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/task"
)

// report maps a core error to a CLI message and exit code.
func report(errOut io.Writer, err error) int {
	var vErr *task.ValidationError
	var aErr *service.AuthError
	var rErr *service.RemoteError

	switch {
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(errOut, "error: not logged in (run: taskflow login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintln(errOut, "error: session expired (run: taskflow login)")
		return exitcode.AuthError
	case errors.As(err, &vErr):
		fmt.Fprintf(errOut, "error: %v\n", vErr)
		return exitcode.UserError
	case errors.As(err, &aErr):
		fmt.Fprintf(errOut, "error: %v\n", aErr)
		return exitcode.AuthError
	case errors.As(err, &rErr):
		fmt.Fprintf(errOut, "error: backend error: %v\n", rErr)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
