package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/tiler/pkg/errors"
)

// Exit codes returned by the tiler binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitBadLayout   = 2
	ExitInterrupted = 130
)

// ExitCode maps err to a process exit code. Layout and input errors exit
// with ExitBadLayout so scripts can tell them from runtime failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsClient(err):
		return ExitBadLayout
	default:
		return ExitFailure
	}
}

// ReportError writes err to w in the error style. Interrupts are not
// reported.
func ReportError(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	msg := err.Error()
	if code := errors.GetCode(err); code != "" {
		msg = fmt.Sprintf("%s [%s]", errors.UserMessage(err), code)
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}
