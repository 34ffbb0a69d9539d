package shell

import (
	"fmt"
	"io"
)

// Diagnostics formats and writes the shell's uniform error output:
// "<program-name>: <message>". ProgramName is set once at startup from
// argv[0] and consulted here on every call.
type Diagnostics struct {
	ProgramName string
	Out         io.Writer
}

// NewDiagnostics builds a Diagnostics that writes to w under programName.
func NewDiagnostics(programName string, w io.Writer) *Diagnostics {
	return &Diagnostics{ProgramName: programName, Out: w}
}

// Printf writes "<program-name>: <formatted message>\n" to Out.
func (d *Diagnostics) Printf(format string, args ...any) {
	fmt.Fprintf(d.Out, "%s: %s\n", d.ProgramName, fmt.Sprintf(format, args...))
}
