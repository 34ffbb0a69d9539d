package shell

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/jkim/ish/internal/config"
)

const prompt = "% "

// Shell is the interactive driver: it owns the program-name cell, the
// diagnostics formatter, the signal regime, and the tunables loaded from
// Config. One Shell runs one process's lifetime.
type Shell struct {
	diag   *Diagnostics
	cfg    *config.Config
	regime *SignalRegime
	in     *bufio.Reader
}

// New builds a Shell that reads from in and reports diagnostics under
// programName. The caller is responsible for calling Stop on the
// returned Shell's signal regime before the process exits.
func New(programName string, in io.Reader, out io.Writer, cfg *config.Config) *Shell {
	sh := &Shell{
		diag: NewDiagnostics(programName, out),
		cfg:  cfg,
		in:   bufio.NewReader(in),
	}
	sh.regime = NewSignalRegime(out, cfg.AlarmSeconds, sh.quitNow)
	return sh
}

// quitNow is invoked from the signal-handling goroutine on the second
// quit press. Run cannot observe this exit — it bypasses the normal
// line-by-line loop entirely, matching the two-press quit protocol's
// requirement that it work regardless of what the shell is doing when
// the second press arrives.
func (sh *Shell) quitNow() {
	sh.regime.Stop()
	os.Exit(0)
}

// Stop tears down the Shell's signal regime. Call once before exiting.
func (sh *Shell) Stop() {
	sh.regime.Stop()
}

// Run executes the startup script (if any) followed by the interactive
// loop, returning the process exit status once the loop ends — either
// at end of file or because a line ran the exit built-in.
func (sh *Shell) Run() int {
	if home, err := os.UserHomeDir(); err == nil {
		if exit, status := sh.runStartupScript(filepath.Join(home, ".ishrc")); exit {
			return status
		}
	}
	return sh.runInteractive()
}

// runStartupScript processes a plain-text startup script one line at a
// time, echoing each as "% <line>" before executing it exactly as if it
// had been typed at the interactive prompt. A missing, unreadable, or
// empty script is silently skipped. It stops early if a line runs the
// exit built-in.
func (sh *Shell) runStartupScript(path string) (exit bool, status int) {
	f, err := os.Open(path)
	if err != nil {
		return false, 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		sh.diag.Out.Write([]byte(prompt + line + "\n"))
		if exit, status := sh.execute(line); exit {
			return true, status
		}
	}
	return false, 0
}

// runInteractive writes the prompt, reads one line, dispatches it, and
// repeats until end of file (status 0) or a line runs the exit
// built-in.
func (sh *Shell) runInteractive() int {
	for {
		sh.diag.Out.Write([]byte(prompt))

		line, err := sh.readLine()
		if err == io.EOF {
			return 0
		}
		if err != nil {
			sh.diag.Printf("%s", err)
			continue
		}

		if exit, status := sh.execute(line); exit {
			return status
		}
	}
}

func (sh *Shell) readLine() (string, error) {
	line, err := sh.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	n = len(s)
	if n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// execute lexes, validates, and dispatches a single line, reporting any
// error through diag. It returns exit=true only when the line ran the
// exit built-in, in which case the caller must stop the loop.
func (sh *Shell) execute(line string) (exit bool, status int) {
	tokens, err := Lex(line, sh.cfg.MaxLineSize)
	if err != nil {
		sh.diag.Printf("%s", err)
		return false, 0
	}
	if tokens.Len() == 0 {
		return false, 0
	}

	if err := Validate(tokens); err != nil {
		sh.diag.Printf("%s", err)
		return false, 0
	}

	kind := Classify(tokens[0].Text)
	if kind != Normal {
		return RunBuiltin(kind, tokens, sh.diag)
	}

	pipeline := BuildPipeline(tokens)
	if err := pipeline.Run(sh.diag, sh.regime); err != nil {
		sh.diag.Printf("%s", err)
	}
	return false, 0
}
