package shell

import (
	"os"
)

// BuiltinKind names the reserved command recognized by Classify.
type BuiltinKind int

const (
	Normal BuiltinKind = iota
	BuiltinExit
	BuiltinSetenv
	BuiltinUnsetenv
	BuiltinCd
)

// Classify inspects the first Word of a command and reports which
// built-in it names, if any. Comparisons are exact, case-sensitive,
// whole-word.
func Classify(firstWord string) BuiltinKind {
	switch firstWord {
	case "exit":
		return BuiltinExit
	case "setenv":
		return BuiltinSetenv
	case "unsetenv":
		return BuiltinUnsetenv
	case "cd":
		return BuiltinCd
	default:
		return Normal
	}
}

// hasRedirectionOrPipe reports whether tokens carry any RedirIn, RedirOut,
// or Pipe — a built-in never opens files or wires descriptors, so any of
// these disqualify the line before the handler runs.
func hasRedirectionOrPipe(tokens TokenSequence) bool {
	for _, tok := range tokens {
		switch tok.Type {
		case TokenRedirIn, TokenRedirOut, TokenPipe:
			return true
		}
	}
	return false
}

// words extracts the Text of every TokenWord in order, ignoring any
// metacharacter tokens (used only after hasRedirectionOrPipe has already
// rejected lines that carry one).
func words(tokens TokenSequence) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TokenWord {
			out = append(out, tok.Text)
		}
	}
	return out
}

// RunBuiltin executes the built-in named by kind against tokens (the
// line's full token sequence; its Words, command name first, become the
// handler's arguments).
// It reports whether the shell should now exit and the exit status to
// use when it does. Usage errors are written to stderr via diag and
// never terminate the shell (except BuiltinExit, which always does).
func RunBuiltin(kind BuiltinKind, tokens TokenSequence, diag *Diagnostics) (exit bool, status int) {
	if hasRedirectionOrPipe(tokens) {
		diag.Printf("Redirection and piping are not supported for builtin commands")
		return false, 0
	}

	args := words(tokens)

	switch kind {
	case BuiltinExit:
		return runExit(args, diag)
	case BuiltinCd:
		runCd(args, diag)
	case BuiltinSetenv:
		runSetenv(args, diag)
	case BuiltinUnsetenv:
		runUnsetenv(args, diag)
	}
	return false, 0
}

func runExit(args []string, diag *Diagnostics) (bool, int) {
	if len(args) != 1 {
		diag.Printf("exit does not take any parameters")
		return false, 0
	}
	return true, 0
}

func runCd(args []string, diag *Diagnostics) {
	var target string
	switch len(args) {
	case 1:
		target = os.Getenv("HOME")
		if target == "" {
			diag.Printf("cd: HOME not set")
			return
		}
	case 2:
		target = args[1]
	default:
		diag.Printf("cd takes one parameter")
		return
	}

	if err := os.Chdir(target); err != nil {
		diag.Printf("%s", err)
	}
}

func runSetenv(args []string, diag *Diagnostics) {
	switch len(args) {
	case 2:
		if err := os.Setenv(args[1], ""); err != nil {
			diag.Printf("%s", err)
		}
	case 3:
		if err := os.Setenv(args[1], args[2]); err != nil {
			diag.Printf("%s", err)
		}
	default:
		diag.Printf("setenv takes one or two parameters")
	}
}

func runUnsetenv(args []string, diag *Diagnostics) {
	if len(args) != 2 {
		diag.Printf("unsetenv takes one parameter")
		return
	}
	if err := os.Unsetenv(args[1]); err != nil {
		diag.Printf("%s", err)
	}
}
