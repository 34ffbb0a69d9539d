package shell

import (
	"fmt"
	"os"
	"os/exec"
)

// Command is the logical unit between pipe boundaries. Argv is
// non-empty; Argv[0] is the program name. InputFile/OutputFile are empty
// when no redirection of that kind was present.
type Command struct {
	Argv       []string
	InputFile  string
	OutputFile string
}

// Pipeline is a non-empty ordered sequence of Commands. A pipeline of
// length n requires n-1 anonymous pipes; only the first Command may
// carry input redirection, only the last may carry output redirection
// (both already enforced by Validate before a Pipeline is built).
type Pipeline struct {
	Commands []Command
}

// BuildPipeline decomposes a validated, non-builtin TokenSequence into a
// Pipeline. tokens must already have passed Validate.
func BuildPipeline(tokens TokenSequence) Pipeline {
	var p Pipeline
	for _, seg := range SplitByPipe(tokens) {
		var cmd Command
		for i := 0; i < len(seg); i++ {
			tok := seg[i]
			switch tok.Type {
			case TokenWord:
				cmd.Argv = append(cmd.Argv, tok.Text)
			case TokenRedirIn:
				cmd.InputFile = seg[i+1].Text
				i++
			case TokenRedirOut:
				cmd.OutputFile = seg[i+1].Text
				i++
			case TokenBackground:
				// Accepted by Validate; this shell has no job control
				// and always runs the pipeline in the foreground.
			}
		}
		p.Commands = append(p.Commands, cmd)
	}
	return p
}

// Run spawns the pipeline's children, wires their descriptors, and
// blocks until every one of them has been awaited. The parent's own
// stdin/stdout are never modified; diag reports failures — a missing
// program, an unopenable redirection target — for the offending command
// without aborting its siblings.
//
// regime.Suspend/Resume narrow the window during which SIGINT/SIGQUIT
// still carry the parent's ignore-disposition, so that every child
// forked here ends up with the default disposition (see signal.go).
func (p Pipeline) Run(diag *Diagnostics, regime *SignalRegime) error {
	n := len(p.Commands)
	if n == 0 {
		return nil
	}

	cmds := make([]*exec.Cmd, n)
	var fileClosers []*os.File

	// n-1 anonymous pipes connecting consecutive commands.
	readEnds := make([]*os.File, n)
	writeEnds := make([]*os.File, n)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			for _, f := range fileClosers {
				f.Close()
			}
			return fmt.Errorf("failed to create pipe: %w", err)
		}
		readEnds[i+1] = r
		writeEnds[i] = w
	}

	for i, c := range p.Commands {
		ec := exec.Command(c.Argv[0], c.Argv[1:]...)

		ec.Stdin = os.Stdin
		ec.Stdout = os.Stdout
		ec.Stderr = os.Stderr
		if i > 0 {
			ec.Stdin = readEnds[i]
		}
		if i < n-1 {
			ec.Stdout = writeEnds[i]
		}

		if c.InputFile != "" {
			f, err := os.Open(c.InputFile)
			if err != nil {
				diag.Printf("%s", err)
				cmds[i] = nil
				continue
			}
			fileClosers = append(fileClosers, f)
			ec.Stdin = f
		}
		if c.OutputFile != "" {
			f, err := os.OpenFile(c.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				diag.Printf("%s", err)
				cmds[i] = nil
				continue
			}
			fileClosers = append(fileClosers, f)
			ec.Stdout = f
		}

		cmds[i] = ec
	}

	// Restore default SIGINT/SIGQUIT disposition for the narrow window
	// in which children are actually forked, then reinstate the parent's
	// handlers once every child that could start has started.
	regime.Suspend()
	for i, ec := range cmds {
		if ec == nil {
			continue
		}
		path, err := exec.LookPath(ec.Path)
		if err != nil {
			diag.Printf("%s: No such file or directory", ec.Path)
			cmds[i] = nil
			continue
		}
		ec.Path = path
		if err := ec.Start(); err != nil {
			diag.Printf("%s: %s", ec.Args[0], err)
			cmds[i] = nil
		}
	}
	regime.Resume()

	// The parent holds no pipe-end past the point both neighbors sharing
	// it have been spawned (or failed to spawn); every end is closed
	// here, in the parent, regardless of which children actually started.
	for i := 0; i < n-1; i++ {
		writeEnds[i].Close()
		readEnds[i+1].Close()
	}
	for _, f := range fileClosers {
		f.Close()
	}

	for _, ec := range cmds {
		if ec == nil {
			continue
		}
		ec.Wait()
	}
	return nil
}
