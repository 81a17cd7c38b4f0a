// Package repl runs tempoch scripts interactively.
//
// Each item read is either an expression, whose value is printed unless
// it is None, or a block of statements ended by a blank line, executed
// for its effects. Line editing and history come from readline.
// Control-C abandons the current line, or cancels the context of the
// item being evaluated.
package repl // import "github.com/Siderust/tempoch/repl"

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/Siderust/tempoch/starlarktempoch"
)

// Options configures a REPL session.
type Options struct {
	Prompt      string // primary prompt; ">>> " if empty
	HistoryFile string // no history is kept if empty
}

// A Session evaluates items against one set of globals.
type Session struct {
	Thread  *starlark.Thread
	Globals starlark.StringDict
	Out     io.Writer // values of expressions
	Err     io.Writer // parse and evaluation errors
}

// REPL reads items from the terminal and evaluates them until EOF.
//
// The thread local "context" holds a context.Context that a SIGINT
// cancels, for builtins that can stop early.
func REPL(thread *starlark.Thread, globals starlark.StringDict, opts Options) error {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = ">>> "
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     opts.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting line editor: %w", err)
	}
	defer rl.Close()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	s := &Session{Thread: thread, Globals: globals, Out: os.Stdout, Err: os.Stderr}
	for {
		err := s.interactive(rl, prompt, sigint)
		if err == readline.ErrInterrupt {
			fmt.Fprintln(s.Out, err)
			continue
		}
		if err != nil {
			break
		}
	}
	fmt.Fprintln(s.Out)
	return nil
}

// interactive evaluates one item read from rl under a context that
// sigint cancels. Readline itself turns Control-C into ErrInterrupt.
func (s *Session) interactive(rl *readline.Instance, prompt string, sigint <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sigint:
			cancel()
		case <-ctx.Done():
		}
	}()
	s.Thread.SetLocal("context", ctx)

	rl.SetPrompt(prompt)
	return s.Eval(func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			return nil, err
		}
		return []byte(line + "\n"), nil
	})
}

// Eval parses one item from the lines next returns and evaluates it.
// Parse and evaluation errors go to s.Err. The only error returned is
// one from next, such as io.EOF.
func (s *Session) Eval(next func() ([]byte, error)) error {
	var readErr error
	f, err := syntax.ParseCompoundStmt("<stdin>", func() ([]byte, error) {
		line, err := next()
		if err != nil {
			readErr = err
		}
		return line, err
	})
	if err != nil {
		if readErr != nil {
			return readErr
		}
		PrintError(s.Err, err)
		return nil
	}

	// load binds names globally in an interactive session.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			v, err := starlark.EvalExpr(s.Thread, stmt.X, s.Globals)
			switch {
			case err != nil:
				PrintError(s.Err, err)
			case v != starlark.None:
				fmt.Fprintln(s.Out, v)
			}
			return nil
		}
	}
	if err := starlark.ExecREPLChunk(f, s.Thread, s.Globals); err != nil {
		PrintError(s.Err, err)
	}
	return nil
}

// PrintError writes err to w, with the Starlark call stack if err came
// from evaluation.
func PrintError(w io.Writer, err error) {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		fmt.Fprintln(w, evalErr.Backtrace())
		return
	}
	fmt.Fprintln(w, err)
}

// MakeLoad returns a load function that executes each module once, with
// predeclared in scope, and caches its globals. Relative module names
// are resolved against the directory of the loading file. Loaded modules
// inherit the loading thread's default tempoch scale.
func MakeLoad(predeclared starlark.StringDict) func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	l := &loader{predeclared: predeclared, cache: make(map[string]*loaded)}
	return l.load
}

type loaded struct {
	globals starlark.StringDict
	err     error
}

type loader struct {
	predeclared starlark.StringDict
	cache       map[string]*loaded // nil entry: load in progress
}

func (l *loader) load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	if !filepath.IsAbs(module) && thread.CallStackDepth() > 0 {
		module = filepath.Join(filepath.Dir(thread.CallFrame(0).Pos.Filename()), module)
	}
	if m, ok := l.cache[module]; ok {
		if m == nil {
			return nil, fmt.Errorf("cycle in load graph at %s", module)
		}
		return m.globals, m.err
	}
	l.cache[module] = nil

	child := &starlark.Thread{Name: "load " + module, Load: thread.Load, Print: thread.Print}
	starlarktempoch.SetDefaultScale(child, starlarktempoch.DefaultScale(thread))
	globals, err := starlark.ExecFile(child, module, nil, l.predeclared)
	l.cache[module] = &loaded{globals, err}
	return globals, err
}
