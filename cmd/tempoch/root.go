package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.starlark.net/lib/json"
	"go.starlark.net/lib/math"
	"go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"golang.org/x/term"

	"github.com/Siderust/tempoch/internal/config"
	"github.com/Siderust/tempoch/repl"
	"github.com/Siderust/tempoch/starlarktempoch"
)

// errReported is returned by commands that have already printed their
// failure to stderr.
var errReported = errors.New("error already reported")

// app carries state shared by the root command and its subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	var prog string

	cmd := &cobra.Command{
		Use:   "tempoch [file]",
		Short: "Astronomical time scales, conversions, and period algebra",
		Long: `tempoch converts instants between astronomical time scales
(JD, MJD, TT, TDB, TAI, TCG, TCB, GPS, UNIX, UT) and runs scripts
that use the tempoch module.

With a file argument or -c, tempoch executes the program. With no
arguments it starts a REPL when stdin is a terminal, and otherwise
executes the program read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case prog != "":
				return a.exec(cmd, "cmdline", prog)
			case len(args) == 1:
				return a.exec(cmd, args[0], nil)
			case isTerminal(cmd.InOrStdin()):
				return a.repl(cmd)
			}
			src, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			return a.exec(cmd, "<stdin>", src)
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.tempoch.yaml or $HOME/.tempoch.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().String("scale", "", "default scale of tempoch.time in scripts")
	_ = a.v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = a.v.BindPFlag("default_scale", cmd.PersistentFlags().Lookup("scale"))
	cmd.Flags().StringVarP(&prog, "command", "c", "", "execute program `prog`")

	cmd.AddCommand(newReplCmd(a), newConvertCmd(a), newDeltaTCmd(a))
	return cmd
}

// initConfig reads the config file and environment, then sets up logging.
func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName(".tempoch")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
	}
	a.v.SetEnvPrefix("TEMPOCH")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("config loaded", "file", a.v.ConfigFileUsed(), "default_scale", cfg.Scale())
	return nil
}

// predeclared returns the names visible to every script.
func predeclared() starlark.StringDict {
	return starlark.StringDict{
		starlarktempoch.ModuleName: starlarktempoch.Module,
		"json":                     json.Module,
		"math":                     math.Module,
		"time":                     time.Module,
	}
}

func (a *app) newThread(cmd *cobra.Command, name string, env starlark.StringDict) *starlark.Thread {
	out := cmd.OutOrStdout()
	thread := &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, msg string) { fmt.Fprintln(out, msg) },
		Load:  repl.MakeLoad(env),
	}
	starlarktempoch.SetDefaultScale(thread, a.cfg.Scale())
	return thread
}

// exec runs a whole program. src is nil to read filename.
func (a *app) exec(cmd *cobra.Command, filename string, src interface{}) error {
	env := predeclared()
	thread := a.newThread(cmd, "exec "+filename, env)
	a.log.Debug("executing", "file", filename)
	if _, err := starlark.ExecFile(thread, filename, src, env); err != nil {
		repl.PrintError(cmd.ErrOrStderr(), err)
		return errReported
	}
	return nil
}

func (a *app) repl(cmd *cobra.Command) error {
	globals := predeclared()
	thread := a.newThread(cmd, "REPL", predeclared())
	fmt.Fprintln(cmd.OutOrStdout(), "Welcome to tempoch (github.com/Siderust/tempoch)")
	return repl.REPL(thread, globals, repl.Options{
		Prompt:      a.cfg.Prompt,
		HistoryFile: a.cfg.HistoryFile,
	})
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd)
		},
	}
}
