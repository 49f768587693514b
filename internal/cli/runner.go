package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
	"github.com/idilsaglam/tada/internal/todolist"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options wires the CLI to its output streams.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
}

// usageError marks a failure caused by how the command was invoked.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return usageError{msg: fmt.Sprintf(format, a...)}
}

// app is the per-invocation state shared by the subcommands.
type app struct {
	opt Options

	configPath string
	flags      config.Config

	cfg     *config.Config
	log     *log.Logger
	backend store.Backend
	todos   *todolist.Store
	closers []io.Closer

	// set once flags and args are accepted; earlier errors are usage errors
	started bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}

	a := &app{opt: opt}
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.Execute()
	a.close()
	if err == nil {
		return 0
	}

	ui.Fail(opt.Stderr, err.Error())
	var ue usageError
	switch {
	case errors.As(err, &ue):
		return 2
	case !a.started:
		fmt.Fprintln(opt.Stderr)
		root.SetOut(opt.Stderr)
		_ = root.Help()
		return 2
	}
	return 1
}

// PrintHelp writes the top-level help.
func PrintHelp(w io.Writer) {
	root := (&app{}).rootCmd()
	root.SetOut(w)
	_ = root.Help()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny todo list",
		Long: `todo - a tiny todo list.

Items are kept in a key-value store (a JSON file in the working directory
by default) and saved after every change.`,
		Example: `  todo add "Buy milk"
  todo ls
  todo done 2
  todo edit 1 "Buy oat milk"
  todo rm 3
  todo tui`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.opt.Stdout)
	root.SetErr(a.opt.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.tada/config.toml, then ./tada.toml)")
	pf.StringVar(&a.flags.Storage, "storage", "", "backend: file, sqlite or memory")
	pf.StringVar(&a.flags.DataDir, "data-dir", "", "directory for backend files (default: working directory)")
	pf.StringVar(&a.flags.Key, "key", "", "key the list is stored under")
	pf.StringVar(&a.flags.Theme, "theme", "", "classic, neon or mono")
	pf.StringVar(&a.flags.Color, "color", "", "auto, always or never")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "append logs to this file")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.doneCmd(),
		a.rmCmd(),
		a.editCmd(),
		a.tuiCmd(),
	)
	return root
}

// setup loads config, builds the logger and opens the list.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.started = true
	if !needsList(cmd) {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.SetColorMode(cfg.Color)

	if err := a.setupLogger(cmd.Name() == "tui"); err != nil {
		return err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	a.backend = backend
	a.closers = append(a.closers, backend)

	a.todos = todolist.New(backend,
		todolist.WithKey(cfg.Key),
		todolist.WithLogger(a.log),
	)
	a.todos.Load()
	return nil
}

// needsList reports whether cmd works on the list. cobra's help and
// completion commands do not, and must not create backend files.
func needsList(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return false
		}
	}
	return true
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("storage", &cfg.Storage, a.flags.Storage)
	set("data-dir", &cfg.DataDir, a.flags.DataDir)
	set("key", &cfg.Key, a.flags.Key)
	set("theme", &cfg.Theme, a.flags.Theme)
	set("color", &cfg.Color, a.flags.Color)
	set("log-level", &cfg.LogLevel, a.flags.LogLevel)
	set("log-file", &cfg.LogFile, a.flags.LogFile)
}

// setupLogger logs to stderr, or to the log file when one is configured.
// The TUI owns the terminal, so without a log file it logs nowhere.
func (a *app) setupLogger(interactive bool) error {
	opts := logging.Options{Level: a.cfg.LogLevel, Format: a.cfg.LogFormat, Prefix: "todo"}
	switch {
	case a.cfg.LogFile != "":
		l, c, err := logging.OpenFile(a.cfg.LogFile, opts)
		if err != nil {
			return err
		}
		a.log = l
		a.closers = append(a.closers, c)
	case interactive:
		a.log = logging.Discard()
	default:
		a.log = logging.New(a.opt.Stderr, opts)
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.log != nil {
			a.log.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Storage {
	case "sqlite":
		return sqlitestore.Open(cfg.SQLitePath())
	case "memory":
		return store.NewMemory(), nil
	default:
		return jsonstore.New(cfg.DataDir)
	}
}
