package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/pkg/cli/internal/flags"
	"github.com/getmockd/mockhttp/pkg/cli/internal/parse"
	"github.com/getmockd/mockhttp/pkg/config"
	"github.com/getmockd/mockhttp/pkg/engine"
	"github.com/getmockd/mockhttp/pkg/logging"
	"github.com/getmockd/mockhttp/pkg/mock"
)

// EnvFixtures lists fixture paths or globs used when --fixtures is not given.
const EnvFixtures = "MOCKHTTP_FIXTURES"

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// errNoFixtures is returned when no fixture source was given.
var errNoFixtures = errors.New("no fixtures given: use --fixtures or set " + EnvFixtures)

// app carries the persistent flag values and the logger shared by all
// subcommands.
type app struct {
	fixtures   flags.StringSlice
	logLevel   string
	logFormat  string
	logFile    string
	jsonOutput bool

	log      *slog.Logger
	closeLog func() error
}

// NewRootCommand builds the mockhttp command tree.
func NewRootCommand() *cobra.Command {
	a := &app{log: logging.Nop()}

	root := &cobra.Command{
		Use:   "mockhttp",
		Short: "mockhttp resolves HTTP calls against declared expectations",
		Long: `mockhttp loads expectation fixtures and answers HTTP calls with canned
responses. The most recently registered expectation that accepts a call wins;
a call nothing accepts fails with "Please mock endpoint: <url>".

Fixtures are YAML or JSON files given with --fixtures or the ` + EnvFixtures + `
environment variable. Paths may be doublestar globs such as fixtures/**/*.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.newLogger(cmd)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog == nil {
				return nil
			}
			return a.closeLog()
		},
	}

	pf := root.PersistentFlags()
	pf.VarP(&a.fixtures, "fixtures", "f", "Fixture file or glob (repeatable, comma-separated)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (env "+logging.EnvLevel+")")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (env "+logging.EnvFormat+")")
	pf.StringVar(&a.logFile, "log-file", "", "Also write debug-level JSON logs to this file")
	pf.BoolVar(&a.jsonOutput, "json", false, "Output command results in JSON format")

	root.AddCommand(
		newValidateCommand(a),
		newMatchCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg := logging.FromEnv()
	if a.logLevel != "" {
		cfg.Level = logging.ParseLevel(a.logLevel)
	}
	if a.logFormat != "" {
		cfg.Format = logging.ParseFormat(a.logFormat)
	}
	cfg.Output = cmd.ErrOrStderr()
	log := logging.New(cfg)
	if a.logFile == "" {
		return log, nil
	}

	f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	a.closeLog = f.Close
	file := logging.New(logging.Config{
		Level:  logging.LevelDebug,
		Format: logging.FormatJSON,
		Output: f,
	})
	return slog.New(logging.NewMultiHandler(log.Handler(), file.Handler())), nil
}

// fixturePatterns returns the fixture sources in precedence order: extra
// (positional arguments), then --fixtures, then the environment.
func (a *app) fixturePatterns(extra []string) ([]string, error) {
	switch {
	case len(extra) > 0:
		return extra, nil
	case len(a.fixtures) > 0:
		return a.fixtures, nil
	}
	if env := parse.PathList(os.Getenv(EnvFixtures)); len(env) > 0 {
		return env, nil
	}
	return nil, errNoFixtures
}

// loadSession registers every fixture from patterns on a new session.
func (a *app) loadSession(patterns []string) (*engine.Session, []*mock.Expectation, error) {
	exps, err := config.LoadExpectations(patterns...)
	if err != nil {
		return nil, nil, err
	}
	s := engine.New(engine.WithLogger(a.log))
	stored, err := config.RegisterAll(s, exps)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debug("fixtures loaded", "patterns", patterns, "expectations", len(stored))
	return s, stored, nil
}
