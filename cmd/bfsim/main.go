// Command bfsim translates and runs tape programs.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
	"github.com/sarchlab/bfsim/verify"
	"github.com/tebeka/atexit"
)

// Exit codes.
const (
	exitOK      = 0
	exitSetup   = 1
	exitRuntime = 2
)

type options struct {
	configPath string
	inputPath  string
	tracePath  string
	logLevel   string
	compileOut string
	reportOut  string
	sim        bool
	image      bool
	lint       bool
	dump       bool
}

func parseFlags(args []string) (*options, []string, error) {
	opts := &options{}

	fs := flag.NewFlagSet("bfsim", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "bfsim.toml configuration file")
	fs.StringVar(&opts.inputPath, "input", "", "file to read program input from instead of stdin")
	fs.StringVar(&opts.tracePath, "trace", "", "JSON trace log file")
	fs.StringVar(&opts.logLevel, "log-level", "", "trace level: debug, info, trace, warn, error")
	fs.StringVar(&opts.compileOut, "compile", "", "write a compiled program image and exit")
	fs.StringVar(&opts.reportOut, "report", "", "with -lint, also save the report (.txt or .yaml)")
	fs.BoolVar(&opts.sim, "sim", false, "run on the cycle-driven engine")
	fs.BoolVar(&opts.image, "image", false, "source is a compiled program image")
	fs.BoolVar(&opts.lint, "lint", false, "print a verification report instead of running")
	fs.BoolVar(&opts.dump, "dump", false, "print the final machine state to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return opts, fs.Args(), nil
}

func loadConfig(opts *options, args []string) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	if len(args) > 0 {
		cfg.Program.Source = args[0]
	}
	if opts.inputPath != "" {
		cfg.Program.Input = opts.inputPath
	}
	if opts.tracePath != "" {
		cfg.Trace.File = opts.tracePath
	}
	if opts.logLevel != "" {
		cfg.Trace.Level = opts.logLevel
	}
	if opts.sim {
		cfg.Engine.Mode = config.ModeSim
	}
	if opts.image {
		cfg.Program.Image = true
	}

	if cfg.Program.Source == "" {
		return nil, fmt.Errorf("no program given: pass a source file or set %s", config.EnvProgram)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setupLogging(cfg *config.Config) (io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	var closer io.Closer

	if cfg.Trace.File != "" {
		f, err := os.Create(cfg.Trace.File)
		if err != nil {
			return nil, fmt.Errorf("cannot create trace file: %w", err)
		}
		out = f
		closer = f
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return closer, nil
}

func loadProgram(cfg *config.Config) (program.Program, error) {
	data, err := os.ReadFile(cfg.Program.Source)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", cfg.Program.Source, err)
	}

	if cfg.Program.Image {
		return program.UnmarshalImage(data)
	}

	code, err := program.Translate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Program.Source, err)
	}

	return code, nil
}

func openInput(cfg *config.Config) (io.Reader, error) {
	if cfg.Program.Input == "" {
		return os.Stdin, nil
	}

	data, err := os.ReadFile(cfg.Program.Input)
	if err != nil {
		return nil, fmt.Errorf("cannot read input %s: %w", cfg.Program.Input, err)
	}

	return bytes.NewReader(data), nil
}

func compile(code program.Program, out string) error {
	data, err := program.MarshalImage(code)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("cannot write image: %w", err)
	}

	return nil
}

func lint(cfg *config.Config, code program.Program, reportOut string) error {
	var input []byte

	if cfg.Program.Input != "" {
		data, err := os.ReadFile(cfg.Program.Input)
		if err != nil {
			return fmt.Errorf("cannot read input %s: %w", cfg.Program.Input, err)
		}
		input = data
	}

	report := verify.GenerateReport(code, input, cfg.Verify.MaxSteps)
	report.WriteReport(os.Stdout)

	if reportOut != "" {
		if err := report.SaveReportToFile(reportOut); err != nil {
			return err
		}
	}

	if !report.OK() {
		return errors.New("verification failed")
	}

	return nil
}

func execute(cfg *config.Config, code program.Program, dump bool) error {
	in, err := openInput(cfg)
	if err != nil {
		return err
	}

	console := core.NewConsole(in, os.Stdout)

	var m *core.Machine

	switch cfg.Engine.Mode {
	case config.ModeSim:
		driver := api.DriverBuilder{}.
			WithFreq(cfg.Freq()).
			WithConsole(console).
			Build("Driver")
		driver.MapProgram(code)
		err = driver.Run()
		m = driver.Machine()
	default:
		m = core.NewMachine(code, console)
		err = m.Run()
	}

	core.Trace("RunFinished",
		"Mode", cfg.Engine.Mode,
		"Steps", m.Steps(),
		"PC", m.PC(),
		"Cursor", m.Cursor(),
	)

	if dump {
		core.PrintState(os.Stderr, m)
	}

	return err
}

func run(args []string) int {
	opts, rest, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitSetup
	}

	if opts.reportOut != "" && !opts.lint {
		fmt.Fprintln(os.Stderr, "bfsim: -report requires -lint")
		return exitSetup
	}

	cfg, err := loadConfig(opts, rest)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bfsim:", err)
		return exitSetup
	}

	closer, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bfsim:", err)
		return exitSetup
	}
	if closer != nil {
		atexit.Register(func() { closer.Close() })
	}

	code, err := loadProgram(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bfsim:", err)
		return exitSetup
	}

	switch {
	case opts.compileOut != "":
		err = compile(code, opts.compileOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bfsim:", err)
			return exitSetup
		}
		return exitOK
	case opts.lint:
		if err := lint(cfg, code, opts.reportOut); err != nil {
			fmt.Fprintln(os.Stderr, "bfsim:", err)
			return exitRuntime
		}
		return exitOK
	}

	if err := execute(cfg, code, opts.dump); err != nil {
		fmt.Fprintln(os.Stderr, "bfsim:", err)
		return exitRuntime
	}

	return exitOK
}

func main() {
	atexit.Exit(run(os.Args[1:]))
}
