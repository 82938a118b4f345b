package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-olist/cmd/olist/internal/bootstrap"
	"github.com/goliatone/go-olist/internal/commands"
	markdowncmd "github.com/goliatone/go-olist/internal/commands/markdown"
	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cliOptions struct {
	write      bool
	dryRun     bool
	dir        string
	pattern    string
	recursive  *bool
	configFile string
	logLevel   string
	logFormat  string
	extensions string
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("olist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: olist [flags] [file ...]")
		fmt.Fprintln(fs.Output(), "Converts bullet lists between <!-- ol --> and <!-- /ol --> into ordered lists.")
		fmt.Fprintln(fs.Output(), "With no files, reads markdown from stdin and writes the result to stdout.")
		fs.PrintDefaults()
	}

	var opts cliOptions
	fs.BoolVar(&opts.write, "w", false, "Write results back to the source files instead of stdout")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Report files that would change without writing them")
	fs.StringVar(&opts.dir, "dir", "", "Transform every markdown file under this directory")
	fs.StringVar(&opts.pattern, "pattern", "", "Glob pattern applied when discovering files with -dir (default from config)")
	recursive := fs.Bool("recursive", true, "Descend into sub-directories with -dir")
	fs.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "", "Switch to go-logger output: json, console or pretty")
	fs.StringVar(&opts.extensions, "extensions", "", "Comma separated goldmark extensions (table, tasklist, ...)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "recursive" {
			opts.recursive = recursive
		}
	})
	opts.files = fs.Args()

	if opts.dir != "" && len(opts.files) > 0 {
		return opts, errors.New("olist: -dir cannot be combined with file arguments")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if opts.dir == "" && len(opts.files) == 0 && isTerminal(stdin) {
		fmt.Fprintln(stderr, "olist: no input files and stdin is a terminal; pipe markdown in or pass a file")
		return exitUsage
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: opts.configFile,
		LogLevel:   opts.logLevel,
		LogFormat:  opts.logFormat,
		Pattern:    opts.pattern,
		Extensions: bootstrap.SplitList(opts.extensions),
		LogWriter:  stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "olist: %v\n", err)
		return exitError
	}
	defer module.Module.Close()

	ctx, _ := logging.WithRunID(context.Background())
	logger := logging.ForContext(ctx, module.Logger)
	logger.Debug("olist.run.start", "files", len(opts.files), "directory", opts.dir)

	switch {
	case opts.dir != "":
		err = runDirectory(ctx, module, opts, stdout)
	case len(opts.files) > 0:
		err = runFiles(ctx, module, opts, stdout)
	default:
		err = runStdin(module, stdin, stdout)
	}
	if err != nil {
		logger.Error("olist.run.failed", "error", err)
		fmt.Fprintf(stderr, "olist: %v\n", err)
		return exitError
	}

	logger.Debug("olist.run.completed")
	return exitOK
}

func runStdin(module *bootstrap.Module, stdin io.Reader, stdout io.Writer) error {
	source, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	out := module.Module.Transformer().Transform(source)
	if _, err := stdout.Write(out.Output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func runFiles(ctx context.Context, module *bootstrap.Module, opts cliOptions, stdout io.Writer) error {
	var writeErr error
	_, err := module.Module.Container().RegisterMarkdownCommands(
		markdowncmd.WithFileObserver(func(_ context.Context, msg markdowncmd.TransformFileCommand, result *interfaces.TransformResult) {
			switch {
			case !msg.Write:
				if _, err := stdout.Write(result.Output); err != nil {
					writeErr = fmt.Errorf("write stdout: %w", err)
				}
			case msg.DryRun && result.Changed:
				fmt.Fprintln(stdout, msg.Path)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	var errs []error
	for _, file := range opts.files {
		abs, err := filepath.Abs(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve %s: %w", file, err))
			continue
		}
		cmd := markdowncmd.TransformFileCommand{
			Path:   abs,
			Write:  opts.write || opts.dryRun,
			DryRun: opts.dryRun,
		}
		if err := commands.Dispatch(ctx, cmd); err != nil {
			errs = append(errs, fmt.Errorf("transform %s: %w", file, err))
		}
		if writeErr != nil {
			return writeErr
		}
	}
	return errors.Join(errs...)
}

func runDirectory(ctx context.Context, module *bootstrap.Module, opts cliOptions, stdout io.Writer) error {
	cwd, _ := os.Getwd()
	_, err := module.Module.Container().RegisterMarkdownCommands(
		markdowncmd.WithDirectoryObserver(func(_ context.Context, msg markdowncmd.TransformDirectoryCommand, result *interfaces.DirectoryResult) {
			for _, res := range result.Results {
				if !res.Changed || res.Written {
					continue
				}
				fmt.Fprintln(stdout, displayPath(module.BasePath, cwd, res.FilePath))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	abs, err := filepath.Abs(opts.dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", opts.dir, err)
	}
	cmd := markdowncmd.TransformDirectoryCommand{
		Directory: abs,
		Recursive: opts.recursive,
		Write:     opts.write,
		DryRun:    opts.dryRun,
	}
	if err := commands.Dispatch(ctx, cmd); err != nil {
		return fmt.Errorf("transform directory %s: %w", opts.dir, err)
	}
	return nil
}

// displayPath turns a base-relative slash path back into one relative to cwd
// when possible.
func displayPath(base, cwd, rel string) string {
	full := filepath.Join(base, filepath.FromSlash(rel))
	if cwd == "" {
		return full
	}
	if shown, err := filepath.Rel(cwd, full); err == nil {
		return shown
	}
	return full
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
