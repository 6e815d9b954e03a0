package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/config"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/parser"
	"github.com/raymyers/cparse/pkg/preproc"
)

var version = "0.1.0"

// ErrParseFailed is returned when at least one input failed to parse.
var ErrParseFailed = errors.New("parse failed")

// options holds the command-line flags of one root command.
type options struct {
	dParse     bool
	preprocess bool
	noCPP      bool
	verbose    bool
	jobs       int

	configFile string
	flavor     string
	extensions []string
	typedefs   []string
	cppCommand string
	cppOptions string
	defines    []string
	undefines  []string
	includes   []string
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// normalizeFlags accepts the compiler-style single-dash -dparse.
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		if arg == "-dparse" {
			arg = "--dparse"
		}
		result[i] = arg
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "cparse [file...]",
		Short: "cparse parses C translation units and dumps their syntax trees",
		Long: `cparse is a scope-aware C11 parser with GNU and Clang extensions.
Each input is preprocessed, parsed, and printed as an indented tree with
one node per line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			d := newDiagnostics(errOut)
			prof, err := opts.profile(cmd.Flags())
			if err != nil {
				d.errorf("%v", err)
				return err
			}
			if opts.preprocess {
				return doPreprocessOnly(cmd.Context(), args, prof, opts, out, d)
			}
			return doParse(cmd.Context(), args, prof, opts, out, d)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	opts.addFlags(rootCmd.Flags())

	return rootCmd
}

// addFlags registers the command-line flags backed by o.
func (o *options) addFlags(f *pflag.FlagSet) {
	f.BoolVar(&o.dParse, "dparse", false, "Also write each dump to <file>.parsed.txt")
	f.BoolVarP(&o.preprocess, "preprocess", "E", false, "Preprocess only, output to stdout")
	f.BoolVar(&o.noCPP, "no-cpp", false, "Parse inputs without preprocessing them")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Report each file as it is parsed")
	f.IntVarP(&o.jobs, "jobs", "j", 4, "Number of files parsed concurrently")

	f.StringVar(&o.configFile, "config", "", "YAML parse profile")
	f.StringVar(&o.flavor, "flavor", config.DefaultFlavor,
		"C flavor: "+strings.Join(dialect.FlavorNames(), ", "))
	f.StringArrayVar(&o.extensions, "extension", nil, "Enable an extension (gnu-extensions, clang-extensions)")
	f.StringArrayVarP(&o.typedefs, "typedef", "T", nil, "Predeclare a typedef name")
	f.StringVar(&o.cppCommand, "cpp", "", "Preprocessor command (default: first of cc, gcc, clang)")
	f.StringVar(&o.cppOptions, "cpp-options", "", "Extra preprocessor options, shell-quoted")
	f.StringArrayVarP(&o.includes, "include", "I", nil, "Add directory to include search path")
	f.StringArrayVarP(&o.defines, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	f.StringArrayVarP(&o.undefines, "undefine", "U", nil, "Undefine macro")
}

// profile loads the --config profile, then applies flags given explicitly
// on the command line over it.
func (o *options) profile(flags *pflag.FlagSet) (*config.Profile, error) {
	prof := config.Default()
	if o.configFile != "" {
		var err error
		if prof, err = config.Load(o.configFile); err != nil {
			return nil, err
		}
	}
	if flags.Changed("flavor") || o.configFile == "" {
		prof.Flavor = o.flavor
	}
	prof.Extensions = append(prof.Extensions, o.extensions...)
	prof.Typedefs = append(prof.Typedefs, o.typedefs...)
	if flags.Changed("cpp") {
		prof.CPP.Command = o.cppCommand
	}
	if flags.Changed("cpp-options") {
		prof.CPP.Options = o.cppOptions
	}
	if o.noCPP {
		prof.CPP.Disabled = true
	}
	if _, err := prof.Dialect(); err != nil {
		return nil, err
	}
	return prof, nil
}

// preprocessorOptions builds preproc.Options from the profile and the
// -I, -D and -U flags. It returns nil when preprocessing is disabled.
func (o *options) preprocessorOptions(prof *config.Profile) (*preproc.Options, error) {
	popts, err := prof.Preprocessor()
	if err != nil || popts == nil {
		return nil, err
	}
	popts.IncludePaths = o.includes
	popts.Undefines = o.undefines
	popts.Defines = make(map[string]string)
	for _, d := range o.defines {
		if name, value, ok := strings.Cut(d, "="); ok {
			popts.Defines[name] = value
		} else {
			popts.Defines[d] = ""
		}
	}
	return popts, nil
}

// readSource reads filename, running it through the preprocessor unless
// popts is nil or the file is already preprocessed.
func readSource(ctx context.Context, filename string, popts *preproc.Options) (string, error) {
	if popts != nil && preproc.NeedsPreprocessing(filename) {
		return preproc.Preprocess(ctx, filename, popts)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// result is the outcome for one input file.
type result struct {
	text string
	err  error
}

// forEachFile runs fn over files with at most jobs running at once and
// returns the results in input order. The first failure cancels files not
// yet started.
func forEachFile(ctx context.Context, files []string, jobs int,
	fn func(ctx context.Context, filename string) (string, error)) []result {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)
	for i, filename := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return err
			}
			text, err := fn(ctx, filename)
			results[i] = result{text: text, err: err}
			return err
		})
	}
	_ = g.Wait()
	return results
}

// report prints successful outputs in input order and a diagnostic for
// each failure. Files skipped after an earlier failure are not reported.
func report(files []string, results []result, out io.Writer, d *diagnostics) error {
	failed := false
	for i, r := range results {
		switch {
		case r.err == nil:
			fmt.Fprint(out, r.text)
		case errors.Is(r.err, context.Canceled):
			failed = true
		default:
			failed = true
			d.errorf("%s: %v", files[i], r.err)
		}
	}
	if failed {
		return ErrParseFailed
	}
	return nil
}

// doPreprocessOnly prints the preprocessed form of each file (-E).
func doPreprocessOnly(ctx context.Context, files []string, prof *config.Profile, opts *options,
	out io.Writer, d *diagnostics) error {
	popts, err := opts.preprocessorOptions(prof)
	if err != nil {
		d.errorf("%v", err)
		return err
	}
	if popts == nil {
		popts = &preproc.Options{}
	}
	results := forEachFile(ctx, files, opts.jobs, func(ctx context.Context, filename string) (string, error) {
		return preproc.Preprocess(ctx, filename, popts)
	})
	return report(files, results, out, d)
}

// doParse parses each file and prints its tree. With --dparse the tree is
// also written next to the input.
func doParse(ctx context.Context, files []string, prof *config.Profile, opts *options,
	out io.Writer, d *diagnostics) error {
	cfg, err := prof.ParserConfig()
	if err != nil {
		d.errorf("%v", err)
		return err
	}
	popts, err := opts.preprocessorOptions(prof)
	if err != nil {
		d.errorf("%v", err)
		return err
	}
	if opts.verbose {
		d.infof("dialect %s, %d predeclared typedef names", cfg.Dialect, len(cfg.Typedefs))
	}

	results := forEachFile(ctx, files, opts.jobs, func(ctx context.Context, filename string) (string, error) {
		if opts.verbose {
			d.infof("parsing %s", filename)
		}
		content, err := readSource(ctx, filename, popts)
		if err != nil {
			return "", err
		}
		tu, err := parser.New(lexer.New(content), cfg).ParseTranslationUnit()
		if err != nil {
			return "", err
		}
		dump := ast.Dump(tu)
		if opts.dParse {
			outputFilename := parsedOutputFilename(filename)
			if err := os.WriteFile(outputFilename, []byte(dump), 0o644); err != nil {
				return "", fmt.Errorf("error creating %s: %w", outputFilename, err)
			}
		}
		return dump, nil
	})
	return report(files, results, out, d)
}

// parsedOutputFilename returns the output filename for --dparse:
// input.c -> input.parsed.txt
func parsedOutputFilename(filename string) string {
	for _, ext := range []string{".c", ".i", ".h"} {
		if strings.HasSuffix(filename, ext) {
			return filename[:len(filename)-len(ext)] + ".parsed.txt"
		}
	}
	return filename + ".parsed.txt"
}

// diagnostics writes "cparse: ..." messages to errOut. Error prefixes are
// colored when errOut is a terminal.
type diagnostics struct {
	mu    sync.Mutex
	w     io.Writer
	label *color.Color
}

func newDiagnostics(errOut io.Writer) *diagnostics {
	label := color.New(color.FgRed, color.Bold)
	if isTerminal(errOut) {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return &diagnostics{w: errOut, label: label}
}

func (d *diagnostics) errorf(format string, args ...any) {
	d.printf("cparse: %s %s\n", d.label.Sprint("error:"), fmt.Sprintf(format, args...))
}

func (d *diagnostics) infof(format string, args ...any) {
	d.printf("cparse: %s\n", fmt.Sprintf(format, args...))
}

// printf is called from parsing goroutines.
func (d *diagnostics) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
