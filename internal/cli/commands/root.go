package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/paramgen/internal/cli/config"
	"github.com/conduit-lang/paramgen/internal/cli/ui"
	"github.com/conduit-lang/paramgen/pkg/params/sourceparam"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configFile string
	noColor    bool
	verbose    bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "paramgen",
		Short: "Derive schema arguments from Go function parameters",
		Long: color.CyanString(`paramgen - parameter metadata for schema generation

paramgen reads the parameters of Go functions and reports what a schema
generator needs to know about each one.

For every parameter it resolves:
  • The name, when one was declared
  • An optional description (@description in the doc comment)
  • Whether the type is an interface or abstract type
  • Whether the type is the injected context type
  • Whether the value is a repeated list
  • The erased runtime class`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: ./paramgen.yml)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newSDLCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the paramgen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			w := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			for _, line := range [][2]string{
				{"paramgen version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", goVer},
			} {
				titleColor.Fprint(w, line[0])
				fmt.Fprintln(w, line[1])
			}
		},
	}
}

// session is the per-invocation state built from flags and configuration
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	noColor bool
}

// newSession loads configuration and builds the logger. Configuration errors
// are rendered to stderr before being returned.
func (o *globalOptions) newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err, o.noColor))
		return nil, err
	}

	s := &session{cfg: cfg, logger: zap.NewNop(), noColor: o.noColor || cfg.Output.NoColor}
	if s.noColor {
		color.NoColor = true
	}
	if o.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		s.logger = logger
	}
	return s, nil
}

// load parses the package in dir using the configured abstract types and
// descriptions
func (s *session) load(cmd *cobra.Command, dir string) (*sourceparam.Package, error) {
	loader := sourceparam.NewLoader(
		sourceparam.WithAbstractTypes(s.cfg.AbstractTypes...),
		sourceparam.WithDescriptions(s.cfg.DescriptionMap()),
		sourceparam.WithLogger(s.logger),
	)
	pkg, err := loader.LoadDir(dir)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.LoadError(dir, err, s.noColor))
		return nil, err
	}
	return pkg, nil
}

// selectFuncs returns the function named by --func, or every function
// subject to the exported filter
func (s *session) selectFuncs(cmd *cobra.Command, pkg *sourceparam.Package, name string, exportedOnly bool) ([]*sourceparam.Func, error) {
	if name != "" {
		fn, ok := pkg.Func(name)
		if !ok {
			names := make([]string, len(pkg.Funcs))
			for i, f := range pkg.Funcs {
				names[i] = f.QualifiedName()
			}
			fmt.Fprint(cmd.ErrOrStderr(), ui.FunctionNotFoundError(name, pkg.Name, ui.Suggest(name, names, 3), s.noColor))
			return nil, fmt.Errorf("function %s not found", name)
		}
		return []*sourceparam.Func{fn}, nil
	}

	var out []*sourceparam.Func
	for _, fn := range pkg.Funcs {
		if exportedOnly && !fn.Exported() {
			continue
		}
		out = append(out, fn)
	}
	if len(out) == 0 {
		fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("No functions selected in package %s", pkg.Name), s.noColor))
	}
	return out, nil
}

// dirArg returns the package directory argument, defaulting to "."
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
