package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/paramgen/internal/cli/ui"
	"github.com/conduit-lang/paramgen/pkg/arguments"
)

// SDLReport is the json output of the sdl command
type SDLReport struct {
	Package   string              `json:"package"`
	Functions []SDLFunction       `json:"functions"`
	Errors    arguments.ErrorList `json:"errors"`
}

// SDLFunction is one converted function
type SDLFunction struct {
	Name      string                 `json:"name"`
	SDL       string                 `json:"sdl"`
	Arguments []arguments.Definition `json:"arguments"`
}

type sdlOptions struct {
	funcName string
	format   string
	exported bool
}

func newSDLCommand(global *globalOptions) *cobra.Command {
	opts := &sdlOptions{}

	cmd := &cobra.Command{
		Use:   "sdl [dir]",
		Short: "Print SDL argument lists for each function",
		Long: `Print an SDL argument list for each function in a Go package.

The injected context parameter is omitted. Functions whose parameters cannot
become arguments are reported with the reason, and the command exits with a
non-zero status. Every other function is still printed.

With --format json the converted functions and the errors are written to
stdout as a single document.`,
		Example: `  # Argument lists for the current package
  paramgen sdl

  # One function
  paramgen sdl ./app --func Container.Search

  # Machine-readable output, errors included
  paramgen sdl ./app --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" && opts.format != "json" {
				return fmt.Errorf("unsupported format: %s (supported: text, json)", opts.format)
			}

			s, err := global.newSession(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			dir := dirArg(args)
			pkg, err := s.load(cmd, dir)
			if err != nil {
				return err
			}
			fns, err := s.selectFuncs(cmd, pkg, opts.funcName, s.cfg.ExportedOnly || opts.exported)
			if err != nil {
				return err
			}

			builder := arguments.NewBuilder(s.cfg.Resolver(), arguments.WithLogger(s.logger))
			report := SDLReport{
				Package:   pkg.Path,
				Functions: make([]SDLFunction, 0, len(fns)),
				Errors:    arguments.ErrorList{},
			}
			for _, fn := range fns {
				defs, err := builder.Build(fn.QualifiedName(), fn.ParameterInfos())
				if err != nil {
					var genErr *arguments.GenerationError
					if !errors.As(err, &genErr) {
						return err
					}
					report.Errors = append(report.Errors, genErr)
					continue
				}
				report.Functions = append(report.Functions, SDLFunction{
					Name:      fn.QualifiedName(),
					SDL:       fn.QualifiedName() + arguments.Render(defs),
					Arguments: defs,
				})
			}

			if opts.format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(report); err != nil {
					return err
				}
				return report.Errors.Err()
			}

			for _, fn := range report.Functions {
				fmt.Fprintln(cmd.OutOrStdout(), fn.SDL)
			}
			for _, genErr := range report.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.GenerationError(genErr, s.noColor))
			}
			if len(report.Errors) > 0 {
				return fmt.Errorf("%d of %d functions could not be converted", len(report.Errors), len(fns))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.funcName, "func", "", "Only convert this function (Name or Recv.Name)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.exported, "exported", false, "Only convert exported functions")

	return cmd
}
