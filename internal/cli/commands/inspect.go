package commands

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/paramgen/internal/cli/config"
	"github.com/conduit-lang/paramgen/internal/cli/ui"
	"github.com/conduit-lang/paramgen/pkg/params"
	"github.com/conduit-lang/paramgen/pkg/params/sourceparam"
)

// ReportSchema is the JSON schema of the inspect report
//
//go:embed schema/report.json
var ReportSchema []byte

// unavailableName is shown in tables for parameters without a name
const unavailableName = "<unavailable>"

// Report is the inspect output for one package
type Report struct {
	Package     string           `json:"package" yaml:"package"`
	Path        string           `json:"path" yaml:"path"`
	ContextType string           `json:"context_type,omitempty" yaml:"context_type,omitempty"`
	Functions   []FunctionReport `json:"functions" yaml:"functions"`
}

// FunctionReport describes one function's parameters
type FunctionReport struct {
	Name       string            `json:"name" yaml:"name"`
	Position   string            `json:"position" yaml:"position"`
	Exported   bool              `json:"exported" yaml:"exported"`
	Parameters []ParameterReport `json:"parameters" yaml:"parameters"`
}

// ParameterReport is the resolved metadata of one parameter
type ParameterReport struct {
	Position       int    `json:"position" yaml:"position"`
	Name           string `json:"name" yaml:"name"`
	NameAvailable  bool   `json:"name_available" yaml:"name_available"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	RuntimeClass   string `json:"runtime_class" yaml:"runtime_class"`
	Classification string `json:"classification" yaml:"classification"`
	Abstract       bool   `json:"abstract" yaml:"abstract"`
	Context        bool   `json:"context" yaml:"context"`
	Repeated       bool   `json:"repeated" yaml:"repeated"`
}

type inspectOptions struct {
	funcName string
	format   string
	exported bool
	schema   bool
}

func newInspectCommand(global *globalOptions) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Report resolved metadata for every function parameter",
		Long: `Report resolved metadata for every function parameter in a Go package.

For each parameter the report shows its position, name, description, runtime
class and classification, and whether it is abstract, the injected context
type, or a repeated list.`,
		Example: `  # Inspect the package in the current directory
  paramgen inspect

  # Inspect one method
  paramgen inspect ./app --func Container.Search

  # Machine-readable output
  paramgen inspect ./app --format json

  # Print the JSON schema of the report
  paramgen inspect --schema`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.schema {
				_, err := cmd.OutOrStdout().Write(ReportSchema)
				return err
			}

			s, err := global.newSession(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			format := s.cfg.Output.Format
			if cmd.Flags().Changed("format") {
				if !config.ValidFormat(opts.format) {
					return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", opts.format)
				}
				format = opts.format
			}
			exportedOnly := s.cfg.ExportedOnly || opts.exported

			dir := dirArg(args)
			pkg, err := s.load(cmd, dir)
			if err != nil {
				return err
			}
			fns, err := s.selectFuncs(cmd, pkg, opts.funcName, exportedOnly)
			if err != nil {
				return err
			}

			report := buildReport(pkg, fns, s.cfg.Resolver())
			return writeReport(cmd.OutOrStdout(), report, format, s.noColor)
		},
	}

	cmd.Flags().StringVar(&opts.funcName, "func", "", "Only inspect this function (Name or Recv.Name)")
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&opts.exported, "exported", false, "Only inspect exported functions")
	cmd.Flags().BoolVar(&opts.schema, "schema", false, "Print the JSON schema of the report and exit")

	return cmd
}

// buildReport resolves every parameter of fns
func buildReport(pkg *sourceparam.Package, fns []*sourceparam.Func, r *params.Resolver) Report {
	report := Report{
		Package:   pkg.Name,
		Path:      pkg.Path,
		Functions: make([]FunctionReport, 0, len(fns)),
	}
	if ctx, ok := r.ContextType(); ok {
		report.ContextType = ctx.Identity()
	}

	for _, fn := range fns {
		fr := FunctionReport{
			Name:       fn.QualifiedName(),
			Position:   fn.Position.String(),
			Exported:   fn.Exported(),
			Parameters: make([]ParameterReport, 0, len(fn.Params)),
		}
		for i, p := range fn.ParameterInfos() {
			fr.Parameters = append(fr.Parameters, parameterReport(i, p, r))
		}
		report.Functions = append(report.Functions, fr)
	}
	return report
}

func parameterReport(position int, p params.ParameterInfo, r *params.Resolver) ParameterReport {
	class := r.RuntimeClass(p)
	pr := ParameterReport{
		Position:       position,
		RuntimeClass:   class.Identity(),
		Classification: class.Classification.String(),
		Abstract:       r.IsUnsupportedAbstractType(p),
		Context:        r.IsInjectedContextType(p),
		Repeated:       r.IsRepeatedValue(p),
	}
	if name, err := r.Name(p); err == nil {
		pr.Name = name
		pr.NameAvailable = true
	}
	if desc, ok := r.Description(p); ok {
		pr.Description = desc
	}
	return pr
}

func writeReport(w io.Writer, report Report, format string, noColor bool) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	default:
		writeReportTable(w, report, noColor)
		return nil
	}
}

func writeReportTable(w io.Writer, report Report, noColor bool) {
	for i, fn := range report.Functions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.Heading(w, fn.Name, noColor, fn.Position)
		if len(fn.Parameters) == 0 {
			fmt.Fprintln(w, "  (no parameters)")
			continue
		}

		table := ui.NewTable(w, []string{"#", "NAME", "CLASS", "KIND", "ABSTRACT", "CONTEXT", "REPEATED", "DESCRIPTION"},
			&ui.TableOptions{NoColor: noColor})
		for _, p := range fn.Parameters {
			name := p.Name
			if !p.NameAvailable {
				name = unavailableName
			}
			table.AddRow(
				strconv.Itoa(p.Position),
				name,
				p.RuntimeClass,
				p.Classification,
				yesNo(p.Abstract),
				yesNo(p.Context),
				yesNo(p.Repeated),
				p.Description,
			)
		}
		table.Render()
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
