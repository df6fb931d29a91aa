package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/paramspace/errors"
	"github.com/teranos/paramspace/famdef"
	"github.com/teranos/paramspace/inspect"
)

var (
	inspectJSON bool
	inspectYAML bool
)

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect FILE [TYPE]",
	Short: "Show a type's merged registries",
	Long: `Build a definition file and show the merged registries of one type:
its linearization, parameters with defaults, protected attributes with
their owners, and slots. Without a TYPE argument, every type in the
file is shown.

Examples:
  paramspace inspect types.yaml Child
  paramspace inspect types.yaml --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInspectCommand,
}

func init() {
	InspectCmd.Flags().BoolVarP(&inspectJSON, "json", "j", false, "Output reports as JSON")
	InspectCmd.Flags().BoolVar(&inspectYAML, "yaml", false, "Output reports as YAML")
}

func runInspectCommand(cmd *cobra.Command, args []string) error {
	file, err := famdef.Load(args[0])
	if err != nil {
		return err
	}
	set, err := famdef.Build(file)
	if err != nil {
		return err
	}

	var reports []*inspect.TypeReport
	if len(args) == 2 {
		t, ok := set.Type(args[1])
		if !ok {
			return errors.Newf("type %q not defined in %s", args[1], args[0])
		}
		reports = append(reports, inspect.Report(t))
	} else {
		for _, t := range set.Types() {
			reports = append(reports, inspect.Report(t))
		}
	}

	switch {
	case inspectJSON:
		output, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format JSON")
		}
		fmt.Println(string(output))
	case inspectYAML:
		output, err := yaml.Marshal(reports)
		if err != nil {
			return errors.Wrap(err, "failed to format YAML")
		}
		fmt.Print(string(output))
	default:
		for _, report := range reports {
			renderReport(report)
		}
	}
	return nil
}

func renderReport(report *inspect.TypeReport) {
	pterm.DefaultSection.Println(report.Name)
	pterm.Printf("Linearization: %s\n", strings.Join(report.MRO, " -> "))
	if len(report.Slots) > 0 {
		pterm.Printf("Slots: %s\n", strings.Join(report.Slots, ", "))
	}

	if len(report.Params) > 0 {
		data := pterm.TableData{{"Parameter", "Default", "Protected by"}}
		for _, p := range report.Params {
			def := p.Default
			if p.Missing {
				def = "?"
			}
			data = append(data, []string{p.Name, def, p.Owner})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	if len(report.Protected) > 0 {
		data := pterm.TableData{{"Protected", "Owner"}}
		for _, p := range report.Protected {
			data = append(data, []string{p.Name, p.Owner})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}
