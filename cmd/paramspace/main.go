package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/paramspace/cmd/paramspace/commands"
	"github.com/teranos/paramspace/config"
	"github.com/teranos/paramspace/logger"
)

var rootCmd = &cobra.Command{
	Use:   "paramspace",
	Short: "paramspace - family type definition tooling",
	Long: `paramspace - build and inspect family type definitions.

Definition files declare types in YAML: their bases, parameters with
optional defaults, protected members and slots. The tool builds them
through the registry builder, so every protection conflict, invalid
parameter name or inheritance inconsistency is reported exactly as a
program defining the same types would see it.

Available commands:
  check   - Build a definition file and report errors
  inspect - Show a type's merged registries
  version - Show version information

Examples:
  paramspace check types.yaml            # Validate definitions
  paramspace check types.yaml --watch    # Re-validate on change
  paramspace inspect types.yaml Child    # Show Child's registries`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		if verbosity == 0 {
			verbosity = cfg.Log.Verbosity
		}
		level := logger.VerbosityToLevel(verbosity)
		if err := logger.InitializeWithLevel(cfg.Log.JSON, level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
