package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/paramspace/config"
	"github.com/teranos/paramspace/errors"
	"github.com/teranos/paramspace/famdef"
)

var checkWatch bool

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [FILE]",
	Short: "Build a definition file and report errors",
	Long: `Build every type a definition file declares and report the first
construction error, if any. With --watch, stays running and re-checks
the file whenever it changes.

The file defaults to the configured definitions path.

Examples:
  paramspace check types.yaml
  paramspace check types.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckCommand,
}

func init() {
	CheckCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check the file on every change")
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	path, err := definitionPath(args)
	if err != nil {
		return err
	}

	if err := checkFile(path); err != nil {
		if !checkWatch {
			return err
		}
		pterm.Error.Printf("%s: %v\n", path, err)
	}

	if !checkWatch {
		return nil
	}

	watcher, err := famdef.NewWatcher(path)
	if err != nil {
		return errors.Wrap(err, "failed to start watcher")
	}
	defer watcher.Stop()

	watcher.OnReload(func(set *famdef.Set) error {
		pterm.Success.Printf("%s: %d types OK\n", path, set.Len())
		return nil
	})
	watcher.Start()
	pterm.Info.Printf("Watching %s (Ctrl+C to stop)\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	pterm.Info.Println("\nStopping watcher")
	return nil
}

func checkFile(path string) error {
	file, err := famdef.Load(path)
	if err != nil {
		return err
	}
	set, err := famdef.Build(file)
	if err != nil {
		return err
	}
	pterm.Success.Printf("%s: %d types OK\n", path, set.Len())
	return nil
}

// definitionPath resolves the definition file from the argument list or
// the configured default.
func definitionPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Definitions.Path, nil
}
