package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archestra-labs/memcore/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and print diagnostics",
		Long:  "Loads configuration from the environment and runs the same validation bootstrap runs, without opening the memory store or starting background jobs.",
		Run:   runDoctor,
	}

	RootCmd.AddCommand(cmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	diags := config.Validate(cfg)

	if len(diags) == 0 {
		fmt.Println("configuration OK, no diagnostics")
		return
	}

	hasError := false
	for _, d := range diags {
		fmt.Printf("%s\n", d.String())
		if d.Severity == config.SeverityError {
			hasError = true
		}
	}

	if hasError {
		os.Exit(1)
	}
}
