package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the current telemetry stats snapshot",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := bootstrap()
	if err != nil {
		exitErr("bootstrap", err)
	}
	defer a.Close()

	b, _ := json.MarshalIndent(a.stats.Snapshot(), "", "  ")
	fmt.Println(string(b))
}
