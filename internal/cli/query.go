package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "query [topic]",
		Short: "Run query_personal_memory for a topic",
		Long:  "Runs the full retrieval pipeline (retrieve, redact, gate, optionally generate) for a topic, exactly as an MCP client's query_personal_memory call would.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runQuery,
	}

	RootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) {
	topic := strings.Join(args, " ")

	a, err := bootstrap()
	if err != nil {
		exitErr("bootstrap", err)
	}
	defer a.Close()

	fmt.Println(a.controller.QueryPersonalMemory(cmd.Context(), topic))
}
