package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "save [fact]",
		Short: "Run save_memory for a fact",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSave,
	}

	cmd.Flags().StringP("category", "c", "", "Category label for the saved fact")

	RootCmd.AddCommand(cmd)
}

func runSave(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")

	a, err := bootstrap()
	if err != nil {
		exitErr("bootstrap", err)
	}
	defer a.Close()

	fact := strings.Join(args, " ")
	fmt.Println(a.controller.SaveMemory(cmd.Context(), fact, category))
}
