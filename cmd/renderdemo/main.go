package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "renderdemo: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "renderdemo",
		Short: "Render research exports offline",
		Long: `renderdemo renders a research payload to Markdown, PDF or DOCX using the
same renderers as the API, and verifies every file it writes.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newExportCmd(), newConfigCmd())
	return root
}
