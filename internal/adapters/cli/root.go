package cli

import (
	"github.com/spf13/cobra"

	"syncolow/internal/app"
)

// NewRootCmd builds the CLI command tree around the ApplicationService.
func NewRootCmd(svc app.ApplicationService) *cobra.Command {
	root := &cobra.Command{
		Use:   "syncolow",
		Short: "Import and normalize tabular order files",
		Long: "syncolow reads customer order spreadsheets (CSV or XLSX), maps their\n" +
			"columns onto the canonical order schema, normalizes values, validates\n" +
			"rows and stores accepted orders with duplicate protection.",
		SilenceUsage: true,
	}

	root.AddCommand(newImportCmd(svc))
	root.AddCommand(newFieldsCmd(svc))
	return root
}
