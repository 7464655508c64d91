package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"syncolow/internal/app"
	"syncolow/internal/core"
)

func newImportCmd(svc app.ApplicationService) *cobra.Command {
	var (
		companyCode string
		dryRun      bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Run a spreadsheet through the import pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			report, err := svc.ImportFile(cmd.Context(), app.ImportFileRequest{
				CompanyCode: companyCode,
				Filename:    filepath.Base(path),
				Data:        f,
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&companyCode, "company", "", "company code the import belongs to (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the full pipeline without writing to the database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func printReport(cmd *cobra.Command, report *core.ImportReport) {
	out := cmd.OutOrStdout()
	mode := "import"
	if report.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(out, "%s %s: %d rows, %d accepted, %d rejected, %d duplicates, %d auto-fixes\n",
		mode, report.Source, report.RowCount, len(report.Accepted), len(report.Rejected),
		len(report.Duplicates), len(report.Fixes))

	for _, e := range report.Errors {
		if e.RowIndex > 0 {
			fmt.Fprintf(out, "  row %d [%s/%s] %s: %s\n", e.RowIndex, e.Severity, e.Code, e.Field, e.Detail)
		} else {
			fmt.Fprintf(out, "  [%s/%s] %s\n", e.Severity, e.Code, e.Detail)
		}
	}
	for _, rej := range report.Rejected {
		for _, e := range rej.Errors {
			fmt.Fprintf(out, "  row %d [%s/%s] %s: %s\n", e.RowIndex, e.Severity, e.Code, e.Field, e.Detail)
		}
	}
	for _, fix := range report.Fixes {
		fmt.Fprintf(out, "  row %d fixed %s (%s): %q -> %q\n", fix.RowIndex, fix.Field, fix.RuleID, fix.Before, fix.After)
	}
}

func newFieldsCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the canonical order fields the importer expects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, f := range svc.ListFields() {
				req := ""
				if f.Required {
					req = " (required)"
				}
				fmt.Fprintf(out, "%-14s %-8s %s%s\n", f.Key, f.Type, f.Label, req)
			}
			return nil
		},
	}
}
