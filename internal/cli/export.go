package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/internal/export"
	"github.com/leochaparro05/rutinas/internal/repo"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all routines and exercises",
	Long:  `Export every routine with its exercises as CSV, a paginated text document, or a full YAML snapshot including the calendar.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, doc or yaml")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	routines, err := repo.NewRoutineRepo(db).FetchAll(ctx)
	if err != nil {
		return renderError(err)
	}

	var out io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "csv":
		err = export.WriteCSV(out, repo.Flatten(routines))
	case "doc":
		err = export.WriteDocument(out, routines)
	case "yaml":
		plans, plansErr := repo.NewPlanRepo(db).List(ctx)
		if plansErr != nil {
			return renderError(plansErr)
		}
		err = export.WriteYAML(out, export.NewSnapshot(routines, plans))
	default:
		return fmt.Errorf("unknown format %q, expected csv, doc or yaml", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		printSuccess("exported %d routines to %s", len(routines), exportOutput)
	}
	return nil
}
