package cli

import (
	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the database schema",
	Long:  `Create the rutinas, ejercicios and planificaciones tables if they do not exist.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		return renderError(err)
	}

	printSuccess("database schema is up to date")
	return nil
}
