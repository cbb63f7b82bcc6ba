package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/internal/logger"
	"github.com/leochaparro05/rutinas/internal/store"
)

// Global configuration variables
var (
	configFile  string
	config      *Config
	databaseURL string
	debug       bool
	verbose     bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rutinas",
		Short: "Rutinas - gym routine manager",
		Long: `Rutinas manages named workout routines, their exercises and a
training calendar backed by PostgreSQL.

It provides:
- Routine CRUD with filtered, paginated listing and name search
- Exercises tagged by weekday with sets/reps/weight tracking
- Collision-free routine duplication
- A calendar that schedules at most one routine per date
- Aggregate statistics and CSV/document/YAML exports`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				logger.SetLevel(logger.LevelDebug)
			case debug:
				logger.SetLevel(logger.LevelInfo)
			}

			var err error
			config, err = LoadConfig(configFile)
			if err != nil {
				logger.CLI().Warn("failed to load config file: %v", err)
				config = defaultConfig()
			}

			databaseURL = ResolveDatabaseURL(databaseURL, config)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: rutinas.yaml)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "database connection URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// commandContext bounds every CLI database operation.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// connect opens the database using the resolved URL and pool settings.
func connect(ctx context.Context) (*sqlx.DB, error) {
	cfg := store.NewConfig(databaseURL)
	if config != nil && config.Database.MaxConnections > 0 {
		cfg.MaxOpenConns = config.Database.MaxConnections
	}
	return cfg.Connect(ctx)
}

// renderError translates typed store errors into user-facing messages.
// The typed distinction between not-found, conflicts and validation
// failures is the contract with the core; everything else surfaces
// as-is.
func renderError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("not found")
	case store.IsConflict(err):
		return fmt.Errorf("name or date already in use")
	case store.IsValidation(err):
		return err
	default:
		return err
	}
}
