package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/internal/repo"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := repo.NewStatsAggregator(db).Compute(ctx)
	if err != nil {
		return renderError(err)
	}

	printHeader("Estadísticas")
	printLabelValue("Rutinas", stats.TotalRoutines)
	printLabelValue("Ejercicios", stats.TotalExercises)

	if len(stats.TopRoutines) > 0 {
		printHeader("Top rutinas")
		for i, rc := range stats.TopRoutines {
			fmt.Printf("  %d. %s (%d ejercicios)\n", i+1, rc.Name, rc.ExerciseCount)
		}
	}

	if len(stats.Weekdays) > 0 {
		printHeader("Días más entrenados")
		for _, wc := range stats.Weekdays {
			fmt.Printf("  %-10s %d\n", wc.Weekday, wc.Count)
		}
	}

	return nil
}
