package cli

import (
	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/repo"
)

var (
	exName    string
	exWeekday string
	exSets    int
	exReps    int
	exWeight  float64
	exNotes   string
	exOrder   int
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercises inside a routine",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <routine-id>",
	Short: "Add an exercise to an existing routine",
	Args:  cobra.ExactArgs(1),
	RunE:  runExerciseAdd,
}

var exerciseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing exercise",
	Args:  cobra.ExactArgs(1),
	RunE:  runExerciseUpdate,
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise",
	Args:  cobra.ExactArgs(1),
	RunE:  runExerciseDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{exerciseAddCmd, exerciseUpdateCmd} {
		cmd.Flags().StringVar(&exName, "name", "", "exercise name")
		cmd.Flags().StringVar(&exWeekday, "dia", "", "weekday (Lunes..Domingo)")
		cmd.Flags().IntVar(&exSets, "series", 0, "number of sets")
		cmd.Flags().IntVar(&exReps, "reps", 0, "repetitions per set")
		cmd.Flags().Float64Var(&exWeight, "peso", 0, "weight in kg")
		cmd.Flags().StringVar(&exNotes, "notas", "", "free-form notes")
		cmd.Flags().IntVar(&exOrder, "orden", 0, "position inside the routine")
	}

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseUpdateCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
}

func runExerciseAdd(cmd *cobra.Command, args []string) error {
	routineID, err := parseID(args[0])
	if err != nil {
		return err
	}

	in := repo.ExerciseInput{
		Name:    exName,
		Weekday: models.Weekday(exWeekday),
		Sets:    exSets,
		Reps:    exReps,
	}
	if cmd.Flags().Changed("peso") {
		in.Weight = &exWeight
	}
	if cmd.Flags().Changed("notas") {
		in.Notes = &exNotes
	}
	if cmd.Flags().Changed("orden") {
		in.Order = &exOrder
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// The routine must exist before the exercise is written; the
	// repository would only fail later at the foreign-key level.
	if _, err := repo.NewRoutineRepo(db).Get(ctx, routineID); err != nil {
		return renderError(err)
	}

	ex, err := repo.NewExerciseRepo(db).Create(ctx, routineID, in, nil)
	if err != nil {
		return renderError(err)
	}

	printSuccess("added exercise %q (ID %d) to routine %d", ex.Name, ex.ID, routineID)
	return nil
}

func runExerciseUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var upd repo.ExerciseUpdate
	if cmd.Flags().Changed("name") {
		upd.Name = &exName
	}
	if cmd.Flags().Changed("dia") {
		day, err := models.ParseWeekday(exWeekday)
		if err != nil {
			return err
		}
		upd.Weekday = &day
	}
	if cmd.Flags().Changed("series") {
		upd.Sets = &exSets
	}
	if cmd.Flags().Changed("reps") {
		upd.Reps = &exReps
	}
	if cmd.Flags().Changed("peso") {
		upd.Weight = &exWeight
	}
	if cmd.Flags().Changed("notas") {
		upd.Notes = &exNotes
	}
	if cmd.Flags().Changed("orden") {
		upd.Order = &exOrder
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ex, err := repo.NewExerciseRepo(db).Update(ctx, id, upd)
	if err != nil {
		return renderError(err)
	}

	printSuccess("updated exercise %q (ID %d)", ex.Name, ex.ID)
	return nil
}

func runExerciseDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.NewExerciseRepo(db).Delete(ctx, id); err != nil {
		return renderError(err)
	}

	printSuccess("deleted exercise %d", id)
	return nil
}
