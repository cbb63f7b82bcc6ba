package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/repo"
)

var (
	planDate    string
	planRoutine int64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the training calendar",
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled routines by date",
	RunE:  runPlanList,
}

var planSetCmd = &cobra.Command{
	Use:   "set <fecha> <routine-id>",
	Short: "Schedule a routine on a date (replaces any existing assignment)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanSet,
}

var planUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the date and/or routine of a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanUpdate,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a plan from the calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

func init() {
	planUpdateCmd.Flags().StringVar(&planDate, "fecha", "", "new date (YYYY-MM-DD)")
	planUpdateCmd.Flags().Int64Var(&planRoutine, "rutina", 0, "new routine id")

	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planSetCmd)
	planCmd.AddCommand(planUpdateCmd)
	planCmd.AddCommand(planDeleteCmd)
}

func parseDate(arg string) (time.Time, error) {
	d, err := time.Parse(models.PlanDateLayout, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", arg)
	}
	return d, nil
}

func runPlanList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	plans, err := repo.NewPlanRepo(db).List(ctx)
	if err != nil {
		return renderError(err)
	}

	for _, p := range plans {
		fmt.Printf("%4d  %s  %s\n", p.ID, p.Date.Format(models.PlanDateLayout), p.RoutineName)
	}
	if len(plans) == 0 {
		printDim("no scheduled routines")
	}
	return nil
}

func runPlanSet(cmd *cobra.Command, args []string) error {
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	routineID, err := parseID(args[1])
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

	// Verify the routine before writing; the plan repository only
	// enforces this through the foreign key.
	if _, err := repo.NewRoutineRepo(db).Get(ctx, routineID); err != nil {
		return renderError(err)
	}

	p, err := repo.NewPlanRepo(db).Schedule(ctx, date, routineID)
	if err != nil {
		return renderError(err)
	}

	printSuccess("routine %d scheduled on %s (plan %d)", routineID, p.Date.Format(models.PlanDateLayout), p.ID)
	return nil
}

func runPlanUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var upd repo.PlanUpdate
	if cmd.Flags().Changed("fecha") {
		date, err := parseDate(planDate)
		if err != nil {
			return err
		}
		upd.Date = &date
	}
	if cmd.Flags().Changed("rutina") {
		upd.RoutineID = &planRoutine
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if upd.RoutineID != nil {
		if _, err := repo.NewRoutineRepo(db).Get(ctx, *upd.RoutineID); err != nil {
			return renderError(err)
		}
	}

	p, err := repo.NewPlanRepo(db).Update(ctx, id, upd)
	if err != nil {
		return renderError(err)
	}

	printSuccess("plan %d now schedules routine %d on %s", p.ID, p.RoutineID, p.Date.Format(models.PlanDateLayout))
	return nil
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
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

	if err := repo.NewPlanRepo(db).Delete(ctx, id); err != nil {
		return renderError(err)
	}

	printSuccess("removed plan %d", id)
	return nil
}
