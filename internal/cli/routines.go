package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/repo"
)

var (
	listLimit     int
	listOffset    int
	listWeekday   string
	listExercise  string
	createName    string
	createDesc    string
	createFile    string
	updateName    string
	updateDesc    string
	duplicateName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List routines with pagination and optional filters",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one routine with its exercises",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a routine, optionally with initial exercises from a YAML file",
	RunE:  runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a routine's name and/or description",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a routine and all its exercises",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Duplicate a routine and its exercises under a collision-free name",
	Args:  cobra.ExactArgs(1),
	RunE:  runDuplicate,
}

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search routines by name, case-insensitive",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 10, "page size")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "page offset")
	listCmd.Flags().StringVar(&listWeekday, "dia", "", "only routines with an exercise on this weekday")
	listCmd.Flags().StringVar(&listExercise, "ejercicio", "", "only routines with an exercise whose name contains this text")

	createCmd.Flags().StringVar(&createName, "name", "", "routine name")
	createCmd.Flags().StringVar(&createDesc, "description", "", "routine description")
	createCmd.Flags().StringVar(&createFile, "file", "", "YAML file with the routine payload (name, description, exercises)")

	updateCmd.Flags().StringVar(&updateName, "name", "", "new routine name")
	updateCmd.Flags().StringVar(&updateDesc, "description", "", "new routine description")

	duplicateCmd.Flags().StringVar(&duplicateName, "name", "", "explicit name for the copy (default: auto-generated)")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	filter := repo.ListFilter{Limit: listLimit, Offset: listOffset, ExerciseName: listExercise}
	if listWeekday != "" {
		day, err := models.ParseWeekday(listWeekday)
		if err != nil {
			return err
		}
		filter.Weekday = &day
	}

	items, total, err := repo.NewRoutineRepo(db).List(ctx, filter)
	if err != nil {
		return renderError(err)
	}

	printHeader("Rutinas (%d-%d de %d)", listOffset+1, listOffset+len(items), total)
	for _, rt := range items {
		desc := ""
		if rt.Description != nil {
			desc = *rt.Description
		}
		fmt.Printf("%4d  %-30s  %s\n", rt.ID, rt.Name, desc)
	}
	if len(items) == 0 {
		printDim("  (no routines)")
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
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

	rt, err := repo.NewRoutineRepo(db).Get(ctx, id)
	if err != nil {
		return renderError(err)
	}

	printRoutine(rt)
	return nil
}

func printRoutine(rt *models.Routine) {
	printHeader("Rutina: %s (ID %d)", rt.Name, rt.ID)
	if rt.Description != nil && *rt.Description != "" {
		printLabelValue("Descripción", *rt.Description)
	}
	printLabelValue("Creada", rt.CreatedAt.Format("2006-01-02 15:04"))
	if len(rt.Exercises) == 0 {
		printDim("  Sin ejercicios")
		return
	}
	for _, ex := range rt.Exercises {
		line := fmt.Sprintf("  [%d] %s: %s %dx%d", ex.ID, ex.Weekday, ex.Name, ex.Sets, ex.Reps)
		if ex.Weight != nil {
			line += fmt.Sprintf(" @ %gkg", *ex.Weight)
		}
		if ex.Order != nil {
			line += fmt.Sprintf(" (orden %d)", *ex.Order)
		}
		fmt.Println(line)
		if ex.Notes != nil && *ex.Notes != "" {
			printDim("       Notas: %s", *ex.Notes)
		}
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	var payload repo.CreateRoutine

	if createFile != "" {
		data, err := os.ReadFile(createFile)
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("failed to parse payload file: %w", err)
		}
	}
	if cmd.Flags().Changed("name") {
		payload.Name = createName
	}
	if cmd.Flags().Changed("description") {
		payload.Description = &createDesc
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rt, err := repo.NewRoutineRepo(db).Create(ctx, payload)
	if err != nil {
		return renderError(err)
	}

	printSuccess("created routine %q (ID %d) with %d exercises", rt.Name, rt.ID, len(rt.Exercises))
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var upd repo.UpdateRoutine
	if cmd.Flags().Changed("name") {
		upd.Name = &updateName
	}
	if cmd.Flags().Changed("description") {
		upd.Description = &updateDesc
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rt, err := repo.NewRoutineRepo(db).Update(ctx, id, upd)
	if err != nil {
		return renderError(err)
	}

	printSuccess("updated routine %q (ID %d)", rt.Name, rt.ID)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if err := repo.NewRoutineRepo(db).Delete(ctx, id); err != nil {
		return renderError(err)
	}

	printSuccess("deleted routine %d and its exercises", id)
	return nil
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var newName *string
	if cmd.Flags().Changed("name") {
		newName = &duplicateName
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	dup, err := repo.NewRoutineRepo(db).Duplicate(ctx, id, newName)
	if err != nil {
		return renderError(err)
	}

	printSuccess("duplicated routine %d into %q (ID %d)", id, dup.Name, dup.ID)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := repo.NewRoutineRepo(db).Search(ctx, args[0])
	if err != nil {
		return renderError(err)
	}

	for _, rt := range items {
		fmt.Printf("%4d  %s\n", rt.ID, rt.Name)
	}
	if len(items) == 0 {
		printDim("no routines match %q", args[0])
	}
	return nil
}
