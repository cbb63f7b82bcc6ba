package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leochaparro05/rutinas/internal/models"
)

// linesPerPage is the page height of the rendered document.
const linesPerPage = 48

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// WriteDocument renders all routines as a paginated plain-text report:
// a titled page sequence with one section per routine, one line per
// exercise and a "Sin ejercicios" marker for empty routines.
func WriteDocument(w io.Writer, routines []models.Routine) error {
	lines := []string{"Rutinas de Gimnasio", ""}

	for _, rt := range routines {
		lines = append(lines, fmt.Sprintf("Rutina: %s (ID %d)", rt.Name, rt.ID))
		if rt.Description != nil && *rt.Description != "" {
			lines = append(lines, fmt.Sprintf("Desc: %s", *rt.Description))
		}
		if len(rt.Exercises) == 0 {
			lines = append(lines, "Sin ejercicios")
		}
		for _, ex := range rt.Exercises {
			line := fmt.Sprintf("- %s: %s %dx%d", ex.Weekday, ex.Name, ex.Sets, ex.Reps)
			if ex.Weight != nil {
				line += fmt.Sprintf(" @ %gkg", *ex.Weight)
			}
			if ex.Order != nil {
				line += fmt.Sprintf(" (orden %d)", *ex.Order)
			}
			lines = append(lines, line)
			if ex.Notes != nil && *ex.Notes != "" {
				lines = append(lines, fmt.Sprintf("  Notas: %s", *ex.Notes))
			}
		}
		lines = append(lines, "")
	}

	return writePages(w, lines)
}

// writePages splits lines into fixed-height pages, each with its own
// page header.
func writePages(w io.Writer, lines []string) error {
	pages := (len(lines) + linesPerPage - 1) / linesPerPage
	if pages == 0 {
		pages = 1
	}

	var b strings.Builder
	for page := 0; page < pages; page++ {
		if page > 0 {
			b.WriteString("\f")
		}
		fmt.Fprintf(&b, "=== Página %d de %d ===\n", page+1, pages)

		start := page * linesPerPage
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		for _, line := range lines[start:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
