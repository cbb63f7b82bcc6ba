package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leochaparro05/rutinas/internal/models"
)

func TestWriteDocument(t *testing.T) {
	routines := []models.Routine{
		{
			ID:          1,
			Name:        "Pecho",
			Description: strPtr("empuje"),
			Exercises: []models.Exercise{
				{Name: "Press banca", Weekday: models.Monday, Sets: 4, Reps: 10, Weight: floatPtr(60.5), Order: intPtr(0)},
				{Name: "Aperturas", Weekday: models.Monday, Sets: 3, Reps: 12, Notes: strPtr("lento")},
			},
		},
		{ID: 3, Name: "Vacía"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, routines))
	out := buf.String()

	assert.Contains(t, out, "Rutinas de Gimnasio")
	assert.Contains(t, out, "=== Página 1 de 1 ===")
	assert.Contains(t, out, "Rutina: Pecho (ID 1)")
	assert.Contains(t, out, "Desc: empuje")
	assert.Contains(t, out, "- Lunes: Press banca 4x10 @ 60.5kg (orden 0)")
	assert.Contains(t, out, "- Lunes: Aperturas 3x12")
	assert.Contains(t, out, "  Notas: lento")
	assert.Contains(t, out, "Rutina: Vacía (ID 3)")
	assert.Contains(t, out, "Sin ejercicios")
	assert.NotContains(t, out, "\f")
}

func TestWriteDocumentPaginates(t *testing.T) {
	routines := make([]models.Routine, 30)
	for i := range routines {
		routines[i] = models.Routine{ID: int64(i + 1), Name: fmt.Sprintf("Rutina %d", i+1)}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, routines))
	out := buf.String()

	// 2 title lines plus 3 lines per empty routine spill onto a second page.
	pages := strings.Split(out, "\f")
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "=== Página 1 de 2 ===")
	assert.Contains(t, pages[1], "=== Página 2 de 2 ===")
	assert.Contains(t, pages[1], "Rutina 30")
}

func TestWriteDocumentEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, nil))

	assert.Contains(t, buf.String(), "=== Página 1 de 1 ===")
	assert.Contains(t, buf.String(), "Rutinas de Gimnasio")
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
