package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/leochaparro05/rutinas/internal/logger"
	"github.com/leochaparro05/rutinas/internal/repo"
)

// csvHeader is a compatibility contract; consumers parse exports by
// these names, in this order.
var csvHeader = []string{
	"rutina_id", "nombre", "descripcion", "creado_en",
	"ejercicio", "dia", "series", "repeticiones", "peso", "notas", "orden",
}

// WriteCSV renders the flattened rows as CSV, one line per
// routine×exercise pair.
func WriteCSV(w io.Writer, rows []repo.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			formatID(row.RoutineID),
			row.Name,
			row.Description,
			row.CreatedAt.Format(time.RFC3339),
			row.Exercise,
			row.Weekday,
			row.Sets,
			row.Reps,
			row.Weight,
			row.Notes,
			row.Order,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	logger.Export().Debug("wrote %d csv rows", len(rows))
	return nil
}
