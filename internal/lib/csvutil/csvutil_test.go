package csvutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eac-lab/film-archive/internal/models"
)

func record(pairs ...string) models.ExportRecord {
	r := models.NewExportRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestSerializeQuoting(t *testing.T) {
	rows := []models.ExportRecord{
		record("quote", `He said "hi", ok`),
	}

	assert.Equal(t, "quote\n\"He said \"\"hi\"\", ok\"", Serialize(rows, nil))
}

func TestSerializeHeaderFromFirstRecord(t *testing.T) {
	rows := []models.ExportRecord{
		record("film_id", "1", "title", "Le Joli Mai"),
		// Columns absent from the first record silently fall out.
		record("film_id", "2", "title", "Sans Soleil", "filmmaker", "Chris Marker"),
	}

	assert.Equal(t,
		"film_id,title\n\"1\",\"Le Joli Mai\"\n\"2\",\"Sans Soleil\"",
		Serialize(rows, nil),
	)
}

func TestSerializeExplicitHeaders(t *testing.T) {
	rows := []models.ExportRecord{
		record("title", "Sans Soleil"),
	}

	// Missing columns render as empty quoted cells.
	assert.Equal(t,
		"title,filmmaker\n\"Sans Soleil\",\"\"",
		Serialize(rows, []string{"title", "filmmaker"}),
	)
}

func TestSerializeMultilineCell(t *testing.T) {
	rows := []models.ExportRecord{
		record("Actors", "Actors:\n- A as X\n- B"),
	}

	assert.Equal(t, "Actors\n\"Actors:\n- A as X\n- B\"", Serialize(rows, nil))
}

func TestSerializeEmpty(t *testing.T) {
	assert.Equal(t, "", Serialize(nil, nil))
	assert.Equal(t, "a,b", Serialize(nil, []string{"a", "b"}))
}
