package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ptr "github.com/eac-lab/film-archive/internal/lib/utils/pointers"
	"github.com/eac-lab/film-archive/internal/models"
)

func TestBuildRecordScalars(t *testing.T) {
	rec := models.FilmRecord{
		Film: models.Film{
			ID:             3,
			Title:          "Sans Soleil",
			ReleaseYear:    ptr.Pointer[int64](1983),
			Runtime:        "104 min",
			Synopsis:       "Letters from a traveller.",
			AvAnnotateLink: "https://av.example.org/sans-soleil",
		},
	}

	r := BuildRecord(rec)

	assert.Equal(t,
		[]string{"film_id", "title", "release_year", "runtime", "synopsis", "link",
			"Actors", "Equipment", "Documents", "Institutions", "Screenings"},
		r.Keys(),
	)
	assert.Equal(t, "3", r.Get("film_id"))
	assert.Equal(t, "1983", r.Get("release_year"))
	assert.Equal(t, "https://av.example.org/sans-soleil", r.Get("link"))
}

func TestBuildRecordNilYear(t *testing.T) {
	r := BuildRecord(models.FilmRecord{})

	assert.Equal(t, "", r.Get("release_year"))
}

func TestBuildRecordAuthorColumns(t *testing.T) {
	rec := models.FilmRecord{
		Authors: []models.Author{
			{Role: "Screenwriter", Name: "First Writer"},
			{Role: "Executive Producer", Name: "Producer"},
			// Later duplicate role overwrites the earlier one (kept quirk).
			{Role: "Screenwriter", Name: "Second Writer"},
			// Entries missing a role or a name contribute no column.
			{Role: "", Name: "Nameless Role"},
			{Role: "Filmmaker", Name: ""},
		},
	}

	r := BuildRecord(rec)

	assert.Equal(t, "Second Writer", r.Get("screenwriter"))
	assert.Equal(t, "Producer", r.Get("executive_producer"))
	assert.False(t, r.Has("filmmaker"))

	// Overwrite keeps the first-seen column position.
	keys := r.Keys()
	assert.Equal(t, "screenwriter", keys[6])
	assert.Equal(t, "executive_producer", keys[7])
}

func TestBuildRecordTeamColumns(t *testing.T) {
	rec := models.FilmRecord{
		Team: []models.TeamMember{
			{Department: "Image Technicians", Name: "A"},
			{Department: "Sound Technicians", Name: "B"},
			// Repeated departments concatenate in encounter order.
			{Department: "Image Technicians", Name: "C"},
			{Department: "", Name: "dropped"},
			{Department: "Film Editor", Name: ""},
		},
	}

	r := BuildRecord(rec)

	assert.Equal(t, "A; C", r.Get("image_technicians"))
	assert.Equal(t, "B", r.Get("sound_technicians"))
	assert.False(t, r.Has("film_editor"))
}

func TestBuildRecordMultilineBlocks(t *testing.T) {
	rec := models.FilmRecord{
		Actors: []models.Actor{
			{ActorName: "A", CharacterName: "X"},
			{ActorName: "B"},
		},
		Equipment: []models.Equipment{
			{EquipmentName: "Bolex H16", Description: "16mm"},
			{EquipmentName: "Nagra III"},
		},
		Documents: []models.Document{
			{DocumentType: "press kit", FileURL: "https://files.example.org/pk.pdf"},
		},
		Institutions: []models.InstitutionalInfo{
			{ProductionCompany: "Argos Films", FundingCompany: "CNC"},
		},
	}

	r := BuildRecord(rec)

	assert.Equal(t, "Actors:\n- A as X\n- B", r.Get("Actors"))
	assert.Equal(t, "Equipment:\n- Bolex H16 (16mm)\n- Nagra III", r.Get("Equipment"))
	assert.Equal(t, "Documents:\n- press kit: https://files.example.org/pk.pdf", r.Get("Documents"))
	assert.Equal(t, "Institutions:\n- Argos Films / CNC", r.Get("Institutions"))
	assert.Equal(t, "Screenings:\n(none)", r.Get("Screenings"))
}

func TestBuildRecordEmptyActorList(t *testing.T) {
	r := BuildRecord(models.FilmRecord{})

	assert.Equal(t, "Actors:\n(none)", r.Get("Actors"))
}

func TestBuildRecordScreeningFormat(t *testing.T) {
	rec := models.FilmRecord{
		Screenings: []models.Screening{
			// Absent format surfaces literally; the stored date is not
			// truncated on the export path.
			{ScreeningDate: "2021-05-01T00:00:00Z", Organizers: "Fest"},
			{ScreeningDate: "1963-05-01", Organizers: "Cinémathèque", Format: ptr.Pointer("35mm")},
			{ScreeningDate: "1970-01-01", Organizers: "Club", Format: ptr.Pointer("")},
		},
	}

	r := BuildRecord(rec)

	assert.Equal(t,
		"Screenings:\n- 2021-05-01T00:00:00Z - Fest (undefined)\n- 1963-05-01 - Cinémathèque (35mm)\n- 1970-01-01 - Club ()",
		r.Get("Screenings"),
	)
}
