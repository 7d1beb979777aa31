package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ptr "github.com/eac-lab/film-archive/internal/lib/utils/pointers"
	"github.com/eac-lab/film-archive/internal/models"
)

func fullRecord() models.FilmRecord {
	return models.FilmRecord{
		Film: models.Film{
			ID:             7,
			Title:          "La Jetée",
			ReleaseYear:    ptr.Pointer[int64](1962),
			Runtime:        "28 min",
			Synopsis:       "A man is sent through time.",
			AvAnnotateLink: "https://av.example.org/la-jetee",
		},
		ProductionDetails: models.ProductionDetails{
			ProductionTimeframe:  "1960-1962",
			ShootingCity:         "Paris",
			ShootingCountry:      "France",
			PostProductionStudio: "Studio A",
			ProductionComments:   "archive print",
		},
		Authors: []models.Author{
			{Role: models.RoleScreenwriter, Name: "Chris Marker", Comment: "credited"},
			{Role: models.RoleFilmmaker, Name: "Chris Marker"},
			{Role: models.RoleExecutiveProducer, Name: "Anatole Dauman", Comment: "Argos Films"},
		},
		Team: []models.TeamMember{
			{Department: "Image Technicians", Name: "Jean Chiabaut", Role: "camera"},
			{Department: "Sound Technicians", Name: "Antoine Bonfanti"},
		},
		Actors: []models.Actor{
			{ActorName: "Hélène Châtelain", CharacterName: "The Woman"},
			{ActorName: "Davos Hanich", CharacterName: "The Man", Comment: "voice only"},
		},
		Equipment: []models.Equipment{
			{EquipmentName: "Pentax Spotmatic", Description: "still camera", Comment: "primary"},
			{EquipmentName: "Arriflex 35", Description: "one moving shot"},
		},
		Documents: []models.Document{
			{DocumentType: "press kit", FileURL: "https://files.example.org/pk.pdf", Comment: "scanned"},
		},
		Institutions: []models.InstitutionalInfo{
			{ProductionCompany: "Argos Films", FundingCompany: "CNC", Source: "catalogue"},
		},
		Screenings: []models.Screening{
			{
				ScreeningDate:    "1963-05-01",
				ScreeningCity:    "Paris",
				ScreeningCountry: "France",
				Organizers:       "Cinémathèque",
				Format:           ptr.Pointer("35mm"),
				Audience:         "public",
				FilmRights:       "Argos",
				Comment:          "premiere",
				Source:           "program",
			},
		},
	}
}

func TestToFormFullRecord(t *testing.T) {
	rec := fullRecord()
	form := ToForm(rec)

	assert.Equal(t, "La Jetée", form.Title)
	require.NotNil(t, form.ReleaseYear)
	assert.Equal(t, int64(1962), *form.ReleaseYear)

	assert.Equal(t, "Chris Marker", form.Authors.Screenwriter)
	assert.Equal(t, "credited", form.Authors.ScreenwriterComment)
	assert.Equal(t, "Chris Marker", form.Authors.Filmmaker)
	assert.Equal(t, "", form.Authors.FilmmakerComment)
	assert.Equal(t, "Anatole Dauman", form.Authors.ExecutiveProducer)
	assert.Equal(t, "Argos Films", form.Authors.ExecutiveProducerComment)

	assert.Equal(t, rec.Team, form.ProductionTeam)

	// Lossy by design: character names and comments do not survive.
	assert.Equal(t, "Hélène Châtelain, Davos Hanich", form.Actors)

	// Primary record policy: index zero wins.
	assert.Equal(t, rec.Equipment[0], form.Equipment)
	assert.Equal(t, rec.Documents[0], form.Documents)
	assert.Equal(t, rec.Institutions[0], form.InstitutionalInfo)

	assert.Equal(t, rec.Screenings, form.Screenings)

	assert.Nil(t, form.PosterFile)
	assert.Nil(t, form.FilmDocument)
	assert.Equal(t, []models.PendingFile{}, form.ImageFiles)
}

func TestToFormDefaults(t *testing.T) {
	form := ToForm(models.FilmRecord{})

	assert.Equal(t, "", form.Title)
	assert.Nil(t, form.ReleaseYear)
	assert.Equal(t, models.AuthorSlots{}, form.Authors)
	assert.Equal(t, "", form.Actors)
	assert.Equal(t, models.Equipment{}, form.Equipment)
	assert.Equal(t, models.Document{}, form.Documents)
	assert.Equal(t, models.InstitutionalInfo{}, form.InstitutionalInfo)

	// Empty team and screenings project to a single blank placeholder row.
	assert.Equal(t, []models.TeamMember{{}}, form.ProductionTeam)
	require.Len(t, form.Screenings, 1)
	blank := form.Screenings[0]
	assert.Equal(t, "", blank.ScreeningDate)
	require.NotNil(t, blank.Format)
	assert.Equal(t, "", *blank.Format)
}

func TestToFormTruncatesScreeningDates(t *testing.T) {
	rec := models.FilmRecord{
		Screenings: []models.Screening{
			{ScreeningDate: "2021-05-01T00:00:00Z", Organizers: "Fest"},
			{ScreeningDate: "2019-11-30", Organizers: "Archive night"},
		},
	}

	form := ToForm(rec)

	assert.Equal(t, "2021-05-01", form.Screenings[0].ScreeningDate)
	assert.Equal(t, "2019-11-30", form.Screenings[1].ScreeningDate)
}

func TestToFormDoesNotMutateInput(t *testing.T) {
	rec := models.FilmRecord{
		Screenings: []models.Screening{
			{ScreeningDate: "2021-05-01T00:00:00Z"},
		},
	}

	form := ToForm(rec)
	form.Screenings[0].ScreeningCity = "Berlin"
	*form.Screenings[0].Format = "16mm"

	assert.Equal(t, "2021-05-01T00:00:00Z", rec.Screenings[0].ScreeningDate)
	assert.Equal(t, "", rec.Screenings[0].ScreeningCity)
	assert.Nil(t, rec.Screenings[0].Format)
}

func TestPersistencePayloadStripsFiles(t *testing.T) {
	form := ToForm(fullRecord())
	form.StagePoster(models.PendingFile{Name: "poster.jpg", Data: []byte{1}})
	form.StageDocument(models.PendingFile{Name: "doc.pdf", Data: []byte{2}})
	require.NoError(t, form.StageImage(models.PendingFile{Name: "still.png", Data: []byte{3}}))

	payload := PersistencePayload(form)

	assert.Equal(t, form.Title, payload.Title)
	assert.Equal(t, form.Authors, payload.Authors)
	assert.Equal(t, form.ProductionTeam, payload.ProductionTeam)
	assert.Equal(t, form.Screenings, payload.Screenings)

	// The payload type carries no file fields at all; mutating the clone
	// must not reach back into the form.
	payload.ProductionTeam[0].Name = "changed"
	assert.Equal(t, "Jean Chiabaut", form.ProductionTeam[0].Name)
}

func TestRoundTrip(t *testing.T) {
	rec := fullRecord()

	payload := PersistencePayload(ToForm(rec))
	back := ToRecord(payload)

	assert.Equal(t, rec.Title, back.Title)
	assert.Equal(t, rec.ReleaseYear, back.ReleaseYear)
	assert.Equal(t, rec.Runtime, back.Runtime)
	assert.Equal(t, rec.Synopsis, back.Synopsis)
	assert.Equal(t, rec.AvAnnotateLink, back.AvAnnotateLink)
	assert.Equal(t, rec.ProductionDetails, back.ProductionDetails)
	assert.Equal(t, rec.Authors, back.Authors)
	assert.Equal(t, rec.Team, back.Team)
	assert.Equal(t, rec.Screenings, back.Screenings)
}

func TestToRecordDropsBlankRows(t *testing.T) {
	payload := models.FilmPayload{
		Title:          "Untitled",
		ProductionTeam: []models.TeamMember{{}, {Department: "Film Editor", Name: "X"}},
		Screenings: []models.Screening{
			{},
			{Format: ptr.Pointer("")},
			{ScreeningDate: "2020-01-01"},
		},
		Actors: "A, , B",
	}

	rec := ToRecord(payload)

	assert.Equal(t, []models.TeamMember{{Department: "Film Editor", Name: "X"}}, rec.Team)
	require.Len(t, rec.Screenings, 1)
	assert.Equal(t, "2020-01-01", rec.Screenings[0].ScreeningDate)
	assert.Equal(t, []models.Actor{{ActorName: "A"}, {ActorName: "B"}}, rec.Actors)
	assert.Empty(t, rec.Authors)
	assert.Empty(t, rec.Equipment)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		desc   string
		form   models.FilmForm
		expect []string
	}{
		{
			desc:   "valid",
			form:   models.FilmForm{Title: "T", ReleaseYear: ptr.Pointer[int64](1999)},
			expect: nil,
		},
		{
			desc:   "missing title",
			form:   models.FilmForm{ReleaseYear: ptr.Pointer[int64](1999)},
			expect: []string{"title"},
		},
		{
			desc:   "missing year",
			form:   models.FilmForm{Title: "T"},
			expect: []string{"release_year"},
		},
		{
			desc:   "year out of range",
			form:   models.FilmForm{Title: "T", ReleaseYear: ptr.Pointer[int64](123)},
			expect: []string{"release_year"},
		},
		{
			desc:   "everything missing",
			form:   models.FilmForm{},
			expect: []string{"title", "release_year"},
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			problems := Validate(tC.form)

			fields := make([]string, 0, len(problems))
			for k := range problems {
				fields = append(fields, k)
			}
			assert.ElementsMatch(t, tC.expect, fields)
		})
	}
}
