// Package projection converts between the relational film record and the
// flat, editable form model. Every function here is a pure transform:
// inputs are never mutated and missing sub-records never produce errors,
// they resolve to documented defaults.
package projection

import (
	"strings"

	"github.com/eac-lab/film-archive/internal/lib/flatten"
	ptr "github.com/eac-lab/film-archive/internal/lib/utils/pointers"
	"github.com/eac-lab/film-archive/internal/models"
)

// ToForm builds the flat form projection of one relational film record.
//
// Defaults: scalar fields fall back to ""/nil; production team and
// screenings default to a single blank placeholder row so the edit UI
// always has a row to render; authors flatten into the three known role
// slots; actors collapse to a comma-joined name string (character and
// comment data do not survive this direction); equipment, documents and
// institutional info take their primary (zeroth) record. File fields
// start empty, they only ever stage pending uploads.
func ToForm(rec models.FilmRecord) models.FilmForm {
	screenwriter := flatten.FindByRole(rec.Authors, models.RoleScreenwriter)
	filmmaker := flatten.FindByRole(rec.Authors, models.RoleFilmmaker)
	producer := flatten.FindByRole(rec.Authors, models.RoleExecutiveProducer)

	form := models.FilmForm{
		Title:          rec.Title,
		ReleaseYear:    cloneInt(rec.ReleaseYear),
		Runtime:        rec.Runtime,
		Synopsis:       rec.Synopsis,
		AvAnnotateLink: rec.AvAnnotateLink,

		ProductionDetails: rec.ProductionDetails,
		Authors: models.AuthorSlots{
			Screenwriter:             screenwriter.Name,
			ScreenwriterComment:      screenwriter.Comment,
			Filmmaker:                filmmaker.Name,
			FilmmakerComment:         filmmaker.Comment,
			ExecutiveProducer:        producer.Name,
			ExecutiveProducerComment: producer.Comment,
		},
		Actors:            joinActorNames(rec.Actors),
		Equipment:         flatten.FirstOr(rec.Equipment, models.Equipment{}),
		Documents:         flatten.FirstOr(rec.Documents, models.Document{}),
		InstitutionalInfo: flatten.FirstOr(rec.Institutions, models.InstitutionalInfo{}),

		ImageFiles: []models.PendingFile{},
	}

	if len(rec.Team) > 0 {
		form.ProductionTeam = make([]models.TeamMember, len(rec.Team))
		copy(form.ProductionTeam, rec.Team)
	} else {
		form.ProductionTeam = []models.TeamMember{{}}
	}

	if len(rec.Screenings) > 0 {
		form.Screenings = make([]models.Screening, 0, len(rec.Screenings))
		for _, s := range rec.Screenings {
			s.ScreeningDate = truncateDate(s.ScreeningDate)
			if s.Format == nil {
				s.Format = ptr.Pointer("")
			} else {
				s.Format = ptr.Pointer(*s.Format)
			}
			form.Screenings = append(form.Screenings, s)
		}
	} else {
		form.Screenings = []models.Screening{{Format: ptr.Pointer("")}}
	}

	return form
}

// PersistencePayload deep-clones the form and drops the three transient
// file fields. Pending uploads travel through separate calls, never
// inside the JSON body.
func PersistencePayload(form models.FilmForm) models.FilmPayload {
	payload := models.FilmPayload{
		Title:          form.Title,
		ReleaseYear:    cloneInt(form.ReleaseYear),
		Runtime:        form.Runtime,
		Synopsis:       form.Synopsis,
		AvAnnotateLink: form.AvAnnotateLink,

		ProductionDetails: form.ProductionDetails,
		Authors:           form.Authors,
		Actors:            form.Actors,
		Equipment:         form.Equipment,
		Documents:         form.Documents,
		InstitutionalInfo: form.InstitutionalInfo,
	}

	payload.ProductionTeam = make([]models.TeamMember, len(form.ProductionTeam))
	copy(payload.ProductionTeam, form.ProductionTeam)

	payload.Screenings = make([]models.Screening, 0, len(form.Screenings))
	for _, s := range form.Screenings {
		if s.Format != nil {
			s.Format = ptr.Pointer(*s.Format)
		}
		payload.Screenings = append(payload.Screenings, s)
	}

	return payload
}

// ToRecord expands a persistence payload back into the relational shape
// the store consumes. Blank placeholder rows the form keeps for
// rendering are dropped here, as are author slots left fully empty.
func ToRecord(payload models.FilmPayload) models.FilmRecord {
	rec := models.FilmRecord{
		Film: models.Film{
			Title:          payload.Title,
			ReleaseYear:    cloneInt(payload.ReleaseYear),
			Runtime:        payload.Runtime,
			Synopsis:       payload.Synopsis,
			AvAnnotateLink: payload.AvAnnotateLink,
		},
		ProductionDetails: payload.ProductionDetails,
		Authors:           slotAuthors(payload.Authors),
		Actors:            splitActors(payload.Actors),
	}

	for _, m := range payload.ProductionTeam {
		if m != (models.TeamMember{}) {
			rec.Team = append(rec.Team, m)
		}
	}

	if payload.Equipment != (models.Equipment{}) {
		rec.Equipment = []models.Equipment{payload.Equipment}
	}
	if payload.Documents != (models.Document{}) {
		rec.Documents = []models.Document{payload.Documents}
	}
	if payload.InstitutionalInfo != (models.InstitutionalInfo{}) {
		rec.Institutions = []models.InstitutionalInfo{payload.InstitutionalInfo}
	}

	for _, s := range payload.Screenings {
		if blankScreening(s) {
			continue
		}
		if s.Format != nil {
			s.Format = ptr.Pointer(*s.Format)
		}
		rec.Screenings = append(rec.Screenings, s)
	}

	return rec
}

func slotAuthors(slots models.AuthorSlots) []models.Author {
	var authors []models.Author

	add := func(role, name, comment string) {
		if name != "" || comment != "" {
			authors = append(authors, models.Author{Role: role, Name: name, Comment: comment})
		}
	}

	add(models.RoleScreenwriter, slots.Screenwriter, slots.ScreenwriterComment)
	add(models.RoleFilmmaker, slots.Filmmaker, slots.FilmmakerComment)
	add(models.RoleExecutiveProducer, slots.ExecutiveProducer, slots.ExecutiveProducerComment)

	return authors
}

func joinActorNames(actors []models.Actor) string {
	names := make([]string, 0, len(actors))
	for _, a := range actors {
		names = append(names, a.ActorName)
	}
	return strings.Join(names, ", ")
}

func splitActors(joined string) []models.Actor {
	var actors []models.Actor
	for _, name := range strings.Split(joined, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			actors = append(actors, models.Actor{ActorName: name})
		}
	}
	return actors
}

func blankScreening(s models.Screening) bool {
	format := ""
	if s.Format != nil {
		format = *s.Format
	}
	return s.ScreeningDate == "" &&
		s.ScreeningCity == "" &&
		s.ScreeningCountry == "" &&
		s.Organizers == "" &&
		format == "" &&
		s.Audience == "" &&
		s.FilmRights == "" &&
		s.Comment == "" &&
		s.Source == ""
}

// truncateDate cuts a screening timestamp down to its date part.
// "2021-05-01T00:00:00Z" becomes "2021-05-01"; plain dates pass through.
func truncateDate(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	return ptr.Pointer(*v)
}
