package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eac-lab/film-archive/internal/lib/flatten"
	"github.com/eac-lab/film-archive/internal/models"
)

// BuildRecord flattens one relational film record into a single export
// row. Author and team columns are derived dynamically from role and
// department labels; list-valued relationships render as one multiline
// text block per entity.
//
// Two quirks of the legacy exporter are kept on purpose: a later author
// with an already-seen role overwrites the earlier one (teams
// concatenate instead), and an absent screening format surfaces as the
// literal "undefined".
func BuildRecord(rec models.FilmRecord) models.ExportRecord {
	r := models.NewExportRecord()

	r.Set("film_id", strconv.FormatInt(rec.ID, 10))
	r.Set("title", rec.Title)
	r.Set("release_year", yearString(rec.ReleaseYear))
	r.Set("runtime", rec.Runtime)
	r.Set("synopsis", rec.Synopsis)
	r.Set("link", rec.AvAnnotateLink)

	for _, a := range rec.Authors {
		if a.Role != "" && a.Name != "" {
			r.Set(flatten.ColumnKey(a.Role), a.Name)
		}
	}

	named := make([]models.TeamMember, 0, len(rec.Team))
	for _, m := range rec.Team {
		if m.Department != "" && m.Name != "" {
			named = append(named, m)
		}
	}
	groups := flatten.GroupBy(named, func(m models.TeamMember) string {
		return flatten.ColumnKey(m.Department)
	})
	for _, key := range groups.Keys() {
		members := groups.Get(key)
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, m.Name)
		}
		r.Set(key, strings.Join(names, "; "))
	}

	r.Set("Actors", block("Actors", actorLines(rec.Actors)))
	r.Set("Equipment", block("Equipment", equipmentLines(rec.Equipment)))
	r.Set("Documents", block("Documents", documentLines(rec.Documents)))
	r.Set("Institutions", block("Institutions", institutionLines(rec.Institutions)))
	r.Set("Screenings", block("Screenings", screeningLines(rec.Screenings)))

	return r
}

// block renders a labelled multiline cell: one "- " bullet per entry,
// or "(none)" for an empty list.
func block(label string, lines []string) string {
	if len(lines) == 0 {
		return label + ":\n(none)"
	}
	return label + ":\n- " + strings.Join(lines, "\n- ")
}

func actorLines(actors []models.Actor) []string {
	lines := make([]string, 0, len(actors))
	for _, a := range actors {
		line := a.ActorName
		if a.CharacterName != "" {
			line += " as " + a.CharacterName
		}
		lines = append(lines, line)
	}
	return lines
}

func equipmentLines(equipment []models.Equipment) []string {
	lines := make([]string, 0, len(equipment))
	for _, e := range equipment {
		line := e.EquipmentName
		if e.Description != "" {
			line += " (" + e.Description + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func documentLines(documents []models.Document) []string {
	lines := make([]string, 0, len(documents))
	for _, d := range documents {
		lines = append(lines, d.DocumentType+": "+d.FileURL)
	}
	return lines
}

func institutionLines(institutions []models.InstitutionalInfo) []string {
	lines := make([]string, 0, len(institutions))
	for _, i := range institutions {
		lines = append(lines, i.ProductionCompany+" / "+i.FundingCompany)
	}
	return lines
}

func screeningLines(screenings []models.Screening) []string {
	lines := make([]string, 0, len(screenings))
	for _, s := range screenings {
		// Missing optional fields surface literally, they are not
		// substituted away. Dates render exactly as stored.
		format := "undefined"
		if s.Format != nil {
			format = *s.Format
		}
		lines = append(lines, fmt.Sprintf("%s - %s (%s)", s.ScreeningDate, s.Organizers, format))
	}
	return lines
}

func yearString(year *int64) string {
	if year == nil {
		return ""
	}
	return strconv.FormatInt(*year, 10)
}
