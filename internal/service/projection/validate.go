package projection

import "github.com/eac-lab/film-archive/internal/models"

// Validate runs the declarative required-field checks performed before
// submission. A non-empty result blocks the submit; it never panics and
// never rejects optional comment or description fields.
func Validate(form models.FilmForm) map[string]string {
	problems := make(map[string]string)

	if form.Title == "" {
		problems["title"] = "title is required"
	}
	if form.ReleaseYear == nil {
		problems["release_year"] = "release year is required"
	} else if *form.ReleaseYear < 1888 || *form.ReleaseYear > 2100 {
		problems["release_year"] = "release year out of range"
	}

	return problems
}
