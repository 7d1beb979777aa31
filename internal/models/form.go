package models

import "errors"

// Author roles with a dedicated slot in the edit form.
const (
	RoleScreenwriter      = "Screenwriter"
	RoleFilmmaker         = "Filmmaker"
	RoleExecutiveProducer = "Executive Producer"
)

// MaxGalleryFiles caps pending gallery uploads per edit session.
const MaxGalleryFiles = 10

var ErrGalleryFull = errors.New("gallery file limit reached")

// PendingFile is a staged upload: raw bytes plus the original filename.
// Pending files live only inside an edit session and are never part of
// the persistence payload.
type PendingFile struct {
	Name string `json:"name"`
	Data []byte `json:"data,omitempty"`
}

// AuthorSlots flattens the author list into one field per known role.
type AuthorSlots struct {
	Screenwriter             string `json:"screenwriter"`
	ScreenwriterComment      string `json:"screenwriter_comment"`
	Filmmaker                string `json:"filmmaker"`
	FilmmakerComment         string `json:"filmmaker_comment"`
	ExecutiveProducer        string `json:"executive_producer"`
	ExecutiveProducerComment string `json:"executive_producer_comment"`
}

// FilmForm is the flat, editable projection of a FilmRecord.
// Actors collapse to a comma-joined name string; equipment, documents and
// institutional info collapse to their primary record. The three file
// fields stage uploads and are stripped before persistence.
type FilmForm struct {
	Title          string `json:"title"`
	ReleaseYear    *int64 `json:"release_year"`
	Runtime        string `json:"runtime"`
	Synopsis       string `json:"synopsis"`
	AvAnnotateLink string `json:"av_annotate_link"`

	ProductionDetails ProductionDetails `json:"productionDetails"`
	Authors           AuthorSlots       `json:"authors"`
	ProductionTeam    []TeamMember      `json:"productionTeam"`
	Actors            string            `json:"actors"`
	Equipment         Equipment         `json:"equipment"`
	Documents         Document          `json:"documents"`
	InstitutionalInfo InstitutionalInfo `json:"institutionalInfo"`
	Screenings        []Screening       `json:"screenings"`

	PosterFile   *PendingFile  `json:"posterFile"`
	ImageFiles   []PendingFile `json:"imageFiles"`
	FilmDocument *PendingFile  `json:"filmDocument"`
}

// FilmPayload is the persistence body for create/update: the form
// projection with the three transient file fields stripped off.
type FilmPayload struct {
	Title          string `json:"title"`
	ReleaseYear    *int64 `json:"release_year"`
	Runtime        string `json:"runtime"`
	Synopsis       string `json:"synopsis"`
	AvAnnotateLink string `json:"av_annotate_link"`

	ProductionDetails ProductionDetails `json:"productionDetails"`
	Authors           AuthorSlots       `json:"authors"`
	ProductionTeam    []TeamMember      `json:"productionTeam"`
	Actors            string            `json:"actors"`
	Equipment         Equipment         `json:"equipment"`
	Documents         Document          `json:"documents"`
	InstitutionalInfo InstitutionalInfo `json:"institutionalInfo"`
	Screenings        []Screening       `json:"screenings"`
}

// StagePoster stages a poster upload. Staging a second poster replaces
// the pending one, it does not queue both.
func (f *FilmForm) StagePoster(file PendingFile) {
	f.PosterFile = &file
}

// StageImage queues one gallery upload. The cap is enforced here,
// before any upload call is made.
func (f *FilmForm) StageImage(file PendingFile) error {
	if len(f.ImageFiles) >= MaxGalleryFiles {
		return ErrGalleryFull
	}
	f.ImageFiles = append(f.ImageFiles, file)
	return nil
}

// StageDocument stages the film document, replacing any pending one.
func (f *FilmForm) StageDocument(file PendingFile) {
	f.FilmDocument = &file
}
