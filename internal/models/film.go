package models

import "fmt"

// Film holds the scalar attributes of one catalog entry.
// ReleaseYear is a pointer since old archive records may have no year at all.
type Film struct {
	ID             int64  `json:"film_id"`
	Title          string `json:"title"`
	ReleaseYear    *int64 `json:"release_year"`
	Runtime        string `json:"runtime"`
	Synopsis       string `json:"synopsis"`
	AvAnnotateLink string `json:"av_annotate_link"`
}

// Author role values are conventionally one of the Role* constants
// from form.go, but nothing enforces that: role is an open string key.
type Author struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

type TeamMember struct {
	Department string `json:"department"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Comment    string `json:"comment"`
}

type Actor struct {
	ActorName     string `json:"actor_name"`
	CharacterName string `json:"character_name"`
	Comment       string `json:"comment"`
}

type Equipment struct {
	EquipmentName string `json:"equipment_name"`
	Description   string `json:"description"`
	Comment       string `json:"comment"`
}

type Document struct {
	DocumentType string `json:"document_type"`
	FileURL      string `json:"file_url"`
	Comment      string `json:"comment"`
}

type InstitutionalInfo struct {
	ProductionCompany    string `json:"production_company"`
	FundingCompany       string `json:"funding_company"`
	FundingComment       string `json:"funding_comment"`
	Source               string `json:"source"`
	InstitutionalCity    string `json:"institutional_city"`
	InstitutionalCountry string `json:"institutional_country"`
}

// Screening dates are kept as strings: legacy rows carry full RFC3339
// timestamps, form-entered rows carry plain YYYY-MM-DD dates.
// Format is a pointer so an absent value stays distinguishable from an
// empty one (exports render the two differently).
type Screening struct {
	ScreeningDate    string  `json:"screening_date"`
	ScreeningCity    string  `json:"screening_city"`
	ScreeningCountry string  `json:"screening_country"`
	Organizers       string  `json:"organizers"`
	Format           *string `json:"format"`
	Audience         string  `json:"audience"`
	FilmRights       string  `json:"film_rights"`
	Comment          string  `json:"comment"`
	Source           string  `json:"source"`
}

type ProductionDetails struct {
	ProductionTimeframe  string `json:"production_timeframe"`
	ShootingCity         string `json:"shooting_city"`
	ShootingCountry      string `json:"shooting_country"`
	PostProductionStudio string `json:"post_production_studio"`
	ProductionComments   string `json:"production_comments"`
}

type Image struct {
	ImageID int64  `json:"imageId"`
	URL     string `json:"url"`
}

// AssetFile is a stored binary attached to a film (poster, gallery
// image or scanned document).
type AssetFile struct {
	ID       int64
	FilmID   int64
	Filename string
	Path     string
}

// DocumentFile is the wire view of a stored scanned document.
type DocumentFile struct {
	DocumentID int64  `json:"documentId"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
}

// GalleryImageURL is the canonical download path for a gallery image.
func GalleryImageURL(filmID, imageID int64) string {
	return fmt.Sprintf("/films/%d/gallery/%d", filmID, imageID)
}

// PosterURL is the canonical download path for a film poster.
func PosterURL(filmID int64) string {
	return fmt.Sprintf("/films/%d/poster", filmID)
}

// DocumentFileURL is the canonical download path for a stored document.
func DocumentFileURL(filmID, documentID int64) string {
	return fmt.Sprintf("/films/%d/documents/%d", filmID, documentID)
}

// FilmRecord is the relational film record: one film plus all its joined
// one-to-many sub-lists, exactly as the store delivers it.
type FilmRecord struct {
	Film
	ProductionDetails ProductionDetails
	Authors           []Author
	Team              []TeamMember
	Actors            []Actor
	Equipment         []Equipment
	Documents         []Document
	Institutions      []InstitutionalInfo
	Screenings        []Screening
	Gallery           []Image
}

// FilmListItem is the browse-list view of a film.
type FilmListItem struct {
	FilmID int64  `json:"film_id"`
	Title  string `json:"title"`
}

// FilmFilter narrows the browse list.
type FilmFilter struct {
	Title      string
	MaxRespLen int
}

// FilmDetails is the wire shape of GET /films/:id. Institutional info
// collapses to the primary (zeroth) record, matching the legacy
// single-record detail view.
type FilmDetails struct {
	Film              Film              `json:"film"`
	ProductionDetails ProductionDetails `json:"productionDetails"`
	Authors           []Author          `json:"authors"`
	ProductionTeam    []TeamMember      `json:"productionTeam"`
	Actors            []Actor           `json:"actors"`
	Equipment         []Equipment       `json:"equipment"`
	Documents         []Document        `json:"documents"`
	InstitutionalInfo InstitutionalInfo `json:"institutionalInfo"`
	Screenings        []Screening       `json:"screenings"`
	Gallery           []Image           `json:"gallery"`
}

// FullFilm is the wire shape of one element of GET /films/full:
// film scalars at top level, sub-lists joined in.
type FullFilm struct {
	Film
	Authors      []Author            `json:"authors"`
	Team         []TeamMember        `json:"team"`
	Actors       []Actor             `json:"actors"`
	Equipment    []Equipment         `json:"equipment"`
	Documents    []Document          `json:"documents"`
	Institutions []InstitutionalInfo `json:"institutional_info"`
	Screenings   []Screening         `json:"screenings"`
}

// Details builds the detail view. List fields always marshal as arrays,
// never null.
func (r FilmRecord) Details() FilmDetails {
	var inst InstitutionalInfo
	if len(r.Institutions) > 0 {
		inst = r.Institutions[0]
	}

	return FilmDetails{
		Film:              r.Film,
		ProductionDetails: r.ProductionDetails,
		Authors:           orEmpty(r.Authors),
		ProductionTeam:    orEmpty(r.Team),
		Actors:            orEmpty(r.Actors),
		Equipment:         orEmpty(r.Equipment),
		Documents:         orEmpty(r.Documents),
		InstitutionalInfo: inst,
		Screenings:        orEmpty(r.Screenings),
		Gallery:           orEmpty(r.Gallery),
	}
}

// Full builds the flattened export-fetch view.
func (r FilmRecord) Full() FullFilm {
	return FullFilm{
		Film:         r.Film,
		Authors:      orEmpty(r.Authors),
		Team:         orEmpty(r.Team),
		Actors:       orEmpty(r.Actors),
		Equipment:    orEmpty(r.Equipment),
		Documents:    orEmpty(r.Documents),
		Institutions: orEmpty(r.Institutions),
		Screenings:   orEmpty(r.Screenings),
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
