package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ptr "github.com/eac-lab/film-archive/internal/lib/utils/pointers"
	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/storage"
)

// SaveFilm stores a relational film record in one transaction and
// returns the new film id.
func (s *Storage) SaveFilm(ctx context.Context, rec models.FilmRecord) (int64, error) {
	const op = "storage.sqlite.SaveFilm"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO films(title, release_year, runtime, synopsis, av_annotate_link) VALUES(?, ?, ?, ?, ?)",
		rec.Title, rec.ReleaseYear, rec.Runtime, rec.Synopsis, rec.AvAnnotateLink,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := insertSubRecords(ctx, tx, id, rec); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateFilm rewrites the film row and replaces every sub-list
// atomically.
func (s *Storage) UpdateFilm(ctx context.Context, rec models.FilmRecord) error {
	const op = "storage.sqlite.UpdateFilm"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE films SET title = ?, release_year = ?, runtime = ?, synopsis = ?, av_annotate_link = ? WHERE id = ?",
		rec.Title, rec.ReleaseYear, rec.Runtime, rec.Synopsis, rec.AvAnnotateLink, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrFilmNotFound)
	}

	for _, table := range []string{
		"film_production_details",
		"film_authors",
		"film_team",
		"film_actors",
		"film_equipment",
		"film_documents",
		"film_institutions",
		"film_screenings",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE film_id = ?", rec.ID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := insertSubRecords(ctx, tx, rec.ID, rec); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func insertSubRecords(ctx context.Context, tx *sql.Tx, filmID int64, rec models.FilmRecord) error {
	if rec.ProductionDetails != (models.ProductionDetails{}) {
		d := rec.ProductionDetails
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_production_details(
				film_id, production_timeframe, shooting_city, shooting_country,
				post_production_studio, production_comments
			) VALUES(?, ?, ?, ?, ?, ?)`,
			filmID, d.ProductionTimeframe, d.ShootingCity, d.ShootingCountry,
			d.PostProductionStudio, d.ProductionComments,
		); err != nil {
			return err
		}
	}

	for _, a := range rec.Authors {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO film_authors(film_id, role, name, comment) VALUES(?, ?, ?, ?)",
			filmID, a.Role, a.Name, a.Comment,
		); err != nil {
			return err
		}
	}

	for _, m := range rec.Team {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO film_team(film_id, department, name, role, comment) VALUES(?, ?, ?, ?, ?)",
			filmID, m.Department, m.Name, m.Role, m.Comment,
		); err != nil {
			return err
		}
	}

	for _, a := range rec.Actors {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO film_actors(film_id, actor_name, character_name, comment) VALUES(?, ?, ?, ?)",
			filmID, a.ActorName, a.CharacterName, a.Comment,
		); err != nil {
			return err
		}
	}

	for _, e := range rec.Equipment {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO film_equipment(film_id, equipment_name, description, comment) VALUES(?, ?, ?, ?)",
			filmID, e.EquipmentName, e.Description, e.Comment,
		); err != nil {
			return err
		}
	}

	for _, d := range rec.Documents {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO film_documents(film_id, document_type, file_url, comment) VALUES(?, ?, ?, ?)",
			filmID, d.DocumentType, d.FileURL, d.Comment,
		); err != nil {
			return err
		}
	}

	for _, i := range rec.Institutions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_institutions(
				film_id, production_company, funding_company, funding_comment,
				source, institutional_city, institutional_country
			) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			filmID, i.ProductionCompany, i.FundingCompany, i.FundingComment,
			i.Source, i.InstitutionalCity, i.InstitutionalCountry,
		); err != nil {
			return err
		}
	}

	for _, sc := range rec.Screenings {
		var format sql.NullString
		if sc.Format != nil {
			format = sql.NullString{String: *sc.Format, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_screenings(
				film_id, screening_date, screening_city, screening_country,
				organizers, format, audience, film_rights, comment, source
			) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filmID, sc.ScreeningDate, sc.ScreeningCity, sc.ScreeningCountry,
			sc.Organizers, format, sc.Audience, sc.FilmRights, sc.Comment, sc.Source,
		); err != nil {
			return err
		}
	}

	return nil
}

// Film returns the full relational record for one film.
func (s *Storage) Film(ctx context.Context, id int64) (models.FilmRecord, error) {
	const op = "storage.sqlite.Film"

	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, release_year, runtime, synopsis, av_annotate_link FROM films WHERE id = ?",
		id,
	)

	var film models.Film
	if err := row.Scan(&film.ID, &film.Title, &film.ReleaseYear, &film.Runtime, &film.Synopsis, &film.AvAnnotateLink); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FilmRecord{}, fmt.Errorf("%s: %w", op, storage.ErrFilmNotFound)
		}
		return models.FilmRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := s.loadSubRecords(ctx, film)
	if err != nil {
		return models.FilmRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

// AllFilms returns the browse list of every film.
func (s *Storage) AllFilms(ctx context.Context) ([]models.Film, error) {
	const op = "storage.sqlite.AllFilms"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, release_year, runtime, synopsis, av_annotate_link FROM films ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	films := make([]models.Film, 0)
	for rows.Next() {
		var film models.Film
		if err := rows.Scan(&film.ID, &film.Title, &film.ReleaseYear, &film.Runtime, &film.Synopsis, &film.AvAnnotateLink); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		films = append(films, film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return films, nil
}

// FullFilms returns every film with all joined sub-lists, the way the
// export path consumes them.
func (s *Storage) FullFilms(ctx context.Context) ([]models.FilmRecord, error) {
	const op = "storage.sqlite.FullFilms"

	films, err := s.AllFilms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := make([]models.FilmRecord, 0, len(films))
	for _, film := range films {
		rec, err := s.loadSubRecords(ctx, film)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// DeleteFilm removes a film; sub-rows cascade.
func (s *Storage) DeleteFilm(ctx context.Context, id int64) error {
	const op = "storage.sqlite.DeleteFilm"

	res, err := s.db.ExecContext(ctx, "DELETE FROM films WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrFilmNotFound)
	}

	return nil
}

// loadSubRecords reads every sub-list for a film in insertion order,
// which is what keeps the grouping and ordering guarantees downstream.
func (s *Storage) loadSubRecords(ctx context.Context, film models.Film) (models.FilmRecord, error) {
	rec := models.FilmRecord{Film: film}

	row := s.db.QueryRowContext(ctx,
		`SELECT production_timeframe, shooting_city, shooting_country,
			post_production_studio, production_comments
		FROM film_production_details WHERE film_id = ?`,
		film.ID,
	)
	d := &rec.ProductionDetails
	if err := row.Scan(&d.ProductionTimeframe, &d.ShootingCity, &d.ShootingCountry,
		&d.PostProductionStudio, &d.ProductionComments); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		"SELECT role, name, comment FROM film_authors WHERE film_id = ? ORDER BY id",
		func(rows *sql.Rows) error {
			var a models.Author
			if err := rows.Scan(&a.Role, &a.Name, &a.Comment); err != nil {
				return err
			}
			rec.Authors = append(rec.Authors, a)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		"SELECT department, name, role, comment FROM film_team WHERE film_id = ? ORDER BY id",
		func(rows *sql.Rows) error {
			var m models.TeamMember
			if err := rows.Scan(&m.Department, &m.Name, &m.Role, &m.Comment); err != nil {
				return err
			}
			rec.Team = append(rec.Team, m)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		"SELECT actor_name, character_name, comment FROM film_actors WHERE film_id = ? ORDER BY id",
		func(rows *sql.Rows) error {
			var a models.Actor
			if err := rows.Scan(&a.ActorName, &a.CharacterName, &a.Comment); err != nil {
				return err
			}
			rec.Actors = append(rec.Actors, a)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		"SELECT equipment_name, description, comment FROM film_equipment WHERE film_id = ? ORDER BY id",
		func(rows *sql.Rows) error {
			var e models.Equipment
			if err := rows.Scan(&e.EquipmentName, &e.Description, &e.Comment); err != nil {
				return err
			}
			rec.Equipment = append(rec.Equipment, e)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		"SELECT document_type, file_url, comment FROM film_documents WHERE film_id = ? ORDER BY id",
		func(rows *sql.Rows) error {
			var doc models.Document
			if err := rows.Scan(&doc.DocumentType, &doc.FileURL, &doc.Comment); err != nil {
				return err
			}
			rec.Documents = append(rec.Documents, doc)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		`SELECT production_company, funding_company, funding_comment,
			source, institutional_city, institutional_country
		FROM film_institutions WHERE film_id = ? ORDER BY id`,
		func(rows *sql.Rows) error {
			var i models.InstitutionalInfo
			if err := rows.Scan(&i.ProductionCompany, &i.FundingCompany, &i.FundingComment,
				&i.Source, &i.InstitutionalCity, &i.InstitutionalCountry); err != nil {
				return err
			}
			rec.Institutions = append(rec.Institutions, i)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		`SELECT screening_date, screening_city, screening_country, organizers,
			format, audience, film_rights, comment, source
		FROM film_screenings WHERE film_id = ? ORDER BY id`,
		func(rows *sql.Rows) error {
			var sc models.Screening
			var format sql.NullString
			if err := rows.Scan(&sc.ScreeningDate, &sc.ScreeningCity, &sc.ScreeningCountry,
				&sc.Organizers, &format, &sc.Audience, &sc.FilmRights, &sc.Comment, &sc.Source); err != nil {
				return err
			}
			if format.Valid {
				sc.Format = ptr.Pointer(format.String)
			}
			rec.Screenings = append(rec.Screenings, sc)
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	if err := s.queryList(ctx, film.ID,
		"SELECT id FROM gallery_images WHERE film_id = ? ORDER BY id",
		func(rows *sql.Rows) error {
			var imageID int64
			if err := rows.Scan(&imageID); err != nil {
				return err
			}
			rec.Gallery = append(rec.Gallery, models.Image{
				ImageID: imageID,
				URL:     models.GalleryImageURL(film.ID, imageID),
			})
			return nil
		},
	); err != nil {
		return models.FilmRecord{}, err
	}

	return rec, nil
}

func (s *Storage) queryList(ctx context.Context, filmID int64, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, filmID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}
