package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/storage"
)

// SavePoster stores the poster path for a film, replacing any previous
// one.
func (s *Storage) SavePoster(ctx context.Context, filmID int64, path string) error {
	const op = "storage.sqlite.SavePoster"

	stmt, err := s.db.Prepare(
		"INSERT INTO posters(film_id, path) VALUES(?, ?) ON CONFLICT(film_id) DO UPDATE SET path = excluded.path",
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, filmID, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Poster returns the stored poster path for a film.
func (s *Storage) Poster(ctx context.Context, filmID int64) (models.AssetFile, error) {
	const op = "storage.sqlite.Poster"

	row := s.db.QueryRowContext(ctx, "SELECT path FROM posters WHERE film_id = ?", filmID)

	file := models.AssetFile{FilmID: filmID}
	if err := row.Scan(&file.Path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AssetFile{}, fmt.Errorf("%s: %w", op, storage.ErrPosterNotFound)
		}
		return models.AssetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

// DeletePoster removes the poster row for a film.
func (s *Storage) DeletePoster(ctx context.Context, filmID int64) error {
	const op = "storage.sqlite.DeletePoster"

	res, err := s.db.ExecContext(ctx, "DELETE FROM posters WHERE film_id = ?", filmID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPosterNotFound)
	}

	return nil
}

// SaveGalleryImage appends an image path to the film gallery.
func (s *Storage) SaveGalleryImage(ctx context.Context, filmID int64, path string) (int64, error) {
	const op = "storage.sqlite.SaveGalleryImage"

	stmt, err := s.db.Prepare("INSERT INTO gallery_images(film_id, path) VALUES(?, ?)")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, filmID, path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GalleryImage returns one gallery image row.
func (s *Storage) GalleryImage(ctx context.Context, filmID, imageID int64) (models.AssetFile, error) {
	const op = "storage.sqlite.GalleryImage"

	row := s.db.QueryRowContext(ctx,
		"SELECT id, film_id, path FROM gallery_images WHERE id = ? AND film_id = ?",
		imageID, filmID,
	)

	var file models.AssetFile
	if err := row.Scan(&file.ID, &file.FilmID, &file.Path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AssetFile{}, fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
		}
		return models.AssetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

// GalleryImages returns all gallery image rows for a film in upload
// order.
func (s *Storage) GalleryImages(ctx context.Context, filmID int64) ([]models.AssetFile, error) {
	const op = "storage.sqlite.GalleryImages"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, film_id, path FROM gallery_images WHERE film_id = ? ORDER BY id",
		filmID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	files := make([]models.AssetFile, 0)
	for rows.Next() {
		var file models.AssetFile
		if err := rows.Scan(&file.ID, &file.FilmID, &file.Path); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return files, nil
}

// DeleteGalleryImage removes one gallery image row.
func (s *Storage) DeleteGalleryImage(ctx context.Context, filmID, imageID int64) error {
	const op = "storage.sqlite.DeleteGalleryImage"

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM gallery_images WHERE id = ? AND film_id = ?",
		imageID, filmID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
	}

	return nil
}

// SaveDocumentFile stores a scanned document path for a film.
func (s *Storage) SaveDocumentFile(ctx context.Context, filmID int64, filename, path string) (int64, error) {
	const op = "storage.sqlite.SaveDocumentFile"

	stmt, err := s.db.Prepare("INSERT INTO document_files(film_id, filename, path) VALUES(?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, filmID, filename, path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// DocumentFile returns one stored document row.
func (s *Storage) DocumentFile(ctx context.Context, filmID, documentID int64) (models.AssetFile, error) {
	const op = "storage.sqlite.DocumentFile"

	row := s.db.QueryRowContext(ctx,
		"SELECT id, film_id, filename, path FROM document_files WHERE id = ? AND film_id = ?",
		documentID, filmID,
	)

	var file models.AssetFile
	if err := row.Scan(&file.ID, &file.FilmID, &file.Filename, &file.Path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AssetFile{}, fmt.Errorf("%s: %w", op, storage.ErrDocumentNotFound)
		}
		return models.AssetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

// DocumentFiles returns all stored document rows for a film.
func (s *Storage) DocumentFiles(ctx context.Context, filmID int64) ([]models.AssetFile, error) {
	const op = "storage.sqlite.DocumentFiles"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, film_id, filename, path FROM document_files WHERE film_id = ? ORDER BY id",
		filmID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	files := make([]models.AssetFile, 0)
	for rows.Next() {
		var file models.AssetFile
		if err := rows.Scan(&file.ID, &file.FilmID, &file.Filename, &file.Path); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return files, nil
}

// DeleteDocumentFile removes one stored document row.
func (s *Storage) DeleteDocumentFile(ctx context.Context, filmID, documentID int64) error {
	const op = "storage.sqlite.DeleteDocumentFile"

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM document_files WHERE id = ? AND film_id = ?",
		documentID, filmID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrDocumentNotFound)
	}

	return nil
}
