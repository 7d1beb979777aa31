package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eac-lab/film-archive/internal/lib/logger/sl"
	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/service"
	"github.com/eac-lab/film-archive/internal/service/projection"
	"github.com/eac-lab/film-archive/internal/storage"
)

// Catalog manages film records and their list/detail/full views.
type Catalog struct {
	log         *slog.Logger
	filmStorage FilmStorage
}

type FilmStorage interface {
	AllFilms(ctx context.Context) ([]models.Film, error)
	FullFilms(ctx context.Context) ([]models.FilmRecord, error)
	Film(ctx context.Context, id int64) (models.FilmRecord, error)
	SaveFilm(ctx context.Context, rec models.FilmRecord) (int64, error)
	UpdateFilm(ctx context.Context, rec models.FilmRecord) error
	DeleteFilm(ctx context.Context, id int64) error
}

func New(
	log *slog.Logger,
	filmStorage FilmStorage,
) *Catalog {
	return &Catalog{
		log:         log,
		filmStorage: filmStorage,
	}
}

// AllFilms returns the browse list, fuzzy-filtered by title when the
// filter asks for it.
func (c *Catalog) AllFilms(ctx context.Context, filter models.FilmFilter) ([]models.FilmListItem, error) {
	const op = "Catalog.AllFilms"

	log := c.log.With(
		slog.String("op", op),
	)

	log.Info("getting film list")

	films, err := c.filmStorage.AllFilms(ctx)
	if err != nil {
		log.Error("failed to get films", sl.Err(err))
		return []models.FilmListItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if filter.Title != "" {
		films = filterRank(films, filter)
	}
	if filter.MaxRespLen > 0 && len(films) > filter.MaxRespLen {
		films = films[:filter.MaxRespLen]
	}

	list := make([]models.FilmListItem, 0, len(films))
	for _, film := range films {
		list = append(list, models.FilmListItem{
			FilmID: film.ID,
			Title:  film.Title,
		})
	}

	log.Info("found films", slog.Int("count", len(list)))

	return list, nil
}

// Film returns the full relational record by id.
func (c *Catalog) Film(ctx context.Context, id int64) (models.FilmRecord, error) {
	const op = "Catalog.Film"

	log := c.log.With(
		slog.String("op", op),
	)

	log.Info("getting film", slog.Int64("id", id))

	rec, err := c.filmStorage.Film(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrFilmNotFound) {
			log.Warn("film not found", slog.Int64("id", id))
			return models.FilmRecord{}, service.ErrFilmNotFound
		}
		log.Error("failed to get film", slog.Int64("id", id), sl.Err(err))
		return models.FilmRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("found film", slog.Int64("id", id))

	return rec, nil
}

// FullFilms returns every record with all sub-lists joined in.
func (c *Catalog) FullFilms(ctx context.Context) ([]models.FilmRecord, error) {
	const op = "Catalog.FullFilms"

	log := c.log.With(
		slog.String("op", op),
	)

	log.Info("getting full films")

	records, err := c.filmStorage.FullFilms(ctx)
	if err != nil {
		log.Error("failed to get full films", sl.Err(err))
		return []models.FilmRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("found full films", slog.Int("count", len(records)))

	return records, nil
}

// Form returns the flat editing form for a film.
func (c *Catalog) Form(ctx context.Context, id int64) (models.FilmForm, error) {
	const op = "Catalog.Form"

	rec, err := c.Film(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return models.FilmForm{}, err
		}
		return models.FilmForm{}, fmt.Errorf("%s: %w", op, err)
	}

	return projection.ToForm(rec), nil
}

// NewFilm expands a flat payload into a record and stores it.
func (c *Catalog) NewFilm(ctx context.Context, payload models.FilmPayload) (int64, error) {
	const op = "Catalog.NewFilm"

	log := c.log.With(
		slog.String("op", op),
	)

	log.Info("creating film", slog.String("title", payload.Title))

	id, err := c.filmStorage.SaveFilm(ctx, projection.ToRecord(payload))
	if err != nil {
		log.Error("failed to save film", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("created film", slog.Int64("id", id))

	return id, nil
}

// UpdateFilm replaces a stored record with the expansion of a flat
// payload.
func (c *Catalog) UpdateFilm(ctx context.Context, id int64, payload models.FilmPayload) error {
	const op = "Catalog.UpdateFilm"

	log := c.log.With(
		slog.String("op", op),
	)

	log.Info("updating film", slog.Int64("id", id))

	rec := projection.ToRecord(payload)
	rec.ID = id

	if err := c.filmStorage.UpdateFilm(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrFilmNotFound) {
			log.Warn("film not found", slog.Int64("id", id))
			return service.ErrFilmNotFound
		}
		log.Error("failed to update film", slog.Int64("id", id), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("updated film", slog.Int64("id", id))

	return nil
}

// DeleteFilm removes a film and everything joined to it.
func (c *Catalog) DeleteFilm(ctx context.Context, id int64) error {
	const op = "Catalog.DeleteFilm"

	log := c.log.With(
		slog.String("op", op),
	)

	log.Info("deleting film", slog.Int64("id", id))

	if err := c.filmStorage.DeleteFilm(ctx, id); err != nil {
		if errors.Is(err, storage.ErrFilmNotFound) {
			log.Warn("film not found", slog.Int64("id", id))
			return service.ErrFilmNotFound
		}
		log.Error("failed to delete film", slog.Int64("id", id), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
