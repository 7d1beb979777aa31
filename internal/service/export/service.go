package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eac-lab/film-archive/internal/lib/csvutil"
	"github.com/eac-lab/film-archive/internal/lib/logger/sl"
	"github.com/eac-lab/film-archive/internal/models"
)

// FileName is the fixed download name of the bulk export.
const FileName = "films_full_export.csv"

type Export struct {
	log   *slog.Logger
	films FilmProvider
}

type FilmProvider interface {
	FullFilms(ctx context.Context) ([]models.FilmRecord, error)
}

func New(
	log *slog.Logger,
	films FilmProvider,
) *Export {
	return &Export{
		log:   log,
		films: films,
	}
}

// CSV fetches every enriched film record, flattens them and serializes
// the result. Everything happens in memory; at catalogue scale
// (hundreds of films) there is nothing to stream.
func (e *Export) CSV(ctx context.Context) (string, error) {
	const op = "Export.CSV"

	log := e.log.With(
		slog.String("op", op),
	)

	log.Info("building full export")

	records, err := e.films.FullFilms(ctx)
	if err != nil {
		log.Error("failed to fetch full records", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]models.ExportRecord, 0, len(records))
	for _, rec := range records {
		rows = append(rows, BuildRecord(rec))
	}

	log.Info("export built", slog.Int("films", len(rows)))

	return csvutil.Serialize(rows, nil), nil
}
