package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/eac-lab/film-archive/internal/lib/logger/sl"
	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/service"
	"github.com/eac-lab/film-archive/internal/storage"
)

// Asset stores film binaries (posters, gallery images, scanned
// documents) on disk and their metadata in the asset storage.
type Asset struct {
	log          *slog.Logger
	dir          string
	assetStorage AssetStorage
	maxGallery   int
}

type AssetStorage interface {
	SavePoster(ctx context.Context, filmID int64, path string) error
	Poster(ctx context.Context, filmID int64) (models.AssetFile, error)
	DeletePoster(ctx context.Context, filmID int64) error

	SaveGalleryImage(ctx context.Context, filmID int64, path string) (int64, error)
	GalleryImage(ctx context.Context, filmID, imageID int64) (models.AssetFile, error)
	GalleryImages(ctx context.Context, filmID int64) ([]models.AssetFile, error)
	DeleteGalleryImage(ctx context.Context, filmID, imageID int64) error

	SaveDocumentFile(ctx context.Context, filmID int64, filename, path string) (int64, error)
	DocumentFile(ctx context.Context, filmID, documentID int64) (models.AssetFile, error)
	DocumentFiles(ctx context.Context, filmID int64) ([]models.AssetFile, error)
	DeleteDocumentFile(ctx context.Context, filmID, documentID int64) error
}

func New(
	log *slog.Logger,
	dir string,
	assetStorage AssetStorage,
	maxGallery int,
) *Asset {
	return &Asset{
		log:          log,
		dir:          dir,
		assetStorage: assetStorage,
		maxGallery:   maxGallery,
	}
}

// UploadPoster stores a poster file, replacing the previous one.
func (a *Asset) UploadPoster(ctx context.Context, filmID int64, srcPath string) error {
	const op = "Asset.UploadPoster"

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("filmID", filmID),
	)

	log.Info("uploading poster")

	old, err := a.assetStorage.Poster(ctx, filmID)
	hadOld := err == nil
	if err != nil && !errors.Is(err, storage.ErrPosterNotFound) {
		log.Error("failed to get current poster", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	dst := a.newPath("poster", filepath.Ext(srcPath))
	if err := copyFile(srcPath, dst); err != nil {
		log.Error("failed to store poster file", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.assetStorage.SavePoster(ctx, filmID, dst); err != nil {
		log.Error("failed to save poster", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if hadOld {
		if err := os.Remove(old.Path); err != nil {
			log.Warn("failed to remove replaced poster file", sl.Err(err))
		}
	}

	log.Info("uploaded poster")

	return nil
}

// Poster returns the stored poster file.
func (a *Asset) Poster(ctx context.Context, filmID int64) (models.AssetFile, error) {
	const op = "Asset.Poster"

	file, err := a.assetStorage.Poster(ctx, filmID)
	if err != nil {
		if errors.Is(err, storage.ErrPosterNotFound) {
			return models.AssetFile{}, service.ErrPosterNotFound
		}
		a.log.Error("failed to get poster", slog.Int64("filmID", filmID), sl.Err(err))
		return models.AssetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

// DeletePoster removes the poster row and its file.
func (a *Asset) DeletePoster(ctx context.Context, filmID int64) error {
	const op = "Asset.DeletePoster"

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("filmID", filmID),
	)

	file, err := a.assetStorage.Poster(ctx, filmID)
	if err != nil {
		if errors.Is(err, storage.ErrPosterNotFound) {
			log.Warn("poster not found")
			return service.ErrPosterNotFound
		}
		log.Error("failed to get poster", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.assetStorage.DeletePoster(ctx, filmID); err != nil {
		log.Error("failed to delete poster", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(file.Path); err != nil {
		log.Warn("failed to remove poster file", sl.Err(err))
	}

	log.Info("deleted poster")

	return nil
}

// UploadGalleryImage appends an image to the film gallery.
//
// When the gallery already holds the configured maximum,
// returns service.ErrGalleryFull.
func (a *Asset) UploadGalleryImage(ctx context.Context, filmID int64, srcPath string) (models.Image, error) {
	const op = "Asset.UploadGalleryImage"

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("filmID", filmID),
	)

	log.Info("uploading gallery image")

	current, err := a.assetStorage.GalleryImages(ctx, filmID)
	if err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(current) >= a.maxGallery {
		log.Warn("gallery is full", slog.Int("count", len(current)))
		return models.Image{}, service.ErrGalleryFull
	}

	dst := a.newPath("gallery", filepath.Ext(srcPath))
	if err := copyFile(srcPath, dst); err != nil {
		log.Error("failed to store gallery file", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.assetStorage.SaveGalleryImage(ctx, filmID, dst)
	if err != nil {
		log.Error("failed to save gallery image", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("uploaded gallery image", slog.Int64("imageID", id))

	return models.Image{
		ImageID: id,
		URL:     models.GalleryImageURL(filmID, id),
	}, nil
}

// GalleryImage returns one stored gallery file.
func (a *Asset) GalleryImage(ctx context.Context, filmID, imageID int64) (models.AssetFile, error) {
	const op = "Asset.GalleryImage"

	file, err := a.assetStorage.GalleryImage(ctx, filmID, imageID)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) {
			return models.AssetFile{}, service.ErrImageNotFound
		}
		a.log.Error("failed to get gallery image", slog.Int64("imageID", imageID), sl.Err(err))
		return models.AssetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

// Gallery returns the gallery listing for a film.
func (a *Asset) Gallery(ctx context.Context, filmID int64) ([]models.Image, error) {
	const op = "Asset.Gallery"

	files, err := a.assetStorage.GalleryImages(ctx, filmID)
	if err != nil {
		a.log.Error("failed to get gallery", slog.Int64("filmID", filmID), sl.Err(err))
		return []models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		images = append(images, models.Image{
			ImageID: file.ID,
			URL:     models.GalleryImageURL(filmID, file.ID),
		})
	}

	return images, nil
}

// DeleteGalleryImage removes one gallery image and its file.
func (a *Asset) DeleteGalleryImage(ctx context.Context, filmID, imageID int64) error {
	const op = "Asset.DeleteGalleryImage"

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("filmID", filmID),
		slog.Int64("imageID", imageID),
	)

	file, err := a.assetStorage.GalleryImage(ctx, filmID, imageID)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) {
			log.Warn("image not found")
			return service.ErrImageNotFound
		}
		log.Error("failed to get gallery image", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.assetStorage.DeleteGalleryImage(ctx, filmID, imageID); err != nil {
		log.Error("failed to delete gallery image", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(file.Path); err != nil {
		log.Warn("failed to remove gallery file", sl.Err(err))
	}

	log.Info("deleted gallery image")

	return nil
}

// UploadDocument stores a scanned document for a film.
func (a *Asset) UploadDocument(ctx context.Context, filmID int64, srcPath, filename string) (models.DocumentFile, error) {
	const op = "Asset.UploadDocument"

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("filmID", filmID),
	)

	log.Info("uploading document", slog.String("filename", filename))

	dst := a.newPath("doc", filepath.Ext(filename))
	if err := copyFile(srcPath, dst); err != nil {
		log.Error("failed to store document file", sl.Err(err))
		return models.DocumentFile{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.assetStorage.SaveDocumentFile(ctx, filmID, filename, dst)
	if err != nil {
		log.Error("failed to save document", sl.Err(err))
		return models.DocumentFile{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("uploaded document", slog.Int64("documentID", id))

	return models.DocumentFile{
		DocumentID: id,
		Filename:   filename,
		URL:        models.DocumentFileURL(filmID, id),
	}, nil
}

// Document returns one stored document file.
func (a *Asset) Document(ctx context.Context, filmID, documentID int64) (models.AssetFile, error) {
	const op = "Asset.Document"

	file, err := a.assetStorage.DocumentFile(ctx, filmID, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return models.AssetFile{}, service.ErrDocumentNotFound
		}
		a.log.Error("failed to get document", slog.Int64("documentID", documentID), sl.Err(err))
		return models.AssetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

// Documents returns the stored-document listing for a film.
func (a *Asset) Documents(ctx context.Context, filmID int64) ([]models.DocumentFile, error) {
	const op = "Asset.Documents"

	files, err := a.assetStorage.DocumentFiles(ctx, filmID)
	if err != nil {
		a.log.Error("failed to get documents", slog.Int64("filmID", filmID), sl.Err(err))
		return []models.DocumentFile{}, fmt.Errorf("%s: %w", op, err)
	}

	docs := make([]models.DocumentFile, 0, len(files))
	for _, file := range files {
		docs = append(docs, models.DocumentFile{
			DocumentID: file.ID,
			Filename:   file.Filename,
			URL:        models.DocumentFileURL(filmID, file.ID),
		})
	}

	return docs, nil
}

// DeleteDocument removes one stored document and its file.
func (a *Asset) DeleteDocument(ctx context.Context, filmID, documentID int64) error {
	const op = "Asset.DeleteDocument"

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("filmID", filmID),
		slog.Int64("documentID", documentID),
	)

	file, err := a.assetStorage.DocumentFile(ctx, filmID, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			log.Warn("document not found")
			return service.ErrDocumentNotFound
		}
		log.Error("failed to get document", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.assetStorage.DeleteDocumentFile(ctx, filmID, documentID); err != nil {
		log.Error("failed to delete document", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(file.Path); err != nil {
		log.Warn("failed to remove document file", sl.Err(err))
	}

	log.Info("deleted document")

	return nil
}

func (a *Asset) newPath(kind, ext string) string {
	return a.dir + "/" + kind + "_" + strconv.Itoa(rand.Int()) + ext
}

func copyFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)

	return err
}
