package controller

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	jwtController "github.com/eac-lab/film-archive/internal/controller/jwt"
	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/service"
	"github.com/eac-lab/film-archive/internal/service/projection"
)

func New(
	srvCatalog Catalog,
	srvExport Export,
	srvAsset Asset,
	jwtC *jwtController.JWT,
	tmpDir string,
) *fiber.App {
	filmCtr := filmController{
		srvCatalog: srvCatalog,
		srvExport:  srvExport,
		srvAsset:   srvAsset,
		tmpDir:     tmpDir,
	}

	app := fiber.New(fiber.Config{
		EnableSplittingOnParsers: true,
	})

	// Browsing is open; edit-mode views and everything that writes need
	// a token. Static segments register before "/:id" so they never
	// shadow-match.
	app.Get("/full", jwtC.AuthRequired(), filmCtr.fullFilms)
	app.Get("/export", jwtC.AuthRequired(), filmCtr.exportCSV)
	app.Get("/", filmCtr.searchFilms)
	app.Post("/", jwtC.AuthRequired(), filmCtr.newFilm)
	app.Get("/:id/form", jwtC.AuthRequired(), filmCtr.filmForm)

	// Assets
	app.Post("/:id/poster", jwtC.AuthRequired(), filmCtr.uploadPoster)
	app.Get("/:id/poster", filmCtr.poster)
	app.Delete("/:id/poster", jwtC.AuthRequired(), filmCtr.deletePoster)
	app.Post("/:id/gallery", jwtC.AuthRequired(), filmCtr.uploadGalleryImage)
	app.Get("/:id/gallery", filmCtr.gallery)
	app.Get("/:id/gallery/:imageId", filmCtr.galleryImage)
	app.Delete("/:id/gallery/:imageId", jwtC.AuthRequired(), filmCtr.deleteGalleryImage)
	app.Post("/:id/documents", jwtC.AuthRequired(), filmCtr.uploadDocument)
	app.Get("/:id/documents", filmCtr.documents)
	app.Get("/:id/documents/:docId", filmCtr.document)
	app.Delete("/:id/documents/:docId", jwtC.AuthRequired(), filmCtr.deleteDocument)

	app.Get("/:id", filmCtr.film)
	app.Put("/:id", jwtC.AuthRequired(), filmCtr.updateFilm)
	app.Delete("/:id", jwtC.AuthRequired(), filmCtr.deleteFilm)

	return app
}

type filmController struct {
	srvCatalog Catalog
	srvExport  Export
	srvAsset   Asset
	tmpDir     string
}

type Catalog interface {
	AllFilms(ctx context.Context, filter models.FilmFilter) ([]models.FilmListItem, error)
	Film(ctx context.Context, id int64) (models.FilmRecord, error)
	FullFilms(ctx context.Context) ([]models.FilmRecord, error)
	Form(ctx context.Context, id int64) (models.FilmForm, error)
	NewFilm(ctx context.Context, payload models.FilmPayload) (int64, error)
	UpdateFilm(ctx context.Context, id int64, payload models.FilmPayload) error
	DeleteFilm(ctx context.Context, id int64) error
}

type Export interface {
	CSV(ctx context.Context) (string, error)
}

type Asset interface {
	UploadPoster(ctx context.Context, filmID int64, srcPath string) error
	Poster(ctx context.Context, filmID int64) (models.AssetFile, error)
	DeletePoster(ctx context.Context, filmID int64) error

	UploadGalleryImage(ctx context.Context, filmID int64, srcPath string) (models.Image, error)
	GalleryImage(ctx context.Context, filmID, imageID int64) (models.AssetFile, error)
	Gallery(ctx context.Context, filmID int64) ([]models.Image, error)
	DeleteGalleryImage(ctx context.Context, filmID, imageID int64) error

	UploadDocument(ctx context.Context, filmID int64, srcPath, filename string) (models.DocumentFile, error)
	Document(ctx context.Context, filmID, documentID int64) (models.AssetFile, error)
	Documents(ctx context.Context, filmID int64) ([]models.DocumentFile, error)
	DeleteDocument(ctx context.Context, filmID, documentID int64) error
}

// searchFilms returns the browse list, fuzzy-ordered
// by query criteria.
func (filmCtr *filmController) searchFilms(c *fiber.Ctx) error {
	filter := models.FilmFilter{
		Title:      c.Query("title"),
		MaxRespLen: c.QueryInt("res_len"),
	}

	films, err := filmCtr.srvCatalog.AllFilms(context.TODO(), filter)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"films": films,
	})
}

// fullFilms returns every film with all sub-lists joined in.
func (filmCtr *filmController) fullFilms(c *fiber.Ctx) error {
	records, err := filmCtr.srvCatalog.FullFilms(context.TODO())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	full := make([]models.FullFilm, 0, len(records))
	for _, rec := range records {
		full = append(full, rec.Full())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"films": full,
	})
}

// film return json with film details by id
func (filmCtr *filmController) film(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	rec, err := filmCtr.srvCatalog.Film(context.TODO(), id)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "film not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(rec.Details())
}

// filmForm returns the flat editing projection of a film
func (filmCtr *filmController) filmForm(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	form, err := filmCtr.srvCatalog.Form(context.TODO(), id)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "film not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(form)
}

// newFilm creates a film from the flat payload
func (filmCtr *filmController) newFilm(c *fiber.Ctx) error {
	payload := new(models.FilmPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if problems := validatePayload(*payload); len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": problems,
		})
	}

	id, err := filmCtr.srvCatalog.NewFilm(context.TODO(), *payload)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"film_id": id,
	})
}

// updateFilm replaces a film with the flat payload expansion
func (filmCtr *filmController) updateFilm(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	payload := new(models.FilmPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if problems := validatePayload(*payload); len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": problems,
		})
	}

	if err := filmCtr.srvCatalog.UpdateFilm(context.TODO(), id, *payload); err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "film not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// deleteFilm deletes film with all sub-records
func (filmCtr *filmController) deleteFilm(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	if err := filmCtr.srvCatalog.DeleteFilm(context.TODO(), id); err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "film not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

func validatePayload(payload models.FilmPayload) map[string]string {
	return projection.Validate(models.FilmForm{
		Title:       payload.Title,
		ReleaseYear: payload.ReleaseYear,
	})
}
