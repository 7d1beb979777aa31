package controller

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/service"
)

var (
	imageMimeTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

	documentMimeTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
)

// uploadPoster stores a poster image, replacing the previous one
func (filmCtr *filmController) uploadPoster(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	file, err := c.FormFile("poster")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file",
		})
	}

	if !isMimeOneOf(file, imageMimeTypes) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported mime-type",
		})
	}

	tmpFileName, err := filmCtr.saveTmp(c, file)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	defer os.Remove(tmpFileName)

	if err := filmCtr.srvAsset.UploadPoster(context.TODO(), id, tmpFileName); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": models.PosterURL(id),
	})
}

// poster returns the poster file
func (filmCtr *filmController) poster(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	file, err := filmCtr.srvAsset.Poster(context.TODO(), id)
	if err != nil {
		if errors.Is(err, service.ErrPosterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "poster not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).SendFile(file.Path)
}

// deletePoster removes the poster
func (filmCtr *filmController) deletePoster(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	if err := filmCtr.srvAsset.DeletePoster(context.TODO(), id); err != nil {
		if errors.Is(err, service.ErrPosterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "poster not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// uploadGalleryImage appends an image to the gallery
func (filmCtr *filmController) uploadGalleryImage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file",
		})
	}

	if !isMimeOneOf(file, imageMimeTypes) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported mime-type",
		})
	}

	tmpFileName, err := filmCtr.saveTmp(c, file)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	defer os.Remove(tmpFileName)

	image, err := filmCtr.srvAsset.UploadGalleryImage(context.TODO(), id, tmpFileName)
	if err != nil {
		if errors.Is(err, service.ErrGalleryFull) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "gallery is full",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(image)
}

// gallery returns the gallery listing
func (filmCtr *filmController) gallery(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	images, err := filmCtr.srvAsset.Gallery(context.TODO(), id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"gallery": images,
	})
}

// galleryImage returns one gallery file
func (filmCtr *filmController) galleryImage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	imageID, err := strconv.ParseInt(c.Params("imageId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad image id",
		})
	}

	file, err := filmCtr.srvAsset.GalleryImage(context.TODO(), id, imageID)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "image not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).SendFile(file.Path)
}

// deleteGalleryImage removes one gallery image
func (filmCtr *filmController) deleteGalleryImage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	imageID, err := strconv.ParseInt(c.Params("imageId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad image id",
		})
	}

	if err := filmCtr.srvAsset.DeleteGalleryImage(context.TODO(), id, imageID); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "image not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// uploadDocument stores a scanned document
func (filmCtr *filmController) uploadDocument(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file",
		})
	}

	if !isMimeOneOf(file, documentMimeTypes) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported mime-type",
		})
	}

	tmpFileName, err := filmCtr.saveTmp(c, file)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	defer os.Remove(tmpFileName)

	doc, err := filmCtr.srvAsset.UploadDocument(context.TODO(), id, tmpFileName, file.Filename)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

// documents returns the stored-document listing
func (filmCtr *filmController) documents(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	docs, err := filmCtr.srvAsset.Documents(context.TODO(), id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"documents": docs,
	})
}

// document returns one stored document file
func (filmCtr *filmController) document(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	docID, err := strconv.ParseInt(c.Params("docId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad document id",
		})
	}

	file, err := filmCtr.srvAsset.Document(context.TODO(), id, docID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "document not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)

	return c.Status(fiber.StatusOK).SendFile(file.Path)
}

// deleteDocument removes one stored document
func (filmCtr *filmController) deleteDocument(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	docID, err := strconv.ParseInt(c.Params("docId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad document id",
		})
	}

	if err := filmCtr.srvAsset.DeleteDocument(context.TODO(), id, docID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "document not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// saveTmp writes the multipart file to the controller tmp dir,
// keeping the upload's extension.
func (filmCtr *filmController) saveTmp(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	tmpFile, err := os.CreateTemp(filmCtr.tmpDir, "*"+filepath.Ext(file.Filename))
	if err != nil {
		return "", err
	}
	tmpFileName := tmpFile.Name()
	tmpFile.Close()

	if err := c.SaveFile(file, tmpFileName); err != nil {
		os.Remove(tmpFileName)
		return "", err
	}

	return tmpFileName, nil
}

// isMimeOneOf checks the declared content type, falling back to
// sniffing the file when the client sent application/octet-stream.
func isMimeOneOf(file *multipart.FileHeader, allowed []string) bool {
	fileType := file.Header.Get("Content-Type")

	if fileType != "" && fileType != "application/octet-stream" {
		for _, mime := range allowed {
			if fileType == mime {
				return true
			}
		}
		return false
	}

	reader, err := file.Open()
	if err != nil {
		return false
	}
	defer reader.Close()

	mimeType, err := mimetype.DetectReader(reader)
	if err != nil {
		return false
	}
	for _, mime := range allowed {
		if mimeType.Is(mime) {
			return true
		}
	}

	return false
}
