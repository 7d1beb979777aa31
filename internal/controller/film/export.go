package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/eac-lab/film-archive/internal/service/export"
)

// exportCSV builds the full flat export and sends it as a file download
func (filmCtr *filmController) exportCSV(c *fiber.Ctx) error {
	csv, err := filmCtr.srvExport.CSV(context.TODO())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.FileName+`"`)

	return c.Status(fiber.StatusOK).SendString(csv)
}
