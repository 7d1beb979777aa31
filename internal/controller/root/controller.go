package root

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	jwtController "github.com/eac-lab/film-archive/internal/controller/jwt"
	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/service"
)

// New returns fiber app that will
// handle editor administration, available for root only
func New(rootSrv Root, jwtC *jwtController.JWT) *fiber.App {
	rootCtr := rootController{
		srv: rootSrv,
	}

	app := fiber.New()

	// token validity -> root access -> handling request
	app.Use(jwtC.AuthRequired(), rootCtr.rootAccess)

	app.Get("/", rootCtr.allEditors)
	app.Post("/", rootCtr.newEditor)
	app.Get("/:id", rootCtr.editor)
	app.Put("/:id", rootCtr.updateEditor)
	app.Delete("/:id", rootCtr.deleteEditor)

	return app
}

type rootController struct {
	srv Root
}

type Root interface {
	RegisterNewEditor(ctx context.Context, form models.EditorIn) (int64, error)
	AllEditors(ctx context.Context) ([]models.EditorOut, error)
	Editor(ctx context.Context, id int64) (models.EditorOut, error)
	UpdateEditor(ctx context.Context, id int64, form models.EditorIn) error
	DeleteEditor(ctx context.Context, id int64) error
}

// rootAccess check if the logged user is root,
// but doesn't check validity, because only jwtWare
// has access to the secret
func (rootCtr *rootController) rootAccess(c *fiber.Ctx) error {
	auth := c.Get(fiber.HeaderAuthorization)

	jwtSplitted := strings.Split(auth, " ")
	if len(jwtSplitted) != 2 || jwtSplitted[0] != "Bearer" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JWT",
		})
	}

	token := jwtSplitted[1]
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JWT",
		})
	}

	if claims["login"] != models.RootLogin {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "available for root only",
		})
	}

	return c.Next()
}

// allEditors return json with all editors
func (rootCtr *rootController) allEditors(c *fiber.Ctx) error {
	editors, err := rootCtr.srv.AllEditors(context.TODO())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": editors,
	})
}

// editor return json with editor by id
func (rootCtr *rootController) editor(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	editor, err := rootCtr.srv.Editor(context.TODO(), id)
	if err != nil {
		if errors.Is(err, service.ErrEditorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": editor,
	})
}

// newEditor creates new editor
func (rootCtr *rootController) newEditor(c *fiber.Ctx) error {
	form := new(models.EditorIn)

	if err := c.BodyParser(form); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if form.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username required",
		})
	}
	if form.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password required",
		})
	}
	if form.Role != "" && form.Role != models.RoleReader && form.Role != models.RoleEditor {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid role",
		})
	}

	id, err := rootCtr.srv.RegisterNewEditor(context.TODO(), *form)
	if err != nil {
		if errors.Is(err, service.ErrEditorExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user exists",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": id,
	})
}

// updateEditor rewrites editor credentials
func (rootCtr *rootController) updateEditor(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	form := new(models.EditorIn)

	if err := c.BodyParser(form); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if form.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username required",
		})
	}
	if form.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password required",
		})
	}

	if err := rootCtr.srv.UpdateEditor(context.TODO(), id, *form); err != nil {
		if errors.Is(err, service.ErrEditorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		if errors.Is(err, service.ErrEditorExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user exists",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// deleteEditor deletes editor
func (rootCtr *rootController) deleteEditor(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad id",
		})
	}

	err = rootCtr.srv.DeleteEditor(context.TODO(), id)
	if err != nil {
		if errors.Is(err, service.ErrEditorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}
