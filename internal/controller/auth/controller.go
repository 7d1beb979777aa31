package auth

import (
	"context"
	"errors"
	"time"

	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/service"
	"github.com/gofiber/fiber/v2"
)

// New returns an fiber.App that will
// authorize editors (including root)
// and return JWT
func New(
	timeout time.Duration,
	a Auth,
) *fiber.App {
	authCtr := authController{
		timeout: timeout,
		srv:     a,
	}

	app := fiber.New()

	app.Post("/", authCtr.login)

	return app
}

type authController struct {
	timeout time.Duration
	srv     Auth
}

type Auth interface {
	Login(ctx context.Context, username string, password string) (string, error)
}

// login
func (authCtr *authController) login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), authCtr.timeout)
	defer cancel()

	form := new(models.Credentials)

	if err := c.BodyParser(form); err != nil {
		return fiber.ErrBadRequest
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

	token, err := authCtr.srv.Login(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": token,
	})
}
