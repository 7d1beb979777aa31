package router

import (
	"log/slog"
	"time"

	"github.com/eac-lab/film-archive/internal/storage/sqlite"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	assetSrv "github.com/eac-lab/film-archive/internal/service/asset"
	authSrv "github.com/eac-lab/film-archive/internal/service/auth"
	catalogSrv "github.com/eac-lab/film-archive/internal/service/catalog"
	exportSrv "github.com/eac-lab/film-archive/internal/service/export"
	jwtSrv "github.com/eac-lab/film-archive/internal/service/jwt"
	rootSrv "github.com/eac-lab/film-archive/internal/service/root"

	authCtr "github.com/eac-lab/film-archive/internal/controller/auth"
	filmCtr "github.com/eac-lab/film-archive/internal/controller/film"
	jwtCtr "github.com/eac-lab/film-archive/internal/controller/jwt"
	rootCtr "github.com/eac-lab/film-archive/internal/controller/root"
)

type App struct {
	log     *slog.Logger
	address string
	app     *fiber.App
}

// New returns configured router.App
func New(
	log *slog.Logger,
	storage *sqlite.Storage,
	address string,
	timeout time.Duration,
	tokenTTL time.Duration,
	secret []byte,
	rootPass []byte,
	tmpDir string,
	assetDir string,
	maxGalleryImages int,
) *App {
	// Create sevices
	jwt := jwtSrv.New(secret)

	rootPassHash, err := bcrypt.GenerateFromPassword(rootPass, bcrypt.DefaultCost)
	if err != nil {
		panic("invalid root password")
	}
	auth := authSrv.New(
		log,
		storage,
		jwt,
		rootPassHash,
		tokenTTL,
	)

	root := rootSrv.New(
		log,
		storage,
	)

	catalog := catalogSrv.New(
		log,
		storage,
	)

	export := exportSrv.New(
		log,
		catalog,
	)

	asset := assetSrv.New(
		log,
		assetDir,
		storage,
		maxGalleryImages,
	)

	// Create controller helper
	jwtCtr := jwtCtr.New(secret)

	app := fiber.New()

	// Mount controllers to an app
	app.Mount("/login", authCtr.New(timeout, auth))
	app.Mount("/users", rootCtr.New(root, jwtCtr))
	app.Mount("/films", filmCtr.New(catalog, export, asset, jwtCtr, tmpDir))

	return &App{
		log:     log,
		address: address,
		app:     app,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	return a.app.Listen(a.address)
}

func (a *App) Stop() {
	a.app.Shutdown()
}
