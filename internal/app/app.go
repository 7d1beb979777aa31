package app

import (
	"log/slog"
	"os"
	"time"

	routerApp "github.com/eac-lab/film-archive/internal/app/router"
	"github.com/eac-lab/film-archive/internal/lib/logger/sl"
	"github.com/eac-lab/film-archive/internal/storage/sqlite"
)

type App struct {
	Router routerApp.App
}

func New(
	log *slog.Logger,
	address string,
	storagePath string,
	timeout time.Duration,
	tokenTTL time.Duration,
	secret []byte,
	rootPass []byte,
	tmpDir string,
	assetDir string,
	maxGalleryImages int,
) *App {
	storage, err := sqlite.New(storagePath)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	routerApp := routerApp.New(
		log,
		storage,
		address,
		timeout,
		tokenTTL,
		secret,
		rootPass,
		tmpDir,
		assetDir,
		maxGalleryImages,
	)

	return &App{
		Router: *routerApp,
	}
}
