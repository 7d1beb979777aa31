package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEditorNotFound     = errors.New("editor not found")
	ErrEditorExists       = errors.New("editor exists")

	ErrInvalidToken = errors.New("invalid token")
	ErrTimeoutToken = errors.New("timeout token")

	ErrFilmNotFound     = errors.New("film not found")
	ErrPosterNotFound   = errors.New("poster not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrDocumentNotFound = errors.New("document not found")

	ErrGalleryFull     = errors.New("gallery is full")
	ErrUnsupportedFile = errors.New("unsupported file type")
)
