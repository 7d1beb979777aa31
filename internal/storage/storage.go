package storage

import "errors"

var (
	ErrEditorExists     = errors.New("editor exists")
	ErrEditorNotFound   = errors.New("editor not found")
	ErrFilmNotFound     = errors.New("film not found")
	ErrPosterNotFound   = errors.New("poster not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrDocumentNotFound = errors.New("document not found")
)
