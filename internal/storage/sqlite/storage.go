package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"

	"github.com/eac-lab/film-archive/internal/models"
	"github.com/eac-lab/film-archive/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	db *sql.DB
}

// New opens the sqlite database and brings the schema up to date.
func New(storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite3", storagePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

// SaveEditor saves a new editor.
func (s *Storage) SaveEditor(ctx context.Context, username string, passHash []byte, role string) (int64, error) {
	const op = "storage.sqlite.SaveEditor"

	stmt, err := s.db.Prepare("INSERT INTO editors(username, pass_hash, role) VALUES(?, ?, ?)")
	if err != nil {
		return models.ErrEditorID, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, username, passHash, role)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.ErrEditorID, fmt.Errorf("%s: %w", op, storage.ErrEditorExists)
		}

		return models.ErrEditorID, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.ErrEditorID, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Editor returns an editor by id.
func (s *Storage) Editor(ctx context.Context, id int64) (models.Editor, error) {
	const op = "storage.sqlite.Editor"

	stmt, err := s.db.Prepare("SELECT id, username, role, pass_hash FROM editors WHERE id = ?")
	if err != nil {
		return models.Editor{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, id)

	var editor models.Editor
	if err := row.Scan(&editor.ID, &editor.Username, &editor.Role, &editor.PassHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Editor{}, fmt.Errorf("%s: %w", op, storage.ErrEditorNotFound)
		}
		return models.Editor{}, fmt.Errorf("%s: %w", op, err)
	}

	return editor, nil
}

// EditorByUsername returns an editor by username.
func (s *Storage) EditorByUsername(ctx context.Context, username string) (models.Editor, error) {
	const op = "storage.sqlite.EditorByUsername"

	stmt, err := s.db.Prepare("SELECT id, username, role, pass_hash FROM editors WHERE username = ?")
	if err != nil {
		return models.Editor{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, username)

	var editor models.Editor
	if err := row.Scan(&editor.ID, &editor.Username, &editor.Role, &editor.PassHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Editor{}, fmt.Errorf("%s: %w", op, storage.ErrEditorNotFound)
		}
		return models.Editor{}, fmt.Errorf("%s: %w", op, err)
	}

	return editor, nil
}

// UpdateEditor rewrites username and password hash for an editor.
func (s *Storage) UpdateEditor(ctx context.Context, id int64, username string, passHash []byte) error {
	const op = "storage.sqlite.UpdateEditor"

	stmt, err := s.db.Prepare("UPDATE editors SET username = ?, pass_hash = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, username, passHash, id)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%s: %w", op, storage.ErrEditorExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEditorNotFound)
	}

	return nil
}

// DeleteEditor deletes an editor by id.
func (s *Storage) DeleteEditor(ctx context.Context, id int64) error {
	const op = "storage.sqlite.DeleteEditor"

	stmt, err := s.db.Prepare("DELETE FROM editors WHERE id = ?")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEditorNotFound)
	}

	return nil
}

// AllEditors returns every registered editor.
func (s *Storage) AllEditors(ctx context.Context) ([]models.Editor, error) {
	const op = "storage.sqlite.AllEditors"

	stmt, err := s.db.Prepare("SELECT id, username, role, pass_hash FROM editors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	editors := make([]models.Editor, 0)
	for rows.Next() {
		var editor models.Editor
		if err := rows.Scan(&editor.ID, &editor.Username, &editor.Role, &editor.PassHash); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		editors = append(editors, editor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return editors, nil
}
