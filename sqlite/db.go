// Package sqlite implements tgmini's Database and SessionRepo on modernc sqlite
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Database struct {
	conn *sql.DB
}

func Open(url string) (*Database, error) {
	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	return &Database{
		conn: conn,
	}, nil
}

func (db *Database) DB() *sql.DB {
	return db.conn
}

func (db *Database) Migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}
