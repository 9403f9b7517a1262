package configlibsql

import (
	"database/sql"
	"fmt"
	devenv "leonardo-backend/dev/env"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct is the config block for a database, `file` is either a local sqlite
// path (which may start with <dev_state>), ":memory:" or a remote libsql url.
type Struct struct {
	File string `json:"file"`
}

func (config Struct) IsRemote() bool {
	for _, scheme := range []string{"libsql://", "http://", "https://", "wss://", "ws://"} {
		if strings.HasPrefix(config.File, scheme) {
			return true
		}
	}
	return false
}

// OpenDB opens the database and applies `schema` to it, schema statements
// must be idempotent (CREATE ... IF NOT EXISTS).
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}

	var db *sql.DB
	var err error
	if config.IsRemote() {
		db, err = sql.Open("libsql", config.File)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = openSqlite(config.File)
		if err != nil {
			return nil, err
		}
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

func openSqlite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		var err error
		path, err = devenv.ResolvePath(path)
		if err != nil {
			return nil, err
		}
		err = os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
