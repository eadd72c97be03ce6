package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	devenv "banks-etl/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct selects the database the loader writes to. A non-empty Url opens a
// remote libsql database, otherwise File is opened as a local sqlite file
// (":memory:" is accepted).
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

func (config Struct) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		return openRemote(config.Url, config.AuthToken)
	}
	if config.File == "" {
		return nil, wrapOpenDB(fmt.Errorf("a path was not specified"))
	}
	dbpath, err := devenv.ResolvePath(config.File)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	return openLocal(dbpath)
}

func openRemote(dburl, authToken string) (*sql.DB, error) {
	link, err := url.Parse(dburl)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	if authToken != "" {
		values := link.Query()
		values.Set("authToken", authToken)
		link.RawQuery = values.Encode()
	}
	db, err := sql.Open("libsql", link.String())
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	return db, nil
}

func openLocal(dbpath string) (*sql.DB, error) {
	if dbpath != ":memory:" {
		err := os.MkdirAll(filepath.Dir(dbpath), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	if dbpath != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, wrapOpenDB(err)
		}
	}

	return db, nil
}
