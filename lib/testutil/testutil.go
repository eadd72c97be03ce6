package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	configlibsql "banks-etl/lib/configutil/libsql"
	"banks-etl/lib/telemetry"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will use a fresh file in t.TempDir()
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService sets up telemetry for the test named `params.Name` and opens
// its database. The database is closed when the test finishes.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = filepath.Join(t.TempDir(), "test.db")
	}
	db, err := configlibsql.Struct{File: dbpath}.OpenDB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return ServiceResult{
		DB: db,
	}, cleanup
}
