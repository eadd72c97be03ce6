package banks

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"banks-etl/lib/frame"

	"go.opentelemetry.io/otel/attribute"
)

// LoadCSV writes `f` to `path` with a leading row index column, replacing
// any existing file.
func LoadCSV(ctx context.Context, f *frame.Frame, path string) error {
	_, span := tracer.Start(ctx, "LoadCSV")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	err = frame.WriteCSV(out, f, true)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnType(kind frame.Kind) string {
	switch kind {
	case frame.KindText:
		return " TEXT"
	case frame.KindReal:
		return " REAL"
	case frame.KindInteger:
		return " INTEGER"
	default:
		return ""
	}
}

func createTableStatement(f *frame.Frame, table string) (string, error) {
	columns := f.Columns()
	defs := make([]string, len(columns))
	for i, c := range columns {
		kind, err := f.Kind(c)
		if err != nil {
			return "", err
		}
		defs[i] = quoteIdent(c) + columnType(kind)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", ")), nil
}

func insertStatement(f *frame.Frame, table string) string {
	columns := f.Columns()
	names := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quoteIdent(c)
		params[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(names, ", "),
		strings.Join(params, ", "),
	)
}

// LoadDB replaces `table` with the contents of `f`. The drop, create and
// inserts share one transaction.
func LoadDB(ctx context.Context, db *sql.DB, f *frame.Frame, table string) error {
	ctx, span := tracer.Start(ctx, "LoadDB")
	defer span.End()
	span.SetAttributes(
		attribute.String("table", table),
		attribute.Int("rows", f.Len()),
	)

	create, err := createTableStatement(f, table)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table))
	if err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	_, err = tx.ExecContext(ctx, create)
	if err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	insert, err := tx.PrepareContext(ctx, insertStatement(f, table))
	if err != nil {
		return err
	}
	defer insert.Close()

	for i := 0; i < f.Len(); i++ {
		_, err = insert.ExecContext(ctx, f.Row(i)...)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}
