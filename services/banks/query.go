package banks

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strings"

	"banks-etl/lib/tableutil"

	"go.opentelemetry.io/otel/attribute"
)

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqlite keywords that cannot be used as a bare table name.
var reservedWords = map[string]bool{
	"ABORT": true, "ACTION": true, "ADD": true, "AFTER": true, "ALL": true, "ALTER": true,
	"ALWAYS": true, "ANALYZE": true, "AND": true, "AS": true, "ASC": true, "ATTACH": true,
	"AUTOINCREMENT": true, "BEFORE": true, "BEGIN": true, "BETWEEN": true, "BY": true,
	"CASCADE": true, "CASE": true, "CAST": true, "CHECK": true, "COLLATE": true, "COLUMN": true,
	"COMMIT": true, "CONFLICT": true, "CONSTRAINT": true, "CREATE": true, "CROSS": true,
	"CURRENT": true, "CURRENT_DATE": true, "CURRENT_TIME": true, "CURRENT_TIMESTAMP": true,
	"DATABASE": true, "DEFAULT": true, "DEFERRABLE": true, "DEFERRED": true, "DELETE": true,
	"DESC": true, "DETACH": true, "DISTINCT": true, "DO": true, "DROP": true, "EACH": true,
	"ELSE": true, "END": true, "ESCAPE": true, "EXCEPT": true, "EXCLUDE": true, "EXCLUSIVE": true,
	"EXISTS": true, "EXPLAIN": true, "FAIL": true, "FILTER": true, "FIRST": true, "FOLLOWING": true,
	"FOR": true, "FOREIGN": true, "FROM": true, "FULL": true, "GENERATED": true, "GLOB": true,
	"GROUP": true, "GROUPS": true, "HAVING": true, "IF": true, "IGNORE": true, "IMMEDIATE": true,
	"IN": true, "INDEX": true, "INDEXED": true, "INITIALLY": true, "INNER": true, "INSERT": true,
	"INSTEAD": true, "INTERSECT": true, "INTO": true, "IS": true, "ISNULL": true, "JOIN": true,
	"KEY": true, "LAST": true, "LEFT": true, "LIKE": true, "LIMIT": true, "MATCH": true,
	"MATERIALIZED": true, "NATURAL": true, "NO": true, "NOT": true, "NOTHING": true,
	"NOTNULL": true, "NULL": true, "NULLS": true, "OF": true, "OFFSET": true, "ON": true,
	"OR": true, "ORDER": true, "OTHERS": true, "OUTER": true, "OVER": true, "PARTITION": true,
	"PLAN": true, "PRAGMA": true, "PRECEDING": true, "PRIMARY": true, "QUERY": true,
	"RAISE": true, "RANGE": true, "RECURSIVE": true, "REFERENCES": true, "REGEXP": true,
	"REINDEX": true, "RELEASE": true, "RENAME": true, "REPLACE": true, "RESTRICT": true,
	"RETURNING": true, "RIGHT": true, "ROLLBACK": true, "ROW": true, "ROWS": true,
	"SAVEPOINT": true, "SELECT": true, "SET": true, "TABLE": true, "TEMP": true,
	"TEMPORARY": true, "THEN": true, "TIES": true, "TO": true, "TRANSACTION": true,
	"TRIGGER": true, "UNBOUNDED": true, "UNION": true, "UNIQUE": true, "UPDATE": true,
	"USING": true, "VACUUM": true, "VALUES": true, "VIEW": true, "VIRTUAL": true, "WHEN": true,
	"WHERE": true, "WINDOW": true, "WITH": true, "WITHOUT": true,
}

// tableRef quotes `table` unless it is a plain identifier.
func tableRef(table string) string {
	if plainIdent.MatchString(table) && !reservedWords[strings.ToUpper(table)] {
		return table
	}
	return quoteIdent(table)
}

// Statements returns the fixed report queries run after every load.
func Statements(table string) []string {
	table = tableRef(table)
	return []string{
		fmt.Sprintf("SELECT * FROM %s", table),
		fmt.Sprintf("SELECT AVG(%s) FROM %s", ColumnMarketCapGBP, table),
		fmt.Sprintf("SELECT %s FROM %s LIMIT 5", ColumnName, table),
	}
}

type QueryResult struct {
	Columns []string
	Rows    [][]any
}

func Query(ctx context.Context, db *sql.DB, statement string) (QueryResult, error) {
	ctx, span := tracer.Start(ctx, "Query")
	defer span.End()
	span.SetAttributes(attribute.String("statement", statement))

	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query %q: %w", statement, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return QueryResult{}, err
	}

	result := QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		err = rows.Scan(ptrs...)
		if err != nil {
			return QueryResult{}, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	err = rows.Err()
	if err != nil {
		return QueryResult{}, err
	}

	return result, nil
}

// Render writes the result as a table with a leading row number column.
func (r QueryResult) Render(out io.Writer) {
	t := tableutil.NewTable(out)
	t.AppendHeader(tableutil.Header(append([]string{""}, r.Columns...)))
	for i, row := range r.Rows {
		t.AppendRow(tableutil.Row(append([]any{i}, row...)))
	}
	t.Render()
}

// RunQuery prints `statement` followed by its result.
func RunQuery(ctx context.Context, db *sql.DB, statement string, out io.Writer) error {
	result, err := Query(ctx, db, statement)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, statement)
	result.Render(out)
	return nil
}

// RunQueries runs every statement from Statements against `table`.
func RunQueries(ctx context.Context, db *sql.DB, table string, out io.Writer) error {
	for _, statement := range Statements(table) {
		err := RunQuery(ctx, db, statement, out)
		if err != nil {
			return err
		}
	}
	return nil
}
