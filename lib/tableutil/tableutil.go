package tableutil

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// Row converts a slice of cells into a go-pretty row, nil cells render as
// NULL.
func Row(values []any) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		if v == nil {
			row[i] = "NULL"
			continue
		}
		row[i] = v
	}
	return row
}

// Header converts column names into a go-pretty header row.
func Header(columns []string) table.Row {
	row := make(table.Row, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}
