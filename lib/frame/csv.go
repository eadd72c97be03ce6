package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatValue renders a cell the way it is written to CSV: floats use their
// shortest representation with at least one decimal digit, nil is empty.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		s := strconv.FormatFloat(n, 'f', -1, 64)
		if strings.Trim(s, "-0123456789") == "" {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// WriteCSV writes a header line and every row to `w`. With `index` set a
// leading column with an empty header holds the row number.
func WriteCSV(w io.Writer, f *Frame, index bool) error {
	out := csv.NewWriter(w)

	header := f.Columns()
	if index {
		header = append([]string{""}, header...)
	}
	err := out.Write(header)
	if err != nil {
		return err
	}

	for i, row := range f.rows {
		record := make([]string, 0, len(row)+1)
		if index {
			record = append(record, strconv.Itoa(i))
		}
		for _, v := range row {
			record = append(record, FormatValue(v))
		}
		err = out.Write(record)
		if err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

func parseValue(s string) any {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return n
	}
	return s
}

// ReadCSV reads a frame written by WriteCSV. Cells that parse as numbers
// become float64, empty cells become nil. With `index` set the first column
// is dropped.
func ReadCSV(r io.Reader, index bool) (*Frame, error) {
	in := csv.NewReader(r)

	header, err := in.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if index {
		if len(header) == 0 {
			return nil, fmt.Errorf("read csv: missing index column")
		}
		header = header[1:]
	}

	f, err := New(header...)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	for {
		record, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if index {
			record = record[1:]
		}

		values := make([]any, len(record))
		for i, cell := range record {
			values[i] = parseValue(cell)
		}
		err = f.Append(values...)
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
	}

	return f, nil
}
