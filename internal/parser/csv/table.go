// Package csv reads and writes comma-delimited files as ordered, header-keyed
// tables of raw string cells. Cells are never interpreted here: the cleaning
// stage decides what a value means, and an empty cell stands for null.
package csv

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jvportella/dataset-financial-transactions/internal/datasource"
)

// Table is an in-memory CSV file: a header and rows aligned to it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Index returns the position of column name in the header, or -1.
func (t Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table carries column name.
func (t Table) Has(name string) bool { return t.Index(name) >= 0 }

// Column returns the cells of column name in row order. ok is false when the
// column is absent.
func (t Table) Column(name string) (cells []string, ok bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	cells = make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[idx]
	}
	return cells, true
}

// Drop returns a copy of t without the named columns. Names that are not in
// the header are ignored.
func (t Table) Drop(names ...string) Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	keep := make([]int, 0, len(t.Header))
	header := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if _, ok := drop[h]; ok {
			continue
		}
		keep = append(keep, i)
		header = append(header, h)
	}
	if len(keep) == len(t.Header) {
		return t
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, len(keep))
		for j, idx := range keep {
			out[j] = row[idx]
		}
		rows[i] = out
	}
	return Table{Header: header, Rows: rows}
}

// Read parses a CSV stream whose first record is the header. Rows shorter
// than the header are padded with empty cells; wider rows are an error.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(bufio.NewReaderSize(r, 64*1024))
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	t := Table{Header: NormalizeHeaders(h)}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number.
			return Table{}, fmt.Errorf("read csv row: %w", err)
		}
		switch n := len(t.Header); {
		case len(row) > n:
			line, _ := cr.FieldPos(0)
			return Table{}, fmt.Errorf("read csv row: line %d: %d fields, header has %d", line, len(row), n)
		case len(row) < n:
			row = append(row, make([]string, n-len(row))...)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Write serializes t, header first.
func Write(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// ReadSource opens src and reads it as a Table.
func ReadSource(ctx context.Context, src datasource.Source) (Table, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return Table{}, err
	}
	defer rc.Close()

	t, err := Read(rc)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return t, nil
}

// WriteFile writes t to path, creating parent directories as needed. Data
// goes to path+".tmp" first and is renamed into place after a full write.
func WriteFile(path string, t Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	if err := Write(bw, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
